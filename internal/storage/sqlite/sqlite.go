// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Open database with pure Go driver. Pragmas are applied to every
	// connection the pool opens, so cascades always run.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows one writer at a time
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// billExists reports whether billID is stored.
func billExists(ctx context.Context, q querier, billID string) error {
	var exists int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM bills WHERE id = ?", billID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check bill existence: %w", err)
	}
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateBill persists a new bill to the database.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	// Generate fields if not set
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}
	if bill.Title == "" {
		bill.Title = storage.DefaultTitle(time.Unix(bill.CreatedAt, 0))
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO bills (id, title, created_at) VALUES (?, ?, ?)",
		bill.ID, bill.Title, bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// GetBill retrieves a bill by ID.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	bill := &models.Bill{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, created_at FROM bills WHERE id = ?",
		billID,
	).Scan(&bill.ID, &bill.Title, &bill.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

// ListBills retrieves all bills, oldest first.
func (s *SQLiteStore) ListBills(ctx context.Context) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, created_at FROM bills ORDER BY created_at, rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill := &models.Bill{}
		if err := rows.Scan(&bill.ID, &bill.Title, &bill.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// DeleteBill removes a bill; people and items go with it via ON DELETE CASCADE.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	return nil
}

// AddPerson inserts a person into the bill's roster.
func (s *SQLiteStore) AddPerson(ctx context.Context, billID string, person *models.Person) error {
	if err := billExists(ctx, s.db, billID); err != nil {
		return err
	}
	if person.ID == "" {
		person.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO people (id, bill_id, name) VALUES (?, ?, ?)",
		person.ID, billID, person.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}
	return nil
}

// ListPeople retrieves the roster in insertion order.
func (s *SQLiteStore) ListPeople(ctx context.Context, billID string) ([]models.Person, error) {
	if err := billExists(ctx, s.db, billID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM people WHERE bill_id = ? ORDER BY rowid",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get people: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}
	return people, nil
}

// RemovePerson deletes a person. Items they paid for and their participant
// rows are removed by ON DELETE CASCADE.
func (s *SQLiteStore) RemovePerson(ctx context.Context, billID, personID string) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM people WHERE id = ? AND bill_id = ?",
		personID, billID,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("person %s: %w", personID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check person existence: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		"SELECT id FROM items WHERE payer_id = ? ORDER BY rowid",
		personID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get paid items: %w", err)
	}
	var removed []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		removed = append(removed, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate paid items: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM people WHERE id = ?", personID); err != nil {
		return nil, fmt.Errorf("failed to delete person: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return removed, nil
}

// AddItem inserts an item and its participants in one transaction.
func (s *SQLiteStore) AddItem(ctx context.Context, billID string, item *models.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := billExists(ctx, tx, billID); err != nil {
		return err
	}

	onBill := func(personID string) (bool, error) {
		var exists int
		err := tx.QueryRowContext(ctx,
			"SELECT 1 FROM people WHERE id = ? AND bill_id = ?",
			personID, billID,
		).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to check person existence: %w", err)
		}
		return true, nil
	}

	if ok, err := onBill(item.PayerID); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("payer %s: %w", item.PayerID, storage.ErrUnknownPayer)
	}
	participants := item.Participants.IDs()
	for _, id := range participants {
		if ok, err := onBill(id); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("participant %s: %w", id, storage.ErrUnknownParticipant)
		}
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO items (id, bill_id, name, price, payer_id, participants_specified)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID, billID, item.Name, item.Price, item.PayerID, item.Participants.Specified(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	for _, id := range participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO item_participants (item_id, person_id) VALUES (?, ?)",
			item.ID, id,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListItems retrieves the bill's items with their participants.
func (s *SQLiteStore) ListItems(ctx context.Context, billID string) ([]models.Item, error) {
	if err := billExists(ctx, s.db, billID); err != nil {
		return nil, err
	}

	// Participants for every item on the bill, keyed by item ID
	partRows, err := s.db.QueryContext(ctx,
		`SELECT ip.item_id, ip.person_id FROM item_participants ip
		 JOIN items i ON i.id = ip.item_id
		 WHERE i.bill_id = ? ORDER BY ip.rowid`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get item participants: %w", err)
	}
	participants := make(map[string][]string)
	for partRows.Next() {
		var itemID, personID string
		if err := partRows.Scan(&itemID, &personID); err != nil {
			partRows.Close()
			return nil, fmt.Errorf("failed to scan item participant: %w", err)
		}
		participants[itemID] = append(participants[itemID], personID)
	}
	partRows.Close()
	if err := partRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item participants: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, price, payer_id, participants_specified
		 FROM items WHERE bill_id = ? ORDER BY rowid`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		var specified bool
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.PayerID, &specified); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		// Cascades can empty a specified set; that item is split across everyone
		if ids := participants[item.ID]; specified && len(ids) > 0 {
			item.Participants = models.Only(ids...)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// RemoveItem deletes one item from the bill.
func (s *SQLiteStore) RemoveItem(ctx context.Context, billID, itemID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM items WHERE id = ? AND bill_id = ?",
		itemID, billID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("item %s: %w", itemID, storage.ErrNotFound)
	}
	return nil
}
