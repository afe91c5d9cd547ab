// Package memory provides an in-process implementation of the storage.Store interface.
// Data lives only as long as the process.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

type billState struct {
	bill   models.Bill
	people []models.Person
	items  []models.Item
}

// Store implements storage.Store with maps guarded by a RWMutex.
type Store struct {
	mu    sync.RWMutex
	bills map[string]*billState
	order []string
}

// New creates an empty Store.
func New() *Store {
	return &Store{bills: make(map[string]*billState)}
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// getBill returns the bill state. Callers must hold s.mu.
func (s *Store) getBill(billID string) (*billState, error) {
	state, ok := s.bills[billID]
	if !ok {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	return state, nil
}

// CreateBill stores a new bill.
func (s *Store) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}
	if bill.Title == "" {
		bill.Title = storage.DefaultTitle(time.Unix(bill.CreatedAt, 0))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bills[bill.ID]; exists {
		return fmt.Errorf("bill %s already exists", bill.ID)
	}
	s.bills[bill.ID] = &billState{bill: *bill}
	s.order = append(s.order, bill.ID)
	return nil
}

// GetBill retrieves a bill by ID.
func (s *Store) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, err := s.getBill(billID)
	if err != nil {
		return nil, err
	}
	bill := state.bill
	return &bill, nil
}

// ListBills returns all bills in creation order.
func (s *Store) ListBills(ctx context.Context) ([]*models.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bills := make([]*models.Bill, 0, len(s.order))
	for _, id := range s.order {
		bill := s.bills[id].bill
		bills = append(bills, &bill)
	}
	return bills, nil
}

// DeleteBill removes a bill and everything on it.
func (s *Store) DeleteBill(ctx context.Context, billID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getBill(billID); err != nil {
		return err
	}
	delete(s.bills, billID)
	s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == billID })
	return nil
}

// AddPerson appends a person to the bill's roster.
func (s *Store) AddPerson(ctx context.Context, billID string, person *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.getBill(billID)
	if err != nil {
		return err
	}
	if person.ID == "" {
		person.ID = uuid.New().String()
	}
	if slices.ContainsFunc(state.people, func(p models.Person) bool { return p.ID == person.ID }) {
		return fmt.Errorf("person %s already exists", person.ID)
	}
	state.people = append(state.people, *person)
	return nil
}

// ListPeople returns a copy of the bill's roster.
func (s *Store) ListPeople(ctx context.Context, billID string) ([]models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, err := s.getBill(billID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(state.people), nil
}

// RemovePerson deletes a person and cascades to the items they paid for.
func (s *Store) RemovePerson(ctx context.Context, billID, personID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.getBill(billID)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(state.people, func(p models.Person) bool { return p.ID == personID })
	if idx < 0 {
		return nil, fmt.Errorf("person %s: %w", personID, storage.ErrNotFound)
	}
	state.people = slices.Delete(state.people, idx, idx+1)

	var removed []string
	kept := state.items[:0]
	for _, item := range state.items {
		if item.PayerID == personID {
			removed = append(removed, item.ID)
			continue
		}
		item.Participants = item.Participants.Without(personID)
		kept = append(kept, item)
	}
	state.items = kept
	return removed, nil
}

// AddItem appends an item after checking the payer and participants.
func (s *Store) AddItem(ctx context.Context, billID string, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.getBill(billID)
	if err != nil {
		return err
	}

	onBill := func(id string) bool {
		return slices.ContainsFunc(state.people, func(p models.Person) bool { return p.ID == id })
	}
	if !onBill(item.PayerID) {
		return fmt.Errorf("payer %s: %w", item.PayerID, storage.ErrUnknownPayer)
	}
	for _, id := range item.Participants.IDs() {
		if !onBill(id) {
			return fmt.Errorf("participant %s: %w", id, storage.ErrUnknownParticipant)
		}
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	state.items = append(state.items, *item)
	return nil
}

// ListItems returns a copy of the bill's items.
func (s *Store) ListItems(ctx context.Context, billID string) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, err := s.getBill(billID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(state.items), nil
}

// RemoveItem deletes one item.
func (s *Store) RemoveItem(ctx context.Context, billID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.getBill(billID)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(state.items, func(i models.Item) bool { return i.ID == itemID })
	if idx < 0 {
		return fmt.Errorf("item %s: %w", itemID, storage.ErrNotFound)
	}
	state.items = slices.Delete(state.items, idx, idx+1)
	return nil
}
