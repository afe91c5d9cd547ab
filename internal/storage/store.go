// Package storage provides abstractions for bill roster storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/billsplit/internal/models"
)

var (
	// ErrNotFound is returned when a bill, person or item does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnknownPayer is returned when an item's payer is not on the bill.
	ErrUnknownPayer = errors.New("payer is not on the bill")
	// ErrUnknownParticipant is returned when an item lists someone not on the bill.
	ErrUnknownParticipant = errors.New("participant is not on the bill")
)

// Store defines the interface for bill roster operations.
// This abstraction allows swapping storage backends (memory, SQLite)
// without changing the service layer.
//
// List methods return snapshots in insertion order; callers may keep and
// modify them freely.
type Store interface {
	// CreateBill persists a new bill.
	// The bill.ID, bill.Title and bill.CreatedAt fields are populated when empty.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill by its ID.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// ListBills returns every bill, oldest first.
	ListBills(ctx context.Context) ([]*models.Bill, error)

	// DeleteBill removes a bill with its people and items.
	DeleteBill(ctx context.Context, billID string) error

	// AddPerson adds a person to a bill. person.ID is populated when empty.
	AddPerson(ctx context.Context, billID string, person *models.Person) error

	// ListPeople returns the roster of a bill.
	ListPeople(ctx context.Context, billID string) ([]models.Person, error)

	// RemovePerson deletes a person. Every item they paid for is deleted too,
	// and they are dropped from other items' participants.
	// Returns the IDs of the deleted items.
	RemovePerson(ctx context.Context, billID, personID string) ([]string, error)

	// AddItem adds an item to a bill. item.ID is populated when empty.
	// The payer and every listed participant must already be on the bill.
	AddItem(ctx context.Context, billID string, item *models.Item) error

	// ListItems returns the items of a bill.
	ListItems(ctx context.Context, billID string) ([]models.Item, error)

	// RemoveItem deletes a single item.
	RemoveItem(ctx context.Context, billID, itemID string) error

	// Close releases any resources held by the store.
	Close() error
}

// DefaultTitle generates a bill title from its creation time.
func DefaultTitle(createdAt time.Time) string {
	return fmt.Sprintf("Bill - %s", createdAt.Format("Jan 2, 2006"))
}
