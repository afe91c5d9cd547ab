// Package storetest holds behaviour tests shared by every storage.Store implementation.
package storetest

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

// Run exercises store against the storage.Store contract.
// newStore must return an empty store; it is called once per subtest.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	ctx := context.Background()

	// seed creates a bill with Alice, Bob and Charlie.
	seed := func(t *testing.T, store storage.Store) (*models.Bill, []*models.Person) {
		t.Helper()
		bill := &models.Bill{Title: "Road trip"}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		var people []*models.Person
		for _, name := range []string{"Alice", "Bob", "Charlie"} {
			p := &models.Person{Name: name}
			if err := store.AddPerson(ctx, bill.ID, p); err != nil {
				t.Fatalf("AddPerson(%s) failed: %v", name, err)
			}
			people = append(people, p)
		}
		return bill, people
	}

	t.Run("CreateBill generates ID, title and timestamp", func(t *testing.T) {
		store := newStore(t)
		bill := &models.Bill{}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		if bill.ID == "" {
			t.Error("Expected bill ID to be generated")
		}
		if bill.Title == "" {
			t.Error("Expected bill title to be generated")
		}
		if bill.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		got, err := store.GetBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if *got != *bill {
			t.Errorf("GetBill = %+v, want %+v", got, bill)
		}
	})

	t.Run("ListBills and DeleteBill", func(t *testing.T) {
		store := newStore(t)
		first, _ := seed(t, store)
		second := &models.Bill{Title: "Groceries"}
		if err := store.CreateBill(ctx, second); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		bills, err := store.ListBills(ctx)
		if err != nil {
			t.Fatalf("ListBills failed: %v", err)
		}
		if len(bills) != 2 || bills[0].ID != first.ID || bills[1].ID != second.ID {
			t.Fatalf("ListBills = %+v, want [%s %s]", bills, first.ID, second.ID)
		}

		if err := store.DeleteBill(ctx, first.ID); err != nil {
			t.Fatalf("DeleteBill failed: %v", err)
		}
		if _, err := store.GetBill(ctx, first.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetBill after delete: err = %v, want ErrNotFound", err)
		}
		if _, err := store.ListPeople(ctx, first.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("ListPeople after delete: err = %v, want ErrNotFound", err)
		}
		if err := store.DeleteBill(ctx, first.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second DeleteBill: err = %v, want ErrNotFound", err)
		}
	})

	t.Run("unknown bill", func(t *testing.T) {
		store := newStore(t)
		if _, err := store.GetBill(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetBill: err = %v, want ErrNotFound", err)
		}
		if err := store.AddPerson(ctx, "missing", &models.Person{Name: "Zed"}); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("AddPerson: err = %v, want ErrNotFound", err)
		}
		if _, err := store.ListItems(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("ListItems: err = %v, want ErrNotFound", err)
		}
	})

	t.Run("people keep insertion order", func(t *testing.T) {
		store := newStore(t)
		bill, seeded := seed(t, store)

		people, err := store.ListPeople(ctx, bill.ID)
		if err != nil {
			t.Fatalf("ListPeople failed: %v", err)
		}
		if len(people) != len(seeded) {
			t.Fatalf("ListPeople = %d people, want %d", len(people), len(seeded))
		}
		for i, p := range people {
			if p != *seeded[i] {
				t.Errorf("people[%d] = %+v, want %+v", i, p, *seeded[i])
			}
		}
	})

	t.Run("AddItem round trips participants", func(t *testing.T) {
		store := newStore(t)
		bill, people := seed(t, store)
		alice, bob, charlie := people[0], people[1], people[2]

		shared := &models.Item{Name: "Fuel", Price: 60, PayerID: alice.ID, Participants: models.Only(charlie.ID, alice.ID)}
		everyone := &models.Item{Name: "Snacks", Price: 12.5, PayerID: bob.ID, Participants: models.Everyone()}
		for _, item := range []*models.Item{shared, everyone} {
			if err := store.AddItem(ctx, bill.ID, item); err != nil {
				t.Fatalf("AddItem(%s) failed: %v", item.Name, err)
			}
			if item.ID == "" {
				t.Errorf("Expected item ID to be generated for %s", item.Name)
			}
		}

		items, err := store.ListItems(ctx, bill.ID)
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("ListItems = %d items, want 2", len(items))
		}
		if items[0].ID != shared.ID || items[0].Price != 60 || items[0].PayerID != alice.ID {
			t.Errorf("items[0] = %+v, want %+v", items[0], *shared)
		}
		if !items[0].Participants.Specified() || !slices.Equal(items[0].Participants.IDs(), []string{charlie.ID, alice.ID}) {
			t.Errorf("items[0] participants = %v, want [%s %s]", items[0].Participants.IDs(), charlie.ID, alice.ID)
		}
		if items[1].Participants.Specified() {
			t.Errorf("items[1] participants = %v, want everyone", items[1].Participants.IDs())
		}
	})

	t.Run("AddItem rejects strangers", func(t *testing.T) {
		store := newStore(t)
		bill, people := seed(t, store)

		err := store.AddItem(ctx, bill.ID, &models.Item{Name: "Taxi", Price: 20, PayerID: "stranger"})
		if !errors.Is(err, storage.ErrUnknownPayer) {
			t.Errorf("unknown payer: err = %v, want ErrUnknownPayer", err)
		}

		err = store.AddItem(ctx, bill.ID, &models.Item{
			Name: "Taxi", Price: 20, PayerID: people[0].ID,
			Participants: models.Only(people[0].ID, "stranger"),
		})
		if !errors.Is(err, storage.ErrUnknownParticipant) {
			t.Errorf("unknown participant: err = %v, want ErrUnknownParticipant", err)
		}

		items, err := store.ListItems(ctx, bill.ID)
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("ListItems = %+v, want nothing stored", items)
		}
	})

	t.Run("payer from another bill is rejected", func(t *testing.T) {
		store := newStore(t)
		_, people := seed(t, store)
		other := &models.Bill{Title: "Other"}
		if err := store.CreateBill(ctx, other); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		err := store.AddItem(ctx, other.ID, &models.Item{Name: "Lunch", Price: 9, PayerID: people[0].ID})
		if !errors.Is(err, storage.ErrUnknownPayer) {
			t.Errorf("err = %v, want ErrUnknownPayer", err)
		}
	})

	t.Run("RemovePerson cascades", func(t *testing.T) {
		store := newStore(t)
		bill, people := seed(t, store)
		alice, bob, charlie := people[0], people[1], people[2]

		paidByBob := &models.Item{Name: "Hotel", Price: 200, PayerID: bob.ID}
		sharedWithBob := &models.Item{Name: "Dinner", Price: 90, PayerID: alice.ID, Participants: models.Only(alice.ID, bob.ID, charlie.ID)}
		for _, item := range []*models.Item{paidByBob, sharedWithBob} {
			if err := store.AddItem(ctx, bill.ID, item); err != nil {
				t.Fatalf("AddItem(%s) failed: %v", item.Name, err)
			}
		}

		removed, err := store.RemovePerson(ctx, bill.ID, bob.ID)
		if err != nil {
			t.Fatalf("RemovePerson failed: %v", err)
		}
		if !slices.Equal(removed, []string{paidByBob.ID}) {
			t.Errorf("removed = %v, want [%s]", removed, paidByBob.ID)
		}

		roster, err := store.ListPeople(ctx, bill.ID)
		if err != nil {
			t.Fatalf("ListPeople failed: %v", err)
		}
		if len(roster) != 2 || roster[0].ID != alice.ID || roster[1].ID != charlie.ID {
			t.Errorf("roster = %+v, want Alice and Charlie", roster)
		}

		items, err := store.ListItems(ctx, bill.ID)
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(items) != 1 || items[0].ID != sharedWithBob.ID {
			t.Fatalf("items = %+v, want only %s", items, sharedWithBob.ID)
		}
		if got := items[0].Participants.IDs(); !slices.Equal(got, []string{alice.ID, charlie.ID}) {
			t.Errorf("participants = %v, want [%s %s]", got, alice.ID, charlie.ID)
		}

		if _, err := store.RemovePerson(ctx, bill.ID, bob.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second RemovePerson: err = %v, want ErrNotFound", err)
		}
	})

	t.Run("RemovePerson of the last participant splits across everyone", func(t *testing.T) {
		store := newStore(t)
		bill, people := seed(t, store)
		alice, bob := people[0], people[1]

		gift := &models.Item{Name: "Gift", Price: 30, PayerID: alice.ID, Participants: models.Only(bob.ID)}
		if err := store.AddItem(ctx, bill.ID, gift); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
		if _, err := store.RemovePerson(ctx, bill.ID, bob.ID); err != nil {
			t.Fatalf("RemovePerson failed: %v", err)
		}

		items, err := store.ListItems(ctx, bill.ID)
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("items = %+v, want the gift", items)
		}
		if items[0].Participants.Specified() {
			t.Errorf("participants = %v, want everyone", items[0].Participants.IDs())
		}
	})

	t.Run("RemoveItem", func(t *testing.T) {
		store := newStore(t)
		bill, people := seed(t, store)

		item := &models.Item{Name: "Coffee", Price: 4.5, PayerID: people[2].ID}
		if err := store.AddItem(ctx, bill.ID, item); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
		if err := store.RemoveItem(ctx, bill.ID, item.ID); err != nil {
			t.Fatalf("RemoveItem failed: %v", err)
		}
		items, err := store.ListItems(ctx, bill.ID)
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("items = %+v, want none", items)
		}
		if err := store.RemoveItem(ctx, bill.ID, item.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second RemoveItem: err = %v, want ErrNotFound", err)
		}
	})

	t.Run("snapshots are independent", func(t *testing.T) {
		store := newStore(t)
		bill, _ := seed(t, store)

		people, err := store.ListPeople(ctx, bill.ID)
		if err != nil {
			t.Fatalf("ListPeople failed: %v", err)
		}
		people[0].Name = "Mallory"

		again, err := store.ListPeople(ctx, bill.ID)
		if err != nil {
			t.Fatalf("ListPeople failed: %v", err)
		}
		if again[0].Name != "Alice" {
			t.Errorf("stored name = %q after editing a snapshot, want Alice", again[0].Name)
		}
	})
}
