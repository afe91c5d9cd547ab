package service

import (
	"fmt"
	"math"
	"strings"

	billsplitv1 "github.com/mmynk/billsplit/pkg/billsplitv1"
)

// ValidateName trims a display name and rejects blank ones.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrEmptyName
	}
	return trimmed, nil
}

// ValidateItem checks an item before it reaches the store or the calculator.
// The returned copy has its name trimmed.
func ValidateItem(item billsplitv1.Item) (billsplitv1.Item, error) {
	name, err := ValidateName(item.Name)
	if err != nil {
		return item, fmt.Errorf("item: %w", err)
	}
	item.Name = name

	if math.IsNaN(item.Price) || math.IsInf(item.Price, 0) || item.Price < 0 {
		return item, fmt.Errorf("item %q: %w", item.Name, ErrInvalidPrice)
	}
	if item.PayerID == "" {
		return item, fmt.Errorf("item %q: %w", item.Name, ErrMissingPayer)
	}
	if item.Participants != nil && len(item.Participants.PersonIDs) == 0 {
		return item, fmt.Errorf("item %q: %w", item.Name, ErrEmptyParticipants)
	}
	return item, nil
}

// ValidateSnapshot checks a stateless roster snapshot.
//
// People need unique, non-empty IDs and names. Items are checked with
// ValidateItem and their prices must add up to a finite total; an item
// whose payer is not in the snapshot is allowed and left out of the totals
// by the calculator.
func ValidateSnapshot(people []billsplitv1.Person, items []billsplitv1.Item) ([]billsplitv1.Person, []billsplitv1.Item, error) {
	seen := make(map[string]bool, len(people))
	cleanPeople := make([]billsplitv1.Person, len(people))
	for i, p := range people {
		if p.ID == "" {
			return nil, nil, fmt.Errorf("person %d: %w", i, ErrMissingID)
		}
		if seen[p.ID] {
			return nil, nil, fmt.Errorf("person %s: %w", p.ID, ErrDuplicateID)
		}
		seen[p.ID] = true

		name, err := ValidateName(p.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("person %s: %w", p.ID, err)
		}
		cleanPeople[i] = billsplitv1.Person{ID: p.ID, Name: name}
	}

	var total float64
	cleanItems := make([]billsplitv1.Item, len(items))
	for i, item := range items {
		clean, err := ValidateItem(item)
		if err != nil {
			return nil, nil, err
		}
		total += clean.Price
		if err := ValidateTotal(total); err != nil {
			return nil, nil, err
		}
		cleanItems[i] = clean
	}
	return cleanPeople, cleanItems, nil
}

// ValidateTotal rejects a running item total that no longer fits in a float64.
func ValidateTotal(total float64) error {
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return fmt.Errorf("items total: %w", ErrInvalidPrice)
	}
	return nil
}
