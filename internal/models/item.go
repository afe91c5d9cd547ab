package models

import "slices"

// Item represents a single purchase on a bill.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// Name is the description of the item (e.g., "Pizza", "Taxi").
	Name string

	// Price is the non-negative amount the payer fronted.
	Price float64

	// PayerID is the ID of the Person who paid for this item.
	PayerID string

	// Participants is the set of people sharing the cost.
	Participants Participants
}

// Participants says who shares an item's cost.
//
// The zero value means the item is split across everyone on the bill.
// A set built with Only restricts the split to the listed people.
type Participants struct {
	ids       []string
	specified bool
}

// Everyone returns the unspecified variant: the item is split across
// every person on the bill at the time the summary is computed.
func Everyone() Participants {
	return Participants{}
}

// Only returns a specified participant set. Duplicate IDs are collapsed,
// first occurrence wins.
func Only(ids ...string) Participants {
	set := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(set, id) {
			set = append(set, id)
		}
	}
	return Participants{ids: set, specified: true}
}

// Specified reports whether the set was built with Only.
func (p Participants) Specified() bool {
	return p.specified
}

// IDs returns a copy of the participant IDs. Nil for Everyone.
func (p Participants) IDs() []string {
	if !p.specified {
		return nil
	}
	return slices.Clone(p.ids)
}

// Len returns the number of listed participants.
func (p Participants) Len() int {
	return len(p.ids)
}

// Contains reports whether id is listed.
func (p Participants) Contains(id string) bool {
	return slices.Contains(p.ids, id)
}

// Without returns a copy of the set with id removed.
// Everyone is returned unchanged, and removing the last listed person
// yields Everyone.
func (p Participants) Without(id string) Participants {
	if !p.specified {
		return p
	}
	ids := make([]string, 0, len(p.ids))
	for _, existing := range p.ids {
		if existing != id {
			ids = append(ids, existing)
		}
	}
	if len(ids) == 0 {
		return Everyone()
	}
	return Participants{ids: ids, specified: true}
}
