package service

import (
	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/models"
	billsplitv1 "github.com/mmynk/billsplit/pkg/billsplitv1"
)

// PeopleFromWire converts wire people to models.
func PeopleFromWire(people []billsplitv1.Person) []models.Person {
	out := make([]models.Person, len(people))
	for i, p := range people {
		out[i] = models.Person{ID: p.ID, Name: p.Name}
	}
	return out
}

// ItemFromWire converts a wire item to a model. Nil participants become Everyone.
func ItemFromWire(item billsplitv1.Item) models.Item {
	participants := models.Everyone()
	if item.Participants != nil {
		participants = models.Only(item.Participants.PersonIDs...)
	}
	return models.Item{
		ID:           item.ID,
		Name:         item.Name,
		Price:        item.Price,
		PayerID:      item.PayerID,
		Participants: participants,
	}
}

// ItemsFromWire converts wire items to models.
func ItemsFromWire(items []billsplitv1.Item) []models.Item {
	out := make([]models.Item, len(items))
	for i, item := range items {
		out[i] = ItemFromWire(item)
	}
	return out
}

func billToWire(bill models.Bill) billsplitv1.Bill {
	return billsplitv1.Bill{ID: bill.ID, Title: bill.Title, CreatedAt: bill.CreatedAt}
}

func personToWire(p models.Person) billsplitv1.Person {
	return billsplitv1.Person{ID: p.ID, Name: p.Name}
}

func peopleToWire(people []models.Person) []billsplitv1.Person {
	out := make([]billsplitv1.Person, len(people))
	for i, p := range people {
		out[i] = personToWire(p)
	}
	return out
}

func itemToWire(item models.Item) billsplitv1.Item {
	out := billsplitv1.Item{
		ID:      item.ID,
		Name:    item.Name,
		Price:   item.Price,
		PayerID: item.PayerID,
	}
	// An emptied set is split across everyone, so it goes out as omitted
	if item.Participants.Specified() && item.Participants.Len() > 0 {
		out.Participants = &billsplitv1.Participants{PersonIDs: item.Participants.IDs()}
	}
	return out
}

func itemsToWire(items []models.Item) []billsplitv1.Item {
	out := make([]billsplitv1.Item, len(items))
	for i, item := range items {
		out[i] = itemToWire(item)
	}
	return out
}

// SummaryToWire converts a computed summary to its wire form.
func SummaryToWire(s models.Summary) billsplitv1.Summary {
	out := billsplitv1.Summary{
		Total:          s.Total,
		PerPersonShare: s.PerPersonShare,
		PersonSummary:  make([]billsplitv1.PersonSummary, len(s.People)),
		Transfers:      make([]billsplitv1.Transfer, len(s.Transfers)),
	}
	for i, ps := range s.People {
		out.PersonSummary[i] = billsplitv1.PersonSummary{
			Person:     personToWire(ps.Person),
			Items:      itemsToWire(ps.ItemsPaid),
			TotalSpent: ps.TotalPaid,
			TotalOwed:  ps.TotalOwed,
			Balance:    ps.Balance,
			Standing:   calculator.Classify(ps.Balance).String(),
		}
	}
	for i, tr := range s.Transfers {
		out.Transfers[i] = billsplitv1.Transfer{
			FromID: tr.FromID,
			From:   tr.From,
			ToID:   tr.ToID,
			To:     tr.To,
			Amount: tr.Amount,
		}
	}
	return out
}
