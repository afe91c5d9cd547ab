// Package calculator computes bill balances and settlement transfers.
//
// Everything here is pure: inputs are never mutated and the same inputs
// always produce the same outputs.
package calculator

import (
	"math"

	"github.com/mmynk/billsplit/internal/models"
)

// Epsilon is the settlement tolerance. Balances within one cent of zero
// are treated as even.
const Epsilon = 0.01

// Classify returns the standing of a balance against Epsilon.
func Classify(balance float64) models.Standing {
	switch {
	case balance > Epsilon:
		return models.Creditor
	case balance < -Epsilon:
		return models.Debtor
	default:
		return models.Even
	}
}

// ComputeSummary computes every person's paid/owed position and the
// transfers that settle the bill.
//
// Algorithm:
// - An item is counted only if its payer is on the roster; orphaned items
//   contribute to no total
// - The payer is credited the full price
// - Each sharer owes price / number of sharers. Sharers are the item's listed
//   participants that are still on the roster, or the whole roster when the
//   item has no participants specified (or none of them remain)
// - balance = total_paid - total_owed
//
// People are reported in the order given.
func ComputeSummary(people []models.Person, items []models.Item) models.Summary {
	summary := models.Summary{
		People: make([]models.PersonSummary, len(people)),
	}

	// Roster position by person ID; first occurrence wins on duplicates
	index := make(map[string]int, len(people))
	for i, p := range people {
		if _, exists := index[p.ID]; !exists {
			index[p.ID] = i
		}
		summary.People[i] = models.PersonSummary{Person: p}
	}

	for _, item := range items {
		payer, ok := index[item.PayerID]
		if !ok {
			continue
		}

		summary.Total += item.Price

		paid := &summary.People[payer]
		paid.ItemsPaid = append(paid.ItemsPaid, item)
		paid.TotalPaid += item.Price

		sharers := sharersOf(item, people, index)
		share := item.Price / float64(len(sharers))
		for _, i := range sharers {
			summary.People[i].TotalOwed += share
		}
	}

	for i := range summary.People {
		ps := &summary.People[i]
		ps.Balance = ps.TotalPaid - ps.TotalOwed
	}

	if len(people) > 0 {
		summary.PerPersonShare = summary.Total / float64(len(people))
	}

	summary.Transfers = ComputeTransfers(summary.People)
	return summary
}

// sharersOf returns the roster positions that split an item's cost.
// Never empty when the item's payer is on the roster.
func sharersOf(item models.Item, people []models.Person, index map[string]int) []int {
	if item.Participants.Specified() {
		seen := make(map[int]bool, item.Participants.Len())
		var sharers []int
		for _, id := range item.Participants.IDs() {
			i, ok := index[id]
			if !ok || seen[i] {
				continue
			}
			seen[i] = true
			sharers = append(sharers, i)
		}
		if len(sharers) > 0 {
			return sharers
		}
	}

	sharers := make([]int, len(people))
	for i := range people {
		sharers[i] = i
	}
	return sharers
}

// ledgerEntry tracks how much of one balance is still unsettled.
type ledgerEntry struct {
	person    models.Person
	remaining float64
}

// ComputeTransfers produces debtor to creditor payments that settle the
// given balances.
//
// Greedy matching walks debtors and creditors in input order, not sorted by
// magnitude. That keeps the plan deterministic and bounds it to at most
// debtors+creditors-1 transfers, but it is not guaranteed to be the
// minimum possible count.
//
// A residual left on one side after the other side is exhausted comes from
// floating point drift and is dropped.
func ComputeTransfers(people []models.PersonSummary) []models.Transfer {
	var debtors, creditors []ledgerEntry
	for _, p := range people {
		switch Classify(p.Balance) {
		case models.Debtor:
			debtors = append(debtors, ledgerEntry{person: p.Person, remaining: -p.Balance})
		case models.Creditor:
			creditors = append(creditors, ledgerEntry{person: p.Person, remaining: p.Balance})
		}
	}

	transfers := make([]models.Transfer, 0, max(len(debtors)+len(creditors)-1, 0))
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := math.Min(debtor.remaining, creditor.remaining)
		transfers = append(transfers, models.Transfer{
			FromID: debtor.person.ID,
			From:   debtor.person.Name,
			ToID:   creditor.person.ID,
			To:     creditor.person.Name,
			Amount: amount,
		})

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining <= Epsilon {
			i++
		}
		if creditor.remaining <= Epsilon {
			j++
		}
	}

	return transfers
}
