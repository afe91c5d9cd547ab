// Package report renders a settlement summary as plain text.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/models"
)

const displayPlaces = 2

// Money formats an amount with two decimals, e.g. "$12.50" or "-$3.33".
// Amounts that round to zero are never shown as negative.
func Money(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(displayPlaces)
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(displayPlaces)
	}
	return "$" + d.StringFixed(displayPlaces)
}

// Balance formats a balance with its sign: "+$20.00", "-$10.00" or "Even".
func Balance(balance float64) string {
	switch calculator.Classify(balance) {
	case models.Creditor:
		return "+" + Money(balance)
	case models.Debtor:
		return Money(balance)
	default:
		return "Even"
	}
}

// Hint returns the action line shown under a balance.
func Hint(balance float64) string {
	switch calculator.Classify(balance) {
	case models.Creditor:
		return "Should receive"
	case models.Debtor:
		return "Should pay"
	default:
		return "Balanced"
	}
}

// SettleLine describes one transfer, e.g. "Bob pays $10.00 to Alice".
func SettleLine(t models.Transfer) string {
	return fmt.Sprintf("%s pays %s to %s", t.From, Money(t.Amount), t.To)
}

// UnknownPayer is shown for items whose payer is no longer on the bill.
const UnknownPayer = "Unknown"

// WriteItems lists every item with its price, payer and who shares it.
func WriteItems(w io.Writer, people []models.Person, items []models.Item) error {
	names := make(map[string]string, len(people))
	for _, p := range people {
		names[p.ID] = p.Name
	}
	nameOf := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return UnknownPayer
	}

	fmt.Fprintln(w, "Items:")
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "  (none)")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, item := range items {
		shared := "everyone"
		if item.Participants.Specified() {
			var sharers []string
			for _, id := range item.Participants.IDs() {
				if name, ok := names[id]; ok {
					sharers = append(sharers, name)
				}
			}
			if len(sharers) > 0 {
				shared = strings.Join(sharers, ", ")
			}
		}
		fmt.Fprintf(tw, "  %s\t%s\tpaid by %s\tsplit %s\n", item.Name, Money(item.Price), nameOf(item.PayerID), shared)
	}
	return tw.Flush()
}

// Write renders the summary to w.
func Write(w io.Writer, s models.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Total bill:\t%s\n", Money(s.Total))
	fmt.Fprintf(tw, "Per person:\t%s\n", Money(s.PerPersonShare))
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(s.People) > 0 {
		fmt.Fprintln(w)
	}
	for _, ps := range s.People {
		fmt.Fprintf(tw, "%s\tspent %s\t%s\t%s\n", ps.Person.Name, Money(ps.TotalPaid), Balance(ps.Balance), Hint(ps.Balance))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, ps := range s.People {
		if len(ps.ItemsPaid) == 0 {
			continue
		}
		fmt.Fprintf(w, "\nItems bought by %s:\n", ps.Person.Name)
		for _, item := range ps.ItemsPaid {
			fmt.Fprintf(tw, "  %s\t%s\n", item.Name, Money(item.Price))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if s.Total <= 0 {
		return nil
	}
	fmt.Fprintln(w, "\nHow to settle:")
	if len(s.Transfers) == 0 {
		_, err := fmt.Fprintln(w, "  Everyone is even")
		return err
	}
	for _, t := range s.Transfers {
		if _, err := fmt.Fprintf(w, "• %s\n", SettleLine(t)); err != nil {
			return err
		}
	}
	return nil
}
