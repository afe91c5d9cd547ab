package models

// Standing classifies a balance against the settlement tolerance.
type Standing int

const (
	// Even means the balance is within one cent of zero.
	Even Standing = iota
	// Creditor means the group owes this person money.
	Creditor
	// Debtor means this person owes the group money.
	Debtor
)

func (s Standing) String() string {
	switch s {
	case Creditor:
		return "creditor"
	case Debtor:
		return "debtor"
	default:
		return "even"
	}
}

// PersonSummary is one person's calculated position on a bill.
// This is the output of the settlement calculation and is never stored.
type PersonSummary struct {
	Person Person

	// ItemsPaid are the items this person fronted, in input order.
	ItemsPaid []Item

	// TotalPaid is the sum of ItemsPaid prices.
	TotalPaid float64

	// TotalOwed is this person's share across every counted item.
	TotalOwed float64

	// Balance is TotalPaid - TotalOwed.
	// Positive = owed money, Negative = owes money.
	Balance float64
}

// Transfer is a settlement instruction from a debtor to a creditor.
type Transfer struct {
	FromID string
	From   string // Debtor display name
	ToID   string
	To     string // Creditor display name
	Amount float64
}

// Summary is the full settlement result for a roster and its items.
type Summary struct {
	// Total is the sum of all counted item prices.
	Total float64

	// PerPersonShare is Total divided evenly across the roster.
	PerPersonShare float64

	// People follows the input order of the roster.
	People []PersonSummary

	// Transfers settle every balance outside the tolerance band.
	Transfers []Transfer
}
