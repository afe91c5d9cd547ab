// Package billsplitv1 defines the wire messages of the billsplit.v1 API.
//
// Messages are plain structs encoded as JSON; field names follow the
// snake_case convention of the API.
package billsplitv1

// Bill is a roster scope.
type Bill struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt int64  `json:"created_at"`
}

// Person is someone on a bill.
type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Participants restricts an item's split to the listed people.
type Participants struct {
	PersonIDs []string `json:"person_ids"`
}

// Item is a purchase on a bill.
type Item struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	PayerID string  `json:"payer_id"`
	// Participants limits who shares the cost. Nil splits it across everyone.
	Participants *Participants `json:"participants,omitempty"`
}

// PersonSummary is one person's position on a bill.
type PersonSummary struct {
	Person     Person  `json:"person"`
	Items      []Item  `json:"items"`
	TotalSpent float64 `json:"total_spent"`
	TotalOwed  float64 `json:"total_owed"`
	Balance    float64 `json:"balance"`
	// Standing is "creditor", "debtor" or "even".
	Standing string `json:"standing"`
}

// Transfer is a settlement instruction.
type Transfer struct {
	FromID string  `json:"from_id"`
	From   string  `json:"from"`
	ToID   string  `json:"to_id"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// Summary is the settlement result for a bill.
type Summary struct {
	Total          float64         `json:"total"`
	PerPersonShare float64         `json:"per_person_share"`
	PersonSummary  []PersonSummary `json:"person_summary"`
	Transfers      []Transfer      `json:"transfers"`
}

type CreateBillRequest struct {
	Title string `json:"title"`
}

type CreateBillResponse struct {
	Bill Bill `json:"bill"`
}

type GetBillRequest struct {
	BillID string `json:"bill_id"`
}

type GetBillResponse struct {
	Bill   Bill     `json:"bill"`
	People []Person `json:"people"`
	Items  []Item   `json:"items"`
}

type ListBillsRequest struct{}

type ListBillsResponse struct {
	Bills []Bill `json:"bills"`
}

type DeleteBillRequest struct {
	BillID string `json:"bill_id"`
}

type DeleteBillResponse struct{}

type AddPersonRequest struct {
	BillID string `json:"bill_id"`
	Name   string `json:"name"`
}

type AddPersonResponse struct {
	Person Person `json:"person"`
}

type RemovePersonRequest struct {
	BillID   string `json:"bill_id"`
	PersonID string `json:"person_id"`
}

type RemovePersonResponse struct {
	// RemovedItemIDs are the items the person paid for, deleted with them.
	RemovedItemIDs []string `json:"removed_item_ids"`
}

type AddItemRequest struct {
	BillID string `json:"bill_id"`
	Item   Item   `json:"item"`
}

type AddItemResponse struct {
	Item Item `json:"item"`
}

type RemoveItemRequest struct {
	BillID string `json:"bill_id"`
	ItemID string `json:"item_id"`
}

type RemoveItemResponse struct{}

type GetSummaryRequest struct {
	BillID string `json:"bill_id"`
}

type GetSummaryResponse struct {
	Summary Summary `json:"summary"`
}

// CalculateSummaryRequest carries a complete roster snapshot; nothing is stored.
type CalculateSummaryRequest struct {
	People []Person `json:"people"`
	Items  []Item   `json:"items"`
}

type CalculateSummaryResponse struct {
	Summary Summary `json:"summary"`
}
