package models

// Bill groups a roster of people and the items they bought.
// Each bill is settled independently of every other bill.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// Title is the human-readable name for the bill.
	// Auto-generated from the creation date when left empty.
	Title string

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64
}

// Person represents someone taking part in a bill.
type Person struct {
	// ID is the unique, stable identifier for the person (UUID format).
	ID string

	// Name is the display name. Never empty after trimming.
	Name string
}
