// Package models defines the core domain models for billsplit.
//
// # Stored Models
//
// The following models are persisted by the storage layer:
//   - Bill: A scope holding one roster of people and their items
//   - Person: Someone taking part in the bill
//   - Item: A purchase, fronted by one payer and shared by participants
//
// # Derived Models
//
// The following models are computed on every read and never stored:
//   - PersonSummary: What one person paid, owes and their net balance
//   - Transfer: A debtor to creditor payment instruction
//   - Summary: The full settlement result for a bill
//
// # Design Principles
//
//  1. Relationships use ID strings, not pointers
//  2. Participants is an explicit variant; "everyone" is never encoded as an empty list
//  3. Amounts are float64; rounding is left to the presentation layer
package models
