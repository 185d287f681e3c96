// Package domain holds the entity types shared by the store, the importer
// and the report functions, plus the sentinel errors of the storage layer.
package domain

import (
	"github.com/shopspring/decimal"
)

// TransactionType discriminates the three kinds of transactions.
type TransactionType string

const (
	Expense  TransactionType = "expense"
	Income   TransactionType = "income"
	Transfer TransactionType = "transfer"
)

// Direction marks which leg of a transfer pair a transaction is.
type Direction string

const (
	In  Direction = "in"
	Out Direction = "out"
)

// DateFormat is the calendar-date layout used everywhere in the store.
const DateFormat = "2006-01-02"

// MonthFormat is the layout of a budget month tag.
const MonthFormat = "2006-01"

// Transaction is one movement of money. Amount is always a non-negative
// magnitude; sign is carried by Type and, for transfers, Direction.
// Category and Account reference Category.Name and Account.Name — a
// deliberate denormalization; missing matches are ignored, not errors.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Category    string          `json:"category,omitempty"`
	Account     string          `json:"account,omitempty"`
	Description string          `json:"description,omitempty"`

	// TransferID and Direction are set iff Type == Transfer. The two legs
	// of one transfer share the same TransferID.
	TransferID string    `json:"transferId,omitempty"`
	Direction  Direction `json:"direction,omitempty"`
}

// IsTransferLeg reports whether t belongs to a transfer pair.
func (t Transaction) IsTransferLeg() bool {
	return t.Type == Transfer && t.TransferID != ""
}

// Category is a spending category. Name is unique by convention only.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"` // hex string
	Icon  string `json:"icon"`  // short text, usually an emoji
}

// Account is a money container. Balance is the manually entered balance;
// derived balances are computed from transaction history instead.
type Account struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Type    string          `json:"type"` // free-form: checking, savings, ...
	Balance decimal.Decimal `json:"balance"`
	Color   string          `json:"color"`
}

// Budget caps spending for one category. Period is a recurring tag
// ("monthly"); Month is an optional YYYY-MM set by the CSV import path.
// Spend is always aggregated against the current month window regardless
// of either field.
type Budget struct {
	ID       string          `json:"id"`
	Category string          `json:"category"` // joins Category.Name
	Limit    decimal.Decimal `json:"limit"`
	Period   string          `json:"period,omitempty"`
	Month    string          `json:"month,omitempty"` // YYYY-MM
}

// Receipt is an image attached to a transaction, embedded as a data URL.
type Receipt struct {
	ID            string `json:"id"`
	TransactionID string `json:"transactionId"`
	MimeType      string `json:"mimeType"`
	DataURL       string `json:"dataUrl"`
	CreatedAt     string `json:"createdAt"` // RFC 3339
}

// Setting is a singleton key/value pair. Value holds raw JSON.
type Setting struct {
	Key   string `json:"key"`
	Value []byte `json:"value"`
}
