package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneytree/moneytree/internal/domain"
)

// Query narrows a transaction list for display. Zero fields do not
// filter; ranges are inclusive at both ends.
type Query struct {
	Text     string // case-insensitive substring of the description
	Category string
	Account  string
	Start    string // YYYY-MM-DD
	End      string // YYYY-MM-DD
	Min      *decimal.Decimal
	Max      *decimal.Decimal
}

// Filter applies q to txs and returns the matches in input order.
func Filter(txs []domain.Transaction, q Query) []domain.Transaction {
	text := strings.ToLower(q.Text)

	var start, end time.Time
	var hasStart, hasEnd bool
	if t, err := time.Parse(domain.DateFormat, q.Start); err == nil {
		start, hasStart = t, true
	}
	if t, err := time.Parse(domain.DateFormat, q.End); err == nil {
		// End of that calendar day.
		end, hasEnd = t.AddDate(0, 0, 1).Add(-time.Millisecond), true
	}

	var out []domain.Transaction
	for _, t := range txs {
		if text != "" && !strings.Contains(strings.ToLower(t.Description), text) {
			continue
		}
		if q.Category != "" && t.Category != q.Category {
			continue
		}
		if q.Account != "" && t.Account != q.Account {
			continue
		}
		if hasStart || hasEnd {
			d, err := time.Parse(domain.DateFormat, t.Date)
			if err != nil {
				continue
			}
			if hasStart && d.Before(start) {
				continue
			}
			if hasEnd && d.After(end) {
				continue
			}
		}
		if q.Min != nil && t.Amount.LessThan(*q.Min) {
			continue
		}
		if q.Max != nil && t.Amount.GreaterThan(*q.Max) {
			continue
		}
		out = append(out, t)
	}
	return out
}
