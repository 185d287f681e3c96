package csvio

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/moneytree/moneytree/internal/domain"
)

// ParseTransactions parses the simple transactions CSV format: a header
// row of date,description,amount,type,category,account (aliases amt,
// memo and posted accepted) followed by data rows.
//
// When the type column is absent or empty, the sign of the amount decides:
// negative reads as an expense, anything else as income. The returned
// amount is always the absolute value. Blank lines are skipped. Parsing
// is pure and never fails; rows get no IDs — callers assign them on write.
func ParseTransactions(text string) []domain.Transaction {
	lines := Lines(text)
	if len(lines) == 0 || lines[0] == "" {
		return nil
	}
	header := Header(SplitLine(lines[0]))

	var out []domain.Transaction
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row := Row(header, SplitLine(line))

		raw := Amount(pick(row, "amount", "amt"))
		txType := domain.TransactionType(strings.ToLower(row["type"]))
		if txType == "" {
			if raw.IsNegative() {
				txType = domain.Expense
			} else {
				txType = domain.Income
			}
		}
		out = append(out, domain.Transaction{
			Type:        txType,
			Amount:      raw.Abs(),
			Date:        pick(row, "date", "posted"),
			Category:    row["category"],
			Account:     row["account"],
			Description: pick(row, "description", "memo"),
		})
	}
	return out
}

// Amount coerces a CSV cell to a decimal. Empty or non-numeric cells
// read as zero — bad numbers degrade, they do not abort a row.
func Amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// pick returns the first non-empty value among the named columns.
func pick(row map[string]string, cols ...string) string {
	for _, c := range cols {
		if row[c] != "" {
			return row[c]
		}
	}
	return ""
}
