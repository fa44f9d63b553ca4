// Package record builds the flat history entry handed to whatever stores
// calculation history. Storage itself lives outside this module.
package record

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
)

// TypePPh21 tags records produced by the PPh 21 calculator
const TypePPh21 = "pph21"

// Record is the persistence contract: a type tag, a title, a free-text
// summary, one numeric result and a free-text detail blob.
type Record struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Summary   string          `json:"summary"`
	Result    decimal.Decimal `json:"result"`
	Detail    string          `json:"detail"`
	CreatedAt time.Time       `json:"created_at"`
}

// now is replaced in tests
var now = time.Now

// FromReconciliation builds a record whose numeric result is the total annual
// tax and whose detail is the JSON encoding of the full reconciliation.
func FromReconciliation(r domain.ReconciliationResult, title string) (Record, error) {
	detail, err := json.Marshal(r)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode reconciliation: %w", err)
	}
	if title == "" {
		title = fmt.Sprintf("PPh 21 %s", r.StatusCode)
		if r.Taxpayer.Name != "" {
			title = fmt.Sprintf("PPh 21 %s (%s)", r.Taxpayer.Name, r.StatusCode)
		}
	}
	return Record{
		ID:        uuid.New(),
		Type:      TypePPh21,
		Title:     title,
		Summary:   Summary(r),
		Result:    r.TotalAnnualTax,
		Detail:    string(detail),
		CreatedAt: now().UTC(),
	}, nil
}

// Summary is a one-line description of a reconciliation in whole Rupiah
func Summary(r domain.ReconciliationResult) string {
	m := r.Monthly
	return fmt.Sprintf("%s TER %s %s, monthly %s at %s%%, annual %s, December %s",
		r.StatusCode, m.Category, m.Method,
		m.MonthlyTax.StringFixed(0), m.Rate.Shift(2).String(),
		r.TotalAnnualTax.StringFixed(0), r.DecemberTax.StringFixed(0))
}
