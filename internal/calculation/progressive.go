package calculation

import (
	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

// RoundDownThousand floors a taxable income to a whole thousand Rupiah and
// clamps it at zero.
func RoundDownThousand(amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(thousand).Floor().Mul(thousand)
}

// ProgressiveTax walks the Pasal 17 ladder over an annual taxable income and
// returns the total and the per-bracket breakdown. Brackets past the point
// where the income is exhausted are omitted.
func ProgressiveTax(taxableIncome decimal.Decimal, brackets []domain.ProgressiveBracket) (decimal.Decimal, []domain.BracketTax) {
	total := decimal.Zero
	var breakdown []domain.BracketTax

	remaining := nonNegative(taxableIncome)
	lower := decimal.Zero
	for i, b := range brackets {
		if !remaining.IsPositive() {
			break
		}

		inBracket := remaining
		last := i == len(brackets)-1
		if !last || !b.Unbounded() {
			width := b.UpTo.Sub(lower)
			if !width.IsPositive() {
				continue
			}
			inBracket = decimal.Min(remaining, width)
		}

		tax := inBracket.Mul(b.Rate)
		total = total.Add(tax)
		breakdown = append(breakdown, domain.BracketTax{
			From:    lower,
			UpTo:    b.UpTo,
			Rate:    b.Rate,
			Taxable: inBracket,
			Tax:     tax,
		})

		remaining = remaining.Sub(inBracket)
		lower = b.UpTo
	}

	return total, breakdown
}

// PTKP is the annual non-taxable threshold for a taxpayer
func (c *Calculator) PTKP(t domain.Taxpayer) decimal.Decimal {
	ptkp := c.Rules.PTKP.Base
	if t.MaritalStatus.IsMarried() {
		ptkp = ptkp.Add(c.Rules.PTKP.Married)
	}
	return ptkp.Add(c.Rules.PTKP.Dependent.Mul(decimal.NewFromInt(int64(t.CountedDependents()))))
}
