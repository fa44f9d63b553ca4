package output

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/pajak/internal/calculation"
	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		in       decimal.Decimal
		expected string
	}{
		{decimal.NewFromInt(10_050_000), "Rp 10.050.000"},
		{decimal.NewFromInt(0), "Rp 0"},
		{decimal.NewFromInt(999), "Rp 999"},
		{decimal.RequireFromString("230179.03"), "Rp 230.179"},
		{decimal.RequireFromString("204081.63"), "Rp 204.082"},
		{decimal.NewFromInt(-1_320_000), "-Rp 1.320.000"},
		{decimal.NewFromInt(1_794_000_000), "Rp 1.794.000.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatRupiah(tt.in))
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "2.25%", FormatPercentage(decimal.RequireFromString("0.0225")))
	assert.Equal(t, "5%", FormatPercentage(decimal.RequireFromString("0.05")))
	assert.Equal(t, "0%", FormatPercentage(decimal.Zero))
	assert.Equal(t, "34%", FormatPercentage(decimal.RequireFromString("34").Shift(-2)))
}

func TestAssumptions(t *testing.T) {
	assert.Equal(t, DefaultAssumptions, Assumptions(domain.RulesMetadata{}))

	withMeta := Assumptions(domain.DefaultRules().Metadata)
	require.Len(t, withMeta, len(DefaultAssumptions)+1)
	assert.Contains(t, withMeta[0], "2024")
}

func TestComparisonFormatters(t *testing.T) {
	in := domain.AnnualInput{
		Taxpayer:     domain.Taxpayer{Name: "Budi", MaritalStatus: domain.StatusSingle, HasNPWP: true},
		Compensation: domain.Compensation{Salary: decimal.NewFromInt(10_000_000)},
	}
	cmp := calculation.NewCalculator().CompareMethods(in)

	table, err := NewComparisonFormatter("table").FormatComparison(&cmp)
	require.NoError(t, err)
	assert.Contains(t, table, "GROSS vs GROSS-UP")
	assert.Contains(t, table, "Budi (TK/0, TER A)")
	assert.Contains(t, table, "Employer extra cost")

	js, err := NewComparisonFormatter("JSON").FormatComparison(&cmp)
	require.NoError(t, err)
	assert.Contains(t, js, `"employer_extra_cost"`)

	_, err = NewComparisonFormatter("table").FormatComparison(nil)
	assert.Error(t, err)
}

func TestFormatTERTable(t *testing.T) {
	table := calculation.RateTableFor(domain.CategoryA)

	rows := TERRows(table)
	require.Len(t, rows, len(table.Brackets)+1)
	assert.True(t, rows[0].From.IsZero())
	assert.True(t, rows[1].From.Equal(decimal.NewFromInt(5_400_001)))
	assert.True(t, rows[len(rows)-1].UpTo.IsZero(), "top row is open-ended")

	text, err := FormatTERTable(table, "table")
	require.NoError(t, err)
	assert.Contains(t, text, "TER CATEGORY A")
	assert.Contains(t, text, "Rp 10.050.000")
	assert.Contains(t, text, "34%")

	csvText, err := FormatTERTable(table, "csv")
	require.NoError(t, err)
	assert.Equal(t, len(rows)+1, len(strings.Split(strings.TrimSpace(csvText), "\n")))

	js, err := FormatTERTable(table, "json")
	require.NoError(t, err)
	assert.Contains(t, js, `"category": "A"`)

	_, err = FormatTERTable(table, "xml")
	assert.Error(t, err)
}
