package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/rgehrsitz/pajak/internal/calculation"
	"github.com/shopspring/decimal"
)

// TERRow is one printable row of a TER table
type TERRow struct {
	From decimal.Decimal `json:"from"`
	UpTo decimal.Decimal `json:"up_to"` // zero on the open-ended top row
	Rate decimal.Decimal `json:"rate"`
}

// TERRows flattens a rate table into contiguous ranges ending with the top rate
func TERRows(table calculation.RateTable) []TERRow {
	rows := make([]TERRow, 0, len(table.Brackets)+1)
	from := decimal.Zero
	one := decimal.NewFromInt(1)
	for _, b := range table.Brackets {
		rows = append(rows, TERRow{From: from, UpTo: b.UpTo, Rate: b.Rate})
		from = b.UpTo.Add(one)
	}
	return append(rows, TERRow{From: from, Rate: table.TopRate})
}

// FormatTERTable renders a rate table as "table", "csv" or "json"
func FormatTERTable(table calculation.RateTable, format string) (string, error) {
	rows := TERRows(table)
	switch format {
	case "json":
		data, err := json.MarshalIndent(struct {
			Category string   `json:"category"`
			Rows     []TERRow `json:"rows"`
		}{string(table.Category), rows}, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "csv":
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write([]string{"From", "UpTo", "Rate"}); err != nil {
			return "", err
		}
		for _, r := range rows {
			upTo := ""
			if !r.UpTo.IsZero() {
				upTo = r.UpTo.String()
			}
			if err := w.Write([]string{r.From.String(), upTo, r.Rate.String()}); err != nil {
				return "", err
			}
		}
		w.Flush()
		return buf.String(), w.Error()
	case "", "table", "console":
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "TER CATEGORY %s (monthly gross income)\n", table.Category)
		fmt.Fprintln(&buf, "=================================================")
		for _, r := range rows {
			if r.UpTo.IsZero() {
				fmt.Fprintf(&buf, "  above %-34s %6s\n", FormatRupiah(r.From.Sub(decimal.NewFromInt(1))), FormatPercentage(r.Rate))
				continue
			}
			fmt.Fprintf(&buf, "  %16s - %-16s %6s\n", FormatRupiah(r.From), FormatRupiah(r.UpTo), FormatPercentage(r.Rate))
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
