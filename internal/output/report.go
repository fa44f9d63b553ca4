package output

import (
	"fmt"
	"io"
	"os"

	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

var rupiahPrinter = message.NewPrinter(language.Indonesian)

// GenerateReport writes the report in the named format
func GenerateReport(w io.Writer, report *domain.CalculationReport, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s", format)
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SaveConfiguration saves a configuration to a file
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// FormatRupiah rounds to whole Rupiah and groups digits the Indonesian way,
// e.g. "Rp 10.050.000" or "-Rp 1.320.000".
func FormatRupiah(amount decimal.Decimal) string {
	whole := amount.Round(0)
	sign := ""
	if whole.IsNegative() {
		sign = "-"
		whole = whole.Neg()
	}
	return sign + "Rp " + rupiahPrinter.Sprintf("%d", whole.IntPart())
}

// FormatPercentage renders a fractional rate as a percentage, e.g. 0.0225 -> "2.25%"
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Shift(2).String() + "%"
}
