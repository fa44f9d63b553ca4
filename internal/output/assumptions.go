package output

import (
	"fmt"

	"github.com/rgehrsitz/pajak/internal/domain"
)

// DefaultAssumptions lists the regulatory basis rendered in detailed outputs
var DefaultAssumptions = []string{
	"Regular-month withholding uses the TER tables of PP 58/2023 (categories A, B, C)",
	"December withholding settles the annual Pasal 17 tax less eleven provisional months",
	"Biaya jabatan: 5% of annual gross, capped at Rp 6.000.000",
	"Employee pension: JHT 2% of salary plus JP 1% of salary up to the JP wage cap",
	"Taxpayers without an NPWP pay 20% more annual tax",
}

// Assumptions prefixes the regulatory data set description to the defaults
func Assumptions(meta domain.RulesMetadata) []string {
	if meta.Description == "" {
		return DefaultAssumptions
	}
	out := []string{fmt.Sprintf("Rules (%d): %s", meta.DataYear, meta.Description)}
	return append(out, DefaultAssumptions...)
}
