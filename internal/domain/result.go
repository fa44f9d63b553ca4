package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyResult is the provisional withholding for one regular month
type MonthlyResult struct {
	Category       Category        `json:"category"`
	Method         Method          `json:"method"`
	Rate           decimal.Decimal `json:"rate"`
	BaseCash       decimal.Decimal `json:"base_cash"` // salary + allowance + insurance add-on
	InsuranceAddOn decimal.Decimal `json:"insurance_add_on"`
	TaxAllowance   decimal.Decimal `json:"tax_allowance"` // zero for MethodGross
	GrossBasis     decimal.Decimal `json:"gross_basis"`   // BaseCash + TaxAllowance
	MonthlyTax     decimal.Decimal `json:"monthly_tax"`
	TakeHome       decimal.Decimal `json:"take_home"` // salary + allowance - employee-borne tax
	Iterations     int             `json:"iterations"`
	Converged      bool            `json:"converged"`
}

// BracketTax is the tax owed inside one Pasal 17 bracket
type BracketTax struct {
	From    decimal.Decimal `json:"from"`
	UpTo    decimal.Decimal `json:"up_to"` // zero for the unbounded bracket
	Rate    decimal.Decimal `json:"rate"`
	Taxable decimal.Decimal `json:"taxable"`
	Tax     decimal.Decimal `json:"tax"`
}

// ReconciliationResult is the year-end PPh 21 settlement
type ReconciliationResult struct {
	Taxpayer       Taxpayer        `json:"taxpayer"`
	StatusCode     string          `json:"status_code"`
	Monthly        MonthlyResult   `json:"monthly"`
	AnnualGross    decimal.Decimal `json:"annual_gross"`
	StandardCost   decimal.Decimal `json:"standard_cost"`
	Pension        decimal.Decimal `json:"pension"`
	Zakat          decimal.Decimal `json:"zakat"`
	NetIncome      decimal.Decimal `json:"net_income"`
	PTKP           decimal.Decimal `json:"ptkp"`
	TaxableIncome  decimal.Decimal `json:"taxable_income"`
	Brackets       []BracketTax    `json:"brackets"`
	BracketTax     decimal.Decimal `json:"bracket_tax"` // before the no-NPWP surcharge
	Surcharge      decimal.Decimal `json:"surcharge"`
	TotalAnnualTax decimal.Decimal `json:"total_annual_tax"`
	PaidJanToNov   decimal.Decimal `json:"paid_jan_to_nov"`
	DecemberTax    decimal.Decimal `json:"december_tax"` // negative means refund
}

// IsRefund reports whether December settles with a credit to the employee
func (r ReconciliationResult) IsRefund() bool {
	return r.DecemberTax.IsNegative()
}

// MonthlyWithholding is one row of the January-December schedule
type MonthlyWithholding struct {
	Month time.Month      `json:"month"`
	Tax   decimal.Decimal `json:"tax"`
}

// Schedule returns the twelve monthly withholdings: eleven provisional TER
// months and the December settlement.
func (r ReconciliationResult) Schedule() []MonthlyWithholding {
	rows := make([]MonthlyWithholding, 0, 12)
	for m := time.January; m < time.December; m++ {
		rows = append(rows, MonthlyWithholding{Month: m, Tax: r.Monthly.MonthlyTax})
	}
	return append(rows, MonthlyWithholding{Month: time.December, Tax: r.DecemberTax})
}

// MethodComparison puts both withholding methods side by side for one input
type MethodComparison struct {
	Gross   ReconciliationResult `json:"gross"`
	GrossUp ReconciliationResult `json:"gross_up"`
	// EmployerExtraCost is the annual tax allowance the employer pays under gross-up
	EmployerExtraCost decimal.Decimal `json:"employer_extra_cost"`
	// TakeHomeGain is the monthly take-home difference (gross-up minus gross)
	TakeHomeGain decimal.Decimal `json:"take_home_gain"`
	// AnnualTaxDelta is the additional annual tax generated by the allowance
	AnnualTaxDelta decimal.Decimal `json:"annual_tax_delta"`
}

// TaxpayerResult pairs a configured taxpayer with its computed outcome
type TaxpayerResult struct {
	Name   string               `json:"name"`
	Input  AnnualInput          `json:"input"`
	Result ReconciliationResult `json:"result"`
}

// CalculationReport is the output of a batch run over a Configuration
type CalculationReport struct {
	Rules   RulesMetadata    `json:"rules"`
	Results []TaxpayerResult `json:"results"`
}

// TotalAnnualTax sums the annual tax across every taxpayer in the report
func (c *CalculationReport) TotalAnnualTax() decimal.Decimal {
	total := decimal.Zero
	for _, r := range c.Results {
		total = total.Add(r.Result.TotalAnnualTax)
	}
	return total
}
