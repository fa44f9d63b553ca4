package compare

import (
	"fmt"

	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one scenario's headline figures
type ComparisonResult struct {
	ScenarioName string                       `json:"scenario_name"`
	Description  string                       `json:"description"`
	Result       *domain.ReconciliationResult `json:"-"`

	StatusCode     string          `json:"status_code"`
	Category       domain.Category `json:"category"`
	Method         domain.Method   `json:"method"`
	Salary         decimal.Decimal `json:"salary"`
	MonthlyTax     decimal.Decimal `json:"monthly_tax"`
	TakeHome       decimal.Decimal `json:"take_home"`
	AnnualTax      decimal.Decimal `json:"annual_tax"`
	DecemberTax    decimal.Decimal `json:"december_tax"`
	EffectiveRate  decimal.Decimal `json:"effective_rate"` // annual tax over annual gross
	EmployerCost   decimal.Decimal `json:"employer_cost"`  // annual cash plus tax allowances
	NPWPSurcharge  decimal.Decimal `json:"npwp_surcharge"`
	DecemberRefund bool            `json:"december_refund"`

	// Comparison to base
	TakeHomeDiffFromBase     decimal.Decimal `json:"take_home_diff_from_base"`
	AnnualTaxDiffFromBase    decimal.Decimal `json:"annual_tax_diff_from_base"`
	AnnualTaxPctFromBase     decimal.Decimal `json:"annual_tax_pct_from_base"`
	EmployerCostDiffFromBase decimal.Decimal `json:"employer_cost_diff_from_base"`
}

// ComparisonSet is a base scenario plus its what-if alternatives
type ComparisonSet struct {
	BaseScenarioName   string             `json:"base_scenario_name"`
	BaseResult         *ComparisonResult  `json:"base_result"`
	AlternativeResults []ComparisonResult `json:"alternative_results"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"config_path,omitempty"`
}

var (
	hundred = decimal.NewFromInt(100)
	months  = decimal.NewFromInt(12)
)

// MetricsCalculator extracts comparison metrics from reconciliations
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the headline figures for one reconciliation
func (mc *MetricsCalculator) CalculateMetrics(name string, in domain.AnnualInput, r domain.ReconciliationResult) ComparisonResult {
	m := r.Monthly
	result := ComparisonResult{
		ScenarioName:   name,
		Result:         &r,
		StatusCode:     r.StatusCode,
		Category:       m.Category,
		Method:         m.Method,
		Salary:         in.Compensation.Salary,
		MonthlyTax:     m.MonthlyTax,
		TakeHome:       m.TakeHome,
		AnnualTax:      r.TotalAnnualTax,
		DecemberTax:    r.DecemberTax,
		NPWPSurcharge:  r.Surcharge,
		DecemberRefund: r.IsRefund(),
	}

	if r.AnnualGross.IsPositive() {
		result.EffectiveRate = r.TotalAnnualTax.Div(r.AnnualGross)
	}

	cash := m.BaseCash.Sub(m.InsuranceAddOn).Mul(months).Add(in.Compensation.AnnualBonus)
	result.EmployerCost = cash.Add(m.TaxAllowance.Mul(months))

	return result
}

// CalculateComparison computes deltas between a scenario and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TakeHomeDiffFromBase = scenario.TakeHome.Sub(base.TakeHome)
	scenario.AnnualTaxDiffFromBase = scenario.AnnualTax.Sub(base.AnnualTax)
	scenario.EmployerCostDiffFromBase = scenario.EmployerCost.Sub(base.EmployerCost)

	if !base.AnnualTax.IsZero() {
		scenario.AnnualTaxPctFromBase = scenario.AnnualTaxDiffFromBase.
			Div(base.AnnualTax).
			Mul(hundred)
	}

	return scenario
}

// GenerateRecommendations summarises which alternatives beat the base
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	bestTakeHome := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TakeHome.GreaterThan(bestTakeHome.TakeHome) {
			bestTakeHome = alt
		}
	}
	if bestTakeHome != compSet.BaseResult {
		diff := bestTakeHome.TakeHome.Sub(compSet.BaseResult.TakeHome)
		recommendations = append(recommendations,
			"Best Take-Home: "+bestTakeHome.ScenarioName+" adds Rp "+diff.StringFixed(0)+" per month")
	}

	lowestTax := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.AnnualTax.LessThan(lowestTax.AnnualTax) {
			lowestTax = alt
		}
	}
	if lowestTax != compSet.BaseResult {
		savings := compSet.BaseResult.AnnualTax.Sub(lowestTax.AnnualTax)
		recommendations = append(recommendations,
			"Lowest Tax: "+lowestTax.ScenarioName+" saves Rp "+savings.StringFixed(0)+" a year")
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.NPWPSurcharge.IsPositive() && !compSet.BaseResult.NPWPSurcharge.IsPositive() {
			recommendations = append(recommendations,
				fmt.Sprintf("NPWP: %s pays a Rp %s surcharge without a tax ID", alt.ScenarioName, alt.NPWPSurcharge.StringFixed(0)))
		}
		if alt.DecemberRefund && !compSet.BaseResult.DecemberRefund {
			recommendations = append(recommendations,
				fmt.Sprintf("Refund: %s over-withholds during the year; December settles a refund", alt.ScenarioName))
		}
	}

	return recommendations
}
