package calculation

import (
	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)
var provisionalMonths = decimal.NewFromInt(11)

// StandardCost is biaya jabatan: a rate of annual gross capped at a fixed amount
func (c *Calculator) StandardCost(annualGross decimal.Decimal, d domain.Deductions) decimal.Decimal {
	if d.SkipStandardCost {
		return decimal.Zero
	}
	cost := nonNegative(annualGross).Mul(c.Rules.StandardCost.Rate)
	return decimal.Min(cost, c.Rules.StandardCost.AnnualCap)
}

// PensionDeduction is the annual employee pension contribution. A manual
// monthly figure wins when positive; otherwise JHT on the full salary plus JP
// on salary capped at the JP wage ceiling.
func (c *Calculator) PensionDeduction(comp domain.Compensation, d domain.Deductions) decimal.Decimal {
	if d.PensionMonthly.IsPositive() {
		return d.PensionMonthly.Mul(monthsPerYear)
	}
	salary := nonNegative(comp.Salary)
	jht := salary.Mul(c.Rules.Pension.JHTRate)
	jpBase := salary
	if c.Rules.Pension.JPSalaryCap.IsPositive() {
		jpBase = decimal.Min(salary, c.Rules.Pension.JPSalaryCap)
	}
	jp := jpBase.Mul(c.Rules.Pension.JPRate)
	return jht.Add(jp).Mul(monthsPerYear)
}

// ReconcileAnnual annualizes the monthly basis, applies deductions and PTKP,
// taxes the result on the Pasal 17 ladder and derives the December settlement
// against eleven months of provisional TER withholding.
func (c *Calculator) ReconcileAnnual(in domain.AnnualInput) domain.ReconciliationResult {
	t := in.Taxpayer
	monthly := c.MonthlyWithholding(in.Compensation, t.Category(), in.Method)

	res := domain.ReconciliationResult{
		Taxpayer:   t,
		StatusCode: t.StatusCode(),
		Monthly:    monthly,
	}

	res.AnnualGross = monthly.GrossBasis.Mul(monthsPerYear).Add(nonNegative(in.Compensation.AnnualBonus))
	res.StandardCost = c.StandardCost(res.AnnualGross, in.Deductions)
	res.Pension = c.PensionDeduction(in.Compensation, in.Deductions)
	res.Zakat = nonNegative(in.Deductions.ZakatMonthly).Mul(monthsPerYear)
	res.NetIncome = res.AnnualGross.Sub(res.StandardCost).Sub(res.Pension).Sub(res.Zakat)
	res.PTKP = c.PTKP(t)
	res.TaxableIncome = RoundDownThousand(res.NetIncome.Sub(res.PTKP))

	res.BracketTax, res.Brackets = ProgressiveTax(res.TaxableIncome, c.Rules.Brackets)
	res.TotalAnnualTax = res.BracketTax
	res.Surcharge = decimal.Zero
	if !t.HasNPWP {
		res.TotalAnnualTax = res.BracketTax.Mul(decimal.NewFromInt(1).Add(c.Rules.NoNPWPSurcharge))
		res.Surcharge = res.TotalAnnualTax.Sub(res.BracketTax)
	}

	res.PaidJanToNov = monthly.MonthlyTax.Mul(provisionalMonths)
	res.DecemberTax = res.TotalAnnualTax.Sub(res.PaidJanToNov)

	c.logger().Debugf("reconciled %s (%s): gross %s pkp %s annual tax %s december %s",
		t.Name, res.StatusCode, res.AnnualGross.StringFixed(0), res.TaxableIncome.StringFixed(0),
		res.TotalAnnualTax.StringFixed(0), res.DecemberTax.StringFixed(0))
	return res
}

// CompareMethods reconciles the same input under both withholding methods
func (c *Calculator) CompareMethods(in domain.AnnualInput) domain.MethodComparison {
	grossIn, grossUpIn := in, in
	grossIn.Method = domain.MethodGross
	grossUpIn.Method = domain.MethodGrossUp

	gross := c.ReconcileAnnual(grossIn)
	grossUp := c.ReconcileAnnual(grossUpIn)

	return domain.MethodComparison{
		Gross:             gross,
		GrossUp:           grossUp,
		EmployerExtraCost: grossUp.Monthly.TaxAllowance.Mul(monthsPerYear),
		TakeHomeGain:      grossUp.Monthly.TakeHome.Sub(gross.Monthly.TakeHome),
		AnnualTaxDelta:    grossUp.TotalAnnualTax.Sub(gross.TotalAnnualTax),
	}
}
