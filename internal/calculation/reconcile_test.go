package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertDecimal(t *testing.T, expected, actual decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, expected.Equal(actual), "%s: expected %s, got %s", field, expected, actual)
}

func singleInput(amount int64) domain.AnnualInput {
	return domain.AnnualInput{
		Taxpayer:     domain.Taxpayer{Name: "Budi", MaritalStatus: domain.StatusSingle, HasNPWP: true},
		Compensation: salary(amount),
		Method:       domain.MethodGross,
	}
}

func TestRoundDownThousand(t *testing.T) {
	tests := []struct {
		in       decimal.Decimal
		expected decimal.Decimal
	}{
		{d(56_982_924), d(56_982_000)},
		{d(1_000), d(1_000)},
		{d(999), decimal.Zero},
		{decimal.RequireFromString("12345.99"), d(12_000)},
		{decimal.Zero, decimal.Zero},
		{d(-5), decimal.Zero},
	}

	for _, tt := range tests {
		assertDecimal(t, tt.expected, RoundDownThousand(tt.in), tt.in.String())
	}
}

func TestProgressiveTax(t *testing.T) {
	brackets := domain.DefaultRules().Brackets

	tests := []struct {
		name     string
		taxable  int64
		expected int64
		rungs    int
	}{
		{"zero", 0, 0, 0},
		{"inside first bracket", 56_982_000, 2_849_100, 1},
		{"exactly first bound", 60_000_000, 3_000_000, 1},
		{"third bracket", 300_000_000, 44_000_000, 3},
		{"every bracket", 6_000_000_000, 1_794_000_000, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, breakdown := ProgressiveTax(d(tt.taxable), brackets)
			assertDecimal(t, d(tt.expected), total, "total")
			require.Len(t, breakdown, tt.rungs)

			sum := decimal.Zero
			taxed := decimal.Zero
			for _, b := range breakdown {
				sum = sum.Add(b.Tax)
				taxed = taxed.Add(b.Taxable)
			}
			assertDecimal(t, total, sum, "breakdown sum")
			assertDecimal(t, d(tt.taxable), taxed, "taxable covered")
		})
	}
}

func TestPTKP(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		status     domain.MaritalStatus
		dependents int
		expected   int64
	}{
		{domain.StatusSingle, 0, 54_000_000},
		{domain.StatusSingle, 2, 63_000_000},
		{domain.StatusSeparated, 1, 58_500_000},
		{domain.StatusMarried, 0, 58_500_000},
		{domain.StatusMarried, 3, 72_000_000},
		{domain.StatusMarried, 5, 72_000_000},
	}

	for _, tt := range tests {
		tp := domain.Taxpayer{MaritalStatus: tt.status, Dependents: tt.dependents}
		assertDecimal(t, d(tt.expected), calc.PTKP(tp), tp.StatusCode())
	}
}

func TestReconcileAnnual_SeparatedComputesAsSingle(t *testing.T) {
	calc := NewCalculator()
	in := singleInput(10_050_000)
	in.Taxpayer.Dependents = 1
	single := calc.ReconcileAnnual(in)

	in.Taxpayer.MaritalStatus = domain.StatusSeparated
	separated := calc.ReconcileAnnual(in)

	assert.Equal(t, "TK/1", single.StatusCode)
	assert.Equal(t, "HB/1", separated.StatusCode)
	assert.Equal(t, single.Monthly.Category, separated.Monthly.Category)
	assertDecimal(t, single.PTKP, separated.PTKP, "ptkp")
	assertDecimal(t, single.TotalAnnualTax, separated.TotalAnnualTax, "annual tax")
}

func TestPensionDeduction(t *testing.T) {
	calc := NewCalculator()

	// 2% of 10,050,000 plus 1% of the capped 10,042,300, twelve times
	auto := calc.PensionDeduction(salary(10_050_000), domain.Deductions{})
	assertDecimal(t, d(3_617_076), auto, "auto pension")

	below := calc.PensionDeduction(salary(5_000_000), domain.Deductions{})
	assertDecimal(t, d(1_800_000), below, "below JP cap")

	manual := calc.PensionDeduction(salary(10_050_000), domain.Deductions{PensionMonthly: d(250_000)})
	assertDecimal(t, d(3_000_000), manual, "manual pension")
}

func TestStandardCost(t *testing.T) {
	calc := NewCalculator()

	assertDecimal(t, d(3_000_000), calc.StandardCost(d(60_000_000), domain.Deductions{}), "5% of gross")
	assertDecimal(t, d(6_000_000), calc.StandardCost(d(120_600_000), domain.Deductions{}), "capped")
	assertDecimal(t, decimal.Zero, calc.StandardCost(d(120_600_000), domain.Deductions{SkipStandardCost: true}), "skipped")
}

func TestReconcileAnnual_Worked(t *testing.T) {
	calc := NewCalculator()

	res := calc.ReconcileAnnual(singleInput(10_050_000))

	assert.Equal(t, "TK/0", res.StatusCode)
	assertDecimal(t, d(201_000), res.Monthly.MonthlyTax, "monthly tax")
	assertDecimal(t, d(120_600_000), res.AnnualGross, "annual gross")
	assertDecimal(t, d(6_000_000), res.StandardCost, "standard cost")
	assertDecimal(t, d(3_617_076), res.Pension, "pension")
	assertDecimal(t, d(110_982_924), res.NetIncome, "net income")
	assertDecimal(t, d(54_000_000), res.PTKP, "ptkp")
	assertDecimal(t, d(56_982_000), res.TaxableIncome, "pkp")
	assertDecimal(t, d(2_849_100), res.TotalAnnualTax, "annual tax")
	assertDecimal(t, decimal.Zero, res.Surcharge, "surcharge")
	assertDecimal(t, d(2_211_000), res.PaidJanToNov, "paid Jan-Nov")
	assertDecimal(t, d(638_100), res.DecemberTax, "december")
	assert.False(t, res.IsRefund())
	assert.Len(t, res.Brackets, 1)
}

func TestReconcileAnnual_NoNPWPSurcharge(t *testing.T) {
	calc := NewCalculator()
	in := singleInput(10_050_000)
	in.Taxpayer.HasNPWP = false

	res := calc.ReconcileAnnual(in)

	assertDecimal(t, d(2_849_100), res.BracketTax, "bracket tax")
	assertDecimal(t, d(3_418_920), res.TotalAnnualTax, "annual tax")
	assertDecimal(t, d(569_820), res.Surcharge, "surcharge")
}

func TestReconcileAnnual_NetEqualsPTKPRefundsEverything(t *testing.T) {
	calc := NewCalculator()
	in := singleInput(8_000_000)
	// 96,000,000 gross - 4,800,000 standard cost - 37,200,000 pension = 54,000,000
	in.Deductions.PensionMonthly = d(3_100_000)

	res := calc.ReconcileAnnual(in)

	assertDecimal(t, res.PTKP, res.NetIncome, "net income")
	assertDecimal(t, decimal.Zero, res.TaxableIncome, "pkp")
	assertDecimal(t, decimal.Zero, res.TotalAnnualTax, "annual tax")
	assertDecimal(t, d(120_000), res.Monthly.MonthlyTax, "monthly tax")
	assertDecimal(t, d(-1_320_000), res.DecemberTax, "december")
	assert.True(t, res.IsRefund())
	assert.Empty(t, res.Brackets)
}

func TestReconcileAnnual_BonusAddedOnce(t *testing.T) {
	calc := NewCalculator()
	in := singleInput(10_050_000)
	in.Compensation.AnnualBonus = d(10_000_000)

	res := calc.ReconcileAnnual(in)

	assertDecimal(t, d(130_600_000), res.AnnualGross, "annual gross")
	assertDecimal(t, d(201_000), res.Monthly.MonthlyTax, "bonus does not affect the regular-month rate")
}

func TestReconcileAnnual_ZakatAndSkippedStandardCost(t *testing.T) {
	calc := NewCalculator()
	in := singleInput(10_050_000)
	in.Deductions.ZakatMonthly = d(100_000)
	in.Deductions.SkipStandardCost = true

	res := calc.ReconcileAnnual(in)

	assertDecimal(t, d(1_200_000), res.Zakat, "zakat")
	assertDecimal(t, decimal.Zero, res.StandardCost, "standard cost")
	assertDecimal(t, d(120_600_000-3_617_076-1_200_000), res.NetIncome, "net income")
}

func TestReconcileAnnual_Properties(t *testing.T) {
	calc := NewCalculator()
	thousand := d(1000)
	statuses := []domain.Taxpayer{
		{MaritalStatus: domain.StatusSingle, HasNPWP: true},
		{MaritalStatus: domain.StatusMarried, Dependents: 1, HasNPWP: true},
		{MaritalStatus: domain.StatusMarried, Dependents: 3, HasNPWP: false},
		{MaritalStatus: domain.StatusSeparated, Dependents: 2, HasNPWP: true},
	}

	for _, tp := range statuses {
		for _, method := range []domain.Method{domain.MethodGross, domain.MethodGrossUp} {
			for amount := int64(0); amount <= 120_000_000; amount += 3_333_333 {
				in := domain.AnnualInput{
					Taxpayer:     tp,
					Compensation: domain.Compensation{Salary: d(amount), IncludeInsurance: true, AnnualBonus: d(amount)},
					Method:       method,
				}
				res := calc.ReconcileAnnual(in)

				require.False(t, res.TaxableIncome.IsNegative(), "pkp must not be negative")
				require.True(t, res.TaxableIncome.Mod(thousand).IsZero(), "pkp %s not a multiple of 1000", res.TaxableIncome)
				require.True(t, res.PaidJanToNov.Add(res.DecemberTax).Equal(res.TotalAnnualTax), "withholding does not add up to annual tax")

				if !tp.HasNPWP {
					require.True(t, res.TotalAnnualTax.Equal(res.BracketTax.Mul(decimal.RequireFromString("1.2"))), "surcharge is not 20%%")
				}

				sum := decimal.Zero
				for _, row := range res.Schedule() {
					sum = sum.Add(row.Tax)
				}
				require.True(t, sum.Equal(res.TotalAnnualTax), "schedule sums to %s, want %s", sum, res.TotalAnnualTax)
			}
		}
	}
}

func TestReconciliationResult_Schedule(t *testing.T) {
	calc := NewCalculator()
	res := calc.ReconcileAnnual(singleInput(10_050_000))

	schedule := res.Schedule()
	require.Len(t, schedule, 12)
	assert.Equal(t, time.January, schedule[0].Month)
	assertDecimal(t, d(201_000), schedule[10].Tax, "november")
	assert.Equal(t, time.December, schedule[11].Month)
	assertDecimal(t, d(638_100), schedule[11].Tax, "december")
}

func TestCompareMethods(t *testing.T) {
	calc := NewCalculator()
	cmp := calc.CompareMethods(singleInput(10_000_000))

	assert.Equal(t, domain.MethodGross, cmp.Gross.Monthly.Method)
	assert.Equal(t, domain.MethodGrossUp, cmp.GrossUp.Monthly.Method)
	assertDecimal(t, cmp.GrossUp.Monthly.TaxAllowance.Mul(d(12)), cmp.EmployerExtraCost, "employer extra cost")
	assert.True(t, cmp.TakeHomeGain.IsPositive(), "gross-up raises take-home")
	assertDecimal(t, cmp.Gross.Monthly.MonthlyTax, cmp.TakeHomeGain, "gain equals the tax no longer deducted")
	assert.True(t, cmp.GrossUp.AnnualGross.GreaterThan(cmp.Gross.AnnualGross))
	assert.True(t, cmp.AnnualTaxDelta.IsPositive())
}
