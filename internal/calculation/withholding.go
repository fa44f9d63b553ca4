package calculation

import (
	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
)

// Calculator computes PPh 21 withholding and the year-end reconciliation.
// It holds no per-call state, so one instance may serve concurrent callers.
type Calculator struct {
	Rules  domain.Rules
	Logger Logger
}

// NewCalculator creates a calculator using the default regulatory rules
func NewCalculator() *Calculator {
	return NewCalculatorWithRules(domain.DefaultRules())
}

// NewCalculatorWithRules creates a calculator with configurable rules; zero
// sections fall back to the defaults.
func NewCalculatorWithRules(rules domain.Rules) *Calculator {
	return &Calculator{
		Rules:  rules.WithDefaults(),
		Logger: NopLogger{},
	}
}

// SetLogger installs a logger; nil restores the no-op logger
func (c *Calculator) SetLogger(l Logger) {
	if l == nil {
		c.Logger = NopLogger{}
		return
	}
	c.Logger = l
}

func (c *Calculator) logger() Logger {
	if c.Logger == nil {
		return NopLogger{}
	}
	return c.Logger
}

// InsuranceAddOn is the employer-paid JKK and JKM premium counted as income
func (c *Calculator) InsuranceAddOn(comp domain.Compensation) decimal.Decimal {
	if !comp.IncludeInsurance {
		return decimal.Zero
	}
	rate := c.Rules.Insurance.JKKRate.Add(c.Rules.Insurance.JKMRate)
	return nonNegative(comp.Salary).Mul(rate)
}

// BaseCash is salary + fixed allowance + the optional insurance add-on
func (c *Calculator) BaseCash(comp domain.Compensation) decimal.Decimal {
	return nonNegative(comp.Salary).
		Add(nonNegative(comp.Allowance)).
		Add(c.InsuranceAddOn(comp))
}

// MonthlyWithholding computes the provisional TER withholding for a regular
// month. Under MethodGrossUp the tax allowance is solved so that it equals
// the tax on base cash plus itself.
func (c *Calculator) MonthlyWithholding(comp domain.Compensation, cat domain.Category, method domain.Method) domain.MonthlyResult {
	if method == "" {
		method = domain.MethodGross
	}
	baseCash := c.BaseCash(comp)
	cash := nonNegative(comp.Salary).Add(nonNegative(comp.Allowance))

	res := domain.MonthlyResult{
		Category:       cat,
		Method:         method,
		BaseCash:       baseCash,
		InsuranceAddOn: c.InsuranceAddOn(comp),
		TaxAllowance:   decimal.Zero,
		Converged:      true,
	}

	rate := ResolveRate(cat, baseCash)
	if method != domain.MethodGrossUp || rate.IsZero() {
		res.Rate = rate
		res.GrossBasis = baseCash
		res.MonthlyTax = baseCash.Mul(rate)
		if method == domain.MethodGrossUp {
			res.TakeHome = cash
		} else {
			res.TakeHome = cash.Sub(res.MonthlyTax)
		}
		return res
	}

	allowance, rate, iterations, converged := c.solveGrossUp(baseCash, cat, rate)
	if !converged {
		c.logger().Warnf("gross-up did not converge for category %s after %d iterations (base cash %s), using last allowance %s",
			cat, iterations, baseCash.StringFixed(0), allowance.StringFixed(2))
	}

	res.Rate = rate
	res.TaxAllowance = allowance
	res.GrossBasis = baseCash.Add(allowance)
	res.MonthlyTax = allowance
	res.TakeHome = cash
	res.Iterations = iterations
	res.Converged = converged
	return res
}

// solveGrossUp iterates A = base*r/(1-r) until the rate resolved at base+A
// equals the rate A was computed with. The rate is a step function of income,
// so a single application can land in a different bracket; the loop walks the
// brackets until the allowance is stable under its own rate. After the
// iteration cap the last allowance is returned with converged=false.
func (c *Calculator) solveGrossUp(baseCash decimal.Decimal, cat domain.Category, initial decimal.Decimal) (allowance, rate decimal.Decimal, iterations int, converged bool) {
	maxIter := c.Rules.GrossUpMaxIterations
	if maxIter <= 0 {
		maxIter = domain.DefaultRules().GrossUpMaxIterations
	}

	one := decimal.NewFromInt(1)
	current := initial
	for iterations < maxIter {
		iterations++
		rate = current
		allowance = baseCash.Mul(rate).Div(one.Sub(rate))
		next := ResolveRate(cat, baseCash.Add(allowance))
		c.logger().Debugf("gross-up iteration %d: rate %s allowance %s next rate %s",
			iterations, rate.String(), allowance.StringFixed(2), next.String())
		if next.Equal(rate) {
			return allowance, rate, iterations, true
		}
		current = next
	}
	return allowance, rate, iterations, false
}
