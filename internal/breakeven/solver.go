package breakeven

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/pajak/internal/calculation"
	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// maxDoublings bounds the upper-bracket search; 2^60 Rupiah is far above
	// any salary.
	maxDoublings = 60

	// maxBands bounds the band walk; every TER table has fewer rows
	maxBands = 64

	// pkpStep is the PKP rounding unit. One step never costs more than
	// itself in tax, so a band top further than this below the target
	// cannot hide a qualifying salary.
	pkpStep = 1000

	// rippleWindow covers one PKP step in monthly salary; annual PKP grows
	// by at least eleven Rupiah per Rupiah of salary.
	rippleWindow = 200
)

var (
	one  = decimal.NewFromInt(1)
	two  = decimal.NewFromInt(2)
	year = decimal.NewFromInt(12)
)

// Solver finds the salary that reaches a net pay target
type Solver struct {
	Calc    *calculation.Calculator
	Options SolverOptions
}

// NewSolver creates a new salary solver
func NewSolver(calc *calculation.Calculator, options SolverOptions) *Solver {
	return &Solver{Calc: calc, Options: options}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calc *calculation.Calculator) *Solver {
	return NewSolver(calc, DefaultSolverOptions())
}

// Solve returns the lowest whole-Rupiah salary at which the target is met.
// Take-home is not monotone in salary: it dips just above every TER band
// edge, so the search walks the salary range one TER rate band at a time
// from the bottom and bisects inside the first band whose top meets the
// target. The annual net figure also ripples with the Rp 1,000 PKP floor;
// that ripple is resolved by a short downward scan around the bisection
// result.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Target, _ = ParseTarget(string(req.Target))
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
		// one Rupiah of salary moves annual cash by twelve
		if req.Target == TargetAnnualNet {
			req.Tolerance = req.Tolerance.Mul(year)
		}
	}

	sr := &search{solver: s, req: req, cat: req.Base.Taxpayer.Category()}

	lo := decimal.Zero
	if got, res := sr.eval(lo); got.GreaterThanOrEqual(req.Amount) {
		return s.result(req, lo, got, res, 0, "allowance and bonus alone meet the target"), nil
	}

	hi := decimal.Max(req.Amount, one)
	doublings := 0
	for !sr.meets(hi) {
		doublings++
		if doublings > maxDoublings {
			return nil, &BreakEvenError{Operation: "solve", Message: "target is unreachable"}
		}
		hi = hi.Mul(two)
	}

	start := decimal.Zero
	for band := 0; band < maxBands; band++ {
		end, err := sr.bandEnd(ctx, start, hi)
		if err != nil {
			return nil, err
		}

		top, found := sr.topMeeting(start, end)
		if found {
			salary, iterations, err := sr.lowest(ctx, start, top)
			if err != nil {
				return nil, err
			}
			got, res := sr.eval(salary)
			return s.result(req, salary, got, res, iterations, "lowest qualifying salary found"), nil
		}

		if end.GreaterThanOrEqual(hi) {
			break
		}
		start = end.Add(one)
	}

	return nil, &BreakEvenError{Operation: "solve", Message: fmt.Sprintf("no TER band below %s meets the target", hi.StringFixed(0))}
}

// search holds one Solve call's request and evaluation helpers
type search struct {
	solver *Solver
	req    Request
	cat    domain.Category
}

func (sr *search) input(salary decimal.Decimal) domain.AnnualInput {
	in := sr.req.Base
	in.Compensation.Salary = salary
	return in
}

func (sr *search) eval(salary decimal.Decimal) (decimal.Decimal, domain.ReconciliationResult) {
	in := sr.input(salary)
	res := sr.solver.Calc.ReconcileAnnual(in)
	return achieved(sr.req.Target, in.Compensation, res), res
}

func (sr *search) meets(salary decimal.Decimal) bool {
	got, _ := sr.eval(salary)
	return got.GreaterThanOrEqual(sr.req.Amount)
}

func (sr *search) rate(salary decimal.Decimal) decimal.Decimal {
	in := sr.input(salary)
	return sr.solver.Calc.MonthlyWithholding(in.Compensation, sr.cat, in.Method).Rate
}

// window is how far below a candidate the annual net ripple is scanned
func (sr *search) window() int64 {
	if sr.req.Target == TargetAnnualNet {
		return rippleWindow
	}
	return 0
}

// bandEnd returns the highest salary in [start, hi] that resolves to the
// same TER rate as start.
func (sr *search) bandEnd(ctx context.Context, start, hi decimal.Decimal) (decimal.Decimal, error) {
	r := sr.rate(start)
	if sr.rate(hi).Equal(r) {
		return hi, nil
	}
	past := func(salary decimal.Decimal) bool { return !sr.rate(salary).Equal(r) }
	first, _, err := sr.bisect(ctx, start, hi, past)
	if err != nil {
		return decimal.Zero, err
	}
	return first.Sub(one), nil
}

// topMeeting finds a salary near the top of [start, end] that meets the
// target. Within a band take-home rises with salary, so the band's top
// decides; for annual net a PKP ripple can leave the top just short while a
// salary a few Rupiah lower meets.
func (sr *search) topMeeting(start, end decimal.Decimal) (decimal.Decimal, bool) {
	got, _ := sr.eval(end)
	if got.GreaterThanOrEqual(sr.req.Amount) {
		return end, true
	}
	if sr.window() == 0 || got.LessThan(sr.req.Amount.Sub(decimal.NewFromInt(pkpStep))) {
		return decimal.Zero, false
	}
	floor := decimal.Max(start, end.Sub(decimal.NewFromInt(sr.window())))
	for x := end.Sub(one); x.GreaterThanOrEqual(floor); x = x.Sub(one) {
		if sr.meets(x) {
			return x, true
		}
	}
	return decimal.Zero, false
}

// lowest returns the lowest salary in [start, top] that meets the target,
// given that top meets it.
func (sr *search) lowest(ctx context.Context, start, top decimal.Decimal) (decimal.Decimal, int, error) {
	if sr.meets(start) {
		return start, 0, nil
	}
	salary, iterations, err := sr.bisect(ctx, start, top, sr.meets)
	if err != nil {
		return decimal.Zero, 0, err
	}

	// annual net only: step past earlier PKP ripples until a full window
	// below the candidate misses
	if w := sr.window(); w > 0 {
		for {
			floor := decimal.Max(start, salary.Sub(decimal.NewFromInt(w)))
			lower := salary
			for x := salary.Sub(one); x.GreaterThanOrEqual(floor); x = x.Sub(one) {
				if sr.meets(x) {
					lower = x
				}
			}
			if lower.Equal(salary) {
				break
			}
			salary = lower
		}
	}
	return salary, iterations, nil
}

// bisect returns the lowest salary in (lo, hi] where ok holds, given ok(lo)
// is false and ok(hi) is true. ok must flip once on the interval.
func (sr *search) bisect(ctx context.Context, lo, hi decimal.Decimal, ok func(decimal.Decimal) bool) (decimal.Decimal, int, error) {
	iterations := 0
	for hi.Sub(lo).GreaterThan(one) {
		if err := ctx.Err(); err != nil {
			return decimal.Zero, iterations, err
		}
		iterations++
		if iterations > sr.req.MaxIterations {
			return decimal.Zero, iterations, &BreakEvenError{
				Operation: "solve",
				Message:   fmt.Sprintf("did not converge after %d iterations", sr.req.MaxIterations),
			}
		}

		mid := lo.Add(hi).Div(two).Floor()
		if ok(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi, iterations, nil
}

func (s *Solver) result(req Request, salary, got decimal.Decimal, res domain.ReconciliationResult, iterations int, info string) *Result {
	diff := got.Sub(req.Amount)
	success := diff.LessThanOrEqual(req.Tolerance)
	if !success {
		info = fmt.Sprintf("nearest whole-Rupiah salary overshoots by %s", diff.StringFixed(2))
	}
	return &Result{
		Target:          req.Target,
		Amount:          req.Amount,
		Salary:          salary,
		Achieved:        got,
		Difference:      diff,
		Success:         success,
		Iterations:      iterations,
		ConvergenceInfo: info,
		Reconciliation:  res,
	}
}

// achieved evaluates the target figure for one reconciliation
func achieved(target Target, comp domain.Compensation, r domain.ReconciliationResult) decimal.Decimal {
	if target == TargetTakeHome {
		return r.Monthly.TakeHome
	}
	cash := r.Monthly.BaseCash.Sub(r.Monthly.InsuranceAddOn).Mul(year).
		Add(decimal.Max(comp.AnnualBonus, decimal.Zero))
	borne := r.TotalAnnualTax.Sub(r.Monthly.TaxAllowance.Mul(year))
	return cash.Sub(borne)
}

func normalize(s string) string {
	return strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(s)))
}
