package breakeven

import (
	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
)

// Target names the figure the solver matches
type Target string

const (
	// TargetTakeHome is the regular-month (January-November) take-home pay
	TargetTakeHome Target = "take_home"
	// TargetAnnualNet is the year's cash after the December settlement:
	// twelve months of salary and allowance plus the bonus, less the tax the
	// employee bears. Under gross-up the TER allowance offsets that tax.
	TargetAnnualNet Target = "annual_net"
)

// ParseTarget accepts "take_home", "take-home", "annual_net" and "annual-net"
func ParseTarget(s string) (Target, error) {
	switch t := Target(normalize(s)); t {
	case TargetTakeHome, TargetAnnualNet:
		return t, nil
	default:
		return "", &BreakEvenError{Operation: "parse_target", Message: "unknown target " + s + " (want take_home or annual_net)"}
	}
}

// Request asks for the monthly salary that produces Amount for Target. Base
// carries every other input; its salary is ignored.
type Request struct {
	Base          domain.AnnualInput
	Target        Target
	Amount        decimal.Decimal
	MaxIterations int             // zero uses the solver default
	Tolerance     decimal.Decimal // zero uses the solver default
}

// Result is the solved salary and the full reconciliation at that salary
type Result struct {
	Target          Target                      `json:"target"`
	Amount          decimal.Decimal             `json:"amount"`
	Salary          decimal.Decimal             `json:"salary"`
	Achieved        decimal.Decimal             `json:"achieved"`
	Difference      decimal.Decimal             `json:"difference"` // achieved minus amount
	Success         bool                        `json:"success"`
	Iterations      int                         `json:"iterations"`
	ConvergenceInfo string                      `json:"convergence_info"`
	Reconciliation  domain.ReconciliationResult `json:"reconciliation"`
}

// SolverOptions configures the search
type SolverOptions struct {
	Tolerance     decimal.Decimal // accepted overshoot in Rupiah
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 100,
	}
}

// Validate checks the request before solving
func (r *Request) Validate() error {
	if _, err := ParseTarget(string(r.Target)); err != nil {
		return &BreakEvenError{Operation: "validate_request", Message: "invalid target", Cause: err}
	}
	if !r.Amount.IsPositive() {
		return &BreakEvenError{Operation: "validate_request", Message: "target amount must be positive"}
	}
	if r.Tolerance.IsNegative() {
		return &BreakEvenError{Operation: "validate_request", Message: "tolerance cannot be negative"}
	}
	if r.MaxIterations < 0 {
		return &BreakEvenError{Operation: "validate_request", Message: "max iterations cannot be negative"}
	}
	return nil
}

// BreakEvenError represents errors from the salary solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
