package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rgehrsitz/pajak/internal/domain"
)

const (
	OperationMonthly = "monthly"
	OperationAnnual  = "annual"
	OperationCompare = "compare"
	OperationBatch   = "batch"

	OperationNetToGross = "net_to_gross"
	OperationWhatIf     = "what_if"
)

// CalculationMetrics records calculator activity for the HTTP server and batch runs.
type CalculationMetrics struct {
	calculations    *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	grossUpIters    prometheus.Histogram
	nonConverged    prometheus.Counter
	refunds         prometheus.Counter
	validationFails *prometheus.CounterVec
	gatherer        prometheus.Gatherer
}

var (
	defaultOnce    sync.Once
	defaultMetrics *CalculationMetrics
)

// Default returns the process-wide metrics registered on the default registry.
func Default() *CalculationMetrics {
	defaultOnce.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	})
	return defaultMetrics
}

// NewRegistry returns metrics bound to a fresh registry; used by tests and
// by servers that should not share the global registry.
func NewRegistry() *CalculationMetrics {
	reg := prometheus.NewRegistry()
	return New(reg, reg)
}

// New registers the collectors on registerer and serves them from gatherer.
func New(registerer prometheus.Registerer, gatherer prometheus.Gatherer) *CalculationMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	calculations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pajak_calculations_total",
		Help: "PPh 21 calculations by operation, TER category and withholding method.",
	}, []string{"operation", "category", "method"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pajak_calculation_duration_seconds",
		Help:    "Wall time of a calculation request.",
		Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	}, []string{"operation"})
	grossUpIters := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pajak_gross_up_iterations",
		Help:    "Fixed-point iterations needed to solve a gross-up allowance.",
		Buckets: []float64{1, 2, 3, 4, 5, 8, 13, 21, 34, 50},
	})
	nonConverged := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pajak_gross_up_nonconverged_total",
		Help: "Gross-up solves that hit the iteration cap and fell back to the last value.",
	})
	refunds := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pajak_december_refunds_total",
		Help: "Annual reconciliations whose December settlement is a refund.",
	})
	validationFails := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pajak_validation_failures_total",
		Help: "Rejected calculation requests by operation.",
	}, []string{"operation"})

	registerer.MustRegister(calculations, duration, grossUpIters, nonConverged, refunds, validationFails)

	return &CalculationMetrics{
		calculations:    calculations,
		duration:        duration,
		grossUpIters:    grossUpIters,
		nonConverged:    nonConverged,
		refunds:         refunds,
		validationFails: validationFails,
		gatherer:        gatherer,
	}
}

// ObserveMonthly counts a monthly result and its gross-up behaviour
func (m *CalculationMetrics) ObserveMonthly(operation string, res domain.MonthlyResult) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(operation, string(res.Category), string(res.Method)).Inc()
	if res.Method == domain.MethodGrossUp && res.Iterations > 0 {
		m.grossUpIters.Observe(float64(res.Iterations))
		if !res.Converged {
			m.nonConverged.Inc()
		}
	}
}

// ObserveReconciliation counts an annual result
func (m *CalculationMetrics) ObserveReconciliation(operation string, res domain.ReconciliationResult) {
	if m == nil {
		return
	}
	m.ObserveMonthly(operation, res.Monthly)
	if res.IsRefund() {
		m.refunds.Inc()
	}
}

// ObserveDuration records how long an operation took since start
func (m *CalculationMetrics) ObserveDuration(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ValidationFailed counts a rejected request
func (m *CalculationMetrics) ValidationFailed(operation string) {
	if m == nil {
		return
	}
	m.validationFails.WithLabelValues(operation).Inc()
}

// Handler serves the collectors in the Prometheus exposition format
func (m *CalculationMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
