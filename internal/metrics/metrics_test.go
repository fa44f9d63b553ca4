package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveMonthly(t *testing.T) {
	m := NewRegistry()

	m.ObserveMonthly(OperationMonthly, domain.MonthlyResult{Category: domain.CategoryA, Method: domain.MethodGross, Converged: true})
	m.ObserveMonthly(OperationMonthly, domain.MonthlyResult{Category: domain.CategoryA, Method: domain.MethodGrossUp, Iterations: 2, Converged: true})
	m.ObserveMonthly(OperationMonthly, domain.MonthlyResult{Category: domain.CategoryB, Method: domain.MethodGrossUp, Iterations: 50, Converged: false})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.calculations.WithLabelValues(OperationMonthly, "A", "gross")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calculations.WithLabelValues(OperationMonthly, "A", "gross_up")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.nonConverged))
	assert.Equal(t, 1, testutil.CollectAndCount(m.grossUpIters, "pajak_gross_up_iterations"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "pajak_gross_up_iterations_count 2", "gross method does not observe iterations")
}

func TestObserveReconciliation_CountsRefunds(t *testing.T) {
	m := NewRegistry()

	refund := domain.ReconciliationResult{
		Monthly:     domain.MonthlyResult{Category: domain.CategoryA, Method: domain.MethodGross},
		DecemberTax: decimal.NewFromInt(-1_320_000),
	}
	owed := domain.ReconciliationResult{
		Monthly:     domain.MonthlyResult{Category: domain.CategoryA, Method: domain.MethodGross},
		DecemberTax: decimal.NewFromInt(638_100),
	}
	m.ObserveReconciliation(OperationAnnual, refund)
	m.ObserveReconciliation(OperationAnnual, owed)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.calculations.WithLabelValues(OperationAnnual, "A", "gross")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.refunds))
}

func TestValidationFailedAndDuration(t *testing.T) {
	m := NewRegistry()

	m.ValidationFailed(OperationAnnual)
	m.ValidationFailed(OperationAnnual)
	m.ObserveDuration(OperationAnnual, time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.validationFails.WithLabelValues(OperationAnnual)))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *CalculationMetrics
	assert.NotPanics(t, func() {
		m.ObserveMonthly(OperationMonthly, domain.MonthlyResult{})
		m.ObserveReconciliation(OperationAnnual, domain.ReconciliationResult{})
		m.ObserveDuration(OperationMonthly, time.Now())
		m.ValidationFailed(OperationMonthly)
	})
}

func TestHandler(t *testing.T) {
	m := NewRegistry()
	m.ObserveMonthly(OperationMonthly, domain.MonthlyResult{Category: domain.CategoryC, Method: domain.MethodGross})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `pajak_calculations_total{category="C",method="gross",operation="monthly"} 1`), body)
}
