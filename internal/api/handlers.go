package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rgehrsitz/pajak/internal/breakeven"
	"github.com/rgehrsitz/pajak/internal/calculation"
	"github.com/rgehrsitz/pajak/internal/compare"
	"github.com/rgehrsitz/pajak/internal/config"
	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/rgehrsitz/pajak/internal/metrics"
	"github.com/rgehrsitz/pajak/internal/output"
	"github.com/rgehrsitz/pajak/internal/record"
)

const maxBodyBytes = 1 << 20

// Handler serves the calculator over HTTP. The calculator is stateless so
// one instance is shared across requests.
type Handler struct {
	calc    *calculation.Calculator
	metrics *metrics.CalculationMetrics
	log     *slog.Logger
}

// NewHandler creates a handler; nil metrics disables instrumentation and a
// nil logger uses slog.Default.
func NewHandler(calc *calculation.Calculator, m *metrics.CalculationMetrics, log *slog.Logger) *Handler {
	if calc == nil {
		calc = calculation.NewCalculator()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{calc: calc, metrics: m, log: log}
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetTERTable lists one category's TER table
func (h *Handler) GetTERTable(w http.ResponseWriter, r *http.Request) {
	cat, err := domain.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown TER category", err)
		return
	}
	table := calculation.RateTableFor(cat)
	writeJSON(w, http.StatusOK, TERTableResponse{
		Category: cat,
		TopRate:  table.TopRate,
		Rows:     output.TERRows(table),
	})
}

// Monthly computes the regular-month TER withholding
func (h *Handler) Monthly(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	in, _, ok := h.decode(w, r, metrics.OperationMonthly)
	if !ok {
		return
	}
	res := h.calc.MonthlyWithholding(in.Compensation, in.Taxpayer.Category(), in.Method)
	h.metrics.ObserveMonthly(metrics.OperationMonthly, res)
	h.metrics.ObserveDuration(metrics.OperationMonthly, start)
	writeJSON(w, http.StatusOK, res)
}

// Annual computes the year-end reconciliation plus its history record
func (h *Handler) Annual(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	in, req, ok := h.decode(w, r, metrics.OperationAnnual)
	if !ok {
		return
	}
	res := h.calc.ReconcileAnnual(in)
	rec, err := record.FromReconciliation(res, req.Title)
	if err != nil {
		h.log.Error("failed to build history record", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build history record", err)
		return
	}
	h.metrics.ObserveReconciliation(metrics.OperationAnnual, res)
	h.metrics.ObserveDuration(metrics.OperationAnnual, start)
	writeJSON(w, http.StatusOK, AnnualResponse{Result: res, Schedule: res.Schedule(), Record: rec})
}

// Compare reconciles the same input under both withholding methods
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	in, _, ok := h.decode(w, r, metrics.OperationCompare)
	if !ok {
		return
	}
	cmp := h.calc.CompareMethods(in)
	h.metrics.ObserveReconciliation(metrics.OperationCompare, cmp.Gross)
	h.metrics.ObserveReconciliation(metrics.OperationCompare, cmp.GrossUp)
	h.metrics.ObserveDuration(metrics.OperationCompare, start)
	writeJSON(w, http.StatusOK, cmp)
}

// NetToGross solves for the salary behind a take-home or annual net target
func (h *Handler) NetToGross(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req NetToGrossRequest
	if !h.readBody(w, r, metrics.OperationNetToGross, &req) {
		return
	}
	in, ok := h.validate(w, metrics.OperationNetToGross, req.CalculationRequest)
	if !ok {
		return
	}
	target, err := breakeven.ParseTarget(req.Target)
	if err != nil {
		h.metrics.ValidationFailed(metrics.OperationNetToGross)
		writeError(w, http.StatusBadRequest, "validation failed", err)
		return
	}

	res, err := breakeven.NewDefaultSolver(h.calc).Solve(r.Context(), breakeven.Request{
		Base:   in,
		Target: target,
		Amount: req.Amount,
	})
	if err != nil {
		var beErr *breakeven.BreakEvenError
		if errors.As(err, &beErr) && beErr.Operation == "validate_request" {
			h.metrics.ValidationFailed(metrics.OperationNetToGross)
			writeError(w, http.StatusBadRequest, "validation failed", err)
			return
		}
		h.log.Error("net-to-gross solve failed", "error", err)
		writeError(w, http.StatusUnprocessableEntity, "could not solve for salary", err)
		return
	}
	h.metrics.ObserveReconciliation(metrics.OperationNetToGross, res.Reconciliation)
	h.metrics.ObserveDuration(metrics.OperationNetToGross, start)
	writeJSON(w, http.StatusOK, res)
}

// WhatIf compares the request against template and transform scenarios
func (h *Handler) WhatIf(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req WhatIfRequest
	if !h.readBody(w, r, metrics.OperationWhatIf, &req) {
		return
	}
	in, ok := h.validate(w, metrics.OperationWhatIf, req.CalculationRequest)
	if !ok {
		return
	}

	set, err := compare.NewCompareEngine(h.calc).Compare(r.Context(), in, compare.CompareOptions{
		BaseScenarioName: req.Title,
		Templates:        req.Templates,
		Transforms:       req.Transforms,
	})
	if err != nil {
		h.metrics.ValidationFailed(metrics.OperationWhatIf)
		writeError(w, http.StatusBadRequest, "scenario comparison failed", err)
		return
	}
	for _, alt := range set.AlternativeResults {
		if alt.Result != nil {
			h.metrics.ObserveReconciliation(metrics.OperationWhatIf, *alt.Result)
		}
	}
	h.metrics.ObserveDuration(metrics.OperationWhatIf, start)
	writeJSON(w, http.StatusOK, set)
}

// decode reads and validates a CalculationRequest, writing a 400 on failure
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, operation string) (domain.AnnualInput, CalculationRequest, bool) {
	var req CalculationRequest
	if !h.readBody(w, r, operation, &req) {
		return domain.AnnualInput{}, req, false
	}
	in, ok := h.validate(w, operation, req)
	return in, req, ok
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request, operation string, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.metrics.ValidationFailed(operation)
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return false
	}
	return true
}

func (h *Handler) validate(w http.ResponseWriter, operation string, req CalculationRequest) (domain.AnnualInput, bool) {
	in, err := req.AnnualInput()
	if err == nil {
		err = config.ValidateAnnualInput(&in)
	}
	if err != nil {
		h.metrics.ValidationFailed(operation)
		h.log.Debug("rejected calculation request", "operation", operation, "error", err)
		writeError(w, http.StatusBadRequest, "validation failed", err)
		return domain.AnnualInput{}, false
	}
	return in, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			err = fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
