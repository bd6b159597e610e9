package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"currency-converter-service/internal/domain/model"
	"currency-converter-service/internal/domain/ports"
	"currency-converter-service/internal/metrics"
	"currency-converter-service/internal/service"
	"currency-converter-service/pkg/logger"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type Handler struct {
	service ports.ConverterService
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewHandler(service ports.ConverterService, log *logger.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		log:     log,
		metrics: metrics,
	}
}

// parseTargets splits a comma-separated targets parameter, preserving
// order and skipping empty segments.
func parseTargets(raw string) []model.Currency {
	targets := make([]model.Currency, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		targets = append(targets, model.Currency(strings.ToUpper(part)))
	}
	return targets
}

func (h *Handler) GetCurrenciesHandler(w http.ResponseWriter, r *http.Request) {
	h.sendSuccessResponse(w, h.service.Currencies())
}

func (h *Handler) GetSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.SnapshotRequestsTotal.Inc()

	base := model.Currency(strings.ToUpper(r.URL.Query().Get("base")))
	if base == "" {
		h.sendErrorResponse(w, http.StatusBadRequest, "missing required parameter: base")
		return
	}
	targets := parseTargets(r.URL.Query().Get("targets"))

	view, err := h.service.GetSnapshot(r.Context(), base, targets)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.sendSuccessResponse(w, view)
}

func (h *Handler) ConvertHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.ConversionRequestsTotal.Inc()

	query := r.URL.Query()

	base := model.Currency(strings.ToUpper(query.Get("base")))
	if base == "" {
		h.sendErrorResponse(w, http.StatusBadRequest, "missing required parameter: base")
		return
	}

	amount := 1.0
	if amountStr := query.Get("amount"); amountStr != "" {
		var err error
		amount, err = strconv.ParseFloat(amountStr, 64)
		if err != nil {
			h.sendErrorResponse(w, http.StatusBadRequest, "invalid amount parameter")
			return
		}
	}

	request := model.ConversionRequest{
		Base:    base,
		Targets: parseTargets(query.Get("targets")),
		Amount:  amount,
	}

	// Swap happens before the fetch so the swapped pair is what gets
	// requested for this cycle.
	if query.Get("swap") == "true" {
		request.Swap()
	}

	result, err := h.service.Convert(r.Context(), request)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.sendSuccessResponse(w, result)
}

func (h *Handler) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.HistoryRequestsTotal.Inc()

	query := r.URL.Query()

	base := model.Currency(strings.ToUpper(query.Get("base")))
	if base == "" {
		h.sendErrorResponse(w, http.StatusBadRequest, "missing required parameter: base")
		return
	}

	targets := parseTargets(query.Get("targets"))
	if len(targets) == 0 {
		h.sendErrorResponse(w, http.StatusBadRequest, "missing required parameter: targets")
		return
	}

	windowDays := 30
	if daysStr := query.Get("days"); daysStr != "" {
		var err error
		windowDays, err = strconv.Atoi(daysStr)
		if err != nil {
			h.sendErrorResponse(w, http.StatusBadRequest, "invalid days parameter")
			return
		}
	}

	result, err := h.service.BuildSeries(r.Context(), base, targets, windowDays)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.metrics.HistoryDayFailuresTotal.Add(float64(result.FailedDays))
	h.sendSuccessResponse(w, result)
}

func (h *Handler) sendSuccessResponse(w http.ResponseWriter, data interface{}) {
	response := Response{
		Success: true,
		Data:    data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	response := Response{
		Success: false,
		Error:   message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("Failed to encode error response", "error", err)
	}
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	errorMessage := "internal server error"

	switch {
	case errors.Is(err, service.ErrInvalidCurrency):
		statusCode = http.StatusBadRequest
		errorMessage = "invalid currency code"
	case errors.Is(err, service.ErrInvalidAmount):
		statusCode = http.StatusBadRequest
		errorMessage = "invalid amount"
	case errors.Is(err, service.ErrInvalidWindow):
		statusCode = http.StatusBadRequest
		errorMessage = "invalid history window"
	case errors.Is(err, model.ErrUpstreamRejected):
		statusCode = http.StatusBadRequest
		errorMessage = "rate source rejected the request"
	case errors.Is(err, model.ErrMalformedResponse):
		statusCode = http.StatusBadGateway
		errorMessage = "rate source returned a malformed response"
	case errors.Is(err, model.ErrUnreachable):
		statusCode = http.StatusServiceUnavailable
		errorMessage = "rate source unreachable"
	}

	h.log.Error("Service error", "error", err, "status_code", statusCode)
	h.sendErrorResponse(w, statusCode, errorMessage)
}
