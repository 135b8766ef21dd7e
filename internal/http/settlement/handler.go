package settlement

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/settlement"
)

type Handler struct {
	svc *settlement.Service
}

func NewHandler(svc *settlement.Service) *Handler {
	return &Handler{svc: svc}
}

// ReportRoutes serves the monthly settlement report (/resumo).
func (h *Handler) ReportRoutes(r chi.Router) {
	r.Get("/{mes_ano}", h.report)
}

// StatusRoutes serves the settlement bookkeeping (/divisao).
func (h *Handler) StatusRoutes(r chi.Router) {
	r.Get("/{mes_ano}", h.status)
	r.Post("/{mes_ano}/marcar-pago", h.markPaid)
	r.Post("/{mes_ano}/desmarcar-pago", h.markUnpaid)
}

// month parses the mes_ano URL param, writing a 400 on malformed input.
// The calculator is never reached with a month it cannot trust.
func (h *Handler) month(w http.ResponseWriter, r *http.Request) (billing.Month, bool) {
	month, err := billing.ParseMonth(chi.URLParam(r, "mes_ano"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return billing.Month{}, false
	}

	return month, true
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	month, ok := h.month(w, r)
	if !ok {
		return
	}

	report, err := h.svc.Report(r.Context(), month)
	if err != nil {
		var missing *settlement.MissingIncomeError

		switch {
		case errors.Is(err, settlement.ErrNoParticipants),
			errors.Is(err, settlement.ErrZeroIncome),
			errors.As(err, &missing):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toReportResponse(report)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	month, ok := h.month(w, r)
	if !ok {
		return
	}

	status, err := h.svc.Status(r.Context(), month)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toStatusResponse(status)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type markPaidRequest struct {
	DataAcerto *string `json:"data_acerto,omitempty"`
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	month, ok := h.month(w, r)
	if !ok {
		return
	}

	var settledAt *time.Time

	// The body is optional; an empty one means "settled now".
	var req markPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.DataAcerto != nil {
		t, err := time.Parse(time.DateOnly, *req.DataAcerto)
		if err != nil {
			http.Error(w, "data_acerto must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		settledAt = &t
	}

	status, err := h.svc.MarkPaid(r.Context(), month, settledAt)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toStatusResponse(status)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) markUnpaid(w http.ResponseWriter, r *http.Request) {
	month, ok := h.month(w, r)
	if !ok {
		return
	}

	status, err := h.svc.MarkUnpaid(r.Context(), month)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toStatusResponse(status)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
