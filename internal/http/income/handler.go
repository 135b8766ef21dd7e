package income

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/income"
	"github.com/alan-vieira/controle-familiar/internal/participant"
)

type Handler struct {
	svc *income.Service
}

func NewHandler(svc *income.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Put("/", h.declare)
	r.Get("/", h.list)
}

type declareIncomeRequest struct {
	ColaboradorID string `json:"colaborador_id"`
	MesAno        string `json:"mes_ano"`
	Valor         int64  `json:"valor"`
}

// declare upserts the income of one participant for one month. Declaring
// twice overwrites.
func (h *Handler) declare(w http.ResponseWriter, r *http.Request) {
	var req declareIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	participantID, err := uuid.Parse(req.ColaboradorID)
	if err != nil {
		http.Error(w, "invalid colaborador_id", http.StatusBadRequest)
		return
	}

	month, err := billing.ParseMonth(req.MesAno)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	in, err := h.svc.Declare(r.Context(), income.DeclareParams{
		ParticipantID: participantID,
		Month:         month,
		Amount:        req.Valor,
	})
	if err != nil {
		switch {
		case errors.Is(err, income.ErrInvalidAmount):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, participant.ErrNotFound):
			http.Error(w, "colaborador not found", http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(in)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := income.ListFilter{}

	if s := r.URL.Query().Get("mes"); s != "" {
		month, err := billing.ParseMonth(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		filter.Month = &month
	}

	if s := r.URL.Query().Get("colaborador_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid colaborador_id", http.StatusBadRequest)
			return
		}

		filter.ParticipantID = &id
	}

	incomes, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(incomes)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
