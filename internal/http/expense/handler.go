package expense

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/expense"
	"github.com/alan-vieira/controle-familiar/internal/participant"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type upsertExpenseRequest struct {
	DataCompra        string `json:"data_compra"`
	Descricao         string `json:"descricao"`
	DescricaoOriginal string `json:"descricao_original"`
	Valor             int64  `json:"valor"`
	TipoPg            string `json:"tipo_pg"`
	Categoria         string `json:"categoria"`
	ColaboradorID     string `json:"colaborador_id"`
}

func (h *Handler) params(req upsertExpenseRequest) (expense.CreateParams, error) {
	date, err := parsePurchaseDate(req.DataCompra)
	if err != nil {
		return expense.CreateParams{}, err
	}

	participantID, err := uuid.Parse(req.ColaboradorID)
	if err != nil {
		return expense.CreateParams{}, errors.New("invalid colaborador_id")
	}

	category, err := billing.ParseCategory(req.Categoria)
	if err != nil {
		return expense.CreateParams{}, err
	}

	return expense.CreateParams{
		PurchaseDate:   date,
		Description:    req.Descricao,
		RawDescription: req.DescricaoOriginal,
		Amount:         req.Valor,
		MethodRaw:      req.TipoPg,
		Category:       category,
		ParticipantID:  participantID,
	}, nil
}

// parsePurchaseDate accepts a plain date or a datetime; any time-of-day
// suffix is discarded since attribution works on whole days.
func parsePurchaseDate(s string) (time.Time, error) {
	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errors.New("data_compra must be YYYY-MM-DD")
	}

	return t, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req upsertExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := h.params(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Create(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := expense.ListFilter{}

	if s := r.URL.Query().Get("mes_vigente"); s != "" {
		month, err := billing.ParseMonth(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		filter.CompetenceMonth = &month
	}

	if s := r.URL.Query().Get("colaborador_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid colaborador_id", http.StatusBadRequest)
			return
		}

		filter.ParticipantID = &id
	}

	expenses, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(expenses)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req upsertExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := h.params(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, expense.ErrNotFound):
		http.Error(w, "despesa not found", http.StatusNotFound)
	case errors.Is(err, participant.ErrNotFound):
		http.Error(w, "colaborador not found", http.StatusBadRequest)
	case errors.Is(err, expense.ErrInvalidAmount),
		errors.Is(err, billing.ErrInvalidCategory):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
