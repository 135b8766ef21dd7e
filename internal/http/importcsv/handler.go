package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/expense"
	"github.com/alan-vieira/controle-familiar/internal/importer"
)

type Handler struct {
	importSvc  *importer.Service
	expenseSvc *expense.Service
}

func NewHandler(importSvc *importer.Service, expenseSvc *expense.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		expenseSvc: expenseSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/{source}", h.importCSV)
	r.Post("/{source}/confirm", h.confirmImport)
}

type expenseDTO struct {
	ID            uuid.UUID `json:"id"`
	DataCompra    string    `json:"data_compra"`
	Descricao     string    `json:"descricao"`
	Valor         int64     `json:"valor"`
	TipoPg        string    `json:"tipo_pg"`
	Categoria     string    `json:"categoria"`
	ColaboradorID uuid.UUID `json:"colaborador_id"`
	MesVigente    string    `json:"mes_vigente"`
}

type paramsDTO struct {
	DataCompra        string    `json:"data_compra"`
	Descricao         string    `json:"descricao"`
	DescricaoOriginal string    `json:"descricao_original"`
	Valor             int64     `json:"valor"`
	TipoPg            string    `json:"tipo_pg"`
	Categoria         string    `json:"categoria"`
	ColaboradorID     uuid.UUID `json:"colaborador_id"`
}

type importSuccessResponse struct {
	Imported int          `json:"imported"`
	Despesas []expenseDTO `json:"despesas"`
}

type conflictDTO struct {
	Incoming paramsDTO  `json:"incoming"`
	Existing expenseDTO `json:"existing"`
}

type importConflictResponse struct {
	New       []paramsDTO   `json:"new"`
	Conflicts []conflictDTO `json:"conflicts"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	source, err := importer.ParseSource(chi.URLParam(r, "source"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	participantID, err := uuid.Parse(r.FormValue("colaborador_id"))
	if err != nil {
		http.Error(w, "colaborador_id field is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(r.Context(), source, participantID, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.runBatch(w, r, params)
}

type confirmRequest struct {
	Params []paramsDTO `json:"params"`
}

// confirmImport re-submits the rows the user accepted after reviewing
// conflicts. Expenses are created directly, skipping duplicate detection.
func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	if _, err := importer.ParseSource(chi.URLParam(r, "source")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	imported := make([]*expense.Expense, 0, len(req.Params))

	for _, dto := range req.Params {
		params, err := fromParamsDTO(dto)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		e, err := h.expenseSvc.Create(r.Context(), params)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		imported = append(imported, e)
	}

	writeSuccess(w, imported)
}

func (h *Handler) runBatch(w http.ResponseWriter, r *http.Request, params []expense.CreateParams) {
	result, err := h.expenseSvc.ImportBatch(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]paramsDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}

		for _, p := range result.New {
			resp.New = append(resp.New, toParamsDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: toExpenseDTO(c.Existing),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	writeSuccess(w, result.Imported)
}

func writeSuccess(w http.ResponseWriter, imported []*expense.Expense) {
	despesas := make([]expenseDTO, 0, len(imported))
	for _, e := range imported {
		despesas = append(despesas, toExpenseDTO(e))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importSuccessResponse{
		Imported: len(imported),
		Despesas: despesas,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toExpenseDTO(e *expense.Expense) expenseDTO {
	return expenseDTO{
		ID:            e.ID,
		DataCompra:    e.PurchaseDate.Format(time.DateOnly),
		Descricao:     e.Description,
		Valor:         e.Amount,
		TipoPg:        string(e.Method),
		Categoria:     string(e.Category),
		ColaboradorID: e.ParticipantID,
		MesVigente:    e.CompetenceMonth.String(),
	}
}

func toParamsDTO(p expense.CreateParams) paramsDTO {
	return paramsDTO{
		DataCompra:        p.PurchaseDate.Format(time.DateOnly),
		Descricao:         p.Description,
		DescricaoOriginal: p.RawDescription,
		Valor:             p.Amount,
		TipoPg:            p.MethodRaw,
		Categoria:         string(p.Category),
		ColaboradorID:     p.ParticipantID,
	}
}

func fromParamsDTO(dto paramsDTO) (expense.CreateParams, error) {
	date, err := time.Parse(time.DateOnly, dto.DataCompra)
	if err != nil {
		return expense.CreateParams{}, err
	}

	category, err := billing.ParseCategory(dto.Categoria)
	if err != nil {
		return expense.CreateParams{}, err
	}

	return expense.CreateParams{
		PurchaseDate:   date,
		Description:    dto.Descricao,
		RawDescription: dto.DescricaoOriginal,
		Amount:         dto.Valor,
		MethodRaw:      dto.TipoPg,
		Category:       category,
		ParticipantID:  dto.ColaboradorID,
	}, nil
}
