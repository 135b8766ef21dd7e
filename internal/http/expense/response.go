package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/alan-vieira/controle-familiar/internal/expense"
)

type expenseResponse struct {
	ID                uuid.UUID  `json:"id"`
	DataCompra        string     `json:"data_compra"`
	Descricao         string     `json:"descricao"`
	DescricaoOriginal string     `json:"descricao_original,omitempty"`
	Valor             int64      `json:"valor"`
	TipoPg            string     `json:"tipo_pg"`
	Categoria         string     `json:"categoria"`
	ColaboradorID     uuid.UUID  `json:"colaborador_id"`
	Colaborador       string     `json:"colaborador,omitempty"`
	MesVigente        string     `json:"mes_vigente"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

func toResponse(e *expense.Expense) expenseResponse {
	return expenseResponse{
		ID:                e.ID,
		DataCompra:        e.PurchaseDate.Format(time.DateOnly),
		Descricao:         e.Description,
		DescricaoOriginal: e.RawDescription,
		Valor:             e.Amount,
		TipoPg:            string(e.Method),
		Categoria:         string(e.Category),
		ColaboradorID:     e.ParticipantID,
		Colaborador:       e.ParticipantName,
		MesVigente:        e.CompetenceMonth.String(),
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func toResponseList(expenses []*expense.Expense) []expenseResponse {
	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toResponse(e)
	}

	return resp
}
