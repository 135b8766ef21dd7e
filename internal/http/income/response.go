package income

import (
	"time"

	"github.com/google/uuid"

	"github.com/alan-vieira/controle-familiar/internal/income"
)

type incomeResponse struct {
	ID            uuid.UUID  `json:"id"`
	ColaboradorID uuid.UUID  `json:"colaborador_id"`
	Colaborador   string     `json:"colaborador,omitempty"`
	MesAno        string     `json:"mes_ano"`
	Valor         int64      `json:"valor"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func toResponse(in *income.Income) incomeResponse {
	return incomeResponse{
		ID:            in.ID,
		ColaboradorID: in.ParticipantID,
		Colaborador:   in.ParticipantName,
		MesAno:        in.Month.String(),
		Valor:         in.Amount,
		CreatedAt:     in.CreatedAt,
		UpdatedAt:     in.UpdatedAt,
	}
}

func toResponseList(incomes []*income.Income) []incomeResponse {
	resp := make([]incomeResponse, len(incomes))
	for i, in := range incomes {
		resp[i] = toResponse(in)
	}

	return resp
}
