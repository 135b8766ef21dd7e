package participant

import (
	"time"

	"github.com/google/uuid"

	"github.com/alan-vieira/controle-familiar/internal/participant"
)

type participantResponse struct {
	ID            uuid.UUID  `json:"id"`
	Nome          string     `json:"nome"`
	DiaFechamento int        `json:"dia_fechamento"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func toResponse(p *participant.Participant) participantResponse {
	return participantResponse{
		ID:            p.ID,
		Nome:          p.Name,
		DiaFechamento: p.ClosingDay,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toResponseList(participants []*participant.Participant) []participantResponse {
	resp := make([]participantResponse, len(participants))
	for i, p := range participants {
		resp[i] = toResponse(p)
	}

	return resp
}
