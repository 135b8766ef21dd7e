package settlement

import (
	"time"

	"github.com/google/uuid"

	"github.com/alan-vieira/controle-familiar/internal/settlement"
)

type lineResponse struct {
	ColaboradorID uuid.UUID `json:"colaborador_id"`
	Colaborador   string    `json:"colaborador"`
	Renda         int64     `json:"renda"`
	Percentual    float64   `json:"percentual"`
	ValorDevido   int64     `json:"valor_devido"`
	ValorPago     int64     `json:"valor_pago"`
	Saldo         int64     `json:"saldo"`
	Situacao      string    `json:"situacao"`
}

type reportResponse struct {
	MesAno       string         `json:"mes_ano"`
	TotalDespesa int64          `json:"total_despesa"`
	TotalRenda   int64          `json:"total_renda"`
	Saldo        int64          `json:"saldo"`
	Linhas       []lineResponse `json:"linhas"`
}

func toReportResponse(r *settlement.Report) reportResponse {
	lines := make([]lineResponse, len(r.Lines))
	for i, line := range r.Lines {
		lines[i] = lineResponse{
			ColaboradorID: line.ParticipantID,
			Colaborador:   line.Name,
			Renda:         line.Income,
			Percentual:    line.SharePercent,
			ValorDevido:   line.AmountOwed,
			ValorPago:     line.AmountPaid,
			Saldo:         line.Balance,
			Situacao:      string(line.Status),
		}
	}

	return reportResponse{
		MesAno:       r.Month.String(),
		TotalDespesa: r.TotalExpenses,
		TotalRenda:   r.TotalIncome,
		Saldo:        r.Balance,
		Linhas:       lines,
	}
}

type statusResponse struct {
	MesAno     string  `json:"mes_ano"`
	Paga       bool    `json:"paga"`
	DataAcerto *string `json:"data_acerto,omitempty"`
}

func toStatusResponse(s *settlement.Status) statusResponse {
	resp := statusResponse{
		MesAno: s.Month.String(),
		Paga:   s.Paid,
	}

	if s.SettledAt != nil {
		formatted := s.SettledAt.Format(time.DateOnly)
		resp.DataAcerto = &formatted
	}

	return resp
}
