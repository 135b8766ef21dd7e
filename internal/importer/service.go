package importer

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/expense"
)

// Suggester proposes a category for a statement description.
type Suggester interface {
	Suggest(ctx context.Context, description string) (billing.Category, bool, error)
}

// Service turns raw statement files into expense create params, attributing
// every row to one participant and asking the categorizer for a category.
type Service struct {
	parser    *Parser
	suggester Suggester
}

func NewService(suggester Suggester) *Service {
	return &Service{
		parser:    NewParser(),
		suggester: suggester,
	}
}

// Import parses a statement export. Rows with no learned category default to
// lazer_outros so the batch never fails on an unknown merchant.
func (s *Service) Import(ctx context.Context, source Source, participantID uuid.UUID, r io.Reader) ([]expense.CreateParams, error) {
	rows, err := s.parser.Parse(source, r)
	if err != nil {
		return nil, err
	}

	params := make([]expense.CreateParams, 0, len(rows))

	for _, row := range rows {
		category := billing.CategoryLazerOutros

		if s.suggester != nil {
			suggested, ok, err := s.suggester.Suggest(ctx, row.Description)
			if err != nil {
				return nil, err
			}

			if ok {
				category = suggested
			}
		}

		params = append(params, expense.CreateParams{
			PurchaseDate:   row.PurchaseDate,
			Description:    row.Description,
			RawDescription: row.Description,
			Amount:         row.Amount,
			MethodRaw:      string(row.Method),
			Category:       category,
			ParticipantID:  participantID,
		})
	}

	return params, nil
}
