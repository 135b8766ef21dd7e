package income

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/participant"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=income
type Repository interface {
	UpsertIncome(ctx context.Context, in *Income) error
	ListIncomes(ctx context.Context, filter ListFilter) ([]*Income, error)
}

// Directory resolves participants so declarations for unknown participants
// are rejected before they hit the unique index.
type Directory interface {
	Get(ctx context.Context, id uuid.UUID) (*participant.Participant, error)
}

type Service struct {
	repo         Repository
	participants Directory
}

func NewService(repo Repository, participants Directory) *Service {
	return &Service{repo: repo, participants: participants}
}

type DeclareParams struct {
	ParticipantID uuid.UUID
	Month         billing.Month
	Amount        int64
}

type ListFilter struct {
	Month         *billing.Month
	ParticipantID *uuid.UUID
}

// Declare records a participant's income for a month, overwriting any
// earlier declaration for the same pair.
func (s *Service) Declare(ctx context.Context, params DeclareParams) (*Income, error) {
	if params.Amount < 0 {
		return nil, ErrInvalidAmount
	}

	owner, err := s.participants.Get(ctx, params.ParticipantID)
	if err != nil {
		return nil, fmt.Errorf("resolving participant: %w", err)
	}

	in := &Income{
		ParticipantID:   owner.ID,
		ParticipantName: owner.Name,
		Month:           params.Month,
		Amount:          params.Amount,
	}
	if err := s.repo.UpsertIncome(ctx, in); err != nil {
		return nil, err
	}

	return in, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Income, error) {
	return s.repo.ListIncomes(ctx, filter)
}
