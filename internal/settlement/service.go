package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/expense"
	"github.com/alan-vieira/controle-familiar/internal/income"
	"github.com/alan-vieira/controle-familiar/internal/participant"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settlement
type Repository interface {
	ListParticipants(ctx context.Context) ([]*participant.Participant, error)
	ListIncomes(ctx context.Context, month billing.Month) ([]*income.Income, error)
	ListExpenses(ctx context.Context, month billing.Month) ([]*expense.Expense, error)

	GetStatus(ctx context.Context, month billing.Month) (*Status, error)
	UpsertStatus(ctx context.Context, status *Status) (*Status, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Report loads everything attributed to the month and runs Compute.
func (s *Service) Report(ctx context.Context, month billing.Month) (*Report, error) {
	participants, err := s.repo.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing participants: %w", err)
	}

	incomes, err := s.repo.ListIncomes(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("listing incomes: %w", err)
	}

	expenses, err := s.repo.ListExpenses(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	return Compute(month, participants, incomes, expenses)
}

// Status returns the month's reconciliation state. A month nobody touched
// yet reads as unpaid rather than missing.
func (s *Service) Status(ctx context.Context, month billing.Month) (*Status, error) {
	status, err := s.repo.GetStatus(ctx, month)
	if err != nil {
		return nil, err
	}

	if status == nil {
		return &Status{Month: month, Paid: false}, nil
	}

	return status, nil
}

// MarkPaid records that the month's imbalance was physically settled.
// A nil settledAt means today.
func (s *Service) MarkPaid(ctx context.Context, month billing.Month, settledAt *time.Time) (*Status, error) {
	if settledAt == nil {
		now := time.Now().Truncate(24 * time.Hour)
		settledAt = &now
	}

	return s.repo.UpsertStatus(ctx, &Status{Month: month, Paid: true, SettledAt: settledAt})
}

// MarkUnpaid reopens the month, clearing the settlement date.
func (s *Service) MarkUnpaid(ctx context.Context, month billing.Month) (*Status, error) {
	return s.repo.UpsertStatus(ctx, &Status{Month: month, Paid: false})
}
