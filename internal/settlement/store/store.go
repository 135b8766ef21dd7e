package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/expense"
	expenseStore "github.com/alan-vieira/controle-familiar/internal/expense/store"
	"github.com/alan-vieira/controle-familiar/internal/income"
	incomeStore "github.com/alan-vieira/controle-familiar/internal/income/store"
	"github.com/alan-vieira/controle-familiar/internal/participant"
	participantStore "github.com/alan-vieira/controle-familiar/internal/participant/store"
	"github.com/alan-vieira/controle-familiar/internal/settlement"
)

// Store reads everything a settlement needs and keeps the monthly
// reconciliation flag. Record reads delegate to the per-entity stores so
// there is a single source of truth for each row shape.
type Store struct {
	db           *sql.DB
	participants *participantStore.Store
	expenses     *expenseStore.Store
	incomes      *incomeStore.Store
}

func New(db *sql.DB) *Store {
	return &Store{
		db:           db,
		participants: participantStore.New(db),
		expenses:     expenseStore.New(db),
		incomes:      incomeStore.New(db),
	}
}

func (s *Store) ListParticipants(ctx context.Context) ([]*participant.Participant, error) {
	return s.participants.ListParticipants(ctx)
}

func (s *Store) ListIncomes(ctx context.Context, month billing.Month) ([]*income.Income, error) {
	return s.incomes.ListIncomes(ctx, income.ListFilter{Month: &month})
}

func (s *Store) ListExpenses(ctx context.Context, month billing.Month) ([]*expense.Expense, error) {
	return s.expenses.ListExpenses(ctx, expense.ListFilter{CompetenceMonth: &month})
}

// GetStatus returns nil for months nobody marked yet.
func (s *Store) GetStatus(ctx context.Context, month billing.Month) (*settlement.Status, error) {
	query := `SELECT mes_ano, paga, data_acerto FROM divisao_mensal WHERE mes_ano = $1`

	status := settlement.Status{}

	err := s.db.QueryRowContext(ctx, query, month).
		Scan(&status.Month, &status.Paid, &status.SettledAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("getting settlement status: %w", err)
	}

	return &status, nil
}

func (s *Store) UpsertStatus(ctx context.Context, status *settlement.Status) (*settlement.Status, error) {
	query := `
		INSERT INTO divisao_mensal (mes_ano, paga, data_acerto)
		VALUES ($1, $2, $3)
		ON CONFLICT (mes_ano)
		DO UPDATE SET paga = EXCLUDED.paga, data_acerto = EXCLUDED.data_acerto
		RETURNING mes_ano, paga, data_acerto
	`

	updated := settlement.Status{}

	err := s.db.QueryRowContext(ctx, query, status.Month, status.Paid, status.SettledAt).
		Scan(&updated.Month, &updated.Paid, &updated.SettledAt)
	if err != nil {
		return nil, fmt.Errorf("upserting settlement status: %w", err)
	}

	return &updated, nil
}
