package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alan-vieira/controle-familiar/internal/income"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIncome(s scanner) (*income.Income, error) {
	var in income.Income

	if err := s.Scan(
		&in.ID, &in.ParticipantID, &in.ParticipantName,
		&in.Month, &in.Amount, &in.CreatedAt, &in.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &in, nil
}

const selectIncomeColumns = `
	r.id, r.colaborador_id, c.nome AS colaborador_nome,
	r.mes_ano, r.valor, r.created_at, r.updated_at
`

// UpsertIncome writes the declaration, overwriting any earlier one for the
// same (participant, month) pair via the unique index.
func (s *Store) UpsertIncome(ctx context.Context, in *income.Income) error {
	query := `
		INSERT INTO renda_mensal (colaborador_id, mes_ano, valor, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (colaborador_id, mes_ano)
		DO UPDATE SET valor = EXCLUDED.valor, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, in.ParticipantID, in.Month, in.Amount).
		Scan(&in.ID, &in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting income: %w", err)
	}

	return nil
}

func (s *Store) ListIncomes(ctx context.Context, filter income.ListFilter) ([]*income.Income, error) {
	query := `SELECT ` + selectIncomeColumns + `
		FROM renda_mensal r
		JOIN colaborador c ON r.colaborador_id = c.id
		WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Month != nil {
		query += fmt.Sprintf(" AND r.mes_ano = $%d", argIdx)

		args = append(args, *filter.Month)
		argIdx++
	}

	if filter.ParticipantID != nil {
		query += fmt.Sprintf(" AND r.colaborador_id = $%d", argIdx)

		args = append(args, *filter.ParticipantID)
		argIdx++
	}

	query += " ORDER BY c.nome ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing incomes: %w", err)
	}
	defer rows.Close()

	var incomes []*income.Income

	for rows.Next() {
		in, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning income: %w", err)
		}

		incomes = append(incomes, in)
	}

	return incomes, rows.Err()
}
