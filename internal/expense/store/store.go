package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/expense"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanExpense reads an expense row joined with its owner's name.
// Expected column order: id, data_compra, descricao, descricao_original,
// valor, tipo_pg, categoria, colaborador_id, colaborador_nome, mes_vigente,
// created_at, updated_at, deleted_at
func scanExpense(s scanner) (*expense.Expense, error) {
	var e expense.Expense

	var methodStr, categoryStr string

	var rawDesc sql.NullString

	if err := s.Scan(
		&e.ID, &e.PurchaseDate, &e.Description, &rawDesc,
		&e.Amount, &methodStr, &categoryStr,
		&e.ParticipantID, &e.ParticipantName, &e.CompetenceMonth,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	); err != nil {
		return nil, err
	}

	e.Method = billing.Method(methodStr)
	e.Category = billing.Category(categoryStr)
	e.RawDescription = rawDesc.String

	return &e, nil
}

const selectExpenseColumns = `
	d.id, d.data_compra, d.descricao, d.descricao_original,
	d.valor, d.tipo_pg, d.categoria,
	d.colaborador_id, c.nome AS colaborador_nome, d.mes_vigente,
	d.created_at, d.updated_at, d.deleted_at
`

func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	query := `
		INSERT INTO despesa (
			data_compra, descricao, descricao_original, valor, tipo_pg,
			categoria, colaborador_id, mes_vigente, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.PurchaseDate,
		e.Description,
		e.RawDescription,
		e.Amount,
		e.Method,
		e.Category,
		e.ParticipantID,
		e.CompetenceMonth,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func (s *Store) GetExpense(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM despesa d
		JOIN colaborador c ON d.colaborador_id = c.id
		WHERE d.id = $1 AND d.deleted_at IS NULL`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return e, nil
}

func (s *Store) ListExpenses(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM despesa d
		JOIN colaborador c ON d.colaborador_id = c.id
		WHERE d.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.CompetenceMonth != nil {
		query += fmt.Sprintf(" AND d.mes_vigente = $%d", argIdx)

		args = append(args, *filter.CompetenceMonth)
		argIdx++
	}

	if filter.ParticipantID != nil {
		query += fmt.Sprintf(" AND d.colaborador_id = $%d", argIdx)

		args = append(args, *filter.ParticipantID)
		argIdx++
	}

	query += " ORDER BY d.data_compra DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

func (s *Store) UpdateExpense(ctx context.Context, e *expense.Expense) error {
	query := `
		UPDATE despesa
		SET data_compra = $1, descricao = $2, descricao_original = $3, valor = $4,
			tipo_pg = $5, categoria = $6, colaborador_id = $7, mes_vigente = $8,
			updated_at = NOW()
		WHERE id = $9 AND deleted_at IS NULL
	`

	result, err := s.db.ExecContext(ctx, query,
		e.PurchaseDate,
		e.Description,
		e.RawDescription,
		e.Amount,
		e.Method,
		e.Category,
		e.ParticipantID,
		e.CompetenceMonth,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return expense.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE despesa
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return expense.ErrNotFound
	}

	return nil
}

type importTx struct {
	tx *sql.Tx
}

// BeginImport opens a transaction holding an advisory lock on the statement's
// date range, so two concurrent imports of the same file cannot both pass
// duplicate detection.
func (s *Store) BeginImport(ctx context.Context, minDate, maxDate time.Time) (expense.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	lockKey := importLockKey(minDate, maxDate)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, params []expense.CreateParams) ([]*expense.Expense, error) {
	if len(params) == 0 {
		return nil, nil
	}

	type lookupKey struct {
		ParticipantID  uuid.UUID
		Date           string
		Amount         int64
		RawDescription string
	}

	minDate := params[0].PurchaseDate
	maxDate := params[0].PurchaseDate
	keySet := make(map[lookupKey]struct{}, len(params))

	for _, p := range params {
		if p.PurchaseDate.Before(minDate) {
			minDate = p.PurchaseDate
		}

		if p.PurchaseDate.After(maxDate) {
			maxDate = p.PurchaseDate
		}

		keySet[lookupKey{
			ParticipantID:  p.ParticipantID,
			Date:           p.PurchaseDate.Format(time.DateOnly),
			Amount:         p.Amount,
			RawDescription: p.RawDescription,
		}] = struct{}{}
	}

	query := `SELECT ` + selectExpenseColumns + `
		FROM despesa d
		JOIN colaborador c ON d.colaborador_id = c.id
		WHERE d.deleted_at IS NULL AND d.data_compra >= $1 AND d.data_compra <= $2
		ORDER BY d.data_compra ASC`

	rows, err := itx.tx.QueryContext(ctx, query, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		k := lookupKey{
			ParticipantID:  e.ParticipantID,
			Date:           e.PurchaseDate.Format(time.DateOnly),
			Amount:         e.Amount,
			RawDescription: e.RawDescription,
		}

		if _, found := keySet[k]; !found {
			continue
		}

		duplicates = append(duplicates, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateExpenses(ctx context.Context, es []*expense.Expense) error {
	query := `
		INSERT INTO despesa (
			data_compra, descricao, descricao_original, valor, tipo_pg,
			categoria, colaborador_id, mes_vigente, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for _, e := range es {
		err := itx.tx.QueryRowContext(ctx, query,
			e.PurchaseDate,
			e.Description,
			e.RawDescription,
			e.Amount,
			e.Method,
			e.Category,
			e.ParticipantID,
			e.CompetenceMonth,
		).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating expense: %w", err)
		}
	}

	return nil
}

func importLockKey(minDate, maxDate time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(minDate.Format(time.DateOnly)))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.Format(time.DateOnly)))

	return int64(h.Sum64())
}
