package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/alan-vieira/controle-familiar/internal/participant"
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

func scanParticipant(s scanner) (*participant.Participant, error) {
	var p participant.Participant

	if err := s.Scan(&p.ID, &p.Name, &p.ClosingDay, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}

	return &p, nil
}

const selectParticipantColumns = `id, nome, dia_fechamento, created_at, updated_at`

func (s *Store) CreateParticipant(ctx context.Context, p *participant.Participant) error {
	query := `
		INSERT INTO colaborador (nome, dia_fechamento, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, p.Name, p.ClosingDay).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating participant: %w", err)
	}

	return nil
}

func (s *Store) GetParticipant(ctx context.Context, id uuid.UUID) (*participant.Participant, error) {
	query := `SELECT ` + selectParticipantColumns + ` FROM colaborador WHERE id = $1`

	p, err := scanParticipant(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, participant.ErrNotFound
		}

		return nil, fmt.Errorf("getting participant: %w", err)
	}

	return p, nil
}

func (s *Store) ListParticipants(ctx context.Context) ([]*participant.Participant, error) {
	query := `SELECT ` + selectParticipantColumns + ` FROM colaborador ORDER BY nome ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing participants: %w", err)
	}
	defer rows.Close()

	var participants []*participant.Participant

	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning participant: %w", err)
		}

		participants = append(participants, p)
	}

	return participants, rows.Err()
}

func (s *Store) UpdateParticipant(ctx context.Context, p *participant.Participant) error {
	query := `
		UPDATE colaborador
		SET nome = $1, dia_fechamento = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, p.Name, p.ClosingDay, p.ID)
	if err != nil {
		return fmt.Errorf("updating participant: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return participant.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteParticipant(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM colaborador WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return participant.ErrInUse
		}

		return fmt.Errorf("deleting participant: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return participant.ErrNotFound
	}

	return nil
}
