package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alan-vieira/controle-familiar/internal/billing"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindCategory returns the category of the longest pattern contained in the
// description, or empty string when nothing matches.
func (s *Store) FindCategory(ctx context.Context, description string) (string, error) {
	query := `
		SELECT categoria
		FROM categoria_mapeamento
		WHERE $1 ILIKE '%' || padrao || '%'
		ORDER BY LENGTH(padrao) DESC, criado_em DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, description).Scan(&category)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("finding category: %w", err)
	}

	return category, nil
}

func (s *Store) CreateMapping(ctx context.Context, pattern string, category billing.Category) error {
	query := `
		INSERT INTO categoria_mapeamento (padrao, categoria, criado_em)
		VALUES ($1, $2, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, pattern, category)
	if err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}
