package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alan-vieira/controle-familiar/internal/auth"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, user *auth.User) error {
	query := `
		INSERT INTO usuario (username, email, password_hash, ativo, criado_em)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, criado_em
	`

	err := s.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Active,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	query := `
		SELECT id, username, COALESCE(email, ''), password_hash, ativo, criado_em
		FROM usuario
		WHERE username = $1
	`

	var user auth.User

	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Active, &user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrUserNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &user, nil
}
