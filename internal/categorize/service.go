package categorize

import (
	"context"
	"errors"
	"strings"

	"github.com/alan-vieira/controle-familiar/internal/billing"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=categorize

// ErrEmptyPattern reports a blank pattern, which would match everything.
var ErrEmptyPattern = errors.New("pattern must not be empty")

type Repository interface {
	FindCategory(ctx context.Context, description string) (string, error)
	CreateMapping(ctx context.Context, pattern string, category billing.Category) error
}

// Service learns description patterns and suggests expense categories for
// statement rows whose descriptions match a known pattern.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest looks up a category for the given description. The zero Category
// and false mean no pattern matched.
func (s *Service) Suggest(ctx context.Context, description string) (billing.Category, bool, error) {
	found, err := s.repo.FindCategory(ctx, description)
	if err != nil {
		return "", false, err
	}
	if found == "" {
		return "", false, nil
	}

	category, err := billing.ParseCategory(found)
	if err != nil {
		// A stale mapping should not block imports.
		return "", false, nil
	}

	return category, true, nil
}

// Learn remembers that descriptions containing pattern belong to category.
func (s *Service) Learn(ctx context.Context, pattern string, category billing.Category) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return ErrEmptyPattern
	}
	if !category.Valid() {
		return billing.ErrInvalidCategory
	}

	return s.repo.CreateMapping(ctx, pattern, category)
}
