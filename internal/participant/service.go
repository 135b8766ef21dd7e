package participant

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=participant
type Repository interface {
	CreateParticipant(ctx context.Context, p *Participant) error
	GetParticipant(ctx context.Context, id uuid.UUID) (*Participant, error)
	ListParticipants(ctx context.Context) ([]*Participant, error)
	UpdateParticipant(ctx context.Context, p *Participant) error
	DeleteParticipant(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name       string
	ClosingDay int
}

func (p CreateParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}

	if p.ClosingDay < 1 || p.ClosingDay > 31 {
		return ErrInvalidClosingDay
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Participant, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	p := &Participant{
		Name:       strings.TrimSpace(params.Name),
		ClosingDay: params.ClosingDay,
	}
	if err := s.repo.CreateParticipant(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Participant, error) {
	return s.repo.GetParticipant(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Participant, error) {
	return s.repo.ListParticipants(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params CreateParams) (*Participant, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetParticipant(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(params.Name)
	p.ClosingDay = params.ClosingDay

	if err := s.repo.UpdateParticipant(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteParticipant(ctx, id)
}
