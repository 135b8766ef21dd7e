package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/participant"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	ListExpenses(ctx context.Context, filter ListFilter) ([]*Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error

	BeginImport(ctx context.Context, minDate, maxDate time.Time) (ImportTx, error)
}

// ImportTx is a batch insert wrapped in a database transaction, so a
// statement import either lands whole or not at all.
type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Expense, error)
	CreateExpenses(ctx context.Context, es []*Expense) error
	Commit() error
	Rollback() error
}

// Directory resolves participants; the service needs their statement
// closing day to stamp competence months.
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

type CreateParams struct {
	PurchaseDate   time.Time
	Description    string
	RawDescription string
	Amount         int64
	MethodRaw      string
	Category       billing.Category
	ParticipantID  uuid.UUID
}

type ListFilter struct {
	CompetenceMonth *billing.Month
	ParticipantID   *uuid.UUID
}

// Create validates the purchase, normalizes the free-text payment method and
// stamps the competence month before persisting.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	e, err := s.build(ctx, params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, filter)
}

// Update replaces an expense's fields and restamps its competence month;
// editing the purchase date, method or owner can move the expense to a
// different month.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params CreateParams) (*Expense, error) {
	current, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	e, err := s.build(ctx, params)
	if err != nil {
		return nil, err
	}

	e.ID = current.ID
	e.CreatedAt = current.CreatedAt

	if err := s.repo.UpdateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, id)
}

type ImportResult struct {
	Imported  []*Expense
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Expense
}

// ImportBatch inserts a parsed bank statement as expenses. Rows already
// present (same participant, date, amount and raw description) are reported
// as conflicts instead of being written; when any conflict exists nothing is
// written, so a re-run after review stays idempotent.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	built := make([]*Expense, 0, len(params))

	for _, p := range params {
		e, err := s.build(ctx, p)
		if err != nil {
			return nil, err
		}

		built = append(built, e)
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	type dupKey struct {
		ParticipantID  uuid.UUID
		Date           string
		Amount         int64
		RawDescription string
	}

	lookup := make(map[dupKey]*Expense, len(duplicates))

	for _, d := range duplicates {
		k := dupKey{
			ParticipantID:  d.ParticipantID,
			Date:           d.PurchaseDate.Format(time.DateOnly),
			Amount:         d.Amount,
			RawDescription: d.RawDescription,
		}
		lookup[k] = d
	}

	var (
		fresh     []*Expense
		newParams []CreateParams
		conflicts []Conflict
	)

	for i, p := range params {
		k := dupKey{
			ParticipantID:  p.ParticipantID,
			Date:           p.PurchaseDate.Format(time.DateOnly),
			Amount:         p.Amount,
			RawDescription: p.RawDescription,
		}

		existing, found := lookup[k]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		fresh = append(fresh, built[i])
		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	if err := itx.CreateExpenses(ctx, fresh); err != nil {
		return nil, fmt.Errorf("create expenses: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: fresh}, nil
}

// build turns params into a persistable expense: amount and category checks,
// method normalization, competence month stamping.
func (s *Service) build(ctx context.Context, params CreateParams) (*Expense, error) {
	if params.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if !params.Category.Valid() {
		return nil, fmt.Errorf("%w %q", billing.ErrInvalidCategory, params.Category)
	}

	owner, err := s.participants.Get(ctx, params.ParticipantID)
	if err != nil {
		return nil, fmt.Errorf("resolving participant: %w", err)
	}

	method := billing.NormalizeMethod(params.MethodRaw)

	return &Expense{
		PurchaseDate:    params.PurchaseDate,
		Description:     params.Description,
		RawDescription:  params.RawDescription,
		Amount:          params.Amount,
		Method:          method,
		Category:        params.Category,
		ParticipantID:   owner.ID,
		ParticipantName: owner.Name,
		CompetenceMonth: billing.Resolve(params.PurchaseDate, method, owner.ClosingDay),
	}, nil
}

func dateRange(params []CreateParams) (time.Time, time.Time) {
	minDate := params[0].PurchaseDate
	maxDate := params[0].PurchaseDate

	for _, p := range params[1:] {
		if p.PurchaseDate.Before(minDate) {
			minDate = p.PurchaseDate
		}

		if p.PurchaseDate.After(maxDate) {
			maxDate = p.PurchaseDate
		}
	}

	return minDate, maxDate
}
