package participant

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("participant not found")
	ErrNameRequired      = errors.New("participant name is required")
	ErrInvalidClosingDay = errors.New("closing day must be between 1 and 31")
	ErrInUse             = errors.New("participant has expenses or incomes")
)

// Participant is a household member who logs expenses and declares income.
// ClosingDay is the day of month their credit card statement closes; it only
// matters for credit purchases.
type Participant struct {
	ID         uuid.UUID
	Name       string
	ClosingDay int
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
