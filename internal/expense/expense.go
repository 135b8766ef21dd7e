package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alan-vieira/controle-familiar/internal/billing"
)

var (
	ErrNotFound      = errors.New("expense not found")
	ErrInvalidAmount = errors.New("expense amount must be greater than zero")
)

// Expense is a single purchase. Amount is in cents. CompetenceMonth is
// derived once at create/update time from the purchase date, the payment
// method and the owning participant's statement closing day; it is never
// recomputed on read.
type Expense struct {
	ID              uuid.UUID
	PurchaseDate    time.Time
	Description     string
	RawDescription  string
	Amount          int64
	Method          billing.Method
	Category        billing.Category
	ParticipantID   uuid.UUID
	ParticipantName string // loaded via JOIN, presentation only
	CompetenceMonth billing.Month
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
}
