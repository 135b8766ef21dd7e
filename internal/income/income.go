package income

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alan-vieira/controle-familiar/internal/billing"
)

var (
	ErrNotFound      = errors.New("income not found")
	ErrInvalidAmount = errors.New("income amount must not be negative")
)

// Income is a participant's declared income for one competence month.
// Amount is in cents. There is at most one record per (participant, month);
// a second declaration overwrites the first.
type Income struct {
	ID              uuid.UUID
	ParticipantID   uuid.UUID
	ParticipantName string // loaded via JOIN, presentation only
	Month           billing.Month
	Amount          int64
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
