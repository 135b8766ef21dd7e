package settlement

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alan-vieira/controle-familiar/internal/billing"
)

var (
	// ErrNoParticipants is returned when a settlement is requested before any
	// participant exists.
	ErrNoParticipants = errors.New("no participants registered")

	// ErrZeroIncome is returned when the declared incomes for the month sum
	// to zero, which would make proportional shares undefined.
	ErrZeroIncome = errors.New("total declared income for the month is zero")
)

// MissingIncomeError reports every participant without a declared income for
// the requested month. A settlement is all-or-nothing: one missing income
// fails the whole computation.
type MissingIncomeError struct {
	Names []string
}

func (e *MissingIncomeError) Error() string {
	return fmt.Sprintf("incomes not declared for: %s", strings.Join(e.Names, ", "))
}

// LineStatus flags whether a participant ended the month ahead or behind
// their fair share.
type LineStatus string

const (
	StatusPositive LineStatus = "positivo"
	StatusNegative LineStatus = "negativo"
)

// Line is one participant's slice of a settlement report. Monetary amounts
// are in cents; SharePercent is a fraction of 1 rounded to four decimals.
type Line struct {
	ParticipantID uuid.UUID
	Name          string
	Income        int64
	SharePercent  float64
	AmountOwed    int64
	AmountPaid    int64
	Balance       int64
	Status        LineStatus
}

// Report is the settlement of one competence month. It is derived data,
// recomputed on every query and never persisted.
type Report struct {
	Month         billing.Month
	TotalExpenses int64
	TotalIncome   int64
	Balance       int64 // TotalIncome - TotalExpenses
	Lines         []Line
}

// Status records whether a month's computed imbalance has been physically
// settled between participants. Bookkeeping only; it never feeds Compute.
type Status struct {
	Month     billing.Month
	Paid      bool
	SettledAt *time.Time
}
