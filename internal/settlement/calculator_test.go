package settlement_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/expense"
	"github.com/alan-vieira/controle-familiar/internal/income"
	"github.com/alan-vieira/controle-familiar/internal/participant"
	"github.com/alan-vieira/controle-familiar/internal/settlement"
)

var march2025 = billing.Month{Year: 2025, M: time.March}

func newParticipant(name string) *participant.Participant {
	return &participant.Participant{ID: uuid.New(), Name: name, ClosingDay: 10}
}

func incomeFor(p *participant.Participant, month billing.Month, cents int64) *income.Income {
	return &income.Income{
		ID:            uuid.New(),
		ParticipantID: p.ID,
		Month:         month,
		Amount:        cents,
	}
}

func expenseBy(p *participant.Participant, month billing.Month, cents int64) *expense.Expense {
	return &expense.Expense{
		ID:              uuid.New(),
		PurchaseDate:    time.Date(month.Year, month.M, 5, 0, 0, 0, 0, time.UTC),
		Description:     "mercado",
		Amount:          cents,
		Method:          billing.MethodDebit,
		Category:        billing.CategoryAlimentacao,
		ParticipantID:   p.ID,
		CompetenceMonth: month,
	}
}

func TestCompute_ProportionalSplit(t *testing.T) {
	a := newParticipant("Ana")
	b := newParticipant("Bruno")

	participants := []*participant.Participant{a, b}
	incomes := []*income.Income{
		incomeFor(a, march2025, 300_000), // 3000.00
		incomeFor(b, march2025, 100_000), // 1000.00
	}
	expenses := []*expense.Expense{
		expenseBy(a, march2025, 80_000), // 800.00, all paid by Ana
	}

	report, err := settlement.Compute(march2025, participants, incomes, expenses)
	require.NoError(t, err)

	assert.Equal(t, int64(80_000), report.TotalExpenses)
	assert.Equal(t, int64(400_000), report.TotalIncome)
	assert.Equal(t, int64(320_000), report.Balance)
	require.Len(t, report.Lines, 2)

	// Ana overpaid, so she sorts first.
	ana := report.Lines[0]
	assert.Equal(t, a.ID, ana.ParticipantID)
	assert.Equal(t, 0.75, ana.SharePercent)
	assert.Equal(t, int64(60_000), ana.AmountOwed)
	assert.Equal(t, int64(80_000), ana.AmountPaid)
	assert.Equal(t, int64(20_000), ana.Balance)
	assert.Equal(t, settlement.StatusPositive, ana.Status)

	bruno := report.Lines[1]
	assert.Equal(t, b.ID, bruno.ParticipantID)
	assert.Equal(t, 0.25, bruno.SharePercent)
	assert.Equal(t, int64(20_000), bruno.AmountOwed)
	assert.Equal(t, int64(0), bruno.AmountPaid)
	assert.Equal(t, int64(-20_000), bruno.Balance)
	assert.Equal(t, settlement.StatusNegative, bruno.Status)
}

func TestCompute_ValidationOrder(t *testing.T) {
	a := newParticipant("Ana")
	b := newParticipant("Bruno")

	t.Run("NoParticipants", func(t *testing.T) {
		_, err := settlement.Compute(march2025, nil, nil, nil)
		assert.ErrorIs(t, err, settlement.ErrNoParticipants)
	})

	t.Run("MissingIncomeNamesEveryone", func(t *testing.T) {
		incomes := []*income.Income{incomeFor(a, march2025, 100_000)}

		_, err := settlement.Compute(march2025, []*participant.Participant{a, b}, incomes, nil)

		var missing *settlement.MissingIncomeError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"Bruno"}, missing.Names)
	})

	t.Run("MissingIncomeEvenWithZeroExpenses", func(t *testing.T) {
		_, err := settlement.Compute(march2025, []*participant.Participant{a}, nil, nil)

		var missing *settlement.MissingIncomeError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"Ana"}, missing.Names)
	})

	t.Run("IncomeForOtherMonthDoesNotCount", func(t *testing.T) {
		april := march2025.AddMonths(1)
		incomes := []*income.Income{incomeFor(a, april, 100_000)}

		_, err := settlement.Compute(march2025, []*participant.Participant{a}, incomes, nil)

		var missing *settlement.MissingIncomeError
		require.ErrorAs(t, err, &missing)
	})

	t.Run("ZeroTotalIncome", func(t *testing.T) {
		incomes := []*income.Income{
			incomeFor(a, march2025, 0),
			incomeFor(b, march2025, 0),
		}

		_, err := settlement.Compute(march2025, []*participant.Participant{a, b}, incomes, nil)
		assert.ErrorIs(t, err, settlement.ErrZeroIncome)
	})
}

func TestCompute_ZeroExpensesYieldsZeroedLines(t *testing.T) {
	a := newParticipant("Ana")
	incomes := []*income.Income{incomeFor(a, march2025, 250_000)}

	report, err := settlement.Compute(march2025, []*participant.Participant{a}, incomes, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(0), report.TotalExpenses)
	require.Len(t, report.Lines, 1)
	assert.Equal(t, 1.0, report.Lines[0].SharePercent)
	assert.Equal(t, int64(0), report.Lines[0].AmountOwed)
	assert.Equal(t, int64(0), report.Lines[0].Balance)
	assert.Equal(t, settlement.StatusPositive, report.Lines[0].Status)
}

func TestCompute_ExpensesFromOtherMonthsExcluded(t *testing.T) {
	a := newParticipant("Ana")
	april := march2025.AddMonths(1)

	incomes := []*income.Income{incomeFor(a, march2025, 100_000)}
	expenses := []*expense.Expense{
		expenseBy(a, march2025, 10_000),
		expenseBy(a, april, 99_999),
	}

	report, err := settlement.Compute(march2025, []*participant.Participant{a}, incomes, expenses)
	require.NoError(t, err)

	assert.Equal(t, int64(10_000), report.TotalExpenses)
}

// Shares must sum to 1 and owed amounts to the expense total, within a cent
// of rounding slack per participant, even for incomes that do not divide
// evenly.
func TestCompute_ConservationProperties(t *testing.T) {
	a := newParticipant("Ana")
	b := newParticipant("Bruno")
	c := newParticipant("Carla")

	participants := []*participant.Participant{a, b, c}
	incomes := []*income.Income{
		incomeFor(a, march2025, 333_333), // 3333.33
		incomeFor(b, march2025, 123_457), // 1234.57
		incomeFor(c, march2025, 100_001), // 1000.01
	}
	expenses := []*expense.Expense{
		expenseBy(a, march2025, 77_777),
		expenseBy(b, march2025, 10_003),
		expenseBy(c, march2025, 1),
	}

	report, err := settlement.Compute(march2025, participants, incomes, expenses)
	require.NoError(t, err)

	var shareSum float64

	var owedSum, paidSum int64

	for _, line := range report.Lines {
		shareSum += line.SharePercent
		owedSum += line.AmountOwed
		paidSum += line.AmountPaid
	}

	assert.InDelta(t, 1.0, shareSum, 0.0005)
	assert.InDelta(t, float64(report.TotalExpenses), float64(owedSum), float64(len(report.Lines)))
	assert.Equal(t, report.TotalExpenses, paidSum)
}

func TestCompute_Idempotent(t *testing.T) {
	a := newParticipant("Ana")
	b := newParticipant("Bruno")

	participants := []*participant.Participant{a, b}
	incomes := []*income.Income{
		incomeFor(a, march2025, 271_828),
		incomeFor(b, march2025, 314_159),
	}
	expenses := []*expense.Expense{
		expenseBy(a, march2025, 12_345),
		expenseBy(b, march2025, 67_890),
	}

	first, err := settlement.Compute(march2025, participants, incomes, expenses)
	require.NoError(t, err)

	second, err := settlement.Compute(march2025, participants, incomes, expenses)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompute_SortedByBalanceDescending(t *testing.T) {
	a := newParticipant("Ana")
	b := newParticipant("Bruno")
	c := newParticipant("Carla")

	participants := []*participant.Participant{a, b, c}
	incomes := []*income.Income{
		incomeFor(a, march2025, 100_000),
		incomeFor(b, march2025, 100_000),
		incomeFor(c, march2025, 100_000),
	}
	expenses := []*expense.Expense{
		expenseBy(b, march2025, 90_000),
		expenseBy(c, march2025, 3_000),
	}

	report, err := settlement.Compute(march2025, participants, incomes, expenses)
	require.NoError(t, err)

	require.Len(t, report.Lines, 3)
	for i := 1; i < len(report.Lines); i++ {
		assert.GreaterOrEqual(t, report.Lines[i-1].Balance, report.Lines[i].Balance)
	}

	assert.Equal(t, b.ID, report.Lines[0].ParticipantID)
}
