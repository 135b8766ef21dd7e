package settlement

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/expense"
	"github.com/alan-vieira/controle-familiar/internal/income"
	"github.com/alan-vieira/controle-familiar/internal/participant"
)

// Compute builds the settlement report for one competence month: each
// participant's proportional share of the month's total expenses, what they
// actually paid, and the resulting balance.
//
// Preconditions are checked in order and the first violation wins: at least
// one participant must exist, every participant must have an income declared
// for the month, and the declared incomes must sum to more than zero.
// Partial reports are never produced.
//
// Amounts are cents end to end; the proportional math runs on
// shopspring/decimal at full precision and rounds only at the output
// boundary (money to the cent, share to four decimal places). The function
// is pure: identical inputs yield identical reports.
func Compute(
	month billing.Month,
	participants []*participant.Participant,
	incomes []*income.Income,
	expenses []*expense.Expense,
) (*Report, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	incomeByParticipant := make(map[string]int64, len(incomes))

	for _, in := range incomes {
		if in.Month == month {
			incomeByParticipant[in.ParticipantID.String()] = in.Amount
		}
	}

	var missing []string

	for _, p := range participants {
		if _, ok := incomeByParticipant[p.ID.String()]; !ok {
			missing = append(missing, p.Name)
		}
	}

	if len(missing) > 0 {
		return nil, &MissingIncomeError{Names: missing}
	}

	var totalIncome int64
	for _, p := range participants {
		totalIncome += incomeByParticipant[p.ID.String()]
	}

	if totalIncome == 0 {
		return nil, ErrZeroIncome
	}

	var totalExpenses int64

	paidByParticipant := make(map[string]int64, len(participants))

	for _, e := range expenses {
		if e.CompetenceMonth != month {
			continue
		}

		totalExpenses += e.Amount
		paidByParticipant[e.ParticipantID.String()] += e.Amount
	}

	totalIncomeDec := decimal.New(totalIncome, -2)
	totalExpensesDec := decimal.New(totalExpenses, -2)

	lines := make([]Line, 0, len(participants))

	for _, p := range participants {
		earned := incomeByParticipant[p.ID.String()]
		earnedDec := decimal.New(earned, -2)

		share := earnedDec.Div(totalIncomeDec)
		owed := totalExpensesDec.Mul(share).Round(2)
		paid := paidByParticipant[p.ID.String()]
		balance := paid - owed.Shift(2).IntPart()

		status := StatusPositive
		if balance < 0 {
			status = StatusNegative
		}

		lines = append(lines, Line{
			ParticipantID: p.ID,
			Name:          p.Name,
			Income:        earned,
			SharePercent:  share.Round(4).InexactFloat64(),
			AmountOwed:    owed.Shift(2).IntPart(),
			AmountPaid:    paid,
			Balance:       balance,
			Status:        status,
		})
	}

	// Highest balance first; name breaks ties so identical inputs always
	// produce identical output.
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Balance != lines[j].Balance {
			return lines[i].Balance > lines[j].Balance
		}

		return lines[i].Name < lines[j].Name
	})

	return &Report{
		Month:         month,
		TotalExpenses: totalExpenses,
		TotalIncome:   totalIncome,
		Balance:       totalIncome - totalExpenses,
		Lines:         lines,
	}, nil
}
