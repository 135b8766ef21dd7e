package export

import (
	"context"
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/expense"
	"github.com/alan-vieira/controle-familiar/internal/settlement"
)

type stubLister struct {
	expenses []*expense.Expense
}

func (s *stubLister) List(context.Context, expense.ListFilter) ([]*expense.Expense, error) {
	return s.expenses, nil
}

type stubReporter struct {
	report *settlement.Report
}

func (s *stubReporter) Report(context.Context, billing.Month) (*settlement.Report, error) {
	return s.report, nil
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'

	rows, err := r.ReadAll()
	require.NoError(t, err)

	return rows
}

func TestService_Export(t *testing.T) {
	month := billing.Month{Year: 2025, M: time.March}

	lister := &stubLister{
		expenses: []*expense.Expense{
			{
				ID:              uuid.New(),
				PurchaseDate:    time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
				Description:     "Supermercado",
				Amount:          15230,
				Method:          billing.MethodDebit,
				Category:        billing.CategoryAlimentacao,
				ParticipantName: "Ana",
				CompetenceMonth: month,
			},
		},
	}

	reporter := &stubReporter{
		report: &settlement.Report{
			Month:         month,
			TotalExpenses: 80000,
			TotalIncome:   400000,
			Balance:       320000,
			Lines: []settlement.Line{
				{
					Name:         "Ana",
					Income:       300000,
					SharePercent: 0.75,
					AmountOwed:   60000,
					AmountPaid:   80000,
					Balance:      20000,
					Status:       settlement.StatusPositive,
				},
				{
					Name:         "Bruno",
					Income:       100000,
					SharePercent: 0.25,
					AmountOwed:   20000,
					AmountPaid:   0,
					Balance:      -20000,
					Status:       settlement.StatusNegative,
				},
			},
		},
	}

	dir := t.TempDir()

	result, err := NewService(lister, reporter).Export(context.Background(), month, dir)
	require.NoError(t, err)

	expenses := readCSV(t, result.ExpensesPath)
	require.Len(t, expenses, 2)
	assert.Equal(t, []string{"data_compra", "descricao", "valor", "tipo_pg", "categoria", "colaborador", "mes_vigente"}, expenses[0])
	assert.Equal(t, []string{"05/03/2025", "Supermercado", "152,30", "debito", "alimentacao", "Ana", "2025-03"}, expenses[1])

	report := readCSV(t, result.ReportPath)
	require.Len(t, report, 4)
	assert.Equal(t, []string{"Ana", "3000,00", "75.00%", "600,00", "800,00", "200,00", "positivo"}, report[1])
	assert.Equal(t, []string{"Bruno", "1000,00", "25.00%", "200,00", "0,00", "-200,00", "negativo"}, report[2])
	assert.Equal(t, "TOTAL", report[3][0])
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "1234,56", formatBRL(123456))
	assert.Equal(t, "-588,74", formatBRL(-58874))
	assert.Equal(t, "0,00", formatBRL(0))
	assert.Equal(t, "0,05", formatBRL(5))
}
