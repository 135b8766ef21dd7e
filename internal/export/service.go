package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/expense"
	"github.com/alan-vieira/controle-familiar/internal/settlement"
)

// ExpenseLister lists the expenses of a competence month.
type ExpenseLister interface {
	List(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error)
}

// Reporter computes the settlement report of a competence month.
type Reporter interface {
	Report(ctx context.Context, month billing.Month) (*settlement.Report, error)
}

// Result names the files written for one month.
type Result struct {
	ExpensesPath string
	ReportPath   string
}

// Service writes the expenses and the settlement report of a competence
// month to CSV files, in the same semicolon dialect the importer reads.
type Service struct {
	expenses ExpenseLister
	reporter Reporter
}

func NewService(expenses ExpenseLister, reporter Reporter) *Service {
	return &Service{
		expenses: expenses,
		reporter: reporter,
	}
}

// Export writes despesas_<mes>.csv and resumo_<mes>.csv into outputDir.
func (s *Service) Export(ctx context.Context, month billing.Month, outputDir string) (*Result, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	expensesPath := filepath.Join(outputDir, fmt.Sprintf("despesas_%s.csv", month))
	if err := s.writeExpenses(ctx, month, expensesPath); err != nil {
		return nil, err
	}

	reportPath := filepath.Join(outputDir, fmt.Sprintf("resumo_%s.csv", month))
	if err := s.writeReport(ctx, month, reportPath); err != nil {
		return nil, err
	}

	return &Result{
		ExpensesPath: expensesPath,
		ReportPath:   reportPath,
	}, nil
}

func (s *Service) writeExpenses(ctx context.Context, month billing.Month, path string) error {
	expenses, err := s.expenses.List(ctx, expense.ListFilter{CompetenceMonth: &month})
	if err != nil {
		return fmt.Errorf("listing expenses: %w", err)
	}

	return writeCSV(path, func(w *csv.Writer) error {
		header := []string{"data_compra", "descricao", "valor", "tipo_pg", "categoria", "colaborador", "mes_vigente"}
		if err := w.Write(header); err != nil {
			return err
		}

		for _, e := range expenses {
			record := []string{
				e.PurchaseDate.Format("02/01/2006"),
				e.Description,
				formatBRL(e.Amount),
				string(e.Method),
				string(e.Category),
				e.ParticipantName,
				e.CompetenceMonth.String(),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *Service) writeReport(ctx context.Context, month billing.Month, path string) error {
	report, err := s.reporter.Report(ctx, month)
	if err != nil {
		return fmt.Errorf("computing report: %w", err)
	}

	return writeCSV(path, func(w *csv.Writer) error {
		header := []string{"colaborador", "renda", "percentual", "valor_devido", "valor_pago", "saldo", "situacao"}
		if err := w.Write(header); err != nil {
			return err
		}

		for _, line := range report.Lines {
			record := []string{
				line.Name,
				formatBRL(line.Income),
				fmt.Sprintf("%.2f%%", line.SharePercent*100),
				formatBRL(line.AmountOwed),
				formatBRL(line.AmountPaid),
				formatBRL(line.Balance),
				string(line.Status),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}

		totals := []string{
			"TOTAL",
			formatBRL(report.TotalIncome),
			"100.00%",
			formatBRL(report.TotalExpenses),
			formatBRL(report.TotalExpenses),
			formatBRL(report.Balance),
			"",
		}

		return w.Write(totals)
	})
}

// writeCSV opens path, runs fill with a semicolon-separated writer and
// flushes, reporting the first error seen.
func writeCSV(path string, fill func(w *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'

	if err := fill(w); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", filepath.Base(path), err)
	}

	return nil
}

// formatBRL renders cents as a Brazilian decimal string ("1234,56").
func formatBRL(cents int64) string {
	s := decimal.New(cents, -2).StringFixed(2)
	out := []byte(s)

	for i := range out {
		if out[i] == '.' {
			out[i] = ','
		}
	}

	return string(out)
}
