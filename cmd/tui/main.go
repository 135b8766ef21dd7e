package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/alan-vieira/controle-familiar/cmd/tui/internal/view"
	"github.com/alan-vieira/controle-familiar/internal/config"
	"github.com/alan-vieira/controle-familiar/internal/database"
	"github.com/alan-vieira/controle-familiar/internal/expense"
	expenseStore "github.com/alan-vieira/controle-familiar/internal/expense/store"
	"github.com/alan-vieira/controle-familiar/internal/export"
	"github.com/alan-vieira/controle-familiar/internal/income"
	incomeStore "github.com/alan-vieira/controle-familiar/internal/income/store"
	"github.com/alan-vieira/controle-familiar/internal/participant"
	participantStore "github.com/alan-vieira/controle-familiar/internal/participant/store"
	"github.com/alan-vieira/controle-familiar/internal/settlement"
	settlementStore "github.com/alan-vieira/controle-familiar/internal/settlement/store"
)

type model struct {
	participantService *participant.Service
	expenseService     *expense.Service
	incomeService      *income.Service
	settlementService  *settlement.Service
	exportService      *export.Service
	exportDir          string

	currentView View

	expensesView   view.ExpensesModel
	addExpenseView view.AddExpenseModel
	incomesView    view.IncomesModel
	reportView     view.ReportModel
	exportView     view.ExportModel
}

type View int

const (
	ViewMenu       View = 0
	ViewExpenses   View = 1
	ViewAddExpense View = 2
	ViewIncomes    View = 3
	ViewReport     View = 4
	ViewExport     View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	participantSvc := participant.NewService(participantStore.New(db))
	expenseSvc := expense.NewService(expenseStore.New(db), participantSvc)
	incomeSvc := income.NewService(incomeStore.New(db), participantSvc)
	settlementSvc := settlement.NewService(settlementStore.New(db))
	exportSvc := export.NewService(expenseSvc, settlementSvc)

	return model{
		participantService: participantSvc,
		expenseService:     expenseSvc,
		incomeService:      incomeSvc,
		settlementService:  settlementSvc,
		exportService:      exportSvc,
		exportDir:          cfg.Export.OutputDir,
		currentView:        ViewMenu,
		expensesView:       view.NewExpensesModel(expenseSvc),
		addExpenseView:     view.NewAddExpenseModel(expenseSvc, participantSvc),
		incomesView:        view.NewIncomesModel(incomeSvc, participantSvc),
		reportView:         view.NewReportModel(settlementSvc),
		exportView:         view.NewExportModel(exportSvc, cfg.Export.OutputDir),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewExpenses
				m.expensesView = view.NewExpensesModel(m.expenseService)

				return m, m.expensesView.Init()
			case "2":
				m.currentView = ViewAddExpense
				m.addExpenseView = view.NewAddExpenseModel(m.expenseService, m.participantService)

				return m, m.addExpenseView.Init()
			case "3":
				m.currentView = ViewIncomes
				m.incomesView = view.NewIncomesModel(m.incomeService, m.participantService)

				return m, m.incomesView.Init()
			case "4":
				m.currentView = ViewReport
				m.reportView = view.NewReportModel(m.settlementService)

				return m, m.reportView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.exportDir)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ViewAddExpense:
		var newModel tea.Model
		newModel, cmd = m.addExpenseView.Update(msg)
		m.addExpenseView = newModel.(view.AddExpenseModel)
	case ViewIncomes:
		var newModel tea.Model
		newModel, cmd = m.incomesView.Update(msg)
		m.incomesView = newModel.(view.IncomesModel)
	case ViewReport:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Controle Familiar\n\n" +
				"1. Despesas do mês\n" +
				"2. Nova despesa\n" +
				"3. Rendas\n" +
				"4. Resumo mensal\n" +
				"5. Exportar CSV\n\n" +
				"q. Quit",
		)
	case ViewExpenses:
		return m.expensesView.View()
	case ViewAddExpense:
		return m.addExpenseView.View()
	case ViewIncomes:
		return m.incomesView.View()
	case ViewReport:
		return m.reportView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
