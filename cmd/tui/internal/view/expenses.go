package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/expense"
)

type expensesState int

const (
	expensesStateBrowse expensesState = iota
	expensesStateEdit
)

type ExpensesModel struct {
	CommonModel
	expenseService *expense.Service

	state expensesState
	table table.Model
	month billing.Month

	expenses []*expense.Expense
	form     *huh.Form
	loading  bool
	err      error
	status   string

	// Form bindings
	formDesc     string
	formAmount   string
	formMethod   string
	formCategory string
}

func NewExpensesModel(expenseSvc *expense.Service) ExpensesModel {
	columns := []table.Column{
		{Title: "Data", Width: 12},
		{Title: "Descrição", Width: 34},
		{Title: "Valor", Width: 10},
		{Title: "Tipo", Width: 10},
		{Title: "Categoria", Width: 18},
		{Title: "Colaborador", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ExpensesModel{
		expenseService: expenseSvc,
		table:          t,
		month:          CurrentMonth(),
	}
}

func (m ExpensesModel) Title() string { return "Despesas" }

func (m ExpensesModel) ShortHelp() string {
	if m.state == expensesStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit | x: delete | [/]: month | r: refresh"
}

func (m ExpensesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadExpensesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.expenses = msg.expenses
		m.refreshTable()

		return m, nil

	case expenseSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}

		m.state = expensesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case expensesStateBrowse:
		return m.updateBrowse(msg)
	case expensesStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m ExpensesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "[":
			m.month = m.month.AddMonths(-1)
			m.loading = true

			return m, m.loadCmd()
		case "]":
			m.month = m.month.AddMonths(1)
			m.loading = true

			return m, m.loadCmd()
		case "e":
			return m.enterEditMode()
		case "x":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.expenses) {
		return m, nil
	}

	e := m.expenses[idx]
	m.formDesc = e.Description
	m.formAmount = FormatAmount(e.Amount)
	m.formMethod = string(e.Method)
	m.formCategory = string(e.Category)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("descricao").
				Title("Descrição").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("descrição cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("valor").
				Title("Valor").
				Value(&m.formAmount).
				Validate(func(s string) error {
					cents, err := ParseAmount(s)
					if err != nil {
						return err
					}
					if cents <= 0 {
						return fmt.Errorf("valor must be positive")
					}
					return nil
				}),

			huh.NewInput().
				Key("tipo_pg").
				Title("Tipo de pagamento").
				Value(&m.formMethod),

			huh.NewSelect[string]().
				Key("categoria").
				Title("Categoria").
				Options(categoryOptions()...).
				Value(&m.formCategory),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = expensesStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func categoryOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(billing.Categories))
	for _, c := range billing.Categories {
		opts = append(opts, huh.NewOption(string(c), string(c)))
	}

	return opts
}

func (m ExpensesModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = expensesStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m ExpensesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading despesas...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("Mês vigente: %s  ([ previous | ] next)",
		lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(m.month.String()))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == expensesStateEdit && m.form != nil {
		idx := m.table.Cursor()

		rawDesc := ""
		if idx >= 0 && idx < len(m.expenses) {
			rawDesc = m.expenses[idx].RawDescription
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("Editar despesa\n\nOriginal: %s\n\n%s", rawDesc, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ExpensesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.expenses))
	for _, e := range m.expenses {
		rows = append(rows, table.Row{
			FormatDate(e.PurchaseDate),
			e.Description,
			FormatAmount(e.Amount),
			string(e.Method),
			string(e.Category),
			e.ParticipantName,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadExpensesMsg struct {
	expenses []*expense.Expense
	err      error
}

func (m ExpensesModel) loadCmd() tea.Cmd {
	month := m.month

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		expenses, err := m.expenseService.List(ctx, expense.ListFilter{CompetenceMonth: &month})

		return loadExpensesMsg{expenses: expenses, err: err}
	}
}

type expenseSavedMsg struct {
	err error
}

func (m ExpensesModel) saveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.expenses) {
		return nil
	}

	e := m.expenses[idx]
	desc := m.formDesc
	amountStr := m.formAmount
	method := m.formMethod
	category := m.formCategory

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		amount, err := ParseAmount(amountStr)
		if err != nil {
			return expenseSavedMsg{err: err}
		}

		_, err = m.expenseService.Update(ctx, e.ID, expense.CreateParams{
			PurchaseDate:   e.PurchaseDate,
			Description:    desc,
			RawDescription: e.RawDescription,
			Amount:         amount,
			MethodRaw:      method,
			Category:       billing.Category(category),
			ParticipantID:  e.ParticipantID,
		})

		return expenseSavedMsg{err: err}
	}
}

func (m ExpensesModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.expenses) {
		return nil
	}

	id := m.expenses[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.expenseService.Delete(ctx, id)

		return expenseSavedMsg{err: err}
	}
}
