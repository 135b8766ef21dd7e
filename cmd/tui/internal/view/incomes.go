package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/income"
	"github.com/alan-vieira/controle-familiar/internal/participant"
)

type incomesState int

const (
	incomesStateBrowse incomesState = iota
	incomesStateDeclare
)

type IncomesModel struct {
	CommonModel
	incomeService      *income.Service
	participantService *participant.Service

	state incomesState
	table table.Model
	month billing.Month

	incomes      []*income.Income
	participants []*participant.Participant
	form         *huh.Form
	loading      bool
	err          error
	status       string

	formParticipant string
	formAmount      string
}

func NewIncomesModel(incomeSvc *income.Service, participantSvc *participant.Service) IncomesModel {
	columns := []table.Column{
		{Title: "Colaborador", Width: 24},
		{Title: "Mês", Width: 10},
		{Title: "Renda", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
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

	return IncomesModel{
		incomeService:      incomeSvc,
		participantService: participantSvc,
		table:              t,
		month:              CurrentMonth(),
	}
}

func (m IncomesModel) Title() string { return "Rendas" }

func (m IncomesModel) ShortHelp() string {
	if m.state == incomesStateDeclare {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | d: declare | [/]: month | r: refresh"
}

func (m IncomesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m IncomesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadIncomesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.incomes = msg.incomes
		m.participants = msg.participants
		m.refreshTable()

		return m, nil

	case incomeDeclaredMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = ""
		}

		m.state = incomesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case incomesStateBrowse:
		return m.updateBrowse(msg)
	case incomesStateDeclare:
		return m.updateDeclare(msg)
	}

	return m, nil
}

func (m IncomesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case "d":
			return m.enterDeclareMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m IncomesModel) enterDeclareMode() (tea.Model, tea.Cmd) {
	if len(m.participants) == 0 {
		m.status = "No colaboradores registered yet."
		return m, nil
	}

	participantOpts := make([]huh.Option[string], 0, len(m.participants))
	for _, p := range m.participants {
		participantOpts = append(participantOpts, huh.NewOption(p.Name, p.ID.String()))
	}

	m.formParticipant = participantOpts[0].Value
	m.formAmount = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("colaborador").
				Title("Colaborador").
				Options(participantOpts...).
				Value(&m.formParticipant),

			huh.NewInput().
				Key("valor").
				Title(fmt.Sprintf("Renda de %s", m.month)).
				Placeholder("3000,00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					cents, err := ParseAmount(s)
					if err != nil {
						return err
					}
					if cents < 0 {
						return fmt.Errorf("renda cannot be negative")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = incomesStateDeclare
	m.table.Blur()

	return m, m.form.Init()
}

func (m IncomesModel) updateDeclare(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = incomesStateBrowse
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

	return m, m.declareCmd()
}

func (m IncomesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading rendas...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("Mês: %s  ([ previous | ] next)",
		lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(m.month.String()))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == incomesStateDeclare && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Declarar renda\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *IncomesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.incomes))
	for _, in := range m.incomes {
		rows = append(rows, table.Row{
			in.ParticipantName,
			in.Month.String(),
			FormatAmount(in.Amount),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadIncomesMsg struct {
	incomes      []*income.Income
	participants []*participant.Participant
	err          error
}

func (m IncomesModel) loadCmd() tea.Cmd {
	month := m.month

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		incomes, err := m.incomeService.List(ctx, income.ListFilter{Month: &month})
		if err != nil {
			return loadIncomesMsg{err: err}
		}

		participants, err := m.participantService.List(ctx)

		return loadIncomesMsg{incomes: incomes, participants: participants, err: err}
	}
}

type incomeDeclaredMsg struct {
	err error
}

func (m IncomesModel) declareCmd() tea.Cmd {
	month := m.month
	participantStr := m.formParticipant
	amountStr := m.formAmount

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		participantID, err := parseUUID(participantStr)
		if err != nil {
			return incomeDeclaredMsg{err: err}
		}

		amount, err := ParseAmount(amountStr)
		if err != nil {
			return incomeDeclaredMsg{err: err}
		}

		_, err = m.incomeService.Declare(ctx, income.DeclareParams{
			ParticipantID: participantID,
			Month:         month,
			Amount:        amount,
		})

		return incomeDeclaredMsg{err: err}
	}
}
