package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/expense"
	"github.com/alan-vieira/controle-familiar/internal/participant"
)

type AddExpenseModel struct {
	CommonModel
	expenseService     *expense.Service
	participantService *participant.Service

	participants []*participant.Participant
	form         *huh.Form
	loading      bool
	err          error
	status       string

	formDate        string
	formDesc        string
	formAmount      string
	formMethod      string
	formCategory    string
	formParticipant string
}

func NewAddExpenseModel(expenseSvc *expense.Service, participantSvc *participant.Service) AddExpenseModel {
	return AddExpenseModel{
		expenseService:     expenseSvc,
		participantService: participantSvc,
		loading:            true,
	}
}

func (m AddExpenseModel) Title() string     { return "Nova Despesa" }
func (m AddExpenseModel) ShortHelp() string { return "Navigate form | Esc: back" }

func (m AddExpenseModel) Init() tea.Cmd {
	return m.loadParticipantsCmd()
}

func (m AddExpenseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadParticipantsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.participants = msg.participants
		m.buildForm()

		return m, m.form.Init()

	case expenseCreatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.buildForm()

			return m, m.form.Init()
		}

		m.status = fmt.Sprintf("Despesa created, mês vigente %s", msg.month)
		m.buildForm()

		return m, m.form.Init()
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.createCmd()
}

func (m *AddExpenseModel) buildForm() {
	m.formDate = time.Now().Format(time.DateOnly)
	m.formDesc = ""
	m.formAmount = ""
	m.formMethod = string(billing.MethodCredit)
	m.formCategory = string(billing.CategoryLazerOutros)

	participantOpts := make([]huh.Option[string], 0, len(m.participants))
	for _, p := range m.participants {
		participantOpts = append(participantOpts, huh.NewOption(p.Name, p.ID.String()))
	}

	if len(participantOpts) > 0 {
		m.formParticipant = participantOpts[0].Value
	}

	methodOpts := []huh.Option[string]{
		huh.NewOption("crédito", string(billing.MethodCredit)),
		huh.NewOption("débito", string(billing.MethodDebit)),
		huh.NewOption("pix", string(billing.MethodPix)),
		huh.NewOption("dinheiro", string(billing.MethodCash)),
		huh.NewOption("outros", string(billing.MethodOther)),
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("data_compra").
				Title("Data da compra (YYYY-MM-DD)").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),

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
				Placeholder("152,30").
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

			huh.NewSelect[string]().
				Key("tipo_pg").
				Title("Tipo de pagamento").
				Options(methodOpts...).
				Value(&m.formMethod),

			huh.NewSelect[string]().
				Key("categoria").
				Title("Categoria").
				Options(categoryOptions()...).
				Value(&m.formCategory),

			huh.NewSelect[string]().
				Key("colaborador").
				Title("Colaborador").
				Options(participantOpts...).
				Value(&m.formParticipant),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m AddExpenseModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading colaboradores...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if len(m.participants) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No colaboradores registered yet. Esc: back")
	}

	content := "Nova despesa\n\n" + m.form.View()
	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// Messages

type loadParticipantsMsg struct {
	participants []*participant.Participant
	err          error
}

func (m AddExpenseModel) loadParticipantsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		participants, err := m.participantService.List(ctx)

		return loadParticipantsMsg{participants: participants, err: err}
	}
}

type expenseCreatedMsg struct {
	month billing.Month
	err   error
}

func (m AddExpenseModel) createCmd() tea.Cmd {
	dateStr := strings.TrimSpace(m.formDate)
	desc := m.formDesc
	amountStr := m.formAmount
	method := m.formMethod
	category := m.formCategory
	participantStr := m.formParticipant

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		date, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return expenseCreatedMsg{err: err}
		}

		amount, err := ParseAmount(amountStr)
		if err != nil {
			return expenseCreatedMsg{err: err}
		}

		participantID, err := parseUUID(participantStr)
		if err != nil {
			return expenseCreatedMsg{err: err}
		}

		e, err := m.expenseService.Create(ctx, expense.CreateParams{
			PurchaseDate:  date,
			Description:   desc,
			Amount:        amount,
			MethodRaw:     method,
			Category:      billing.Category(category),
			ParticipantID: participantID,
		})
		if err != nil {
			return expenseCreatedMsg{err: err}
		}

		return expenseCreatedMsg{month: e.CompetenceMonth}
	}
}
