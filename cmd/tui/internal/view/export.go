package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/export"
)

type ExportModel struct {
	CommonModel
	exportService *export.Service

	form    *huh.Form
	result  *export.Result
	running bool
	err     error

	formMonth string
	formDir   string
}

func NewExportModel(exportSvc *export.Service, defaultDir string) ExportModel {
	m := ExportModel{
		exportService: exportSvc,
		formMonth:     CurrentMonth().String(),
		formDir:       defaultDir,
	}
	m.buildForm()

	return m
}

func (m ExportModel) Title() string     { return "Exportar" }
func (m ExportModel) ShortHelp() string { return "Navigate form | Esc: back" }

func (m *ExportModel) buildForm() {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("mes_ano").
				Title("Mês (YYYY-MM)").
				Value(&m.formMonth).
				Validate(func(s string) error {
					_, err := billing.ParseMonth(s)
					return err
				}),

			huh.NewInput().
				Key("dir").
				Title("Output directory").
				Value(&m.formDir),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		m.running = false
		m.err = msg.err
		m.result = msg.result
		m.buildForm()

		return m, m.form.Init()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.running {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.running = true

	return m, m.exportCmd()
}

func (m ExportModel) View() string {
	if m.running {
		return lipgloss.NewStyle().Padding(2).Render("Exporting...")
	}

	content := "Exportar mês para CSV\n\n" + m.form.View()

	if m.err != nil {
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).
			Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" + content
	} else if m.result != nil {
		content = lipgloss.NewStyle().Faint(true).
			Render(fmt.Sprintf("Written:\n  %s\n  %s", m.result.ExpensesPath, m.result.ReportPath)) +
			"\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// Messages

type exportDoneMsg struct {
	result *export.Result
	err    error
}

func (m ExportModel) exportCmd() tea.Cmd {
	monthStr := m.formMonth
	dir := m.formDir

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		month, err := billing.ParseMonth(monthStr)
		if err != nil {
			return exportDoneMsg{err: err}
		}

		result, err := m.exportService.Export(ctx, month, dir)

		return exportDoneMsg{result: result, err: err}
	}
}
