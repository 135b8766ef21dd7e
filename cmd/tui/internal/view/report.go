package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/settlement"
)

type ReportModel struct {
	CommonModel
	settlementService *settlement.Service

	month      billing.Month
	report     *settlement.Report
	seStatus   *settlement.Status
	loading    bool
	computeErr error
	err        error
	status     string
}

func NewReportModel(settlementSvc *settlement.Service) ReportModel {
	return ReportModel{
		settlementService: settlementSvc,
		month:             CurrentMonth(),
		loading:           true,
	}
}

func (m ReportModel) Title() string { return "Resumo Mensal" }

func (m ReportModel) ShortHelp() string {
	return "Esc: back | [/]: month | p: marcar pago | u: desmarcar | r: refresh"
}

func (m ReportModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadReportMsg:
		m.loading = false
		m.err = msg.err
		m.computeErr = msg.computeErr
		m.report = msg.report
		m.seStatus = msg.status

		return m, nil

	case settlementMarkedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = ""
		}

		return m, m.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
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
		case "p":
			return m, m.markCmd(true)
		case "u":
			return m, m.markCmd(false)
		}
	}

	return m, nil
}

func (m ReportModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Computing resumo...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Resumo %s", m.month))

	var body string

	if m.computeErr != nil {
		body = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).
			Render(fmt.Sprintf("Cannot settle this month: %v", m.computeErr))
	} else {
		body = m.renderReport()
	}

	paidLine := "Divisão: em aberto"
	if m.seStatus != nil && m.seStatus.Paid {
		paidLine = "Divisão: paga"
		if m.seStatus.SettledAt != nil {
			paidLine += " em " + FormatDate(*m.seStatus.SettledAt)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		body,
		"",
		lipgloss.NewStyle().Faint(true).Render(paidLine),
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (m ReportModel) renderReport() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Total despesas: %s  |  Total rendas: %s\n\n",
		FormatAmount(m.report.TotalExpenses), FormatAmount(m.report.TotalIncome)))

	sb.WriteString(fmt.Sprintf("%-20s %12s %8s %12s %12s %12s  %s\n",
		"Colaborador", "Renda", "%", "Devido", "Pago", "Saldo", "Situação"))

	for _, line := range m.report.Lines {
		situacao := string(line.Status)
		if line.Status == settlement.StatusNegative {
			situacao = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(situacao)
		} else {
			situacao = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Render(situacao)
		}

		sb.WriteString(fmt.Sprintf("%-20s %12s %7.1f%% %12s %12s %12s  %s\n",
			line.Name,
			FormatAmount(line.Income),
			line.SharePercent*100,
			FormatAmount(line.AmountOwed),
			FormatAmount(line.AmountPaid),
			FormatAmount(line.Balance),
			situacao,
		))
	}

	return sb.String()
}

// Messages

type loadReportMsg struct {
	report     *settlement.Report
	status     *settlement.Status
	computeErr error
	err        error
}

func (m ReportModel) loadCmd() tea.Cmd {
	month := m.month

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		status, err := m.settlementService.Status(ctx, month)
		if err != nil {
			return loadReportMsg{err: err}
		}

		report, err := m.settlementService.Report(ctx, month)
		if err != nil {
			// Domain failures (missing incomes etc) are shown, not fatal.
			return loadReportMsg{status: status, computeErr: err}
		}

		return loadReportMsg{report: report, status: status}
	}
}

type settlementMarkedMsg struct {
	err error
}

func (m ReportModel) markCmd(paid bool) tea.Cmd {
	month := m.month

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var err error
		if paid {
			_, err = m.settlementService.MarkPaid(ctx, month, nil)
		} else {
			_, err = m.settlementService.MarkUnpaid(ctx, month)
		}

		return settlementMarkedMsg{err: err}
	}
}
