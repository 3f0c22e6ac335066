// Package tui is the interactive terminal viewer for comparison results.
package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/hwcompare/internal/compare"
	"github.com/mwiater/hwcompare/internal/pipeline"
	"github.com/mwiater/hwcompare/internal/util"
)

const maxHeaderRunes = 24

// LoadFunc produces the result to display. It runs off the UI goroutine.
type LoadFunc func() (pipeline.Result, error)

type resultMsg struct {
	result pipeline.Result
	err    error
}

var (
	titleStyle    = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	tabStyle      = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("244"))
	activeTab     = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("205")).Underline(true)
	headerStyle   = lipgloss.NewStyle().Bold(true)
	selectedRow   = lipgloss.NewStyle().Reverse(true)
	bestStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true)
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	summaryStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
)

// Model is the bubbletea model of the viewer.
type Model struct {
	load    LoadFunc
	spinner spinner.Model
	summary viewport.Model

	loading bool
	err     error
	result  pipeline.Result

	group, row, column int
	showSummary        bool
	width, height      int
}

// New returns a viewer that calls load on start and on "r".
func New(load LoadFunc) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &Model{
		load:    load,
		spinner: s,
		summary: viewport.New(60, 20),
		loading: true,
	}
}

// Run starts the viewer full screen and blocks until it quits.
func Run(load LoadFunc) error {
	_, err := tea.NewProgram(New(load), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) loadCmd() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		res, err := load()
		return resultMsg{result: res, err: err}
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m *Model) groups() []compare.Group { return m.result.Comparison.Groups }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.summary.Width = max(20, msg.Width/3)
		m.summary.Height = max(5, msg.Height-6)
		m.refreshSummary()
		return m, nil

	case resultMsg:
		m.loading = false
		m.err = msg.err
		m.result = msg.result
		m.group, m.row = 0, 0
		m.column = min(m.column, max(0, len(m.result.Reports)-1))
		m.refreshSummary()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())
	}
	if m.loading || m.err != nil {
		return m, nil
	}

	groups := m.groups()
	switch msg.String() {
	case "right", "l":
		if len(groups) > 0 {
			m.group = (m.group + 1) % len(groups)
			m.row = 0
		}
	case "left", "h":
		if len(groups) > 0 {
			m.group = (m.group - 1 + len(groups)) % len(groups)
			m.row = 0
		}
	case "down", "j":
		if len(groups) > 0 && m.row < len(groups[m.group].Rows)-1 {
			m.row++
		}
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "tab":
		if n := len(m.result.Reports); n > 0 {
			m.column = (m.column + 1) % n
			m.refreshSummary()
		}
	case "s":
		m.showSummary = !m.showSummary
	case "pgdown":
		m.summary.HalfViewDown()
	case "pgup":
		m.summary.HalfViewUp()
	}
	return m, nil
}

func (m *Model) refreshSummary() {
	if m.column < len(m.result.Reports) {
		text := strings.Join(m.result.Reports[m.column].SummaryLines, "\n")
		m.summary.SetContent(util.WrapToWidth(text, max(10, m.summary.Width-4)))
	} else {
		m.summary.SetContent("")
	}
	m.summary.GotoTop()
}

func (m *Model) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s Analisando relatórios...\n", m.spinner.View())
	}
	if m.err != nil {
		return errorStyle.Render("Erro: " + m.err.Error())
	}
	if len(m.result.Reports) == 0 {
		var b strings.Builder
		b.WriteString(errorStyle.Render("Nenhum relatório analisado."))
		for _, f := range m.result.Failures {
			b.WriteString("\n  " + f.Error())
		}
		return b.String()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("hwcompare") + "\n\n")
	b.WriteString(m.tabsView() + "\n\n")

	table := m.tableView()
	if m.showSummary {
		table = lipgloss.JoinHorizontal(lipgloss.Top, table, "  ", summaryStyle.Render(m.summary.View()))
	}
	b.WriteString(table + "\n\n")

	if n := len(m.result.Failures); n > 0 {
		b.WriteString(criticalStyle.Render(fmt.Sprintf("%d relatório(s) com falha", n)) + "\n")
	}
	b.WriteString(helpStyle.Render("←/→ grupo · ↑/↓ linha · tab relatório · s resumo · r recarregar · q sair"))
	return b.String()
}

func (m *Model) tabsView() string {
	tabs := make([]string, 0, len(m.groups()))
	for i, g := range m.groups() {
		if i == m.group {
			tabs = append(tabs, activeTab.Render(g.Title))
		} else {
			tabs = append(tabs, tabStyle.Render(g.Title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) tableView() string {
	groups := m.groups()
	if len(groups) == 0 {
		return ""
	}
	g := groups[m.group]
	headers := make([]string, len(m.result.Comparison.Headers))
	for i, h := range m.result.Comparison.Headers {
		headers[i] = util.TruncateRunes(h, maxHeaderRunes)
	}

	labelWidth := utf8.RuneCountInString("Métrica")
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, r := range g.Rows {
		labelWidth = max(labelWidth, utf8.RuneCountInString(r.Label))
		for i, c := range r.FormattedValues {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(c))
			}
		}
	}

	var lines []string
	cells := []string{headerStyle.Width(labelWidth).Render("Métrica")}
	for i, h := range headers {
		style := headerStyle.Width(widths[i]).Align(lipgloss.Right)
		if i == m.column {
			style = style.Underline(true)
		}
		cells = append(cells, style.Render(h))
	}
	lines = append(lines, strings.Join(cells, "  "))

	for ri, r := range g.Rows {
		cells := []string{lipgloss.NewStyle().Width(labelWidth).Render(r.Label)}
		for i, c := range r.FormattedValues {
			if i >= len(widths) {
				break
			}
			style := lipgloss.NewStyle().Width(widths[i]).Align(lipgloss.Right)
			switch {
			case i < len(r.Critical) && r.Critical[i]:
				style = style.Inherit(criticalStyle)
			case r.BestIndex != nil && *r.BestIndex == i:
				style = style.Inherit(bestStyle)
			}
			cells = append(cells, style.Render(c))
		}
		line := strings.Join(cells, "  ")
		if ri == m.row {
			line = selectedRow.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Selection reports the current group, row and report column.
func (m *Model) Selection() (group, row, column int) { return m.group, m.row, m.column }

// SummaryVisible reports whether the summary panel is shown.
func (m *Model) SummaryVisible() bool { return m.showSummary }
