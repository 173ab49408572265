package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plumehq/plume"
	"github.com/plumehq/plume/dispatch"
	"github.com/plumehq/plume/host"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	evictedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Strikethrough(true)

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	faultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const faultLogSize = 8

type dashboardModel struct {
	ctx      context.Context
	host     *host.Host
	cfg      host.Config
	spin     spinner.Model
	faultLog []string
	err      error
	paused   bool
}

type tickMsg struct {
	faults []dispatch.FaultReport
	err    error
}

func newDashboardModel(ctx context.Context, h *host.Host, cfg host.Config) *dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	return &dashboardModel{ctx: ctx, host: h, cfg: cfg, spin: s}
}

func (m *dashboardModel) tickCmd() tea.Cmd {
	interval := time.Second / time.Duration(m.cfg.TickRate)
	if m.cfg.Target == plume.TargetServer {
		interval = m.cfg.TickInterval
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		faults, err := m.host.Tick(m.ctx)
		return tickMsg{faults: faults, err: err}
	})
}

func (m *dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.tickCmd())
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p":
			m.paused = !m.paused
			if !m.paused {
				return m, m.tickCmd()
			}
		}
		return m, nil

	case tickMsg:
		for _, fault := range msg.faults {
			line := fmt.Sprintf("%s: %v", time.Now().Format("15:04:05"), fault.Err)
			m.faultLog = append(m.faultLog, line)
			if len(m.faultLog) > faultLogSize {
				m.faultLog = m.faultLog[len(m.faultLog)-faultLogSize:]
			}
		}
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		if m.paused {
			return m, nil
		}
		return m, m.tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *dashboardModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("plume host"))
	b.WriteString("  ")
	if m.paused {
		b.WriteString(helpStyle.Render("paused"))
	} else {
		b.WriteString(m.spin.View())
	}
	b.WriteString("\n\n")

	b.WriteString(statStyle.Render(fmt.Sprintf("target %-8s cycles %-10d faults %d",
		m.cfg.Target, m.host.Cycles(), m.host.FaultCount())))
	b.WriteString("\n\nSystems (instantiation order):\n")

	evicted := make(map[string]bool)
	for _, name := range m.host.Evicted() {
		evicted[name] = true
	}
	for i, name := range m.host.Order() {
		line := fmt.Sprintf("  %2d. %s", i+1, name)
		if evicted[name] {
			b.WriteString(evictedStyle.Render(line + "  (evicted)"))
		} else {
			b.WriteString(systemStyle.Render(line))
		}
		b.WriteByte('\n')
	}

	if len(m.faultLog) > 0 {
		b.WriteString("\nRecent faults:\n")
		for _, line := range m.faultLog {
			b.WriteString(faultStyle.Render("  " + line))
			b.WriteByte('\n')
		}
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(faultStyle.Render("session aborted: " + m.err.Error()))
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("p: pause/resume • q: quit"))
	b.WriteString("\n")
	return b.String()
}

func runInteractive(ctx context.Context, h *host.Host, cfg host.Config) error {
	model := newDashboardModel(ctx, h, cfg)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && err != context.Canceled {
		return err
	}
	return model.err
}
