package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wavecollapse.dev/wfc/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	doneStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#90EE90"))
)

type stepMsg struct {
	solved bool
}

type watchModel struct {
	e      *engine.Engine[rune]
	prog   progress.Model
	solved bool
	steps  int
}

func newWatchModel(e *engine.Engine[rune]) *watchModel {
	return &watchModel{
		e:    e,
		prog: progress.New(progress.WithDefaultGradient()),
	}
}

func (m *watchModel) Init() tea.Cmd {
	return m.step
}

func (m *watchModel) step() tea.Msg {
	solved := m.e.Collapse(true, nil)
	return stepMsg{solved: solved}
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.prog.Width = msg.Width - 4
		if m.prog.Width > 60 {
			m.prog.Width = 60
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}

	case stepMsg:
		m.steps++
		m.solved = msg.solved
		if !m.solved {
			return m, m.step
		}
		return m, nil
	}
	return m, nil
}

func (m *watchModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("wfc collapse"))
	b.WriteString("\n\n")

	pct := m.e.Uncertainty()
	b.WriteString(m.prog.ViewAs(pct))
	b.WriteString(fmt.Sprintf(" %.1f%%\n\n", pct*100))

	b.WriteString(fmt.Sprintf("steps: %d\n\n", m.steps))

	if m.solved {
		b.WriteString(doneStyle.Render("solved"))
		b.WriteString("\n\n")
		b.WriteString(m.e.Grid().Repr())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q quit"))
	} else {
		b.WriteString(helpStyle.Render("collapsing... q to quit"))
	}

	return b.String()
}

func runWatch(ctx context.Context, e *engine.Engine[rune]) error {
	p := tea.NewProgram(newWatchModel(e), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
