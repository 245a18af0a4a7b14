// Package viz renders a live terminal view of the membrane potential while
// a neuron instance is ticked in simulated real time.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/neurosim/internal/plugin"
)

const (
	graphWidth      = 80
	graphHeight     = 12
	historyCapacity = 600
	frameRate       = 30
)

type TickMsg time.Time

// Model drives one neuron instance and keeps a scrolling trace of its
// membrane potential.
type Model struct {
	cell    *plugin.Neuron
	period  float64
	input   float64
	t       float64
	running bool
	history []float64

	// host ticks advanced per rendered frame, so one second of wall time
	// approximates one second of simulated time
	ticksPerFrame int
}

func NewModel(cell *plugin.Neuron, period, input float64) Model {
	ticksPerFrame := int(1.0 / (float64(frameRate) * period))
	if ticksPerFrame < 1 {
		ticksPerFrame = 1
	}
	return Model{
		cell:          cell,
		period:        period,
		input:         input,
		running:       true,
		history:       make([]float64, 0, historyCapacity),
		ticksPerFrame: ticksPerFrame,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "up":
			m.input += 0.1
		case "down":
			m.input -= 0.1
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.ticksPerFrame; i++ {
				m.cell.SetInput(plugin.PortSynaptic, m.input)
				m.cell.Process(m.period)
				m.t += m.period
			}
			m.history = append(m.history, m.cell.Output(plugin.PortPotential))
			if len(m.history) > historyCapacity {
				m.history = m.history[len(m.history)-historyCapacity:]
			}
		}
		return m, tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("neurosim — membrane potential"))
	b.WriteString("\n")

	if len(m.history) > 1 {
		window := m.history
		if len(window) > graphWidth {
			window = window[len(window)-graphWidth:]
		}
		graph := asciigraph.Plot(window,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("Membrane potential (V)"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	b.WriteString(m.stats())

	if !m.running {
		b.WriteString("\n")
		b.WriteString(pausedStyle.Render("PAUSED"))
	}

	b.WriteString(helpStyle.Render("space pause · r reset · up/down adjust i_syn · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) stats() string {
	s := m.cell.State()
	dt, steps := m.cell.Timing()

	rows := []struct {
		label string
		value string
	}{
		{"t", fmt.Sprintf("%.3f s", m.t)},
		{"x (V)", fmt.Sprintf("%+.6f", s[0])},
		{"y", fmt.Sprintf("%+.6f", s[1])},
		{"z", fmt.Sprintf("%+.6f", s[2])},
		{"i_syn", fmt.Sprintf("%+.2f", m.input)},
		{"dt", fmt.Sprintf("%.4g s", dt)},
		{"sub-steps", fmt.Sprintf("%d", steps)},
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row.label))
		b.WriteString(valueStyle.Render(row.value))
		b.WriteString("\n")
	}
	return statsStyle.Render(b.String())
}

func (m *Model) reset() {
	// A fresh instance, not a config push: re-pushing the same triple
	// would be skipped as a redundant configuration.
	m.cell.Close()
	m.cell = plugin.New(m.cell.ID())
	m.t = 0
	m.history = m.history[:0]
}

// Run starts the live view and blocks until the user quits.
func Run(cell *plugin.Neuron, period, input float64) error {
	p := tea.NewProgram(NewModel(cell, period, input))
	_, err := p.Run()
	return err
}
