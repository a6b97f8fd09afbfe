package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/gaugesim/internal/analysis"
	"github.com/san-kum/gaugesim/internal/experiment"
)

const (
	canvasWidth     = 60
	canvasHeight    = 8
	historyCapacity = 600
	frameRate       = time.Second / 30
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives an experiment that has been set up and shows longitudinal
// field and charge profiles next to the run metrics.
type Model struct {
	exp           *experiment.Experiment
	name          string
	total         int
	stepsPerFrame int
	axis          int
	running       bool
	done          bool
	err           error
	theme         Theme
	showHelp      bool
	energy        []float64
	gauss         []float64
	field         *Canvas
	charge        *Canvas
	fieldPeak     float64
	chargePeak    float64
}

func NewModel(e *experiment.Experiment, name string, steps int) Model {
	m := Model{
		exp:           e,
		name:          name,
		total:         steps,
		stepsPerFrame: 1,
		running:       true,
		theme:         Themes[0],
		energy:        make([]float64, 0, historyCapacity),
		gauss:         make([]float64, 0, historyCapacity),
		field:         NewCanvas(canvasWidth, canvasHeight),
		charge:        NewCanvas(canvasWidth, canvasHeight/2),
	}
	m.sample()
	m.draw()
	return m
}

// Err reports the error that stopped the run, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			if m.stepsPerFrame < 64 {
				m.stepsPerFrame *= 2
			}
		case "-", "_":
			if m.stepsPerFrame > 1 {
				m.stepsPerFrame /= 2
			}
		case "a":
			m.axis = (m.axis + 1) % m.exp.Simulation().Dimensions()
			m.fieldPeak, m.chargePeak = 0, 0
			m.draw()
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && !m.done {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	s := m.exp.Simulation()
	for k := 0; k < m.stepsPerFrame; k++ {
		if m.total > 0 && s.Steps >= m.total {
			m.done = true
			break
		}
		if err := m.exp.Step(); err != nil {
			m.err = err
			m.done = true
			break
		}
	}
	m.sample()
	m.draw()
}

func (m *Model) sample() {
	series := m.exp.Series()
	if series.Len() == 0 {
		return
	}
	row := series.Values[series.Len()-1]
	for i, name := range series.Names {
		switch name {
		case "total_energy":
			m.energy = appendCapped(m.energy, row[i])
		case "gauss_violation":
			m.gauss = appendCapped(m.gauss, row[i])
		}
	}
}

func appendCapped(h []float64, v float64) []float64 {
	if len(h) == historyCapacity {
		copy(h, h[1:])
		h = h[:len(h)-1]
	}
	return append(h, v)
}

func (m *Model) draw() {
	s := m.exp.Simulation()
	m.field.Clear()
	m.charge.Clear()
	if p, err := analysis.EnergyProfile(s, m.axis); err == nil {
		m.fieldPeak = peak(m.fieldPeak, p)
		m.field.DrawProfile(p, m.fieldPeak)
	}
	if p, err := analysis.ChargeProfile(s, m.axis); err == nil {
		m.chargePeak = peak(m.chargePeak, p)
		m.charge.DrawProfile(p, m.chargePeak)
	}
}

// peak keeps the vertical scale from shrinking so moving structures do not
// jump around.
func peak(prev float64, p []float64) float64 {
	if len(p) == 0 {
		return prev
	}
	if v := floats.Max(p); v > prev {
		return v
	}
	return prev
}

func (m Model) View() string {
	th := m.theme
	s := m.exp.Simulation()
	fieldStyle := lipgloss.NewStyle().Foreground(th.Field)
	chargeStyle := lipgloss.NewStyle().Foreground(th.Charge)
	graphStyle := lipgloss.NewStyle().Foreground(th.Graph)

	left := lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render(fmt.Sprintf("field energy along axis %d\n", m.axis)+fieldStyle.Render(m.field.String())),
		panelStyle.Render("charge |ρ|²\n"+chargeStyle.Render(m.charge.String())),
	)

	var b strings.Builder
	b.WriteString(headerStyle.Foreground(th.Text).Render(strings.ToUpper(m.name)) + "\n")
	b.WriteString(m.status() + "\n\n")
	b.WriteString(labelStyle.Render("step") + fmt.Sprintf("%d", s.Steps) + "\n")
	b.WriteString(labelStyle.Render("time") + fmt.Sprintf("%.2f", s.Time()) + "\n")
	if m.total > 0 {
		b.WriteString(labelStyle.Render("progress") + ProgressBar(float64(s.Steps)/float64(m.total), 20, th) + "\n")
	}
	b.WriteString(labelStyle.Render("steps/frame") + fmt.Sprintf("%d", m.stepsPerFrame) + "\n\n")

	series := m.exp.Series()
	if series.Len() > 0 {
		row := series.Values[series.Len()-1]
		for i, name := range series.Names {
			val := fmt.Sprintf("%.6g", row[i])
			if name == "gauss_violation" {
				val = Status(row[i], 1e-16, 1e-8, val, th)
			}
			b.WriteString(labelStyle.Render(name) + val + "\n")
		}
	}
	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(5), asciigraph.Width(34), asciigraph.Caption("total energy"))
		b.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}
	b.WriteString("\n" + labelStyle.Render("gauss") + Sparkline(m.gauss, 24, th) + "\n")
	b.WriteString(helpStyle.Render("SP:pause  +/-:speed  a:axis  t:theme  ?:help  q:quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, statsStyle.Render(b.String()))
	if m.showHelp {
		return panelStyle.Render(helpText) + "\n" + main
	}
	return main
}

func (m Model) status() string {
	th := m.theme
	switch {
	case m.err != nil:
		return lipgloss.NewStyle().Foreground(th.Bad).Render("STOPPED: " + m.err.Error())
	case m.done:
		return lipgloss.NewStyle().Foreground(th.Good).Render("DONE")
	case !m.running:
		return lipgloss.NewStyle().Foreground(th.Warn).Render("PAUSED")
	}
	return lipgloss.NewStyle().Foreground(th.Good).Render("RUNNING")
}

const helpText = `Space  pause or resume
+ / -  double or halve steps per frame
a      cycle the profile axis
t      cycle color themes
?      toggle this help
q      quit and save the run`
