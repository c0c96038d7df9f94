// Package tui replays a finished run in the terminal, scrubbing through
// the recorded trajectory with a live chart and stats panel.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/JJonas1998/Projekt-9/internal/analysis"
	"github.com/JJonas1998/Projekt-9/internal/reactor"
	"github.com/JJonas1998/Projekt-9/internal/sim"
)

const (
	chartWidth  = 72
	chartHeight = 14
	chartWindow = 600
)

var (
	chartStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Player is a bubbletea model that steps a playhead through a stored
// trajectory at a configurable speed.
type Player struct {
	result   *sim.Result
	metrics  analysis.Metrics
	geo      reactor.Geometry
	setpoint float64
	playHead int
	speed    int
	running  bool
}

func NewPlayer(result *sim.Result, metrics analysis.Metrics, geo reactor.Geometry, setpoint float64) Player {
	return Player{
		result:   result,
		metrics:  metrics,
		geo:      geo,
		setpoint: setpoint,
		speed:    10,
		running:  true,
	}
}

func (p Player) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return p, tea.Quit
		case " ":
			p.running = !p.running
		case "r":
			p.playHead = 0
			p.running = true
		case "[":
			p.running = false
			p.seek(-p.speed)
		case "]":
			p.running = false
			p.seek(p.speed)
		case "+", "=":
			if p.speed < 600 {
				p.speed *= 2
			}
		case "-", "_":
			if p.speed > 1 {
				p.speed /= 2
			}
		}
	case TickMsg:
		if p.running {
			p.seek(p.speed)
			if p.playHead == len(p.result.Controlled)-1 {
				p.running = false
			}
		}
		return p, tick()
	}
	return p, nil
}

func (p *Player) seek(delta int) {
	p.playHead += delta
	if p.playHead < 0 {
		p.playHead = 0
	}
	if p.playHead > len(p.result.Controlled)-1 {
		p.playHead = len(p.result.Controlled) - 1
	}
}

func (p Player) View() string {
	if len(p.result.Controlled) == 0 {
		return "no trajectory\n"
	}

	sample := p.result.Controlled[p.playHead]

	start := p.playHead - chartWindow + 1
	if start < 0 {
		start = 0
	}
	temps := make([]float64, 0, p.playHead-start+1)
	for i := start; i <= p.playHead; i++ {
		temps = append(temps, p.result.Controlled[i].Temperature)
	}

	chart := ""
	if len(temps) > 1 {
		chart = asciigraph.Plot(temps,
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption(fmt.Sprintf("liquid temperature, setpoint %.1f °C", p.setpoint)),
		)
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(fmt.Sprintf("%.0f L %s vessel, %.0f rpm", p.geo.VolumeLiters, p.geo.Material, p.geo.StirrerRPM)) + "\n")

	status := "PLAYING"
	if !p.running {
		status = "PAUSED"
	}
	if p.playHead == len(p.result.Controlled)-1 {
		status = "DONE"
	}
	s.WriteString(fmt.Sprintf("%s  x%d\n\n", status, p.speed))

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.0f s", sample.Time)) + "\n")
	s.WriteString(labelStyle.Render("Temperature") + valueStyle.Render(fmt.Sprintf("%.2f °C", sample.Temperature)) + "\n")
	if p.playHead < len(p.result.Uncontrolled) {
		s.WriteString(labelStyle.Render("Uncontrolled") + valueStyle.Render(fmt.Sprintf("%.2f °C", p.result.Uncontrolled[p.playHead].Temperature)) + "\n")
	}
	s.WriteString(labelStyle.Render("Heater") + valueStyle.Render(heaterBar(sample.Heater, p.metrics.MaxHeaterPower)) + "\n")
	s.WriteString(labelStyle.Render("Net heat flow") + valueStyle.Render(fmt.Sprintf("%.0f W", sample.HeatFlow)) + "\n")

	s.WriteString("\nRUN METRICS\n")
	if p.metrics.Settled {
		s.WriteString(labelStyle.Render("Settled") + valueStyle.Render(fmt.Sprintf("at %.0f s", p.metrics.SettlingTime)) + "\n")
	} else {
		s.WriteString(labelStyle.Render("Settled") + alertStyle.Render("no") + "\n")
	}
	s.WriteString(labelStyle.Render("Overshoot") + valueStyle.Render(fmt.Sprintf("%.1f %%", p.metrics.OvershootPct)) + "\n")
	s.WriteString(labelStyle.Render("Final error") + valueStyle.Render(fmt.Sprintf("%.2f K", p.metrics.SteadyStateError)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.1f kJ", p.metrics.Energy/1000)) + "\n")

	s.WriteString(helpStyle.Render("SP:Pause R:Restart Q:Quit\n[ ]:Scrub  +/-:Speed"))

	return lipgloss.JoinHorizontal(lipgloss.Top, chartStyle.Render(chart), statsStyle.Render(s.String()))
}

func heaterBar(power, max float64) string {
	if max <= 0 {
		return fmt.Sprintf("%.0f W", power)
	}
	barWidth := 10
	ratio := power / max
	if ratio > 1 {
		ratio = 1
	} else if ratio < 0 {
		ratio = 0
	}
	filled := int(ratio * float64(barWidth))
	return fmt.Sprintf("[%s%s] %.0f W", strings.Repeat("=", filled), strings.Repeat("-", barWidth-filled), power)
}
