package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/state"
)

// Styles for the dashboard
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("221")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	daylightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	nightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// maxDashboardEvents is the number of log lines shown.
const maxDashboardEvents = 8

// DashboardModel shows the day's events, the current position and the
// event log.
type DashboardModel struct {
	width    int
	height   int
	snapshot state.Snapshot
	lastErr  error
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel() DashboardModel {
	return DashboardModel{}
}

// Init implements the Bubble Tea model interface.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport size.
func (m DashboardModel) SetSize(width, height int) DashboardModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m DashboardModel) UpdateData(snapshot state.Snapshot) DashboardModel {
	m.snapshot = snapshot
	return m
}

// SetError sets the last error for display.
func (m DashboardModel) SetError(err error) DashboardModel {
	m.lastErr = err
	return m
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	return m, nil
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	if !m.snapshot.HasObserver {
		b.WriteString("Waiting for observer...\n")
		return b.String()
	}

	b.WriteString(m.renderDay())
	b.WriteString("\n\n")
	b.WriteString(m.renderPosition())
	b.WriteString("\n\n")
	b.WriteString("  " + renderSparkline(m.snapshot.Trace, m.snapshot.LastUpdate, m.sparklineWidth()))
	b.WriteString("\n\n")
	b.WriteString(m.renderEvents())

	return b.String()
}

func (m DashboardModel) sparklineWidth() int {
	w := m.width - 16
	if w > 96 {
		w = 96
	}
	if w < SparklineWidth {
		w = SparklineWidth
	}
	return w
}

func (m DashboardModel) renderDay() string {
	r := m.snapshot.Report
	var b strings.Builder

	place := r.Location
	if place == "" {
		place = fmt.Sprintf("%.4f, %.4f", r.Latitude, r.Longitude)
	}
	mode := "pinned"
	if m.snapshot.Following {
		mode = "today"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s · %s", place, r.Date)))
	b.WriteString(labelStyle.Render(fmt.Sprintf("  UTC%+g  (%s)", r.UTCOffset, mode)))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString("  " + labelStyle.Render(fmt.Sprintf("%-18s", label)) + valueStyle.Render(value) + "\n")
	}

	switch r.Polar {
	case "":
		row("Sunrise", r.Sunrise)
		row("Solar noon", r.Noon)
		row("Sunset", r.Sunset)
		row("Daylight", r.Daylight)
	default:
		row("Solar noon", r.Noon)
		row("Daylight", "polar "+r.Polar)
	}
	row("Declination", fmt.Sprintf("%+.4f°", r.Declination))
	row("Equation of time", fmt.Sprintf("%+.2f min", r.EquationOfTime))
	row("Julian day", fmt.Sprintf("%.6f", r.JulianDay))
	if p := m.snapshot.Trace.Peak(); p != nil {
		loc := astro.FixedZone(r.UTCOffset)
		row("Peak elevation", fmt.Sprintf("%+.2f° at %s", p.Apparent, p.Time.In(loc).Format("15:04")))
	}

	return b.String()
}

func (m DashboardModel) renderPosition() string {
	pos := m.snapshot.Position
	var b strings.Builder

	b.WriteString(headerStyle.Render("Now"))
	b.WriteString(" ")
	if pos.AboveHorizon() {
		b.WriteString(daylightStyle.Render("☀ above horizon"))
	} else {
		b.WriteString(nightStyle.Render("☾ below horizon"))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("  %s %s   %s %s   %s %s   %s %s\n",
		labelStyle.Render("El"), valueStyle.Render(fmt.Sprintf("%+7.2f°", pos.ElDeg)),
		labelStyle.Render("Az"), valueStyle.Render(fmt.Sprintf("%6.2f° %s", pos.AzDeg, compassPoint(pos.AzDeg))),
		labelStyle.Render("Refr"), valueStyle.Render(fmt.Sprintf("%.3f°", pos.RefractionDeg)),
		labelStyle.Render("HA"), valueStyle.Render(fmt.Sprintf("%+7.2f°", pos.HourAngleDeg)),
	))
	b.WriteString(fmt.Sprintf("  %s %s   %s %s",
		labelStyle.Render("RA"), valueStyle.Render(fmt.Sprintf("%7.3f°", pos.RAdeg)),
		labelStyle.Render("Dist"), valueStyle.Render(fmt.Sprintf("%.5f AU (%.0f km)", pos.DistanceAU, pos.DistanceKm())),
	))

	return b.String()
}

func (m DashboardModel) renderEvents() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Events"))
	b.WriteString("\n")

	events := m.snapshot.Events
	if len(events) == 0 {
		b.WriteString(labelStyle.Render("  No events yet"))
		return b.String()
	}
	if len(events) > maxDashboardEvents {
		events = events[len(events)-maxDashboardEvents:]
	}

	loc := astro.FixedZone(m.snapshot.Report.UTCOffset)
	for _, e := range events {
		line := fmt.Sprintf("  %s  %-10s", e.Timestamp.In(loc).Format(time.TimeOnly), e.Type)
		if e.Type != state.EventNewDay {
			line += fmt.Sprintf(" az %.1f°", e.Azimuth)
		} else {
			line += " " + e.Date
		}
		b.WriteString(valueStyle.Render(line) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// compassPoint returns the 16-wind name for an azimuth.
func compassPoint(az float64) string {
	points := []string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}
	idx := int(astro.FlooredMod(az+11.25, 360) / 22.5)
	return points[idx%16]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
