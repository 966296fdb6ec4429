package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/report"
	"github.com/litescript/ls-solar/internal/state"
)

// DefaultAlmanacDays is the number of days listed when none is configured.
const DefaultAlmanacDays = 14

// AlmanacModel lists upcoming days and the year's seasons.
type AlmanacModel struct {
	width  int
	height int
	days   int
	offset int // scroll position

	date     string
	rows     []report.DayReport
	seasons  astro.SeasonDates
	next     astro.SeasonEvent
	now      time.Time
	utcHours float64
}

// NewAlmanacModel creates an almanac covering days days.
func NewAlmanacModel(days int) AlmanacModel {
	if days <= 0 {
		days = DefaultAlmanacDays
	}
	return AlmanacModel{days: days}
}

// SetSize updates the viewport size.
func (m AlmanacModel) SetSize(width, height int) AlmanacModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData recomputes the table when the observer's date or place
// changes.
func (m AlmanacModel) UpdateData(snapshot state.Snapshot) AlmanacModel {
	if !snapshot.HasObserver {
		return m
	}
	if !snapshot.LastUpdate.IsZero() && (m.next.At.IsZero() || snapshot.LastUpdate.After(m.next.At)) {
		m.next = astro.NextSeason(snapshot.LastUpdate)
	}
	m.now = snapshot.LastUpdate

	r := snapshot.Report
	key := fmt.Sprintf("%s/%g/%g/%g", r.Date, r.Latitude, r.Longitude, r.UTCOffset)
	if key == m.date && len(m.rows) > 0 {
		return m
	}

	m.date = key
	m.rows = report.Almanac(snapshot.Observer, m.days)
	m.seasons = astro.Seasons(snapshot.Observer.LocalMidnight().Year())
	m.utcHours = r.UTCOffset
	m.offset = 0
	return m
}

// Update handles scrolling.
func (m AlmanacModel) Update(msg tea.Msg) (AlmanacModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < len(m.rows)-1 {
				m.offset++
			}
		case "home":
			m.offset = 0
		}
	}
	return m, nil
}

// View renders the almanac.
func (m AlmanacModel) View() string {
	if len(m.rows) == 0 {
		return "Waiting for observer..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Almanac · next %d days", len(m.rows))))
	b.WriteString("\n\n")

	header := fmt.Sprintf("%-10s  %-9s %-9s %-9s %-9s %9s %8s",
		"Date", "Sunrise", "Noon", "Sunset", "Daylight", "Decl", "EoT")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	visible := m.visibleRows()
	end := m.offset + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		rise, set := r.Sunrise, r.Sunset
		if r.Polar != "" {
			rise = truncate("polar "+r.Polar, 9)
			set = "-"
		}
		line := fmt.Sprintf("%-10s  %-9s %-9s %-9s %-9s %+8.3f° %+7.2fm",
			r.Date, rise, r.Noon, set, astro.FormatMinutes(r.DaylightMinutes),
			r.Declination, r.EquationOfTime)

		style := valueStyle
		if i > 0 && r.DaylightMinutes > m.rows[i-1].DaylightMinutes {
			style = daylightStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderSeasons())

	return b.String()
}

func (m AlmanacModel) visibleRows() int {
	// title, blank, header, blank, seasons block
	n := m.height - 10
	if n < 3 {
		n = 3
	}
	return n
}

func (m AlmanacModel) renderSeasons() string {
	loc := astro.FixedZone(m.utcHours)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	var parts []string
	for _, e := range m.seasons.Events() {
		parts = append(parts, fmt.Sprintf("%s %s", e.Name, e.At.In(loc).Format("Jan 2 15:04")))
	}
	out := headerStyle.Render(fmt.Sprintf("Seasons %d", m.seasons.Year)) + "\n" + dim.Render("  "+strings.Join(parts, "  ·  "))
	if !m.next.At.IsZero() {
		days := m.next.At.Sub(m.now).Hours() / 24
		out += "\n" + dim.Render(fmt.Sprintf("  Next: %s on %s (in %.0f days)",
			m.next.Name, m.next.At.In(loc).Format("Jan 2 15:04"), days))
	}
	return out
}
