// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-solar/internal/state"
	"github.com/litescript/ls-solar/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewSky
	ViewAlmanac
)

const viewCount = 3

// Msg types for Bubble Tea
type (
	// TickMsg triggers a state update and redraw.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// DataUpdateMsg carries a fresh state snapshot.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals an error to show in the dashboard.
	ErrorMsg struct {
		Error error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state *state.Manager

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int

	// Sub-models
	dashboard DashboardModel
	skyView   SkyViewModel
	almanac   AlmanacModel

	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager, almanacDays int) Model {
	return Model{
		state:     stateMgr,
		viewMode:  ViewDashboard,
		dashboard: NewDashboardModel(),
		skyView:   NewSkyViewModel(),
		almanac:   NewAlmanacModel(almanacDays),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.refresh(),
		tickCmd(m.state.RefreshInterval()),
		animTickCmd(),
		m.dashboard.Init(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "d":
			m.viewMode = ViewDashboard
		case "2", "s":
			m.viewMode = ViewSky
		case "3", "a":
			m.viewMode = ViewAlmanac

		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount

		case "[":
			cmds = append(cmds, m.shiftDate(-1))
		case "]":
			cmds = append(cmds, m.shiftDate(1))
		case "t":
			if err := m.state.FollowToday(); err != nil {
				cmds = append(cmds, SendError(err))
			} else {
				m.statusMsg = "Following today"
				cmds = append(cmds, m.refresh())
			}

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo takes ~10 lines, footer ~2 lines
		contentHeight := msg.Height - 13
		m.dashboard = m.dashboard.SetSize(msg.Width, contentHeight)
		m.skyView = m.skyView.SetSize(msg.Width, contentHeight)
		m.almanac = m.almanac.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd(m.state.RefreshInterval()), m.refresh())

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case DataUpdateMsg:
		m.snapshot = msg.Snapshot
		m.dashboard = m.dashboard.UpdateData(m.snapshot)
		m.skyView = m.skyView.UpdateData(m.snapshot)
		m.almanac = m.almanac.UpdateData(m.snapshot)

	case ErrorMsg:
		m.dashboard = m.dashboard.SetError(msg.Error)

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

// refresh advances the shared state and delivers a snapshot.
func (m Model) refresh() tea.Cmd {
	mgr := m.state
	return func() tea.Msg {
		mgr.Update()
		return DataUpdateMsg{Snapshot: mgr.Snapshot()}
	}
}

func (m *Model) shiftDate(days int) tea.Cmd {
	if err := m.state.ShiftDate(days); err != nil {
		return SendError(err)
	}
	m.statusMsg = ""
	return m.refresh()
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewSky:
		m.skyView, cmd = m.skyView.Update(msg)
	case ViewAlmanac:
		m.almanac, cmd = m.almanac.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewDashboard:
		content = m.dashboard.View()
	case ViewSky:
		content = m.skyView.View()
	case ViewAlmanac:
		content = m.almanac.View()
	}

	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	return m.renderLogo() + m.renderTabs() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ██╗     ███████╗      ███████╗ ██████╗ ██╗      █████╗ ██████╗ `,
		`  ██║     ██╔════╝      ██╔════╝██╔═══██╗██║     ██╔══██╗██╔══██╗`,
		`  ██║     ███████╗█████╗███████╗██║   ██║██║     ███████║██████╔╝`,
		`  ██║     ╚════██║╚════╝╚════██║██║   ██║██║     ██╔══██║██╔══██╗`,
		`  ███████╗███████║      ███████║╚██████╔╝███████╗██║  ██║██║  ██║`,
		`  ╚══════╝╚══════╝      ╚══════╝ ╚═════╝ ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝`,
	}

	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		for col, r := range runes {
			color := gradientColor(col, row, len(runes), len(logo))
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("137"))
	b.WriteString(muted.Render(fmt.Sprintf("  Solar position · NOAA algorithm · v%s", version.Version)))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient:
// dawn red -> orange -> gold, darker toward the bottom rows.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	if xRatio < 0.5 {
		// Red (#DC2626) to Orange (#F97316)
		t := xRatio / 0.5
		r = 220 + t*(249-220)
		g = 38 + t*(115-38)
		b = 38 + t*(22-38)
	} else {
		// Orange to Gold (#FACC15)
		t := (xRatio - 0.5) / 0.5
		r = 249 + t*(250-249)
		g = 115 + t*(204-115)
		b = 22 + t*(21-22)
	}

	brightness := 1.0 - (yRatio * 0.4)

	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*brightness), clampByte(g*brightness), clampByte(b*brightness))
}

func clampByte(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v)
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Dashboard", "[2] Sky", "[3] Almanac"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ") + "\n"
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	spinnerFrames := []string{"◐", "◓", "◑", "◒"}
	spinner := spinnerFrames[(m.animTick/4)%len(spinnerFrames)]

	var status string
	if m.snapshot.LastUpdate.IsZero() {
		status = accentStyle.Render(spinner) + dimStyle.Render(" computing...")
	} else {
		status = accentStyle.Render(spinner) + dimStyle.Render(fmt.Sprintf(" updated %s (%s)",
			m.snapshot.LastUpdate.Format(time.TimeOnly), m.snapshot.ComputeTime.Round(time.Microsecond)))
	}

	var help string
	switch m.viewMode {
	case ViewSky:
		help = "h/l: pan | c: center on sun | n: hours"
	case ViewAlmanac:
		help = "↑↓: scroll"
	default:
		help = "[/]: day | t: today | tab: switch view"
	}

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help+" | q: quit")
	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

func tickCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = time.Second
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// SendDataUpdate creates a command that sends a data update message.
func SendDataUpdate(snapshot state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}
