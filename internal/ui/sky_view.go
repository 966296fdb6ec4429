package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/report"
	"github.com/litescript/ls-solar/internal/state"
)

const (
	// Field of view
	fovAz = 200.0 // horizontal FOV in degrees
	elMin = -20.0 // lowest elevation drawn
	elMax = 90.0

	// Camera pan step for h/l
	panStep = 15.0

	// Animation
	animDuration  = 400 * time.Millisecond
	animFrameRate = 30 * time.Millisecond

	glyphSun  = '●'
	glyphPath = '·'

	colorSun       = "226"
	colorPathDay   = "214"
	colorPathNight = "60"
	colorHorizon   = "60"
	colorLabel     = "244"
)

// SkyViewModel draws the Sun's path across the day over the horizon.
type SkyViewModel struct {
	width  int
	height int

	// Camera azimuth (center of view)
	camAz float64

	// Animation state
	animating   bool
	animStartAz float64
	animTargAz  float64
	animStart   time.Time

	showHours bool

	trace    *report.ElevationTrace
	sun      astro.SkyCoord
	southern bool
}

// NewSkyViewModel creates a new sky view model looking south.
func NewSkyViewModel() SkyViewModel {
	return SkyViewModel{
		camAz:     180,
		showHours: true,
	}
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with new data snapshot.
func (m SkyViewModel) UpdateData(snapshot state.Snapshot) SkyViewModel {
	southern := snapshot.Report.Latitude < 0
	if southern != m.southern && !m.animating {
		// The Sun culminates to the north south of the equator.
		if southern {
			m.camAz = 0
		} else {
			m.camAz = 180
		}
	}
	m.southern = southern
	m.trace = snapshot.Trace
	m.sun = snapshot.Position
	return m
}

// animTickMsg is sent during animation
type animTickMsg time.Time

func animTick() tea.Cmd {
	return tea.Tick(animFrameRate, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// Update handles messages.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			return m.startAnimation(m.camAz - panStep)
		case "right", "l":
			return m.startAnimation(m.camAz + panStep)
		case "c":
			return m.startAnimation(m.sun.AzDeg)
		case "n":
			m.showHours = !m.showHours
		}

	case animTickMsg:
		if m.animating {
			return m.updateAnimation()
		}
	}

	return m, nil
}

func (m SkyViewModel) startAnimation(targetAz float64) (SkyViewModel, tea.Cmd) {
	m.animating = true
	m.animStartAz = m.camAz
	m.animTargAz = astro.FlooredMod(targetAz, 360)
	m.animStart = time.Now()
	return m, animTick()
}

func (m SkyViewModel) updateAnimation() (SkyViewModel, tea.Cmd) {
	elapsed := time.Since(m.animStart)
	t := float64(elapsed) / float64(animDuration)

	if t >= 1.0 {
		m.animating = false
		m.camAz = m.animTargAz
		return m, nil
	}

	// Ease-out cubic
	t = 1 - math.Pow(1-t, 3)
	m.camAz = astro.FlooredMod(lerpAngle(m.animStartAz, m.animTargAz, t), 360)

	return m, animTick()
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Sky view requires larger terminal"
	}

	viewHeight := m.height - 4

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSkyCanvas(m.width, viewHeight))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	return b.String()
}

func (m SkyViewModel) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).Render("Sky View")
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	hours := "Hours: off"
	if m.showHours {
		hours = "Hours: on"
	}
	compass := fmt.Sprintf("Facing %s (%.0f°)", compassPoint(m.camAz), m.camAz)

	return fmt.Sprintf("%s | %s | %s", title, dimStyle.Render(hours), dimStyle.Render(compass))
}

func (m SkyViewModel) renderStatus() string {
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	line := fmt.Sprintf(">>> Sun Az:%.1f° El:%+.1f° (geometric %+.1f°)",
		m.sun.AzDeg, m.sun.ElDeg, m.sun.GeometricElDeg)

	if !m.inView(m.sun.AzDeg, m.sun.ElDeg) {
		dir := "right"
		if normalizeAngle(m.sun.AzDeg-m.camAz) < 0 {
			dir = "left"
		}
		line += fmt.Sprintf(" | out of view, %s", dir)
	}
	return accentStyle.Render(line)
}

func (m SkyViewModel) renderSkyCanvas(width, height int) string {
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = "236"
		}
	}

	// Horizon line
	if _, horizonY, ok := m.projectToScreen(m.camAz, 0, width, height); ok {
		for x := 0; x < width; x++ {
			canvas[horizonY][x] = '─'
			colors[horizonY][x] = colorHorizon
		}
		for _, c := range []struct {
			label string
			az    float64
		}{{"N", 0}, {"E", 90}, {"S", 180}, {"W", 270}} {
			if x, _, ok := m.projectToScreen(c.az, 0, width, height); ok {
				canvas[horizonY][x] = rune(c.label[0])
				colors[horizonY][x] = "252"
			}
		}
	}

	// Sun path
	if m.trace != nil {
		loc := astro.FixedZone(m.trace.Site.UTCOffset)
		for _, s := range m.trace.Samples {
			x, y, ok := m.projectToScreen(s.Azimuth, s.Apparent, width, height)
			if !ok || canvas[y][x] != ' ' {
				continue
			}
			canvas[y][x] = glyphPath
			colors[y][x] = colorPathNight
			if s.Apparent > 0 {
				colors[y][x] = colorPathDay
			}

			local := s.Time.In(loc)
			if m.showHours && s.Apparent > 0 && local.Minute() == 0 {
				m.drawLabel(canvas, colors, x+1, y, fmt.Sprintf("%d", local.Hour()))
			}
		}
	}

	// Current Sun
	if x, y, ok := m.projectToScreen(m.sun.AzDeg, m.sun.ElDeg, width, height); ok {
		canvas[y][x] = glyphSun
		colors[y][x] = colorSun
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// drawLabel writes text starting at (x, y) without overwriting glyphs.
func (m SkyViewModel) drawLabel(canvas [][]rune, colors [][]lipgloss.Color, x, y int, text string) {
	for i, r := range text {
		cx := x + i
		if cx < 0 || cx >= len(canvas[y]) || canvas[y][cx] != ' ' {
			return
		}
		canvas[y][cx] = r
		colors[y][cx] = colorLabel
	}
}

func (m SkyViewModel) inView(az, el float64) bool {
	dAz := normalizeAngle(az - m.camAz)
	return dAz >= -fovAz/2 && dAz <= fovAz/2 && el >= elMin && el <= elMax
}

// projectToScreen converts az/el to canvas cells relative to the camera.
func (m SkyViewModel) projectToScreen(az, el float64, width, height int) (int, int, bool) {
	if width <= 0 || height <= 0 || !m.inView(az, el) {
		return 0, 0, false
	}

	dAz := normalizeAngle(az - m.camAz)

	// X: -fovAz/2..+fovAz/2 -> 0..width-1
	// Y: elMax..elMin -> 0..height-1
	x := int((dAz + fovAz/2) / fovAz * float64(width-1))
	y := int((elMax - el) / (elMax - elMin) * float64(height-1))

	return x, y, true
}

// normalizeAngle wraps angle to -180..+180 range
func normalizeAngle(a float64) float64 {
	for a > 180 {
		a -= 360
	}
	for a < -180 {
		a += 360
	}
	return a
}

// lerpAngle interpolates between angles, taking shortest path
func lerpAngle(a, b, t float64) float64 {
	diff := normalizeAngle(b - a)
	return a + diff*t
}

// Init returns nil cmd
func (m SkyViewModel) Init() tea.Cmd {
	return nil
}
