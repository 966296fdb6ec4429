package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewAlmanacModel_DefaultDays(t *testing.T) {
	if m := NewAlmanacModel(0); m.days != DefaultAlmanacDays {
		t.Errorf("days = %d, want %d", m.days, DefaultAlmanacDays)
	}
	if m := NewAlmanacModel(3); m.days != 3 {
		t.Errorf("days = %d, want 3", m.days)
	}
}

func TestAlmanac_UpdateData(t *testing.T) {
	m := NewAlmanacModel(5).SetSize(100, 30)
	if got := m.View(); got != "Waiting for observer..." {
		t.Errorf("empty view = %q", got)
	}

	snap := testSnapshot(t, 21, 105, 7)
	m = m.UpdateData(snap)
	if len(m.rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(m.rows))
	}
	if m.rows[0].Date != "2023-06-23" || m.rows[4].Date != "2023-06-27" {
		t.Errorf("rows span %s..%s", m.rows[0].Date, m.rows[4].Date)
	}
	if m.seasons.Year != 2023 {
		t.Errorf("seasons year = %d, want 2023", m.seasons.Year)
	}

	view := m.View()
	for _, want := range []string{"Almanac", "2023-06-23", "05:19:46", "Seasons 2023", "June solstice"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAlmanac_NextSeason(t *testing.T) {
	m := NewAlmanacModel(3).SetSize(100, 30).UpdateData(testSnapshot(t, 21, 105, 7))

	// 2023-06-23 noon is past the June solstice.
	if m.next.Name != "September equinox" {
		t.Fatalf("next season = %q, want September equinox", m.next.Name)
	}
	if !strings.Contains(m.View(), "Next: September equinox") {
		t.Error("view should show the next season")
	}
}

func TestAlmanac_CachesByDateAndPlace(t *testing.T) {
	snap := testSnapshot(t, 21, 105, 7)
	m := NewAlmanacModel(3).UpdateData(snap)

	m.offset = 2
	m = m.UpdateData(snap)
	if m.offset != 2 {
		t.Error("same date and place should not reset the table")
	}

	m = m.UpdateData(testSnapshot(t, 51.5, 0, 0))
	if m.offset != 0 {
		t.Error("new place should reset the scroll position")
	}
}

func TestAlmanac_Scroll(t *testing.T) {
	m := NewAlmanacModel(4).UpdateData(testSnapshot(t, 21, 105, 7))

	down := tea.KeyMsg{Type: tea.KeyDown}
	up := tea.KeyMsg{Type: tea.KeyUp}

	m, _ = m.Update(up)
	if m.offset != 0 {
		t.Errorf("offset after up at top = %d", m.offset)
	}

	for i := 0; i < 10; i++ {
		m, _ = m.Update(down)
	}
	if m.offset != 3 {
		t.Errorf("offset after scrolling past end = %d, want 3", m.offset)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	if m.offset != 0 {
		t.Errorf("offset after home = %d, want 0", m.offset)
	}
}

func TestAlmanac_PolarRows(t *testing.T) {
	m := NewAlmanacModel(2).SetSize(100, 30).UpdateData(testSnapshot(t, 80, 0, 0))
	if !strings.Contains(m.View(), "polar day") {
		t.Error("polar rows should be labelled")
	}
}
