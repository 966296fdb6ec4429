package ui

import (
	"errors"
	"strings"
	"testing"
)

func TestCompassPoint(t *testing.T) {
	tests := []struct {
		az   float64
		want string
	}{
		{0, "N"},
		{11, "N"},
		{12, "NNE"},
		{45, "NE"},
		{90, "E"},
		{135, "SE"},
		{180, "S"},
		{200, "SSW"},
		{270, "W"},
		{349, "N"},
		{359.9, "N"},
		{-90, "W"},
	}

	for _, tt := range tests {
		if got := compassPoint(tt.az); got != tt.want {
			t.Errorf("compassPoint(%v) = %q, want %q", tt.az, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abc", 2, "ab"},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestDashboard_WaitingForObserver(t *testing.T) {
	m := NewDashboardModel().SetSize(100, 30)
	if !strings.Contains(m.View(), "Waiting for observer") {
		t.Error("empty dashboard should wait for an observer")
	}
}

func TestDashboard_View(t *testing.T) {
	m := NewDashboardModel().SetSize(100, 30)
	m = m.UpdateData(testSnapshot(t, 21, 105, 7))

	view := m.View()
	for _, want := range []string{"Sunrise", "05:19:46", "18:44:17", "13:24:31", "above horizon", "Peak elevation", "No events yet"} {
		if !strings.Contains(view, want) {
			t.Errorf("dashboard view missing %q", want)
		}
	}
}

func TestDashboard_PolarDay(t *testing.T) {
	m := NewDashboardModel().SetSize(100, 30)
	m = m.UpdateData(testSnapshot(t, 80, 0, 0))

	view := m.View()
	if !strings.Contains(view, "polar day") {
		t.Error("polar day should be shown")
	}
	if strings.Contains(view, "Sunrise") {
		t.Error("polar day has no sunrise row")
	}
}

func TestDashboard_Error(t *testing.T) {
	m := NewDashboardModel().SetError(errors.New("date out of range"))
	if !strings.Contains(m.View(), "Error: date out of range") {
		t.Error("error should be rendered")
	}
}

func TestDashboard_SparklineWidth(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{0, SparklineWidth},
		{80, 64},
		{200, 96},
	}
	for _, tt := range tests {
		m := DashboardModel{width: tt.width}
		if got := m.sparklineWidth(); got != tt.want {
			t.Errorf("sparklineWidth() at %d = %d, want %d", tt.width, got, tt.want)
		}
	}
}
