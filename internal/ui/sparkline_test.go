package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-solar/internal/report"
)

func TestResampleElevation(t *testing.T) {
	samples := make([]report.ElevationSample, 8)
	for i := range samples {
		samples[i].Apparent = float64(i)
	}

	got := resampleElevation(samples, 4)
	want := []float64{0.5, 2.5, 4.5, 6.5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestResampleElevation_Upsample(t *testing.T) {
	samples := []report.ElevationSample{{Apparent: 10}, {Apparent: 20}}

	got := resampleElevation(samples, 4)
	want := []float64{10, 10, 20, 20}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestResampleElevation_EveryCellHasASample(t *testing.T) {
	samples := make([]report.ElevationSample, 25)
	for i := range samples {
		samples[i].Apparent = 30
	}

	got := resampleElevation(samples, SparklineWidth)
	for i, v := range got {
		if v != 30 {
			t.Errorf("bucket %d = %v, want 30", i, v)
		}
	}
}

func TestResampleElevation_Empty(t *testing.T) {
	if got := resampleElevation(nil, 10); got != nil {
		t.Errorf("nil samples = %v, want nil", got)
	}
	if got := resampleElevation([]report.ElevationSample{{Apparent: 1}}, 0); got != nil {
		t.Errorf("zero width = %v, want nil", got)
	}
}

func TestInterpolateElevColor(t *testing.T) {
	r, g, b := interpolateElevColor(0)
	if [3]uint8{r, g, b} != elevColorLow {
		t.Errorf("t=0 = %v,%v,%v, want low color", r, g, b)
	}

	r, g, b = interpolateElevColor(0.5)
	if [3]uint8{r, g, b} != elevColorMid {
		t.Errorf("t=0.5 = %v,%v,%v, want mid color", r, g, b)
	}

	r, g, b = interpolateElevColor(1)
	if [3]uint8{r, g, b} != elevColorHigh {
		t.Errorf("t=1 = %v,%v,%v, want high color", r, g, b)
	}

	r1, g1, b1 := interpolateElevColor(-1)
	r2, g2, b2 := interpolateElevColor(0)
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Error("negative t should clamp to 0")
	}
}

func TestRenderSparkline_NoData(t *testing.T) {
	if got := renderSparkline(nil, time.Now(), 10); !strings.Contains(got, "No elevation data") {
		t.Errorf("nil trace = %q", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	snap := testSnapshot(t, 21, 105, 7)

	got := renderSparkline(snap.Trace, snap.LastUpdate, SparklineWidth)
	if !strings.ContainsRune(got, sparklineBlocks[7]) {
		t.Error("sparkline should reach the top block at the daily peak")
	}
	if !strings.ContainsRune(got, sparklineBlocks[0]) {
		t.Error("sparkline should show night cells")
	}
	if !strings.Contains(got, "now:") {
		t.Error("sparkline should show the current elevation")
	}
}
