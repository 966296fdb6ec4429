package report

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestComputeElevationTrace(t *testing.T) {
	obs := newHanoi(t)
	trace := ComputeElevationTrace(obs, 10*time.Minute)

	if len(trace.Samples) != 144 {
		t.Fatalf("sample count = %d, want 144", len(trace.Samples))
	}
	if !trace.WindowStart.Equal(obs.LocalMidnight()) {
		t.Errorf("WindowStart = %v, want local midnight", trace.WindowStart)
	}
	if trace.WindowEnd.Sub(trace.WindowStart) != 24*time.Hour {
		t.Errorf("window = %v, want 24h", trace.WindowEnd.Sub(trace.WindowStart))
	}

	for i := 1; i < len(trace.Samples); i++ {
		if d := trace.Samples[i].Time.Sub(trace.Samples[i-1].Time); d != 10*time.Minute {
			t.Fatalf("sample spacing at %d = %v", i, d)
		}
	}

	for i, s := range trace.Samples {
		if s.Elevation < -90 || s.Elevation > 90 {
			t.Errorf("sample[%d] elevation = %f, out of valid range", i, s.Elevation)
		}
		if s.Azimuth < 0 || s.Azimuth >= 360 {
			t.Errorf("sample[%d] azimuth = %f, out of range", i, s.Azimuth)
		}
		if s.Apparent < s.Elevation {
			t.Errorf("sample[%d] refraction lowered the Sun: %f < %f", i, s.Apparent, s.Elevation)
		}
	}
}

func TestComputeElevationTrace_DefaultInterval(t *testing.T) {
	trace := ComputeElevationTrace(newHanoi(t), 0)
	if trace.Interval != DefaultTraceInterval {
		t.Errorf("Interval = %v, want %v", trace.Interval, DefaultTraceInterval)
	}
}

func TestElevationTrace_Crossings(t *testing.T) {
	obs := newHanoi(t)
	trace := ComputeElevationTrace(obs, 5*time.Minute)

	ev, err := obs.Events()
	if err != nil {
		t.Fatal(err)
	}
	day := float64(24 * time.Hour)
	wantRise := obs.LocalMidnight().Add(time.Duration(ev.Sunrise * day))
	wantSet := obs.LocalMidnight().Add(time.Duration(ev.Sunset * day))

	crossings := trace.Crossings()
	if len(crossings) != 2 {
		t.Fatalf("crossings = %d, want 2", len(crossings))
	}
	if !crossings[0].Rising || crossings[1].Rising {
		t.Errorf("crossing order = %+v", crossings)
	}
	if d := crossings[0].Time.Sub(wantRise).Abs(); d > time.Minute {
		t.Errorf("rise crossing off by %v", d)
	}
	if d := crossings[1].Time.Sub(wantSet).Abs(); d > time.Minute {
		t.Errorf("set crossing off by %v", d)
	}
}

func TestElevationTrace_CurrentSample(t *testing.T) {
	obs := newHanoi(t)
	trace := ComputeElevationTrace(obs, 10*time.Minute)

	at := obs.LocalMidnight().Add(6*time.Hour + 4*time.Minute)
	s := trace.CurrentSample(at)
	if s == nil {
		t.Fatal("CurrentSample() = nil")
	}
	if want := obs.LocalMidnight().Add(6 * time.Hour); !s.Time.Equal(want) {
		t.Errorf("CurrentSample().Time = %v, want %v", s.Time, want)
	}

	var empty *ElevationTrace
	if empty.CurrentSample(at) != nil {
		t.Error("nil trace should return nil sample")
	}
}

func TestElevationTrace_Peak(t *testing.T) {
	obs := newHanoi(t)
	trace := ComputeElevationTrace(obs, 5*time.Minute)

	peak := trace.Peak()
	if peak == nil {
		t.Fatal("Peak() = nil")
	}
	noon := obs.LocalMidnight().Add(12 * time.Hour)
	if d := peak.Time.Sub(noon).Abs(); d > 15*time.Minute {
		t.Errorf("peak at %v, want near solar noon", peak.Time)
	}
}

func TestInterpolateCrossing(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	a := ElevationSample{Time: t0, Elevation: -2}
	b := ElevationSample{Time: t0.Add(10 * time.Minute), Elevation: 2}

	got := interpolateCrossing(a, b, 0)
	if want := t0.Add(5 * time.Minute); !got.Equal(want) {
		t.Errorf("interpolateCrossing() = %v, want %v", got, want)
	}

	flat := interpolateCrossing(a, ElevationSample{Time: b.Time, Elevation: -2}, 0)
	if !flat.Equal(t0) {
		t.Errorf("flat segment = %v, want %v", flat, t0)
	}
}

func TestWriteTrace(t *testing.T) {
	var buf bytes.Buffer
	WriteTrace(&buf, ComputeElevationTrace(newHanoi(t), time.Hour))
	out := buf.String()

	for _, want := range []string{"Elevation trace 2023-06-23", "00:00", "23:00", "Sun rises at 05:", "Sun sets at 18:"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	WriteTrace(&buf, nil)
	if !strings.Contains(buf.String(), "No samples") {
		t.Errorf("nil trace = %q", buf.String())
	}
}
