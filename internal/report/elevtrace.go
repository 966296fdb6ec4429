package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/observer"
)

// DefaultTraceInterval is the time between samples when none is given.
const DefaultTraceInterval = 10 * time.Minute

// SunriseElevation is the geometric elevation of the Sun's centre at
// sunrise and sunset, matching astro.SunriseZenith.
const SunriseElevation = 90 - astro.SunriseZenith

// ElevationSample is the Sun's position at one point in the day.
type ElevationSample struct {
	Time      time.Time
	Elevation float64 // geometric, degrees above horizon
	Apparent  float64 // refraction corrected
	Azimuth   float64
}

// ElevationTrace holds samples across one civil day.
type ElevationTrace struct {
	Site        astro.Site
	Samples     []ElevationSample
	Interval    time.Duration
	WindowStart time.Time
	WindowEnd   time.Time
}

// Crossing is an interpolated sunrise or sunset.
type Crossing struct {
	Time   time.Time
	Rising bool
}

// ComputeElevationTrace samples the Sun from local midnight to the next
// midnight on the observer's date. Samples share the date's ephemeris.
func ComputeElevationTrace(obs observer.Observer, interval time.Duration) *ElevationTrace {
	if interval <= 0 {
		interval = DefaultTraceInterval
	}

	start := obs.LocalMidnight()
	end := start.Add(24 * time.Hour)

	trace := &ElevationTrace{
		Site:        obs.Site(),
		Interval:    interval,
		WindowStart: start,
		WindowEnd:   end,
	}

	for t := start; t.Before(end); t = t.Add(interval) {
		pos := obs.PositionAt(t)
		trace.Samples = append(trace.Samples, ElevationSample{
			Time:      t,
			Elevation: pos.GeometricElDeg,
			Apparent:  pos.ElDeg,
			Azimuth:   pos.AzDeg,
		})
	}

	return trace
}

// CurrentSample returns the sample closest to the given time,
// or nil if no samples exist.
func (t *ElevationTrace) CurrentSample(now time.Time) *ElevationSample {
	if t == nil || len(t.Samples) == 0 {
		return nil
	}

	var closest *ElevationSample
	var minDelta time.Duration = 1<<63 - 1

	for i := range t.Samples {
		delta := t.Samples[i].Time.Sub(now)
		if delta < 0 {
			delta = -delta
		}
		if delta < minDelta {
			minDelta = delta
			closest = &t.Samples[i]
		}
	}

	return closest
}

// Peak returns the sample with the highest elevation.
func (t *ElevationTrace) Peak() *ElevationSample {
	if t == nil || len(t.Samples) == 0 {
		return nil
	}
	peak := &t.Samples[0]
	for i := range t.Samples {
		if t.Samples[i].Elevation > peak.Elevation {
			peak = &t.Samples[i]
		}
	}
	return peak
}

// Crossings returns the times the Sun's centre passes SunriseElevation,
// linearly interpolated between samples.
func (t *ElevationTrace) Crossings() []Crossing {
	if t == nil {
		return nil
	}

	var out []Crossing
	for i := 1; i < len(t.Samples); i++ {
		prev, cur := t.Samples[i-1], t.Samples[i]
		wasUp := prev.Elevation > SunriseElevation
		isUp := cur.Elevation > SunriseElevation
		if wasUp == isUp {
			continue
		}
		out = append(out, Crossing{
			Time:   interpolateCrossing(prev, cur, SunriseElevation),
			Rising: isUp,
		})
	}
	return out
}

// interpolateCrossing finds when elevation reaches threshold between a and b.
func interpolateCrossing(a, b ElevationSample, threshold float64) time.Time {
	if a.Elevation == b.Elevation {
		return a.Time
	}
	frac := (threshold - a.Elevation) / (b.Elevation - a.Elevation)
	span := b.Time.Sub(a.Time)
	return a.Time.Add(time.Duration(frac * float64(span)))
}

// WriteTrace writes the samples as a text table.
func WriteTrace(w io.Writer, trace *ElevationTrace) {
	if trace == nil || len(trace.Samples) == 0 {
		fmt.Fprintln(w, "No samples")
		return
	}

	loc := astro.FixedZone(trace.Site.UTCOffset)
	fmt.Fprintf(w, "Elevation trace %s, every %s\n",
		trace.WindowStart.In(loc).Format(time.DateOnly), trace.Interval)
	fmt.Fprintln(w, strings.Repeat("─", 44))
	fmt.Fprintf(w, "%-6s %10s %10s %10s\n", "Time", "Elev", "Apparent", "Azimuth")
	fmt.Fprintln(w, strings.Repeat("─", 44))

	for _, s := range trace.Samples {
		fmt.Fprintf(w, "%-6s %+9.3f° %+9.3f° %9.3f°\n",
			s.Time.In(loc).Format("15:04"), s.Elevation, s.Apparent, s.Azimuth)
	}

	for _, c := range trace.Crossings() {
		label := "sets"
		if c.Rising {
			label = "rises"
		}
		fmt.Fprintf(w, "\nSun %s at %s", label, c.Time.In(loc).Format("15:04:05"))
	}
	fmt.Fprintln(w)
}
