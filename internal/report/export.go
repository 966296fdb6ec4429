// Package report turns an observer's day into JSON and text outputs.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/observer"
)

// Polar values for DayReport.Polar.
const (
	PolarDay   = "day"
	PolarNight = "night"
)

// DayReport is the JSON-serializable summary of one civil day.
type DayReport struct {
	Date           string  `json:"date"`
	Location       string  `json:"location,omitempty"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	UTCOffset      float64 `json:"utc_offset"`
	JulianDay      float64 `json:"julian_day"`
	Declination    float64 `json:"declination_deg"`
	EquationOfTime float64 `json:"equation_of_time_min"`
	DistanceAU     float64 `json:"distance_au"`

	Sunrise  string `json:"sunrise,omitempty"`
	Noon     string `json:"solar_noon"`
	Sunset   string `json:"sunset,omitempty"`
	Daylight string `json:"daylight,omitempty"`

	SunriseFraction float64 `json:"sunrise_fraction,omitempty"`
	NoonFraction    float64 `json:"solar_noon_fraction"`
	SunsetFraction  float64 `json:"sunset_fraction,omitempty"`
	DaylightMinutes float64 `json:"daylight_minutes"`

	// Polar is "day" or "night" when the Sun does not cross the horizon.
	Polar string `json:"polar,omitempty"`
}

// BuildDayReport computes the report for the observer's date.
func BuildDayReport(obs observer.Observer) DayReport {
	eph := obs.Ephemeris()
	snap := obs.Get()

	r := DayReport{
		Date:           obs.LocalMidnight().Format(time.DateOnly),
		Location:       obs.Name(),
		Latitude:       snap.Latitude,
		Longitude:      snap.Longitude,
		UTCOffset:      snap.UTCOffset,
		JulianDay:      snap.JulianDay,
		Declination:    eph.Declination(),
		EquationOfTime: eph.EquationOfTime(),
		DistanceAU:     eph.RadiusVector(),
	}

	ev, err := obs.Events()
	r.NoonFraction = ev.SolarNoon
	r.Noon = astro.FormatTimeOfDay(ev.SolarNoon)

	switch {
	case errors.Is(err, astro.ErrPolarDay):
		r.Polar = PolarDay
		r.DaylightMinutes = 24 * 60
	case errors.Is(err, astro.ErrPolarNight):
		r.Polar = PolarNight
	default:
		r.SunriseFraction = ev.Sunrise
		r.SunsetFraction = ev.Sunset
		r.DaylightMinutes = ev.DaylightMinutes
		r.Sunrise = astro.FormatTimeOfDay(ev.Sunrise)
		r.Sunset = astro.FormatTimeOfDay(ev.Sunset)
		r.Daylight = astro.FormatMinutes(ev.DaylightMinutes)
	}

	return r
}

// WriteJSON writes the report as indented JSON to the given writer.
func (r *DayReport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteSummary writes a short text block for one day.
func WriteSummary(w io.Writer, r DayReport) {
	place := r.Location
	if place == "" {
		place = fmt.Sprintf("%.4f, %.4f", r.Latitude, r.Longitude)
	}

	fmt.Fprintf(w, "Sun @ %s on %s (UTC%+g)\n", place, r.Date, r.UTCOffset)
	fmt.Fprintln(w, strings.Repeat("─", 48))
	fmt.Fprintf(w, "%-18s %s\n", "Sunrise", orPolar(r.Sunrise, r.Polar))
	fmt.Fprintf(w, "%-18s %s\n", "Solar noon", r.Noon)
	fmt.Fprintf(w, "%-18s %s\n", "Sunset", orPolar(r.Sunset, r.Polar))
	fmt.Fprintf(w, "%-18s %s\n", "Daylight", astro.FormatMinutes(r.DaylightMinutes))
	fmt.Fprintf(w, "%-18s %+.4f°\n", "Declination", r.Declination)
	fmt.Fprintf(w, "%-18s %+.2f min\n", "Equation of time", r.EquationOfTime)
	fmt.Fprintf(w, "%-18s %.6f\n", "Julian day", r.JulianDay)
}

// Almanac returns reports for days consecutive civil days starting at the
// observer's date.
func Almanac(obs observer.Observer, days int) []DayReport {
	start := obs.LocalMidnight()
	rows := make([]DayReport, 0, max(days, 0))
	for i := 0; i < days; i++ {
		day, err := obs.WithDate(start.AddDate(0, 0, i))
		if err != nil {
			break
		}
		rows = append(rows, BuildDayReport(day))
	}
	return rows
}

// WriteAlmanacTable writes a fixed-width table of day reports.
func WriteAlmanacTable(w io.Writer, rows []DayReport) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No days")
		return
	}

	first := rows[0]
	fmt.Fprintf(w, "Almanac @ %.4f, %.4f (UTC%+g)\n", first.Latitude, first.Longitude, first.UTCOffset)
	fmt.Fprintln(w, strings.Repeat("─", 78))

	fmt.Fprintf(w, "%-10s %-10s %-10s %-10s %-10s %-9s %-8s\n",
		"Date", "Sunrise", "Noon", "Sunset", "Daylight", "Decl", "EoT")
	fmt.Fprintln(w, strings.Repeat("─", 78))

	for _, r := range rows {
		fmt.Fprintf(w, "%-10s %-10s %-10s %-10s %-10s %+8.3f° %+6.2fm\n",
			r.Date,
			truncateStr(orPolar(r.Sunrise, r.Polar), 10),
			r.Noon,
			truncateStr(orPolar(r.Sunset, r.Polar), 10),
			astro.FormatMinutes(r.DaylightMinutes),
			r.Declination,
			r.EquationOfTime,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d days\n", len(rows))
}

// WriteNow writes a one-line summary of the Sun's position at now.
func WriteNow(w io.Writer, obs observer.Observer, now time.Time) {
	pos := obs.PositionAt(now)
	state := "below horizon"
	if pos.AboveHorizon() {
		state = "above horizon"
	}
	fmt.Fprintf(w, "%s  el %+7.3f°  az %7.3f°  refr %.4f°  %s\n",
		now.In(obs.Location()).Format("2006-01-02 15:04:05 MST"),
		pos.ElDeg, pos.AzDeg, pos.RefractionDeg, state)
}

// WriteSeasons writes the equinoxes and solstices of year in loc.
func WriteSeasons(w io.Writer, year int, loc *time.Location) {
	fmt.Fprintf(w, "Seasons %d\n", year)
	fmt.Fprintln(w, strings.Repeat("─", 48))
	for _, e := range astro.Seasons(year).Events() {
		fmt.Fprintf(w, "%-18s %s\n", e.Name, e.At.In(loc).Format("2006-01-02 15:04 MST"))
	}
}

func orPolar(s, polar string) string {
	if s != "" {
		return s
	}
	switch polar {
	case PolarDay:
		return "polar day"
	case PolarNight:
		return "polar night"
	}
	return "-"
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
