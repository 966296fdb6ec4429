package astro

import (
	"fmt"
	"math"
	"time"
)

// FormatTimeOfDay formats a fraction of a day as HH:MM:SS.
// Inputs are not range checked: 1.5 formats as "36:00:00".
// Half seconds round toward +Inf, so -0.5s formats as "00:00:00".
func FormatTimeOfDay(fraction float64) string {
	total := int64(math.Floor(fraction*secondsPerDay + 0.5))

	hours := total / 3600
	mins := (total % 3600) / 60
	secs := total % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
}

// FormatMinutes formats a duration in minutes as HH:MM:SS.
func FormatMinutes(minutes float64) string {
	return FormatTimeOfDay(minutes / 60 / 24)
}

// TimeOfDayFraction returns the fraction of the day elapsed at t on a
// clock running at the given UTC offset in hours.
func TimeOfDayFraction(t time.Time, utcOffset float64) float64 {
	return t.Sub(LocalMidnight(t, utcOffset)).Seconds() / secondsPerDay
}

// LocalMidnight returns the instant of 00:00 local standard time, at the
// given UTC offset in hours, on the civil day containing t.
func LocalMidnight(t time.Time, utcOffset float64) time.Time {
	zone := FixedZone(utcOffset)
	local := t.In(zone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, zone)
}

// FixedZone returns a time.Location for a raw UTC offset in hours.
func FixedZone(utcOffset float64) *time.Location {
	secs := int(math.Round(utcOffset * 3600))
	sign := "+"
	if secs < 0 {
		sign = "-"
	}
	abs := secs
	if abs < 0 {
		abs = -abs
	}
	name := fmt.Sprintf("UTC%s%02d:%02d", sign, abs/3600, (abs%3600)/60)
	return time.FixedZone(name, secs)
}
