package astro

import (
	"errors"
	"time"
)

const (
	// unixEpochJD is the Julian Day of 1970-01-01T00:00:00Z.
	unixEpochJD = 2440587.5

	// j2000JD is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 UTC).
	j2000JD = 2451545.0

	daysPerCentury = 36525.0
	msPerDay       = 86400000.0

	// MinYear is the earliest UTC year accepted by the time conversions.
	MinYear = 1970
)

// ErrInvalidDate is returned for instants before 1970-01-01T00:00:00Z.
var ErrInvalidDate = errors.New("invalid date")

// ValidateInstant reports ErrInvalidDate when t falls before MinYear in UTC.
func ValidateInstant(t time.Time) error {
	if t.UTC().Year() < MinYear {
		return ErrInvalidDate
	}
	return nil
}

// ConvertToJulianDay converts an instant to a Julian Day number.
// Instants before 1970 are rejected rather than extrapolated.
func ConvertToJulianDay(t time.Time) (float64, error) {
	if err := ValidateInstant(t); err != nil {
		return 0, err
	}
	return float64(t.UnixMilli())/msPerDay + unixEpochJD, nil
}

// JulianCentury returns the number of Julian centuries between J2000.0 and t.
func JulianCentury(t time.Time) (float64, error) {
	jd, err := ConvertToJulianDay(t)
	if err != nil {
		return 0, err
	}
	return CenturyFromJulianDay(jd), nil
}

// CenturyFromJulianDay converts a Julian Day to Julian centuries since J2000.0.
func CenturyFromJulianDay(jd float64) float64 {
	return (jd - j2000JD) / daysPerCentury
}
