package astro

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// refInstant is 2010-01-01 00:00 at UTC-7.
var refInstant = time.UnixMilli(1262278800000)

func TestConvertToJulianDay(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected float64
	}{
		{"Unix epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 2440587.5},
		{"J2000 epoch", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"2010-01-01 UTC-7", refInstant, 2455197.2083333335},
		{"2023-06-23 UTC+7", time.UnixMilli(1687453200000), 2460118.2083333335},
		{"2024-01-01 00:00 UTC", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 2460310.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertToJulianDay(tt.time)
			if err != nil {
				t.Fatalf("ConvertToJulianDay() error = %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("ConvertToJulianDay() = %v, want %v", got, tt.expected)
			}
			want := float64(tt.time.UnixMilli())/86400000 + 2440587.5
			if got != want {
				t.Errorf("ConvertToJulianDay() = %v, not equal to epoch formula %v", got, want)
			}
		})
	}
}

func TestConvertToJulianDay_MatchesMeeus(t *testing.T) {
	for _, tm := range []time.Time{
		refInstant,
		time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2038, 1, 19, 3, 14, 7, 0, time.UTC),
	} {
		got, err := ConvertToJulianDay(tm)
		if err != nil {
			t.Fatalf("ConvertToJulianDay(%v) error = %v", tm, err)
		}
		want := julian.TimeToJD(tm)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("ConvertToJulianDay(%v) = %v, meeus says %v", tm, got, want)
		}
	}
}

func TestConvertToJulianDay_RejectsPre1970(t *testing.T) {
	for _, tm := range []time.Time{
		time.Date(1969, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1969, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(1900, 6, 1, 0, 0, 0, 0, time.UTC),
	} {
		if _, err := ConvertToJulianDay(tm); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ConvertToJulianDay(%v) error = %v, want ErrInvalidDate", tm, err)
		}
		if _, err := JulianCentury(tm); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("JulianCentury(%v) error = %v, want ErrInvalidDate", tm, err)
		}
		if _, err := NewEphemeris(tm); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("NewEphemeris(%v) error = %v, want ErrInvalidDate", tm, err)
		}
	}
}

func TestConvertToJulianDay_YearUsesUTC(t *testing.T) {
	// 1970-01-01 03:00 at UTC+5 is still 1969 in UTC.
	zone := time.FixedZone("UTC+5", 5*3600)
	tm := time.Date(1970, 1, 1, 3, 0, 0, 0, zone)
	if _, err := ConvertToJulianDay(tm); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("error = %v, want ErrInvalidDate", err)
	}
}

func TestJulianCentury(t *testing.T) {
	got, err := JulianCentury(refInstant)
	if err != nil {
		t.Fatalf("JulianCentury() error = %v", err)
	}
	if math.Abs(got-0.09999201460187511) > 1e-12 {
		t.Errorf("JulianCentury() = %v, want 0.09999201460187511", got)
	}

	j2000, _ := JulianCentury(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if j2000 != 0 {
		t.Errorf("JulianCentury(J2000) = %v, want 0", j2000)
	}
}
