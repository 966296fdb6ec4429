// Package observer holds the single piece of state in ls-solar: a place,
// a clock offset and a date, from which the day's solar events are read.
package observer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/litescript/ls-solar/internal/astro"
)

var (
	// ErrInvalidDate is returned for instants before 1970 UTC.
	ErrInvalidDate = astro.ErrInvalidDate
	// ErrInvalidLatitude is returned for latitudes outside [-90, 90].
	ErrInvalidLatitude = errors.New("invalid latitude")
	// ErrInvalidLongitude is returned for longitudes outside [-180, 180].
	ErrInvalidLongitude = errors.New("invalid longitude")
	// ErrInvalidTimeZone is returned for offsets not in UTCOffsets.
	ErrInvalidTimeZone = errors.New("invalid time zone")
)

// UTCOffsets lists the offsets, in hours, that are in use somewhere.
var UTCOffsets = []float64{
	-12, -11, -10, -9.5, -9, -8, -7, -6, -5, -4, -3.5, -3, -2, -1,
	0, 1, 2, 3, 3.5, 4, 4.5, 5, 5.5, 5.75, 6, 6.5, 7, 7.5, 8, 8.75,
	9, 9.5, 10, 10.5, 11, 12, 12.75, 13, 14,
}

// Params configures a new Observer.
type Params struct {
	Instant   time.Time
	Latitude  float64
	Longitude float64
	UTCOffset float64
	Name      string
}

// Snapshot is a copy of an Observer's fields.
type Snapshot struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UTCOffset float64   `json:"utc_offset"`
	Instant   time.Time `json:"instant"`
	JulianDay float64   `json:"julian_day"`
}

// Observer is a validated location, UTC offset and date. The zero value is
// not usable; build one with New. Observer has no locking of its own.
type Observer struct {
	lat       float64
	lon       float64
	utcOffset float64
	name      string
	eph       astro.Ephemeris
}

// New validates p and returns an Observer. The date is checked first,
// then the time zone, then latitude and longitude.
func New(p Params) (Observer, error) {
	eph, err := astro.NewEphemeris(p.Instant)
	if err != nil {
		return Observer{}, err
	}
	if err := ValidateUTCOffset(p.UTCOffset); err != nil {
		return Observer{}, err
	}
	if err := ValidateLatLong(p.Latitude, p.Longitude); err != nil {
		return Observer{}, err
	}
	return Observer{
		lat:       p.Latitude,
		lon:       p.Longitude,
		utcOffset: p.UTCOffset,
		name:      p.Name,
		eph:       eph,
	}, nil
}

// ValidateLatLong checks latitude before longitude.
func ValidateLatLong(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: %v", ErrInvalidLatitude, lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: %v", ErrInvalidLongitude, lon)
	}
	return nil
}

// ValidateUTCOffset reports whether offset is one of UTCOffsets.
func ValidateUTCOffset(offset float64) error {
	for _, o := range UTCOffsets {
		if o == offset {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrInvalidTimeZone, offset)
}

// ParseUTCOffset parses "7", "-9.5", "+5:45" or "UTC+05:45" into hours
// and validates the result. A bare "UTC" or "GMT" is offset 0; an empty
// string is an error.
func ParseUTCOffset(s string) (float64, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0, fmt.Errorf("%w: empty offset", ErrInvalidTimeZone)
	}
	v = strings.TrimPrefix(strings.TrimPrefix(v, "UTC"), "GMT")
	if v == "" {
		return 0, nil
	}

	var hours float64
	if h, m, ok := strings.Cut(v, ":"); ok {
		hh, err := strconv.Atoi(h)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeZone, s)
		}
		mm, err := strconv.Atoi(m)
		if err != nil || mm < 0 || mm >= 60 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeZone, s)
		}
		hours = math.Abs(float64(hh)) + float64(mm)/60
		if strings.HasPrefix(h, "-") {
			hours = -hours
		}
	} else {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeZone, s)
		}
		hours = f
	}

	if err := ValidateUTCOffset(hours); err != nil {
		return 0, err
	}
	return hours, nil
}

// WithDate returns a copy of o for instant t.
func (o Observer) WithDate(t time.Time) (Observer, error) {
	eph, err := astro.NewEphemeris(t)
	if err != nil {
		return o, err
	}
	o.eph = eph
	return o, nil
}

// WithLatLong returns a copy of o at a new location.
func (o Observer) WithLatLong(lat, lon float64) (Observer, error) {
	if err := ValidateLatLong(lat, lon); err != nil {
		return o, err
	}
	o.lat, o.lon = lat, lon
	return o, nil
}

// WithTimeZone returns a copy of o with a new UTC offset in hours.
func (o Observer) WithTimeZone(offset float64) (Observer, error) {
	if err := ValidateUTCOffset(offset); err != nil {
		return o, err
	}
	o.utcOffset = offset
	return o, nil
}

// SetDate replaces the date. On error o is unchanged.
func (o *Observer) SetDate(t time.Time) error {
	next, err := o.WithDate(t)
	if err != nil {
		return err
	}
	*o = next
	return nil
}

// SetLatLong replaces both coordinates. On error o is unchanged.
func (o *Observer) SetLatLong(lat, lon float64) error {
	next, err := o.WithLatLong(lat, lon)
	if err != nil {
		return err
	}
	*o = next
	return nil
}

// SetTimeZone replaces the UTC offset. On error o is unchanged.
func (o *Observer) SetTimeZone(offset float64) error {
	next, err := o.WithTimeZone(offset)
	if err != nil {
		return err
	}
	*o = next
	return nil
}

// Get returns the current fields.
func (o Observer) Get() Snapshot {
	return Snapshot{
		Latitude:  o.lat,
		Longitude: o.lon,
		UTCOffset: o.utcOffset,
		Instant:   o.eph.Instant(),
		JulianDay: o.eph.JulianDay(),
	}
}

// Name returns the optional place name.
func (o Observer) Name() string { return o.name }

// Ephemeris returns the validated ephemeris for the observer's date.
func (o Observer) Ephemeris() astro.Ephemeris { return o.eph }

// Site returns the observer's location and offset.
func (o Observer) Site() astro.Site {
	return astro.Site{LatDeg: o.lat, LonDeg: o.lon, UTCOffset: o.utcOffset, Name: o.name}
}

// Location returns a fixed time.Location for the observer's offset.
func (o Observer) Location() *time.Location { return astro.FixedZone(o.utcOffset) }

// LocalMidnight returns 00:00 local standard time on the observer's date.
func (o Observer) LocalMidnight() time.Time {
	return astro.LocalMidnight(o.eph.Instant(), o.utcOffset)
}

// Events returns the day's events as fractions of the day.
func (o Observer) Events() (astro.DayEvents, error) {
	return o.eph.Events(o.Site())
}

// SunriseTime returns sunrise as HH:MM:SS local standard time.
func (o Observer) SunriseTime() (string, error) {
	ev, err := o.Events()
	if err != nil {
		return "", err
	}
	return astro.FormatTimeOfDay(ev.Sunrise), nil
}

// SunsetTime returns sunset as HH:MM:SS local standard time.
func (o Observer) SunsetTime() (string, error) {
	ev, err := o.Events()
	if err != nil {
		return "", err
	}
	return astro.FormatTimeOfDay(ev.Sunset), nil
}

// SunlightDuration returns the length of the day as HH:MM:SS.
func (o Observer) SunlightDuration() (string, error) {
	ev, err := o.Events()
	if err != nil {
		return "", err
	}
	return astro.FormatMinutes(ev.DaylightMinutes), nil
}

// SolarNoon returns solar noon as HH:MM:SS. It is defined on polar days.
func (o Observer) SolarNoon() string {
	return astro.FormatTimeOfDay(o.eph.SolarNoon(o.lon, o.utcOffset))
}

// PositionAt returns the Sun's position at t's local time of day on the
// observer's date.
func (o Observer) PositionAt(t time.Time) astro.SkyCoord {
	return o.eph.Position(astro.TimeOfDayFraction(t, o.utcOffset), o.Site())
}

// String implements fmt.Stringer.
func (o Observer) String() string {
	place := o.name
	if place == "" {
		place = fmt.Sprintf("%.4f,%.4f", o.lat, o.lon)
	}
	return fmt.Sprintf("%s %s (%s)", place, o.LocalMidnight().Format("2006-01-02"), o.Location())
}
