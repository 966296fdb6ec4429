package astro

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/solstice"
)

// SeasonDates holds the equinoxes and solstices of a year in UTC.
// The underlying algorithm works in dynamical time; the ~1 minute offset
// from UTC is ignored.
type SeasonDates struct {
	Year             int
	MarchEquinox     time.Time
	JuneSolstice     time.Time
	SeptemberEquinox time.Time
	DecemberSolstice time.Time
}

// Seasons returns the equinoxes and solstices of year.
func Seasons(year int) SeasonDates {
	return SeasonDates{
		Year:             year,
		MarchEquinox:     jdeToTime(solstice.March(year)),
		JuneSolstice:     jdeToTime(solstice.June(year)),
		SeptemberEquinox: jdeToTime(solstice.September(year)),
		DecemberSolstice: jdeToTime(solstice.December(year)),
	}
}

// SeasonEvent is a named equinox or solstice.
type SeasonEvent struct {
	Name string
	At   time.Time
}

// Events returns the four boundaries in chronological order.
func (s SeasonDates) Events() []SeasonEvent {
	return []SeasonEvent{
		{"March equinox", s.MarchEquinox},
		{"June solstice", s.JuneSolstice},
		{"September equinox", s.SeptemberEquinox},
		{"December solstice", s.DecemberSolstice},
	}
}

// NextSeason returns the first equinox or solstice at or after t.
func NextSeason(t time.Time) SeasonEvent {
	year := t.UTC().Year()
	for _, e := range Seasons(year).Events() {
		if !e.At.Before(t) {
			return e
		}
	}
	return Seasons(year + 1).Events()[0]
}

func jdeToTime(jde float64) time.Time {
	return julian.JDToTime(jde).UTC().Truncate(time.Second)
}
