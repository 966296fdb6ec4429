package astro

import "time"

// Ephemeris binds a validated instant to its Julian day and century so
// the NOAA functions can be called without re-validating the date.
// The zero value is not valid; use NewEphemeris.
type Ephemeris struct {
	instant time.Time
	jd      float64
	jc      float64
}

// NewEphemeris validates t and precomputes its Julian day and century.
func NewEphemeris(t time.Time) (Ephemeris, error) {
	jd, err := ConvertToJulianDay(t)
	if err != nil {
		return Ephemeris{}, err
	}
	return Ephemeris{instant: t, jd: jd, jc: CenturyFromJulianDay(jd)}, nil
}

// Instant returns the instant the ephemeris was built for.
func (e Ephemeris) Instant() time.Time { return e.instant }

// JulianDay returns the Julian Day of the instant.
func (e Ephemeris) JulianDay() float64 { return e.jd }

// JulianCentury returns Julian centuries since J2000.0.
func (e Ephemeris) JulianCentury() float64 { return e.jc }

// Declination returns the Sun's apparent declination in degrees.
func (e Ephemeris) Declination() float64 { return SunDeclination(e.jc) }

// RightAscension returns the Sun's apparent right ascension in degrees.
func (e Ephemeris) RightAscension() float64 { return SunRightAscension(e.jc) }

// RadiusVector returns the Earth-Sun distance in AU.
func (e Ephemeris) RadiusVector() float64 { return SunRadiusVector(e.jc) }

// EquationOfTime returns the equation of time in minutes.
func (e Ephemeris) EquationOfTime() float64 { return EquationOfTime(e.jc) }

// HourAngleSunrise returns the sunrise hour angle, NaN on polar days.
func (e Ephemeris) HourAngleSunrise(lat float64) float64 { return HourAngleSunrise(e.jc, lat) }

// SolarNoon returns solar noon as a fraction of the day.
func (e Ephemeris) SolarNoon(lon, utcOffset float64) float64 {
	return SolarNoon(e.jc, lon, utcOffset)
}

// SunriseTime returns sunrise as a fraction of the day, NaN on polar days.
func (e Ephemeris) SunriseTime(lat, lon, utcOffset float64) float64 {
	return SunriseTime(e.jc, lat, lon, utcOffset)
}

// SunsetTime returns sunset as a fraction of the day, NaN on polar days.
func (e Ephemeris) SunsetTime(lat, lon, utcOffset float64) float64 {
	return SunsetTime(e.jc, lat, lon, utcOffset)
}

// SunlightDuration returns the daylight length in minutes, NaN on polar days.
func (e Ephemeris) SunlightDuration(lat float64) float64 { return SunlightDuration(e.jc, lat) }

// Events returns the day's sunrise, solar noon and sunset for a site.
func (e Ephemeris) Events(site Site) (DayEvents, error) {
	return Events(e.jc, site.LatDeg, site.LonDeg, site.UTCOffset)
}

// Position returns the Sun's position for a site at timeOfDay.
func (e Ephemeris) Position(timeOfDay float64, site Site) SkyCoord {
	return Position(e.jc, timeOfDay, site)
}

// SunPosition returns the apparent right ascension (0-360) and
// declination of the Sun at t, in degrees.
func SunPosition(t time.Time) (raDeg, decDeg float64, err error) {
	jc, err := JulianCentury(t)
	if err != nil {
		return 0, 0, err
	}
	return FlooredMod(SunRightAscension(jc), 360), SunDeclination(jc), nil
}
