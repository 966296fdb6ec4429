package astro

import "math"

// The functions in this file take timeOfDay as a fraction of the day in
// local standard time. Any real value is accepted; values outside [0, 1)
// roll over into the neighbouring day.

// TrueSolarTime returns the true solar time in minutes, wrapped into [0, 1440).
func TrueSolarTime(jc, timeOfDay, lon, utcOffset float64) float64 {
	eot := EquationOfTime(jc)
	a := timeOfDay*minutesPerDay + eot + 4*lon - 60*utcOffset
	return FlooredMod(a, minutesPerDay)
}

// HourAngle returns the Sun's hour angle in degrees, negative before
// solar noon.
func HourAngle(jc, timeOfDay, lon, utcOffset float64) float64 {
	tst := TrueSolarTime(jc, timeOfDay, lon, utcOffset)
	// TrueSolarTime is never negative, so the first branch does not fire.
	// It is kept to match the NOAA spreadsheet formula.
	if tst/4 < 0 {
		return tst/4 + 180
	}
	return tst/4 - 180
}

// SolarZenithAngle returns the angle between the Sun and the local
// vertical in degrees, without refraction.
func SolarZenithAngle(jc, timeOfDay, lat, lon, utcOffset float64) float64 {
	decl := SunDeclination(jc)
	ha := HourAngle(jc, timeOfDay, lon, utcOffset)

	a := math.Sin(DegToRad(lat))
	b := math.Sin(DegToRad(decl))
	c := math.Cos(DegToRad(lat))
	d := math.Cos(DegToRad(decl))
	e := math.Cos(DegToRad(ha))

	return RadToDeg(math.Acos(a*b + c*d*e))
}

// SolarElevationAngle returns the geometric elevation of the Sun above
// the horizon in degrees.
func SolarElevationAngle(jc, timeOfDay, lat, lon, utcOffset float64) float64 {
	return 90 - SolarZenithAngle(jc, timeOfDay, lat, lon, utcOffset)
}

// Elevation bands of the refraction model. Boundaries are strict: an
// elevation equal to a bound falls into the band below it.
const (
	refractionNoneAbove = 85.0
	refractionTanAbove  = 5.0
	refractionPolyAbove = -0.575
)

// AtmosphericRefraction returns the approximate refraction in degrees for
// an unrefracted elevation angle in degrees. The coefficients are an
// empirical fit used by NOAA.
func AtmosphericRefraction(elevation float64) float64 {
	var arcsec float64
	switch {
	case elevation > refractionNoneAbove:
		arcsec = 0
	case elevation > refractionTanAbove:
		t := math.Tan(DegToRad(elevation))
		arcsec = 58.1/t - 0.07/math.Pow(t, 3) + 0.000086/math.Pow(t, 5)
	case elevation > refractionPolyAbove:
		a := -12.79 + elevation*0.711
		b := 103.4 + elevation*a
		c := -518.2 + elevation*b
		arcsec = 1735 + elevation*c
	default:
		arcsec = -20.772 / math.Tan(DegToRad(elevation))
	}
	return arcsec / 3600
}

// ApproxAtmosphericRefraction returns the refraction for the Sun at the
// given time and place, in degrees.
func ApproxAtmosphericRefraction(jc, timeOfDay, lat, lon, utcOffset float64) float64 {
	return AtmosphericRefraction(SolarElevationAngle(jc, timeOfDay, lat, lon, utcOffset))
}

// RefractionCorrectedElevation returns the apparent elevation of the Sun
// in degrees.
func RefractionCorrectedElevation(jc, timeOfDay, lat, lon, utcOffset float64) float64 {
	elevation := SolarElevationAngle(jc, timeOfDay, lat, lon, utcOffset)
	return elevation + AtmosphericRefraction(elevation)
}

// SolarAzimuthAngle returns the Sun's azimuth in degrees clockwise from
// north, in [0, 360).
func SolarAzimuthAngle(jc, timeOfDay, lat, lon, utcOffset float64) float64 {
	zenith := SolarZenithAngle(jc, timeOfDay, lat, lon, utcOffset)
	ha := HourAngle(jc, timeOfDay, lon, utcOffset)
	decl := SunDeclination(jc)
	return azimuthFrom(lat, decl, zenith, ha)
}

func azimuthFrom(lat, decl, zenith, hourAngle float64) float64 {
	a := math.Sin(DegToRad(lat))
	b := math.Cos(DegToRad(zenith))
	c := math.Sin(DegToRad(decl))
	d := math.Cos(DegToRad(lat))
	e := math.Sin(DegToRad(zenith))
	f := RadToDeg(math.Acos((a*b - c) / (d * e)))

	// Afternoon: the Sun is west of the meridian.
	if hourAngle > 0 {
		return FlooredMod(f+180, 360)
	}
	return FlooredMod(540-f, 360)
}
