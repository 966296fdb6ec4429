package astro

import "math"

// nodeLongitude is the longitude of the Moon's ascending node, used by the
// nutation and aberration corrections.
func nodeLongitude(jc float64) float64 {
	return 125.04 - 1934.136*jc
}

// SunApparentLong returns the Sun's apparent longitude in degrees.
func SunApparentLong(jc float64) float64 {
	a := math.Sin(DegToRad(nodeLongitude(jc)))
	return SunTrueLong(jc) - 0.00569 - 0.00478*a
}

// MeanObliquityEcliptic returns the mean obliquity of the ecliptic in degrees.
func MeanObliquityEcliptic(jc float64) float64 {
	a := 0.00059 - jc*0.001813
	b := 46.815 + jc*a
	c := 21.448 - jc*b // arcseconds
	d := 26 + c/60     // arcminutes

	return 23 + d/60
}

// ObliquityCorrected returns the obliquity of the ecliptic corrected for
// nutation, in degrees.
func ObliquityCorrected(jc float64) float64 {
	a := math.Cos(DegToRad(nodeLongitude(jc)))
	return MeanObliquityEcliptic(jc) + 0.00256*a
}

// SunRightAscension returns the Sun's apparent right ascension in degrees,
// in (-180, 180].
func SunRightAscension(jc float64) float64 {
	obliq := ObliquityCorrected(jc)
	lambda := SunApparentLong(jc)

	a := math.Sin(DegToRad(lambda))
	b := math.Cos(DegToRad(obliq))
	c := math.Cos(DegToRad(lambda))

	return RadToDeg(math.Atan2(b*a, c))
}

// SunDeclination returns the Sun's apparent declination in degrees.
func SunDeclination(jc float64) float64 {
	lambda := SunApparentLong(jc)
	obliq := ObliquityCorrected(jc)

	a := math.Sin(DegToRad(obliq))
	b := math.Sin(DegToRad(lambda))

	return RadToDeg(math.Asin(a * b))
}
