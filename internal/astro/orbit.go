package astro

import "math"

// The functions below take the Julian century jc returned by JulianCentury.

// GeomMeanLongSun returns the geometric mean longitude of the Sun in
// degrees, wrapped into [0, 360).
func GeomMeanLongSun(jc float64) float64 {
	l0 := 280.46646 + jc*(36000.76983+jc*0.0003032)
	return FlooredMod(l0, 360)
}

// GeomMeanAnomSun returns the geometric mean anomaly of the Sun in degrees.
// The value is not wrapped.
func GeomMeanAnomSun(jc float64) float64 {
	return 357.52911 + jc*(35999.05029-0.0001537*jc)
}

// EccentEarthOrbit returns the eccentricity of Earth's orbit.
func EccentEarthOrbit(jc float64) float64 {
	return 0.016708634 - jc*(0.000042037+0.0000001267*jc)
}

// SunEqOfCenter returns the Sun's equation of the center in degrees.
func SunEqOfCenter(jc float64) float64 {
	m := GeomMeanAnomSun(jc)

	a := math.Sin(DegToRad(m))
	b := 1.914602 - jc*(0.004817+0.000014*jc)
	c := math.Sin(DegToRad(2 * m))
	d := 0.019993 - 0.000101*jc
	e := math.Sin(DegToRad(3*m)) * 0.000289

	return a*b + c*d + e
}

// SunTrueLong returns the Sun's true longitude in degrees.
func SunTrueLong(jc float64) float64 {
	return GeomMeanLongSun(jc) + SunEqOfCenter(jc)
}

// SunTrueAnom returns the Sun's true anomaly in degrees.
func SunTrueAnom(jc float64) float64 {
	return GeomMeanAnomSun(jc) + SunEqOfCenter(jc)
}

// SunRadiusVector returns the Earth-Sun distance in AU.
func SunRadiusVector(jc float64) float64 {
	e := EccentEarthOrbit(jc)
	v := SunTrueAnom(jc)

	a := 1.000001018 * (1 - e*e)
	b := 1 + e*math.Cos(DegToRad(v))

	return a / b
}
