package astro

import "math"

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * (180 / math.Pi)
}

// FlooredMod returns n modulo divisor using floored division, so the
// result always carries the sign of divisor (spreadsheet MOD semantics).
// Go's % and math.Mod truncate toward zero instead.
func FlooredMod(n, divisor float64) float64 {
	return n - divisor*math.Floor(n/divisor)
}
