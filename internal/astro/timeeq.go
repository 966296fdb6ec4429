package astro

import (
	"errors"
	"fmt"
	"math"
)

// SunriseZenith is the zenith distance, in degrees, of the Sun's centre at
// apparent sunrise and sunset: 90° plus refraction and the solar semidiameter.
const SunriseZenith = 90.833

const (
	minutesPerDay = 1440.0
	secondsPerDay = 86400.0
)

// Errors for locations where the Sun does not cross the horizon on the day.
var (
	ErrNoSunriseSunset = errors.New("no sunrise or sunset")
	ErrPolarDay        = fmt.Errorf("%w: sun stays above the horizon", ErrNoSunriseSunset)
	ErrPolarNight      = fmt.Errorf("%w: sun stays below the horizon", ErrNoSunriseSunset)
)

// VarY returns tan²(ε/2), where ε is the corrected obliquity.
func VarY(jc float64) float64 {
	obliq := ObliquityCorrected(jc)

	a := math.Tan(DegToRad(obliq / 2))
	b := math.Tan(DegToRad(obliq / 2))

	return a * b
}

// EquationOfTime returns apparent minus mean solar time, in minutes.
func EquationOfTime(jc float64) float64 {
	y := VarY(jc)
	e := EccentEarthOrbit(jc)
	m := GeomMeanAnomSun(jc)
	l0 := GeomMeanLongSun(jc)

	a := y * math.Sin(2*DegToRad(l0))
	b := 2 * e * math.Sin(DegToRad(m))
	c := 4 * e * y * math.Sin(DegToRad(m)) * math.Cos(2*DegToRad(l0))
	d := 0.5 * y * y * math.Sin(4*DegToRad(l0))
	f := 1.25 * e * e * math.Sin(2*DegToRad(m))

	return 4 * RadToDeg(a-b+c-d-f)
}

// sunriseCosine is the cosine of the sunrise hour angle. Values outside
// [-1, 1] mean the Sun never crosses the horizon that day.
func sunriseCosine(jc, lat float64) float64 {
	decl := SunDeclination(jc)

	a := math.Cos(DegToRad(SunriseZenith))
	b := math.Cos(DegToRad(lat)) * math.Cos(DegToRad(decl))
	c := math.Tan(DegToRad(lat))
	d := math.Tan(DegToRad(decl))

	return a/b - c*d
}

// HourAngleSunrise returns the hour angle of sunrise in degrees.
// It returns NaN during polar day or polar night; use SunriseHourAngle to
// get an error instead.
func HourAngleSunrise(jc, lat float64) float64 {
	return RadToDeg(math.Acos(sunriseCosine(jc, lat)))
}

// SunriseHourAngle is HourAngleSunrise with the polar cases reported as
// ErrPolarDay or ErrPolarNight. Both wrap ErrNoSunriseSunset.
func SunriseHourAngle(jc, lat float64) (float64, error) {
	cos := sunriseCosine(jc, lat)
	switch {
	case cos > 1:
		return math.NaN(), ErrPolarNight
	case cos < -1:
		return math.NaN(), ErrPolarDay
	case math.IsNaN(cos):
		return math.NaN(), ErrNoSunriseSunset
	}
	return RadToDeg(math.Acos(cos)), nil
}

// SolarNoon returns local solar noon as a fraction of the day in local
// standard time for the given longitude and UTC offset in hours.
func SolarNoon(jc, lon, utcOffset float64) float64 {
	eot := EquationOfTime(jc)
	return (720 - 4*lon - eot + utcOffset*60) / minutesPerDay
}

// SunriseTime returns sunrise as a fraction of the day in local standard time.
func SunriseTime(jc, lat, lon, utcOffset float64) float64 {
	noon := SolarNoon(jc, lon, utcOffset)
	ha := HourAngleSunrise(jc, lat)
	return noon - ha*4/minutesPerDay
}

// SunsetTime returns sunset as a fraction of the day in local standard time.
func SunsetTime(jc, lat, lon, utcOffset float64) float64 {
	noon := SolarNoon(jc, lon, utcOffset)
	ha := HourAngleSunrise(jc, lat)
	return noon + ha*4/minutesPerDay
}

// SunlightDuration returns the time between sunrise and sunset in minutes.
func SunlightDuration(jc, lat float64) float64 {
	return 8 * HourAngleSunrise(jc, lat)
}

// DayEvents holds the daily events, as fractions of the day in local
// standard time, plus the length of daylight in minutes.
type DayEvents struct {
	Sunrise         float64
	SolarNoon       float64
	Sunset          float64
	DaylightMinutes float64
}

// Events computes sunrise, solar noon and sunset in one pass. On polar
// days the error wraps ErrNoSunriseSunset and only SolarNoon is set.
func Events(jc, lat, lon, utcOffset float64) (DayEvents, error) {
	noon := SolarNoon(jc, lon, utcOffset)
	ha, err := SunriseHourAngle(jc, lat)
	if err != nil {
		return DayEvents{SolarNoon: noon}, err
	}
	return DayEvents{
		Sunrise:         noon - ha*4/minutesPerDay,
		SolarNoon:       noon,
		Sunset:          noon + ha*4/minutesPerDay,
		DaylightMinutes: 8 * ha,
	}, nil
}
