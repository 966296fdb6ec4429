package astro

import (
	"errors"
	"math"
	"testing"
	"time"
)

// Reference values from the NOAA solar calculator spreadsheet for
// 2010-01-01 00:00 at UTC-7, latitude 40, longitude -105.
const (
	refLat = 40.0
	refLon = -105.0
	refTZ  = -7.0
)

func refCentury(t *testing.T) float64 {
	t.Helper()
	jc, err := JulianCentury(refInstant)
	if err != nil {
		t.Fatalf("JulianCentury() error = %v", err)
	}
	return jc
}

func assertClose(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %.15g, want %.15g (±%g)", name, got, want, tol)
	}
}

func TestOrbitalGeometry(t *testing.T) {
	jc := refCentury(t)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"GeomMeanLongSun", GeomMeanLongSun(jc), 280.2559655516202},
		{"GeomMeanAnomSun", GeomMeanAnomSun(jc), 3957.146670714562},
		{"EccentEarthOrbit", EccentEarthOrbit(jc), 0.016704429368884523},
		{"SunEqOfCenter", SunEqOfCenter(jc), -0.0973137957121151},
		{"SunTrueLong", SunTrueLong(jc), 280.15865175590807},
		{"SunTrueAnom", SunTrueAnom(jc), 3957.0493569188498},
		{"SunRadiusVector", SunRadiusVector(jc), 0.9833179903220168},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertClose(t, tt.name, tt.got, tt.want, 1e-9)
		})
	}
}

func TestGeomMeanLongSun_Wraps(t *testing.T) {
	for _, jc := range []float64{0, 0.1, 0.25, 0.5, 0.99} {
		got := GeomMeanLongSun(jc)
		if got < 0 || got >= 360 {
			t.Errorf("GeomMeanLongSun(%v) = %v, want in [0, 360)", jc, got)
		}
	}
}

func TestApparentPosition(t *testing.T) {
	jc := refCentury(t)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"SunApparentLong", SunApparentLong(jc), 280.15740480121036},
		{"MeanObliquityEcliptic", MeanObliquityEcliptic(jc), 23.437990797152757},
		{"ObliquityCorrected", ObliquityCorrected(jc), 23.438934934108723},
		{"SunRightAscension", SunRightAscension(jc), -78.95065985510631},
		{"SunDeclination", SunDeclination(jc), -23.050180763914142},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertClose(t, tt.name, tt.got, tt.want, 1e-9)
		})
	}
}

func TestTimeEquation(t *testing.T) {
	jc := refCentury(t)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"VarY", VarY(jc), 0.043033184197256956},
		{"EquationOfTime", EquationOfTime(jc), -3.1753023562713434},
		{"HourAngleSunrise", HourAngleSunrise(jc, refLat), 70.34111688793567},
		{"SolarNoon", SolarNoon(jc, refLon, refTZ), 0.5022050710807439},
		{"SunriseTime", SunriseTime(jc, refLat, refLon, refTZ), 0.306813079725367},
		{"SunsetTime", SunsetTime(jc, refLat, refLon, refTZ), 0.6975970624361207},
		{"SunlightDuration", SunlightDuration(jc, refLat), 562.7289351034854},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertClose(t, tt.name, tt.got, tt.want, 1e-9)
		})
	}
}

func TestVarY_IsSquaredTangent(t *testing.T) {
	jc := refCentury(t)
	half := math.Tan(DegToRad(ObliquityCorrected(jc) / 2))
	assertClose(t, "VarY", VarY(jc), half*half, 0)
}

func TestEvents(t *testing.T) {
	jc := refCentury(t)

	ev, err := Events(jc, refLat, refLon, refTZ)
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	assertClose(t, "Sunrise", ev.Sunrise, 0.306813079725367, 1e-9)
	assertClose(t, "SolarNoon", ev.SolarNoon, 0.5022050710807439, 1e-9)
	assertClose(t, "Sunset", ev.Sunset, 0.6975970624361207, 1e-9)
	assertClose(t, "DaylightMinutes", ev.DaylightMinutes, 562.7289351034854, 1e-9)

	if ev.Sunrise >= ev.SolarNoon || ev.SolarNoon >= ev.Sunset {
		t.Errorf("events out of order: %+v", ev)
	}
}

func TestPolarDays(t *testing.T) {
	summer, _ := JulianCentury(time.Date(2023, 6, 21, 0, 0, 0, 0, time.UTC))
	winter, _ := JulianCentury(time.Date(2023, 12, 21, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name    string
		jc      float64
		lat     float64
		wantErr error
	}{
		{"arctic midsummer", summer, 80, ErrPolarDay},
		{"arctic midwinter", winter, 80, ErrPolarNight},
		{"antarctic midsummer", winter, -80, ErrPolarDay},
		{"antarctic midwinter", summer, -80, ErrPolarNight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ha := HourAngleSunrise(tt.jc, tt.lat); !math.IsNaN(ha) {
				t.Errorf("HourAngleSunrise() = %v, want NaN", ha)
			}

			_, err := SunriseHourAngle(tt.jc, tt.lat)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SunriseHourAngle() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrNoSunriseSunset) {
				t.Errorf("SunriseHourAngle() error = %v should wrap ErrNoSunriseSunset", err)
			}

			ev, err := Events(tt.jc, tt.lat, 0, 0)
			if !errors.Is(err, ErrNoSunriseSunset) {
				t.Errorf("Events() error = %v, want ErrNoSunriseSunset", err)
			}
			if ev.SolarNoon <= 0.45 || ev.SolarNoon >= 0.55 {
				t.Errorf("Events() solar noon = %v, want near 0.5", ev.SolarNoon)
			}
		})
	}
}

func TestSunriseHourAngle_MatchesUnchecked(t *testing.T) {
	jc := refCentury(t)
	got, err := SunriseHourAngle(jc, refLat)
	if err != nil {
		t.Fatalf("SunriseHourAngle() error = %v", err)
	}
	assertClose(t, "SunriseHourAngle", got, HourAngleSunrise(jc, refLat), 0)
}
