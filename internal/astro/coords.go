// Package astro implements the NOAA solar position algorithm: Julian dates,
// the Sun's orbital and apparent coordinates, the equation of time, daily
// events and the horizontal position of the Sun for an observer.
package astro

// AU is the Astronomical Unit in kilometers.
const AU = 149597870.7

// SkyCoord is the Sun's position for an observer at one moment, with both
// equatorial (RA/Dec) and horizontal (Az/El) components.
type SkyCoord struct {
	// Equatorial coordinates (apparent, of date)
	RAdeg  float64 // Right Ascension in degrees (0-360)
	DecDeg float64 // Declination in degrees (-90 to +90)

	// Horizontal coordinates (observer-relative)
	AzDeg          float64 // Azimuth in degrees (0=N, 90=E, 180=S, 270=W)
	ElDeg          float64 // Apparent elevation, corrected for refraction
	GeometricElDeg float64 // Elevation without refraction
	ZenithDeg      float64
	RefractionDeg  float64
	HourAngleDeg   float64 // Negative before solar noon

	DistanceAU float64
}

// DistanceKm returns the Earth-Sun distance in kilometers.
func (c SkyCoord) DistanceKm() float64 {
	return c.DistanceAU * AU
}

// AboveHorizon reports whether the Sun's apparent centre is above the horizon.
func (c SkyCoord) AboveHorizon() bool {
	return c.ElDeg > 0
}

// Site represents a ground-based observer location and its clock.
type Site struct {
	LatDeg    float64 // Latitude in degrees (north positive)
	LonDeg    float64 // Longitude in degrees (east positive)
	UTCOffset float64 // Hours east of UTC
	Name      string  // Optional name for the site
}

// Position computes the Sun's position for a site at timeOfDay (fraction
// of the day in the site's standard time) on the day of Julian century jc.
func Position(jc, timeOfDay float64, site Site) SkyCoord {
	decl := SunDeclination(jc)
	ha := HourAngle(jc, timeOfDay, site.LonDeg, site.UTCOffset)
	zenith := SolarZenithAngle(jc, timeOfDay, site.LatDeg, site.LonDeg, site.UTCOffset)
	elevation := 90 - zenith
	refraction := AtmosphericRefraction(elevation)

	return SkyCoord{
		RAdeg:          FlooredMod(SunRightAscension(jc), 360),
		DecDeg:         decl,
		AzDeg:          azimuthFrom(site.LatDeg, decl, zenith, ha),
		ElDeg:          elevation + refraction,
		GeometricElDeg: elevation,
		ZenithDeg:      zenith,
		RefractionDeg:  refraction,
		HourAngleDeg:   ha,
		DistanceAU:     SunRadiusVector(jc),
	}
}
