package astro

import "math"

// SunLongitude returns the Sun's tropical geocentric ecliptic longitude in
// degrees for day number d.
// Single-body Kepler model with a one-step equation of center; good to a few
// hundredths of a degree relative to its own element epoch.
func SunLongitude(d float64) float64 {
	// Argument of perihelion and eccentricity drift linearly
	w := 282.9404 + 4.70935e-5*d
	e := 0.016709 - 1.151e-9*d

	// Mean anomaly
	M := Rev(356.0470 + 0.9856002585*d)

	// One-step eccentric anomaly, not iterated
	E := M + radToDeg(e*sinDeg(M)*(1+e*cosDeg(M)))

	// Position in the orbital plane
	xv := cosDeg(E) - e
	yv := sinDeg(E) * math.Sqrt(1-e*e)

	// True anomaly
	v := radToDeg(math.Atan2(yv, xv))

	return Rev(v + w)
}

// earthVector returns the heliocentric direction of the Earth, the unit
// vector toward the Sun's geocentric longitude as used by the planet model.
func earthVector(d float64) Vec3 {
	lon := SunLongitude(d)
	return Vec3{X: cosDeg(lon), Y: sinDeg(lon)}
}
