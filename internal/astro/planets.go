package astro

import "math"

// Element is an orbital element as a value at J2000 plus a linear rate per day.
type Element struct {
	At0  float64
	Rate float64
}

// At evaluates the element at day number d.
func (e Element) At(d float64) float64 {
	return e.At0 + e.Rate*d
}

// OrbitalElements are the heliocentric elements of one planet.
// Angles in degrees, A in AU.
type OrbitalElements struct {
	N Element // longitude of the ascending node
	I Element // inclination
	W Element // argument of perihelion
	A float64 // semi-major axis
	E Element // eccentricity
	M Element // mean anomaly
}

// planetElements is never mutated; Elements hands out copies.
var planetElements = map[Body]OrbitalElements{
	Mercury: {
		N: Element{48.3313, 3.24587e-5},
		I: Element{7.0047, 5.00e-8},
		W: Element{29.1241, 1.01444e-5},
		A: 0.387098,
		E: Element{0.205635, 5.59e-10},
		M: Element{168.6562, 4.0923344368},
	},
	Venus: {
		N: Element{76.6799, 2.46590e-5},
		I: Element{3.3946, 2.75e-8},
		W: Element{54.8910, 1.38374e-5},
		A: 0.723330,
		E: Element{0.006773, -1.302e-9},
		M: Element{48.0052, 1.6021302244},
	},
	Mars: {
		N: Element{49.5574, 2.11081e-5},
		I: Element{1.8497, -1.78e-8},
		W: Element{286.5016, 2.92961e-5},
		A: 1.523688,
		E: Element{0.093405, 2.516e-9},
		M: Element{18.6021, 0.5240207766},
	},
	Jupiter: {
		N: Element{100.4542, 2.76854e-5},
		I: Element{1.3030, -1.557e-7},
		W: Element{273.8777, 1.64505e-5},
		A: 5.20256,
		E: Element{0.048498, 4.469e-9},
		M: Element{19.8950, 0.0830853001},
	},
	Saturn: {
		N: Element{113.6634, 2.38980e-5},
		I: Element{2.4886, -1.081e-7},
		W: Element{339.3939, 2.97661e-5},
		A: 9.55475,
		E: Element{0.055546, -9.499e-9},
		M: Element{316.9670, 0.0334442282},
	},
}

// Elements returns the orbital elements of a planet. Only Mercury through
// Saturn have elements.
func Elements(b Body) (OrbitalElements, bool) {
	el, ok := planetElements[b]
	return el, ok
}

// Kepler solver bounds. The cap and tolerance fix the output values; do not
// tighten them.
const (
	keplerMaxIter = 5
	keplerTolDeg  = 0.001
)

// eccentricAnomaly solves E - e·sin(E) = M for E, in degrees, starting
// from the one-step equation-of-center estimate.
func eccentricAnomaly(M, e float64) float64 {
	E := M + radToDeg(e*sinDeg(M)*(1+e*cosDeg(M)))
	for i := 0; i < keplerMaxIter; i++ {
		prev := E
		E = prev - (prev-radToDeg(e*sinDeg(prev))-M)/(1-e*cosDeg(prev))
		if math.Abs(E-prev) < keplerTolDeg {
			break
		}
	}
	return E
}

// Heliocentric returns the heliocentric ecliptic position of a planet at
// day number d.
func (el OrbitalElements) Heliocentric(d float64) Vec3 {
	N := el.N.At(d)
	i := el.I.At(d)
	w := el.W.At(d)
	e := el.E.At(d)
	M := Rev(el.M.At(d))

	E := eccentricAnomaly(M, e)

	// Orbital plane
	xv := el.A * (cosDeg(E) - e)
	yv := el.A * math.Sqrt(1-e*e) * sinDeg(E)
	v := radToDeg(math.Atan2(yv, xv))
	r := math.Sqrt(xv*xv + yv*yv)

	return orbitToEcliptic(r, v, N, i, w)
}

// PlanetLongitude returns the geocentric tropical longitude of Mercury,
// Venus, Mars, Jupiter or Saturn at day number d.
func PlanetLongitude(d float64, b Body) (float64, error) {
	el, ok := Elements(b)
	if !ok {
		return 0, &InvalidBodyError{Name: b.String()}
	}
	// z is carried along but the longitude only needs x and y
	geo := el.Heliocentric(d).Add(earthVector(d))
	return geo.Longitude(), nil
}
