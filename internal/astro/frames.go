package astro

import (
	"math"
)

// Vec3 represents a 3D vector in heliocentric or geocentric ecliptic
// coordinates, in AU.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Longitude returns the ecliptic longitude of the vector in [0, 360).
func (v Vec3) Longitude() float64 {
	return Rev(radToDeg(math.Atan2(v.Y, v.X)))
}

// orbitToEcliptic rotates a point at true anomaly v and radius r out of the
// orbital plane by the node N, inclination i and perihelion argument w.
// All angles in degrees.
func orbitToEcliptic(r, v, N, i, w float64) Vec3 {
	vw := v + w
	return Vec3{
		X: r * (cosDeg(N)*cosDeg(vw) - sinDeg(N)*sinDeg(vw)*cosDeg(i)),
		Y: r * (sinDeg(N)*cosDeg(vw) + cosDeg(N)*sinDeg(vw)*cosDeg(i)),
		Z: r * sinDeg(vw) * sinDeg(i),
	}
}
