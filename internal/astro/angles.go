// Package astro provides the low-order ephemeris used to cast charts:
// Julian dates, Sun/Moon/planet longitudes, ayanamsa and the ascendant.
package astro

import "math"

// Rev normalizes an angle in degrees to [0, 360).
func Rev(a float64) float64 {
	r := a - math.Floor(a/360)*360
	// a tiny negative input rounds up to exactly 360
	if r >= 360 {
		r = 0
	}
	return r
}

// Wrap180 maps an angle difference onto [-180, 180) so that differences
// across the 0/360 seam come out as the short way round.
func Wrap180(a float64) float64 {
	return Rev(a+180) - 180
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * (180 / math.Pi)
}

func sinDeg(deg float64) float64 { return math.Sin(degToRad(deg)) }

func cosDeg(deg float64) float64 { return math.Cos(degToRad(deg)) }
