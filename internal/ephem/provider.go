// Package ephem supplies body longitudes and motion to chart assembly.
package ephem

import (
	"fmt"
	"time"

	"github.com/litescript/ls-devas/internal/astro"
)

// Point is one body position at a specific instant.
type Point struct {
	Time       time.Time
	D          float64 // days since J2000
	Longitude  float64 // tropical, degrees
	Speed      float64 // degrees per day
	Retrograde bool
}

// Path is a sampled track of one body over a time range.
type Path struct {
	Body   astro.Body
	Points []Point
	Start  time.Time
	End    time.Time
}

// Provider defines the interface for ephemeris sources.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// Longitude returns the tropical geocentric longitude of a body at day
	// number d, in [0, 360).
	Longitude(d float64, body astro.Body) (float64, error)

	// Speed returns the apparent motion in degrees per day and whether the
	// body is retrograde.
	Speed(d float64, body astro.Body) (float64, bool, error)

	// Available returns true if this provider can supply data for the body.
	Available(body astro.Body) bool
}

// MaxPathPoints bounds the size of a single GetPath call.
const MaxPathPoints = 10000

// GetPath samples a body from start to end inclusive, every step.
func GetPath(p Provider, body astro.Body, start, end time.Time, step time.Duration) (Path, error) {
	if step <= 0 {
		return Path{}, fmt.Errorf("path step must be positive, got %v", step)
	}
	if end.Before(start) {
		return Path{}, fmt.Errorf("path end %v before start %v", end, start)
	}
	if n := end.Sub(start) / step; n >= MaxPathPoints {
		return Path{}, fmt.Errorf("path of %d points exceeds limit %d", n+1, MaxPathPoints)
	}
	if !p.Available(body) {
		return Path{}, &astro.InvalidBodyError{Name: body.String()}
	}

	path := Path{Body: body, Start: start, End: end}
	for t := start; !t.After(end); t = t.Add(step) {
		d := astro.DaysSinceJ2000(astro.JulianDateOf(t))
		lon, err := p.Longitude(d, body)
		if err != nil {
			return Path{}, err
		}
		speed, retro, err := p.Speed(d, body)
		if err != nil {
			return Path{}, err
		}
		path.Points = append(path.Points, Point{
			Time:       t,
			D:          d,
			Longitude:  lon,
			Speed:      speed,
			Retrograde: retro,
		})
	}
	return path, nil
}

// KeplerProvider evaluates the low-order analytic model in package astro.
// It is stateless and safe for concurrent use.
type KeplerProvider struct{}

// NewKeplerProvider creates the default provider.
func NewKeplerProvider() *KeplerProvider {
	return &KeplerProvider{}
}

// Name implements Provider.
func (p *KeplerProvider) Name() string {
	return "Kepler"
}

// Longitude implements Provider.
func (p *KeplerProvider) Longitude(d float64, body astro.Body) (float64, error) {
	return astro.EclipticLongitude(d, body)
}

// Speed implements Provider.
func (p *KeplerProvider) Speed(d float64, body astro.Body) (float64, bool, error) {
	return astro.Speed(d, body)
}

// Available implements Provider.
func (p *KeplerProvider) Available(body astro.Body) bool {
	return body.Valid()
}
