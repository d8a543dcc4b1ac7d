// Package chart assembles body positions into a chart and derives the
// sign, nakshatra and deva keys read from it.
package chart

import (
	"fmt"
	"time"

	"github.com/litescript/ls-devas/internal/astro"
	"github.com/litescript/ls-devas/internal/ephem"
)

// Position is one body in a chart. Sign, nakshatra and navamsa are sidereal.
// The karaka keys on Chart are read from Tropical instead.
type Position struct {
	Body       astro.Body `json:"body"`
	Tropical   float64    `json:"tropical"`
	Sidereal   float64    `json:"sidereal"`
	Speed      float64    `json:"speed"`
	Retrograde bool       `json:"retrograde"`
	Sign       int        `json:"sign"`
	SignDegree float64    `json:"sign_degree"`
	Nakshatra  int        `json:"nakshatra"`
	Pada       int        `json:"pada"`
	Navamsa    int        `json:"navamsa"`
}

// Ascendant is the rising point for an observer.
type Ascendant struct {
	Tropical  float64 `json:"tropical"`
	Sidereal  float64 `json:"sidereal"`
	Sign      int     `json:"sign"`
	Nakshatra int     `json:"nakshatra"`
	Pada      int     `json:"pada"`
}

// Chart is every derived fact for one instant. All fields come from the same
// computation; a Chart is never updated in place.
type Chart struct {
	Time     time.Time       `json:"time"`
	JD       float64         `json:"jd"`
	D        float64         `json:"d"`
	Ayanamsa float64         `json:"ayanamsa"`
	Provider string          `json:"provider"`
	Observer *astro.Observer `json:"observer,omitempty"`

	Positions []Position `json:"positions"` // canonical body order
	Ascendant *Ascendant `json:"ascendant,omitempty"`
	Phase     Phase      `json:"phase"`

	// Karaka keys, from tropical longitudes
	Atmakaraka  astro.Body `json:"atmakaraka"`
	Karakamsa   int        `json:"karakamsa"`
	TwelfthSign int        `json:"twelfth_sign"`
	IshtaPlanet astro.Body `json:"ishta_planet"`
	AdityaIndex int        `json:"aditya_index"`
}

// Position returns the entry for body b.
func (c *Chart) Position(b astro.Body) (Position, bool) {
	for _, p := range c.Positions {
		if p.Body == b {
			return p, true
		}
	}
	return Position{}, false
}

// At computes the chart for a Go instant.
func At(p ephem.Provider, t time.Time, obs *astro.Observer) (*Chart, error) {
	c, err := Compute(p, astro.JulianDateOf(t), obs)
	if err != nil {
		return nil, err
	}
	c.Time = t.UTC()
	return c, nil
}

// Compute builds the chart for Julian Date jd. The observer is optional;
// without one the ascendant is omitted.
func Compute(p ephem.Provider, jd float64, obs *astro.Observer) (*Chart, error) {
	if obs != nil {
		if err := obs.Validate(); err != nil {
			return nil, err
		}
	}

	d := astro.DaysSinceJ2000(jd)
	c := &Chart{
		Time:      astro.TimeOf(jd),
		JD:        jd,
		D:         d,
		Ayanamsa:  astro.Ayanamsa(jd),
		Provider:  p.Name(),
		Positions: make([]Position, 0, len(astro.Bodies)),
	}

	for _, b := range astro.Bodies {
		pos, err := position(p, d, jd, b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b, err)
		}
		c.Positions = append(c.Positions, pos)
	}

	if obs != nil {
		o := *obs
		c.Observer = &o
		trop, err := astro.Ascendant(jd, obs.LatDeg, obs.LonDeg)
		if err != nil {
			return nil, err
		}
		sid := astro.Sidereal(trop, jd)
		nak, pada := NakshatraOf(sid)
		c.Ascendant = &Ascendant{
			Tropical:  trop,
			Sidereal:  sid,
			Sign:      SignOf(sid),
			Nakshatra: nak,
			Pada:      pada,
		}
	}

	sun := c.Positions[astro.Sun]
	moon := c.Positions[astro.Moon]
	c.Phase = PhaseOf(sun.Tropical, moon.Tropical)

	c.Atmakaraka = Atmakaraka(c.Positions)
	c.Karakamsa = KarakaNavamsa(c.Positions[c.Atmakaraka])
	c.TwelfthSign = (c.Karakamsa + 11) % 12
	c.IshtaPlanet = IshtaPlanet(c.Positions, c.TwelfthSign)
	c.AdityaIndex = sun.Sign

	return c, nil
}

func position(p ephem.Provider, d, jd float64, b astro.Body) (Position, error) {
	trop, err := p.Longitude(d, b)
	if err != nil {
		return Position{}, err
	}
	speed, retro, err := p.Speed(d, b)
	if err != nil {
		return Position{}, err
	}
	sid := astro.Sidereal(trop, jd)
	nak, pada := NakshatraOf(sid)
	return Position{
		Body:       b,
		Tropical:   trop,
		Sidereal:   sid,
		Speed:      speed,
		Retrograde: retro,
		Sign:       SignOf(sid),
		SignDegree: SignDegree(sid),
		Nakshatra:  nak,
		Pada:       pada,
		Navamsa:    NavamsaOf(sid),
	}, nil
}
