package devas

import (
	"github.com/litescript/ls-devas/internal/astro"
	"github.com/litescript/ls-devas/internal/chart"
)

// Reading is the deva mapping for one chart.
type Reading struct {
	Name string `json:"name,omitempty"`

	Atmakaraka  astro.Body `json:"atmakaraka"`
	Karakamsa   int        `json:"karakamsa"`
	TwelfthSign int        `json:"twelfth_sign"`

	IshtaPlanet astro.Body `json:"ishta_planet"`
	IshtaDeva   string     `json:"ishta_deva"`
	IshtaText   string     `json:"ishta_text"`

	AdityaIndex int    `json:"aditya_index"`
	Aditya      Aditya `json:"aditya"`

	MoonNakshatra  string `json:"moon_nakshatra"`
	NakshatraDeity string `json:"nakshatra_deity"`
}

// NewReading maps a chart to its devas using the embedded tables.
func NewReading(c *chart.Chart, name string) (*Reading, error) {
	t, err := Load()
	if err != nil {
		return nil, err
	}
	return t.Reading(c, name)
}

// Reading maps a chart to its devas.
func (t *Tables) Reading(c *chart.Chart, name string) (*Reading, error) {
	deva, err := t.Deity(c.IshtaPlanet)
	if err != nil {
		return nil, err
	}
	aditya, err := t.Aditya(c.AdityaIndex)
	if err != nil {
		return nil, err
	}

	r := &Reading{
		Name:        name,
		Atmakaraka:  c.Atmakaraka,
		Karakamsa:   c.Karakamsa,
		TwelfthSign: c.TwelfthSign,
		IshtaPlanet: c.IshtaPlanet,
		IshtaDeva:   deva,
		IshtaText:   t.Description(deva),
		AdityaIndex: c.AdityaIndex,
		Aditya:      aditya,
	}
	if moon, ok := c.Position(astro.Moon); ok {
		r.MoonNakshatra = chart.NakshatraNames[moon.Nakshatra]
		r.NakshatraDeity = t.NakshatraDeity(moon.Nakshatra)
	}
	return r, nil
}
