// Package report renders charts, deva readings and chart events for the
// headless CLI modes.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/litescript/ls-devas/internal/astro"
	"github.com/litescript/ls-devas/internal/chart"
	"github.com/litescript/ls-devas/internal/devas"
	"github.com/litescript/ls-devas/internal/ephem"
)

// ChartExport is the JSON-serializable representation of a chart.
type ChartExport struct {
	Time        time.Time        `json:"time"`
	JD          float64          `json:"jd"`
	D           float64          `json:"d"`
	Ayanamsa    float64          `json:"ayanamsa"`
	Provider    string           `json:"provider"`
	Observer    *astro.Observer  `json:"observer,omitempty"`
	Bodies      []BodyExport     `json:"bodies"`
	Ascendant   *AscendantExport `json:"ascendant,omitempty"`
	Phase       PhaseExport      `json:"phase"`
	Atmakaraka  string           `json:"atmakaraka"`
	Karakamsa   string           `json:"karakamsa"`
	TwelfthSign string           `json:"twelfth_sign"`
	IshtaPlanet string           `json:"ishta_planet"`
	Reading     *devas.Reading   `json:"reading,omitempty"`
}

// BodyExport is a JSON-friendly body position with names resolved.
type BodyExport struct {
	Body           string  `json:"body"`
	Sanskrit       string  `json:"sanskrit"`
	Tropical       float64 `json:"tropical"`
	Sidereal       float64 `json:"sidereal"`
	Speed          float64 `json:"speed_deg_per_day"`
	Retrograde     bool    `json:"retrograde"`
	Sign           string  `json:"sign"`
	SignIndex      int     `json:"sign_index"`
	SignDegree     float64 `json:"sign_degree"`
	DMS            string  `json:"dms"`
	Nakshatra      string  `json:"nakshatra"`
	NakshatraIndex int     `json:"nakshatra_index"`
	Pada           int     `json:"pada"`
	Navamsa        string  `json:"navamsa"`
	NavamsaIndex   int     `json:"navamsa_index"`
}

// AscendantExport is a JSON-friendly ascendant.
type AscendantExport struct {
	Tropical  float64 `json:"tropical"`
	Sidereal  float64 `json:"sidereal"`
	Sign      string  `json:"sign"`
	Nakshatra string  `json:"nakshatra"`
	Pada      int     `json:"pada"`
}

// PhaseExport is a JSON-friendly lunar phase.
type PhaseExport struct {
	Elongation float64 `json:"elongation"`
	Paksha     string  `json:"paksha"`
	Tithi      int     `json:"tithi"`
}

// ExportChart converts a chart to an exportable format. The reading is
// optional.
func ExportChart(c *chart.Chart, r *devas.Reading) *ChartExport {
	if c == nil {
		return &ChartExport{}
	}

	export := &ChartExport{
		Time:        c.Time,
		JD:          c.JD,
		D:           c.D,
		Ayanamsa:    c.Ayanamsa,
		Provider:    c.Provider,
		Observer:    c.Observer,
		Atmakaraka:  BodyName(c.Atmakaraka),
		Karakamsa:   chart.SignNames[c.Karakamsa],
		TwelfthSign: chart.SignNames[c.TwelfthSign],
		IshtaPlanet: BodyName(c.IshtaPlanet),
		Phase: PhaseExport{
			Elongation: c.Phase.Elongation,
			Paksha:     c.Phase.Paksha.String(),
			Tithi:      c.Phase.Tithi,
		},
		Reading: r,
	}

	for _, p := range c.Positions {
		export.Bodies = append(export.Bodies, BodyExport{
			Body:           BodyName(p.Body),
			Sanskrit:       ephem.BodiesByID[p.Body].Sanskrit,
			Tropical:       p.Tropical,
			Sidereal:       p.Sidereal,
			Speed:          p.Speed,
			Retrograde:     p.Retrograde,
			Sign:           chart.SignNames[p.Sign],
			SignIndex:      p.Sign,
			SignDegree:     p.SignDegree,
			DMS:            FormatDMS(p.SignDegree),
			Nakshatra:      chart.NakshatraNames[p.Nakshatra],
			NakshatraIndex: p.Nakshatra,
			Pada:           p.Pada,
			Navamsa:        chart.SignNames[p.Navamsa],
			NavamsaIndex:   p.Navamsa,
		})
	}

	if a := c.Ascendant; a != nil {
		export.Ascendant = &AscendantExport{
			Tropical:  a.Tropical,
			Sidereal:  a.Sidereal,
			Sign:      chart.SignNames[a.Sign],
			Nakshatra: chart.NakshatraNames[a.Nakshatra],
			Pada:      a.Pada,
		}
	}

	return export
}

// WriteJSON writes the export as indented JSON to the given writer.
func (e *ChartExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// BodyName returns the display name of a body.
func BodyName(b astro.Body) string {
	if info, ok := ephem.BodiesByID[b]; ok {
		return info.Name
	}
	return b.String()
}

// FormatDMS formats degrees as 12°34'56", truncating so a value just short
// of a boundary never reads as the boundary itself.
func FormatDMS(deg float64) string {
	sign := ""
	if deg < 0 {
		sign = "-"
		deg = -deg
	}
	total := int(math.Floor(deg * 3600))
	return fmt.Sprintf("%s%d°%02d'%02d\"", sign, total/3600, total/60%60, total%60)
}

// FormatLongitude formats a longitude as degrees within its sign plus a
// three-letter sign abbreviation, e.g. 29°57'18" Pis.
func FormatLongitude(lon float64) string {
	return FormatDMS(chart.SignDegree(lon)) + " " + chart.SignNames[chart.SignOf(lon)][:3]
}
