package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-devas/internal/chart"
	"github.com/litescript/ls-devas/internal/devas"
	"github.com/litescript/ls-devas/internal/state"
)

const ruleWidth = 78

// ChartRow represents one row in the chart table.
type ChartRow struct {
	Body       string
	Longitude  string
	Sign       string
	Nakshatra  string
	Pada       int
	Navamsa    string
	Speed      float64
	Retrograde bool
}

// GenerateChartRows creates table rows from a chart. With tropical set the
// longitude and sign columns use the tropical zodiac; nakshatra and navamsa
// are always sidereal.
func GenerateChartRows(c *chart.Chart, tropical bool) []ChartRow {
	if c == nil {
		return nil
	}

	rows := make([]ChartRow, 0, len(c.Positions))
	for _, p := range c.Positions {
		lon := p.Sidereal
		if tropical {
			lon = p.Tropical
		}
		rows = append(rows, ChartRow{
			Body:       BodyName(p.Body),
			Longitude:  FormatLongitude(lon),
			Sign:       chart.SignNames[chart.SignOf(lon)],
			Nakshatra:  chart.NakshatraNames[p.Nakshatra],
			Pada:       p.Pada,
			Navamsa:    chart.SignNames[p.Navamsa],
			Speed:      p.Speed,
			Retrograde: p.Retrograde,
		})
	}
	return rows
}

// ZodiacLabel names the zodiac a table is drawn in.
func ZodiacLabel(tropical bool) string {
	if tropical {
		return "tropical"
	}
	return "sidereal"
}

// WriteChartTable writes a text table of the chart to the given writer.
func WriteChartTable(w io.Writer, c *chart.Chart, tropical bool) {
	if c == nil {
		fmt.Fprintln(w, "No chart")
		return
	}

	fmt.Fprintf(w, "Chart @ %s  JD %.6f\n", c.Time.Format(time.RFC3339), c.JD)
	fmt.Fprintf(w, "%s zodiac, ayanamsa %s, %s ephemeris\n",
		ZodiacLabel(tropical), FormatDMS(c.Ayanamsa), c.Provider)
	if o := c.Observer; o != nil {
		name := o.Name
		if name == "" {
			name = "Observer"
		}
		fmt.Fprintf(w, "%s at %.4f, %.4f\n", name, o.LatDeg, o.LonDeg)
	}
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	// Header
	fmt.Fprintf(w, "%-8s %-15s %-11s %-17s %-4s %-11s %9s\n",
		"Body", "Longitude", "Sign", "Nakshatra", "Pada", "Navamsa", "Speed")
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	// Rows
	for _, r := range GenerateChartRows(c, tropical) {
		retro := ""
		if r.Retrograde {
			retro = " R"
		}
		fmt.Fprintf(w, "%-8s %-15s %-11s %-17s %-4d %-11s %+9.4f%s\n",
			r.Body,
			r.Longitude,
			truncateStr(r.Sign, 11),
			truncateStr(r.Nakshatra, 17),
			r.Pada,
			truncateStr(r.Navamsa, 11),
			r.Speed,
			retro,
		)
	}
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	if a := c.Ascendant; a != nil {
		lon := a.Sidereal
		if tropical {
			lon = a.Tropical
		}
		fmt.Fprintf(w, "Ascendant   %s  %s pada %d\n",
			FormatLongitude(lon), chart.NakshatraNames[a.Nakshatra], a.Pada)
	}
	fmt.Fprintf(w, "Phase       %s paksha, tithi %d, elongation %.2f°\n",
		c.Phase.Paksha, c.Phase.Tithi, c.Phase.Elongation)
	fmt.Fprintf(w, "Atmakaraka  %s, karakamsa %s, 12th %s, ishta %s\n",
		BodyName(c.Atmakaraka),
		chart.SignNames[c.Karakamsa],
		chart.SignNames[c.TwelfthSign],
		BodyName(c.IshtaPlanet))
}

// WriteReading writes a deva reading as plain text.
func WriteReading(w io.Writer, r *devas.Reading) {
	if r == nil {
		return
	}

	title := "Deva reading"
	if r.Name != "" {
		title += " for " + r.Name
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	fmt.Fprintf(w, "%-15s %s\n", "Atmakaraka:", BodyName(r.Atmakaraka))
	fmt.Fprintf(w, "%-15s %s\n", "Karakamsa:", chart.SignNames[r.Karakamsa])
	fmt.Fprintf(w, "%-15s %s\n", "12th sign:", chart.SignNames[r.TwelfthSign])
	fmt.Fprintf(w, "%-15s %s\n", "Ishta planet:", BodyName(r.IshtaPlanet))
	fmt.Fprintf(w, "%-15s %s\n", "Ishta devata:", r.IshtaDeva)
	if r.IshtaText != "" {
		fmt.Fprintf(w, "\n%s\n", r.IshtaText)
	}

	fmt.Fprintf(w, "\n%-15s %s (%d)\n", "Aditya:", r.Aditya.Name, r.AdityaIndex+1)
	if r.Aditya.Description != "" {
		fmt.Fprintf(w, "\n%s\n", r.Aditya.Description)
	}

	if r.MoonNakshatra != "" {
		fmt.Fprintf(w, "\n%-15s %s, ruled by %s\n", "Moon nakshatra:", r.MoonNakshatra, r.NakshatraDeity)
	}
}

// DescribeEvent renders the change carried by an event.
func DescribeEvent(e state.Event) string {
	switch e.Type {
	case state.EventSignIngress:
		return fmt.Sprintf("%s → %s", signName(e.From), signName(e.To))
	case state.EventNakshatraChange:
		return fmt.Sprintf("%s → %s", nakshatraName(e.From), nakshatraName(e.To))
	case state.EventRetrogradeStation:
		return fmt.Sprintf("turns retrograde (%+.4f°/day)", e.Speed)
	case state.EventDirectStation:
		return fmt.Sprintf("turns direct (%+.4f°/day)", e.Speed)
	case state.EventPakshaChange:
		return fmt.Sprintf("%s → %s", chart.Paksha(e.From), chart.Paksha(e.To))
	default:
		return string(e.Type)
	}
}

// WriteEvents writes one line per event, oldest first.
func WriteEvents(w io.Writer, events []state.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}
	for _, e := range events {
		fmt.Fprintf(w, "%s  %-18s %-8s %s\n",
			e.Timestamp.UTC().Format("2006-01-02 15:04 MST"),
			e.Type,
			BodyName(e.Body),
			DescribeEvent(e),
		)
	}
}

func signName(i int) string {
	if i < 0 || i >= len(chart.SignNames) {
		return "?"
	}
	return chart.SignNames[i]
}

func nakshatraName(i int) string {
	if i < 0 || i >= len(chart.NakshatraNames) {
		return "?"
	}
	return chart.NakshatraNames[i]
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
