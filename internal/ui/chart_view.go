package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-devas/internal/astro"
	"github.com/litescript/ls-devas/internal/chart"
	"github.com/litescript/ls-devas/internal/ephem"
	"github.com/litescript/ls-devas/internal/report"
	"github.com/litescript/ls-devas/internal/state"
)

// ChartViewModel is the positions table.
type ChartViewModel struct {
	width    int
	height   int
	cursor   int
	tropical bool
	snapshot state.Snapshot
	keys     keyMap
}

// NewChartViewModel creates a new chart view model.
func NewChartViewModel() ChartViewModel {
	return ChartViewModel{keys: defaultKeyMap()}
}

// SetSize updates the viewport size.
func (m ChartViewModel) SetSize(width, height int) ChartViewModel {
	m.width = width
	m.height = height
	return m
}

// SetTropical switches the longitude columns between zodiacs.
func (m ChartViewModel) SetTropical(tropical bool) ChartViewModel {
	m.tropical = tropical
	return m
}

// UpdateData updates the model with new data.
func (m ChartViewModel) UpdateData(snapshot state.Snapshot) ChartViewModel {
	m.snapshot = snapshot
	return m
}

// Selected returns the body under the cursor.
func (m ChartViewModel) Selected() astro.Body {
	return astro.Bodies[m.cursor]
}

// Update handles messages.
func (m ChartViewModel) Update(msg tea.Msg) (ChartViewModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(astro.Bodies)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

// View renders the chart table.
func (m ChartViewModel) View() string {
	c := m.snapshot.Chart
	if c == nil {
		return "Computing chart...\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Chart  %s", c.Time.Format("2006-01-02 15:04:05 MST"))))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  JD %.5f  ayanamsa %s  %s",
		c.JD, report.FormatDMS(c.Ayanamsa), report.ZodiacLabel(m.tropical))))
	b.WriteString("\n\n")

	header := fmt.Sprintf(" %-2s %-8s %-8s %-15s %-11s %-17s %-4s %-11s %9s ",
		"", "Body", "Graha", "Longitude", "Sign", "Nakshatra", "Pada", "Navamsa", "°/day")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for i, p := range c.Positions {
		b.WriteString(m.renderRow(i, p))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderSummary(c))
	return b.String()
}

func (m ChartViewModel) renderRow(i int, p chart.Position) string {
	info := ephem.BodiesByID[p.Body]
	lon := p.Sidereal
	if m.tropical {
		lon = p.Tropical
	}

	speed := fmt.Sprintf("%+9.4f", p.Speed)
	if p.Retrograde {
		speed = retroStyle.Render(speed + " R")
	}

	row := fmt.Sprintf(" %-2s %-8s %-8s %-15s %-11s %-17s %-4d %-11s ",
		info.Glyph,
		info.Name,
		info.Sanskrit,
		report.FormatLongitude(lon),
		chart.SignNames[chart.SignOf(lon)],
		chart.NakshatraNames[p.Nakshatra],
		p.Pada,
		chart.SignNames[p.Navamsa],
	)
	if i == m.cursor {
		return selectedRowStyle.Render(row) + speed
	}
	return rowStyle.Render(row) + speed
}

func (m ChartViewModel) renderSummary(c *chart.Chart) string {
	var b strings.Builder

	if a := c.Ascendant; a != nil {
		lon := a.Sidereal
		if m.tropical {
			lon = a.Tropical
		}
		b.WriteString(labelStyle.Render("Ascendant"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%s  %s pada %d",
			report.FormatLongitude(lon), chart.NakshatraNames[a.Nakshatra], a.Pada)))
		b.WriteString("\n")
	} else {
		b.WriteString(labelStyle.Render("Ascendant"))
		b.WriteString(dimStyle.Render("set an observer for the rising sign"))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("Phase"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%s paksha, tithi %d (%.1f°)",
		c.Phase.Paksha, c.Phase.Tithi, c.Phase.Elongation)))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Atmakaraka"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%s → karakamsa %s, 12th %s, ishta %s",
		report.BodyName(c.Atmakaraka),
		chart.SignNames[c.Karakamsa],
		chart.SignNames[c.TwelfthSign],
		report.BodyName(c.IshtaPlanet))))
	b.WriteString("\n")

	return b.String()
}
