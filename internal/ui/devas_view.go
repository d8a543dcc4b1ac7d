package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-devas/internal/chart"
	"github.com/litescript/ls-devas/internal/devas"
	"github.com/litescript/ls-devas/internal/report"
	"github.com/litescript/ls-devas/internal/state"
)

// DevasModel shows the deva reading for the current chart.
type DevasModel struct {
	width    int
	height   int
	name     string
	tables   *devas.Tables
	snapshot state.Snapshot
}

// NewDevasModel creates a new devas view model. A nil table set falls back
// to the embedded one.
func NewDevasModel(tables *devas.Tables, name string) DevasModel {
	return DevasModel{tables: tables, name: name}
}

// SetSize updates the viewport size.
func (m DevasModel) SetSize(width, height int) DevasModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m DevasModel) UpdateData(snapshot state.Snapshot) DevasModel {
	m.snapshot = snapshot
	return m
}

// View renders the reading.
func (m DevasModel) View() string {
	c := m.snapshot.Chart
	if c == nil {
		return "Computing chart...\n"
	}

	tables := m.tables
	if tables == nil {
		var err error
		if tables, err = devas.Load(); err != nil {
			return errorStyle.Render("Deva tables: " + err.Error())
		}
	}
	r, err := tables.Reading(c, m.name)
	if err != nil {
		return errorStyle.Render("Reading: " + err.Error())
	}

	textWidth := m.width - 4
	if textWidth < 20 {
		textWidth = 20
	}
	text := lipgloss.NewStyle().Width(textWidth).Foreground(lipgloss.Color("252"))

	var b strings.Builder

	title := "Deva reading"
	if r.Name != "" {
		title += " for " + r.Name
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("Atmakaraka", report.BodyName(r.Atmakaraka))
	row("Karakamsa", fmt.Sprintf("%s (%s)", chart.SignNames[r.Karakamsa], tables.Rashi(r.Karakamsa)))
	row("12th sign", fmt.Sprintf("%s (%s)", chart.SignNames[r.TwelfthSign], tables.Rashi(r.TwelfthSign)))
	row("Ishta planet", report.BodyName(r.IshtaPlanet))
	row("Ishta devata", r.IshtaDeva)
	b.WriteString("\n")
	b.WriteString(text.Render(r.IshtaText))
	b.WriteString("\n\n")

	row("Aditya", fmt.Sprintf("%s (%d of 12)", r.Aditya.Name, r.AdityaIndex+1))
	b.WriteString(text.Render(r.Aditya.Description))
	b.WriteString("\n\n")

	if r.MoonNakshatra != "" {
		row("Moon", fmt.Sprintf("%s, ruled by %s", r.MoonNakshatra, r.NakshatraDeity))
	}

	return b.String()
}
