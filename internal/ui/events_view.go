package ui

import (
	"fmt"
	"strings"

	"github.com/litescript/ls-devas/internal/report"
	"github.com/litescript/ls-devas/internal/state"
)

// EventsModel lists the chart events seen this session, newest first.
type EventsModel struct {
	width    int
	height   int
	snapshot state.Snapshot
}

// NewEventsModel creates a new events view model.
func NewEventsModel() EventsModel {
	return EventsModel{}
}

// SetSize updates the viewport size.
func (m EventsModel) SetSize(width, height int) EventsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m EventsModel) UpdateData(snapshot state.Snapshot) EventsModel {
	m.snapshot = snapshot
	return m
}

// View renders the event log.
func (m EventsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Events"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d recorded", len(m.snapshot.Events))))
	b.WriteString("\n\n")

	if len(m.snapshot.Events) == 0 {
		b.WriteString(dimStyle.Render("No ingresses, stations or paksha changes yet. Step the time with ←/→."))
		b.WriteString("\n")
		return b.String()
	}

	rows := m.height - 3
	if rows < 1 {
		rows = len(m.snapshot.Events)
	}

	for i := len(m.snapshot.Events) - 1; i >= 0 && rows > 0; i-- {
		e := m.snapshot.Events[i]
		b.WriteString(dimStyle.Render(e.Timestamp.UTC().Format("2006-01-02 15:04")))
		b.WriteString("  ")
		b.WriteString(accentStyle.Render(fmt.Sprintf("%-18s", e.Type)))
		b.WriteString(" ")
		b.WriteString(valueStyle.Render(fmt.Sprintf("%-8s %s", report.BodyName(e.Body), report.DescribeEvent(e))))
		b.WriteString("\n")
		rows--
	}

	return b.String()
}
