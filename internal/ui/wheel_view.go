package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-devas/internal/astro"
	"github.com/litescript/ls-devas/internal/chart"
	"github.com/litescript/ls-devas/internal/ephem"
	"github.com/litescript/ls-devas/internal/report"
	"github.com/litescript/ls-devas/internal/state"
)

// cellKind selects the style a canvas cell renders with.
type cellKind int

const (
	cellEmpty cellKind = iota
	cellRing
	cellCusp
	cellSign
	cellBody
	cellRetro
	cellFocus
	cellAsc
)

type cell struct {
	r    rune
	kind cellKind
}

// WheelModel draws the chart as a zodiac ring with the bodies inside it.
// The ascendant, or 0° of the first sign without an observer, sits at the
// left and longitude runs counter-clockwise.
type WheelModel struct {
	width    int
	height   int
	tropical bool
	selected astro.Body
	snapshot state.Snapshot

	// Mean motion of the selected body between the last two charts
	stepSpeed float64
}

// NewWheelModel creates a new wheel view model.
func NewWheelModel() WheelModel {
	return WheelModel{}
}

// SetSize updates the viewport size.
func (m WheelModel) SetSize(width, height int) WheelModel {
	m.width = width
	m.height = height
	return m
}

// SetTropical switches between the two zodiacs.
func (m WheelModel) SetTropical(tropical bool) WheelModel {
	m.tropical = tropical
	return m
}

// SetSelected highlights a body.
func (m WheelModel) SetSelected(b astro.Body) WheelModel {
	m.selected = b
	return m
}

// SetStepSpeed sets the selected body's motion between the last two charts,
// in degrees per day. Zero hides it.
func (m WheelModel) SetStepSpeed(v float64) WheelModel {
	m.stepSpeed = v
	return m
}

// UpdateData updates the model with new data.
func (m WheelModel) UpdateData(snapshot state.Snapshot) WheelModel {
	m.snapshot = snapshot
	return m
}

// View renders the wheel.
func (m WheelModel) View() string {
	if m.width < 40 || m.height < 12 {
		return "Terminal too small for wheel view"
	}
	if m.snapshot.Chart == nil {
		return "Computing chart...\n"
	}

	canvas := m.renderGrid(m.buildCanvas())
	return lipgloss.JoinVertical(lipgloss.Left, canvas, m.renderHUD())
}

func (m WheelModel) longitude(p chart.Position) float64 {
	if m.tropical {
		return p.Tropical
	}
	return p.Sidereal
}

// origin is the longitude drawn at the left of the ring.
func (m WheelModel) origin() float64 {
	c := m.snapshot.Chart
	if c.Ascendant == nil {
		return 0
	}
	if m.tropical {
		return c.Ascendant.Tropical
	}
	return c.Ascendant.Sidereal
}

// wheelPoint maps a longitude on a ring of radius r to a grid cell. Rows are
// half as tall as columns are wide.
func wheelPoint(cx, cy int, r, lon, origin float64) (int, int) {
	theta := math.Pi + (lon-origin)*math.Pi/180
	x := cx + int(math.Round(r*math.Cos(theta)))
	y := cy - int(math.Round(r*math.Sin(theta)*0.5))
	return x, y
}

func newCanvas(w, h int) [][]cell {
	grid := make([][]cell, h)
	for y := range grid {
		grid[y] = make([]cell, w)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' '}
		}
	}
	return grid
}

func inside(grid [][]cell, x, y int) bool {
	return y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y])
}

// free reports whether a label may be written at (x, y). Rings may be
// overwritten.
func free(grid [][]cell, x, y int) bool {
	if !inside(grid, x, y) {
		return false
	}
	k := grid[y][x].kind
	return k == cellEmpty || k == cellRing
}

// drawCircle traces a ring, leaving occupied cells alone.
func drawCircle(grid [][]cell, cx, cy int, r float64) {
	if r < 1 {
		return
	}

	steps := int(2 * math.Pi * r)
	if steps < 8 {
		steps = 8
	}
	if steps > 720 {
		steps = 720
	}

	for i := 0; i < steps; i++ {
		x, y := wheelPoint(cx, cy, r, 360*float64(i)/float64(steps), 0)
		if inside(grid, x, y) && grid[y][x].kind == cellEmpty {
			grid[y][x] = cell{r: '·', kind: cellRing}
		}
	}
}

// putLabel writes s centred on (x, y) if it fits without overwriting.
func putLabel(grid [][]cell, x, y int, s string, kind cellKind) bool {
	runes := []rune(s)
	start := x - len(runes)/2
	for i := range runes {
		if !free(grid, start+i, y) {
			return false
		}
	}
	for i, r := range runes {
		grid[y][start+i] = cell{r: r, kind: kind}
	}
	return true
}

func (m WheelModel) buildCanvas() [][]cell {
	// Reserve space for HUD (3 lines)
	canvasH := m.height - 3
	canvasW := m.width
	grid := newCanvas(canvasW, canvasH)

	cx := canvasW / 2
	cy := canvasH / 2

	// Fit the ring plus sign labels inside the canvas
	outer := math.Min(float64(cx-6), float64(cy-3)*2)
	inner := outer * 0.72
	origin := m.origin()

	drawCircle(grid, cx, cy, outer)
	drawCircle(grid, cx, cy, inner)

	// Sign cusps and names
	for s := 0; s < 12; s++ {
		cusp := float64(s) * chart.SignSpan
		for _, r := range []float64{inner, (inner + outer) / 2, outer} {
			x, y := wheelPoint(cx, cy, r, cusp, origin)
			if inside(grid, x, y) {
				grid[y][x] = cell{r: '+', kind: cellCusp}
			}
		}
		x, y := wheelPoint(cx, cy, outer+3, cusp+chart.SignSpan/2, origin)
		putLabel(grid, x, y, chart.SignNames[s][:3], cellSign)
	}

	c := m.snapshot.Chart
	if c.Ascendant != nil {
		x, y := wheelPoint(cx, cy, outer, origin, origin)
		putLabel(grid, x-2, y, "As", cellAsc)
	}

	// Bodies step inwards until they find free space
	for _, p := range c.Positions {
		info := ephem.BodiesByID[p.Body]
		kind := cellBody
		if p.Retrograde {
			kind = cellRetro
		}
		if p.Body == m.selected {
			kind = cellFocus
		}
		for r := inner - 2; r > 2; r -= 2 {
			x, y := wheelPoint(cx, cy, r, m.longitude(p), origin)
			if putLabel(grid, x, y, info.Abbrev, kind) {
				break
			}
		}
	}

	return grid
}

func (m WheelModel) renderGrid(grid [][]cell) string {
	var b strings.Builder

	ringStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cuspStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	signStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	bodyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	focusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	ascStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)

	for _, row := range grid {
		for _, c := range row {
			var style lipgloss.Style
			switch c.kind {
			case cellEmpty:
				b.WriteRune(c.r)
				continue
			case cellRing:
				style = ringStyle
			case cellCusp:
				style = cuspStyle
			case cellSign:
				style = signStyle
			case cellRetro:
				style = retroStyle
			case cellFocus:
				style = focusStyle
			case cellAsc:
				style = ascStyle
			default:
				style = bodyStyle
			}
			b.WriteString(style.Render(string(c.r)))
		}
		b.WriteRune('\n')
	}

	return b.String()
}

func (m WheelModel) renderHUD() string {
	var b strings.Builder

	p, ok := m.snapshot.Chart.Position(m.selected)
	if !ok {
		return ""
	}
	info := ephem.BodiesByID[p.Body]
	lon := m.longitude(p)

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", info.Glyph, info.Name)))
	b.WriteString("  ")
	b.WriteString(valueStyle.Render(report.FormatLongitude(lon)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s pada %d, navamsa %s",
		chart.NakshatraNames[p.Nakshatra], p.Pada, chart.SignNames[p.Navamsa])))
	if p.Retrograde {
		b.WriteString("  ")
		b.WriteString(retroStyle.Render("retrograde"))
	}
	if m.stepSpeed != 0 {
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(fmt.Sprintf("%+.3f°/day since last chart", m.stepSpeed)))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s zodiac  ", report.ZodiacLabel(m.tropical))))
	b.WriteString(dimStyle.Render("As = ascendant  orange = retrograde"))

	return b.String()
}
