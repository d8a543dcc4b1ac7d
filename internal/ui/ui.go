// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-devas/internal/devas"
	"github.com/litescript/ls-devas/internal/state"
	"github.com/litescript/ls-devas/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewChart ViewMode = iota
	ViewWheel
	ViewDevas
	ViewEvents
)

const viewCount = 4

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// NowMsg carries the wall clock from the refresh loop. It only moves
	// the chart while the model follows the present.
	NowMsg time.Time

	// ChartUpdateMsg signals a new chart is available.
	ChartUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a compute error.
	ErrorMsg struct {
		Error error
	}
)

// stepLadder lists the time steps +/- move between.
var stepLadder = []time.Duration{
	time.Minute,
	10 * time.Minute,
	time.Hour,
	6 * time.Hour,
	24 * time.Hour,
	7 * 24 * time.Hour,
	30 * 24 * time.Hour,
}

// Options configures a new root model.
type Options struct {
	Tables   *devas.Tables // nil uses the embedded tables
	Name     string        // shown on the devas view
	Step     time.Duration // initial arrow-key step, snapped to the ladder
	Tropical bool
	At       time.Time // zero follows the present
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state *state.Manager
	keys  keyMap
	help  help.Model

	// UI state
	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int

	// Chart instant
	at       time.Time
	follow   bool
	stepIdx  int
	tropical bool
	lastErr  error

	// Sub-models
	chartView ChartViewModel
	wheel     WheelModel
	devasView DevasModel
	events    EventsModel

	// Data snapshot (updated on ChartUpdateMsg)
	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager, opts Options) Model {
	at := opts.At
	follow := at.IsZero()
	if follow {
		at = time.Now()
	}

	m := Model{
		state:     stateMgr,
		keys:      defaultKeyMap(),
		help:      help.New(),
		viewMode:  ViewChart,
		at:        at,
		follow:    follow,
		stepIdx:   nearestStep(opts.Step),
		chartView: NewChartViewModel(),
		wheel:     NewWheelModel(),
		devasView: NewDevasModel(opts.Tables, opts.Name),
		events:    NewEventsModel(),
	}
	m.setTropical(opts.Tropical)
	return m
}

// nearestStep returns the ladder index closest to d.
func nearestStep(d time.Duration) int {
	best := 2 // one hour
	if d <= 0 {
		return best
	}
	bestDiff := time.Duration(1<<63 - 1)
	for i, s := range stepLadder {
		diff := s - d
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}

// At returns the instant being charted.
func (m Model) At() time.Time { return m.at }

// Step returns the current arrow-key step.
func (m Model) Step() time.Duration { return stepLadder[m.stepIdx] }

// Following reports whether the chart tracks the present.
func (m Model) Following() bool { return m.follow }

// Tropical reports whether longitudes are shown in the tropical zodiac.
func (m Model) Tropical() bool { return m.tropical }

// ViewMode returns the active view.
func (m Model) ViewMode() ViewMode { return m.viewMode }

func (m *Model) setTropical(tropical bool) {
	m.tropical = tropical
	m.chartView = m.chartView.SetTropical(tropical)
	m.wheel = m.wheel.SetTropical(tropical)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
		computeCmd(m.state, m.at),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.follow = false
			m.at = m.at.Add(-m.Step())
			cmds = append(cmds, computeCmd(m.state, m.at))
		case key.Matches(msg, m.keys.Forward):
			m.follow = false
			m.at = m.at.Add(m.Step())
			cmds = append(cmds, computeCmd(m.state, m.at))
		case key.Matches(msg, m.keys.Finer):
			if m.stepIdx > 0 {
				m.stepIdx--
			}
		case key.Matches(msg, m.keys.Coarser):
			if m.stepIdx < len(stepLadder)-1 {
				m.stepIdx++
			}
		case key.Matches(msg, m.keys.Now):
			// A jump, not a step: events across it would be meaningless
			m.follow = true
			m.at = time.Now()
			m.state.Reset()
			cmds = append(cmds, computeCmd(m.state, m.at))
		case key.Matches(msg, m.keys.Zodiac):
			m.setTropical(!m.tropical)

		case key.Matches(msg, m.keys.Chart):
			m.viewMode = ViewChart
		case key.Matches(msg, m.keys.Wheel):
			m.viewMode = ViewWheel
		case key.Matches(msg, m.keys.Devas):
			m.viewMode = ViewDevas
		case key.Matches(msg, m.keys.Events):
			m.viewMode = ViewEvents
		case key.Matches(msg, m.keys.NextView):
			// Cycle through views
			m.viewMode = (m.viewMode + 1) % viewCount
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		default:
			// Selection is shared by the chart and wheel views
			var cmd tea.Cmd
			m.chartView, cmd = m.chartView.Update(msg)
			m.wheel = m.wheel.SetSelected(m.chartView.Selected())
			m.wheel = m.wheel.SetStepSpeed(m.state.EstimateSpeed(m.chartView.Selected()))
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width

		// Title takes 4 lines, tabs 2, footer 2
		contentHeight := msg.Height - 8
		m.chartView = m.chartView.SetSize(msg.Width, contentHeight)
		m.wheel = m.wheel.SetSize(msg.Width, contentHeight)
		m.devasView = m.devasView.SetSize(msg.Width, contentHeight)
		m.events = m.events.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.setSnapshot(m.state.Snapshot())

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case NowMsg:
		if m.follow {
			m.at = time.Time(msg)
			cmds = append(cmds, computeCmd(m.state, m.at))
		}

	case ChartUpdateMsg:
		m.lastErr = nil
		m.setSnapshot(msg.Snapshot)

	case ErrorMsg:
		m.lastErr = msg.Error
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) setSnapshot(s state.Snapshot) {
	m.snapshot = s
	m.chartView = m.chartView.UpdateData(s)
	m.wheel = m.wheel.UpdateData(s).SetStepSpeed(m.state.EstimateSpeed(m.chartView.Selected()))
	m.devasView = m.devasView.UpdateData(s)
	m.events = m.events.UpdateData(s)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewChart:
		content = m.chartView.View()
	case ViewWheel:
		content = m.wheel.View()
	case ViewDevas:
		content = m.devasView.View()
	case ViewEvents:
		content = m.events.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

func (m Model) renderLogo() string {
	const title = "ls-devas"

	var b strings.Builder
	b.WriteString("\n  ")

	// Letter-spaced title with a horizontal truecolor gradient
	runes := []rune(title)
	for col, r := range runes {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(gradientColor(col, 0, len(runes), 1)))
		b.WriteString(style.Render(string(r) + " "))
	}
	b.WriteString(dimStyle.Render(" Jyotisha chart · Ishta devata"))
	b.WriteString("\n")

	b.WriteString(dimStyle.Render(fmt.Sprintf("  (c) 2025 litescript.net | v%s", version.Version)))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the title gradient:
// blue, purple, magenta, pink.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	if xRatio < 0.33 {
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else if xRatio < 0.66 {
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	} else {
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	// Vertical fade: brighter at top
	f := 1.0 - yRatio*0.5
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*f), clampByte(g*f), clampByte(b*f))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v)
	}
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Chart", "[2] Wheel", "[3] Devas", "[4] Events"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.lastErr != nil:
		status = errorStyle.Render("ERROR: " + m.lastErr.Error())
	case m.snapshot.Chart == nil:
		status = accentStyle.Render(spinner) + " " + m.renderShimmerText("Computing chart...")
	case m.follow:
		status = accentStyle.Render(spinner) + dimStyle.Render(" live")
		if m.snapshot.ComputeDuration > 0 {
			status += dimStyle.Render(" (" + m.snapshot.ComputeDuration.Round(time.Microsecond).String() + ")")
		}
	default:
		status = accentStyle.Render("‖") + dimStyle.Render(" "+m.at.UTC().Format("2006-01-02 15:04 MST"))
	}
	status += dimStyle.Render(fmt.Sprintf("  step %s", formatStep(m.Step())))

	return "  " + status + "  " + dimStyle.Render("|") + "  " + m.help.View(m.keys)
}

// formatStep prints whole days and weeks the way people say them.
func formatStep(d time.Duration) string {
	day := 24 * time.Hour
	switch {
	case d >= 30*day && d%(30*day) == 0:
		return fmt.Sprintf("%dmo", d/(30*day))
	case d >= 7*day && d%(7*day) == 0:
		return fmt.Sprintf("%dw", d/(7*day))
	case d >= day && d%day == 0:
		return fmt.Sprintf("%dd", d/day)
	case d >= time.Hour && d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	case d >= time.Minute && d%time.Minute == 0:
		return fmt.Sprintf("%dm", d/time.Minute)
	default:
		return d.String()
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// computeCmd casts the chart for t off the UI goroutine.
func computeCmd(mgr *state.Manager, t time.Time) tea.Cmd {
	return func() tea.Msg {
		if _, err := mgr.Compute(t); err != nil {
			return ErrorMsg{Error: err}
		}
		return ChartUpdateMsg{Snapshot: mgr.Snapshot()}
	}
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	// Shimmer sweeps across with a little padding for entry and exit
	pos := m.animTick % (len(runes) + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		case dist <= 5:
			r8, g8, b8 = 110, 90, 150
		default:
			r8, g8, b8 = 80, 70, 120
		}

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)))
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
