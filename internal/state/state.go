// Package state provides thread-safe chart session state for watch mode and
// the TUI.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-devas/internal/astro"
	"github.com/litescript/ls-devas/internal/chart"
	"github.com/litescript/ls-devas/internal/ephem"
)

// EventType represents the type of chart change event.
type EventType string

const (
	EventSignIngress       EventType = "SIGN_INGRESS"
	EventNakshatraChange   EventType = "NAKSHATRA_CHANGE"
	EventRetrogradeStation EventType = "RETROGRADE_STATION"
	EventDirectStation     EventType = "DIRECT_STATION"
	EventPakshaChange      EventType = "PAKSHA_CHANGE"
)

// Event represents a change between two successive charts.
// From and To hold sign, nakshatra or paksha indices depending on Type.
type Event struct {
	Type      EventType  `json:"type"`
	Timestamp time.Time  `json:"timestamp"` // chart instant, not wall clock
	Body      astro.Body `json:"body"`
	From      int        `json:"from"`
	To        int        `json:"to"`
	Speed     float64    `json:"speed"`
}

// HistoryEntry represents a single chart in the history buffer.
type HistoryEntry struct {
	Timestamp time.Time
	Chart     *chart.Chart
}

// BodyHistory tracks sampled motion for one body.
type BodyHistory struct {
	Body             astro.Body
	LongitudeHistory []TimeSeries
	SpeedHistory     []TimeSeries
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// Manager handles all shared session state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	provider ephem.Provider
	observer *astro.Observer

	// Current state
	current         *chart.Chart
	lastUpdate      time.Time
	lastError       error
	computeDuration time.Duration

	// History buffers
	history        []HistoryEntry
	maxHistoryLen  int
	bodyHistory    map[astro.Body]*BodyHistory
	maxBodyHistory int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistoryLen   int
	MaxBodyHistory  int
	MaxEvents       int
	RefreshInterval time.Duration
	Provider        ephem.Provider  // nil means the Kepler model
	Observer        *astro.Observer // nil omits the ascendant
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistoryLen:   60,  // an hour of charts at one per minute
		MaxBodyHistory:  120, // per-body samples
		MaxEvents:       50,
		RefreshInterval: time.Minute,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	provider := cfg.Provider
	if provider == nil {
		provider = ephem.NewKeplerProvider()
	}
	return &Manager{
		provider:        provider,
		observer:        copyObserver(cfg.Observer),
		maxHistoryLen:   cfg.MaxHistoryLen,
		maxBodyHistory:  cfg.MaxBodyHistory,
		bodyHistory:     make(map[astro.Body]*BodyHistory),
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
	}
}

func copyObserver(o *astro.Observer) *astro.Observer {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}

// Compute casts a chart for t with the configured provider and observer and
// records it. Failures are recorded too and leave the current chart alone.
func (m *Manager) Compute(t time.Time) (*chart.Chart, error) {
	m.mu.RLock()
	provider := m.provider
	obs := copyObserver(m.observer)
	m.mu.RUnlock()

	start := time.Now()
	c, err := chart.At(provider, t, obs)
	m.Update(c, time.Since(start), err)
	return c, err
}

// Update atomically records a new chart.
func (m *Manager) Update(c *chart.Chart, computeDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastUpdate = time.Now()
	m.lastError = err
	m.computeDuration = computeDuration

	if c == nil {
		return
	}

	// Detect events before replacing the current chart
	if m.current != nil {
		for _, e := range DetectEvents(m.current, c) {
			m.addEvent(e)
		}
	}

	m.current = c

	m.history = append(m.history, HistoryEntry{Timestamp: c.Time, Chart: c})
	if len(m.history) > m.maxHistoryLen {
		m.history = m.history[1:]
	}

	m.updateBodyHistory(c)
}

// Reset drops the current chart, history and events. Used when the instant
// jumps rather than advances.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
	m.history = nil
	m.bodyHistory = make(map[astro.Body]*BodyHistory)
	m.events = m.events[:0]
	m.eventWriteAt = 0
}

// DetectEvents compares two charts and reports every change between them.
func DetectEvents(prev, next *chart.Chart) []Event {
	if prev == nil || next == nil {
		return nil
	}

	var events []Event
	for _, np := range next.Positions {
		pp, ok := prev.Position(np.Body)
		if !ok {
			continue
		}
		base := Event{Timestamp: next.Time, Body: np.Body, Speed: np.Speed}

		if pp.Sign != np.Sign {
			e := base
			e.Type, e.From, e.To = EventSignIngress, pp.Sign, np.Sign
			events = append(events, e)
		}
		if pp.Nakshatra != np.Nakshatra {
			e := base
			e.Type, e.From, e.To = EventNakshatraChange, pp.Nakshatra, np.Nakshatra
			events = append(events, e)
		}
		if !pp.Retrograde && np.Retrograde {
			e := base
			e.Type = EventRetrogradeStation
			events = append(events, e)
		} else if pp.Retrograde && !np.Retrograde {
			e := base
			e.Type = EventDirectStation
			events = append(events, e)
		}
	}

	if prev.Phase.Paksha != next.Phase.Paksha {
		events = append(events, Event{
			Type:      EventPakshaChange,
			Timestamp: next.Time,
			Body:      astro.Moon,
			From:      int(prev.Phase.Paksha),
			To:        int(next.Phase.Paksha),
		})
	}
	return events
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

func (m *Manager) updateBodyHistory(c *chart.Chart) {
	for _, p := range c.Positions {
		hist, ok := m.bodyHistory[p.Body]
		if !ok {
			hist = &BodyHistory{
				Body:             p.Body,
				LongitudeHistory: make([]TimeSeries, 0, m.maxBodyHistory),
				SpeedHistory:     make([]TimeSeries, 0, m.maxBodyHistory),
			}
			m.bodyHistory[p.Body] = hist
		}

		hist.LongitudeHistory = append(hist.LongitudeHistory, TimeSeries{Timestamp: c.Time, Value: p.Tropical})
		if len(hist.LongitudeHistory) > m.maxBodyHistory {
			hist.LongitudeHistory = hist.LongitudeHistory[1:]
		}

		hist.SpeedHistory = append(hist.SpeedHistory, TimeSeries{Timestamp: c.Time, Value: p.Speed})
		if len(hist.SpeedHistory) > m.maxBodyHistory {
			hist.SpeedHistory = hist.SpeedHistory[1:]
		}
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Chart           *chart.Chart
	Provider        string
	Observer        *astro.Observer
	LastUpdate      time.Time
	LastError       error
	ComputeDuration time.Duration
	Events          []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Chart:           m.current,
		Provider:        m.provider.Name(),
		Observer:        copyObserver(m.observer),
		LastUpdate:      m.lastUpdate,
		LastError:       m.lastError,
		ComputeDuration: m.computeDuration,
		Events:          m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		result[i] = m.events[(m.eventWriteAt+i)%m.maxEvents]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// History returns the recorded charts, oldest first.
func (m *Manager) History() []HistoryEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]HistoryEntry, len(m.history))
	copy(out, m.history)
	return out
}

// GetBodyHistory returns a copy of the samples for one body, or nil.
func (m *Manager) GetBodyHistory(b astro.Body) *BodyHistory {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hist, ok := m.bodyHistory[b]
	if !ok {
		return nil
	}

	c := &BodyHistory{
		Body:             hist.Body,
		LongitudeHistory: make([]TimeSeries, len(hist.LongitudeHistory)),
		SpeedHistory:     make([]TimeSeries, len(hist.SpeedHistory)),
	}
	copy(c.LongitudeHistory, hist.LongitudeHistory)
	copy(c.SpeedHistory, hist.SpeedHistory)
	return c
}

// EstimateSpeed returns the mean motion in degrees per day between the last
// two recorded charts, or 0 with fewer than two samples.
func (m *Manager) EstimateSpeed(b astro.Body) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hist, ok := m.bodyHistory[b]
	if !ok || len(hist.LongitudeHistory) < 2 {
		return 0
	}

	n := len(hist.LongitudeHistory)
	p1 := hist.LongitudeHistory[n-2]
	p2 := hist.LongitudeHistory[n-1]

	days := p2.Timestamp.Sub(p1.Timestamp).Hours() / 24
	if days == 0 {
		return 0
	}
	return astro.Wrap180(p2.Value-p1.Value) / days
}

// Observer returns a copy of the observer, or nil.
func (m *Manager) Observer() *astro.Observer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyObserver(m.observer)
}

// SetObserver replaces the observer used by Compute.
func (m *Manager) SetObserver(o *astro.Observer) error {
	if o != nil {
		if err := o.Validate(); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observer = copyObserver(o)
	return nil
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true once a chart has been recorded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
