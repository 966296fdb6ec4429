// Package state provides thread-safe state management for the application.
package state

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/observer"
	"github.com/litescript/ls-solar/internal/report"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventSunrise   EventType = "SUNRISE"
	EventSolarNoon EventType = "SOLAR_NOON"
	EventSunset    EventType = "SUNSET"
	EventNewDay    EventType = "NEW_DAY"
)

// Event is a solar event passed between two updates.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Date      string    `json:"date"`
	Azimuth   float64   `json:"azimuth"`
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// ErrNoObserver is returned when the manager has no observer yet.
var ErrNoObserver = errors.New("no observer set")

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu    sync.RWMutex
	clock clockwork.Clock

	// Current state
	obs         observer.Observer
	hasObserver bool
	following   bool // observer date tracks the clock
	report      report.DayReport
	trace       *report.ElevationTrace
	position    astro.SkyCoord
	lastUpdate  time.Time
	computeTime time.Duration
	updates     uint64

	// Elevation history
	history       []TimeSeries
	maxHistoryLen int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	// Configuration
	refreshInterval time.Duration
	traceInterval   time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistoryLen   int
	MaxEvents       int
	RefreshInterval time.Duration
	TraceInterval   time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistoryLen:   720, // 1 hour at one update every 5s
		MaxEvents:       50,
		RefreshInterval: 5 * time.Second,
		TraceInterval:   report.DefaultTraceInterval,
	}
}

// NewManager creates a new state manager. A nil clock uses the real clock.
func NewManager(cfg Config, clock clockwork.Clock) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		clock:           clock,
		maxHistoryLen:   cfg.MaxHistoryLen,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		traceInterval:   cfg.TraceInterval,
	}
}

// Clock returns the manager's clock.
func (m *Manager) Clock() clockwork.Clock { return m.clock }

// SetObserver replaces the observer and pins its date. Event detection
// restarts from the next Update.
func (m *Manager) SetObserver(obs observer.Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.following = false
	m.setObserverLocked(obs)
	m.lastUpdate = time.Time{}
}

// FollowToday moves the observer to the clock's current date and keeps it
// there as days pass.
func (m *Manager) FollowToday() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasObserver {
		return ErrNoObserver
	}
	m.following = true
	return m.rollDateLocked(m.clock.Now())
}

// ShiftDate moves the observer date by days and stops following today.
func (m *Manager) ShiftDate(days int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasObserver {
		return ErrNoObserver
	}
	next, err := m.obs.WithDate(m.obs.LocalMidnight().AddDate(0, 0, days))
	if err != nil {
		return err
	}
	m.following = false
	m.setObserverLocked(next)
	return nil
}

// Update recomputes the current position and records events that fell
// between the previous update and now.
func (m *Manager) Update() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasObserver {
		return
	}

	start := m.clock.Now()
	now := start

	if m.following {
		if !sameDay(now, m.obs.LocalMidnight(), m.obs.Get().UTCOffset) {
			if err := m.rollDateLocked(now); err == nil && !m.lastUpdate.IsZero() {
				m.addEvent(Event{Type: EventNewDay, Timestamp: now, Date: m.report.Date})
			}
		}
	}

	m.position = m.obs.PositionAt(now)
	m.updates++

	if !m.lastUpdate.IsZero() && now.After(m.lastUpdate) {
		m.detectEvents(m.lastUpdate, now)
	}
	m.lastUpdate = now

	m.history = append(m.history, TimeSeries{Timestamp: now, Value: m.position.ElDeg})
	if m.maxHistoryLen > 0 && len(m.history) > m.maxHistoryLen {
		m.history = m.history[1:]
	}

	m.computeTime = m.clock.Since(start)
}

func (m *Manager) setObserverLocked(obs observer.Observer) {
	m.obs = obs
	m.hasObserver = true
	m.report = report.BuildDayReport(obs)
	m.trace = report.ComputeElevationTrace(obs, m.traceInterval)
	m.position = obs.PositionAt(m.clock.Now())
}

func (m *Manager) rollDateLocked(now time.Time) error {
	midnight := astro.LocalMidnight(now, m.obs.Get().UTCOffset)
	if m.obs.LocalMidnight().Equal(midnight) {
		return nil
	}
	next, err := m.obs.WithDate(midnight)
	if err != nil {
		return err
	}
	m.setObserverLocked(next)
	return nil
}

// detectEvents adds sunrise, solar noon and sunset when their instant on
// the observer's date falls in (from, to].
func (m *Manager) detectEvents(from, to time.Time) {
	midnight := m.obs.LocalMidnight()
	at := func(frac float64) time.Time {
		return midnight.Add(time.Duration(frac * float64(24*time.Hour)))
	}

	candidates := []struct {
		typ  EventType
		frac float64
	}{
		{EventSunrise, m.report.SunriseFraction},
		{EventSolarNoon, m.report.NoonFraction},
		{EventSunset, m.report.SunsetFraction},
	}

	for _, c := range candidates {
		if c.typ != EventSolarNoon && m.report.Polar != "" {
			continue
		}
		ts := at(c.frac)
		if ts.After(from) && !ts.After(to) {
			m.addEvent(Event{
				Type:      c.typ,
				Timestamp: ts,
				Date:      m.report.Date,
				Azimuth:   m.obs.PositionAt(ts).AzDeg,
			})
		}
	}
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

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Observer    observer.Observer
	HasObserver bool
	Following   bool
	Report      report.DayReport
	Trace       *report.ElevationTrace // shared, read-only
	Position    astro.SkyCoord
	LastUpdate  time.Time
	ComputeTime time.Duration
	Updates     uint64
	History     []TimeSeries
	Events      []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := make([]TimeSeries, len(m.history))
	copy(history, m.history)

	return Snapshot{
		Observer:    m.obs,
		HasObserver: m.hasObserver,
		Following:   m.following,
		Report:      m.report,
		Trace:       m.trace,
		Position:    m.position,
		LastUpdate:  m.lastUpdate,
		ComputeTime: m.computeTime,
		Updates:     m.updates,
		History:     history,
		Events:      m.getEventsOrdered(),
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
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
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

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// HasData returns true once an observer has been set.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasObserver
}

func sameDay(t, midnight time.Time, utcOffset float64) bool {
	return astro.LocalMidnight(t, utcOffset).Equal(midnight)
}
