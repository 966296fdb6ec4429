// Package metrics exports the Sun's state as Prometheus gauges.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/litescript/ls-solar/internal/logging"
	"github.com/litescript/ls-solar/internal/state"
)

const namespace = "sun"

// Metrics holds the exported collectors.
type Metrics struct {
	Elevation      prometheus.Gauge
	Azimuth        prometheus.Gauge
	Refraction     prometheus.Gauge
	IsDaylight     prometheus.Gauge
	Sunrise        prometheus.Gauge
	Sunset         prometheus.Gauge
	SolarNoon      prometheus.Gauge
	DaylightMins   prometheus.Gauge
	Declination    prometheus.Gauge
	EquationOfTime prometheus.Gauge
	Computations   prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}

	m := &Metrics{
		Elevation:      gauge("elevation_degrees", "refraction corrected sun elevation in degrees (negative = below horizon)"),
		Azimuth:        gauge("azimuth_degrees", "sun azimuth in degrees from North (0=N, 90=E, 180=S, 270=W)"),
		Refraction:     gauge("refraction_degrees", "atmospheric refraction correction in degrees"),
		IsDaylight:     gauge("is_daylight", "1 if sun is above horizon, 0 if below"),
		Sunrise:        gauge("sunrise_seconds", "today's sunrise as Unix time, 0 on polar days"),
		Sunset:         gauge("sunset_seconds", "today's sunset as Unix time, 0 on polar days"),
		SolarNoon:      gauge("solar_noon_seconds", "today's solar noon as Unix time"),
		DaylightMins:   gauge("daylight_minutes", "length of daylight in minutes"),
		Declination:    gauge("declination_degrees", "solar declination in degrees"),
		EquationOfTime: gauge("equation_of_time_minutes", "equation of time in minutes"),
		Computations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "computations_total",
			Help:      "number of position updates",
		}),
	}

	reg.MustRegister(
		m.Elevation,
		m.Azimuth,
		m.Refraction,
		m.IsDaylight,
		m.Sunrise,
		m.Sunset,
		m.SolarNoon,
		m.DaylightMins,
		m.Declination,
		m.EquationOfTime,
		m.Computations,
	)

	return m
}

// Observe sets every gauge from a state snapshot.
func (m *Metrics) Observe(snap state.Snapshot) {
	if !snap.HasObserver {
		return
	}

	pos := snap.Position
	m.Elevation.Set(pos.ElDeg)
	m.Azimuth.Set(pos.AzDeg)
	m.Refraction.Set(pos.RefractionDeg)
	if pos.AboveHorizon() {
		m.IsDaylight.Set(1)
	} else {
		m.IsDaylight.Set(0)
	}

	r := snap.Report
	midnight := snap.Observer.LocalMidnight()
	unix := func(frac float64) float64 {
		return float64(midnight.Unix()) + frac*86400
	}

	m.SolarNoon.Set(unix(r.NoonFraction))
	if r.Polar == "" {
		m.Sunrise.Set(unix(r.SunriseFraction))
		m.Sunset.Set(unix(r.SunsetFraction))
	} else {
		m.Sunrise.Set(0)
		m.Sunset.Set(0)
	}
	m.DaylightMins.Set(r.DaylightMinutes)
	m.Declination.Set(r.Declination)
	m.EquationOfTime.Set(r.EquationOfTime)
}

// Source is the state the exporter reads from.
type Source interface {
	Update()
	Snapshot() state.Snapshot
}

// Exporter refreshes the metrics from a Source on a fixed interval.
type Exporter struct {
	metrics  *Metrics
	source   Source
	clock    clockwork.Clock
	interval time.Duration
	log      *logging.Logger
}

// NewExporter creates an exporter. A nil clock uses the real clock and a
// nil logger discards output.
func NewExporter(m *Metrics, src Source, interval time.Duration, clock clockwork.Clock, log *logging.Logger) *Exporter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = logging.Discard()
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Exporter{metrics: m, source: src, clock: clock, interval: interval, log: log}
}

// Refresh updates the source once and publishes the result.
func (e *Exporter) Refresh() {
	e.source.Update()
	snap := e.source.Snapshot()
	e.metrics.Observe(snap)
	e.metrics.Computations.Inc()
	e.log.Debug("sun: el=%.2f az=%.2f", snap.Position.ElDeg, snap.Position.AzDeg)
}

// Run refreshes immediately and then on every tick until ctx is done.
func (e *Exporter) Run(ctx context.Context) {
	ticker := e.clock.NewTicker(e.interval)
	defer ticker.Stop()

	e.Refresh()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			e.Refresh()
		}
	}
}

// Handler serves the metrics gathered from g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
