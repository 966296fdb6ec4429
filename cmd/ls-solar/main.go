// Command ls-solar is a terminal UI and exporter for the Sun's position
// and daily events at a fixed observer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	"github.com/litescript/ls-solar/internal/config"
	"github.com/litescript/ls-solar/internal/logging"
	"github.com/litescript/ls-solar/internal/metrics"
	"github.com/litescript/ls-solar/internal/observer"
	"github.com/litescript/ls-solar/internal/report"
	"github.com/litescript/ls-solar/internal/state"
	"github.com/litescript/ls-solar/internal/ui"
	"github.com/litescript/ls-solar/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	jsonPath      string
	traceMode     bool
	nowMode       bool
	almanacMode   bool
	seasonsMode   bool
	eventsMode    bool
	watchInterval time.Duration
	showVersion   bool
)

const (
	minRefresh = 1 * time.Second
	maxRefresh = 5 * time.Minute
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags default to the loaded configuration.
	lat := flag.Float64("lat", cfg.Latitude, "Observer latitude in degrees (north positive)")
	lon := flag.Float64("lon", cfg.Longitude, "Observer longitude in degrees (east positive)")
	utcOffset := flag.String("utc-offset", fmt.Sprintf("%g", cfg.UTCOffset), "UTC offset in hours (e.g., 7, -3.5, UTC+05:45)")
	date := flag.String("date", cfg.Date, "Civil date YYYY-MM-DD (default today)")
	name := flag.String("name", cfg.Name, "Location name")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", cfg.LogFormat, "Log format (text, json)")
	logFile := flag.String("log-file", "", "Write logs to file while the TUI is running")
	metricsAddr := flag.String("metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address (e.g., :9109)")
	refresh := flag.Duration("refresh", cfg.RefreshInterval, "Position refresh interval (e.g., 5s, 1m)")
	traceInterval := flag.Duration("trace-interval", cfg.TraceInterval, "Elevation trace sample spacing")
	days := flag.Int("days", cfg.AlmanacDays, "Number of days in the almanac")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.StringVar(&jsonPath, "json", "", "Export the day report as JSON to file (use - for stdout)")
	flag.BoolVar(&traceMode, "trace", false, "Print the day's elevation trace")
	flag.BoolVar(&nowMode, "now", false, "Single-line current position")
	flag.BoolVar(&almanacMode, "almanac", false, "Print the almanac table")
	flag.BoolVar(&seasonsMode, "seasons", false, "Print the year's equinoxes and solstices")
	flag.BoolVar(&eventsMode, "events", false, "Print events as they happen (with --watch)")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat --now at interval (e.g., 30s)")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("ls-solar %s\n", version.Version)
		return nil
	}
	if err := checkModes(); err != nil {
		return err
	}

	offset, err := observer.ParseUTCOffset(*utcOffset)
	if err != nil {
		return err
	}
	cfg.Latitude, cfg.Longitude, cfg.UTCOffset = *lat, *lon, offset
	cfg.Date, cfg.Name = *date, *name

	// Validate refresh interval
	if *refresh < minRefresh {
		*refresh = minRefresh
	} else if *refresh > maxRefresh {
		*refresh = maxRefresh
	}

	// Set up logging
	logger := logging.New(logging.ParseLevel(*logLevel))
	logger.SetFormat(logging.ParseFormat(*logFormat))

	clock := clockwork.NewRealClock()
	obs, err := cfg.Observer(clock.Now())
	if err != nil {
		return err
	}
	logger.Debug("Observer %s", obs)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Initialize components
	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = *refresh
	stateCfg.TraceInterval = *traceInterval
	stateMgr := state.NewManager(stateCfg, clock)
	stateMgr.SetObserver(obs)
	if cfg.Date == "" {
		if err := stateMgr.FollowToday(); err != nil {
			return err
		}
	}

	headless := summaryMode || jsonPath != "" || traceMode || nowMode || almanacMode || seasonsMode || eventsMode
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	if *metricsAddr != "" {
		srv, err := startMetrics(ctx, *metricsAddr, stateMgr, *refresh, clock, logger)
		if err != nil {
			return err
		}
		defer srv.Close()

		// Without a terminal or a headless mode, serve until signalled.
		if !headless && !isTTY {
			logger.Info("Serving metrics on %s", *metricsAddr)
			<-ctx.Done()
			return nil
		}
	}

	if headless || !isTTY {
		return runHeadless(ctx, stateMgr, *days, logger)
	}

	// TUI owns the terminal, so logs go to a file or nowhere.
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else {
		logger.SetOutput(io.Discard)
	}

	model := ui.New(stateMgr, *days)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// checkModes rejects headless flag combinations that would print nothing.
func checkModes() error {
	if eventsMode && watchInterval <= 0 {
		return errors.New("--events needs --watch: events are reported as they happen")
	}
	if watchInterval < 0 {
		return fmt.Errorf("invalid --watch %s", watchInterval)
	}
	return nil
}

// startMetrics registers the sun gauges and serves them on addr while the
// exporter refreshes the shared state.
func startMetrics(ctx context.Context, addr string, stateMgr *state.Manager, interval time.Duration, clock clockwork.Clock, logger *logging.Logger) (*http.Server, error) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	exporter := metrics.NewExporter(m, stateMgr, interval, clock, logger)
	go exporter.Run(ctx)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed: %v", err)
		}
	}()
	return srv, nil
}

// runHeadless handles all headless modes without starting TUI.
func runHeadless(ctx context.Context, stateMgr *state.Manager, days int, logger *logging.Logger) error {
	stateMgr.Update()
	snap := stateMgr.Snapshot()
	obs := snap.Observer
	now := stateMgr.Clock().Now()

	if jsonPath != "" {
		if err := writeJSON(snap.Report); err != nil {
			return err
		}
	}

	// Plain summary is the default when nothing else was asked for.
	if summaryMode || !(jsonPath != "" || traceMode || nowMode || almanacMode || seasonsMode || eventsMode) {
		report.WriteSummary(os.Stdout, snap.Report)
	}

	if traceMode {
		fmt.Println()
		report.WriteTrace(os.Stdout, snap.Trace)
	}

	if almanacMode {
		fmt.Println()
		report.WriteAlmanacTable(os.Stdout, report.Almanac(obs, days))
	}

	if seasonsMode {
		fmt.Println()
		report.WriteSeasons(os.Stdout, obs.LocalMidnight().Year(), obs.Location())
	}

	if nowMode && watchInterval == 0 {
		report.WriteNow(os.Stdout, obs, now)
	}

	if watchInterval == 0 {
		return nil
	}

	// Watch mode: repeat at interval
	ticker := stateMgr.Clock().NewTicker(watchInterval)
	defer ticker.Stop()

	var lastSeen time.Time
	for {
		snap = stateMgr.Snapshot()
		if nowMode || !eventsMode {
			report.WriteNow(os.Stdout, snap.Observer, snap.LastUpdate)
		}
		if eventsMode {
			for _, e := range snap.Events {
				if !e.Timestamp.After(lastSeen) {
					continue
				}
				fmt.Printf("%s  %-10s %s az %.1f°\n",
					e.Timestamp.In(snap.Observer.Location()).Format(time.DateTime), e.Type, e.Date, e.Azimuth)
				lastSeen = e.Timestamp
			}
		}

		select {
		case <-ctx.Done():
			logger.Debug("Watch loop shutting down")
			return nil
		case <-ticker.Chan():
			stateMgr.Update()
		}
	}
}

func writeJSON(r report.DayReport) error {
	if jsonPath == "-" {
		if err := r.WriteJSON(os.Stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}

	f, err := os.Create(jsonPath)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()
	if err := r.WriteJSON(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return nil
}
