// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Prometheus exporter, .env configuration, JSON logging
// 0.2.0 - Sky view, almanac, elevation trace, seasons
// 0.1.0 - Initial release: NOAA solar position, observer, headless modes
