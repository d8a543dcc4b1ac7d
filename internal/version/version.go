// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.4.0"

// Milestones:
// 0.4.0 - Zodiac wheel view, config file reload in watch mode
// 0.3.0 - Deva readings, navamsa, atmakaraka and ishta devata
// 0.2.0 - Birth-time zones, ascendant, watch mode with chart events
// 0.1.0 - Initial release: Keplerian chart, sidereal positions, TUI
