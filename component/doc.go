// Package component defines the lifecycle contract shared by launchpad
// infrastructure (HTTP server, telemetry) and the ordered registry that
// starts and stops it.
package component
