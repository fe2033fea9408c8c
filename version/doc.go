// Package version exposes build version information for startup logs and
// the /info and /version endpoints.
package version
