// Package util contains small parsing and formatting helpers shared across
// launchpad packages.
package util
