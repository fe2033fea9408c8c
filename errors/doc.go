// Package errors provides the unified error type for launchpad services,
// with machine-readable codes, startup-stage attribution, HTTP status
// mapping, and retryable detection.
package errors
