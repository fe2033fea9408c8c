// Package observability initializes OpenTelemetry trace and metric export
// over OTLP/HTTP. It is wired into the launcher as a lifecycle component so
// providers are flushed and shut down during graceful stop.
package observability
