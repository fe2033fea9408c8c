// Package server provides the HTTP listener for launchpad services: a Gin
// engine for the system surface (probes, info, metrics) with the delegated
// application handler mounted behind it, served over HTTP/1.1 and cleartext
// HTTP/2 on a single port.
//
// The server binds exactly once; a bind failure is fatal and surfaces as a
// BIND_FAILED error. Shutdown stops accepting connections first, then drains
// in-flight requests within the caller's deadline.
package server
