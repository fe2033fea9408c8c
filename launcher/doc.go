// Package launcher drives the process lifecycle of a launchpad service:
// resolve configuration, load the application handler, bind the listener,
// serve, and shut down gracefully on SIGINT or SIGTERM.
//
// The lifecycle is a linear state machine. UNSTARTED moves through BOUND and
// SERVING to SHUTTING_DOWN and STOPPED; a failed bind ends in the terminal
// BIND_FAILED state. Run blocks for the whole lifecycle and returns nil for
// a signal-initiated shutdown, or the startup error when the service never
// reached SERVING.
package launcher
