// Package logger provides structured logging for launchpad built on zerolog.
//
// Lifecycle logs (start, bind, serve, shutdown) go through a process-wide
// logger initialized once from configuration; packages tag their output
// with WithComponent.
package logger
