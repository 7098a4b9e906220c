// Package server runs the HTTP transport of the service.
//
// It owns the listener lifecycle: startup, signal handling and a graceful
// shutdown bounded by the configured timeout.
package server
