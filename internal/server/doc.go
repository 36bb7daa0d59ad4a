// Package server wires and runs the vault's HTTP server.
//
// It owns the server lifecycle: startup, signal handling, and graceful
// shutdown that lets in-flight requests finish before the process exits.
package server
