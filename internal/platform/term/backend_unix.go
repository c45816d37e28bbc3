//go:build !windows

package term

// DefaultBackend is the ANSI backend on unix-like systems.
const DefaultBackend = BackendANSI
