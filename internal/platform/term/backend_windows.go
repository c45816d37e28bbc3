//go:build windows

package term

// DefaultBackend is tcell on Windows, where the console needs its API
// rather than escape sequences.
const DefaultBackend = BackendTcell
