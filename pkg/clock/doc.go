// Package clock provides the time source used by the token engine.
//
// Production code depends on the Source interface rather than calling
// time.Now directly, so tests can substitute a Fixed clock and callers can
// correct a drifting local clock with Offset. Now takes a context: a source
// that has to ask something else for the time (a time server, a remote API)
// must return the context error when the caller gives up.
package clock
