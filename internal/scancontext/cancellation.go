// Package scancontext carries the cooperative-cancellation primitive used
// by the multi-strategy driver (§5: "a caller-supplied cancellation
// signal, if present, is checked between strategies").
package scancontext

import "sync"

// CancellationToken lets a caller abort a scan between strategies. It is
// safe for concurrent use; a single token is intended for one scan call.
type CancellationToken struct {
	cancelled bool
	mu        sync.RWMutex
}

// NewCancellationToken returns a token in the not-cancelled state.
func NewCancellationToken() *CancellationToken {
	return &CancellationToken{}
}

// Cancel marks the token as cancelled. Safe to call more than once.
func (ct *CancellationToken) Cancel() {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.cancelled = true
}

// IsCancelled reports whether Cancel has been called. A nil token is
// treated as never cancelled so callers can pass one optionally.
func (ct *CancellationToken) IsCancelled() bool {
	if ct == nil {
		return false
	}
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return ct.cancelled
}

// Reset clears the cancellation state so the token can be reused.
func (ct *CancellationToken) Reset() {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.cancelled = false
}
