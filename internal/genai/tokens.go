package genai

import "sync"

// TokenUsage represents aggregated token usage information.
type TokenUsage struct {
	// InputTokens is the total input tokens used.
	InputTokens int64
	// OutputTokens is the total output tokens used.
	OutputTokens int64
	// TotalTokens is InputTokens + OutputTokens.
	TotalTokens int64
}

// TokenTracker accumulates API-reported token usage across calls.
type TokenTracker struct {
	mu    sync.RWMutex
	usage TokenUsage
}

// NewTokenTracker creates an empty tracker.
func NewTokenTracker() *TokenTracker {
	return &TokenTracker{}
}

// Add records usage from a single API response.
func (t *TokenTracker) Add(input, output int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.usage.InputTokens += input
	t.usage.OutputTokens += output
	t.usage.TotalTokens += input + output
}

// Usage returns a snapshot of the accumulated usage.
func (t *TokenTracker) Usage() TokenUsage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.usage
}
