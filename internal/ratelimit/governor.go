package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultLimit  = 100
	DefaultWindow = time.Hour
)

// Result is the outcome of a single CheckAndRecord call.
type Result struct {
	Allowed bool
	// Remaining is the number of calls still available in the window after
	// this one. Zero when denied.
	Remaining int
}

// Governor is a client-side sliding window limiter over outbound calls.
// A single Governor should be shared by every caller in the process.
type Governor struct {
	limit  int
	window int64 // ms
	now    func() time.Time

	mu        sync.Mutex
	callTimes []int64 // epoch ms, non-decreasing
}

type Option func(*Governor)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Governor) {
		g.now = now
	}
}

// New returns a governor allowing limit calls per window. Non-positive
// arguments fall back to the defaults.
func New(limit int, window time.Duration, opts ...Option) *Governor {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	g := &Governor{
		limit:  limit,
		window: window.Milliseconds(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CheckAndRecord evicts expired timestamps and, if a slot is free, consumes it.
func (g *Governor) CheckAndRecord() Result {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().UnixMilli()
	g.evict(now)

	if g.limit-len(g.callTimes) <= 0 {
		return Result{Allowed: false, Remaining: 0}
	}

	g.callTimes = append(g.callTimes, now)
	return Result{Allowed: true, Remaining: g.limit - len(g.callTimes)}
}

// Used returns how many calls are counted in the current window.
func (g *Governor) Used() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.evict(g.now().UnixMilli())
	return len(g.callTimes)
}

func (g *Governor) Limit() int {
	return g.limit
}

func (g *Governor) Window() time.Duration {
	return time.Duration(g.window) * time.Millisecond
}

// evict drops the prefix older than now-window. Caller holds mu.
func (g *Governor) evict(now int64) {
	cutoff := now - g.window
	i := 0
	for i < len(g.callTimes) && g.callTimes[i] < cutoff {
		i++
	}
	if i == 0 {
		return
	}
	// Copy down instead of reslicing so the backing array does not grow forever.
	n := copy(g.callTimes, g.callTimes[i:])
	g.callTimes = g.callTimes[:n]
}
