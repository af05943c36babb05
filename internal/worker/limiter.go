package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter caps emitted events per second per publisher. It protects the
// downstream persistence collaborator when one outlet floods a batch file;
// parsing itself is never throttled.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a per-publisher limiter. A non-positive rate means
// unlimited.
func NewLimiter(eventsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(eventsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the publisher's limiter clears one emission.
func (l *Limiter) Wait(ctx context.Context, publisher string) error {
	if l.defaultRate <= 0 {
		return nil
	}
	return l.get(publisher).Wait(ctx)
}

// Allow reports whether an emission is allowed without waiting.
func (l *Limiter) Allow(publisher string) bool {
	if l.defaultRate <= 0 {
		return true
	}
	return l.get(publisher).Allow()
}

func (l *Limiter) get(publisher string) *rate.Limiter {
	l.mu.RLock()
	limiter, ok := l.limiters[publisher]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, ok := l.limiters[publisher]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[publisher] = limiter
	return limiter
}

// SetPublisherRate overrides the limit for one publisher.
func (l *Limiter) SetPublisherRate(publisher string, eventsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if burst <= 0 {
		burst = l.defaultBurst
	}
	l.limiters[publisher] = rate.NewLimiter(rate.Limit(eventsPerSecond), burst)
}
