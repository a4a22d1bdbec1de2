package limiter

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// ConcurrencyLimiter object
type ConcurrencyLimiter struct {
	name       string
	limit      int
	tickets    chan int
	inProgress int32
}

// NewConcurrencyLimiter allocates a new ConcurrencyLimiter. This is useful
// for limiting the amount of functions running at once and is used to
// bound how many event handlers run at the same time.
func NewConcurrencyLimiter(name string, limit int) *ConcurrencyLimiter {
	if limit < 1 {
		limit = 1
	}

	c := &ConcurrencyLimiter{
		name:    name,
		limit:   limit,
		tickets: make(chan int, limit),
	}

	for i := 0; i < c.limit; i++ {
		c.tickets <- i
	}

	return c
}

// Wait waits for a free ticket in the queue. Callers that receive a ticket
// must call FreeTicket with the ticket id.
func (c *ConcurrencyLimiter) Wait(ctx context.Context) (ticket int, err error) {
	select {
	case ticket = <-c.tickets:
		atomic.AddInt32(&c.inProgress, 1)

		return ticket, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// FreeTicket adds the ticket back into the queue.
func (c *ConcurrencyLimiter) FreeTicket(ticket int) {
	atomic.AddInt32(&c.inProgress, -1)
	c.tickets <- ticket
}

// InProgress returns how many tickets are being used
func (c *ConcurrencyLimiter) InProgress() int32 {
	return atomic.LoadInt32(&c.inProgress)
}

func (c *ConcurrencyLimiter) Name() string {
	return c.name
}

// DurationLimiter represents something that will wait until the ratelimit
// has cleared
type DurationLimiter struct {
	resetsAt time.Time

	name     string
	duration time.Duration
	limit    int32

	available int32

	mu sync.Mutex
}

// NewDurationLimiter creates a DurationLimiter. This is useful for allowing
// a specific operation to run only X amount of times in a duration of Y.
func NewDurationLimiter(name string, limit int32, duration time.Duration) *DurationLimiter {
	return &DurationLimiter{
		name:     name,
		limit:    limit,
		duration: duration,
	}
}

// Wait waits until there is an available slot in the limiter or the context is done.
func (l *DurationLimiter) Wait(ctx context.Context) error {
	for {
		l.mu.Lock()

		now := time.Now()

		// If we have surpassed the resetAt, then make a new resetAt and free
		// up available
		if !now.Before(l.resetsAt) {
			l.resetsAt = now.Add(l.duration)
			l.available = l.limit
		}

		if l.available > 0 {
			l.available--
			l.mu.Unlock()

			return nil
		}

		sleepDuration := l.resetsAt.Sub(now)
		l.mu.Unlock()

		timer := time.NewTimer(sleepDuration)

		select {
		case <-ctx.Done():
			timer.Stop()

			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Update overrides the remaining slots and when they reset, such as from
// ratelimit headers returned by discord.
func (l *DurationLimiter) Update(remaining int32, resetAfter time.Duration) {
	l.mu.Lock()
	l.available = remaining
	l.resetsAt = time.Now().Add(resetAfter)
	l.mu.Unlock()
}

// Reset resets the resetsAt
func (l *DurationLimiter) Reset() {
	l.mu.Lock()
	l.resetsAt = time.Now().Add(l.duration)
	l.mu.Unlock()
}

// Available returns how many slots are left before the next reset.
func (l *DurationLimiter) Available() int32 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !time.Now().Before(l.resetsAt) {
		return l.limit
	}

	return l.available
}

func (l *DurationLimiter) Name() string {
	return l.name
}
