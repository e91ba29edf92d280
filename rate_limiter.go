package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterIdleTTL is the minimum time a chat may stay silent before its
// limiter is evicted.
const limiterIdleTTL = 10 * time.Minute

type chatLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// replyPacer keeps outbound replies to each chat under Telegram's per-chat
// send limit. It never blocks: a reply over the limit is refused.
type replyPacer struct {
	limit     rate.Limit
	burst     int
	clock     Clock
	idleTTL   time.Duration
	limiters  map[int64]*chatLimiter
	lastSweep time.Time
	mu        sync.Mutex
}

// newReplyPacer returns nil when perMinute is zero, which disables pacing.
func newReplyPacer(perMinute, burst int, clock Clock) *replyPacer {
	if perMinute <= 0 {
		return nil
	}
	interval := time.Minute / time.Duration(perMinute)
	// An evicted limiter must already have refilled its whole burst.
	return &replyPacer{
		limit:     rate.Every(interval),
		burst:     burst,
		clock:     clock,
		idleTTL:   max(limiterIdleTTL, time.Duration(burst)*interval),
		limiters:  make(map[int64]*chatLimiter),
		lastSweep: clock.Now(),
	}
}

// allow reports whether a reply to chatID may be sent now.
func (p *replyPacer) allow(chatID int64) bool {
	if p == nil {
		return true
	}

	now := p.clock.Now()

	p.mu.Lock()
	if now.Sub(p.lastSweep) >= p.idleTTL {
		p.evictIdle(now)
	}
	entry, exists := p.limiters[chatID]
	if !exists {
		entry = &chatLimiter{limiter: rate.NewLimiter(p.limit, p.burst)}
		p.limiters[chatID] = entry
	}
	entry.lastSeen = now
	p.mu.Unlock()

	return entry.limiter.AllowN(now, 1)
}

// evictIdle drops limiters of chats silent for p.idleTTL. Caller holds p.mu.
func (p *replyPacer) evictIdle(now time.Time) {
	for chatID, entry := range p.limiters {
		if now.Sub(entry.lastSeen) >= p.idleTTL {
			delete(p.limiters, chatID)
		}
	}
	p.lastSweep = now
}
