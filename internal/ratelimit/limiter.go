// Package ratelimit implements a sliding-window request limiter keyed by
// visitor identity and operation. State is in-process and best-effort: it
// does not survive restarts and is per-instance when scaled out.
package ratelimit

import (
	"hash/fnv"
	"sync"
	"time"
)

// Operation keys. Likes and comments carry independent limits over the same
// window, so a burst of likes never eats into the comment budget.
const (
	OpLike    = "like"
	OpComment = "comment"
)

const shardCount = 16

// Limits holds the per-operation thresholds over a shared window.
type Limits struct {
	Like    int
	Comment int
	Window  time.Duration
}

// DefaultLimits matches the widget defaults: 10 likes and 5 comments per
// identity per minute.
func DefaultLimits() Limits {
	return Limits{Like: 10, Comment: 5, Window: time.Minute}
}

// Limiter tracks recent request timestamps per (operation, identity). Admit
// discards timestamps older than the window, rejects once the remaining count
// reaches the operation's limit, and records the attempt otherwise. Rejected
// attempts are not recorded.
type Limiter struct {
	limits Limits
	shards [shardCount]*shard

	// now is swappable for tests.
	now func() time.Time
}

type shard struct {
	mu   sync.Mutex
	hits map[string][]time.Time
}

func NewLimiter(limits Limits) *Limiter {
	if limits.Window <= 0 {
		limits.Window = time.Minute
	}
	l := &Limiter{limits: limits, now: time.Now}
	for i := range l.shards {
		l.shards[i] = &shard{hits: make(map[string][]time.Time)}
	}
	return l
}

// Admit reports whether the identity may perform op right now, recording the
// attempt when admitted.
func (l *Limiter) Admit(op, identity string) bool {
	limit := l.limitFor(op)
	if limit <= 0 {
		return true
	}

	key := op + ":" + identity
	s := l.shardFor(key)
	now := l.now()
	cutoff := now.Add(-l.limits.Window)

	s.mu.Lock()
	defer s.mu.Unlock()

	hits := s.hits[key]
	live := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			live = append(live, t)
		}
	}

	if len(live) >= limit {
		s.hits[key] = live
		return false
	}

	s.hits[key] = append(live, now)
	return true
}

// Cleanup drops identities whose newest hit has fallen out of the window.
// Call periodically to keep idle visitors from accumulating.
func (l *Limiter) Cleanup() {
	cutoff := l.now().Add(-l.limits.Window)
	for _, s := range l.shards {
		s.mu.Lock()
		for key, hits := range s.hits {
			if len(hits) == 0 || !hits[len(hits)-1].After(cutoff) {
				delete(s.hits, key)
			}
		}
		s.mu.Unlock()
	}
}

// StartJanitor runs Cleanup every interval until stop is closed.
func (l *Limiter) StartJanitor(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Cleanup()
			case <-stop:
				return
			}
		}
	}()
}

func (l *Limiter) limitFor(op string) int {
	switch op {
	case OpLike:
		return l.limits.Like
	case OpComment:
		return l.limits.Comment
	default:
		return 0
	}
}

func (l *Limiter) shardFor(key string) *shard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return l.shards[h.Sum32()%shardCount]
}
