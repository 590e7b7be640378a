package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"thirdcoast.systems/trendscout/internal/metrics"
)

const (
	// A visitor with no streams and no activity for this long is dropped.
	DefaultIdleAfter = 30 * time.Minute

	// Hard caps to keep the web process responsive even if someone opens
	// a silly number of tabs.
	maxStreamsPerVisitor = 5
	maxTotalStreams      = 200
)

// Hub keeps one Sequencer per visitor and fans snapshots out to that
// visitor's stream subscribers.
type Hub struct {
	deps      Deps
	idleAfter time.Duration
	now       func() time.Time

	mu           sync.Mutex
	visitors     map[string]*visitor
	totalStreams int
}

type visitor struct {
	seq      *Sequencer
	subs     map[chan Snapshot]struct{}
	lastSeen time.Time
}

func NewHub(deps Deps, idleAfter time.Duration) *Hub {
	if idleAfter <= 0 {
		idleAfter = DefaultIdleAfter
	}
	return &Hub{
		deps:      deps,
		idleAfter: idleAfter,
		now:       time.Now,
		visitors:  make(map[string]*visitor),
	}
}

func (h *Hub) getOrCreateLocked(id string) *visitor {
	v, ok := h.visitors[id]
	if !ok {
		v = &visitor{subs: make(map[chan Snapshot]struct{})}
		v.seq = NewSequencer(h.deps, func(snap Snapshot) { h.publish(id, snap) })
		h.visitors[id] = v
		metrics.PipelineSessions.Set(float64(len(h.visitors)))
	}
	v.lastSeen = h.now()
	return v
}

// Sequencer returns the visitor's sequencer, creating it on first use.
func (h *Hub) Sequencer(visitorID string) *Sequencer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.getOrCreateLocked(visitorID).seq
}

// Subscribe returns a channel that receives the visitor's snapshots and an
// unsubscribe function. ok is false when the stream caps are reached.
// Slow subscribers only ever see the latest snapshot.
func (h *Hub) Subscribe(visitorID string) (ch <-chan Snapshot, unsubscribe func(), ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalStreams >= maxTotalStreams {
		return nil, func() {}, false
	}
	v := h.getOrCreateLocked(visitorID)
	if len(v.subs) >= maxStreamsPerVisitor {
		return nil, func() {}, false
	}

	sub := make(chan Snapshot, 1)
	v.subs[sub] = struct{}{}
	h.totalStreams++

	var once sync.Once
	unsubscribe = func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if v, ok := h.visitors[visitorID]; ok {
				if _, ok := v.subs[sub]; ok {
					delete(v.subs, sub)
					close(sub)
				}
				v.lastSeen = h.now()
			}
			if h.totalStreams > 0 {
				h.totalStreams--
			}
		})
	}
	return sub, unsubscribe, true
}

func (h *Hub) publish(visitorID string, snap Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	v, ok := h.visitors[visitorID]
	if !ok {
		return
	}
	v.lastSeen = h.now()
	for sub := range v.subs {
		select {
		case sub <- snap:
		default:
			// Replace the stale snapshot rather than block the sequencer.
			select {
			case <-sub:
			default:
			}
			select {
			case sub <- snap:
			default:
			}
		}
	}
}

// Len returns the number of visitors held.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.visitors)
}

// PruneIdle drops visitors without streams whose last activity is older
// than the idle threshold. Their in-flight work is cancelled.
func (h *Hub) PruneIdle(now time.Time) int {
	h.mu.Lock()
	var evicted []*Sequencer
	for id, v := range h.visitors {
		if len(v.subs) > 0 || now.Sub(v.lastSeen) <= h.idleAfter {
			continue
		}
		delete(h.visitors, id)
		evicted = append(evicted, v.seq)
	}
	metrics.PipelineSessions.Set(float64(len(h.visitors)))
	h.mu.Unlock()

	// Reset outside the hub lock: sequencers publish back into the hub.
	for _, seq := range evicted {
		seq.Reset()
	}
	return len(evicted)
}

// Run prunes idle visitors every interval until ctx is done.
func (h *Hub) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := h.PruneIdle(now); n > 0 {
				slog.Debug("pruned idle pipeline visitors", "count", n)
			}
		}
	}
}
