package layout

import "sync"

// View is an external reader of the layout. Sync receives a private copy of
// the latest snapshot and may be called repeatedly with the same version.
type View interface {
	Sync(Snapshot)
}

// ViewFunc adapts a function to the View interface.
type ViewFunc func(Snapshot)

// Sync calls f(s).
func (f ViewFunc) Sync(s Snapshot) { f(s) }

// Hub fans snapshots out to subscribed views. A view that is not ready yet
// gets at most one buffered snapshot, and newer snapshots overwrite it.
type Hub struct {
	mu     sync.Mutex
	subs   []*Subscription
	latest *Snapshot
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// Subscription is one view's registration with a Hub.
type Subscription struct {
	hub  *Hub
	view View

	// guarded by hub.mu
	ready   bool
	pending *Snapshot
	active  bool

	// guarded by deliverMu, which is never held while the view runs
	deliverMu  sync.Mutex
	next       *Snapshot
	delivering bool
	delivered  uint64
	closed     bool
}

// Subscribe registers v as not ready. The latest published snapshot, if any,
// is buffered until MarkReady is called.
func (h *Hub) Subscribe(v View) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	sub := &Subscription{hub: h, view: v, active: true}
	if h.latest != nil {
		s := *h.latest
		sub.pending = &s
	}
	h.subs = append(h.subs, sub)
	return sub
}

// SubscribeReady registers v and immediately delivers the latest snapshot.
func (h *Hub) SubscribeReady(v View) *Subscription {
	sub := h.Subscribe(v)
	sub.MarkReady()
	return sub
}

// Publish records s as the latest snapshot and delivers it to every ready
// subscription. Snapshots older than the latest one are dropped.
func (h *Hub) Publish(s Snapshot) {
	h.mu.Lock()
	if h.latest != nil && s.Version <= h.latest.Version {
		h.mu.Unlock()
		return
	}
	h.latest = &s
	var ready []*Subscription
	for _, sub := range h.subs {
		if sub.ready {
			ready = append(ready, sub)
			continue
		}
		p := s
		sub.pending = &p
	}
	h.mu.Unlock()

	for _, sub := range ready {
		sub.deliver(s)
	}
}

// Latest returns the most recently published snapshot.
func (h *Hub) Latest() (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest == nil {
		return Snapshot{}, false
	}
	return h.latest.Clone(), true
}

// Len returns the number of active subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// MarkReady flags the view as ready and flushes the buffered snapshot.
func (s *Subscription) MarkReady() {
	h := s.hub
	h.mu.Lock()
	if !s.active {
		h.mu.Unlock()
		return
	}
	s.ready = true
	p := s.pending
	s.pending = nil
	h.mu.Unlock()

	if p != nil {
		s.deliver(*p)
	}
}

// isReady reports whether the view receives snapshots directly.
func (s *Subscription) isReady() bool {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	return s.ready
}

// pendingSnapshot returns the buffered snapshot of a view that is not ready
// yet.
func (s *Subscription) pendingSnapshot() (Snapshot, bool) {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if s.pending == nil {
		return Snapshot{}, false
	}
	return s.pending.Clone(), true
}

// Unsubscribe detaches the view. It is safe to call more than once and from
// inside the view's own Sync. A Sync already running on another goroutine
// may still complete, but no further delivery starts.
func (s *Subscription) Unsubscribe() {
	h := s.hub
	h.mu.Lock()
	if s.active {
		s.active = false
		s.ready = false
		s.pending = nil
		for i, sub := range h.subs {
			if sub == s {
				h.subs = append(h.subs[:i], h.subs[i+1:]...)
				break
			}
		}
	}
	h.mu.Unlock()

	s.deliverMu.Lock()
	s.closed = true
	s.next = nil
	s.deliverMu.Unlock()
}

// deliver hands the view its own copy of snap unless it has already seen the
// same or a newer version. Sync runs without any lock held. Calls made while
// a delivery is in progress, including from inside Sync, leave their
// snapshot for the running delivery, which passes on the newest one after
// Sync returns. Each view therefore sees increasing versions, one at a time.
func (s *Subscription) deliver(snap Snapshot) {
	s.deliverMu.Lock()
	if s.closed || s.stale(snap.Version) {
		s.deliverMu.Unlock()
		return
	}
	s.next = &snap
	if s.delivering {
		s.deliverMu.Unlock()
		return
	}

	s.delivering = true
	for s.next != nil && !s.closed {
		cur := *s.next
		s.next = nil
		s.delivered = cur.Version
		s.deliverMu.Unlock()
		s.view.Sync(cur.Clone())
		s.deliverMu.Lock()
	}
	s.next = nil
	s.delivering = false
	s.deliverMu.Unlock()
}

// stale reports whether version is not newer than what the view has seen or
// is about to see. Must be called with deliverMu held.
func (s *Subscription) stale(version uint64) bool {
	if s.delivered != 0 && version <= s.delivered {
		return true
	}
	return s.next != nil && version <= s.next.Version
}
