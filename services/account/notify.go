package account

import "sync"

// SessionEventType labels a session-change notification.
type SessionEventType string

const (
	SessionSignedIn  SessionEventType = "signed-in"
	SessionSignedOut SessionEventType = "signed-out"
)

// SessionEvent is delivered to subscribers on every session change.
type SessionEvent struct {
	Type   SessionEventType
	UserID string
}

// Hub fans session-change events out to subscribers. Subscribe returns the
// matching unsubscribe handle; callers must release it on every exit path.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[int]func(SessionEvent)
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]func(SessionEvent))}
}

// Subscribe registers fn and returns its unsubscribe handle. The handle is
// idempotent: releasing twice is safe.
func (h *Hub) Subscribe(fn func(SessionEvent)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Publish delivers ev to all current subscribers on the caller's goroutine.
func (h *Hub) Publish(ev SessionEvent) {
	h.mu.Lock()
	fns := make([]func(SessionEvent), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// SubscriberCount reports the number of active subscriptions.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
