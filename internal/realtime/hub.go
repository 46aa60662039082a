package realtime

import (
	"sync"
	"time"
)

// EventType identifies the kind of change an event describes.
type EventType string

const (
	EventAppointmentUpdated EventType = "appointment.updated"
	EventChatMessage        EventType = "chat.message"
)

// Event is a change notification delivered to a subscribed user.
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
	At      time.Time   `json:"at"`
}

// subscriberBuffer bounds each subscriber channel. Slow consumers drop
// events rather than block publishers; streams are live views, not a log.
const subscriberBuffer = 16

// Hub is the in-process subscription manager. Components publish domain
// events addressed to a user id; any number of subscribers per user receive
// them until their cancel function runs.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan Event]struct{})}
}

// Subscribe registers a listener for events addressed to userID. The returned
// cancel function unregisters the listener and closes the channel; it is safe
// to call more than once.
func (h *Hub) Subscribe(userID string) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan Event]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if set, ok := h.subs[userID]; ok {
				delete(set, ch)
				if len(set) == 0 {
					delete(h.subs, userID)
				}
			}
			// Closed under the write lock so no publisher can be mid-send.
			close(ch)
			h.mu.Unlock()
		})
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber of userID. Delivery is
// best-effort: a subscriber whose buffer is full misses the event.
func (h *Hub) Publish(userID string, event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[userID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount reports how many listeners userID currently has.
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
