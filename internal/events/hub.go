package events

import "sync"

// subscriberBuffer absorbs a scan's worth of lifecycle events; a client
// further behind than this is dropped-from, not waited-for.
const subscriberBuffer = 16

// Hub fans events out to subscribed SSE clients. Slow clients lose
// events instead of stalling the scan that publishes them.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
	close(ch)
}

// Publish builds the event and hands it to every subscriber whose buffer
// has room.
func (h *Hub) Publish(typ string, data any) {
	e := New(typ, data)
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
