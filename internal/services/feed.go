package services

import (
	"sync"

	"github.com/google/uuid"
)

// Order feed event types pushed to the admin console
const (
	EventOrderPlaced    = "order_placed"
	EventOrderStatus    = "order_status"
	EventPaymentSettled = "payment_settled"
)

// OrderEvent is one push message on the admin live feed
type OrderEvent struct {
	Type         string    `json:"type"`
	OrderID      uuid.UUID `json:"order_id"`
	OrderNumber  string    `json:"order_number,omitempty"`
	Status       string    `json:"status"`
	TotalAmount  int64     `json:"total_amount"`
	TrackingCode string    `json:"tracking_code,omitempty"`
}

// OrderFeed fans order events out to subscribed websocket connections.
// Slow subscribers drop events rather than block publishers.
type OrderFeed struct {
	mu   sync.Mutex
	subs map[uuid.UUID]chan OrderEvent
}

// NewOrderFeed creates an empty feed
func NewOrderFeed() *OrderFeed {
	return &OrderFeed{subs: make(map[uuid.UUID]chan OrderEvent)}
}

// Subscribe registers a listener; call the returned cancel func on
// disconnect.
func (f *OrderFeed) Subscribe() (<-chan OrderEvent, func()) {
	id := uuid.New()
	ch := make(chan OrderEvent, 16)

	f.mu.Lock()
	f.subs[id] = ch
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if ch, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber without blocking
func (f *OrderFeed) Publish(event OrderEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
