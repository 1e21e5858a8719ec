package notify

import (
	"fmt"
	"sync"

	"github.com/aquamarinepk/aqm"
)

// Broadcaster fans events out to every connected SSE subscriber. Slow
// subscribers drop events rather than block the publisher.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
	logger      aqm.Logger
}

func NewBroadcaster(logger aqm.Logger) *Broadcaster {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Broadcaster{
		subscribers: make(map[string]chan Event),
		logger:      logger,
	}
}

// Subscribe adds a subscriber and returns its event channel.
func (b *Broadcaster) Subscribe(subscriberID string) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, 100)
	b.subscribers[subscriberID] = ch

	b.logger.Info("new event subscriber", "subscriber_id", subscriberID, "total_subscribers", len(b.subscribers))

	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster) Unsubscribe(subscriberID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[subscriberID]; ok {
		close(ch)
		delete(b.subscribers, subscriberID)
		b.logger.Info("event subscriber disconnected", "subscriber_id", subscriberID, "total_subscribers", len(b.subscribers))
	}
}

// Publish sends the event to all subscribers.
func (b *Broadcaster) Publish(evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for subscriberID, ch := range b.subscribers {
		select {
		case ch <- evt:
		default:
			// Channel full, subscriber too slow - skip this event
			b.logger.Info("subscriber channel full, dropping event", "subscriber_id", subscriberID, "kind", evt.Kind)
		}
	}
}

// Close shuts down all subscriber channels.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}

// PlayAlertSound asks connected browsers to run one audible alert cycle.
// Together with PushNotification it lets the broadcaster act as the alert
// engine's notifier.
func (b *Broadcaster) PlayAlertSound(newCount int) {
	b.Publish(Event{Kind: KindAlertSound, Count: newCount})
}

// PushNotification asks connected browsers to show a one-shot system
// notification, if permission was granted there.
func (b *Broadcaster) PushNotification(newCount int) {
	msg := fmt.Sprintf("%d new pending order", newCount)
	if newCount != 1 {
		msg = fmt.Sprintf("%d new pending orders", newCount)
	}
	b.Publish(Event{Kind: KindAlertNotify, Count: newCount, Message: msg})
}
