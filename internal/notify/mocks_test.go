package notify

import (
	"context"
	"errors"

	"github.com/aquamarinepk/aqm/events"
)

// mockSubscriber implements events.Subscriber for testing
type mockSubscriber struct {
	SubscribeFunc func(ctx context.Context, topic string, handler events.HandlerFunc) error
	handlers      map[string]events.HandlerFunc
}

func (m *mockSubscriber) Subscribe(ctx context.Context, topic string, handler events.HandlerFunc) error {
	if m.handlers == nil {
		m.handlers = make(map[string]events.HandlerFunc)
	}
	m.handlers[topic] = handler
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(ctx, topic, handler)
	}
	return nil
}

// deliver feeds a raw message to the handler registered for the topic.
func (m *mockSubscriber) deliver(topic string, msg []byte) error {
	handler, ok := m.handlers[topic]
	if !ok {
		return errors.New("no handler for topic " + topic)
	}
	return handler(context.Background(), msg)
}

// mockSeeder implements badgeSeeder for testing
type mockSeeder struct {
	CountFunc func(ctx context.Context) (int, error)
}

func (m *mockSeeder) UnreadNotificationsCount(ctx context.Context) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// drainEvents collects everything currently buffered on an event channel.
func drainEvents(ch <-chan Event) []Event {
	var drained []Event
	for {
		select {
		case evt, ok := <-ch:
			if !ok {
				return drained
			}
			drained = append(drained, evt)
		default:
			return drained
		}
	}
}
