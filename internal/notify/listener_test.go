package notify

import (
	"context"
	"errors"
	"testing"
)

func TestListenerStartSeedsBadge(t *testing.T) {
	sub := &mockSubscriber{}
	seeder := &mockSeeder{
		CountFunc: func(ctx context.Context) (int, error) { return 7, nil },
	}
	listener := NewListener(sub, NewBroadcaster(nil), seeder, nil)

	if err := listener.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got := listener.UnreadCount(); got != 7 {
		t.Errorf("UnreadCount() = %d, want seeded 7", got)
	}
	if _, ok := sub.handlers[NotificationTopic]; !ok {
		t.Error("not subscribed to notification topic")
	}
	if _, ok := sub.handlers[UnreadCountTopic]; !ok {
		t.Error("not subscribed to unread count topic")
	}
}

func TestListenerStartSurvivesSeedFailure(t *testing.T) {
	sub := &mockSubscriber{}
	seeder := &mockSeeder{
		CountFunc: func(ctx context.Context) (int, error) {
			return 0, errors.New("backend unreachable")
		},
	}
	listener := NewListener(sub, NewBroadcaster(nil), seeder, nil)

	if err := listener.Start(context.Background()); err != nil {
		t.Fatalf("Start() should tolerate a failed seed, got %v", err)
	}
	if got := listener.UnreadCount(); got != 0 {
		t.Errorf("UnreadCount() = %d, want 0", got)
	}
}

func TestListenerStartNilSubscriber(t *testing.T) {
	listener := NewListener(nil, NewBroadcaster(nil), nil, nil)
	if err := listener.Start(context.Background()); err == nil {
		t.Error("Start() without subscriber should return error")
	}
}

func TestHandleNotificationBroadcastsToast(t *testing.T) {
	sub := &mockSubscriber{}
	broadcaster := NewBroadcaster(nil)
	listener := NewListener(sub, broadcaster, nil, nil)
	if err := listener.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ch := broadcaster.Subscribe("browser-1")
	msg := []byte(`{"event_type":"notification.new","message":"New order CMD-9"}`)
	if err := sub.deliver(NotificationTopic, msg); err != nil {
		t.Fatalf("deliver() error = %v", err)
	}

	events := drainEvents(ch)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Kind != KindToast || events[0].Message != "New order CMD-9" {
		t.Errorf("event = %+v, want toast with message", events[0])
	}
}

func TestHandleNotificationIgnoresMalformedPayload(t *testing.T) {
	sub := &mockSubscriber{}
	broadcaster := NewBroadcaster(nil)
	listener := NewListener(sub, broadcaster, nil, nil)
	if err := listener.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ch := broadcaster.Subscribe("browser-1")
	if err := sub.deliver(NotificationTopic, []byte("not json")); err != nil {
		t.Errorf("malformed payload should be swallowed, got %v", err)
	}
	if events := drainEvents(ch); len(events) != 0 {
		t.Errorf("events = %d, want 0", len(events))
	}
}

func TestHandleNotificationIgnoresMistypedPayload(t *testing.T) {
	sub := &mockSubscriber{}
	broadcaster := NewBroadcaster(nil)
	listener := NewListener(sub, broadcaster, nil, nil)
	if err := listener.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ch := broadcaster.Subscribe("browser-1")
	msg := []byte(`{"event_type":"` + EventUnreadCount + `","message":"misrouted"}`)
	if err := sub.deliver(NotificationTopic, msg); err != nil {
		t.Errorf("mistyped payload should be swallowed, got %v", err)
	}
	if events := drainEvents(ch); len(events) != 0 {
		t.Errorf("events = %d, want 0 for mismatched event_type", len(events))
	}
}

func TestHandleUnreadCountUpdatesBadge(t *testing.T) {
	sub := &mockSubscriber{}
	broadcaster := NewBroadcaster(nil)
	listener := NewListener(sub, broadcaster, nil, nil)
	if err := listener.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ch := broadcaster.Subscribe("browser-1")
	msg := []byte(`{"event_type":"notification.unread_count","count":4}`)
	if err := sub.deliver(UnreadCountTopic, msg); err != nil {
		t.Fatalf("deliver() error = %v", err)
	}

	if got := listener.UnreadCount(); got != 4 {
		t.Errorf("UnreadCount() = %d, want 4", got)
	}
	events := drainEvents(ch)
	if len(events) != 1 || events[0].Kind != KindBadge || events[0].Count != 4 {
		t.Errorf("events = %+v, want one badge event with count 4", events)
	}
}

func TestHandleUnreadCountIgnoresNegative(t *testing.T) {
	sub := &mockSubscriber{}
	listener := NewListener(sub, NewBroadcaster(nil), nil, nil)
	if err := listener.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := sub.deliver(UnreadCountTopic, []byte(`{"count":3}`)); err != nil {
		t.Fatal(err)
	}
	if err := sub.deliver(UnreadCountTopic, []byte(`{"count":-1}`)); err != nil {
		t.Fatal(err)
	}

	if got := listener.UnreadCount(); got != 3 {
		t.Errorf("UnreadCount() = %d, want 3 kept after negative update", got)
	}
}

func TestHandleUnreadCountIgnoresMistypedPayload(t *testing.T) {
	sub := &mockSubscriber{}
	listener := NewListener(sub, NewBroadcaster(nil), nil, nil)
	if err := listener.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := sub.deliver(UnreadCountTopic, []byte(`{"count":3}`)); err != nil {
		t.Fatal(err)
	}
	msg := []byte(`{"event_type":"` + EventNewNotification + `","count":9}`)
	if err := sub.deliver(UnreadCountTopic, msg); err != nil {
		t.Fatal(err)
	}

	if got := listener.UnreadCount(); got != 3 {
		t.Errorf("UnreadCount() = %d, want 3 kept after mistyped update", got)
	}
}

func TestResetUnreadZeroesAndBroadcasts(t *testing.T) {
	sub := &mockSubscriber{}
	broadcaster := NewBroadcaster(nil)
	listener := NewListener(sub, broadcaster, nil, nil)
	if err := listener.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := sub.deliver(UnreadCountTopic, []byte(`{"count":9}`)); err != nil {
		t.Fatal(err)
	}

	ch := broadcaster.Subscribe("browser-1")
	listener.ResetUnread()

	if got := listener.UnreadCount(); got != 0 {
		t.Errorf("UnreadCount() = %d, want 0 after reset", got)
	}
	events := drainEvents(ch)
	if len(events) != 1 || events[0].Kind != KindBadge || events[0].Count != 0 {
		t.Errorf("events = %+v, want one zero badge event", events)
	}
}
