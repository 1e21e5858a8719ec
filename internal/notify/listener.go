package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/events"
)

// badgeSeeder reads the initial unread-counter value from the backend.
type badgeSeeder interface {
	UnreadNotificationsCount(ctx context.Context) (int, error)
}

// Listener is the process-wide inbound side of the push channel. It is
// started once with the application and owns the unread badge count; every
// other component reads the badge through it and never writes it.
type Listener struct {
	subscriber  events.Subscriber
	broadcaster *Broadcaster
	seeder      badgeSeeder
	logger      aqm.Logger

	mu     sync.RWMutex
	unread int
}

func NewListener(subscriber events.Subscriber, broadcaster *Broadcaster, seeder badgeSeeder, logger aqm.Logger) *Listener {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Listener{
		subscriber:  subscriber,
		broadcaster: broadcaster,
		seeder:      seeder,
		logger:      logger,
	}
}

// Start seeds the badge and subscribes to both push topics. A failed seed is
// logged and left at zero; the next counter event corrects it.
func (l *Listener) Start(ctx context.Context) error {
	if l.subscriber == nil {
		return fmt.Errorf("push subscriber not configured")
	}

	if l.seeder != nil {
		count, err := l.seeder.UnreadNotificationsCount(ctx)
		if err != nil {
			l.logger.Info("cannot seed unread badge", "error", err)
		} else {
			l.setUnread(count)
		}
	}

	l.logger.Info("starting notification listener", "topic", NotificationTopic)
	if err := l.subscriber.Subscribe(ctx, NotificationTopic, l.handleNotification); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", NotificationTopic, err)
	}

	if err := l.subscriber.Subscribe(ctx, UnreadCountTopic, l.handleUnreadCount); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", UnreadCountTopic, err)
	}

	return nil
}

// Stop closes the fan-out channels. The push connection itself is closed by
// its own lifecycle hook.
func (l *Listener) Stop(ctx context.Context) error {
	if l.broadcaster != nil {
		l.broadcaster.Close()
	}
	return nil
}

// UnreadCount returns the badge value shown next to the orders nav entry.
func (l *Listener) UnreadCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.unread
}

// ResetUnread clears the local badge, used when the orders view consumes the
// notifications. The backend counter is cleared separately by the gateway.
func (l *Listener) ResetUnread() {
	l.setUnread(0)
	if l.broadcaster != nil {
		l.broadcaster.Publish(Event{Kind: KindBadge, Count: 0})
	}
}

func (l *Listener) handleNotification(ctx context.Context, msg []byte) error {
	var evt NotificationEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		l.logger.Info("invalid notification event", "error", err)
		return nil
	}

	if evt.EventType != "" && evt.EventType != EventNewNotification {
		l.logger.Debug("ignoring mistyped notification event", "event_type", evt.EventType)
		return nil
	}

	if evt.Message == "" {
		return nil
	}

	if l.broadcaster != nil {
		l.broadcaster.Publish(Event{Kind: KindToast, Message: evt.Message})
	}
	return nil
}

func (l *Listener) handleUnreadCount(ctx context.Context, msg []byte) error {
	var evt UnreadCountEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		l.logger.Info("invalid unread count event", "error", err)
		return nil
	}

	if evt.EventType != "" && evt.EventType != EventUnreadCount {
		l.logger.Debug("ignoring mistyped unread count event", "event_type", evt.EventType)
		return nil
	}

	if evt.Count < 0 {
		l.logger.Debug("ignoring negative unread count", "count", evt.Count)
		return nil
	}

	l.setUnread(evt.Count)
	if l.broadcaster != nil {
		l.broadcaster.Publish(Event{Kind: KindBadge, Count: evt.Count})
	}
	return nil
}

func (l *Listener) setUnread(count int) {
	l.mu.Lock()
	l.unread = count
	l.mu.Unlock()
}
