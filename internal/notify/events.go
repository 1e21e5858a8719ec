package notify

import "time"

const (
	// NotificationTopic delivers human-readable notification messages
	// emitted by the backend when an order arrives.
	NotificationTopic = "orders.notification.new"
	// UnreadCountTopic delivers authoritative unread-counter updates.
	UnreadCountTopic = "orders.notification.unread"

	// EventNewNotification identifies a notification message payload.
	EventNewNotification = "notification.new"
	// EventUnreadCount identifies an unread-counter payload.
	EventUnreadCount = "notification.unread_count"
)

// NotificationEvent carries a display message for the operator.
type NotificationEvent struct {
	EventType  string    `json:"event_type"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// UnreadCountEvent mirrors the backend's unread-notification counter.
type UnreadCountEvent struct {
	EventType  string    `json:"event_type"`
	Count      int       `json:"count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Event is what connected browsers receive over the SSE stream.
type Event struct {
	Kind    string `json:"kind"`
	Message string `json:"message,omitempty"`
	Count   int    `json:"count,omitempty"`
}

// SSE event kinds.
const (
	KindToast       = "toast"       // dismissable, non-expiring toast
	KindBadge       = "badge"       // unread counter for the nav entry
	KindAlertSound  = "alert-sound" // play one audible alert cycle
	KindAlertNotify = "alert-notify" // one-shot system notification
)
