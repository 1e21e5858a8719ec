package admin

import (
	"context"
	"errors"
	"fmt"
)

// mockOrderFetcher implements orderFetcher for testing
type mockOrderFetcher struct {
	FilterFunc func(ctx context.Context, status *string) ([]orderResource, error)
	SearchFunc func(ctx context.Context, params OrderSearchParams) ([]orderResource, error)
}

func (m *mockOrderFetcher) Filter(ctx context.Context, status *string) ([]orderResource, error) {
	if m.FilterFunc != nil {
		return m.FilterFunc(ctx, status)
	}
	return nil, nil
}

func (m *mockOrderFetcher) Search(ctx context.Context, params OrderSearchParams) ([]orderResource, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, params)
	}
	return nil, nil
}

// mockOrderMutator implements orderMutator for testing
type mockOrderMutator struct {
	UpdateStatusFunc  func(ctx context.Context, id, newStatus string) error
	UpdatePaymentFunc func(ctx context.Context, id, paymentStatus string) error
}

func (m *mockOrderMutator) UpdateStatus(ctx context.Context, id, newStatus string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, newStatus)
	}
	return errors.New("not implemented")
}

func (m *mockOrderMutator) UpdatePayment(ctx context.Context, id, paymentStatus string) error {
	if m.UpdatePaymentFunc != nil {
		return m.UpdatePaymentFunc(ctx, id, paymentStatus)
	}
	return errors.New("not implemented")
}

// mockRefetcher implements refetcher for testing
type mockRefetcher struct {
	RefetchFunc func(ctx context.Context)
	calls       int
}

func (m *mockRefetcher) Refetch(ctx context.Context) {
	m.calls++
	if m.RefetchFunc != nil {
		m.RefetchFunc(ctx)
	}
}

// mockMarker implements notificationMarker for testing
type mockMarker struct {
	MarkFunc func(ctx context.Context) error
	calls    int
}

func (m *mockMarker) MarkNotificationsRead(ctx context.Context) error {
	m.calls++
	if m.MarkFunc != nil {
		return m.MarkFunc(ctx)
	}
	return nil
}

// mockBadge implements badgeState for testing
type mockBadge struct {
	count  int
	resets int
}

func (m *mockBadge) UnreadCount() int { return m.count }
func (m *mockBadge) ResetUnread()     { m.resets++ }

// mockAlerts implements alertControl for testing
type mockAlerts struct {
	active      bool
	sound       bool
	activates   int
	deactivates int
}

func (m *mockAlerts) Activate() {
	m.active = true
	m.activates++
}

func (m *mockAlerts) Deactivate() {
	m.active = false
	m.deactivates++
}

func (m *mockAlerts) SetSoundEnabled(enabled bool) { m.sound = enabled }
func (m *mockAlerts) SoundEnabled() bool           { return m.sound }

// mockPoller implements pendingPoller for testing
type mockPoller struct {
	calls int
}

func (m *mockPoller) Poll(ctx context.Context) { m.calls++ }

func makeOrders(n int, status string) []orderResource {
	orders := make([]orderResource, n)
	for i := range orders {
		orders[i] = orderResource{ID: fmt.Sprintf("%s-%d", status, i+1), Status: status}
	}
	return orders
}
