package alert

import (
	"context"
	"sync"
)

// mockNotifier implements Notifier for testing
type mockNotifier struct {
	mu      sync.Mutex
	sounds  []int
	notices []int
}

func (m *mockNotifier) PlayAlertSound(newCount int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sounds = append(m.sounds, newCount)
}

func (m *mockNotifier) PushNotification(newCount int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = append(m.notices, newCount)
}

func (m *mockNotifier) soundCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sounds)
}

func (m *mockNotifier) noticeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notices)
}

// mockCounter implements PendingCounter for testing
type mockCounter struct {
	CountFunc func(ctx context.Context) (int, error)
	calls     int
}

func (m *mockCounter) PendingCount(ctx context.Context) (int, error) {
	m.calls++
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}
