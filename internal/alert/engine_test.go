package alert

import "testing"

func TestEngineAlertsOnlyOnIncreases(t *testing.T) {
	notifier := &mockNotifier{}
	engine := NewEngine(notifier)
	engine.Activate()

	// First observation seeds, increases alert, decreases and repeats
	// stay silent.
	for _, count := range []int{5, 5, 8, 8, 3, 6} {
		engine.Observe(count)
	}

	if got := notifier.soundCount(); got != 2 {
		t.Errorf("sound cycles = %d, want 2 (5 to 8 and 3 to 6)", got)
	}
	if got := notifier.noticeCount(); got != 2 {
		t.Errorf("notifications = %d, want 2", got)
	}
	if notifier.sounds[0] != 3 || notifier.sounds[1] != 3 {
		t.Errorf("new counts = %v, want [3 3]", notifier.sounds)
	}
}

func TestFirstObservationSeedsSilently(t *testing.T) {
	notifier := &mockNotifier{}
	engine := NewEngine(notifier)
	engine.Activate()

	engine.Observe(12)

	if notifier.soundCount() != 0 || notifier.noticeCount() != 0 {
		t.Error("seeding observation must not alert")
	}

	engine.Observe(13)
	if notifier.soundCount() != 1 {
		t.Errorf("sound cycles = %d, want 1 after the baseline grows", notifier.soundCount())
	}
}

func TestObservationsWhileInactiveAreIgnored(t *testing.T) {
	notifier := &mockNotifier{}
	engine := NewEngine(notifier)

	engine.Observe(5)
	engine.Observe(9)

	if notifier.soundCount() != 0 {
		t.Error("inactive engine must not alert")
	}

	// Activation after ignored observations starts from a fresh seed.
	engine.Activate()
	engine.Observe(9)
	if notifier.soundCount() != 0 {
		t.Error("first observation after activation must seed, not alert")
	}
}

func TestDeactivateResetsBaseline(t *testing.T) {
	notifier := &mockNotifier{}
	engine := NewEngine(notifier)
	engine.Activate()
	engine.Observe(2)
	engine.Observe(4)

	engine.Deactivate()
	engine.Activate()

	// Re-entering over 10 existing pending orders must not alert.
	engine.Observe(10)
	if got := notifier.soundCount(); got != 1 {
		t.Errorf("sound cycles = %d, want only the one from before deactivation", got)
	}
}

func TestActivateIsIdempotentWhileActive(t *testing.T) {
	notifier := &mockNotifier{}
	engine := NewEngine(notifier)
	engine.Activate()
	engine.Observe(5)

	// A repeated render of the same view activates again; the baseline
	// must survive so the next increase still alerts.
	engine.Activate()
	engine.Observe(7)

	if got := notifier.soundCount(); got != 1 {
		t.Errorf("sound cycles = %d, want 1 (baseline kept across re-activation)", got)
	}
}

func TestSoundToggleMutesOnlyTheSound(t *testing.T) {
	notifier := &mockNotifier{}
	engine := NewEngine(notifier)
	engine.Activate()
	engine.SetSoundEnabled(false)

	engine.Observe(1)
	engine.Observe(4)

	if notifier.soundCount() != 0 {
		t.Error("muted engine must not play sound")
	}
	if notifier.noticeCount() != 1 {
		t.Errorf("notifications = %d, want 1 even while muted", notifier.noticeCount())
	}

	// Re-enabling never alerts retroactively: the baseline advanced while
	// muted.
	engine.SetSoundEnabled(true)
	engine.Observe(4)
	if notifier.soundCount() != 0 {
		t.Error("re-enabling sound must not alert for already processed increases")
	}
}

func TestDecreaseResyncsBaseline(t *testing.T) {
	notifier := &mockNotifier{}
	engine := NewEngine(notifier)
	engine.Activate()
	engine.Observe(10)
	engine.Observe(4)

	// The next increase is measured against the resynced baseline.
	engine.Observe(6)
	if len(notifier.sounds) != 1 || notifier.sounds[0] != 2 {
		t.Errorf("sounds = %v, want one alert for 2 new orders", notifier.sounds)
	}
}

func TestStateString(t *testing.T) {
	cases := []struct {
		state State
		want  string
	}{
		{Inactive, "inactive"},
		{Seeding, "seeding"},
		{Watching, "watching"},
		{State(42), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.state.String(); got != tc.want {
			t.Errorf("State(%d).String() = %q, want %q", tc.state, got, tc.want)
		}
	}
}
