// Package alert detects increases in the pending-order count and turns them
// into operator alerts: an audible tone cycle and an optional system
// notification. The comparison logic is a pure state machine; side effects
// are described as values and executed by a separate Notifier.
package alert

import "sync"

// State of the engine with respect to the pending-orders view.
type State int

const (
	// Inactive means the pending view is not being browsed; counts are not
	// observed and the previous count is not maintained.
	Inactive State = iota
	// Seeding means the view was just entered; the first observed count is
	// stored without alerting so a page load over N existing pending orders
	// does not fire.
	Seeding
	// Watching means a baseline exists and strict increases alert.
	Watching
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Seeding:
		return "seeding"
	case Watching:
		return "watching"
	default:
		return "unknown"
	}
}

// Effect is a side effect requested by a transition.
type Effect struct {
	Kind     EffectKind
	NewCount int // how many new pending orders arrived
}

type EffectKind int

const (
	// EffectSound requests one audible alert cycle.
	EffectSound EffectKind = iota
	// EffectNotify requests one system notification.
	EffectNotify
)

// Notifier executes alert effects. Implementations must not block the
// caller; overlapping cycles are allowed and never coalesced.
type Notifier interface {
	PlayAlertSound(newCount int)
	PushNotification(newCount int)
}

// transition is the pure core: given the current state, the stored previous
// count and a newly observed count, it yields the next state, the count to
// store and the effects to run.
func transition(state State, previous, observed int, soundEnabled bool) (State, int, []Effect) {
	switch state {
	case Inactive:
		// Observations while inactive are ignored entirely.
		return Inactive, previous, nil

	case Seeding:
		return Watching, observed, nil

	case Watching:
		switch {
		case observed > previous:
			arrived := observed - previous
			effects := make([]Effect, 0, 2)
			if soundEnabled {
				effects = append(effects, Effect{Kind: EffectSound, NewCount: arrived})
			}
			effects = append(effects, Effect{Kind: EffectNotify, NewCount: arrived})
			return Watching, observed, effects
		case observed < previous:
			// Orders left pending (prepared or cancelled): resync silently.
			return Watching, observed, nil
		default:
			return Watching, previous, nil
		}

	default:
		return state, previous, nil
	}
}

// Engine wraps the transition function with explicit ownership of the
// previous-count baseline and the sound toggle.
type Engine struct {
	mu           sync.Mutex
	state        State
	previous     int
	soundEnabled bool

	notifier Notifier
}

func NewEngine(notifier Notifier) *Engine {
	return &Engine{
		state:        Inactive,
		soundEnabled: true,
		notifier:     notifier,
	}
}

// Activate arms the engine on entry to the pending-orders view. The next
// observation seeds the baseline without alerting. Activating an already
// active engine is a no-op, so repeated renders of the same view do not
// reseed.
func (e *Engine) Activate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Inactive {
		e.state = Seeding
	}
}

// Deactivate disarms the engine on leaving the pending-orders view. A later
// reactivation reseeds from scratch.
func (e *Engine) Deactivate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = Inactive
	e.previous = 0
}

// Active reports whether counts are currently observed.
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state != Inactive
}

// SetSoundEnabled toggles the audible part of the alert cycle. Counter
// bookkeeping and notifications are unaffected, so re-enabling never alerts
// retroactively for increases processed while muted.
func (e *Engine) SetSoundEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.soundEnabled = enabled
}

// SoundEnabled reports the current toggle for the view.
func (e *Engine) SoundEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.soundEnabled
}

// Observe feeds one pending-count observation through the state machine and
// runs the resulting effects.
func (e *Engine) Observe(count int) {
	e.mu.Lock()
	next, previous, effects := transition(e.state, e.previous, count, e.soundEnabled)
	e.state = next
	e.previous = previous
	notifier := e.notifier
	e.mu.Unlock()

	if notifier == nil {
		return
	}
	for _, effect := range effects {
		switch effect.Kind {
		case EffectSound:
			notifier.PlayAlertSound(effect.NewCount)
		case EffectNotify:
			notifier.PushNotification(effect.NewCount)
		}
	}
}
