// Package fsm provides a small generic finite state machine.
//
// A Machine owns exactly one current state. States are strategy objects
// parameterised over the owner type O and an optional actor type A (the
// entity the owner reacts to, such as the player an enemy is chasing).
// A state requests a transition by returning the next state from Update;
// the machine applies it after the update returns, so Exit and Enter never
// run re-entrantly.
package fsm

import "time"

// State is one behaviour of an owner.
type State[O, A any] interface {
	Name() string
	Enter(owner O)
	// Update advances the state by dt. A non-nil return value is the state
	// to switch to.
	Update(owner O, dt time.Duration) State[O, A]
	Exit(owner O)
}

// ActorUpdater is implemented by states that react to an actor. States
// that do not implement it receive plain Update calls from UpdateWithActor.
type ActorUpdater[O, A any] interface {
	UpdateWithActor(owner O, actor A, dt time.Duration) State[O, A]
}

// TransitionFunc observes state changes. from is empty for the first state.
type TransitionFunc func(from, to string)

// Machine holds the current state of one owner.
type Machine[O, A any] struct {
	owner        O
	current      State[O, A]
	timeInState  time.Duration
	onTransition TransitionFunc
}

// NewMachine creates a machine with no current state. Updates are no-ops
// until the first SetState.
func NewMachine[O, A any](owner O) *Machine[O, A] {
	return &Machine[O, A]{owner: owner}
}

// Owner returns the entity the machine drives.
func (m *Machine[O, A]) Owner() O {
	return m.owner
}

// Current returns the current state, or nil before the first SetState.
func (m *Machine[O, A]) Current() State[O, A] {
	return m.current
}

// CurrentName returns the name of the current state, or "" when unset.
func (m *Machine[O, A]) CurrentName() string {
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// TimeInState returns how long the current state has been active.
func (m *Machine[O, A]) TimeInState() time.Duration {
	return m.timeInState
}

// OnTransition registers a hook called after every transition.
func (m *Machine[O, A]) OnTransition(fn TransitionFunc) {
	m.onTransition = fn
}

// SetState exits the current state, if any, then enters next. Passing the
// current state again re-enters it: Exit then Enter both run.
func (m *Machine[O, A]) SetState(next State[O, A]) {
	if next == nil {
		return
	}
	from := m.CurrentName()
	if m.current != nil {
		m.current.Exit(m.owner)
	}
	m.current = next
	m.timeInState = 0
	m.current.Enter(m.owner)

	if m.onTransition != nil {
		m.onTransition(from, next.Name())
	}
}

// Update forwards dt to the current state.
func (m *Machine[O, A]) Update(dt time.Duration) {
	if m.current == nil {
		return
	}
	m.timeInState += dt
	m.SetState(m.current.Update(m.owner, dt))
}

// UpdateWithActor forwards dt and actor to the current state, falling back
// to a plain Update when the state ignores actors.
func (m *Machine[O, A]) UpdateWithActor(dt time.Duration, actor A) {
	if m.current == nil {
		return
	}
	m.timeInState += dt
	var next State[O, A]
	if au, ok := m.current.(ActorUpdater[O, A]); ok {
		next = au.UpdateWithActor(m.owner, actor, dt)
	} else {
		next = m.current.Update(m.owner, dt)
	}
	m.SetState(next)
}
