package fsm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []string
}

type recState struct {
	name    string
	next    *recState
	updates int
	actors  []string
}

func (s *recState) Name() string { return s.name }

func (s *recState) Enter(r *recorder) { r.events = append(r.events, "enter:"+s.name) }

func (s *recState) Exit(r *recorder) { r.events = append(r.events, "exit:"+s.name) }

func (s *recState) Update(r *recorder, dt time.Duration) State[*recorder, string] {
	s.updates++
	if s.next != nil {
		return s.next
	}
	return nil
}

// actorState additionally implements ActorUpdater.
type actorState struct {
	recState
}

func (s *actorState) UpdateWithActor(r *recorder, actor string, dt time.Duration) State[*recorder, string] {
	s.actors = append(s.actors, actor)
	return nil
}

func TestSetStateExitsBeforeEntering(t *testing.T) {
	r := &recorder{}
	m := NewMachine[*recorder, string](r)

	a := &recState{name: "a"}
	b := &recState{name: "b"}
	c := &recState{name: "c"}

	m.SetState(a)
	m.SetState(b)
	m.SetState(c)

	assert.Equal(t, []string{
		"enter:a",
		"exit:a", "enter:b",
		"exit:b", "enter:c",
	}, r.events)
	assert.Equal(t, "c", m.CurrentName())
}

func TestSetStateSameStateReenters(t *testing.T) {
	r := &recorder{}
	m := NewMachine[*recorder, string](r)
	a := &recState{name: "a"}

	m.SetState(a)
	m.SetState(a)

	assert.Equal(t, []string{"enter:a", "exit:a", "enter:a"}, r.events)
}

func TestUpdateBeforeFirstStateIsNoop(t *testing.T) {
	m := NewMachine[*recorder, string](&recorder{})
	m.Update(time.Second)
	m.UpdateWithActor(time.Second, "player")
	assert.Nil(t, m.Current())
	assert.Empty(t, m.CurrentName())
}

func TestUpdateAppliesReturnedTransition(t *testing.T) {
	r := &recorder{}
	m := NewMachine[*recorder, string](r)
	b := &recState{name: "b"}
	a := &recState{name: "a", next: b}

	var transitions []string
	m.OnTransition(func(from, to string) { transitions = append(transitions, from+">"+to) })

	m.SetState(a)
	m.Update(16 * time.Millisecond)

	assert.Equal(t, "b", m.CurrentName())
	assert.Equal(t, 1, a.updates)
	assert.Equal(t, []string{">a", "a>b"}, transitions)
	assert.Equal(t, []string{"enter:a", "exit:a", "enter:b"}, r.events)
	assert.Zero(t, m.TimeInState(), "time in state resets on transition")
}

func TestUpdateWithActorFallsBackToUpdate(t *testing.T) {
	r := &recorder{}
	m := NewMachine[*recorder, string](r)

	plain := &recState{name: "plain"}
	m.SetState(plain)
	m.UpdateWithActor(time.Millisecond, "player")
	assert.Equal(t, 1, plain.updates)

	withActor := &actorState{recState{name: "actor"}}
	m.SetState(withActor)
	m.UpdateWithActor(time.Millisecond, "player")
	m.UpdateWithActor(time.Millisecond, "player")

	require.Equal(t, []string{"player", "player"}, withActor.actors)
	assert.Zero(t, withActor.updates)
	assert.Equal(t, 2*time.Millisecond, m.TimeInState())
}
