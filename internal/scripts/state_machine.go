package scripts

import (
	"fmt"
	"slices"

	"xrplay/internal/engine"

	"go.uber.org/zap"
)

type PlayerState int

const (
	StateIdle PlayerState = iota
	StateWalking
	StateRunning
	StateJumping
	StateDead
)

var stateNames = []string{"Idle", "Walking", "Running", "Jumping", "Dead"}

func (s PlayerState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("PlayerState(%d)", int(s))
	}
	return stateNames[s]
}

func ParsePlayerState(s string) (PlayerState, error) {
	if i := slices.Index(stateNames, s); i >= 0 {
		return PlayerState(i), nil
	}
	return StateIdle, fmt.Errorf("unknown player state %q", s)
}

// StateMachine holds the player's movement state. Other scripts write
// CurrentState (or call SetState); the change is noticed on the next
// Update, which fires StateEntered exactly once per change.
type StateMachine struct {
	engine.BaseComponent
	CurrentState PlayerState

	StateEntered engine.EventWithArg[PlayerState]

	previousState PlayerState
}

func (m *StateMachine) Awake() {
	m.previousState = m.CurrentState
}

func (m *StateMachine) Update(deltaTime float32) {
	if m.previousState != m.CurrentState {
		m.onStateEnter(m.CurrentState)
		m.previousState = m.CurrentState
	}
	m.handleState()
}

func (m *StateMachine) SetState(s PlayerState) {
	m.CurrentState = s
}

func (m *StateMachine) onStateEnter(s PlayerState) {
	logger("state").Info("entered state", zap.Stringer("state", s))
	m.StateEntered.Invoke(s)
}

func (m *StateMachine) handleState() {
	log := logger("state")
	switch m.CurrentState {
	case StateIdle:
		log.Debug("player is idle")
	case StateWalking:
		log.Debug("player is walking")
	case StateRunning:
		log.Debug("player is running")
	case StateJumping:
		log.Debug("player is jumping")
	case StateDead:
		log.Debug("player is dead")
	default:
		log.Debug("unknown state", zap.Int("state", int(m.CurrentState)))
	}
}

func init() {
	engine.RegisterScriptWithApplier("StateMachine", stateMachineFactory, stateMachineSerializer, stateMachineApplier)
}

func stateMachineFactory(props map[string]any) engine.Component {
	m := &StateMachine{}
	if v, ok := props["state"]; ok {
		stateMachineApplier(m, "state", v)
	}
	return m
}

func stateMachineSerializer(c engine.Component) map[string]any {
	m, ok := c.(*StateMachine)
	if !ok {
		return nil
	}
	return map[string]any{
		"state": m.CurrentState.String(),
	}
}

func stateMachineApplier(c engine.Component, propName string, value any) bool {
	m, ok := c.(*StateMachine)
	if !ok || propName != "state" {
		return false
	}
	s, err := ParsePlayerState(engine.PropString(map[string]any{propName: value}, propName, ""))
	if err != nil {
		logger("state").Warn(err.Error())
		return false
	}
	m.CurrentState = s
	return true
}
