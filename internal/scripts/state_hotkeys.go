package scripts

import "xrplay/internal/engine"

// StateHotkeys drives a StateMachine from number keys 1-5, for poking at
// the player states without real movement input.
type StateHotkeys struct {
	engine.BaseComponent
	// Target holds the StateMachine. Defaults to this object.
	Target engine.GameObjectRef

	machine *StateMachine
}

var hotkeyStates = map[string]PlayerState{
	"1": StateIdle,
	"2": StateWalking,
	"3": StateRunning,
	"4": StateJumping,
	"5": StateDead,
}

func (h *StateHotkeys) Awake() {
	g := h.GetGameObject()
	if target := h.Target.Get(g.Scene); target != nil {
		h.machine = engine.GetComponent[*StateMachine](target)
	}
	if h.machine == nil {
		h.machine = engine.GetComponent[*StateMachine](g)
	}
}

func (h *StateHotkeys) Machine() *StateMachine {
	return h.machine
}

// PressKey handles a key press. It reports whether the key mapped to a state.
func (h *StateHotkeys) PressKey(key string) bool {
	s, ok := hotkeyStates[key]
	if !ok || h.machine == nil {
		return false
	}
	h.machine.SetState(s)
	return true
}

func (h *StateHotkeys) SetIdle()    { h.set(StateIdle) }
func (h *StateHotkeys) SetWalking() { h.set(StateWalking) }
func (h *StateHotkeys) SetRunning() { h.set(StateRunning) }
func (h *StateHotkeys) SetJumping() { h.set(StateJumping) }
func (h *StateHotkeys) Dead()       { h.set(StateDead) }

func (h *StateHotkeys) set(s PlayerState) {
	if h.machine != nil {
		h.machine.SetState(s)
	}
}

func init() {
	engine.RegisterScriptWithApplier("StateHotkeys", func(props map[string]any) engine.Component {
		return &StateHotkeys{Target: engine.PropRef(props, "target")}
	}, func(c engine.Component) map[string]any {
		h, ok := c.(*StateHotkeys)
		if !ok {
			return nil
		}
		return map[string]any{"target": float64(h.Target.UID)}
	}, func(c engine.Component, propName string, value any) bool {
		h, ok := c.(*StateHotkeys)
		if !ok || propName != "target" {
			return false
		}
		h.Target = engine.PropRef(map[string]any{propName: value}, propName)
		return true
	})
}
