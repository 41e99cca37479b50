package components

import "xrplay/internal/engine"

// Animator collects state-machine triggers for an external animation
// system. A trigger stays pending until the next Update consumes it, which
// mirrors how one-shot animator parameters behave.
type Animator struct {
	engine.BaseComponent

	// Triggered fires once per SetTrigger call.
	Triggered engine.EventWithArg[string]

	pending  map[string]bool
	order    []string
	consumed []string
	history  []string
}

func NewAnimator() *Animator {
	return &Animator{pending: make(map[string]bool)}
}

func (a *Animator) SetTrigger(name string) {
	if a.pending == nil {
		a.pending = make(map[string]bool)
	}
	if !a.pending[name] {
		a.order = append(a.order, name)
	}
	a.pending[name] = true
	a.history = append(a.history, name)
	a.Triggered.Invoke(name)
}

func (a *Animator) ResetTrigger(name string) {
	delete(a.pending, name)
}

// Pending reports whether name was set and not yet consumed.
func (a *Animator) Pending(name string) bool {
	return a.pending[name]
}

// History lists every trigger ever set, in order.
func (a *Animator) History() []string {
	return append([]string(nil), a.history...)
}

// Consumed lists triggers taken by the last Update.
func (a *Animator) Consumed() []string {
	return append([]string(nil), a.consumed...)
}

func (a *Animator) Update(deltaTime float32) {
	a.consumed = a.consumed[:0]
	for _, name := range a.order {
		if a.pending[name] {
			a.consumed = append(a.consumed, name)
			delete(a.pending, name)
		}
	}
	a.order = a.order[:0]
}
