package components

import "xrplay/internal/engine"

// Grabbable stands in for an XR grab interactable. Controller tracking lives
// outside the engine; whatever drives the hands calls Grab and Release and
// moves the object while it is held.
type Grabbable struct {
	engine.BaseComponent

	// Enabled false refuses new grabs. A held object stays held.
	Enabled bool

	// Unity-style events, the argument is the interactor (hand) object.
	SelectEntered engine.EventWithArg[*engine.GameObject]
	SelectExited  engine.EventWithArg[*engine.GameObject]

	interactor *engine.GameObject
	selected   bool
}

func NewGrabbable() *Grabbable {
	return &Grabbable{Enabled: true}
}

func (g *Grabbable) Selected() bool {
	return g.selected
}

// Interactor returns the object currently holding this one, if any.
func (g *Grabbable) Interactor() *engine.GameObject {
	return g.interactor
}

// Grab selects the object. It fails while disabled or already held.
func (g *Grabbable) Grab(interactor *engine.GameObject) bool {
	if !g.Enabled || g.selected {
		return false
	}
	g.selected = true
	g.interactor = interactor
	g.SelectEntered.Invoke(interactor)
	return true
}

// Release drops the object. It fails when nothing holds it.
func (g *Grabbable) Release() bool {
	if !g.selected {
		return false
	}
	interactor := g.interactor
	g.selected = false
	g.interactor = nil
	g.SelectExited.Invoke(interactor)
	return true
}

// OnDisable drops the object so a deactivated block cannot stay in a hand.
func (g *Grabbable) OnDisable() {
	g.Release()
}
