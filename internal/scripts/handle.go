package scripts

import (
	"xrplay/internal/components"
	"xrplay/internal/engine"

	"go.uber.org/zap"
)

type HandleState int

const (
	HandleInactive HandleState = iota
	HandleActive
)

func (s HandleState) String() string {
	switch s {
	case HandleInactive:
		return "Inactive"
	case HandleActive:
		return "Active"
	}
	return "Unknown"
}

// Handle snaps to its anchor whenever nobody holds it. While grabbed it
// moves freely with the hand.
type Handle struct {
	engine.BaseComponent
	Anchor engine.GameObjectRef
	State  HandleState

	grab      *components.Grabbable
	listeners [2]engine.ListenerID
}

func (h *Handle) Start() {
	h.State = HandleInactive
	g := h.GetGameObject()
	if g == nil {
		return
	}
	if h.grab = engine.GetComponent[*components.Grabbable](g); h.grab != nil {
		h.listeners[0] = h.grab.SelectEntered.AddListener(func(*engine.GameObject) { h.Grabbed() })
		h.listeners[1] = h.grab.SelectExited.AddListener(func(*engine.GameObject) { h.Released() })
	}
}

func (h *Handle) Grabbed() {
	h.State = HandleActive
	h.logState("handle grabbed")
}

func (h *Handle) Released() {
	h.State = HandleInactive
	h.logState("handle released")
}

func (h *Handle) logState(msg string) {
	name := ""
	if g := h.GetGameObject(); g != nil {
		name = g.Name
	}
	logger("handle").Info(msg, zap.String("object", name), zap.Stringer("state", h.State))
}

func (h *Handle) Update(deltaTime float32) {
	if h.State != HandleInactive {
		return
	}
	g := h.GetGameObject()
	if g == nil {
		return
	}
	anchor := h.Anchor.Get(g.Scene)
	if anchor == nil {
		return
	}
	g.SetWorldPosition(anchor.WorldPosition())
	g.SetWorldRotation(anchor.WorldRotation())
}

func (h *Handle) OnDestroy() {
	if h.grab != nil {
		h.grab.SelectEntered.RemoveListener(h.listeners[0])
		h.grab.SelectExited.RemoveListener(h.listeners[1])
	}
}

func init() {
	engine.RegisterScriptWithApplier("Handle", handleFactory, handleSerializer, handleApplier)
}

func handleFactory(props map[string]any) engine.Component {
	return &Handle{Anchor: engine.PropRef(props, "anchor")}
}

func handleSerializer(c engine.Component) map[string]any {
	h, ok := c.(*Handle)
	if !ok {
		return nil
	}
	return map[string]any{
		"anchor": float64(h.Anchor.UID),
	}
}

func handleApplier(c engine.Component, propName string, value any) bool {
	h, ok := c.(*Handle)
	if !ok || propName != "anchor" {
		return false
	}
	h.Anchor = engine.PropRef(map[string]any{propName: value}, propName)
	return true
}
