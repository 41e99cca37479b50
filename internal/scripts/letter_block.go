package scripts

import (
	"unicode/utf8"

	"xrplay/internal/components"
	"xrplay/internal/engine"

	"go.uber.org/zap"
)

// LetterBlock is a draggable letter. While dragged it remembers the slot it
// hovers over (the candidate); on release the word container commits it to
// that slot if the slot is free.
type LetterBlock struct {
	engine.BaseComponent
	Letter rune
	// Container points at the WordContainer to report to. When unset the
	// first WordContainer in the scene is used.
	Container engine.GameObjectRef

	dragging    bool
	wasInWord   bool
	targetSlot  *InsertionSlot
	currentSlot *InsertionSlot

	grab      *components.Grabbable
	listeners [2]engine.ListenerID
}

func (b *LetterBlock) Awake() {
	g := b.GetGameObject()
	b.grab = engine.GetComponent[*components.Grabbable](g)
	if b.grab == nil {
		logger("letterblock").Error("no Grabbable on letter block, drag detection will fail",
			zap.String("object", g.Name))
		return
	}
	b.listeners[0] = b.grab.SelectEntered.AddListener(b.onGrabbed)
	b.listeners[1] = b.grab.SelectExited.AddListener(b.onReleased)
}

func (b *LetterBlock) IsBeingDragged() bool { return b.dragging }

// TargetSlot is the candidate slot under the block during a drag.
func (b *LetterBlock) TargetSlot() *InsertionSlot { return b.targetSlot }

// CurrentSlot is the slot the block is committed to.
func (b *LetterBlock) CurrentSlot() *InsertionSlot { return b.currentSlot }

// WasInWord reports whether the block has ever been committed to a slot.
func (b *LetterBlock) WasInWord() bool { return b.wasInWord }

func (b *LetterBlock) container() *WordContainer {
	scene := b.Scene()
	if target := b.Container.Get(scene); target != nil {
		if wc := engine.GetComponent[*WordContainer](target); wc != nil {
			return wc
		}
	}
	return engine.FindComponent[*WordContainer](scene)
}

func (b *LetterBlock) onGrabbed(*engine.GameObject) {
	b.dragging = true
	if wc := b.container(); wc != nil {
		wc.RemoveBlock(b)
	}
	b.GetGameObject().SetParent(nil, true)
}

func (b *LetterBlock) onReleased(*engine.GameObject) {
	b.dragging = false
	if wc := b.container(); wc != nil {
		wc.PlaceBlock(b)
		return
	}
	b.targetSlot = nil
}

func (b *LetterBlock) OnDestroy() {
	if b.currentSlot != nil {
		if wc := b.container(); wc != nil {
			wc.RemoveBlock(b)
		} else {
			b.currentSlot.occupant = nil
			b.currentSlot = nil
		}
	}
	if b.grab != nil {
		b.grab.SelectEntered.RemoveListener(b.listeners[0])
		b.grab.SelectExited.RemoveListener(b.listeners[1])
	}
}

func init() {
	engine.RegisterScriptWithApplier("LetterBlock", letterBlockFactory, letterBlockSerializer, letterBlockApplier)
}

func letterBlockFactory(props map[string]any) engine.Component {
	b := &LetterBlock{Letter: ' '}
	for name, value := range props {
		letterBlockApplier(b, name, value)
	}
	return b
}

func letterBlockSerializer(c engine.Component) map[string]any {
	b, ok := c.(*LetterBlock)
	if !ok {
		return nil
	}
	return map[string]any{
		"letter":    string(b.Letter),
		"container": float64(b.Container.UID),
	}
}

func letterBlockApplier(c engine.Component, propName string, value any) bool {
	b, ok := c.(*LetterBlock)
	if !ok {
		return false
	}
	props := map[string]any{propName: value}
	switch propName {
	case "letter":
		s := engine.PropString(props, propName, "")
		if utf8.RuneCountInString(s) != 1 {
			logger("letterblock").Warn("letter must be a single character", zap.String("letter", s))
			return false
		}
		r, _ := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError {
			return false
		}
		b.Letter = r
	case "container":
		b.Container = engine.PropRef(props, propName)
	default:
		return false
	}
	return true
}
