package physics

import (
	"cmp"
	"slices"

	"xrplay/internal/engine"
)

// Volume is a component with world-space bounds that takes part in
// trigger overlap tests.
type Volume interface {
	engine.Component
	Bounds() AABB
}

// TriggerPair is an unordered pair of objects, stored with the lower UID first.
type TriggerPair struct {
	A, B *engine.GameObject
}

func makePair(a, b *engine.GameObject) TriggerPair {
	if a.UID > b.UID {
		return TriggerPair{A: b, B: a}
	}
	return TriggerPair{A: a, B: b}
}

// TriggerWorld reports when trigger volumes start and stop overlapping.
// It does not resolve contacts; it only feeds TriggerHandler callbacks.
type TriggerWorld struct {
	objects []*engine.GameObject
	active  map[TriggerPair]bool
}

func NewTriggerWorld() *TriggerWorld {
	return &TriggerWorld{active: make(map[TriggerPair]bool)}
}

// AddObject registers g if it carries a Volume.
func (w *TriggerWorld) AddObject(g *engine.GameObject) bool {
	if engine.GetComponent[Volume](g) == nil {
		return false
	}
	if slices.Contains(w.objects, g) {
		return true
	}
	w.objects = append(w.objects, g)
	return true
}

// RemoveObject unregisters g. Overlaps involving g end on the next Step.
func (w *TriggerWorld) RemoveObject(g *engine.GameObject) {
	w.objects = slices.DeleteFunc(w.objects, func(o *engine.GameObject) bool { return o == g })
}

func (w *TriggerWorld) Objects() []*engine.GameObject {
	return w.objects
}

// Overlapping reports whether a and b overlapped at the last Step.
func (w *TriggerWorld) Overlapping(a, b *engine.GameObject) bool {
	return w.active[makePair(a, b)]
}

// Step tests every pair of active volumes and dispatches enter callbacks
// for new overlaps and exit callbacks for ended ones, exits first.
// Objects under a common ancestor chain (a block parented to its slot)
// still count as overlapping.
func (w *TriggerWorld) Step() {
	current := make(map[TriggerPair]bool, len(w.active))
	for i := 0; i < len(w.objects); i++ {
		a := w.objects[i]
		if a.IsDestroyed() || !a.ActiveInHierarchy() {
			continue
		}
		boundsA := engine.GetComponent[Volume](a).Bounds()
		for j := i + 1; j < len(w.objects); j++ {
			b := w.objects[j]
			if b.IsDestroyed() || !b.ActiveInHierarchy() {
				continue
			}
			if boundsA.Intersects(engine.GetComponent[Volume](b).Bounds()) {
				current[makePair(a, b)] = true
			}
		}
	}

	for _, pair := range sortedPairs(w.active) {
		if !current[pair] {
			notifyExit(pair.A, pair.B)
			notifyExit(pair.B, pair.A)
		}
	}
	for _, pair := range sortedPairs(current) {
		if !w.active[pair] {
			notifyEnter(pair.A, pair.B)
			notifyEnter(pair.B, pair.A)
		}
	}

	w.active = current
}

func sortedPairs(set map[TriggerPair]bool) []TriggerPair {
	pairs := make([]TriggerPair, 0, len(set))
	for p := range set {
		pairs = append(pairs, p)
	}
	slices.SortFunc(pairs, func(x, y TriggerPair) int {
		if c := cmp.Compare(x.A.UID, y.A.UID); c != 0 {
			return c
		}
		return cmp.Compare(x.B.UID, y.B.UID)
	})
	return pairs
}

func notifyEnter(obj, other *engine.GameObject) {
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.TriggerHandler); ok {
			handler.OnTriggerEnter(other)
		}
	}
}

// notifyExit skips destroyed objects; the survivor of a pair still hears
// about the overlap ending.
func notifyExit(obj, other *engine.GameObject) {
	if obj.IsDestroyed() {
		return
	}
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.TriggerHandler); ok {
			handler.OnTriggerExit(other)
		}
	}
}
