package engine

// GameObjectRef is a serializable reference to a GameObject by UID.
// Scene files store it as a plain number, so scripts can point at objects
// that are loaded later in the same file.
//
// Example:
//
//	type Handle struct {
//	    engine.BaseComponent
//	    Anchor engine.GameObjectRef
//	}
//
//	func (h *Handle) Update(dt float32) {
//	    if anchor := h.Anchor.Get(h.Scene()); anchor != nil {
//	        // follow the anchor...
//	    }
//	}
type GameObjectRef struct {
	UID uint64 // UID of the referenced GameObject (0 = none)
}

// Get resolves the reference to the actual GameObject.
// Returns nil if the reference is empty, the object was never loaded, or it
// has been destroyed since.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	g := scene.FindByUID(r.UID)
	if g.IsDestroyed() {
		return nil
	}
	return g
}

// Ref returns a reference to g.
func Ref(g *GameObject) GameObjectRef {
	var r GameObjectRef
	r.Set(g)
	return r
}

// IsValid returns true if the reference points to something (UID != 0).
// Note: This doesn't check if the GameObject actually exists in the scene.
func (r GameObjectRef) IsValid() bool {
	return r.UID != 0
}

// Set sets the reference to point to the given GameObject.
// Pass nil to clear the reference.
func (r *GameObjectRef) Set(g *GameObject) {
	if g == nil {
		r.UID = 0
	} else {
		r.UID = g.UID
	}
}

// Clear clears the reference (sets UID to 0).
func (r *GameObjectRef) Clear() {
	r.UID = 0
}
