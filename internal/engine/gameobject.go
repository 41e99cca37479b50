package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var lastUID atomic.Uint64

// ReserveUID makes sure UIDs handed out later never collide with uid.
// Scene loaders call it for objects whose UID comes from a file.
func ReserveUID(uid uint64) {
	for {
		cur := lastUID.Load()
		if uid <= cur || lastUID.CompareAndSwap(cur, uid) {
			return
		}
	}
}

// Transform is a local pose relative to the parent GameObject.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
}

// EulerDegrees builds a rotation from pitch (X), yaw (Y) and roll (Z) in degrees.
func EulerDegrees(x, y, z float32) rl.Quaternion {
	return rl.QuaternionFromEuler(x*rl.Deg2rad, y*rl.Deg2rad, z*rl.Deg2rad)
}

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	awoken     bool
	started    bool
	destroyed  bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    lastUID.Add(1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.QuaternionIdentity(),
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

// AddComponent attaches c. When the object is already running, c is awoken
// and started right away so late additions behave like scene-load ones.
func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
	if g.awoken {
		if a, ok := c.(Awaker); ok {
			a.Awake()
		}
	}
	if g.started {
		c.Start()
	}
}

// GetComponent returns the first component of type T on g.
func GetComponent[T Component](g *GameObject) T {
	c, _ := TryGetComponent[T](g)
	return c
}

// TryGetComponent is GetComponent with an explicit found flag.
func TryGetComponent[T Component](g *GameObject) (T, bool) {
	var zero T
	if g == nil {
		return zero, false
	}
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed, true
		}
	}
	return zero, false
}

// GetComponentsInChildren returns every T on g and its descendants,
// depth first, g's own components first.
func GetComponentsInChildren[T Component](g *GameObject) []T {
	var out []T
	for _, n := range Descendants(g) {
		for _, c := range n.components {
			if typed, ok := c.(T); ok {
				out = append(out, typed)
			}
		}
	}
	return out
}

// Descendants returns g followed by its whole subtree, depth first.
func Descendants(g *GameObject) []*GameObject {
	if g == nil {
		return nil
	}
	out := []*GameObject{g}
	for _, child := range g.Children {
		out = append(out, Descendants(child)...)
	}
	return out
}

// Awake runs Awake on every component that implements Awaker. It is a no-op
// after the first call.
func (g *GameObject) Awake() {
	if g.awoken {
		return
	}
	g.awoken = true
	for _, c := range g.components {
		if a, ok := c.(Awaker); ok {
			a.Awake()
		}
	}
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	g.Awake()
	g.started = true
	for _, c := range g.components {
		c.Start()
	}
}

func (g *GameObject) Started() bool {
	return g.started
}

func (g *GameObject) Update(deltaTime float32) {
	if g.destroyed || !g.ActiveInHierarchy() {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ActiveInHierarchy reports whether g and all of its ancestors are active.
func (g *GameObject) ActiveInHierarchy() bool {
	for n := g; n != nil; n = n.Parent {
		if !n.Active {
			return false
		}
	}
	return true
}

// SetActive toggles the object. Deactivation notifies Disabler components.
func (g *GameObject) SetActive(active bool) {
	if g.Active == active {
		return
	}
	g.Active = active
	if active {
		return
	}
	for _, c := range g.components {
		if d, ok := c.(Disabler); ok {
			d.OnDisable()
		}
	}
}

// IsDestroyed reports whether the object has been removed from its scene.
func (g *GameObject) IsDestroyed() bool {
	return g == nil || g.destroyed
}

// AddChild parents child under g. Linking g under itself or under one of
// its own descendants is ignored.
func (g *GameObject) AddChild(child *GameObject) {
	if child.Parent == g || child.IsAncestorOf(g) {
		return
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = g
	g.Children = append(g.Children, child)
	g.childrenChanged()
}

// IsAncestorOf reports whether other is g or lies in g's subtree.
func (g *GameObject) IsAncestorOf(other *GameObject) bool {
	for n := other; n != nil; n = n.Parent {
		if n == g {
			return true
		}
	}
	return false
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			g.childrenChanged()
			return
		}
	}
}

func (g *GameObject) childrenChanged() {
	for _, c := range g.components {
		if h, ok := c.(ChildrenChangedHandler); ok {
			h.OnTransformChildrenChanged()
		}
	}
}

// SetParent moves g under parent (nil detaches it to the root). With
// worldPositionStays the world pose is kept and the local pose recomputed.
func (g *GameObject) SetParent(parent *GameObject, worldPositionStays bool) {
	if g.Parent == parent {
		return
	}
	pos := g.WorldPosition()
	rot := g.WorldRotation()

	if parent == nil {
		g.Parent.RemoveChild(g)
	} else {
		parent.AddChild(g)
	}

	if worldPositionStays {
		g.SetWorldPosition(pos)
		g.SetWorldRotation(rot)
	}
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	parentPos := g.Parent.WorldPosition()
	parentRot := g.Parent.WorldRotation()
	parentScale := g.Parent.WorldScale()

	scaled := rl.Vector3{
		X: g.Transform.Position.X * parentScale.X,
		Y: g.Transform.Position.Y * parentScale.Y,
		Z: g.Transform.Position.Z * parentScale.Z,
	}
	return rl.Vector3Add(parentPos, rl.Vector3RotateByQuaternion(scaled, parentRot))
}

func (g *GameObject) WorldRotation() rl.Quaternion {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return rl.QuaternionMultiply(g.Parent.WorldRotation(), g.Transform.Rotation)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	ps := g.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * g.Transform.Scale.X,
		Y: ps.Y * g.Transform.Scale.Y,
		Z: ps.Z * g.Transform.Scale.Z,
	}
}

// SetWorldPosition places g at pos in world space.
func (g *GameObject) SetWorldPosition(pos rl.Vector3) {
	if g.Parent == nil {
		g.Transform.Position = pos
		return
	}
	inv := rl.QuaternionInvert(g.Parent.WorldRotation())
	local := rl.Vector3RotateByQuaternion(rl.Vector3Subtract(pos, g.Parent.WorldPosition()), inv)
	ps := g.Parent.WorldScale()
	g.Transform.Position = rl.Vector3{
		X: safeDiv(local.X, ps.X),
		Y: safeDiv(local.Y, ps.Y),
		Z: safeDiv(local.Z, ps.Z),
	}
}

// SetWorldRotation orients g to rot in world space.
func (g *GameObject) SetWorldRotation(rot rl.Quaternion) {
	if g.Parent == nil {
		g.Transform.Rotation = rot
		return
	}
	inv := rl.QuaternionInvert(g.Parent.WorldRotation())
	g.Transform.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(inv, rot))
}

func safeDiv(a, b float32) float32 {
	if b == 0 {
		return 0
	}
	return a / b
}
