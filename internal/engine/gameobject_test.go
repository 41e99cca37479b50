package engine

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const eps = 1e-4

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func vecNear(a, b rl.Vector3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

// quatNear treats q and -q as the same rotation.
func quatNear(a, b rl.Quaternion) bool {
	dot := a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
	return math.Abs(math.Abs(float64(dot))-1) < eps
}

type lifecycleRecorder struct {
	BaseComponent
	log      *[]string
	name     string
	updates  int
	disabled int
	changed  int
}

func (p *lifecycleRecorder) Awake()                      { *p.log = append(*p.log, p.name+".Awake") }
func (p *lifecycleRecorder) Start()                      { *p.log = append(*p.log, p.name+".Start") }
func (p *lifecycleRecorder) Update(float32)              { p.updates++ }
func (p *lifecycleRecorder) OnDisable()                  { p.disabled++ }
func (p *lifecycleRecorder) OnTransformChildrenChanged() { p.changed++ }

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("TestObject")

	if obj.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", obj.Name)
	}
	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}
	if obj.components == nil {
		t.Error("components slice should be initialized")
	}
	if !quatNear(obj.Transform.Rotation, rl.QuaternionIdentity()) {
		t.Errorf("Expected identity rotation, got %v", obj.Transform.Rotation)
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	obj1 := NewGameObject("First")
	obj2 := NewGameObject("Second")

	if obj1.UID == obj2.UID {
		t.Error("GameObjects should have unique UIDs")
	}
}

func TestReserveUID(t *testing.T) {
	base := NewGameObject("Base").UID
	ReserveUID(base + 100)

	next := NewGameObject("Next")
	if next.UID <= base+100 {
		t.Errorf("Expected UID above %d, got %d", base+100, next.UID)
	}

	// Reserving a lower UID must not move the counter backwards.
	ReserveUID(1)
	if after := NewGameObject("After"); after.UID <= next.UID {
		t.Errorf("UID went backwards: %d after %d", after.UID, next.UID)
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Tags = []string{"Player", "ai"}

	if !obj.HasTag("Player") {
		t.Error("HasTag should return true for existing tag")
	}
	if obj.HasTag("enemy") {
		t.Error("HasTag should return false for non-existent tag")
	}
}

func TestGameObjectParentChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")

	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("Child.Parent should be set")
	}
	if len(parent.Children) != 1 || parent.Children[0] != child {
		t.Error("Child not added to parent's Children slice")
	}
}

func TestGameObjectReparentMovesChild(t *testing.T) {
	a := NewGameObject("A")
	b := NewGameObject("B")
	child := NewGameObject("Child")

	a.AddChild(child)
	b.AddChild(child)

	if len(a.Children) != 0 {
		t.Errorf("Expected old parent to lose child, has %d", len(a.Children))
	}
	if child.Parent != b {
		t.Error("Child should be parented to B")
	}
}

func TestGameObjectRemoveChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child1 := NewGameObject("Child1")
	child2 := NewGameObject("Child2")

	parent.AddChild(child1)
	parent.AddChild(child2)
	parent.RemoveChild(child1)

	if len(parent.Children) != 1 || parent.Children[0] != child2 {
		t.Error("Wrong child removed")
	}
	if child1.Parent != nil {
		t.Error("Removed child should have nil parent")
	}
}

func TestAddChildRejectsCycles(t *testing.T) {
	root := NewGameObject("Root")
	mid := NewGameObject("Mid")
	leaf := NewGameObject("Leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	leaf.AddChild(root)
	if root.Parent != nil {
		t.Error("Root should not be parented under its own descendant")
	}
	if len(leaf.Children) != 0 {
		t.Error("Leaf should have no children")
	}

	mid.AddChild(mid)
	if mid.Parent != root {
		t.Error("Self-parenting should leave the hierarchy unchanged")
	}

	if !root.IsAncestorOf(leaf) || leaf.IsAncestorOf(root) {
		t.Error("IsAncestorOf mismatch")
	}
	if !root.ActiveInHierarchy() || !leaf.ActiveInHierarchy() {
		t.Error("Hierarchy should still be walkable")
	}
}

func TestChildrenChangedNotifies(t *testing.T) {
	var log []string
	parent := NewGameObject("Parent")
	rec := &lifecycleRecorder{log: &log, name: "p"}
	parent.AddComponent(rec)

	child := NewGameObject("Child")
	parent.AddChild(child)
	parent.AddChild(child) // already a child, no notification
	parent.RemoveChild(child)

	if rec.changed != 2 {
		t.Errorf("Expected 2 notifications, got %d", rec.changed)
	}
}

func TestGameObjectGetComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}
	obj.AddComponent(comp)

	if comp.gameObject != obj {
		t.Error("Component.gameObject should be set")
	}
	if found := GetComponent[*BaseComponent](obj); found != comp {
		t.Error("GetComponent failed to find component")
	}
	if found := GetComponent[*lifecycleRecorder](obj); found != nil {
		t.Error("GetComponent should return nil for a missing type")
	}
	if found := GetComponent[*BaseComponent](nil); found != nil {
		t.Error("GetComponent on nil object should return nil")
	}
}

func TestGetComponentsInChildrenOrder(t *testing.T) {
	var log []string
	root := NewGameObject("Root")
	a := NewGameObject("A")
	b := NewGameObject("B")
	a1 := NewGameObject("A1")
	root.AddChild(a)
	root.AddChild(b)
	a.AddChild(a1)

	pRoot := &lifecycleRecorder{log: &log, name: "root"}
	pA := &lifecycleRecorder{log: &log, name: "a"}
	pA1 := &lifecycleRecorder{log: &log, name: "a1"}
	pB := &lifecycleRecorder{log: &log, name: "b"}
	root.AddComponent(pRoot)
	a.AddComponent(pA)
	a1.AddComponent(pA1)
	b.AddComponent(pB)

	got := GetComponentsInChildren[*lifecycleRecorder](root)
	want := []*lifecycleRecorder{pRoot, pA, pA1, pB}
	if len(got) != len(want) {
		t.Fatalf("Expected %d components, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Index %d: expected %s, got %s", i, want[i].name, got[i].name)
		}
	}
}

func TestGameObjectStartCalledOnce(t *testing.T) {
	var log []string
	obj := NewGameObject("Test")
	obj.AddComponent(&lifecycleRecorder{log: &log, name: "p"})

	obj.Start()
	obj.Start()

	if len(log) != 2 || log[0] != "p.Awake" || log[1] != "p.Start" {
		t.Errorf("Unexpected lifecycle calls: %v", log)
	}
}

func TestAddComponentAfterStart(t *testing.T) {
	var log []string
	obj := NewGameObject("Test")
	obj.Start()

	obj.AddComponent(&lifecycleRecorder{log: &log, name: "late"})

	if len(log) != 2 || log[0] != "late.Awake" || log[1] != "late.Start" {
		t.Errorf("Late component should be awoken and started, got %v", log)
	}
}

func TestInactiveParentSkipsUpdate(t *testing.T) {
	var log []string
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")
	parent.AddChild(child)
	rec := &lifecycleRecorder{log: &log, name: "c"}
	child.AddComponent(rec)

	child.Update(0.1)
	parent.Active = false
	child.Update(0.1)

	if rec.updates != 1 {
		t.Errorf("Expected 1 update, got %d", rec.updates)
	}
}

func TestSetActiveFalseDisables(t *testing.T) {
	var log []string
	obj := NewGameObject("Test")
	rec := &lifecycleRecorder{log: &log, name: "p"}
	obj.AddComponent(rec)

	obj.SetActive(false)
	obj.SetActive(false)
	obj.SetActive(true)

	if rec.disabled != 1 {
		t.Errorf("Expected 1 OnDisable, got %d", rec.disabled)
	}
}

func TestWorldPositionWithRotatedParent(t *testing.T) {
	parent := NewGameObject("Parent")
	parent.Transform.Position = rl.Vector3{X: 10}
	parent.Transform.Rotation = EulerDegrees(0, 90, 0)
	parent.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}

	child := NewGameObject("Child")
	child.Transform.Position = rl.Vector3{X: 1}
	parent.AddChild(child)

	// +X rotated 90 degrees about Y points to -Z.
	want := rl.Vector3{X: 10, Z: -2}
	if got := child.WorldPosition(); !vecNear(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestSetWorldPositionRoundTrip(t *testing.T) {
	parent := NewGameObject("Parent")
	parent.Transform.Position = rl.Vector3{X: 3, Y: 1, Z: -2}
	parent.Transform.Rotation = EulerDegrees(0, 45, 0)
	child := NewGameObject("Child")
	parent.AddChild(child)

	target := rl.Vector3{X: -4, Y: 2, Z: 5}
	child.SetWorldPosition(target)

	if got := child.WorldPosition(); !vecNear(got, target) {
		t.Errorf("Expected %v, got %v", target, got)
	}

	rot := EulerDegrees(0, -30, 0)
	child.SetWorldRotation(rot)
	if got := child.WorldRotation(); !quatNear(got, rot) {
		t.Errorf("Expected %v, got %v", rot, got)
	}
}

func TestSetParentKeepsWorldPose(t *testing.T) {
	slot := NewGameObject("Slot")
	slot.Transform.Position = rl.Vector3{X: 5, Y: 1}
	slot.Transform.Rotation = EulerDegrees(0, 90, 0)

	block := NewGameObject("Block")
	block.Transform.Position = rl.Vector3{X: 6, Y: 1}

	block.SetParent(slot, true)
	if !vecNear(block.WorldPosition(), rl.Vector3{X: 6, Y: 1}) {
		t.Errorf("World position changed on reparent: %v", block.WorldPosition())
	}
	if !quatNear(block.WorldRotation(), rl.QuaternionIdentity()) {
		t.Errorf("World rotation changed on reparent: %v", block.WorldRotation())
	}

	block.SetParent(nil, true)
	if block.Parent != nil || len(slot.Children) != 0 {
		t.Error("Block should be detached")
	}
	if !vecNear(block.Transform.Position, rl.Vector3{X: 6, Y: 1}) {
		t.Errorf("Detached block should keep world position, got %v", block.Transform.Position)
	}
}
