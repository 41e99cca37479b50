package engine

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// Awaker is implemented by components that need to resolve siblings or
// collect children before any component in the scene runs Start.
type Awaker interface {
	Awake()
}

// TriggerHandler is implemented by components that react to trigger volumes
// overlapping. The physics layer dispatches these on both objects of a pair.
type TriggerHandler interface {
	OnTriggerEnter(other *GameObject)
	OnTriggerExit(other *GameObject)
}

// Validator is implemented by components whose editor-exposed fields need
// clamping or a refresh after a property edit.
type Validator interface {
	OnValidate()
}

// ChildrenChangedHandler is notified after a child is attached to or
// detached from the component's GameObject.
type ChildrenChangedHandler interface {
	OnTransformChildrenChanged()
}

// Disabler is notified when its GameObject is deactivated.
type Disabler interface {
	OnDisable()
}

// Destroyer is notified once, right before its GameObject leaves the scene.
type Destroyer interface {
	OnDestroy()
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}

// Scene returns the scene of the owning GameObject, or nil when detached.
func (b *BaseComponent) Scene() *Scene {
	if b.gameObject == nil {
		return nil
	}
	return b.gameObject.Scene
}
