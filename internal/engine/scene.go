package engine

type Scene struct {
	Name        string
	GameObjects []*GameObject
	// World is set by the owning world so scripts can spawn and destroy.
	World WorldAccess
	// Playing is false while a scene is only being edited or validated.
	// Scripts use it to pick instant over animated changes.
	Playing bool

	byUID map[uint64]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		byUID:       make(map[uint64]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
	s.byUID[g.UID] = g
}

func (s *Scene) RemoveGameObject(g *GameObject) {
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			delete(s.byUID, g.UID)
			return
		}
	}
}

// Destroy removes g and its descendants from the scene. Destroyer
// components run first, then g is detached from its parent.
func (s *Scene) Destroy(g *GameObject) {
	if g == nil || g.destroyed {
		return
	}
	for _, child := range append([]*GameObject(nil), g.Children...) {
		s.Destroy(child)
	}
	for _, c := range g.components {
		if d, ok := c.(Destroyer); ok {
			d.OnDestroy()
		}
	}
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	g.destroyed = true
	s.RemoveGameObject(g)
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.byUID[uid]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

// FindComponent returns the first T in scene order.
func FindComponent[T Component](s *Scene) T {
	var zero T
	if s == nil {
		return zero
	}
	for _, g := range s.GameObjects {
		if c, ok := TryGetComponent[T](g); ok {
			return c
		}
	}
	return zero
}

// Start awakes every object before starting any, so Start can rely on
// state other objects set up in Awake.
func (s *Scene) Start() {
	objs := append([]*GameObject(nil), s.GameObjects...)
	for _, g := range objs {
		g.Awake()
	}
	for _, g := range objs {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range append([]*GameObject(nil), s.GameObjects...) {
		g.Update(deltaTime)
	}
}
