package world

import (
	"errors"
	"fmt"

	"xrplay/internal/engine"
	"xrplay/internal/physics"

	"go.uber.org/zap"
)

// ErrUnknownObject is returned when a name or UID resolves to nothing.
var ErrUnknownObject = errors.New("unknown object")

// World owns the scene and the trigger volumes that feed it. Scripts reach
// it through engine.WorldAccess.
type World struct {
	Scene    *engine.Scene
	Triggers *physics.TriggerWorld

	// Frame counts Step calls; Time sums their deltas.
	Frame int
	Time  float64

	started bool
	log     *zap.Logger
}

func New(name string) *World {
	w := &World{
		Scene:    engine.NewScene(name),
		Triggers: physics.NewTriggerWorld(),
		log:      zap.L().Named("world"),
	}
	w.Scene.World = w
	return w
}

// SpawnObject adds g and its descendants. In a started world they are
// awoken and started immediately.
func (w *World) SpawnObject(g *engine.GameObject) {
	var added []*engine.GameObject
	var walk func(n *engine.GameObject)
	walk = func(n *engine.GameObject) {
		if w.Scene.FindByUID(n.UID) == nil {
			w.Scene.AddGameObject(n)
			w.Triggers.AddObject(n)
			added = append(added, n)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(g)

	if !w.started {
		return
	}
	for _, n := range added {
		n.Awake()
	}
	for _, n := range added {
		n.Start()
	}
	w.log.Debug("spawned object", zap.String("name", g.Name), zap.Int("objects", len(added)))
}

// Destroy removes g and its descendants from the scene and the trigger world.
func (w *World) Destroy(g *engine.GameObject) {
	if g.IsDestroyed() {
		return
	}
	for _, n := range engine.Descendants(g) {
		w.Triggers.RemoveObject(n)
	}
	w.Scene.Destroy(g)
	w.log.Debug("destroyed object", zap.String("name", g.Name))
}

func (w *World) FindByName(name string) *engine.GameObject {
	return w.Scene.FindByName(name)
}

// Object is FindByName with an error for scenario and CLI callers.
func (w *World) Object(name string) (*engine.GameObject, error) {
	if g := w.Scene.FindByName(name); g != nil {
		return g, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownObject, name)
}

// Play marks the scene as running so scripts animate their changes.
func (w *World) Play() {
	w.Scene.Playing = true
}

func (w *World) Stop() {
	w.Scene.Playing = false
}

// Start awakes and starts every object. It is safe to call more than once.
func (w *World) Start() {
	if w.started {
		return
	}
	w.started = true
	w.Scene.Start()
	w.log.Info("world started",
		zap.String("scene", w.Scene.Name),
		zap.Int("objects", len(w.Scene.GameObjects)),
		zap.Int("triggers", len(w.Triggers.Objects())),
		zap.Bool("playing", w.Scene.Playing))
}

func (w *World) Started() bool {
	return w.started
}

// Step advances one frame: scripts update first, then trigger overlaps
// are dispatched against the poses they produced.
func (w *World) Step(deltaTime float32) {
	w.Scene.Update(deltaTime)
	w.Triggers.Step()
	w.Frame++
	w.Time += float64(deltaTime)
}
