package world

import (
	"errors"
	"fmt"
	"os"

	"xrplay/internal/components"
	"xrplay/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrUnknownComponent is returned for a component type or script name the
// loader cannot build.
var ErrUnknownComponent = errors.New("unknown component")

// ErrParentCycle is returned when scene file parents form a loop.
var ErrParentCycle = errors.New("parent cycle")

// --- File types ---
//
// Scene files are YAML. JSON scene files load too, being valid YAML.

type SceneFile struct {
	Name    string      `yaml:"name,omitempty"`
	Objects []ObjectDef `yaml:"objects"`
}

type ObjectDef struct {
	Name string `yaml:"name"`
	// UID is optional; set it on objects other objects reference.
	UID    uint64   `yaml:"uid,omitempty"`
	Tags   []string `yaml:"tags,omitempty,flow"`
	Parent string   `yaml:"parent,omitempty"`
	Active *bool    `yaml:"active,omitempty"`

	Position [3]float32 `yaml:"position,flow"`
	// Rotation is Euler angles in degrees about X, Y and Z.
	Rotation   [3]float32  `yaml:"rotation,flow"`
	Scale      [3]float32  `yaml:"scale,flow"`
	Components []yaml.Node `yaml:"components,omitempty"`
}

type componentHeader struct {
	Type string `yaml:"type"`
}

type boxTriggerDef struct {
	Type   string     `yaml:"type"`
	Size   [3]float32 `yaml:"size,flow"`
	Offset [3]float32 `yaml:"offset,flow"`
}

type grabbableDef struct {
	Type    string `yaml:"type"`
	Enabled *bool  `yaml:"enabled,omitempty"`
}

type animatorDef struct {
	Type string `yaml:"type"`
}

type scriptDef struct {
	Type  string         `yaml:"type"`
	Name  string         `yaml:"name"`
	Props map[string]any `yaml:"props,omitempty"`
}

func vec(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func arr(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// --- Loading ---

func (w *World) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	if err := w.LoadSceneData(data); err != nil {
		return fmt.Errorf("load scene %s: %w", path, err)
	}
	return nil
}

// LoadSceneData adds the objects described by data to the world. Nothing
// is added when any object fails to load.
func (w *World) LoadSceneData(data []byte) error {
	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse scene: %w", err)
	}
	if sf.Name != "" {
		w.Scene.Name = sf.Name
	}

	// Explicit UIDs are reserved first so generated ones never collide.
	seen := make(map[uint64]string)
	for _, def := range sf.Objects {
		if def.UID == 0 {
			continue
		}
		if other, dup := seen[def.UID]; dup {
			return fmt.Errorf("objects %q and %q share uid %d", other, def.Name, def.UID)
		}
		if existing := w.Scene.FindByUID(def.UID); existing != nil {
			return fmt.Errorf("object %q: uid %d already used by %q", def.Name, def.UID, existing.Name)
		}
		seen[def.UID] = def.Name
		engine.ReserveUID(def.UID)
	}

	objs := make([]*engine.GameObject, len(sf.Objects))
	byName := make(map[string]*engine.GameObject, len(sf.Objects))
	for i, def := range sf.Objects {
		g, err := buildObject(def)
		if err != nil {
			return fmt.Errorf("object %q: %w", def.Name, err)
		}
		objs[i] = g
		if _, dup := byName[def.Name]; !dup {
			byName[def.Name] = g
		}
	}

	parents := make(map[*engine.GameObject]*engine.GameObject)
	for i, def := range sf.Objects {
		if def.Parent == "" {
			continue
		}
		parent := byName[def.Parent]
		if parent == nil {
			parent = w.Scene.FindByName(def.Parent)
		}
		if parent == nil {
			return fmt.Errorf("object %q: parent: %w: %q", def.Name, ErrUnknownObject, def.Parent)
		}
		parents[objs[i]] = parent
	}
	for i, def := range sf.Objects {
		if createsCycle(objs[i], parents) {
			return fmt.Errorf("object %q: %w", def.Name, ErrParentCycle)
		}
	}

	for _, g := range objs {
		w.Scene.AddGameObject(g)
		w.Triggers.AddObject(g)
	}
	for i := range sf.Objects {
		if parent := parents[objs[i]]; parent != nil {
			parent.AddChild(objs[i])
		}
	}

	if w.started {
		for _, g := range objs {
			g.Awake()
		}
		for _, g := range objs {
			g.Start()
		}
	}

	w.log.Info("scene loaded", zap.String("scene", w.Scene.Name), zap.Int("objects", len(objs)))
	return nil
}

// createsCycle walks g's proposed parent chain, falling back to the live
// hierarchy for objects already in the scene.
func createsCycle(g *engine.GameObject, parents map[*engine.GameObject]*engine.GameObject) bool {
	seen := map[*engine.GameObject]bool{g: true}
	for n := g; ; {
		next, proposed := parents[n]
		if !proposed {
			next = n.Parent
		}
		if next == nil {
			return false
		}
		if seen[next] {
			return true
		}
		seen[next] = true
		n = next
	}
}

func buildObject(def ObjectDef) (*engine.GameObject, error) {
	g := engine.NewGameObject(def.Name)
	if def.UID != 0 {
		g.UID = def.UID
	}
	g.Tags = def.Tags
	if def.Active != nil {
		g.Active = *def.Active
	}
	g.Transform.Position = vec(def.Position)
	g.Transform.Rotation = engine.EulerDegrees(def.Rotation[0], def.Rotation[1], def.Rotation[2])

	// Default scale to 1 if zero
	if def.Scale != [3]float32{} {
		g.Transform.Scale = vec(def.Scale)
	}

	for i := range def.Components {
		c, err := buildComponent(&def.Components[i])
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		g.AddComponent(c)
	}
	return g, nil
}

func buildComponent(node *yaml.Node) (engine.Component, error) {
	var header componentHeader
	if err := node.Decode(&header); err != nil {
		return nil, err
	}

	switch header.Type {
	case "BoxTrigger":
		var def boxTriggerDef
		if err := node.Decode(&def); err != nil {
			return nil, err
		}
		t := components.NewBoxTrigger(vec(def.Size))
		t.Offset = vec(def.Offset)
		return t, nil

	case "Grabbable":
		var def grabbableDef
		if err := node.Decode(&def); err != nil {
			return nil, err
		}
		g := components.NewGrabbable()
		if def.Enabled != nil {
			g.Enabled = *def.Enabled
		}
		return g, nil

	case "Animator":
		return components.NewAnimator(), nil

	case "Script":
		var def scriptDef
		if err := node.Decode(&def); err != nil {
			return nil, err
		}
		if comp := engine.CreateScript(def.Name, def.Props); comp != nil {
			return comp, nil
		}
		return nil, fmt.Errorf("%w: script %q", ErrUnknownComponent, def.Name)
	}
	return nil, fmt.Errorf("%w: type %q", ErrUnknownComponent, header.Type)
}

// --- Saving ---

// SaveScene writes every object with its UID so references survive a
// reload.
func (w *World) SaveScene(path string) error {
	data, err := w.MarshalScene()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

func (w *World) MarshalScene() ([]byte, error) {
	sf := SceneFile{Name: w.Scene.Name}

	for _, g := range w.Scene.GameObjects {
		euler := rl.Vector3Scale(rl.QuaternionToEuler(g.Transform.Rotation), rl.Rad2deg)
		def := ObjectDef{
			Name:     g.Name,
			UID:      g.UID,
			Tags:     g.Tags,
			Position: arr(g.Transform.Position),
			Rotation: arr(euler),
			Scale:    arr(g.Transform.Scale),
		}
		if g.Parent != nil {
			def.Parent = g.Parent.Name
		}
		if !g.Active {
			inactive := false
			def.Active = &inactive
		}

		for _, c := range g.Components() {
			node, ok, err := serializeComponent(c)
			if err != nil {
				return nil, fmt.Errorf("object %q: %w", g.Name, err)
			}
			if ok {
				def.Components = append(def.Components, *node)
			}
		}

		sf.Objects = append(sf.Objects, def)
	}

	data, err := yaml.Marshal(&sf)
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	return data, nil
}

func serializeComponent(c engine.Component) (*yaml.Node, bool, error) {
	var def any

	switch comp := c.(type) {
	case *components.BoxTrigger:
		def = boxTriggerDef{Type: "BoxTrigger", Size: arr(comp.Size), Offset: arr(comp.Offset)}

	case *components.Grabbable:
		enabled := comp.Enabled
		def = grabbableDef{Type: "Grabbable", Enabled: &enabled}

	case *components.Animator:
		def = animatorDef{Type: "Animator"}

	default:
		// Try script registry
		name, props, ok := engine.SerializeScript(c)
		if !ok {
			return nil, false, nil
		}
		def = scriptDef{Type: "Script", Name: name, Props: props}
	}

	var node yaml.Node
	if err := node.Encode(def); err != nil {
		return nil, false, fmt.Errorf("encode %T: %w", c, err)
	}
	return &node, true, nil
}
