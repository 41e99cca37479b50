package scripts

import (
	"fmt"
	"math"
	"slices"

	"xrplay/internal/engine"
	"xrplay/internal/tween"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type LayoutType int

const (
	LayoutGrid LayoutType = iota
	LayoutLineX
	LayoutLineY
	LayoutLineZ
)

var layoutNames = []string{"Grid", "LineX", "LineY", "LineZ"}

func (t LayoutType) String() string {
	if t < 0 || int(t) >= len(layoutNames) {
		return fmt.Sprintf("LayoutType(%d)", int(t))
	}
	return layoutNames[t]
}

func ParseLayoutType(s string) (LayoutType, error) {
	if i := slices.Index(layoutNames, s); i >= 0 {
		return LayoutType(i), nil
	}
	return LayoutGrid, fmt.Errorf("unknown layout %q", s)
}

// Alignment anchors a grid. Rows run Upper, Middle, Lower along +Z and
// columns Left, Center, Right along +X.
type Alignment int

const (
	UpperLeft Alignment = iota
	UpperCenter
	UpperRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	LowerLeft
	LowerCenter
	LowerRight
)

var alignmentNames = []string{
	"UpperLeft", "UpperCenter", "UpperRight",
	"MiddleLeft", "MiddleCenter", "MiddleRight",
	"LowerLeft", "LowerCenter", "LowerRight",
}

func (a Alignment) String() string {
	if a < 0 || int(a) >= len(alignmentNames) {
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
	return alignmentNames[a]
}

func ParseAlignment(s string) (Alignment, error) {
	if i := slices.Index(alignmentNames, s); i >= 0 {
		return Alignment(i), nil
	}
	return MiddleCenter, fmt.Errorf("unknown alignment %q", s)
}

// GridTargets places count cells row-major on the XZ plane, columns wide,
// shifted so the alignment anchor sits at the origin.
func GridTargets(count, columns int, spacing float32, align Alignment) []rl.Vector3 {
	if columns < 1 {
		columns = 1
	}
	rows := int(math.Ceil(float64(count) / float64(columns)))
	totalWidth := float32(columns-1) * spacing
	totalHeight := float32(rows-1) * spacing

	// 0, half or all of the extent, picked by the anchor's column and row.
	fractions := [3]float32{0, 0.5, 1}
	offsetX := -totalWidth * fractions[int(align)%3]
	offsetZ := -totalHeight * fractions[int(align)/3%3]

	out := make([]rl.Vector3, count)
	for i := range out {
		row := i / columns
		col := i % columns
		out[i] = rl.Vector3{
			X: float32(col)*spacing + offsetX,
			Z: float32(row)*spacing + offsetZ,
		}
	}
	return out
}

// LineTargets places count cells from the origin along one axis.
func LineTargets(count int, layout LayoutType, spacing float32) []rl.Vector3 {
	out := make([]rl.Vector3, count)
	for i := range out {
		d := float32(i) * spacing
		switch layout {
		case LayoutLineX:
			out[i].X = d
		case LayoutLineY:
			out[i].Y = d
		case LayoutLineZ:
			out[i].Z = d
		}
	}
	return out
}

// Layout3D arranges the children of its object. Targets are recomputed on
// start, on every property edit and whenever children come or go.
type Layout3D struct {
	engine.BaseComponent
	Layout    LayoutType
	Alignment Alignment
	Columns   int
	Spacing   float32

	// Transitions only animate while the scene is playing.
	AnimateTransitions bool
	TransitionDuration float32
	Stagger            bool
	StaggerDelay       float32

	tweens *tween.Scheduler[*engine.GameObject]
}

func NewLayout3D() *Layout3D {
	return &Layout3D{
		Layout:             LayoutGrid,
		Alignment:          MiddleCenter,
		Columns:            5,
		Spacing:            2,
		AnimateTransitions: true,
		TransitionDuration: 0.25,
		StaggerDelay:       0.03,
	}
}

func (l *Layout3D) scheduler() *tween.Scheduler[*engine.GameObject] {
	if l.tweens == nil {
		l.tweens = tween.NewScheduler[*engine.GameObject]()
	}
	return l.tweens
}

func (l *Layout3D) Start() {
	l.Arrange()
}

func (l *Layout3D) OnValidate() {
	if l.Columns < 1 {
		l.Columns = 1
	}
	l.Arrange()
}

func (l *Layout3D) OnTransformChildrenChanged() {
	l.Arrange()
}

func (l *Layout3D) OnDisable() {
	l.scheduler().CancelAll()
}

func (l *Layout3D) Update(deltaTime float32) {
	l.scheduler().Update(deltaTime)
}

// Animating reports whether child has a transition in flight.
func (l *Layout3D) Animating(child *engine.GameObject) bool {
	return l.scheduler().Active(child)
}

// Targets returns the local positions for count children under the
// current settings.
func (l *Layout3D) Targets(count int) []rl.Vector3 {
	if l.Layout == LayoutGrid {
		return GridTargets(count, l.Columns, l.Spacing, l.Alignment)
	}
	return LineTargets(count, l.Layout, l.Spacing)
}

// Arrange moves every child toward its slot, animated when playing.
func (l *Layout3D) Arrange() {
	g := l.GetGameObject()
	if g == nil {
		return
	}
	children := append([]*engine.GameObject(nil), g.Children...)
	targets := l.Targets(len(children))
	sched := l.scheduler()

	// Children that left the container keep whatever pose they reached.
	for _, key := range sched.Keys() {
		if key.Parent != g {
			sched.Cancel(key)
		}
	}

	animate := l.AnimateTransitions && g.Scene != nil && g.Scene.Playing
	for i, child := range children {
		if animate {
			var delay float32
			if l.Stagger {
				delay = float32(i) * l.StaggerDelay
			}
			l.startAnimatedMove(child, targets[i], rl.QuaternionIdentity(), delay)
			continue
		}
		sched.Cancel(child)
		child.Transform.Position = targets[i]
		child.Transform.Rotation = rl.QuaternionIdentity()
	}
}

func (l *Layout3D) startAnimatedMove(child *engine.GameObject, pos rl.Vector3, rot rl.Quaternion, delay float32) {
	var startPos rl.Vector3
	var startRot rl.Quaternion
	l.scheduler().Start(child, tween.Tween{
		Delay:    delay,
		Duration: l.TransitionDuration,
		Ease:     tween.EaseOutCubic,
		Begin: func() {
			startPos = child.Transform.Position
			startRot = child.Transform.Rotation
		},
		Apply: func(u float32) {
			if u >= 1 {
				child.Transform.Position = pos
				child.Transform.Rotation = rot
				return
			}
			child.Transform.Position = rl.Vector3Lerp(startPos, pos, u)
			child.Transform.Rotation = rl.QuaternionSlerp(startRot, rot, u)
		},
		Alive: func() bool { return !child.IsDestroyed() },
	})
}

func init() {
	engine.RegisterScriptWithApplier("Layout3D", layoutFactory, layoutSerializer, layoutApplier)
}

func layoutFactory(props map[string]any) engine.Component {
	l := NewLayout3D()
	for name, value := range props {
		layoutApplier(l, name, value)
	}
	if l.Columns < 1 {
		l.Columns = 1
	}
	return l
}

func layoutSerializer(c engine.Component) map[string]any {
	l, ok := c.(*Layout3D)
	if !ok {
		return nil
	}
	return map[string]any{
		"layout":       l.Layout.String(),
		"alignment":    l.Alignment.String(),
		"columns":      l.Columns,
		"spacing":      l.Spacing,
		"animate":      l.AnimateTransitions,
		"duration":     l.TransitionDuration,
		"stagger":      l.Stagger,
		"staggerDelay": l.StaggerDelay,
	}
}

func layoutApplier(c engine.Component, propName string, value any) bool {
	l, ok := c.(*Layout3D)
	if !ok {
		return false
	}
	props := map[string]any{propName: value}
	switch propName {
	case "layout":
		t, err := ParseLayoutType(engine.PropString(props, propName, ""))
		if err != nil {
			logger("layout").Warn(err.Error())
			return false
		}
		l.Layout = t
	case "alignment":
		a, err := ParseAlignment(engine.PropString(props, propName, ""))
		if err != nil {
			logger("layout").Warn(err.Error())
			return false
		}
		l.Alignment = a
	case "columns":
		l.Columns = engine.PropInt(props, propName, l.Columns)
	case "spacing":
		l.Spacing = engine.PropFloat(props, propName, l.Spacing)
	case "animate":
		l.AnimateTransitions = engine.PropBool(props, propName, l.AnimateTransitions)
	case "duration":
		l.TransitionDuration = engine.PropFloat(props, propName, l.TransitionDuration)
	case "stagger":
		l.Stagger = engine.PropBool(props, propName, l.Stagger)
	case "staggerDelay":
		l.StaggerDelay = engine.PropFloat(props, propName, l.StaggerDelay)
	default:
		return false
	}
	return true
}
