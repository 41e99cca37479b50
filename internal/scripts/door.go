package scripts

import (
	"xrplay/internal/components"
	"xrplay/internal/engine"
	"xrplay/internal/tween"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// Door swings its object about the local Y axis between the rotation it
// had at start (closed) and that rotation turned by OpenAngle (open).
// Put it on the hinge pivot, not on the door mesh.
type Door struct {
	engine.BaseComponent
	OpenAngle     float32 // degrees
	RotationSpeed float32
	// ToggleOnGrab toggles the door whenever a sibling Grabbable is selected.
	ToggleOnGrab bool

	open           bool
	started        bool
	closedRotation rl.Quaternion
	openRotation   rl.Quaternion
	grab           *components.Grabbable
	grabListener   engine.ListenerID
}

func (d *Door) Start() {
	g := d.GetGameObject()
	if g == nil {
		return
	}
	d.closedRotation = g.Transform.Rotation
	d.computeOpenRotation()
	d.started = true

	if d.ToggleOnGrab {
		d.grab = engine.GetComponent[*components.Grabbable](g)
		if d.grab == nil {
			logger("door").Warn("toggleOnGrab set without a Grabbable", zap.String("object", g.Name))
			return
		}
		d.grabListener = d.grab.SelectEntered.AddListener(func(*engine.GameObject) { d.ToggleDoor() })
	}
}

func (d *Door) computeOpenRotation() {
	yaw := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, d.OpenAngle*rl.Deg2rad)
	d.openRotation = rl.QuaternionMultiply(d.closedRotation, yaw)
}

// OnValidate picks up a changed OpenAngle while running.
func (d *Door) OnValidate() {
	if d.started {
		d.computeOpenRotation()
	}
}

func (d *Door) Update(deltaTime float32) {
	g := d.GetGameObject()
	if g == nil || !d.started {
		return
	}
	g.Transform.Rotation = rl.QuaternionSlerp(g.Transform.Rotation, d.Target(), tween.Clamp01(deltaTime*d.RotationSpeed))
}

// ToggleDoor flips between open and closed. Called by interactors.
func (d *Door) ToggleDoor() {
	d.open = !d.open
	if g := d.GetGameObject(); g != nil {
		logger("door").Debug("door toggled", zap.String("object", g.Name), zap.Bool("open", d.open))
	}
}

func (d *Door) IsOpen() bool {
	return d.open
}

// Target is the rotation the door is currently swinging toward.
func (d *Door) Target() rl.Quaternion {
	if d.open {
		return d.openRotation
	}
	return d.closedRotation
}

func (d *Door) OnDestroy() {
	if d.grab != nil {
		d.grab.SelectEntered.RemoveListener(d.grabListener)
	}
}

func init() {
	engine.RegisterScriptWithApplier("Door", doorFactory, doorSerializer, doorApplier)
}

func doorFactory(props map[string]any) engine.Component {
	return &Door{
		OpenAngle:     engine.PropFloat(props, "openAngle", 90),
		RotationSpeed: engine.PropFloat(props, "rotationSpeed", 2),
		ToggleOnGrab:  engine.PropBool(props, "toggleOnGrab", false),
	}
}

func doorSerializer(c engine.Component) map[string]any {
	d, ok := c.(*Door)
	if !ok {
		return nil
	}
	return map[string]any{
		"openAngle":     d.OpenAngle,
		"rotationSpeed": d.RotationSpeed,
		"toggleOnGrab":  d.ToggleOnGrab,
	}
}

func doorApplier(c engine.Component, propName string, value any) bool {
	d, ok := c.(*Door)
	if !ok {
		return false
	}
	props := map[string]any{propName: value}
	switch propName {
	case "openAngle":
		d.OpenAngle = engine.PropFloat(props, propName, d.OpenAngle)
	case "rotationSpeed":
		d.RotationSpeed = engine.PropFloat(props, propName, d.RotationSpeed)
	case "toggleOnGrab":
		d.ToggleOnGrab = engine.PropBool(props, propName, d.ToggleOnGrab)
	default:
		return false
	}
	return true
}
