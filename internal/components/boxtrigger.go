package components

import (
	"xrplay/internal/engine"
	"xrplay/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BoxTrigger is an overlap-only volume. It never pushes anything; the
// trigger world reports enter/exit pairs between volumes.
type BoxTrigger struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
}

func NewBoxTrigger(size rl.Vector3) *BoxTrigger {
	return &BoxTrigger{
		Size:   size,
		Offset: rl.Vector3{},
	}
}

// Bounds returns the world-space box. Size is scaled by the object's world
// scale; rotation is ignored, which is fine for slot-sized volumes.
func (b *BoxTrigger) Bounds() physics.AABB {
	g := b.GetGameObject()
	scale := g.WorldScale()
	size := rl.Vector3{X: b.Size.X * scale.X, Y: b.Size.Y * scale.Y, Z: b.Size.Z * scale.Z}
	center := rl.Vector3Add(g.WorldPosition(), b.Offset)
	return physics.NewAABBFromCenter(center, size)
}
