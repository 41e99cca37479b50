package scripts

import (
	"math"
	"testing"

	"xrplay/internal/components"
	"xrplay/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// observeLogs routes the global logger into an in-memory sink for the test.
func observeLogs(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	undo := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(undo)
	return logs
}

// angleBetween returns the rotation angle in degrees separating a and b.
func angleBetween(a, b rl.Quaternion) float64 {
	dot := math.Abs(float64(a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W))
	if dot > 1 {
		dot = 1
	}
	return 2 * math.Acos(dot) * 180 / math.Pi
}

func step(scene *engine.Scene, frames int, dt float32) {
	for i := 0; i < frames; i++ {
		scene.Update(dt)
	}
}

type puzzle struct {
	scene     *engine.Scene
	container *WordContainer
	slots     map[string]*engine.GameObject
	blocks    map[rune]*LetterBlock
}

// newPuzzle builds a container whose slots are created in the given order
// at the given local X, plus one grabbable block per letter.
func newPuzzle(t *testing.T, dictionary []string, slotXs map[string]float32, slotOrder []string, letters string) *puzzle {
	t.Helper()
	p := &puzzle{
		scene:  engine.NewScene("puzzle"),
		slots:  make(map[string]*engine.GameObject),
		blocks: make(map[rune]*LetterBlock),
	}
	root := engine.NewGameObject("WordContainer")
	p.container = &WordContainer{Words: dictionary}
	root.AddComponent(p.container)
	root.AddComponent(components.NewAnimator())
	p.scene.AddGameObject(root)

	for _, name := range slotOrder {
		slot := engine.NewGameObject(name)
		slot.Transform.Position = rl.Vector3{X: slotXs[name]}
		slot.AddComponent(&InsertionSlot{})
		root.AddChild(slot)
		p.scene.AddGameObject(slot)
		p.slots[name] = slot
	}

	for i, r := range letters {
		g := engine.NewGameObject("Block" + string(r))
		g.Transform.Position = rl.Vector3{X: float32(i), Y: 1, Z: 3}
		g.AddComponent(components.NewGrabbable())
		block := &LetterBlock{Letter: r}
		g.AddComponent(block)
		p.scene.AddGameObject(g)
		p.blocks[r] = block
	}

	p.scene.Start()
	return p
}

func (p *puzzle) slot(name string) *InsertionSlot {
	return engine.GetComponent[*InsertionSlot](p.slots[name])
}

func grabbable(b *LetterBlock) *components.Grabbable {
	return engine.GetComponent[*components.Grabbable](b.GetGameObject())
}

// drop grabs the block, drags it into the named slot and releases it.
func (p *puzzle) drop(t *testing.T, r rune, slotName string) bool {
	t.Helper()
	block := p.blocks[r]
	if !grabbable(block).Grab(nil) {
		return false
	}
	p.slot(slotName).OnTriggerEnter(block.GetGameObject())
	grabbable(block).Release()
	return block.CurrentSlot() == p.slot(slotName)
}
