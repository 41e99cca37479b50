package world

import (
	"errors"
	"path/filepath"
	"testing"

	"xrplay/internal/components"
	"xrplay/internal/engine"
	"xrplay/internal/scripts"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const puzzleScene = `
name: test_room
objects:
  - name: Container
    uid: 9001
    position: [0, 1, 0]
    components:
      - {type: BoxTrigger, size: [4, 2, 2]}
      - type: Animator
      - type: Script
        name: WordContainer
        props:
          words: [go]
  - name: SlotO
    parent: Container
    position: [1, 0, 0]
    components:
      - {type: BoxTrigger, size: [0.5, 0.5, 0.5]}
      - {type: Script, name: InsertionSlot}
  - name: SlotG
    parent: Container
    position: [-1, 0, 0]
    components:
      - {type: BoxTrigger, size: [0.5, 0.5, 0.5]}
      - {type: Script, name: InsertionSlot}
  - name: BlockG
    position: [-1, 1, 4]
    components:
      - {type: BoxTrigger, size: [0.4, 0.4, 0.4]}
      - {type: Grabbable}
      - {type: Script, name: LetterBlock, props: {letter: G, container: 9001}}
  - name: BlockO
    position: [1, 1, 4]
    components:
      - {type: BoxTrigger, size: [0.4, 0.4, 0.4]}
      - {type: Grabbable}
      - {type: Script, name: LetterBlock, props: {letter: O, container: 9001}}
  - name: Player
    tags: [Player]
    position: [0, 1, 10]
    components:
      - {type: BoxTrigger, size: [1, 2, 1]}
`

const dt = float32(1.0 / 60)

func loadPuzzle(t *testing.T) *World {
	t.Helper()
	w := New("test")
	require.NoError(t, w.LoadSceneData([]byte(puzzleScene)))
	w.Play()
	w.Start()
	w.Step(dt)
	return w
}

func mustFind(t *testing.T, w *World, name string) *engine.GameObject {
	t.Helper()
	g, err := w.Object(name)
	require.NoError(t, err)
	return g
}

// drag grabs name, carries it to target's world position and lets go.
func drag(t *testing.T, w *World, name, target string) {
	t.Helper()
	g := mustFind(t, w, name)
	grab := engine.GetComponent[*components.Grabbable](g)
	require.True(t, grab.Grab(nil), "grab %s", name)
	w.Step(dt)
	g.SetWorldPosition(mustFind(t, w, target).WorldPosition())
	w.Step(dt)
	require.True(t, grab.Release())
	w.Step(dt)
}

func TestLoadSceneBuildsHierarchy(t *testing.T) {
	w := loadPuzzle(t)

	assert.Equal(t, "test_room", w.Scene.Name)
	container := mustFind(t, w, "Container")
	assert.Equal(t, uint64(9001), container.UID)
	assert.Len(t, container.Children, 2)
	assert.Equal(t, rl.Vector3{X: -1, Y: 1}, mustFind(t, w, "SlotG").WorldPosition())
	assert.True(t, mustFind(t, w, "Player").HasTag("Player"))
	assert.Len(t, w.Triggers.Objects(), 6)

	wc := engine.GetComponent[*scripts.WordContainer](container)
	require.NotNil(t, wc)
	slots := wc.Slots()
	require.Len(t, slots, 2)
	assert.Equal(t, "SlotG", slots[0].GetGameObject().Name)

	block := engine.GetComponent[*scripts.LetterBlock](mustFind(t, w, "BlockG"))
	assert.Equal(t, 'G', block.Letter)
	assert.Equal(t, uint64(9001), block.Container.UID)
}

func TestTriggersDriveWordPuzzle(t *testing.T) {
	w := loadPuzzle(t)
	container := mustFind(t, w, "Container")
	wc := engine.GetComponent[*scripts.WordContainer](container)
	var completed []string
	wc.WordCompleted.AddListener(func(word string) { completed = append(completed, word) })

	drag(t, w, "BlockG", "SlotG")
	blockG := mustFind(t, w, "BlockG")
	assert.Same(t, mustFind(t, w, "SlotG"), blockG.Parent)
	assert.Empty(t, completed)

	drag(t, w, "BlockO", "SlotO")
	assert.Equal(t, []string{"GO"}, completed)
	assert.Equal(t, "GO", wc.Word())
	assert.False(t, engine.GetComponent[*components.Grabbable](blockG).Grab(nil), "word blocks are locked")
}

func TestDropOutsideSlotLeavesBlockFree(t *testing.T) {
	w := loadPuzzle(t)

	drag(t, w, "BlockG", "Player")
	block := engine.GetComponent[*scripts.LetterBlock](mustFind(t, w, "BlockG"))
	assert.Nil(t, block.CurrentSlot())
	assert.Nil(t, block.GetGameObject().Parent)
	assert.Equal(t, rl.Vector3{Y: 1, Z: 10}, block.GetGameObject().Transform.Position)
}

func TestPlayerTriggersContainerAnimator(t *testing.T) {
	w := loadPuzzle(t)
	player := mustFind(t, w, "Player")
	anim := engine.GetComponent[*components.Animator](mustFind(t, w, "Container"))

	player.Transform.Position = rl.Vector3{Y: 1}
	w.Step(dt)
	player.Transform.Position = rl.Vector3{Y: 1, Z: 10}
	w.Step(dt)

	assert.Equal(t, []string{"PlayerIN", "PlayerOUT"}, anim.History())
}

func TestDestroyFreesSlotAndTrigger(t *testing.T) {
	w := loadPuzzle(t)
	drag(t, w, "BlockG", "SlotG")
	slot := engine.GetComponent[*scripts.InsertionSlot](mustFind(t, w, "SlotG"))
	require.True(t, slot.IsOccupied())

	w.Destroy(mustFind(t, w, "BlockG"))
	w.Step(dt)

	assert.False(t, slot.IsOccupied())
	assert.Len(t, w.Triggers.Objects(), 5)
	_, err := w.Object("BlockG")
	assert.ErrorIs(t, err, ErrUnknownObject)
}

func TestSpawnIntoStartedWorld(t *testing.T) {
	w := New("spawn")
	w.Start()

	shelf := engine.NewGameObject("Shelf")
	layout := scripts.NewLayout3D()
	layout.Layout = scripts.LayoutLineX
	shelf.AddComponent(layout)
	item := engine.NewGameObject("Item")
	item.AddComponent(components.NewBoxTrigger(rl.Vector3{X: 1, Y: 1, Z: 1}))
	other := engine.NewGameObject("Other")
	shelf.AddChild(item)
	shelf.AddChild(other)

	w.SpawnObject(shelf)

	assert.Len(t, w.Scene.GameObjects, 3)
	assert.Len(t, w.Triggers.Objects(), 1)
	assert.True(t, item.Started())
	assert.Equal(t, rl.Vector3{X: 2}, other.Transform.Position)

	w.SpawnObject(shelf)
	assert.Len(t, w.Scene.GameObjects, 3, "spawning twice adds nothing")
}

func TestStepCountsFrames(t *testing.T) {
	w := New("frames")
	w.Start()
	w.Step(0.5)
	w.Step(0.25)
	assert.Equal(t, 2, w.Frame)
	assert.InDelta(t, 0.75, w.Time, 1e-9)
	assert.False(t, w.Scene.Playing)
	w.Play()
	assert.True(t, w.Scene.Playing)
	w.Stop()
	assert.False(t, w.Scene.Playing)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	w := loadPuzzle(t)
	mustFind(t, w, "Player").Transform.Rotation = engine.EulerDegrees(0, 45, 0)
	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, w.SaveScene(path))

	loaded := New("reloaded")
	require.NoError(t, loaded.LoadScene(path))
	loaded.Start()

	assert.Equal(t, "test_room", loaded.Scene.Name)
	require.Len(t, loaded.Scene.GameObjects, len(w.Scene.GameObjects))
	for _, orig := range w.Scene.GameObjects {
		got := mustFind(t, loaded, orig.Name)
		assert.Equal(t, orig.UID, got.UID, orig.Name)
		assert.Len(t, got.Components(), len(orig.Components()), orig.Name)
		if orig.Parent != nil {
			require.NotNil(t, got.Parent, orig.Name)
			assert.Equal(t, orig.Parent.Name, got.Parent.Name)
		}
		assert.InDelta(t, orig.Transform.Position.Z, got.Transform.Position.Z, 1e-5, orig.Name)
	}

	rot := mustFind(t, loaded, "Player").Transform.Rotation
	want := engine.EulerDegrees(0, 45, 0)
	dot := rot.X*want.X + rot.Y*want.Y + rot.Z*want.Z + rot.W*want.W
	assert.InDelta(t, 1, dot*dot, 1e-4)

	wc := engine.GetComponent[*scripts.WordContainer](mustFind(t, loaded, "Container"))
	assert.True(t, wc.Dictionary().Contains("GO"))
}

func TestLoadSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		is   error
	}{
		{name: "unknown component", data: "objects:\n  - name: A\n    components:\n      - {type: Teleporter}\n", is: ErrUnknownComponent},
		{name: "unknown script", data: "objects:\n  - name: A\n    components:\n      - {type: Script, name: Nope}\n", is: ErrUnknownComponent},
		{name: "missing parent", data: "objects:\n  - name: A\n    parent: Ghost\n", is: ErrUnknownObject},
		{name: "own parent", data: "objects:\n  - {name: A, parent: A}\n", is: ErrParentCycle},
		{name: "parent cycle", data: "objects:\n  - {name: A, parent: B}\n  - {name: B, parent: A}\n", is: ErrParentCycle},
		{name: "long parent cycle", data: "objects:\n  - {name: A, parent: C}\n  - {name: B, parent: A}\n  - {name: C, parent: B}\n", is: ErrParentCycle},
		{name: "duplicate uid", data: "objects:\n  - {name: A, uid: 77}\n  - {name: B, uid: 77}\n"},
		{name: "bad yaml", data: "objects: {\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New("bad")
			err := w.LoadSceneData([]byte(tt.data))
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "got %v", err)
			}
			assert.Empty(t, w.Scene.GameObjects)
		})
	}
}

func TestLoadJSONScene(t *testing.T) {
	w := New("json")
	data := `{"objects": [{"name": "Door", "rotation": [0, 0, 0], "components": [{"type": "Script", "name": "Door", "props": {"openAngle": 45}}]}]}`
	require.NoError(t, w.LoadSceneData([]byte(data)))
	door := engine.GetComponent[*scripts.Door](mustFind(t, w, "Door"))
	require.NotNil(t, door)
	assert.Equal(t, float32(45), door.OpenAngle)
}
