package scripts

import (
	"cmp"
	"slices"

	"xrplay/internal/components"
	"xrplay/internal/engine"
	"xrplay/internal/words"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const playerTag = "Player"

// WordContainer owns a row of InsertionSlots and decides when the letters
// in them spell a dictionary word. A completed word locks its blocks.
type WordContainer struct {
	engine.BaseComponent
	// Words is the inline dictionary, used when DictionaryPath is empty or
	// fails to load.
	Words          []string
	DictionaryPath string
	// Animator receives PlayerIN / PlayerOUT when a Player-tagged object
	// enters or leaves the container's trigger volume.
	Animator engine.GameObjectRef

	WordCompleted engine.EventWithArg[string]

	dict  *words.Dictionary
	slots []*InsertionSlot
	anim  *components.Animator
	word  string
}

// Awake collects the slots once, ordered left to right by local X.
func (c *WordContainer) Awake() {
	g := c.GetGameObject()
	c.slots = engine.GetComponentsInChildren[*InsertionSlot](g)
	slices.SortStableFunc(c.slots, func(a, b *InsertionSlot) int {
		return cmp.Compare(a.GetGameObject().Transform.Position.X, b.GetGameObject().Transform.Position.X)
	})

	if c.dict != nil {
		return
	}
	if c.DictionaryPath != "" {
		dict, err := words.LoadDictionary(c.DictionaryPath)
		if err == nil {
			c.dict = dict
			return
		}
		logger("words").Warn("falling back to inline words", zap.String("object", g.Name), zap.Error(err))
	}
	c.dict = words.NewDictionary(c.Words...)
}

func (c *WordContainer) Start() {
	g := c.GetGameObject()
	if target := c.Animator.Get(g.Scene); target != nil {
		c.anim = engine.GetComponent[*components.Animator](target)
	}
	if c.anim == nil {
		c.anim = engine.GetComponent[*components.Animator](g)
	}
}

// SetDictionary shares an externally managed dictionary, such as one kept
// fresh by a words.Watcher.
func (c *WordContainer) SetDictionary(d *words.Dictionary) {
	c.dict = d
}

func (c *WordContainer) Dictionary() *words.Dictionary {
	return c.dict
}

// Slots returns the slots in reading order.
func (c *WordContainer) Slots() []*InsertionSlot {
	return append([]*InsertionSlot(nil), c.slots...)
}

// Word returns the last word completed in this container.
func (c *WordContainer) Word() string {
	return c.word
}

func (c *WordContainer) OnTriggerEnter(other *engine.GameObject) {
	if other.HasTag(playerTag) {
		c.setTrigger("PlayerIN")
	}
}

func (c *WordContainer) OnTriggerExit(other *engine.GameObject) {
	if other.HasTag(playerTag) {
		c.setTrigger("PlayerOUT")
	}
}

func (c *WordContainer) setTrigger(name string) {
	if c.anim == nil {
		logger("words").Warn("no animator for trigger", zap.String("trigger", name))
		return
	}
	c.anim.SetTrigger(name)
}

// PlaceBlock commits a released block to its candidate slot. It fails,
// clearing the candidate, when there is none or the slot is taken.
func (c *WordContainer) PlaceBlock(b *LetterBlock) bool {
	target := b.targetSlot
	if target == nil || target.IsOccupied() {
		b.targetSlot = nil
		return false
	}

	g := b.GetGameObject()
	g.SetParent(target.GetGameObject(), true)
	g.Transform.Position = rl.Vector3{}
	g.Transform.Rotation = rl.QuaternionIdentity()

	target.occupant = b
	b.wasInWord = true
	b.currentSlot = target
	b.targetSlot = nil

	c.CheckWord()
	return true
}

// RemoveBlock frees the slot b is committed to, if any.
func (c *WordContainer) RemoveBlock(b *LetterBlock) {
	if b.currentSlot == nil {
		return
	}
	b.currentSlot.occupant = nil
	b.currentSlot = nil
	c.CheckWord()
}

// Letters reads the slots in order, words.Empty for free ones.
func (c *WordContainer) Letters() []rune {
	out := make([]rune, len(c.slots))
	for i, s := range c.slots {
		out[i] = s.Letter()
	}
	return out
}

// CheckWord evaluates the slots and handles a valid word.
func (c *WordContainer) CheckWord() (string, bool) {
	word, ok := words.Evaluate(c.Letters(), c.dict)
	if !ok {
		return "", false
	}
	logger("words").Info("valid word formed", zap.String("word", word))
	c.handleValidWord(word)
	return word, true
}

func (c *WordContainer) handleValidWord(word string) {
	for _, s := range c.slots {
		if !s.IsOccupied() {
			continue
		}
		// Disable grabbing so the word cannot be taken apart.
		if grab := engine.GetComponent[*components.Grabbable](s.occupant.GetGameObject()); grab != nil {
			grab.Enabled = false
		}
	}
	c.word = word
	c.WordCompleted.Invoke(word)
}

func init() {
	engine.RegisterScriptWithApplier("WordContainer", wordContainerFactory, wordContainerSerializer, wordContainerApplier)
}

func wordContainerFactory(props map[string]any) engine.Component {
	c := &WordContainer{}
	for name, value := range props {
		wordContainerApplier(c, name, value)
	}
	return c
}

func wordContainerSerializer(comp engine.Component) map[string]any {
	c, ok := comp.(*WordContainer)
	if !ok {
		return nil
	}
	list := make([]any, len(c.Words))
	for i, w := range c.Words {
		list[i] = w
	}
	return map[string]any{
		"words":      list,
		"dictionary": c.DictionaryPath,
		"animator":   float64(c.Animator.UID),
	}
}

func wordContainerApplier(comp engine.Component, propName string, value any) bool {
	c, ok := comp.(*WordContainer)
	if !ok {
		return false
	}
	props := map[string]any{propName: value}
	switch propName {
	case "words":
		c.Words = engine.PropStrings(props, propName)
		if c.dict != nil && c.DictionaryPath == "" {
			c.dict = words.NewDictionary(c.Words...)
		}
	case "dictionary":
		c.DictionaryPath = engine.PropString(props, propName, "")
	case "animator":
		c.Animator = engine.PropRef(props, propName)
	default:
		return false
	}
	return true
}
