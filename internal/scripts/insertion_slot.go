package scripts

import (
	"xrplay/internal/engine"
	"xrplay/internal/words"
)

// InsertionSlot is one letter position of a WordContainer. It needs a
// trigger volume; a dragged LetterBlock entering it marks the slot as the
// block's candidate, and leaving clears that again.
type InsertionSlot struct {
	engine.BaseComponent
	occupant *LetterBlock
}

// Occupant returns the block committed to this slot, if any.
func (s *InsertionSlot) Occupant() *LetterBlock {
	return s.occupant
}

func (s *InsertionSlot) IsOccupied() bool {
	return s.occupant != nil
}

// Letter returns the occupant's letter or words.Empty.
func (s *InsertionSlot) Letter() rune {
	if s.occupant == nil {
		return words.Empty
	}
	return s.occupant.Letter
}

func (s *InsertionSlot) OnTriggerEnter(other *engine.GameObject) {
	block := engine.GetComponent[*LetterBlock](other)
	if block != nil && block.IsBeingDragged() {
		block.targetSlot = s
	}
}

func (s *InsertionSlot) OnTriggerExit(other *engine.GameObject) {
	block := engine.GetComponent[*LetterBlock](other)
	if block != nil && block.targetSlot == s {
		block.targetSlot = nil
	}
}

func init() {
	engine.RegisterScript("InsertionSlot", func(map[string]any) engine.Component {
		return &InsertionSlot{}
	}, func(c engine.Component) map[string]any {
		if _, ok := c.(*InsertionSlot); !ok {
			return nil
		}
		return map[string]any{}
	})
}
