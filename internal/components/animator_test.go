package components

import (
	"slices"
	"testing"

	"xrplay/internal/engine"
)

func TestAnimatorTriggers(t *testing.T) {
	obj := engine.NewGameObject("Door")
	a := NewAnimator()
	obj.AddComponent(a)

	var fired []string
	a.Triggered.AddListener(func(name string) { fired = append(fired, name) })

	a.SetTrigger("PlayerIN")
	a.SetTrigger("Open")
	a.SetTrigger("PlayerIN")
	if !a.Pending("PlayerIN") || !a.Pending("Open") {
		t.Fatal("triggers should be pending before Update")
	}

	obj.Update(0.016)
	if got := a.Consumed(); !slices.Equal(got, []string{"PlayerIN", "Open"}) {
		t.Errorf("consumed = %v", got)
	}
	if a.Pending("PlayerIN") {
		t.Error("PlayerIN still pending after Update")
	}
	if got := a.History(); !slices.Equal(got, []string{"PlayerIN", "Open", "PlayerIN"}) {
		t.Errorf("history = %v", got)
	}
	if len(fired) != 3 {
		t.Errorf("Triggered fired %d times, want 3", len(fired))
	}

	obj.Update(0.016)
	if len(a.Consumed()) != 0 {
		t.Errorf("second Update consumed %v", a.Consumed())
	}
}

func TestAnimatorResetTrigger(t *testing.T) {
	a := &Animator{}
	a.SetTrigger("PlayerOUT")
	a.ResetTrigger("PlayerOUT")
	a.Update(0.016)
	if len(a.Consumed()) != 0 {
		t.Errorf("reset trigger was consumed: %v", a.Consumed())
	}
}
