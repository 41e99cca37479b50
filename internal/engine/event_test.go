package engine

import "testing"

func TestEventInvokeOrder(t *testing.T) {
	var e Event
	var calls []int
	e.AddListener(func() { calls = append(calls, 1) })
	e.AddListener(func() { calls = append(calls, 2) })

	if id := e.AddListener(nil); id != 0 {
		t.Error("nil listener should not be registered")
	}

	e.Invoke()

	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Errorf("Unexpected calls: %v", calls)
	}
	if e.GetListenerCount() != 2 {
		t.Errorf("Expected 2 listeners, got %d", e.GetListenerCount())
	}
}

func TestEventRemoveListener(t *testing.T) {
	var e Event
	count := 0
	id := e.AddListener(func() { count++ })
	e.AddListener(func() { count += 10 })

	if !e.RemoveListener(id) {
		t.Error("RemoveListener should find the listener")
	}
	if e.RemoveListener(id) {
		t.Error("RemoveListener should fail the second time")
	}

	e.Invoke()
	if count != 10 {
		t.Errorf("Expected only the remaining listener to run, count=%d", count)
	}

	e.RemoveAllListeners()
	e.Invoke()
	if count != 10 {
		t.Error("No listener should run after RemoveAllListeners")
	}
}

func TestEventListenerRemovingItself(t *testing.T) {
	var e EventWithArg[string]
	var got []string
	var id ListenerID
	id = e.AddListener(func(s string) {
		got = append(got, "once:"+s)
		e.RemoveListener(id)
	})
	e.AddListener(func(s string) { got = append(got, "always:"+s) })

	e.Invoke("a")
	e.Invoke("b")

	want := []string{"once:a", "always:a", "always:b"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Call %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
