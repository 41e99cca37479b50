package sim

import (
	"fmt"
	"io"
)

type WordEntry struct {
	Frame     int
	Container string
	Word      string
}

type StateEntry struct {
	Frame  int
	Object string
	State  string
}

type TriggerEntry struct {
	Frame   int
	Object  string
	Trigger string
}

// Report is what a scenario run observed.
type Report struct {
	Scenario string
	Frames   int
	// Elapsed is simulated time in seconds.
	Elapsed float64

	Words        []WordEntry
	States       []StateEntry
	Triggers     []TriggerEntry
	RefusedGrabs []string
	Failures     []string
}

func (r *Report) Passed() bool {
	return len(r.Failures) == 0
}

// WriteText prints a human-readable summary.
func (r *Report) WriteText(out io.Writer) {
	status := "PASS"
	if !r.Passed() {
		status = "FAIL"
	}
	fmt.Fprintf(out, "%s %s: %d frames, %.2fs simulated\n", status, r.Scenario, r.Frames, r.Elapsed)
	for _, w := range r.Words {
		fmt.Fprintf(out, "  frame %4d  word     %s in %s\n", w.Frame, w.Word, w.Container)
	}
	for _, s := range r.States {
		fmt.Fprintf(out, "  frame %4d  state    %s -> %s\n", s.Frame, s.Object, s.State)
	}
	for _, t := range r.Triggers {
		fmt.Fprintf(out, "  frame %4d  trigger  %s on %s\n", t.Frame, t.Trigger, t.Object)
	}
	for _, g := range r.RefusedGrabs {
		fmt.Fprintf(out, "  refused grab of %s\n", g)
	}
	for _, f := range r.Failures {
		fmt.Fprintf(out, "  FAILED %s\n", f)
	}
}
