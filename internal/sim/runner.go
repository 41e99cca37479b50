package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"xrplay/internal/components"
	"xrplay/internal/engine"
	"xrplay/internal/scripts"
	"xrplay/internal/words"
	"xrplay/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

var (
	// ErrExpectation is returned when at least one expect_* step failed.
	ErrExpectation = errors.New("expectation failed")
	// ErrFrameBudget is returned when a scenario runs past Options.MaxFrames.
	ErrFrameBudget = errors.New("frame budget exceeded")
	// ErrMissingComponent is returned when a step targets an object that
	// lacks the component the action needs.
	ErrMissingComponent = errors.New("missing component")
)

type Options struct {
	FixedStep float32
	MaxFrames int
}

// Runner plays scenarios against one world. Runs share the world, so a
// second scenario continues where the first left off.
type Runner struct {
	world *world.World
	opts  Options
	log   *zap.Logger
}

func NewRunner(w *world.World, opts Options) *Runner {
	if opts.FixedStep <= 0 {
		opts.FixedStep = 1.0 / 60
	}
	return &Runner{world: w, opts: opts, log: zap.L().Named("sim")}
}

// Run plays sc. Every action is followed by one frame, waits by as many
// frames as cover the duration, and expectations run without a frame.
// The report is returned even when err is non-nil.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Report, error) {
	dt := r.opts.FixedStep
	if sc.FixedStep > 0 {
		dt = sc.FixedStep
	}
	report := &Report{Scenario: sc.Name}
	unsubscribe := r.observe(report)
	defer unsubscribe()

	r.world.Play()
	r.world.Start()
	r.log.Info("scenario started", zap.String("scenario", sc.Name), zap.Int("steps", len(sc.Steps)), zap.Float32("dt", dt))

	for i, step := range sc.Steps {
		kind, err := step.Kind()
		if err != nil {
			return report, fmt.Errorf("step %d: %w", i+1, err)
		}
		if step.IsExpectation() {
			failure, err := r.check(step)
			if err != nil {
				return report, fmt.Errorf("step %d (%s): %w", i+1, kind, err)
			}
			if failure != "" {
				msg := fmt.Sprintf("step %d: %s", i+1, failure)
				r.log.Warn("expectation failed", zap.String("detail", msg))
				report.Failures = append(report.Failures, msg)
			}
			continue
		}

		frames := 1
		if step.Wait != nil {
			// The epsilon keeps 0.5s at 60Hz from rounding up to 31 frames.
			frames = int(math.Ceil(float64(*step.Wait/dt) - 1e-4))
		} else if err := r.apply(step, report); err != nil {
			return report, fmt.Errorf("step %d (%s): %w", i+1, kind, err)
		}
		r.log.Debug("step", zap.Int("index", i+1), zap.String("kind", kind), zap.Int("frames", frames))

		for f := 0; f < frames; f++ {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			if r.opts.MaxFrames > 0 && report.Frames >= r.opts.MaxFrames {
				return report, fmt.Errorf("%w: %d", ErrFrameBudget, r.opts.MaxFrames)
			}
			r.world.Step(dt)
			report.Frames++
			report.Elapsed += float64(dt)
		}
	}

	r.log.Info("scenario finished",
		zap.String("scenario", sc.Name),
		zap.Int("frames", report.Frames),
		zap.Int("words", len(report.Words)),
		zap.Int("failures", len(report.Failures)))
	if !report.Passed() {
		return report, fmt.Errorf("%w: %d failed", ErrExpectation, len(report.Failures))
	}
	return report, nil
}

// observe records words, state entries and animator triggers from every
// object present when the run starts.
func (r *Runner) observe(report *Report) func() {
	var undo []func()
	for _, g := range r.world.Scene.GameObjects {
		name := g.Name
		for _, c := range g.Components() {
			switch comp := c.(type) {
			case *scripts.WordContainer:
				id := comp.WordCompleted.AddListener(func(word string) {
					report.Words = append(report.Words, WordEntry{Frame: r.world.Frame, Container: name, Word: word})
				})
				undo = append(undo, func() { comp.WordCompleted.RemoveListener(id) })
			case *scripts.StateMachine:
				id := comp.StateEntered.AddListener(func(s scripts.PlayerState) {
					report.States = append(report.States, StateEntry{Frame: r.world.Frame, Object: name, State: s.String()})
				})
				undo = append(undo, func() { comp.StateEntered.RemoveListener(id) })
			case *components.Animator:
				id := comp.Triggered.AddListener(func(trigger string) {
					report.Triggers = append(report.Triggers, TriggerEntry{Frame: r.world.Frame, Object: name, Trigger: trigger})
				})
				undo = append(undo, func() { comp.Triggered.RemoveListener(id) })
			}
		}
	}
	return func() {
		for _, f := range undo {
			f()
		}
	}
}

func (r *Runner) apply(step Step, report *Report) error {
	switch {
	case step.Grab != "":
		grab, err := component[*components.Grabbable](r.world, step.Grab)
		if err != nil {
			return err
		}
		if !grab.Grab(nil) {
			r.log.Warn("grab refused", zap.String("object", step.Grab))
			report.RefusedGrabs = append(report.RefusedGrabs, step.Grab)
		}

	case step.Move != nil:
		g, err := r.world.Object(step.Move.Object)
		if err != nil {
			return err
		}
		g.SetWorldPosition(vec(step.Move.To))

	case step.Release != "":
		grab, err := component[*components.Grabbable](r.world, step.Release)
		if err != nil {
			return err
		}
		if !grab.Release() {
			r.log.Debug("release of an object nobody holds", zap.String("object", step.Release))
		}

	case step.Toggle != "":
		door, err := component[*scripts.Door](r.world, step.Toggle)
		if err != nil {
			return err
		}
		door.ToggleDoor()

	case step.SetState != nil:
		m, err := component[*scripts.StateMachine](r.world, step.SetState.Object)
		if err != nil {
			return err
		}
		s, err := scripts.ParsePlayerState(step.SetState.State)
		if err != nil {
			return err
		}
		m.SetState(s)

	case step.Key != nil:
		keys, err := component[*scripts.StateHotkeys](r.world, step.Key.Object)
		if err != nil {
			return err
		}
		if !keys.PressKey(step.Key.Key) {
			return fmt.Errorf("key %q does nothing on %s", step.Key.Key, step.Key.Object)
		}

	case step.Spawn != nil:
		return r.spawn(step.Spawn)

	case step.Destroy != "":
		g, err := r.world.Object(step.Destroy)
		if err != nil {
			return err
		}
		r.world.Destroy(g)

	case step.Arrange != "":
		layout, err := component[*scripts.Layout3D](r.world, step.Arrange)
		if err != nil {
			return err
		}
		layout.Arrange()
	}
	return nil
}

func (r *Runner) spawn(s *SpawnStep) error {
	g := engine.NewGameObject(s.Name)
	g.Tags = s.Tags
	g.Transform.Position = vec(s.Position)
	if s.Parent != "" {
		parent, err := r.world.Object(s.Parent)
		if err != nil {
			return err
		}
		parent.AddChild(g)
	}
	r.world.SpawnObject(g)
	return nil
}

// check returns a failure description, or "" when the expectation holds.
func (r *Runner) check(step Step) (string, error) {
	switch {
	case step.ExpectWord != nil:
		wc, err := component[*scripts.WordContainer](r.world, step.ExpectWord.Object)
		if err != nil {
			return "", err
		}
		want := strings.ToUpper(step.ExpectWord.Word)
		if got := wc.Word(); got != want {
			return fmt.Sprintf("%s: word %q, want %q", step.ExpectWord.Object, got, want), nil
		}

	case step.ExpectState != nil:
		m, err := component[*scripts.StateMachine](r.world, step.ExpectState.Object)
		if err != nil {
			return "", err
		}
		if got := m.CurrentState.String(); got != step.ExpectState.State {
			return fmt.Sprintf("%s: state %s, want %s", step.ExpectState.Object, got, step.ExpectState.State), nil
		}

	case step.ExpectPosition != nil:
		e := step.ExpectPosition
		g, err := r.world.Object(e.Object)
		if err != nil {
			return "", err
		}
		tol := e.Tolerance
		if tol <= 0 {
			tol = DefaultTolerance
		}
		got := g.WorldPosition()
		if d := rl.Vector3Distance(got, vec(e.Position)); d > tol {
			return fmt.Sprintf("%s: at (%.3f, %.3f, %.3f), want (%.3f, %.3f, %.3f)",
				e.Object, got.X, got.Y, got.Z, e.Position[0], e.Position[1], e.Position[2]), nil
		}
	}
	return "", nil
}

func component[T engine.Component](w *world.World, name string) (T, error) {
	var zero T
	g, err := w.Object(name)
	if err != nil {
		return zero, err
	}
	c, ok := engine.TryGetComponent[T](g)
	if !ok {
		return zero, fmt.Errorf("%w: %s has no %T", ErrMissingComponent, name, zero)
	}
	return c, nil
}

// ShareDictionary points every WordContainer in the world at d and
// returns how many there were.
func ShareDictionary(w *world.World, d *words.Dictionary) int {
	n := 0
	for _, g := range w.Scene.GameObjects {
		for _, c := range g.Components() {
			if wc, ok := c.(*scripts.WordContainer); ok {
				wc.SetDictionary(d)
				n++
			}
		}
	}
	return n
}

func vec(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}
