// Package tween runs restartable per-key interpolations driven by frame
// deltas. A key has at most one tween in flight; starting another for the
// same key replaces it.
package tween

// EaseFunc maps linear progress in [0,1] to eased progress.
type EaseFunc func(u float32) float32

// Linear leaves progress unchanged.
func Linear(u float32) float32 { return u }

// EaseOutCubic decelerates toward the end: 1-(1-u)^3.
func EaseOutCubic(u float32) float32 {
	v := 1 - u
	return 1 - v*v*v
}

func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Tween describes one interpolation. Begin captures the start value once the
// delay has elapsed, Apply receives eased progress every frame and exactly 1
// on completion. Alive, when set, is polled each frame; returning false
// aborts the tween without a final Apply.
type Tween struct {
	Delay    float32
	Duration float32
	Ease     EaseFunc
	Begin    func()
	Apply    func(u float32)
	Done     func()
	Alive    func() bool
}

type running struct {
	Tween
	waited  float32
	elapsed float32
	begun   bool
}

// Scheduler owns the in-flight tweens, keyed by K.
type Scheduler[K comparable] struct {
	active map[K]*running
	order  []K
}

func NewScheduler[K comparable]() *Scheduler[K] {
	return &Scheduler[K]{active: make(map[K]*running)}
}

// Start cancels any tween running for key and schedules tw in its place.
func (s *Scheduler[K]) Start(key K, tw Tween) {
	s.Cancel(key)
	if tw.Ease == nil {
		tw.Ease = Linear
	}
	s.active[key] = &running{Tween: tw}
	s.order = append(s.order, key)
}

// Cancel stops the tween for key where it is. It reports whether one was running.
func (s *Scheduler[K]) Cancel(key K) bool {
	if _, ok := s.active[key]; !ok {
		return false
	}
	delete(s.active, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// CancelAll stops every tween.
func (s *Scheduler[K]) CancelAll() {
	clear(s.active)
	s.order = s.order[:0]
}

func (s *Scheduler[K]) Active(key K) bool {
	_, ok := s.active[key]
	return ok
}

// Keys lists keys with a tween in flight, in start order.
func (s *Scheduler[K]) Keys() []K {
	return append([]K(nil), s.order...)
}

func (s *Scheduler[K]) Len() int {
	return len(s.active)
}

// Update advances every tween by dt seconds in start order. Callbacks may
// start or cancel tweens; changes for other keys apply from the next Update.
func (s *Scheduler[K]) Update(dt float32) {
	keys := append([]K(nil), s.order...)
	for _, key := range keys {
		r, ok := s.active[key]
		if !ok {
			continue
		}
		if r.Alive != nil && !r.Alive() {
			s.remove(key, r)
			continue
		}
		if !r.begun {
			if r.waited < r.Delay {
				r.waited += dt
				if r.waited < r.Delay {
					continue
				}
			}
			r.begun = true
			if r.Begin != nil {
				r.Begin()
			}
		}
		r.elapsed += dt
		if r.Duration <= 0 || r.elapsed >= r.Duration {
			s.remove(key, r)
			if r.Apply != nil {
				r.Apply(1)
			}
			if r.Done != nil {
				r.Done()
			}
			continue
		}
		if r.Apply != nil {
			r.Apply(r.Ease(Clamp01(r.elapsed / r.Duration)))
		}
	}
}

// remove drops key only if it still maps to r, so a callback that restarted
// the key keeps its new tween.
func (s *Scheduler[K]) remove(key K, r *running) {
	if cur, ok := s.active[key]; ok && cur == r {
		s.Cancel(key)
	}
}
