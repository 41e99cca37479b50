// Package sim plays scripted interaction scenarios against a loaded world
// at a fixed timestep, standing in for an XR rig and a player's hands.
package sim

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a named list of steps, read from YAML.
type Scenario struct {
	Name string `yaml:"name"`
	// FixedStep overrides the configured frame delta when set.
	FixedStep float32 `yaml:"fixed_step,omitempty"`
	Steps     []Step  `yaml:"steps"`
}

// Step holds exactly one action or expectation.
type Step struct {
	Wait     *float32   `yaml:"wait,omitempty"` // seconds
	Grab     string     `yaml:"grab,omitempty"`
	Move     *MoveStep  `yaml:"move,omitempty"`
	Release  string     `yaml:"release,omitempty"`
	Toggle   string     `yaml:"toggle,omitempty"`
	SetState *StateStep `yaml:"set_state,omitempty"`
	Key      *KeyStep   `yaml:"key,omitempty"`
	Spawn    *SpawnStep `yaml:"spawn,omitempty"`
	Destroy  string     `yaml:"destroy,omitempty"`
	Arrange  string     `yaml:"arrange,omitempty"`

	ExpectWord     *ExpectWordStep     `yaml:"expect_word,omitempty"`
	ExpectState    *StateStep          `yaml:"expect_state,omitempty"`
	ExpectPosition *ExpectPositionStep `yaml:"expect_position,omitempty"`
}

type MoveStep struct {
	Object string     `yaml:"object"`
	To     [3]float32 `yaml:"to,flow"`
}

type StateStep struct {
	Object string `yaml:"object"`
	State  string `yaml:"state"`
}

type KeyStep struct {
	Object string `yaml:"object"`
	Key    string `yaml:"key"`
}

type SpawnStep struct {
	Name     string     `yaml:"name"`
	Parent   string     `yaml:"parent,omitempty"`
	Tags     []string   `yaml:"tags,omitempty,flow"`
	Position [3]float32 `yaml:"position,flow"`
}

type ExpectWordStep struct {
	Object string `yaml:"object"`
	Word   string `yaml:"word"`
}

type ExpectPositionStep struct {
	Object   string     `yaml:"object"`
	Position [3]float32 `yaml:"position,flow"`
	// Tolerance is the allowed distance; defaults to DefaultTolerance.
	Tolerance float32 `yaml:"tolerance,omitempty"`
}

// DefaultTolerance is the position slack when a step sets none.
const DefaultTolerance = 1e-3

var errStepShape = errors.New("step must set exactly one action")

// Kind names the step's action, e.g. "grab" or "expect_word".
func (s Step) Kind() (string, error) {
	var kinds []string
	add := func(set bool, name string) {
		if set {
			kinds = append(kinds, name)
		}
	}
	add(s.Wait != nil, "wait")
	add(s.Grab != "", "grab")
	add(s.Move != nil, "move")
	add(s.Release != "", "release")
	add(s.Toggle != "", "toggle")
	add(s.SetState != nil, "set_state")
	add(s.Key != nil, "key")
	add(s.Spawn != nil, "spawn")
	add(s.Destroy != "", "destroy")
	add(s.Arrange != "", "arrange")
	add(s.ExpectWord != nil, "expect_word")
	add(s.ExpectState != nil, "expect_state")
	add(s.ExpectPosition != nil, "expect_position")

	if len(kinds) != 1 {
		return "", fmt.Errorf("%w, got %v", errStepShape, kinds)
	}
	return kinds[0], nil
}

// IsExpectation reports whether the step only checks state.
func (s Step) IsExpectation() bool {
	return s.ExpectWord != nil || s.ExpectState != nil || s.ExpectPosition != nil
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	for i, step := range sc.Steps {
		if _, err := step.Kind(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if step.Wait != nil && *step.Wait < 0 {
			return nil, fmt.Errorf("step %d: negative wait", i+1)
		}
	}
	if sc.FixedStep < 0 {
		return nil, fmt.Errorf("negative fixed_step")
	}
	return &sc, nil
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}
