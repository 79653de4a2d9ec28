package calculator

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrTapeMismatch = errors.New("tape expectation not met")

// Tape is a recorded input session. Events run first, then Keys.
//
//	name: chained
//	keys: "5+3*2="
//	expect:
//	  current: "16"
type Tape struct {
	Name     string         `yaml:"name,omitempty"`
	Messages []EventMessage `yaml:"events,omitempty"`
	Keys     string         `yaml:"keys,omitempty"`
	Expect   *Display       `yaml:"expect,omitempty"`
}

// LoadTape decodes a single YAML tape document.
func LoadTape(r io.Reader) (Tape, error) {
	var t Tape
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return Tape{}, fmt.Errorf("decode tape: %w", err)
	}
	return t, nil
}

// Events returns the tape's input in replay order.
func (t Tape) Events() ([]Event, error) {
	events, err := DecodeEvents(t.Messages)
	if err != nil {
		return nil, err
	}

	keyed, err := ParseKeys(t.Keys)
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}

	return append(events, keyed...), nil
}

// Replay runs the tape from the initial state.
func (t Tape) Replay() (State, error) {
	events, err := t.Events()
	if err != nil {
		return State{}, err
	}
	return ReduceAll(Initial(), events...), nil
}

// Check compares the display of s with the tape's expectation. Surrounding
// whitespace in the previous line is not significant. A tape without an
// expectation always passes.
func (t Tape) Check(s State) error {
	if t.Expect == nil {
		return nil
	}

	got := Render(s)
	if got.Current != t.Expect.Current {
		return fmt.Errorf("%w: current %q, want %q", ErrTapeMismatch, got.Current, t.Expect.Current)
	}
	if strings.TrimSpace(got.Previous) != strings.TrimSpace(t.Expect.Previous) {
		return fmt.Errorf("%w: previous %q, want %q", ErrTapeMismatch, got.Previous, t.Expect.Previous)
	}
	return nil
}
