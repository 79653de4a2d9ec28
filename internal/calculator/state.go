package calculator

import (
	"encoding/json"
	"fmt"
)

// Operation is a pending binary operator. The zero value means no operation
// is pending.
type Operation string

const (
	NoOperation Operation = ""
	Add         Operation = "+"
	Subtract    Operation = "-"
	Multiply    Operation = "*"
	Divide      Operation = "/"
)

// Valid reports whether o is one of +, -, * or /.
func (o Operation) Valid() bool {
	switch o {
	case Add, Subtract, Multiply, Divide:
		return true
	}
	return false
}

// Operand is the optional text of a number being typed or captured.
// The zero value is the absent operand.
type Operand struct {
	text    string
	present bool
}

// Some returns a present operand holding text.
func Some(text string) Operand {
	return Operand{text: text, present: true}
}

// Present reports whether the operand has been entered.
func (o Operand) Present() bool { return o.present }

// Text returns the operand text and whether it is present.
func (o Operand) Text() (string, bool) { return o.text, o.present }

func (o Operand) String() string {
	if !o.present {
		return "<absent>"
	}
	return o.text
}

// MarshalJSON encodes an absent operand as null.
func (o Operand) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.text)
}

// UnmarshalJSON decodes null as the absent operand.
func (o *Operand) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Operand{}
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("decode operand: %w", err)
	}
	*o = Some(text)
	return nil
}

// State is an immutable calculator snapshot. Transitions never modify a
// State in place; Reduce returns a new value.
type State struct {
	CurrentOperand  Operand   `json:"current_operand"`
	PreviousOperand Operand   `json:"previous_operand"`
	Operation       Operation `json:"operation,omitempty"`
	Overwrite       bool      `json:"overwrite"`
}

// Initial returns the empty state a session starts in.
func Initial() State {
	return State{}
}
