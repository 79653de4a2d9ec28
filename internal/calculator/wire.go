package calculator

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownEvent     = errors.New("unknown event type")
	ErrInvalidDigit     = errors.New("invalid digit")
	ErrInvalidOperation = errors.New("invalid operation")
)

// EventMessage is the serialized form of an Event, shared by the HTTP API
// and tape files.
type EventMessage struct {
	Type      string    `json:"type" yaml:"type"`
	Digit     string    `json:"digit,omitempty" yaml:"digit,omitempty"`
	Operation Operation `json:"operation,omitempty" yaml:"operation,omitempty"`
}

// Event decodes the message. Unlike Reduce, which ignores what it does not
// know, decoding rejects unknown types and payloads off the keypad.
func (m EventMessage) Event() (Event, error) {
	switch m.Type {
	case KindAddDigit:
		if !IsDigit(m.Digit) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDigit, m.Digit)
		}
		return AddDigit{Digit: m.Digit}, nil
	case KindChooseOperation:
		if !m.Operation.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOperation, string(m.Operation))
		}
		return ChooseOperation{Operation: m.Operation}, nil
	case KindClear:
		return Clear{}, nil
	case KindEvaluate:
		return Evaluate{}, nil
	case KindDeleteDigit:
		return DeleteDigit{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, m.Type)
	}
}

// MessageOf encodes e.
func MessageOf(e Event) EventMessage {
	switch e := e.(type) {
	case AddDigit:
		return EventMessage{Type: KindAddDigit, Digit: e.Digit}
	case ChooseOperation:
		return EventMessage{Type: KindChooseOperation, Operation: e.Operation}
	default:
		return EventMessage{Type: e.Kind()}
	}
}

// DecodeEvents decodes messages in order, stopping at the first bad one.
func DecodeEvents(msgs []EventMessage) ([]Event, error) {
	events := make([]Event, 0, len(msgs))
	for i, m := range msgs {
		e, err := m.Event()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, e)
	}
	return events, nil
}
