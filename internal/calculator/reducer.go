// Package calculator holds the calculator state machine: the state shape,
// the input events, the reducer that applies them and the evaluator for a
// single pending binary operation.
//
// Everything here is pure. Callers own the current State and replace it
// with whatever Reduce returns.
package calculator

import "strings"

// Reduce returns the state that follows s after e. Events it does not
// recognise, including AddDigit and ChooseOperation with payloads outside
// the keypad, leave s unchanged.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case AddDigit:
		return addDigit(s, e.Digit)
	case ChooseOperation:
		return chooseOperation(s, e.Operation)
	case Clear:
		return Initial()
	case Evaluate:
		return evaluate(s)
	case DeleteDigit:
		return deleteDigit(s)
	default:
		return s
	}
}

// ReduceAll folds events over s in order.
func ReduceAll(s State, events ...Event) State {
	for _, e := range events {
		s = Reduce(s, e)
	}
	return s
}

func addDigit(s State, d string) State {
	if !IsDigit(d) {
		return s
	}

	// a fresh number starts after a result
	if s.Overwrite {
		s.CurrentOperand = Some(d)
		s.Overwrite = false
		return s
	}

	current, _ := s.CurrentOperand.Text()
	if d == "0" && s.CurrentOperand == Some("0") {
		return s
	}
	if d == "." && strings.Contains(current, ".") {
		return s
	}

	s.CurrentOperand = Some(current + d)
	return s
}

func chooseOperation(s State, op Operation) State {
	if !op.Valid() {
		return s
	}

	switch {
	case !s.CurrentOperand.Present() && !s.PreviousOperand.Present():
		return s
	case !s.CurrentOperand.Present():
		s.Operation = op
	case !s.PreviousOperand.Present():
		s.PreviousOperand = s.CurrentOperand
		s.Operation = op
		s.CurrentOperand = Operand{}
	default:
		// chain left to right, no precedence
		s.PreviousOperand = Some(Compute(s.PreviousOperand, s.CurrentOperand, s.Operation))
		s.Operation = op
		s.CurrentOperand = Operand{}
	}
	return s
}

func evaluate(s State) State {
	if s.Operation == NoOperation || !s.PreviousOperand.Present() || !s.CurrentOperand.Present() {
		return s
	}

	return State{
		CurrentOperand: Some(Compute(s.PreviousOperand, s.CurrentOperand, s.Operation)),
		Overwrite:      true,
	}
}

func deleteDigit(s State) State {
	if s.Overwrite {
		s.CurrentOperand = Operand{}
		s.Overwrite = false
		return s
	}

	current, ok := s.CurrentOperand.Text()
	if !ok {
		return s
	}

	// The empty operand only comes from an unparseable evaluation; it goes
	// away like a single character would.
	if len(current) <= 1 {
		s.CurrentOperand = Operand{}
		return s
	}

	s.CurrentOperand = Some(current[:len(current)-1])
	return s
}
