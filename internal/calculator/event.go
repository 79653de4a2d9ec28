package calculator

// Event kinds, matching the action names used on the wire.
const (
	KindAddDigit        = "add-digit"
	KindChooseOperation = "choose-operation"
	KindClear           = "clear"
	KindEvaluate        = "evaluate"
	KindDeleteDigit     = "delete-digit"
)

// Event is a single user input applied by Reduce.
type Event interface {
	Kind() string
}

// AddDigit types one character of a number: 0-9 or ".".
type AddDigit struct {
	Digit string
}

// ChooseOperation selects the pending operator, evaluating any pending
// computation first.
type ChooseOperation struct {
	Operation Operation
}

// Clear resets to the initial state.
type Clear struct{}

// Evaluate computes the pending operation.
type Evaluate struct{}

// DeleteDigit removes the last typed character.
type DeleteDigit struct{}

func (AddDigit) Kind() string        { return KindAddDigit }
func (ChooseOperation) Kind() string { return KindChooseOperation }
func (Clear) Kind() string           { return KindClear }
func (Evaluate) Kind() string        { return KindEvaluate }
func (DeleteDigit) Kind() string     { return KindDeleteDigit }

// IsDigit reports whether d is a single character accepted by AddDigit.
func IsDigit(d string) bool {
	if len(d) != 1 {
		return false
	}
	c := d[0]
	return c == '.' || (c >= '0' && c <= '9')
}
