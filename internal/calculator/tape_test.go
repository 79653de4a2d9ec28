package calculator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"go-chi-calculator/internal/calculator"
)

func TestParseKeys(t *testing.T) {
	events, err := calculator.ParseKeys("12 + 7.5 = DEL AC < c")
	require.NoError(t, err)
	require.Equal(t, []calculator.Event{
		calculator.AddDigit{Digit: "1"},
		calculator.AddDigit{Digit: "2"},
		calculator.ChooseOperation{Operation: calculator.Add},
		calculator.AddDigit{Digit: "7"},
		calculator.AddDigit{Digit: "."},
		calculator.AddDigit{Digit: "5"},
		calculator.Evaluate{},
		calculator.DeleteDigit{},
		calculator.Clear{},
		calculator.DeleteDigit{},
		calculator.Clear{},
	}, events)
}

func TestParseKeysRejectsUnknownKey(t *testing.T) {
	_, err := calculator.ParseKeys("12%3")
	require.ErrorIs(t, err, calculator.ErrUnknownKey)
	require.ErrorContains(t, err, "offset 2")
}

const chainedTape = `
name: chained
events:
  - type: add-digit
    digit: "5"
  - type: choose-operation
    operation: "+"
keys: "3*2="
expect:
  current: "16"
`

func TestTapeReplayAndCheck(t *testing.T) {
	tape, err := calculator.LoadTape(strings.NewReader(chainedTape))
	require.NoError(t, err)
	require.Equal(t, "chained", tape.Name)
	require.Len(t, tape.Messages, 2)

	s, err := tape.Replay()
	require.NoError(t, err)
	require.Equal(t, calculator.State{CurrentOperand: calculator.Some("16"), Overwrite: true}, s)
	require.NoError(t, tape.Check(s))
}

func TestTapeCheckMismatch(t *testing.T) {
	tape := calculator.Tape{
		Keys:   "1000+",
		Expect: &calculator.Display{Previous: "1,000 -"},
	}

	s, err := tape.Replay()
	require.NoError(t, err)
	require.ErrorIs(t, tape.Check(s), calculator.ErrTapeMismatch)

	tape.Expect.Previous = "1,000 +"
	require.NoError(t, tape.Check(s))
}

func TestTapeReplayRejectsBadInput(t *testing.T) {
	t.Run("event", func(t *testing.T) {
		tape := calculator.Tape{Messages: []calculator.EventMessage{{Type: "sqrt"}}}
		_, err := tape.Replay()
		require.ErrorIs(t, err, calculator.ErrUnknownEvent)
	})

	t.Run("keys", func(t *testing.T) {
		tape := calculator.Tape{Keys: "2^2"}
		_, err := tape.Replay()
		require.ErrorIs(t, err, calculator.ErrUnknownKey)
	})

	t.Run("yaml", func(t *testing.T) {
		_, err := calculator.LoadTape(strings.NewReader("events: {"))
		require.Error(t, err)
	})
}
