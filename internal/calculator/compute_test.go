package calculator_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"go-chi-calculator/internal/calculator"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name string
		prev calculator.Operand
		curr calculator.Operand
		op   calculator.Operation
		want string
	}{
		{name: "add", prev: calculator.Some("2"), curr: calculator.Some("3"), op: calculator.Add, want: "5"},
		{name: "subtract", prev: calculator.Some("5"), curr: calculator.Some("8"), op: calculator.Subtract, want: "-3"},
		{name: "multiply", prev: calculator.Some("2.5"), curr: calculator.Some("4"), op: calculator.Multiply, want: "10"},
		{name: "divide", prev: calculator.Some("10"), curr: calculator.Some("4"), op: calculator.Divide, want: "2.5"},
		{name: "repeating", prev: calculator.Some("1"), curr: calculator.Some("3"), op: calculator.Divide, want: "0.3333333333333333"},
		{name: "float rounding", prev: calculator.Some("0.1"), curr: calculator.Some("0.2"), op: calculator.Add, want: "0.30000000000000004"},
		{name: "trailing point", prev: calculator.Some("5."), curr: calculator.Some(".5"), op: calculator.Add, want: "5.5"},
		{name: "divide by zero", prev: calculator.Some("1"), curr: calculator.Some("0"), op: calculator.Divide, want: "Infinity"},
		{name: "negative divide by zero", prev: calculator.Some("-1"), curr: calculator.Some("0"), op: calculator.Divide, want: "-Infinity"},
		{name: "zero by zero", prev: calculator.Some("0"), curr: calculator.Some("0"), op: calculator.Divide, want: "NaN"},
		{name: "infinity carries", prev: calculator.Some("Infinity"), curr: calculator.Some("1"), op: calculator.Add, want: "Infinity"},
		{name: "overflowing operand", prev: calculator.Some("1" + strings.Repeat("0", 400)), curr: calculator.Some("2"), op: calculator.Multiply, want: "Infinity"},
		{name: "large result", prev: calculator.Some("1000000000000"), curr: calculator.Some("1000000000"), op: calculator.Multiply, want: "1e+21"},
		{name: "absent previous", curr: calculator.Some("1"), op: calculator.Add, want: ""},
		{name: "absent current", prev: calculator.Some("1"), op: calculator.Add, want: ""},
		{name: "non-numeric", prev: calculator.Some("abc"), curr: calculator.Some("1"), op: calculator.Add, want: ""},
		{name: "lone point", prev: calculator.Some("."), curr: calculator.Some("1"), op: calculator.Add, want: ""},
		{name: "empty", prev: calculator.Some(""), curr: calculator.Some("1"), op: calculator.Add, want: ""},
		{name: "not a number", prev: calculator.Some("NaN"), curr: calculator.Some("1"), op: calculator.Add, want: ""},
		{name: "leading number", prev: calculator.Some("12abc"), curr: calculator.Some("1"), op: calculator.Add, want: "13"},
		{name: "leading space", prev: calculator.Some(" 5"), curr: calculator.Some("1"), op: calculator.Add, want: "6"},
		{name: "exponent", prev: calculator.Some("1e3"), curr: calculator.Some("1"), op: calculator.Add, want: "1001"},
		{name: "incomplete exponent", prev: calculator.Some("2e"), curr: calculator.Some("1"), op: calculator.Add, want: "3"},
		{name: "underscore stops the number", prev: calculator.Some("1_0"), curr: calculator.Some("1"), op: calculator.Add, want: "2"},
		{name: "short infinity", prev: calculator.Some("inf"), curr: calculator.Some("1"), op: calculator.Add, want: ""},
		{name: "hex", prev: calculator.Some("0x10"), curr: calculator.Some("1"), op: calculator.Add, want: "1"},
		{name: "unparseable with undefined op", prev: calculator.Some("x"), curr: calculator.Some("1"), op: "%", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, calculator.Compute(tc.prev, tc.curr, tc.op))
		})
	}
}

func TestComputePanicsOnUndefinedOperation(t *testing.T) {
	for _, op := range []calculator.Operation{calculator.NoOperation, "%", "^"} {
		require.Panics(t, func() {
			calculator.Compute(calculator.Some("1"), calculator.Some("2"), op)
		}, "operation %q", op)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0"},
		{in: math.Copysign(0, -1), want: "0"},
		{in: 8, want: "8"},
		{in: -42.5, want: "-42.5"},
		{in: 1234567.125, want: "1234567.125"},
		{in: 0.000001, want: "0.000001"},
		{in: 1.5e-7, want: "1.5e-7"},
		{in: 1e21, want: "1e+21"},
		{in: -2.5e30, want: "-2.5e+30"},
		{in: 123456789012345680000, want: "123456789012345680000"},
		{in: math.Inf(1), want: "Infinity"},
		{in: math.Inf(-1), want: "-Infinity"},
		{in: math.NaN(), want: "NaN"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			require.Equal(t, tc.want, calculator.FormatNumber(tc.in))
		})
	}
}
