package calculator

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Compute evaluates previous <op> current and returns the result as text.
//
// An operand that is absent or does not parse as a number yields "", the
// no-result value, and nothing is computed. Division by zero is not special:
// the floating point Infinity or NaN comes back as text. An op outside
// +, -, * and / is a programming error and panics.
func Compute(previous, current Operand, op Operation) string {
	prev, ok := parseOperand(previous)
	if !ok {
		return ""
	}
	curr, ok := parseOperand(current)
	if !ok {
		return ""
	}

	var result float64
	switch op {
	case Add:
		result = prev + curr
	case Subtract:
		result = prev - curr
	case Multiply:
		result = prev * curr
	case Divide:
		result = prev / curr
	default:
		panic(fmt.Sprintf("calculator: undefined operation %q", string(op)))
	}

	return FormatNumber(result)
}

// leadingNumber matches the longest numeric prefix an operand is read as.
// Anything after it is ignored.
var leadingNumber = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

func parseOperand(o Operand) (float64, bool) {
	text, ok := o.Text()
	if !ok {
		return 0, false
	}

	lead := leadingNumber.FindString(strings.TrimLeftFunc(text, unicode.IsSpace))
	if lead == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(lead, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

// FormatNumber renders v as the shortest text that round-trips, in plain
// notation for 1e-6 <= |v| < 1e21 and in exponent notation otherwise.
// Negative zero prints as "0".
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	// strconv pads the exponent to two digits: 1.5e-07
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}
