package calculator

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Display is the pair of strings a view shows for a state.
type Display struct {
	Previous string `json:"previous" yaml:"previous"`
	Current  string `json:"current" yaml:"current"`
}

// Render derives the display of s: the previous operand followed by the
// pending operation, and the current operand.
func Render(s State) Display {
	return Display{
		Previous: FormatOperand(s.PreviousOperand) + " " + string(s.Operation),
		Current:  FormatOperand(s.CurrentOperand),
	}
}

// FormatOperand formats a present operand and returns "" for an absent one.
func FormatOperand(o Operand) string {
	text, ok := o.Text()
	if !ok {
		return ""
	}
	return Format(text)
}

// Format groups the integer part of text with thousands separators and
// appends the fractional part exactly as typed, so trailing zeros and a
// trailing "." survive. It never changes the stored operand.
func Format(text string) string {
	integer, decimal, hasDecimal := strings.Cut(text, ".")
	out := formatInteger(integer)
	if hasDecimal {
		out += "." + decimal
	}
	return out
}

func formatInteger(s string) string {
	if s == "" {
		return "0"
	}
	if rest, ok := strings.CutPrefix(s, "-"); ok && rest != "" {
		return "-" + formatInteger(rest)
	}

	if isDigits(s) {
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			return printer.Sprintf("%d", n)
		}
		return groupDigits(strings.TrimLeft(s, "0"))
	}

	v, err := strconv.ParseFloat(s, 64)
	switch {
	case err != nil, math.IsNaN(v):
		return s
	case math.IsInf(v, 0):
		return "∞"
	}
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// groupDigits inserts separators into a digit string too long for uint64.
// The leading group comes from the printer so both paths share its separator.
func groupDigits(s string) string {
	head := len(s) % 3
	if head == 0 {
		head = 3
	}

	n, _ := strconv.ParseUint(s[:head], 10, 64)
	var b strings.Builder
	b.WriteString(printer.Sprintf("%d", n))
	sep := printer.Sprintf("%d", 1000)[1:2]
	for i := head; i < len(s); i += 3 {
		b.WriteString(sep)
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
