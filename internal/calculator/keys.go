package calculator

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var ErrUnknownKey = errors.New("unknown key")

// ParseKeys turns keypad input into events. Digits and "." add a digit,
// + - * / choose an operation, "=" evaluates, "AC" or "C" clears and "DEL"
// or "<" deletes. Whitespace is ignored.
func ParseKeys(keys string) ([]Event, error) {
	var events []Event

	for i := 0; i < len(keys); {
		rest := keys[i:]
		c := keys[i]

		switch {
		case unicode.IsSpace(rune(c)):
			i++
			continue
		case hasKeyword(rest, "DEL"):
			events = append(events, DeleteDigit{})
			i += len("DEL")
			continue
		case hasKeyword(rest, "AC"):
			events = append(events, Clear{})
			i += len("AC")
			continue
		}

		key := string(c)
		switch {
		case IsDigit(key):
			events = append(events, AddDigit{Digit: key})
		case Operation(key).Valid():
			events = append(events, ChooseOperation{Operation: Operation(key)})
		case c == '=':
			events = append(events, Evaluate{})
		case c == 'C' || c == 'c':
			events = append(events, Clear{})
		case c == '<':
			events = append(events, DeleteDigit{})
		default:
			return nil, fmt.Errorf("%w %q at offset %d", ErrUnknownKey, key, i)
		}
		i++
	}

	return events, nil
}

func hasKeyword(s, kw string) bool {
	return len(s) >= len(kw) && strings.EqualFold(s[:len(kw)], kw)
}
