package executor

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

var (
	errLeadingZero = errors.New("number has a leading zero")
	errControlChar = errors.New("unescaped control character in string")
)

// parseJSON decodes b the way a browser's JSON.parse would accept it. The
// decoder tolerates leading zeros and raw control characters in strings,
// so those are rejected up front.
func parseJSON(b []byte) (any, error) {
	if err := checkStrict(b); err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// checkStrict scans b for the two things RFC 8259 forbids that the decoder
// lets through. It does not check structure.
func checkStrict(b []byte) error {
	inString, escaped := false, false
	for i, c := range b {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			case c < 0x20:
				return fmt.Errorf("offset %d: %w", i, errControlChar)
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
		case c == '0' && i+1 < len(b) && isDigit(b[i+1]) && startsNumber(b, i):
			return fmt.Errorf("offset %d: %w", i, errLeadingZero)
		}
	}
	return nil
}

// startsNumber reports whether b[i] is the first digit of an integer part,
// as opposed to a digit inside a fraction or exponent.
func startsNumber(b []byte, i int) bool {
	if i == 0 {
		return true
	}
	switch prev := b[i-1]; {
	case isDigit(prev), prev == '.', prev == 'e', prev == 'E', prev == '+':
		return false
	case prev == '-':
		return i < 2 || (b[i-2] != 'e' && b[i-2] != 'E')
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
