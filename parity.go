package uart

import (
	"fmt"
	"strings"

	gobug "go.bug.st/serial"
)

type Parity gobug.Parity

func (pa Parity) Get() gobug.Parity {
	return gobug.Parity(pa)
}

const (
	// ParityNone represents no parity bit
	ParityNone = Parity(gobug.NoParity)
	// ParityOdd represents odd parity bit
	ParityOdd = Parity(gobug.OddParity)
	// ParityEven represents even parity bit
	ParityEven = Parity(gobug.EvenParity)
	// ParityMark represents mark parity bit (always 1)
	ParityMark = Parity(gobug.MarkParity)
	// ParitySpace represents space parity bit (always 0)
	ParitySpace = Parity(gobug.SpaceParity)
)

func (pa Parity) String() string {
	switch pa {
	case ParityNone:
		return "none"
	case ParityOdd:
		return "odd"
	case ParityEven:
		return "even"
	case ParityMark:
		return "mark"
	case ParitySpace:
		return "space"
	default:
		return fmt.Sprintf("Parity(%d)", int(pa))
	}
}

// Valid reports whether pa is one of the known parity modes.
func (pa Parity) Valid() bool {
	switch pa {
	case ParityNone, ParityOdd, ParityEven, ParityMark, ParitySpace:
		return true
	}
	return false
}

// ParseParity accepts the long names and the single-letter forms N, O, E, M, S.
func ParseParity(s string) (Parity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "n":
		return ParityNone, nil
	case "odd", "o":
		return ParityOdd, nil
	case "even", "e":
		return ParityEven, nil
	case "mark", "m":
		return ParityMark, nil
	case "space", "s":
		return ParitySpace, nil
	}
	return ParityNone, fmt.Errorf("unsupported parity %q (use none, odd, even, mark or space)", s)
}

// Set implements flag.Value.
func (pa *Parity) Set(s string) error {
	v, err := ParseParity(s)
	if err != nil {
		return err
	}
	*pa = v
	return nil
}
