package fieldpath

import "fmt"

//go:generate go tool stringer -type=Mode -linecomment -output=mode_string.go

// Mode selects how Write updates each target location.
type Mode int

const (
	ModeAssign   Mode = iota // =
	ModeAdd                  // +
	ModeSubtract             // -
)

// IsValid reports whether m is a recognized mode.
func (m Mode) IsValid() bool {
	return m >= ModeAssign && m <= ModeSubtract
}

// ParseMode parses "=", "+", "-" or their names "assign", "add", "subtract".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "=", "assign":
		return ModeAssign, nil
	case "+", "add":
		return ModeAdd, nil
	case "-", "subtract":
		return ModeSubtract, nil
	default:
		return 0, &Error{Op: "write", Err: ErrInvalidMode, Detail: fmt.Sprintf("unknown mode %q", s)}
	}
}
