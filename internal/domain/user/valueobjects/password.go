package valueobjects

import (
	"fmt"
	"unicode"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt input limit
)

// PlainPassword is a raw password awaiting hashing. It never leaves the
// process; persistence stores only the derived hash.
type PlainPassword struct {
	value string
}

// NewPlainPassword validates password strength.
func NewPlainPassword(value string) (PlainPassword, error) {
	if len(value) < minPasswordLength {
		return PlainPassword{}, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if len(value) > maxPasswordLength {
		return PlainPassword{}, fmt.Errorf("password must be at most %d characters", maxPasswordLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return PlainPassword{}, fmt.Errorf("password must contain both letters and digits")
	}

	return PlainPassword{value: value}, nil
}

func (p PlainPassword) String() string {
	return p.value
}
