package valueobjects

import (
	"fmt"
	"strconv"
	"strings"
)

type Money struct {
	amountInCents int64
	currency      string
}

func NewMoney(amountInCents int64, currency string) Money {
	if currency == "" {
		currency = "EGP"
	}
	return Money{
		amountInCents: amountInCents,
		currency:      currency,
	}
}

// maxWholeDigits bounds the whole part so the cent value fits in int64.
const maxWholeDigits = 15

// ParseAmount parses a user-submitted decimal amount string ("100", "99.50")
// into Money. The amount must be strictly positive with at most two decimal
// places. The decimal digits are read directly; floats never touch the value.
func ParseAmount(raw, currency string) (Money, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Money{}, fmt.Errorf("amount is required")
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return Money{}, fmt.Errorf("amount must be a valid number")
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return Money{}, fmt.Errorf("amount must be a valid number")
	}
	if len(whole) > maxWholeDigits {
		return Money{}, fmt.Errorf("amount is too large")
	}
	if len(frac) > 2 {
		return Money{}, fmt.Errorf("amount must have at most two decimal places")
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("amount must be a valid number")
	}

	// "99.5" means 50 cents, not 5.
	for len(frac) < 2 {
		frac += "0"
	}
	centPart, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("amount must be a valid number")
	}

	cents := units*100 + centPart
	if cents <= 0 {
		return Money{}, fmt.Errorf("amount must be greater than zero")
	}

	return NewMoney(cents, currency), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (m Money) AmountInCents() int64 {
	return m.amountInCents
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) AmountInUnits() float64 {
	return float64(m.amountInCents) / 100.0
}

func (m Money) Equals(other Money) bool {
	return m.amountInCents == other.amountInCents && m.currency == other.currency
}

func (m Money) IsPositive() bool {
	return m.amountInCents > 0
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.AmountInUnits(), m.currency)
}
