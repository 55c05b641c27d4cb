package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// DefaultDecimals matches the 18-decimal base unit of the staked asset.
const DefaultDecimals uint8 = 18

// MaxDecimals is the largest scale whose unit (10^n) still fits in 256 bits.
const MaxDecimals uint8 = 77

// Amount is a non-negative quantity expressed in base units.
type Amount struct {
	base uint256.Int
}

func ZeroAmount() Amount {
	return Amount{}
}

func AmountFromUint64(v uint64) Amount {
	var a Amount
	a.base.SetUint64(v)
	return a
}

// AmountFromBig converts a contract integer into an Amount. Negative values
// and values above 2^256-1 are rejected.
func AmountFromBig(v *big.Int) (Amount, error) {
	if v == nil {
		return Amount{}, nil
	}
	if v.Sign() < 0 {
		return Amount{}, fmt.Errorf("negative amount %s", v.String())
	}

	converted, overflow := uint256.FromBig(v)
	if overflow {
		return Amount{}, fmt.Errorf("amount %s overflows 256 bits", v.String())
	}

	return Amount{base: *converted}, nil
}

// ParseAmount converts a decimal string such as "1.5" into base units using
// the given number of decimals. Signs, exponents and excess fractional digits
// are rejected with ErrInvalidAmount.
func ParseAmount(raw string, decimals uint8) (Amount, error) {
	if decimals > MaxDecimals {
		return Amount{}, fmt.Errorf("%w: unsupported decimals %d", ErrInvalidAmount, decimals)
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Amount{}, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}

	whole, frac, hasDot := strings.Cut(trimmed, ".")
	if hasDot && strings.Contains(frac, ".") {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if whole == "" && frac == "" {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if !allDigits(whole) || !allDigits(frac) {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}

	frac = strings.TrimRight(frac, "0")
	if len(frac) > int(decimals) {
		return Amount{}, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidAmount, raw, decimals)
	}

	digits := whole + frac + strings.Repeat("0", int(decimals)-len(frac))
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return Amount{}, nil
	}

	value, err := uint256.FromDecimal(digits)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, raw, err)
	}

	return Amount{base: *value}, nil
}

// ParsePositiveAmount is ParseAmount that also rejects zero.
func ParsePositiveAmount(raw string, decimals uint8) (Amount, error) {
	amount, err := ParseAmount(raw, decimals)
	if err != nil {
		return Amount{}, err
	}
	if amount.IsZero() {
		return Amount{}, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidAmount)
	}

	return amount, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (a Amount) IsZero() bool {
	return a.base.IsZero()
}

func (a Amount) Cmp(other Amount) int {
	return a.base.Cmp(&other.base)
}

func (a Amount) Add(other Amount) Amount {
	var sum Amount
	sum.base.Add(&a.base, &other.base)
	return sum
}

// Big returns a fresh big.Int holding the base-unit value.
func (a Amount) Big() *big.Int {
	return a.base.ToBig()
}

// String returns the base-unit integer in decimal.
func (a Amount) String() string {
	return a.base.Dec()
}

// Format renders the amount as a decimal string scaled by decimals, keeping
// at least one fractional digit: 15000000000000000000 -> "15.0".
func (a Amount) Format(decimals uint8) string {
	digits := a.base.Dec()
	if decimals == 0 {
		return digits
	}

	scale := int(decimals)
	if len(digits) <= scale {
		digits = strings.Repeat("0", scale-len(digits)+1) + digits
	}

	whole := digits[:len(digits)-scale]
	frac := strings.TrimRight(digits[len(digits)-scale:], "0")
	if frac == "" {
		frac = "0"
	}

	return whole + "." + frac
}

func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.base.Dec()), nil
}

func (a *Amount) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		a.base.Clear()
		return nil
	}

	value, err := uint256.FromDecimal(string(text))
	if err != nil {
		return fmt.Errorf("decode amount %q: %w", string(text), err)
	}
	a.base = *value
	return nil
}
