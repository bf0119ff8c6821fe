// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package decimal

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// MaxScale is the largest number of fractional digits a Decimal holds.
const MaxScale = 28

var (
	// ErrOverflow is returned when a value does not fit in 96 bits of
	// magnitude at any permitted scale.
	ErrOverflow = errors.New("decimal: value out of range")

	// ErrSyntax is returned when text is not a decimal number.
	ErrSyntax = errors.New("decimal: invalid syntax")

	// ErrInvalidFlags is returned by FromWords when the flags word has
	// bits set outside the scale and sign fields, or the scale exceeds
	// MaxScale.
	ErrInvalidFlags = errors.New("decimal: invalid flags word")
)

const (
	scaleShift = 16
	signMask   = uint32(1) << 31
	scaleMask  = uint32(0xFF) << scaleShift
)

// Decimal is a 128-bit decimal value. The zero value is 0.
type Decimal struct {
	lo, mid, hi uint32
	scale       uint8
	negative    bool
}

var (
	maxMagnitude = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 96), big.NewInt(1))
	ten          = big.NewInt(10)
)

// MaxValue is the largest representable decimal, 79228162514264337593543950335.
var MaxValue = Decimal{lo: 0xFFFFFFFF, mid: 0xFFFFFFFF, hi: 0xFFFFFFFF}

// MinValue is the smallest representable decimal, -79228162514264337593543950335.
var MinValue = Decimal{lo: 0xFFFFFFFF, mid: 0xFFFFFFFF, hi: 0xFFFFFFFF, negative: true}

// Epsilon is the smallest positive decimal, 1e-28.
var Epsilon = Decimal{lo: 1, scale: MaxScale}

// Well-known constants at full precision.
var (
	Pi  = MustParse("3.1415926535897932384626433833")
	Tau = MustParse("6.2831853071795864769252867666")
	E   = MustParse("2.7182818284590452353602874714")
)

// MustParse is like Parse but panics on error. It is intended for
// constants and tests.
func MustParse(text string) Decimal {
	value, err := Parse(text)
	if err != nil {
		panic("decimal: invalid constant " + text + ": " + err.Error())
	}
	return value
}

// FromInt64 returns the decimal with the integer value v and scale 0.
func FromInt64(v int64) Decimal {
	magnitude := new(big.Int).Abs(big.NewInt(v))
	result, _ := fromBig(magnitude, 0, v < 0)
	return result
}

// FromUint64 returns the decimal with the integer value v and scale 0.
func FromUint64(v uint64) Decimal {
	result, _ := fromBig(new(big.Int).SetUint64(v), 0, false)
	return result
}

// FromFloat64 converts f using its shortest round-trip decimal text.
// Fails for NaN, infinities, and magnitudes beyond MaxValue. Digits past
// MaxScale are rounded half to even.
func FromFloat64(f float64) (Decimal, error) {
	return Parse(strconv.FormatFloat(f, 'f', -1, 64))
}

// FromWords rebuilds a decimal from its four-word wire layout.
func FromWords(words [4]uint32) (Decimal, error) {
	flags := words[3]
	if flags&^(scaleMask|signMask) != 0 {
		return Decimal{}, fmt.Errorf("%w: %#08x", ErrInvalidFlags, flags)
	}
	scale := uint8((flags & scaleMask) >> scaleShift)
	if scale > MaxScale {
		return Decimal{}, fmt.Errorf("%w: scale %d", ErrInvalidFlags, scale)
	}
	return Decimal{
		lo:       words[0],
		mid:      words[1],
		hi:       words[2],
		scale:    scale,
		negative: flags&signMask != 0,
	}, nil
}

// Words returns the four-word wire layout: lo, mid, hi, flags.
func (d Decimal) Words() [4]uint32 {
	flags := uint32(d.scale) << scaleShift
	if d.negative {
		flags |= signMask
	}
	return [4]uint32{d.lo, d.mid, d.hi, flags}
}

// Scale returns the number of fractional digits.
func (d Decimal) Scale() int {
	return int(d.scale)
}

// IsZero reports whether the magnitude is zero, regardless of sign and
// scale.
func (d Decimal) IsZero() bool {
	return d.lo == 0 && d.mid == 0 && d.hi == 0
}

// Sign returns -1, 0, or +1.
func (d Decimal) Sign() int {
	switch {
	case d.IsZero():
		return 0
	case d.negative:
		return -1
	default:
		return 1
	}
}

// Neg returns -d.
func (d Decimal) Neg() Decimal {
	d.negative = !d.negative
	return d
}

// Cmp compares d and other numerically and returns -1, 0, or +1.
func (d Decimal) Cmp(other Decimal) int {
	return d.Rat().Cmp(other.Rat())
}

// Rat returns the exact value of d as a rational number.
func (d Decimal) Rat() *big.Rat {
	numerator := d.magnitude()
	if d.negative {
		numerator.Neg(numerator)
	}
	denominator := new(big.Int).Exp(ten, big.NewInt(int64(d.scale)), nil)
	return new(big.Rat).SetFrac(numerator, denominator)
}

// Float64 returns the nearest float64 to d.
func (d Decimal) Float64() float64 {
	f, _ := d.Rat().Float64()
	return f
}

// String formats d in plain decimal notation, keeping trailing zeros
// implied by the scale ("1.50" stays "1.50"). A negative zero keeps
// its sign ("-0.00"), so Parse restores the same words.
func (d Decimal) String() string {
	digits := d.magnitude().String()
	if d.scale > 0 {
		if len(digits) <= int(d.scale) {
			digits = strings.Repeat("0", int(d.scale)-len(digits)+1) + digits
		}
		point := len(digits) - int(d.scale)
		digits = digits[:point] + "." + digits[point:]
	}
	if d.negative {
		return "-" + digits
	}
	return digits
}

// MarshalText implements encoding.TextMarshaler.
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Decimal) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Decimal) magnitude() *big.Int {
	magnitude := new(big.Int).SetUint64(uint64(d.hi))
	magnitude.Lsh(magnitude, 32)
	magnitude.Or(magnitude, new(big.Int).SetUint64(uint64(d.mid)))
	magnitude.Lsh(magnitude, 32)
	magnitude.Or(magnitude, new(big.Int).SetUint64(uint64(d.lo)))
	return magnitude
}

// Parse reads a decimal in plain or exponent notation: an optional
// sign, digits with at most one '.', and an optional e/E exponent.
// Fractional digits beyond MaxScale are rounded half to even.
func Parse(text string) (Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Decimal{}, fmt.Errorf("%w: empty string", ErrSyntax)
	}

	negative := false
	switch text[0] {
	case '-':
		negative = true
		text = text[1:]
	case '+':
		text = text[1:]
	}

	exponent := 0
	if index := strings.IndexAny(text, "eE"); index >= 0 {
		parsed, err := strconv.Atoi(text[index+1:])
		if err != nil {
			return Decimal{}, fmt.Errorf("%w: exponent %q", ErrSyntax, text[index+1:])
		}
		exponent = parsed
		text = text[:index]
	}

	integerPart, fractionPart, _ := strings.Cut(text, ".")
	if integerPart == "" && fractionPart == "" {
		return Decimal{}, fmt.Errorf("%w: no digits", ErrSyntax)
	}
	digits := integerPart + fractionPart
	for _, r := range digits {
		if r < '0' || r > '9' {
			return Decimal{}, fmt.Errorf("%w: %q", ErrSyntax, text)
		}
	}

	magnitude, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Decimal{}, fmt.Errorf("%w: %q", ErrSyntax, text)
	}
	scale := len(fractionPart) - exponent
	if scale < 0 {
		magnitude.Mul(magnitude, new(big.Int).Exp(ten, big.NewInt(int64(-scale)), nil))
		scale = 0
	}
	return fromBig(magnitude, scale, negative)
}

// fromBig reduces scale until the magnitude fits in 96 bits and the
// scale is at most MaxScale, rounding half to even.
func fromBig(magnitude *big.Int, scale int, negative bool) (Decimal, error) {
	if scale > MaxScale {
		magnitude = divideRoundHalfEven(magnitude, scale-MaxScale)
		scale = MaxScale
	}
	for magnitude.Cmp(maxMagnitude) > 0 && scale > 0 {
		magnitude = divideRoundHalfEven(magnitude, 1)
		scale--
	}
	if magnitude.Cmp(maxMagnitude) > 0 {
		return Decimal{}, ErrOverflow
	}

	var raw [3]uint32
	value := new(big.Int).Set(magnitude)
	mask := new(big.Int).SetUint64(0xFFFFFFFF)
	for i := range raw {
		raw[i] = uint32(new(big.Int).And(value, mask).Uint64())
		value.Rsh(value, 32)
	}

	return Decimal{
		lo:       raw[0],
		mid:      raw[1],
		hi:       raw[2],
		scale:    uint8(scale),
		negative: negative,
	}, nil
}

// divideRoundHalfEven divides magnitude by 10^digits, rounding half to
// even on the discarded remainder.
func divideRoundHalfEven(magnitude *big.Int, digits int) *big.Int {
	divisor := new(big.Int).Exp(ten, big.NewInt(int64(digits)), nil)
	quotient, remainder := new(big.Int).QuoRem(magnitude, divisor, new(big.Int))
	twice := new(big.Int).Lsh(remainder, 1)
	switch twice.Cmp(divisor) {
	case 1:
		quotient.Add(quotient, big.NewInt(1))
	case 0:
		if quotient.Bit(0) == 1 {
			quotient.Add(quotient, big.NewInt(1))
		}
	}
	return quotient
}
