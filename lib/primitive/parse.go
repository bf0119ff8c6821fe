// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package primitive

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/bureau-foundation/graphcodec/lib/decimal"
	"github.com/bureau-foundation/graphcodec/lib/enum"
	"github.com/bureau-foundation/graphcodec/lib/value"
)

// ErrUnparseable is returned when text matches none of the accepted
// forms for the target type.
var ErrUnparseable = errors.New("primitive: unparseable value")

// token is a case-insensitive named numeric constant.
type token int

const (
	tokenNone token = iota
	tokenPositiveInfinity
	tokenNegativeInfinity
	tokenNaN
	tokenPi
	tokenTau
	tokenE
	tokenEpsilon
	tokenMin
	tokenMax
)

var tokens = map[string]token{
	"infinity":  tokenPositiveInfinity,
	"+infinity": tokenPositiveInfinity,
	"inf":       tokenPositiveInfinity,
	"+inf":      tokenPositiveInfinity,
	"∞":         tokenPositiveInfinity,
	"+∞":        tokenPositiveInfinity,
	"-infinity": tokenNegativeInfinity,
	"-inf":      tokenNegativeInfinity,
	"-∞":        tokenNegativeInfinity,
	"nan":       tokenNaN,
	"pi":        tokenPi,
	"π":         tokenPi,
	"tau":       tokenTau,
	"τ":         tokenTau,
	"e":         tokenE,
	"epsilon":   tokenEpsilon,
	"ε":         tokenEpsilon,
	"min":       tokenMin,
	"max":       tokenMax,
}

// Parse converts text to a value of type t. Supported targets are the
// primitive kinds of package value (bool, integers, floats, decimals,
// chars, strings) and registered enums. Strings are returned verbatim;
// quoting is the caller's concern.
func Parse(t reflect.Type, text string) (reflect.Value, error) {
	kind := value.KindOf(t)
	switch kind {
	case value.KindString:
		result := reflect.New(t).Elem()
		result.SetString(text)
		return result, nil
	case value.KindEnum:
		return enum.Lookup(t).Parse(text)
	case value.KindChar:
		return parseChar(t, text)
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return reflect.Value{}, unparseable(t, text)
	}

	var (
		result reflect.Value
		err    error
	)
	switch kind {
	case value.KindBool:
		result, err = parseBool(t, trimmed)
	case value.KindInt8, value.KindInt16, value.KindInt32, value.KindInt64,
		value.KindUint8, value.KindUint16, value.KindUint32, value.KindUint64:
		result, err = parseInteger(t, trimmed)
	case value.KindFloat32, value.KindFloat64:
		result, err = parseFloat(t, trimmed)
	case value.KindDecimal:
		result, err = parseDecimal(t, trimmed)
	default:
		return reflect.Value{}, fmt.Errorf("%w: %v is not a primitive type", ErrUnparseable, t)
	}
	if err != nil {
		return reflect.Value{}, err
	}
	return result, nil
}

// ParseAs is the generic form of Parse.
func ParseAs[T any](text string) (T, error) {
	var zero T
	result, err := Parse(reflect.TypeFor[T](), text)
	if err != nil {
		return zero, err
	}
	return result.Interface().(T), nil
}

func unparseable(t reflect.Type, text string) error {
	return fmt.Errorf("%w: %q as %v", ErrUnparseable, text, t)
}

func parseBool(t reflect.Type, text string) (reflect.Value, error) {
	result := reflect.New(t).Elem()
	lower := strings.ToLower(text)
	switch {
	case strings.ContainsAny(lower, "+yv1"):
		result.SetBool(true)
	case strings.ContainsAny(lower, "-nx0"):
		result.SetBool(false)
	default:
		parsed, err := strconv.ParseBool(lower)
		if err != nil {
			return reflect.Value{}, unparseable(t, text)
		}
		result.SetBool(parsed)
	}
	return result, nil
}

// normalizeNumber lowercases text and maps the decimal comma to a
// point, returning the named token if the text is one.
func normalizeNumber(text string) (string, token) {
	normalized := strings.ReplaceAll(strings.ToLower(text), ",", ".")
	return normalized, tokens[normalized]
}

// tokenFloat returns the float64 value of a finite or infinite named
// constant. It is not defined for tokenMin, tokenMax or tokenNaN.
func tokenFloat(named token, epsilon float64) float64 {
	switch named {
	case tokenPositiveInfinity:
		return math.Inf(1)
	case tokenNegativeInfinity:
		return math.Inf(-1)
	case tokenPi:
		return math.Pi
	case tokenTau:
		return 2 * math.Pi
	case tokenE:
		return math.E
	case tokenEpsilon:
		return epsilon
	default:
		return 0
	}
}

func integerBounds(t reflect.Type) (minimum, maximum *big.Int) {
	bits := uint(t.Bits())
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		maximum = new(big.Int).Lsh(big.NewInt(1), bits-1)
		minimum = new(big.Int).Neg(maximum)
		maximum.Sub(maximum, big.NewInt(1))
	default:
		minimum = new(big.Int)
		maximum = new(big.Int).Lsh(big.NewInt(1), bits)
		maximum.Sub(maximum, big.NewInt(1))
	}
	return minimum, maximum
}

func parseInteger(t reflect.Type, text string) (reflect.Value, error) {
	minimum, maximum := integerBounds(t)
	normalized, named := normalizeNumber(text)

	var integer *big.Int
	switch named {
	case tokenNone:
		if strings.Contains(normalized, "/") {
			return reflect.Value{}, unparseable(t, text)
		}
		rational, ok := new(big.Rat).SetString(normalized)
		if !ok {
			return reflect.Value{}, unparseable(t, text)
		}
		integer = new(big.Int).Quo(rational.Num(), rational.Denom())
	case tokenNaN:
		return reflect.Value{}, unparseable(t, text)
	case tokenMin, tokenNegativeInfinity:
		integer = minimum
	case tokenMax, tokenPositiveInfinity:
		integer = maximum
	default:
		integer, _ = big.NewFloat(tokenFloat(named, 0)).Int(nil)
	}

	integer = wrap(integer, minimum, maximum)
	result := reflect.New(t).Elem()
	if minimum.Sign() < 0 {
		result.SetInt(integer.Int64())
	} else {
		result.SetUint(integer.Uint64())
	}
	return result, nil
}

// wrap brings x into [minimum, maximum] by modular arithmetic over the
// range width: ((x - minimum) mod width) + minimum. This is the closed
// form of repeatedly adding or subtracting the width.
func wrap(x, minimum, maximum *big.Int) *big.Int {
	if x.Cmp(minimum) >= 0 && x.Cmp(maximum) <= 0 {
		return x
	}
	width := new(big.Int).Sub(maximum, minimum)
	width.Add(width, big.NewInt(1))
	wrapped := new(big.Int).Sub(x, minimum)
	wrapped.Mod(wrapped, width)
	return wrapped.Add(wrapped, minimum)
}

func parseFloat(t reflect.Type, text string) (reflect.Value, error) {
	bits := t.Bits()
	maximum, epsilon := math.MaxFloat64, math.SmallestNonzeroFloat64
	if bits == 32 {
		maximum, epsilon = math.MaxFloat32, math.SmallestNonzeroFloat32
	}

	normalized, named := normalizeNumber(text)
	var parsed float64
	switch named {
	case tokenNone:
		var err error
		parsed, err = strconv.ParseFloat(normalized, bits)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return reflect.Value{}, unparseable(t, text)
		}
	case tokenNaN:
		parsed = math.NaN()
	case tokenMin:
		parsed = -maximum
	case tokenMax:
		parsed = maximum
	default:
		parsed = tokenFloat(named, epsilon)
	}

	result := reflect.New(t).Elem()
	result.SetFloat(parsed)
	return result, nil
}

func parseDecimal(t reflect.Type, text string) (reflect.Value, error) {
	normalized, named := normalizeNumber(text)
	var parsed decimal.Decimal
	switch named {
	case tokenNone:
		var err error
		parsed, err = decimal.Parse(normalized)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %w", unparseable(t, text), err)
		}
	case tokenNaN:
		return reflect.Value{}, unparseable(t, text)
	case tokenMin, tokenNegativeInfinity:
		parsed = decimal.MinValue
	case tokenMax, tokenPositiveInfinity:
		parsed = decimal.MaxValue
	case tokenPi:
		parsed = decimal.Pi
	case tokenTau:
		parsed = decimal.Tau
	case tokenE:
		parsed = decimal.E
	case tokenEpsilon:
		parsed = decimal.Epsilon
	}

	result := reflect.New(t).Elem()
	result.Set(reflect.ValueOf(parsed))
	return result, nil
}

func parseChar(t reflect.Type, text string) (reflect.Value, error) {
	result := reflect.New(t).Elem()
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "min":
		return result, nil
	case "max":
		result.SetUint(math.MaxUint16)
		return result, nil
	}

	content := text
	if len(text) >= 2 && text[0] == '\'' && text[len(text)-1] == '\'' {
		// strconv rejects surrogate escapes, which Format writes for
		// unpaired surrogates.
		if escape := text[1 : len(text)-1]; len(escape) == 6 && strings.HasPrefix(escape, `\u`) {
			if unit, err := strconv.ParseUint(escape[2:], 16, 16); err == nil {
				result.SetUint(unit)
				return result, nil
			}
		}
		if unquoted, err := strconv.Unquote(text); err == nil {
			content = unquoted
		} else {
			content = text[1 : len(text)-1]
		}
	}
	units := utf16.Encode([]rune(content))
	if len(units) != 1 {
		return reflect.Value{}, unparseable(t, text)
	}
	result.SetUint(uint64(units[0]))
	return result, nil
}
