// SPDX-License-Identifier: MPL-2.0

package cmdopts

import (
	"fmt"
	"strconv"
)

const (
	// kindPresent marks a flag that is emitted without a value.
	kindPresent valueKind = iota
	// kindOmitted marks an occurrence that produces no tokens (Bool(false)).
	kindOmitted
	// kindLiteral marks a flag carrying a literal value.
	kindLiteral
)

type (
	valueKind uint8

	// Value is a single occurrence of an option. The zero value is equivalent to
	// Present().
	Value struct {
		kind    valueKind
		literal string
	}
)

// Present returns a value that emits the bare flag.
func Present() Value { return Value{kind: kindPresent} }

// Bool returns Present() for true and an omitted occurrence for false.
func Bool(b bool) Value {
	if b {
		return Present()
	}
	return Value{kind: kindOmitted}
}

// String returns a literal value. The empty string is still a literal.
func String(s string) Value { return Value{kind: kindLiteral, literal: s} }

// Int returns a literal value holding the decimal form of n.
func Int(n int64) Value { return String(strconv.FormatInt(n, 10)) }

// Uint returns a literal value holding the decimal form of n.
func Uint(n uint64) Value { return String(strconv.FormatUint(n, 10)) }

// Float returns a literal value holding the shortest decimal form of f.
func Float(f float64) Value { return String(strconv.FormatFloat(f, 'f', -1, 64)) }

// Strings converts each string into a literal value.
func Strings(ss ...string) []Value {
	vals := make([]Value, len(ss))
	for i, s := range ss {
		vals[i] = String(s)
	}
	return vals
}

// HasLiteral reports whether the value carries a literal to emit after the flag.
func (v Value) HasLiteral() bool { return v.kind == kindLiteral }

// Omitted reports whether the occurrence produces no tokens.
func (v Value) Omitted() bool { return v.kind == kindOmitted }

// Literal returns the literal text, or "" when the value has none.
func (v Value) Literal() string { return v.literal }

// Truthy reports whether the value counts as "on" for switch-like options:
// present, or a non-empty literal other than "false" and "0".
func (v Value) Truthy() bool {
	switch v.kind {
	case kindPresent:
		return true
	case kindLiteral:
		if b, err := strconv.ParseBool(v.literal); err == nil {
			return b
		}
		return v.literal != ""
	default:
		return false
	}
}

// String renders the value for diagnostics.
func (v Value) String() string {
	switch v.kind {
	case kindPresent:
		return "<present>"
	case kindOmitted:
		return "<omitted>"
	default:
		return fmt.Sprintf("%q", v.literal)
	}
}
