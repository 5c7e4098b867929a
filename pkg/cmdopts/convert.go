// SPDX-License-Identifier: MPL-2.0

package cmdopts

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidValue is the sentinel error wrapped by InvalidValueError.
var ErrInvalidValue = errors.New("invalid option value")

// InvalidValueError is returned by FromMap for values with no flag rendering.
type InvalidValueError struct {
	Key   string
	Value any
}

// Error implements the error interface.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for option %q: unsupported type %T", e.Key, e.Value)
}

// Unwrap returns ErrInvalidValue for errors.Is() compatibility.
func (e *InvalidValueError) Unwrap() error { return ErrInvalidValue }

// FromMap builds an option set from a free-form map, such as one decoded from a
// config file. Keys are processed in sorted order. The key "_" holds positional
// arguments as a string or a list of strings.
//
// Value mapping: nil -> Present(), bool -> Bool, string and numbers -> literal,
// lists -> one occurrence per element.
func FromMap(m map[string]any) (*OptionSet, error) {
	s := New()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var errs []error
	for _, k := range keys {
		raw := m[k]
		if k == ArgsKey {
			args, err := positionalArgs(raw)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			s.Arg(args...)
			continue
		}
		if err := ValidateName(k); err != nil {
			errs = append(errs, err)
			continue
		}
		vals, err := valuesOf(k, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(vals) == 0 {
			// An empty list emits nothing, same as an absent option.
			continue
		}
		s.Set(k, vals...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return s, nil
}

// ParseAssignments parses command line tokens of the form "key" or "key=value".
// A bare key becomes a switch; repeating a key accumulates its values.
func ParseAssignments(tokens []string) (*OptionSet, error) {
	s := New()
	var errs []error
	for _, tok := range tokens {
		name, value, hasValue := strings.Cut(tok, "=")
		name = strings.TrimSpace(name)
		if err := ValidateName(name); err != nil {
			errs = append(errs, err)
			continue
		}
		v := Present()
		if hasValue {
			v = String(value)
		}
		s.Add(name, v)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return s, nil
}

func valuesOf(key string, raw any) ([]Value, error) {
	switch t := raw.(type) {
	case []any:
		vals := make([]Value, 0, len(t))
		for _, item := range t {
			if _, nested := item.([]any); nested {
				return nil, &InvalidValueError{Key: key, Value: item}
			}
			v, err := scalarOf(key, item)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return vals, nil
	case []string:
		return Strings(t...), nil
	default:
		v, err := scalarOf(key, raw)
		if err != nil {
			return nil, err
		}
		return []Value{v}, nil
	}
}

func scalarOf(key string, raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Present(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Uint(uint64(t)), nil
	case uint8:
		return Uint(uint64(t)), nil
	case uint16:
		return Uint(uint64(t)), nil
	case uint32:
		return Uint(uint64(t)), nil
	case uint64:
		return Uint(t), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case fmt.Stringer:
		return String(t.String()), nil
	default:
		return Value{}, &InvalidValueError{Key: key, Value: raw}
	}
}

func positionalArgs(raw any) ([]string, error) {
	switch t := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{t}, nil
	case []string:
		return slices.Clone(t), nil
	case []any:
		args := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, &InvalidValueError{Key: ArgsKey, Value: item}
			}
			args = append(args, s)
		}
		return args, nil
	default:
		return nil, &InvalidValueError{Key: ArgsKey, Value: raw}
	}
}
