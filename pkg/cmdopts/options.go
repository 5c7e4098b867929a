// SPDX-License-Identifier: MPL-2.0

package cmdopts

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ArgsKey is the reserved map key holding positional arguments in FromMap input.
const ArgsKey = "_"

var (
	// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
	ErrInvalidName = errors.New("invalid option name")

	// ErrInvalidOptionSet is the sentinel error wrapped by InvalidOptionSetError.
	ErrInvalidOptionSet = errors.New("invalid option set")
)

type (
	// Option is a named option with its ordered values.
	Option struct {
		Name   string
		Values []Value
	}

	// OptionSet is an ordered collection of options plus positional arguments.
	// Options keep the order in which they were first set. The zero value is an
	// empty set ready for use.
	OptionSet struct {
		options []Option
		// Args are the positional arguments appended after every flag.
		Args []string
	}

	// InvalidNameError is returned when an option name cannot be rendered as a flag.
	InvalidNameError struct {
		Name   string
		Reason string
	}

	// InvalidOptionSetError aggregates the name errors found by OptionSet.Validate.
	InvalidOptionSetError struct {
		FieldErrs []error
	}
)

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid option name %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// Error implements the error interface.
func (e *InvalidOptionSetError) Error() string {
	return fmt.Sprintf("invalid option set: %d field error(s): %v", len(e.FieldErrs), errors.Join(e.FieldErrs...))
}

// Unwrap returns ErrInvalidOptionSet and the individual field errors.
func (e *InvalidOptionSetError) Unwrap() []error {
	return append([]error{ErrInvalidOptionSet}, e.FieldErrs...)
}

// ValidateName checks that name can be rendered as -k or --key.
func ValidateName(name string) error {
	switch {
	case name == "":
		return &InvalidNameError{Name: name, Reason: "must be non-empty"}
	case name == ArgsKey:
		return &InvalidNameError{Name: name, Reason: "reserved for positional arguments"}
	case strings.HasPrefix(name, "-"):
		return &InvalidNameError{Name: name, Reason: "must not start with '-'"}
	case strings.ContainsAny(name, "= \t\r\n"):
		return &InvalidNameError{Name: name, Reason: "must not contain '=' or whitespace"}
	}
	return nil
}

// New returns an empty option set.
func New() *OptionSet {
	return &OptionSet{}
}

// Set replaces the values of name, keeping its original position, or appends a
// new option. With no values the option becomes a bare switch.
func (s *OptionSet) Set(name string, values ...Value) *OptionSet {
	if len(values) == 0 {
		values = []Value{Present()}
	}
	if i := s.index(name); i >= 0 {
		s.options[i].Values = slices.Clone(values)
		return s
	}
	s.options = append(s.options, Option{Name: name, Values: slices.Clone(values)})
	return s
}

// Add appends values to name, creating the option when needed.
func (s *OptionSet) Add(name string, values ...Value) *OptionSet {
	if i := s.index(name); i >= 0 {
		s.options[i].Values = append(s.options[i].Values, values...)
		return s
	}
	return s.Set(name, values...)
}

// Switch sets name as a bare flag.
func (s *OptionSet) Switch(name string) *OptionSet {
	return s.Set(name, Present())
}

// SetString sets name to a single literal value.
func (s *OptionSet) SetString(name, value string) *OptionSet {
	return s.Set(name, String(value))
}

// AddStrings appends literal values to name.
func (s *OptionSet) AddStrings(name string, values ...string) *OptionSet {
	return s.Add(name, Strings(values...)...)
}

// Arg appends positional arguments.
func (s *OptionSet) Arg(args ...string) *OptionSet {
	s.Args = append(s.Args, args...)
	return s
}

// PrependArg inserts arg in front of the positional arguments.
func (s *OptionSet) PrependArg(arg string) *OptionSet {
	s.Args = slices.Insert(s.Args, 0, arg)
	return s
}

// Get returns the values of name.
func (s *OptionSet) Get(name string) ([]Value, bool) {
	if s == nil {
		return nil, false
	}
	i := s.index(name)
	if i < 0 {
		return nil, false
	}
	return slices.Clone(s.options[i].Values), true
}

// Has reports whether name is set.
func (s *OptionSet) Has(name string) bool {
	return s != nil && s.index(name) >= 0
}

// Take removes name from the set and returns its values.
func (s *OptionSet) Take(name string) ([]Value, bool) {
	if s == nil {
		return nil, false
	}
	i := s.index(name)
	if i < 0 {
		return nil, false
	}
	vals := s.options[i].Values
	s.options = slices.Delete(s.options, i, i+1)
	return vals, true
}

// Len returns the number of options, not counting positional arguments.
func (s *OptionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.options)
}

// Names returns the option names in order.
func (s *OptionSet) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.options))
	for i, o := range s.options {
		names[i] = o.Name
	}
	return names
}

// Options returns a copy of the options in order.
func (s *OptionSet) Options() []Option {
	if s == nil {
		return nil
	}
	out := make([]Option, len(s.options))
	for i, o := range s.options {
		out[i] = Option{Name: o.Name, Values: slices.Clone(o.Values)}
	}
	return out
}

// Clone returns a deep copy. Cloning a nil set yields an empty set.
func (s *OptionSet) Clone() *OptionSet {
	if s == nil {
		return New()
	}
	return &OptionSet{options: s.Options(), Args: slices.Clone(s.Args)}
}

// Validate checks every option name. It does not look at values.
func (s *OptionSet) Validate() error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, o := range s.options {
		if err := ValidateName(o.Name); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &InvalidOptionSetError{FieldErrs: errs}
	}
	return nil
}

// String renders the set for diagnostics, e.g. {a:<present> tag:["x" "y"] _:[img]}.
func (s *OptionSet) String() string {
	if s == nil {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{")
	for i, o := range s.options {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(o.Name)
		sb.WriteString(":")
		if len(o.Values) == 1 {
			sb.WriteString(o.Values[0].String())
			continue
		}
		sb.WriteString("[")
		for j, v := range o.Values {
			if j > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(v.String())
		}
		sb.WriteString("]")
	}
	if len(s.Args) > 0 {
		if len(s.options) > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%s:%v", ArgsKey, s.Args)
	}
	sb.WriteString("}")
	return sb.String()
}

func (s *OptionSet) index(name string) int {
	return slices.IndexFunc(s.options, func(o Option) bool { return o.Name == name })
}
