// SPDX-License-Identifier: MPL-2.0

package cmdopts

import "unicode/utf8"

// Translate flattens an option set into argument tokens: flags in option order,
// each value of a multi-valued option in order, then the positional arguments.
// A nil set yields no tokens.
func Translate(s *OptionSet) []string {
	if s == nil {
		return nil
	}
	return AppendTokens(make([]string, 0, s.tokenHint()), s)
}

// AppendTokens appends the translation of s to dst and returns the extended slice.
func AppendTokens(dst []string, s *OptionSet) []string {
	if s == nil {
		return dst
	}
	for _, o := range s.options {
		for _, v := range o.Values {
			dst = appendFlag(dst, o.Name, v)
		}
	}
	return append(dst, s.Args...)
}

// appendFlag renders one occurrence of name.
//
// Generated tokens: -k [value] | --key[=value]
func appendFlag(dst []string, name string, v Value) []string {
	if v.Omitted() {
		return dst
	}
	if utf8.RuneCountInString(name) == 1 {
		dst = append(dst, "-"+name)
		if v.HasLiteral() {
			dst = append(dst, v.Literal())
		}
		return dst
	}
	if v.HasLiteral() {
		return append(dst, "--"+name+"="+v.Literal())
	}
	return append(dst, "--"+name)
}

func (s *OptionSet) tokenHint() int {
	n := len(s.Args)
	for _, o := range s.options {
		n += 2 * len(o.Values)
	}
	return n
}
