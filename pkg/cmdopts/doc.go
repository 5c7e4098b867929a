// SPDX-License-Identifier: MPL-2.0

// Package cmdopts translates structured command options into the flat argument
// tokens expected by docker-style command line tools.
//
// An OptionSet holds named options, each carrying one or more Values, plus an
// ordered list of positional arguments. Translate flattens it:
//
//	single-character name  -k        (no literal)   -k value   (literal, two tokens)
//	multi-character name   --key     (no literal)   --key=value (literal, one token)
//
// Options with several values are emitted once per value, in order, and positional
// arguments always come last. Option names and values are not checked against the
// grammar of any particular tool; a bad combination is reported by the tool itself.
//
// Boolean values follow one explicit rule: Bool(true) behaves like Present() and
// emits the bare flag, Bool(false) omits that occurrence entirely. This applies to
// single-character and multi-character names alike.
package cmdopts
