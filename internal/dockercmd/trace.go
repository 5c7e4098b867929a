// SPDX-License-Identifier: MPL-2.0

package dockercmd

import (
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/invowk/dockercmd/pkg/cmdopts"
)

// trace logs the request and the resolved argument vector.
func (e *Executor) trace(req Request, opts *cmdopts.OptionSet, argv []string, mode Mode) {
	kv := []any{
		"subcommand", req.SubCommand,
		"options", opts.String(),
		"global", req.Global.String(),
		"argv", argv,
		"command", ShellQuote(argv),
		"capture", mode == ModeCapture,
	}
	if len(e.hostSpawn) > 0 {
		kv = append(kv, "host_spawn", ShellQuote(e.hostSpawn))
	}
	e.logger.Debug("executing command", kv...)
}

// ShellQuote renders argv as a single bash command line, quoting only the
// words that need it.
func ShellQuote(argv []string) string {
	words := make([]string, len(argv))
	for i, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			// Quote rejects strings bash cannot represent, such as NUL bytes.
			q = strconv.Quote(arg)
		}
		words[i] = q
	}
	return strings.Join(words, " ")
}
