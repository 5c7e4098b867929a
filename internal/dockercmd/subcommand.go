// SPDX-License-Identifier: MPL-2.0

package dockercmd

import (
	"errors"
	"fmt"
	"slices"
)

const (
	SubCommandAttach  SubCommand = "attach"
	SubCommandBuild   SubCommand = "build"
	SubCommandCommit  SubCommand = "commit"
	SubCommandCp      SubCommand = "cp"
	SubCommandDiff    SubCommand = "diff"
	SubCommandExec    SubCommand = "exec"
	SubCommandEvents  SubCommand = "events"
	SubCommandExport  SubCommand = "export"
	SubCommandHistory SubCommand = "history"
	SubCommandImages  SubCommand = "images"
	SubCommandImport  SubCommand = "import"
	SubCommandInfo    SubCommand = "info"
	SubCommandInspect SubCommand = "inspect"
	SubCommandKill    SubCommand = "kill"
	SubCommandLoad    SubCommand = "load"
	SubCommandLogin   SubCommand = "login"
	SubCommandLogout  SubCommand = "logout"
	SubCommandLogs    SubCommand = "logs"
	SubCommandPort    SubCommand = "port"
	SubCommandPause   SubCommand = "pause"
	SubCommandPs      SubCommand = "ps"
	SubCommandPull    SubCommand = "pull"
	SubCommandPush    SubCommand = "push"
	SubCommandRestart SubCommand = "restart"
	SubCommandRm      SubCommand = "rm"
	SubCommandRmi     SubCommand = "rmi"
	SubCommandRun     SubCommand = "run"
	SubCommandSave    SubCommand = "save"
	SubCommandSearch  SubCommand = "search"
	SubCommandStart   SubCommand = "start"
	SubCommandStop    SubCommand = "stop"
	SubCommandTag     SubCommand = "tag"
	SubCommandTop     SubCommand = "top"
	SubCommandUnpause SubCommand = "unpause"
	SubCommandVersion SubCommand = "version"
	SubCommandWait    SubCommand = "wait"
)

// ErrUnknownSubCommand is the sentinel error wrapped by UnknownSubCommandError.
var ErrUnknownSubCommand = errors.New("unknown sub-command")

// subCommands is the static dispatch table. imageArg marks sub-commands whose
// first positional argument is an image reference, taken from the "image" option.
var subCommands = map[SubCommand]subCommandSpec{
	SubCommandAttach:  {summary: "Attach local standard streams to a running container"},
	SubCommandBuild:   {summary: "Build an image from a Dockerfile"},
	SubCommandCommit:  {summary: "Create a new image from a container's changes"},
	SubCommandCp:      {summary: "Copy files between a container and the local filesystem"},
	SubCommandDiff:    {summary: "Inspect changes to files on a container's filesystem"},
	SubCommandExec:    {summary: "Run a command in a running container"},
	SubCommandEvents:  {summary: "Get real time events from the server"},
	SubCommandExport:  {summary: "Export a container's filesystem as a tar archive"},
	SubCommandHistory: {summary: "Show the history of an image"},
	SubCommandImages:  {summary: "List images"},
	SubCommandImport:  {summary: "Import the contents from a tarball to create an image"},
	SubCommandInfo:    {summary: "Display system-wide information"},
	SubCommandInspect: {summary: "Return low-level information on objects"},
	SubCommandKill:    {summary: "Kill one or more running containers"},
	SubCommandLoad:    {summary: "Load an image from a tar archive or STDIN"},
	SubCommandLogin:   {summary: "Log in to a registry"},
	SubCommandLogout:  {summary: "Log out from a registry"},
	SubCommandLogs:    {summary: "Fetch the logs of a container"},
	SubCommandPort:    {summary: "List port mappings for a container"},
	SubCommandPause:   {summary: "Pause all processes within one or more containers"},
	SubCommandPs:      {summary: "List containers"},
	SubCommandPull:    {summary: "Download an image from a registry"},
	SubCommandPush:    {summary: "Upload an image to a registry"},
	SubCommandRestart: {summary: "Restart one or more containers"},
	SubCommandRm:      {summary: "Remove one or more containers"},
	SubCommandRmi:     {summary: "Remove one or more images", imageArg: true},
	SubCommandRun:     {summary: "Create and run a new container from an image", imageArg: true},
	SubCommandSave:    {summary: "Save one or more images to a tar archive"},
	SubCommandSearch:  {summary: "Search registries for images"},
	SubCommandStart:   {summary: "Start one or more stopped containers"},
	SubCommandStop:    {summary: "Stop one or more running containers"},
	SubCommandTag:     {summary: "Create a tag that refers to a source image"},
	SubCommandTop:     {summary: "Display the running processes of a container"},
	SubCommandUnpause: {summary: "Unpause all processes within one or more containers"},
	SubCommandVersion: {summary: "Show version information"},
	SubCommandWait:    {summary: "Block until containers stop, then print their exit codes"},
}

type (
	// SubCommand is a docker CLI verb supported by the executor.
	SubCommand string

	// UnknownSubCommandError is returned for names outside the supported set.
	UnknownSubCommandError struct {
		Value SubCommand
	}

	subCommandSpec struct {
		summary  string
		imageArg bool
	}
)

// Error implements the error interface.
func (e *UnknownSubCommandError) Error() string {
	return fmt.Sprintf("unknown sub-command %q", e.Value)
}

// Unwrap returns ErrUnknownSubCommand for errors.Is() compatibility.
func (e *UnknownSubCommandError) Unwrap() error { return ErrUnknownSubCommand }

// ParseSubCommand returns the SubCommand named s.
func ParseSubCommand(s string) (SubCommand, error) {
	sc := SubCommand(s)
	if err := sc.Validate(); err != nil {
		return "", err
	}
	return sc, nil
}

// SubCommands returns every supported sub-command in lexical order.
func SubCommands() []SubCommand {
	all := make([]SubCommand, 0, len(subCommands))
	for sc := range subCommands {
		all = append(all, sc)
	}
	slices.Sort(all)
	return all
}

// Validate returns an error if the sub-command is not supported.
func (s SubCommand) Validate() error {
	if _, ok := subCommands[s]; !ok {
		return &UnknownSubCommandError{Value: s}
	}
	return nil
}

// Summary returns a one-line description, or "" for unknown sub-commands.
func (s SubCommand) Summary() string { return subCommands[s].summary }

// TakesImageArg reports whether the "image" option is moved to the front of the
// positional arguments for this sub-command.
func (s SubCommand) TakesImageArg() bool { return subCommands[s].imageArg }

// String returns the sub-command name as passed on the command line.
func (s SubCommand) String() string { return string(s) }
