// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	BinaryNotFoundId Id = iota + 1
	PermissionDeniedId
	UnknownSubCommandId
	InvalidOptionsId
	ConfigLoadFailedId
	DaemonUnreachableId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is the Markdown body of an issue.
	MarkdownMsg string

	// HttpLink is an external reference rendered in the "See also" section.
	HttpLink string

	// Issue is a catalog entry with guidance for a recurring failure.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the issue for the terminal using the given glamour style
// ("dark", "light", "notty", or a path to a JSON style).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("\n- <")
			md.WriteString(string(link))
			md.WriteString(">")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	binaryNotFoundIssue = &Issue{
		id: BinaryNotFoundId,
		mdMsg: `
# Container CLI not found!

dockercmd could not start the container CLI because the binary is not on your PATH.

## Things you can try:
- Install Docker or Podman
- Point dockercmd at the binary explicitly:
~~~
$ dockercmd --binary /usr/local/bin/docker ps
$ DOCKERCMD_BINARY=podman dockercmd ps
~~~

- Or set it once in ~/.config/dockercmd/config.cue:
~~~cue
binary: "podman"
~~~`,
		docLinks: []HttpLink{"https://docs.docker.com/get-docker/", "https://podman.io/docs/installation"},
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

The container CLI could not be started, or it was refused access to the daemon socket.

## Things you can try:
- Check that the binary is executable
- Add yourself to the docker group and log in again:
~~~
$ sudo usermod -aG docker $USER
~~~

- Use rootless Podman instead:
~~~
$ dockercmd --binary podman ps
~~~`,
		docLinks: []HttpLink{"https://docs.docker.com/engine/install/linux-postinstall/"},
	}

	unknownSubCommandIssue = &Issue{
		id: UnknownSubCommandId,
		mdMsg: `
# Unknown sub-command!

dockercmd only forwards the sub-commands it knows about.

## Things you can try:
- List the supported sub-commands:
~~~
$ dockercmd commands
~~~

- Check for typos in the sub-command name`,
	}

	invalidOptionsIssue = &Issue{
		id: InvalidOptionsId,
		mdMsg: `
# Invalid options!

One or more options could not be turned into command-line flags.

## Common causes:
- An empty option name, or a name starting with a dash
- ` + "`--image`" + ` given without a value

## Example:
~~~
$ dockercmd run -o rm -o e=A=1 --image alpine -- echo hi
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the dockercmd configuration file.

## Configuration file locations:
- Linux: ~/.config/dockercmd/config.cue
- macOS: ~/Library/Application Support/dockercmd/config.cue
- Windows: %APPDATA%\dockercmd\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ dockercmd config init
~~~

- Show the effective configuration:
~~~
$ dockercmd config show
~~~

## Example configuration:
~~~cue
binary: "docker"
capture: false
global_options: {
	host: "unix:///var/run/docker.sock"
}
~~~`,
	}

	daemonUnreachableIssue = &Issue{
		id: DaemonUnreachableId,
		mdMsg: `
# Cannot reach the container daemon!

The CLI started but could not talk to the daemon.

## Things you can try:
- Start the daemon:
~~~
$ sudo systemctl start docker
~~~

- Check the host the CLI is pointed at:
~~~
$ dockercmd -g host=unix:///var/run/docker.sock info
~~~`,
		docLinks: []HttpLink{"https://docs.docker.com/config/daemon/troubleshoot/"},
	}

	issues = map[Id]*Issue{
		binaryNotFoundIssue.Id():    binaryNotFoundIssue,
		permissionDeniedIssue.Id():  permissionDeniedIssue,
		unknownSubCommandIssue.Id(): unknownSubCommandIssue,
		invalidOptionsIssue.Id():    invalidOptionsIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		daemonUnreachableIssue.Id(): daemonUnreachableIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

// Get returns the issue for id, or nil if it is not in the catalog.
func Get(id Id) *Issue {
	return issues[id]
}
