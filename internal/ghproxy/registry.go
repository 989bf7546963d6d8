// Package ghproxy implements the gh CLI proxy service: a policy
// registry of permitted gh commands, an allowlist validator, help text
// derived from the registry, extension commands with host-side
// handlers, and the socket service that ties them together.
package ghproxy

// ServiceName prefixes every error message this service synthesizes,
// so callers can tell proxy-origin errors from gh's own.
const ServiceName = "gh-proxy"

// CommandDef declares one permitted (group, subcommand) pair and the
// exhaustive set of flags it may carry. Write commands are kept safe
// purely by omission: their allowlists never contain --repo/-R (which
// would redirect the write to another repository) or --body-file/-F
// (which would read arbitrary host files), so the ordinary flag scan
// rejects those with no special casing.
type CommandDef struct {
	Group        string
	Subcommand   string
	IsWrite      bool
	AllowedFlags []string
}

// extHandler selects the host-side logic for an extension command.
// Extension dispatch is a closed set matched explicitly, not an open
// callable registry, to keep the trust boundary auditable.
type extHandler int

const (
	handlerRunLogs extHandler = iota
)

// ExtCommandDef declares a pseudo-command that is handled entirely by
// host-side logic instead of being passed through to gh.
type ExtCommandDef struct {
	Group       string
	Subcommand  string
	Description string
	HelpText    string
	Handler     extHandler
}

// Commands is the static policy registry. Constructed once at process
// start; never mutated.
var Commands = []CommandDef{
	// Read commands.
	{
		Group:      "pr",
		Subcommand: "list",
		AllowedFlags: []string{
			"--state", "-s",
			"--limit", "-L",
			"--json",
			"--jq", "-q",
			"--label", "-l",
			"--author", "-A",
			"--assignee", "-a",
			"--base", "-B",
			"--head", "-H",
			"--search", "-S",
			"--draft", "-d",
			"--template", "-t",
			"--web", "-w",
			"--repo", "-R",
			"--app",
		},
	},
	{
		Group:      "pr",
		Subcommand: "view",
		AllowedFlags: []string{
			"--json",
			"--jq", "-q",
			"--comments", "-c",
			"--template", "-t",
			"--web", "-w",
			"--repo", "-R",
		},
	},
	{
		Group:      "pr",
		Subcommand: "diff",
		AllowedFlags: []string{
			"--color",
			"--patch",
			"--name-only",
			"--repo", "-R",
		},
	},
	{
		Group:      "pr",
		Subcommand: "checks",
		AllowedFlags: []string{
			"--json",
			"--jq", "-q",
			"--watch",
			"--interval", "-i",
			"--fail-fast",
			"--required",
			"--web", "-w",
			"--repo", "-R",
		},
	},
	{
		Group:      "issue",
		Subcommand: "list",
		AllowedFlags: []string{
			"--state", "-s",
			"--limit", "-L",
			"--json",
			"--jq", "-q",
			"--label", "-l",
			"--author", "-A",
			"--assignee", "-a",
			"--milestone", "-m",
			"--search", "-S",
			"--template", "-t",
			"--web", "-w",
			"--repo", "-R",
		},
	},
	{
		Group:      "issue",
		Subcommand: "view",
		AllowedFlags: []string{
			"--json",
			"--jq", "-q",
			"--comments", "-c",
			"--template", "-t",
			"--web", "-w",
			"--repo", "-R",
		},
	},
	{
		Group:      "repo",
		Subcommand: "view",
		AllowedFlags: []string{
			"--json",
			"--jq", "-q",
			"--template", "-t",
			"--web", "-w",
			"--repo", "-R",
		},
	},
	{
		Group:      "release",
		Subcommand: "list",
		AllowedFlags: []string{
			"--limit", "-L",
			"--json",
			"--jq", "-q",
			"--exclude-drafts",
			"--exclude-pre-releases",
			"--order", "-O",
			"--repo", "-R",
		},
	},
	{
		Group:      "release",
		Subcommand: "view",
		AllowedFlags: []string{
			"--json",
			"--jq", "-q",
			"--template", "-t",
			"--web", "-w",
			"--repo", "-R",
		},
	},
	{
		Group:      "run",
		Subcommand: "list",
		AllowedFlags: []string{
			"--limit", "-L",
			"--json",
			"--jq", "-q",
			"--branch", "-b",
			"--workflow", "-w",
			"--status", "-s",
			"--event", "-e",
			"--user", "-u",
			"--commit", "-c",
			"--repo", "-R",
		},
	},
	{
		Group:      "run",
		Subcommand: "view",
		AllowedFlags: []string{
			"--json",
			"--jq", "-q",
			"--log",
			"--log-failed",
			"--exit-status",
			"--verbose", "-v",
			"--web", "-w",
			"--job", "-j",
			"--attempt",
			"--repo", "-R",
		},
	},

	// Write commands. No --repo/-R, no --body-file/-F.
	{
		Group:      "pr",
		Subcommand: "create",
		IsWrite:    true,
		AllowedFlags: []string{
			"--title", "-t",
			"--body", "-b",
			"--base", "-B",
			"--head", "-H",
			"--draft", "-d",
			"--label", "-l",
			"--assignee", "-a",
			"--reviewer", "-r",
			"--milestone", "-m",
			"--fill", "-f",
			"--fill-first",
			"--fill-verbose",
			"--web", "-w",
			"--template", "-T",
			"--no-maintainer-edit",
		},
	},
	{
		Group:      "pr",
		Subcommand: "comment",
		IsWrite:    true,
		AllowedFlags: []string{
			"--body", "-b",
			"--edit-last",
			"--web", "-w",
		},
	},
	{
		Group:      "issue",
		Subcommand: "create",
		IsWrite:    true,
		AllowedFlags: []string{
			"--title", "-t",
			"--body", "-b",
			"--label", "-l",
			"--assignee", "-a",
			"--milestone", "-m",
			"--project", "-p",
			"--web", "-w",
			"--template", "-T",
		},
	},
	{
		Group:      "issue",
		Subcommand: "comment",
		IsWrite:    true,
		AllowedFlags: []string{
			"--body", "-b",
			"--edit-last",
			"--web", "-w",
		},
	},
}

// ExtCommands is the static table of extension pseudo-commands.
var ExtCommands = []ExtCommandDef{
	{
		Group:       "ext",
		Subcommand:  "run-logs",
		Description: "Download workflow run logs",
		HelpText: "gh ext run-logs <run-id> (workspace repo only)\n\n" +
			"Download workflow run logs for the current repository.\n" +
			"Translates to: gh api /repos/{owner}/{repo}/actions/runs/{run-id}/logs\n",
		Handler: handlerRunLogs,
	},
}

// FindCommand looks up a registry entry by group and subcommand.
func FindCommand(group, subcommand string) *CommandDef {
	for i := range Commands {
		if Commands[i].Group == group && Commands[i].Subcommand == subcommand {
			return &Commands[i]
		}
	}
	return nil
}

// FindExtCommand looks up an extension entry by group and subcommand.
func FindExtCommand(group, subcommand string) *ExtCommandDef {
	for i := range ExtCommands {
		if ExtCommands[i].Group == group && ExtCommands[i].Subcommand == subcommand {
			return &ExtCommands[i]
		}
	}
	return nil
}
