package ghproxy

import (
	"fmt"
	"slices"
	"strings"
)

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help"
}

// MaybeHelp reports whether args is a help request, and if so returns
// the generated help text. Recognized forms:
//
//	gh
//	gh -h | --help | help
//	gh help <group> [<subcommand>]
//	gh <group> -h
//	gh <group> <subcommand> ... with -h/--help anywhere after
//
// All text is derived from the registries so it can never drift from
// the allowlist.
func MaybeHelp(args []string) (string, bool) {
	if len(args) == 0 {
		return helpTopLevel(), true
	}

	if len(args) == 1 && (isHelpFlag(args[0]) || args[0] == "help") {
		return helpTopLevel(), true
	}

	if args[0] == "help" {
		if len(args) == 2 {
			if h, ok := helpGroup(args[1]); ok {
				return h, true
			}
			return helpTopLevel(), true
		}
		if len(args) >= 3 {
			if h, ok := helpCommand(args[1], args[2]); ok {
				return h, true
			}
			return helpGroup(args[1])
		}
	}

	if len(args) == 2 && isHelpFlag(args[1]) {
		if h, ok := helpGroup(args[0]); ok {
			return h, true
		}
		return helpTopLevel(), true
	}

	if len(args) >= 2 {
		for _, a := range args[2:] {
			if isHelpFlag(a) {
				return helpCommand(args[0], args[1])
			}
		}
	}

	return "", false
}

func helpTopLevel() string {
	var groups []string
	for _, cmd := range Commands {
		if !slices.Contains(groups, cmd.Group) {
			groups = append(groups, cmd.Group)
		}
	}
	for _, ext := range ExtCommands {
		if !slices.Contains(groups, ext.Group) {
			groups = append(groups, ext.Group)
		}
	}

	var b strings.Builder
	b.WriteString("gh - GitHub CLI (proxy, restricted subset)\n\nAvailable command groups:\n")
	for _, group := range groups {
		var subs []string
		for _, cmd := range Commands {
			if cmd.Group == group {
				subs = append(subs, cmd.Subcommand)
			}
		}
		for _, ext := range ExtCommands {
			if ext.Group == group {
				subs = append(subs, ext.Subcommand)
			}
		}
		fmt.Fprintf(&b, "  %-12s %s\n", group, strings.Join(subs, ", "))
	}
	b.WriteString("\nRun 'gh <command> -h' for more information about a command.\n")
	b.WriteString("Note: This is a sandboxed proxy. Only the commands listed above are available.\n")
	return b.String()
}

func helpGroup(group string) (string, bool) {
	var cmds []*CommandDef
	for i := range Commands {
		if Commands[i].Group == group {
			cmds = append(cmds, &Commands[i])
		}
	}
	var exts []*ExtCommandDef
	for i := range ExtCommands {
		if ExtCommands[i].Group == group {
			exts = append(exts, &ExtCommands[i])
		}
	}
	if len(cmds) == 0 && len(exts) == 0 {
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "gh %s - available subcommands:\n\n", group)
	for _, cmd := range cmds {
		rw := ""
		if cmd.IsWrite {
			rw = " (write)"
		}
		fmt.Fprintf(&b, "  %-12s%s\n", cmd.Subcommand, rw)
	}
	for _, ext := range exts {
		fmt.Fprintf(&b, "  %-12s %s\n", ext.Subcommand, ext.Description)
	}
	fmt.Fprintf(&b, "\nRun 'gh %s <subcommand> -h' for more information.\n", group)
	return b.String(), true
}

func helpCommand(group, subcommand string) (string, bool) {
	if ext := FindExtCommand(group, subcommand); ext != nil {
		return ext.HelpText, true
	}

	cmd := FindCommand(group, subcommand)
	if cmd == nil {
		return "", false
	}

	rw := " (read)"
	if cmd.IsWrite {
		rw = " (write — workspace repo only, no -R/--repo)"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "gh %s %s%s\n\nAllowed flags:\n", group, subcommand, rw)
	for _, line := range formatFlags(cmd.AllowedFlags) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String(), true
}

// formatFlags renders an allowlist for display, pairing a short flag
// with the long flag adjacent to it in the table, e.g. "-q, --jq".
func formatFlags(flags []string) []string {
	var result []string
	used := make(map[int]bool)

	for i, flag := range flags {
		if used[i] {
			continue
		}
		switch {
		case strings.HasPrefix(flag, "--"):
			short := ""
			if i > 0 && !used[i-1] && strings.HasPrefix(flags[i-1], "-") && !strings.HasPrefix(flags[i-1], "--") {
				used[i-1] = true
				short = flags[i-1]
			}
			used[i] = true
			if short != "" {
				result = append(result, fmt.Sprintf("  %s, %s", short, flag))
			} else {
				result = append(result, fmt.Sprintf("      %s", flag))
			}
		case strings.HasPrefix(flag, "-"):
			// A short flag ahead of a long one is emitted with it.
			if i+1 < len(flags) && strings.HasPrefix(flags[i+1], "--") {
				continue
			}
			used[i] = true
			result = append(result, fmt.Sprintf("  %s", flag))
		}
	}
	return result
}
