package ghproxy

import (
	"fmt"
	"slices"
	"strings"
)

// DenialError is a policy rejection. The message is what the caller
// sees on stderr, minus the service prefix.
type DenialError struct {
	Reason string
}

func (e *DenialError) Error() string {
	return e.Reason
}

// Validate checks a full argument vector against the policy registry.
// It returns nil when the command is permitted and a *DenialError
// explaining the rejection otherwise. Anything not explicitly in the
// registry is denied.
func Validate(args []string) error {
	if len(args) < 2 {
		return &DenialError{Reason: fmt.Sprintf("command not allowed: gh %s", strings.Join(args, " "))}
	}

	group, subcommand := args[0], args[1]
	cmd := FindCommand(group, subcommand)
	if cmd == nil {
		return &DenialError{Reason: fmt.Sprintf("command not allowed: gh %s %s", group, subcommand)}
	}

	if flag, ok := disallowedFlag(args[2:], cmd.AllowedFlags); ok {
		return &DenialError{Reason: fmt.Sprintf("flag not allowed for gh %s %s: %s", group, subcommand, flag)}
	}

	return nil
}

// disallowedFlag scans the residual arguments for a flag outside the
// allowlist. Positional arguments pass freely, and a literal "--"
// turns everything after it positional.
func disallowedFlag(args, allowed []string) (string, bool) {
	for _, arg := range args {
		if arg == "--" {
			return "", false
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		flag := extractFlag(arg)
		if !slices.Contains(allowed, flag) {
			return flag, true
		}
	}
	return "", false
}

// extractFlag strips the value from a --flag=value form.
func extractFlag(arg string) string {
	if strings.HasPrefix(arg, "--") {
		if i := strings.IndexByte(arg, '='); i >= 0 {
			return arg[:i]
		}
	}
	return arg
}
