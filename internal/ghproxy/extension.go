package ghproxy

import (
	"context"
	"errors"
	"fmt"

	"github.com/xdg/hermit/internal/executor"
)

// maybeExtCommand dispatches args to an extension handler if the first
// two elements name one. Extension dispatch runs before validation so
// pseudo-commands never need registry entries.
func (h *Handler) maybeExtCommand(args []string) (Response, bool) {
	if len(args) < 2 {
		return Response{}, false
	}
	ext := FindExtCommand(args[0], args[1])
	if ext == nil {
		return Response{}, false
	}

	switch ext.Handler {
	case handlerRunLogs:
		return h.handleRunLogs(args[2:]), true
	}
	return Response{
		ExitCode: 1,
		Stderr:   fmt.Sprintf("%s: unhandled extension command: gh %s %s", ServiceName, ext.Group, ext.Subcommand),
	}, true
}

// handleRunLogs fetches workflow run logs for the workspace repository.
// The caller supplies only the run id; the repository slug comes from
// the host's git remote, so a sandboxed caller cannot point this at an
// arbitrary repo.
func (h *Handler) handleRunLogs(args []string) Response {
	if len(args) == 0 {
		return Response{
			ExitCode: 1,
			Stderr:   ServiceName + ": usage: gh ext run-logs <run-id>",
		}
	}

	runID := args[0]

	// Digits only, so the id cannot smuggle path segments into the
	// API request.
	for i := 0; i < len(runID); i++ {
		if runID[i] < '0' || runID[i] > '9' {
			return Response{
				ExitCode: 1,
				Stderr:   fmt.Sprintf("%s: invalid run id: %s", ServiceName, runID),
			}
		}
	}

	repo, err := h.detectSlug()
	if err != nil {
		return Response{
			ExitCode: 1,
			Stderr:   ServiceName + ": could not detect repository from git remote",
		}
	}

	apiPath := fmt.Sprintf("/repos/%s/actions/runs/%s/logs", repo, runID)

	res, err := h.runner.Run(context.Background(), "gh", "api", apiPath)
	if err != nil {
		var spawnErr *executor.SpawnError
		if errors.As(err, &spawnErr) {
			err = spawnErr.Err
		}
		return Response{
			ExitCode: 1,
			Stderr:   fmt.Sprintf("%s: failed to execute gh api: %v", ServiceName, err),
		}
	}

	return Response{
		ExitCode: res.ExitCode,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
	}
}
