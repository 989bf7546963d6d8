package ghproxy

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xdg/hermit/internal/audit"
	"github.com/xdg/hermit/internal/executor"
	"github.com/xdg/hermit/internal/project"
)

// Request is the wire format read from the socket: the argument vector
// the caller wants passed to gh.
type Request struct {
	Args []string `json:"args"`
}

// Response is the wire format written back. The exit code is the real
// one from gh, proxied unchanged, so callers see the tool's own
// failure modes.
type Response struct {
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

// Handler turns one request into one response, consulting the policy
// registry and running gh for approved commands.
type Handler struct {
	runner executor.Runner
	log    *audit.Logger

	// detectSlug resolves the workspace owner/repo once and caches the
	// outcome for the life of the process.
	detectSlug func() (string, error)
}

// NewHandler creates a Handler backed by runner, logging decisions to
// log (which may be nil).
func NewHandler(runner executor.Runner, log *audit.Logger) *Handler {
	return &Handler{
		runner: runner,
		log:    log,
		detectSlug: sync.OnceValues(func() (string, error) {
			return project.Slug("")
		}),
	}
}

// HandleLine parses one raw request line and returns the serialized
// response. A line that does not parse is answered, not dropped, so the
// caller always gets a response for its single request.
func (h *Handler) HandleLine(line []byte) []byte {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		h.log.Log(audit.EventInvalid, "(%v)", err)
		return marshalResponse(Response{
			ExitCode: 1,
			Stderr:   fmt.Sprintf("%s: invalid request: %v", ServiceName, err),
		})
	}
	return marshalResponse(h.Handle(req))
}

// Handle runs the decision pipeline: help, then extension commands,
// then policy validation, then execution. The first applicable stage
// wins.
func (h *Handler) Handle(req Request) Response {
	cmdStr := strings.Join(req.Args, " ")

	if helpText, ok := MaybeHelp(req.Args); ok {
		h.log.Log(audit.EventHelp, "gh %s", cmdStr)
		return Response{ExitCode: 0, Stdout: helpText}
	}

	if resp, ok := h.maybeExtCommand(req.Args); ok {
		tag := audit.EventExt
		if resp.ExitCode != 0 {
			tag = audit.EventExtErr
		}
		h.log.Log(tag, "gh %s -> %d", cmdStr, resp.ExitCode)
		return resp
	}

	if err := Validate(req.Args); err != nil {
		h.log.Log(audit.EventDenied, "gh %s (%s)", cmdStr, err)
		return Response{
			ExitCode: 1,
			Stderr:   fmt.Sprintf("%s: %s", ServiceName, err),
		}
	}

	h.log.Log(audit.EventAllowed, "gh %s", cmdStr)

	res, err := h.runner.Run(context.Background(), "gh", req.Args...)
	if err != nil {
		h.log.Log(audit.EventError, "gh %s (%v)", cmdStr, err)
		return Response{
			ExitCode: 1,
			Stderr:   fmt.Sprintf("%s: %v", ServiceName, err),
		}
	}

	h.log.Log(audit.EventExit, "gh %s -> %d", cmdStr, res.ExitCode)
	return Response{
		ExitCode: res.ExitCode,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
	}
}

// marshalResponse serializes a Response. The type contains nothing
// json.Marshal can reject, so the error is impossible in practice; on
// the off chance, a fixed fallback keeps the protocol's one-response
// promise.
func marshalResponse(resp Response) []byte {
	b, err := json.Marshal(resp)
	if err != nil {
		return []byte(`{"exit_code":1,"stdout":"","stderr":"` + ServiceName + `: internal error"}`)
	}
	return b
}
