package clipboard

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xdg/hermit/internal/audit"
	"github.com/xdg/hermit/internal/service"
)

// ServiceName prefixes error messages so callers can tell proxy-origin
// failures from real tool output.
const ServiceName = "clipboard-proxy"

// ScreenshotsDirEnv overrides the directory scanned for screenshots.
const ScreenshotsDirEnv = "CLIPBOARD_SCREENSHOTS_DIR"

// Request is the wire format read from the socket.
type Request struct {
	Command string `json:"command"`
}

// Response is the wire format written back. Image bytes travel base64
// encoded so the protocol stays line oriented.
type Response struct {
	ExitCode  int    `json:"exit_code"`
	StdoutB64 string `json:"stdout_b64"`
	Stderr    string `json:"stderr"`
}

// Handler answers read_image requests from a screenshot directory.
type Handler struct {
	dir      string
	maxAge   time.Duration
	patterns []string
	log      *audit.Logger
}

// NewHandler creates a Handler reading from dir. Patterns filter file
// base names; pass nil to accept every file.
func NewHandler(dir string, log *audit.Logger, patterns []string) *Handler {
	if len(patterns) == 0 {
		patterns = []string{"*"}
	}
	return &Handler{
		dir:      dir,
		maxAge:   DefaultMaxAge,
		patterns: patterns,
		log:      log,
	}
}

// ScreenshotsDir returns the directory to scan: the environment
// override when set, otherwise Pictures/Screenshots under the user's
// home.
func ScreenshotsDir() string {
	if d := os.Getenv(ScreenshotsDirEnv); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "/root"
	}
	return filepath.Join(home, "Pictures", "Screenshots")
}

// HandleLine parses one raw request line and returns the serialized
// response.
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

// Handle serves exactly one command, read_image. Anything else is
// denied with the same shape the gh proxy uses.
func (h *Handler) Handle(req Request) Response {
	if req.Command != "read_image" {
		h.log.Log(audit.EventDenied, "unknown command: %s", req.Command)
		return Response{
			ExitCode: 1,
			Stderr:   fmt.Sprintf("%s: unknown command: %s", ServiceName, req.Command),
		}
	}

	h.log.Log(audit.EventRequest, "read_image")

	data, err := FindNewest(h.dir, h.maxAge, h.patterns)
	if err != nil {
		h.log.Log(audit.EventError, "read_image: %v", err)
		return Response{
			ExitCode: 1,
			Stderr:   fmt.Sprintf("%s: %v", ServiceName, err),
		}
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	h.log.Log(audit.EventOK, "read_image (%d bytes, %d b64)", len(data), len(encoded))
	return Response{
		ExitCode:  0,
		StdoutB64: encoded,
	}
}

func marshalResponse(resp Response) []byte {
	b, err := json.Marshal(resp)
	if err != nil {
		return []byte(`{"exit_code":1,"stdout_b64":"","stderr":"` + ServiceName + `: internal error"}`)
	}
	return b
}

// Run starts the clipboard proxy on socketPath, serving screenshots
// from dir filtered by patterns, and blocks. The watchdog ends the
// process when the supervisor exits; Run only returns on a startup
// failure.
func Run(socketPath, dir string, patterns []string) error {
	logFile, err := audit.OpenLogFile(audit.LogPathForSocket(socketPath))
	if err != nil {
		return fmt.Errorf("%s: %w", ServiceName, err)
	}
	log := audit.NewLogger(logFile)

	handler := NewHandler(dir, log, patterns)
	srv := service.NewServer(socketPath, handler.HandleLine, log)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("%s: %w", ServiceName, err)
	}

	log.Log(audit.EventListen, "listening on %s", socketPath)

	watchdog := service.NewWatchdog(func(orig, cur int) {
		log.Log(audit.EventShutdown, "parent %d exited (ppid now %d), shutting down", orig, cur)
		os.Remove(socketPath)
		os.Exit(0)
	})
	watchdog.Run(nil)
	return nil
}
