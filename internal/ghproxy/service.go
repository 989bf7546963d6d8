package ghproxy

import (
	"fmt"
	"os"

	"github.com/xdg/hermit/internal/audit"
	"github.com/xdg/hermit/internal/executor"
	"github.com/xdg/hermit/internal/service"
)

// Run starts the gh proxy on socketPath and blocks. When the watchdog
// sees the supervising process die it removes the socket and exits the
// process; Run only returns on a startup failure.
func Run(socketPath string) error {
	logFile, err := audit.OpenLogFile(audit.LogPathForSocket(socketPath))
	if err != nil {
		return fmt.Errorf("%s: %w", ServiceName, err)
	}
	log := audit.NewLogger(logFile)

	handler := NewHandler(executor.NewExecRunner(), log)
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
