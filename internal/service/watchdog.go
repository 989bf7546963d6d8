package service

import (
	"os"
	"time"
)

// DefaultWatchdogInterval is how often the watchdog re-reads the
// parent process id.
const DefaultWatchdogInterval = 2 * time.Second

// Watchdog detects the supervising process exiting. The orchestrator
// replaces itself with the container runtime via exec, so this
// process's parent is that runtime; when the runtime exits the kernel
// reparents us and the observable ppid changes. Polling the ppid is
// the one portable, signal-free way to notice that.
type Watchdog struct {
	// Interval between ppid checks. Defaults to DefaultWatchdogInterval.
	Interval time.Duration

	// Getppid reads the current parent pid. Replaceable for tests;
	// defaults to os.Getppid.
	Getppid func() int

	// OnParentExit is invoked once, with the original and current
	// parent pid, when a change is observed.
	OnParentExit func(origPPID, curPPID int)
}

// NewWatchdog creates a watchdog with default interval and real ppid
// lookup.
func NewWatchdog(onParentExit func(origPPID, curPPID int)) *Watchdog {
	return &Watchdog{
		Interval:     DefaultWatchdogInterval,
		Getppid:      os.Getppid,
		OnParentExit: onParentExit,
	}
}

// Run records the current parent pid, then polls until it changes or
// stop is closed. On a change it calls OnParentExit and returns.
// Run blocks; callers start it on its own goroutine.
func (w *Watchdog) Run(stop <-chan struct{}) {
	orig := w.Getppid()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if cur := w.Getppid(); cur != orig {
				w.OnParentExit(orig, cur)
				return
			}
		}
	}
}
