package launch

import (
	"context"
	"log/slog"
	"os/exec"
	"time"
)

const timeout = 5 * time.Second

// Launcher runs OpenUrl/RunCommand actions as detached child processes.
// Failures are logged, never fatal.
type Launcher struct {
	logger *slog.Logger
}

// New returns a Launcher. logger is never nil after construction.
func New(logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{logger: logger}
}

// OpenURL launches the OS "open" facility for s, preferring xdg-open and
// falling back to a couple of other common launchers if it isn't on PATH.
func (l *Launcher) OpenURL(s string) {
	name, args := openCommand()
	if name == "" {
		l.logger.Warn("launch: no url opener found on PATH", "url", s)
		return
	}
	l.run(name, append(args, s))
}

// RunCommand executes s via the system shell. The config file that supplies
// s is the trust boundary: it is treated as trusted input.
func (l *Launcher) RunCommand(s string) {
	l.run("sh", []string{"-c", s})
}

func (l *Launcher) run(name string, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	go func() {
		defer cancel()
		cmd := exec.CommandContext(ctx, name, args...)
		if err := cmd.Start(); err != nil {
			l.logger.Warn("launch: failed to start process", "command", name, "error", err)
			return
		}
		if err := cmd.Wait(); err != nil {
			l.logger.Debug("launch: process exited with error", "command", name, "error", err)
		}
	}()
}

func openCommand() (string, []string) {
	for _, candidate := range [][]string{{"xdg-open"}, {"gio", "open"}, {"gnome-open"}, {"kde-open"}} {
		if _, err := exec.LookPath(candidate[0]); err == nil {
			return candidate[0], candidate[1:]
		}
	}
	return "", nil
}
