// Package power turns the host off when a sleep timer configured to do so finishes.
package power

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// windowsShutdownTimeout is the delay in seconds for the Windows shutdown command.
const windowsShutdownTimeout = "0"

// ErrUnsupportedOS indicates the current OS is not supported for shutdown.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// Controller performs host power actions.
type Controller interface {
	Shutdown(ctx context.Context) error
}

// Host is the Controller for the machine the daemon runs on.
type Host struct {
	// Debug logs the action instead of performing it.
	Debug bool
}

// Shutdown powers the host off with the built-in tools:
//   - Linux/macOS: `shutdown -h now`
//   - Windows:     `shutdown.exe -s -f -t 0`
//
// The command is started asynchronously; the OS takes over the rest.
func (h Host) Shutdown(ctx context.Context) error {
	name, args, err := shutdownCommand(runtime.GOOS)
	if err != nil {
		return err
	}

	if h.Debug {
		logger.InfoKV(ctx, "Debug mode, skipping shutdown", "command", name, "args", args)
		return nil
	}

	logger.Info(ctx, "Shutting the host down")

	return exec.CommandContext(ctx, name, args...).Start()
}

func shutdownCommand(goos string) (string, []string, error) {
	switch goos {
	case "linux", "darwin", "freebsd", "openbsd", "netbsd":
		return "shutdown", []string{"-h", "now"}, nil
	case "windows":
		return "shutdown.exe", []string{"-s", "-f", "-t", windowsShutdownTimeout}, nil
	default:
		return "", nil, fmt.Errorf("%s: %w", goos, ErrUnsupportedOS)
	}
}
