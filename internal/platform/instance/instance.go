// Package instance prevents two daemons from sharing one alarm database.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning is returned when another process runs the same executable.
var ErrAlreadyRunning = errors.New("another instance is already running")

// processLister returns the running processes; replaced in tests.
type processLister func() ([]ps.Process, error)

// EnsureSingle fails with ErrAlreadyRunning when a process other than the
// current one runs an executable named name.
func EnsureSingle(name string) error {
	return ensureSingle(name, os.Getpid(), ps.Processes)
}

// CurrentExecutable returns the base name of the running binary.
func CurrentExecutable() string {
	path, err := os.Executable()
	if err != nil {
		return filepath.Base(os.Args[0])
	}

	return filepath.Base(path)
}

func ensureSingle(name string, self int, list processLister) error {
	processes, err := list()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	for _, process := range processes {
		if process.Pid() == self {
			continue
		}

		if strings.EqualFold(process.Executable(), name) {
			return fmt.Errorf("%s (pid %d): %w", name, process.Pid(), ErrAlreadyRunning)
		}
	}

	return nil
}
