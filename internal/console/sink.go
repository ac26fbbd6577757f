package console

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
)

// Sink names accepted by OpenSink. Any other name is a file path.
const (
	SinkAuto   = "auto"
	SinkStdout = "stdout"
	SinkStderr = "stderr"
	SinkNone   = "none"
)

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// OpenSink resolves a sink name to a writer. "auto" picks stdout unless
// stdout is a terminal the UI is drawing on, in which case it appends to
// fallbackPath. Closing the result never closes stdout or stderr.
func OpenSink(name, fallbackPath string, terminalBusy bool) (io.WriteCloser, error) {
	switch name {
	case SinkStdout:
		return nopCloser{os.Stdout}, nil
	case SinkStderr:
		return nopCloser{os.Stderr}, nil
	case SinkNone:
		return nopCloser{io.Discard}, nil
	case SinkAuto, "":
		if !terminalBusy || !isTerminal(os.Stdout) {
			return nopCloser{os.Stdout}, nil
		}
		return openFile(fallbackPath)
	default:
		return openFile(name)
	}
}

func openFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create sink directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open sink %s: %w", path, err)
	}
	return f, nil
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
