package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Follower tails a file, printing each line appended after it starts.
type Follower struct {
	path    string
	printer Printer
	logger  *slog.Logger

	offset  int64
	partial []byte
}

// NewFollower creates a Follower for path.
func NewFollower(path string, p Printer, logger *slog.Logger) *Follower {
	if logger == nil {
		logger = slog.Default()
	}
	return &Follower{path: path, printer: p, logger: logger}
}

// Run follows the file until ctx is done. Existing content is skipped; a
// file that shrinks is read again from the start.
func (f *Follower) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory so the file may be created or replaced later.
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", f.path, err)
	}

	if info, err := os.Stat(f.path); err == nil {
		f.offset = info.Size()
	}

	filename := filepath.Base(f.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
				if err := f.readNew(); err != nil {
					f.logger.Warn("failed to read followed file", "path", f.path, "error", err)
				}
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				f.offset = 0
				f.partial = nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.logger.Warn("follow watcher error", "error", err)
		}
	}
}

// readNew prints complete lines written since the last read.
func (f *Follower) readNew() error {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}
	if info.Size() < f.offset {
		f.logger.Debug("followed file truncated", "path", f.path)
		f.offset = 0
		f.partial = nil
	}

	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	f.offset += int64(len(data))

	data = append(f.partial, data...)
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		f.printer.Print(string(bytes.TrimRight(data[:i], "\r")))
		data = data[i+1:]
	}
	f.partial = append([]byte(nil), data...)

	return nil
}
