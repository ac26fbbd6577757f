// Package source feeds the console from outside the host program: piped
// stdin, a followed file, or a synthetic demo stream.
package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"
)

// Printer receives one message per line.
type Printer interface {
	Print(items ...any)
}

// LineWriter prints each complete line written to it. Flush prints a
// trailing partial line.
type LineWriter interface {
	io.Writer
	Flush()
}

// ReadLines copies r into w until EOF or ctx is done. Lines of any length
// are passed through whole. A partial last line is flushed at EOF but not
// on cancellation, and nothing is written once ctx is done, even while the
// read from r is still blocked.
func ReadLines(ctx context.Context, r io.Reader, w LineWriter) error {
	chunks := make(chan []byte)
	errc := make(chan error, 1)

	go func() {
		buf := make([]byte, 32*1024)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				select {
				case chunks <- bytes.Clone(buf[:n]):
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				errc <- err
				return
			}
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case chunk := <-chunks:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if _, err := w.Write(chunk); err != nil {
				return err
			}
		case err := <-errc:
			w.Flush()
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

var demoMessages = []struct {
	level slog.Level
	msg   string
	attrs []any
}{
	{slog.LevelInfo, "session started", []any{"user", "demo"}},
	{slog.LevelDebug, "cache lookup", []any{"key", "profile:42", "hit", true}},
	{slog.LevelInfo, "request finished", []any{"path", "/api/items", "status", 200}},
	{slog.LevelWarn, "slow query", []any{"table", "items", "ms", 812}},
	{slog.LevelError, "upload failed", []any{"attempt", 2, "error", "connection reset"}},
	{slog.LevelInfo, "sync complete", []any{"items", 128}},
}

// Demo logs a sample message through logger every interval until ctx is
// done.
func Demo(ctx context.Context, logger *slog.Logger, interval time.Duration) {
	if interval <= 0 {
		interval = 2 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m := demoMessages[rand.IntN(len(demoMessages))]
			logger.Log(ctx, m.level, m.msg, m.attrs...)
		}
	}
}
