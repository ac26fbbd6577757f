// Package console is the application-facing side of the debug console: a
// print function that keeps writing to the normal output while also feeding
// the log store on the UI loop.
package console

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/jmylchreest/devconsole/internal/store"
)

// Separator joins the items passed to Print.
const Separator = " "

// Console captures messages into a store.
//
// Store appends and the listeners they trigger run wherever the dispatcher
// puts them. With a dispatcher that hops onto a single loop, Print may be
// called from any goroutine. The default Immediate dispatcher runs them on
// the caller's goroutine, so a Console without one must only be used from
// the goroutine that owns the store's listeners.
type Console struct {
	store    *store.Store
	dispatch Dispatcher

	sinkMu sync.Mutex
	sink   io.Writer
}

// New creates a Console appending to s. A nil sink means os.Stdout; a nil
// dispatcher runs appends inline on the caller's goroutine.
func New(s *store.Store, sink io.Writer, d Dispatcher) *Console {
	if sink == nil {
		sink = os.Stdout
	}
	if d == nil {
		d = Immediate{}
	}
	return &Console{store: s, sink: sink, dispatch: d}
}

var (
	defaultOnce    sync.Once
	defaultConsole *Console
)

// Default returns a Console over store.Default writing to os.Stdout.
func Default() *Console {
	defaultOnce.Do(func() {
		defaultConsole = New(store.Default(), os.Stdout, nil)
	})
	return defaultConsole
}

// Print formats each item with %v, joins them with a space, writes the
// result plus a newline to the sink and appends it to the store.
func (c *Console) Print(items ...any) {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprint(item)
	}
	c.emit(strings.Join(parts, Separator))
}

// Printf formats according to a format specifier and prints the result.
func (c *Console) Printf(format string, args ...any) {
	c.emit(fmt.Sprintf(format, args...))
}

// SetSink replaces the output sink.
func (c *Console) SetSink(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	c.sinkMu.Lock()
	defer c.sinkMu.Unlock()
	c.sink = w
}

// SetDispatcher replaces the dispatcher used to reach the UI loop.
func (c *Console) SetDispatcher(d Dispatcher) {
	if d == nil {
		d = Immediate{}
	}
	c.sinkMu.Lock()
	defer c.sinkMu.Unlock()
	c.dispatch = d
}

// Store returns the backing store.
func (c *Console) Store() *store.Store {
	return c.store
}

func (c *Console) emit(message string) {
	c.sinkMu.Lock()
	_, _ = io.WriteString(c.sink, message+"\n")
	c.sinkMu.Unlock()

	c.capture(message)
}

// capture appends message on the UI loop without touching the sink.
func (c *Console) capture(message string) {
	c.sinkMu.Lock()
	d := c.dispatch
	c.sinkMu.Unlock()

	d.Dispatch(func() {
		c.store.Append(message)
	})
}

// Writer returns an io.Writer that prints each complete line written to it.
// Call Flush on the returned writer to print a trailing partial line.
func (c *Console) Writer() *LineWriter {
	return &LineWriter{console: c}
}

// LineWriter splits written bytes into lines and prints each one.
type LineWriter struct {
	console *Console

	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer. Lines have no length limit.
func (w *LineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := len(p)
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			w.buf.Write(p)
			break
		}
		w.buf.Write(p[:i])
		w.console.emit(strings.TrimSuffix(w.buf.String(), "\r"))
		w.buf.Reset()
		p = p[i+1:]
	}
	return n, nil
}

// Flush prints any buffered partial line.
func (w *LineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() == 0 {
		return
	}
	w.console.emit(w.buf.String())
	w.buf.Reset()
}
