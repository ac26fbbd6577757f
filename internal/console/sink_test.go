package console

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSink_Named(t *testing.T) {
	for _, name := range []string{SinkStdout, SinkStderr, SinkNone} {
		w, err := OpenSink(name, "", true)
		require.NoError(t, err, name)
		assert.NoError(t, w.Close(), name)
	}
}

func TestOpenSink_None(t *testing.T) {
	w, err := OpenSink(SinkNone, "", false)
	require.NoError(t, err)
	n, err := io.WriteString(w, "dropped")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestOpenSink_FileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.log")

	for _, msg := range []string{"one", "two"} {
		w, err := OpenSink(path, "", false)
		require.NoError(t, err)
		fmt.Fprintln(w, msg)
		require.NoError(t, w.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}

func TestOpenSink_AutoWhenTerminalFree(t *testing.T) {
	// With the terminal not in use the fallback is never created.
	fallback := filepath.Join(t.TempDir(), "fallback.log")
	w, err := OpenSink(SinkAuto, fallback, false)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = os.Stat(fallback)
	assert.True(t, os.IsNotExist(err))
}
