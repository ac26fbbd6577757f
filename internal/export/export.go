// Package export provides output formatters for log entries.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/devconsole/internal/model"
)

// Formatter formats entries for output.
type Formatter interface {
	// Format writes formatted entries to the writer, oldest first.
	Format(w io.Writer, entries []model.Entry) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatPlain FormatType = "plain"
)

// Formats lists every supported format.
var Formats = []FormatType{FormatJSON, FormatYAML, FormatPlain}

// ParseFormat parses a format name.
func ParseFormat(s string) (FormatType, error) {
	switch f := FormatType(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatPlain:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected json, yaml or plain)", s)
	}
}

// String returns the upper-case display name of the format.
func (f FormatType) String() string {
	return strings.ToUpper(string(f))
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter()
	case FormatYAML:
		return NewYAMLFormatter()
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures plain text output.
type FormatterOptions struct {
	Template     string // Custom text/template applied per entry
	ShowIndex    bool   // Show 1-based index prefix
	ShowTime     bool   // Show the HH:MM:SS.mmm timestamp
	RelativeTime bool   // Append the humanized age
}

// DefaultFormatterOptions returns defaults for plain output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowTime: true,
	}
}

// String formats entries into a string.
func String(f Formatter, entries []model.Entry) (string, error) {
	var sb strings.Builder
	if err := f.Format(&sb, entries); err != nil {
		return "", err
	}
	return sb.String(), nil
}
