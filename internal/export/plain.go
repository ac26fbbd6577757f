package export

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/devconsole/internal/model"
)

// PlainFormatter formats entries one per line.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// templateData is passed to custom templates.
type templateData struct {
	Index        int
	Entry        model.Entry
	Time         string
	RelativeTime string
}

// NewPlainFormatter creates a new plain text formatter. An invalid custom
// template falls back to the default layout.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes entries as plain text.
func (f *PlainFormatter) Format(w io.Writer, entries []model.Entry) error {
	for i, e := range entries {
		if err := f.formatEntry(w, i+1, e); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatEntry(w io.Writer, index int, e model.Entry) error {
	if f.template != nil {
		data := templateData{
			Index:        index,
			Entry:        e,
			Time:         e.FormattedTime(),
			RelativeTime: e.RelativeTime(),
		}
		if err := f.template.Execute(w, data); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	var sb strings.Builder

	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("[%d] ", index))
	}
	if f.opts.ShowTime {
		sb.WriteString(e.FormattedTime())
		sb.WriteString("  ")
	}

	sb.WriteString(e.Message)

	if f.opts.RelativeTime {
		sb.WriteString(fmt.Sprintf(" (%s)", e.RelativeTime()))
	}
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": func(s string, maxLen int) string {
			r := []rune(s)
			if maxLen <= 0 || len(r) <= maxLen {
				return s
			}
			if maxLen <= 3 {
				return string(r[:maxLen])
			}
			return string(r[:maxLen-3]) + "..."
		},
		"oneline": func(s string) string {
			return strings.ReplaceAll(s, "\n", " ")
		},
		"bytes": func(s string) string {
			return humanize.Bytes(uint64(len(s)))
		},
	}
}
