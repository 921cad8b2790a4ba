// Package report renders analysis results for people and machines.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/spigell/ats-checker/internal/analysis"
)

// Format selects a renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatPDF}

// ParseFormat accepts a format name case-insensitively. Empty means text.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatText, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// Extension is the file extension used when saving a report.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatPDF:
		return ".pdf"
	default:
		return ".txt"
	}
}

// Options tune rendering.
type Options struct {
	// NoColor disables ANSI styling in text output.
	NoColor bool
	// BarWidth is the width of the score bar in text output.
	BarWidth int
}

// Write renders res in the requested format.
func Write(w io.Writer, format Format, res *analysis.Result, opts Options) error {
	if res == nil {
		return fmt.Errorf("no result to render")
	}

	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, Text(res, opts))
		return err
	case FormatJSON:
		data, err := JSON(res)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case FormatPDF:
		return PDF(w, res)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
