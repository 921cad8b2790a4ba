package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/spigell/ats-checker/internal/analysis"
)

const maxPathWidth = 48

var tableHeader = []string{"PATH", "SCORE", "STRENGTHS", "WEAKNESSES", "SUGGESTIONS", "ERROR"}

// Table writes one row per result in the given order.
func Table(w io.Writer, results []*analysis.Result) error {
	rows := make([][]string, 0, len(results)+1)
	rows = append(rows, tableHeader)
	for _, res := range results {
		if res == nil {
			continue
		}
		rows = append(rows, []string{
			truncate(res.Path, maxPathWidth),
			fmt.Sprintf("%d", res.Score),
			fmt.Sprintf("%d", len(res.Strengths)),
			fmt.Sprintf("%d", len(res.Weaknesses)),
			fmt.Sprintf("%d", len(res.Suggestions)),
			res.LoadError,
		})
	}

	widths := make([]int, len(tableHeader))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

func truncate(value string, width int) string {
	if runewidth.StringWidth(value) <= width {
		return value
	}
	return runewidth.Truncate(value, width, "...")
}
