package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"

	"github.com/spigell/ats-checker/internal/analysis"
)

const defaultBarWidth = 40

// Placeholders shown when a block has no entries.
const (
	NoStrengths   = "No specific strengths detected by this analysis."
	NoWeaknesses  = "No specific weaknesses detected by this analysis."
	NoSuggestions = "Based on the analysis, no specific improvement suggestions are available at this time."
)

// Block is one of the finding lists of a result.
type Block int

const (
	BlockStrengths Block = iota
	BlockWeaknesses
	BlockSuggestions
)

// Blocks in display order.
var Blocks = []Block{BlockStrengths, BlockWeaknesses, BlockSuggestions}

func (b Block) Title() string {
	switch b {
	case BlockStrengths:
		return "Strengths"
	case BlockWeaknesses:
		return "Weaknesses"
	default:
		return "How to Improve"
	}
}

func (b Block) placeholder() string {
	switch b {
	case BlockStrengths:
		return NoStrengths
	case BlockWeaknesses:
		return NoWeaknesses
	default:
		return NoSuggestions
	}
}

func (b Block) items(res *analysis.Result) []string {
	switch b {
	case BlockStrengths:
		return res.Strengths
	case BlockWeaknesses:
		return res.Weaknesses
	default:
		return res.Suggestions
	}
}

func (b Block) color() *color.Color {
	switch b {
	case BlockStrengths:
		return color.New(color.FgGreen, color.Bold)
	case BlockWeaknesses:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgYellow, color.Bold)
	}
}

// Header renders the score line and bar.
func Header(res *analysis.Result, opts Options) string {
	renderer := lipgloss.NewRenderer(io.Discard)
	profile := termenv.ColorProfile()
	if opts.NoColor {
		profile = termenv.Ascii
	}
	renderer.SetColorProfile(profile)

	width := opts.BarWidth
	if width <= 0 {
		width = defaultBarWidth
	}

	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
		progress.WithColorProfile(profile),
	)

	title := renderer.NewStyle().Bold(true).Render(fmt.Sprintf("ATS Score: %d/100", res.Score))
	percent := float64(res.Score) / float64(analysis.MaxScore)

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(bar.ViewAs(percent))
	b.WriteString("\n")
	if res.Path != "" {
		b.WriteString(renderer.NewStyle().Faint(true).Render(res.Path))
		b.WriteString("\n")
	}
	if res.LoadError != "" {
		b.WriteString(fmt.Sprintf("Load error: %s\n", res.LoadError))
	}
	return b.String()
}

// Section renders one block with "- " bullets, or its placeholder.
func Section(res *analysis.Result, block Block, opts Options) string {
	heading := block.color()
	if opts.NoColor {
		heading.DisableColor()
	}

	var b strings.Builder
	b.WriteString(heading.Sprint(block.Title()))
	b.WriteString("\n")

	items := block.items(res)
	if len(items) == 0 {
		b.WriteString(block.placeholder())
		b.WriteString("\n")
		return b.String()
	}
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}

// Text renders the full report: header, then every block.
func Text(res *analysis.Result, opts Options) string {
	var b strings.Builder
	b.WriteString(Header(res, opts))
	for _, block := range Blocks {
		b.WriteString("\n")
		b.WriteString(Section(res, block, opts))
	}
	return b.String()
}
