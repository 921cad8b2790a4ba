package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-checker/internal/analysis"
	"github.com/spigell/ats-checker/internal/document"
	"github.com/spigell/ats-checker/internal/logger"
	"github.com/spigell/ats-checker/internal/report"
)

const (
	PromptStrengths   = "Strengths"
	PromptWeaknesses  = "Weaknesses"
	PromptSuggestions = "How to Improve"
	PromptFullReport  = "Full report"
	PromptSaveReport  = "Save report"
	PromptExit        = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What would you like to see?",
	Items: []string{PromptStrengths, PromptWeaknesses, PromptSuggestions, PromptFullReport, PromptSaveReport, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Score a single resume (pdf, docx, txt, md, html)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolP("yes", "y", false, "print the full report without the interactive menu")
	analyzeCmd.Flags().StringP("format", "f", "", "report format: text, json or pdf")
	analyzeCmd.Flags().StringP("output", "o", "", "write the report to a file instead of stdout")
	analyzeCmd.Flags().Bool("no-color", false, "disable colored output")

	viper.BindPFlag("report.format", analyzeCmd.Flags().Lookup("format"))
	viper.BindPFlag("report.output", analyzeCmd.Flags().Lookup("output"))
}

func analyze(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting the analysis", zap.String("version", version), zap.Any("config", config))

	format, err := report.ParseFormat(config.Report.Format)
	if err != nil {
		logger.Fatal("parsing report format", zap.Error(err))
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		path, err = chooseDocument(".")
		if err != nil {
			logger.Fatal("choosing a document", zap.Error(err))
		}
	}

	analyzer, err := buildAnalyzer(config, logger)
	if err != nil {
		logger.Fatal("preparing the analyzer", zap.Error(err))
	}

	res := analyzer.AnalyzeFile(ctx, path)

	opts, yes, err := analyzeFlags(cmd)
	if err != nil {
		logger.Fatal("reading flags", zap.Error(err))
	}

	out := cmd.OutOrStdout()

	if yes || format != report.FormatText || config.Report.Output != "" {
		if err := writeReport(out, config.Report.Output, format, res, opts); err != nil {
			logger.Fatal("writing the report", zap.Error(err))
		}
		return
	}

	fmt.Fprint(out, report.Header(res, opts))

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, out, res, opts, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// analyzeFlags returns the render options and whether the menu is skipped.
func analyzeFlags(cmd *cobra.Command) (report.Options, bool, error) {
	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return report.Options{}, false, err
	}
	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return report.Options{}, false, err
	}
	return report.Options{NoColor: noColor}, yes, nil
}

func handleAction(action string, out io.Writer, res *analysis.Result, opts report.Options, logger *zap.Logger) error {
	switch action {
	case PromptStrengths:
		_, err := fmt.Fprint(out, report.Section(res, report.BlockStrengths, opts))
		return err
	case PromptWeaknesses:
		_, err := fmt.Fprint(out, report.Section(res, report.BlockWeaknesses, opts))
		return err
	case PromptSuggestions:
		_, err := fmt.Fprint(out, report.Section(res, report.BlockSuggestions, opts))
		return err
	case PromptFullReport:
		_, err := fmt.Fprint(out, report.Text(res, opts))
		return err
	case PromptSaveReport:
		return saveReport(res, logger)
	case PromptExit:
		logger.Debug("exiting", zap.String("reason", "exit selected"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func saveReport(res *analysis.Result, logger *zap.Logger) error {
	formatPrompt := promptui.Select{
		Label: "Report format",
		Items: report.Formats,
	}
	idx, _, err := formatPrompt.Run()
	if err != nil {
		return err
	}
	format := report.Formats[idx]

	pathPrompt := promptui.Prompt{
		Label:   "Save to",
		Default: defaultReportPath(res.Path, format),
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("path is required")
			}
			return nil
		},
	}
	target, err := pathPrompt.Run()
	if err != nil {
		return err
	}

	if err := writeReport(nil, target, format, res, report.Options{NoColor: true}); err != nil {
		return err
	}

	logger.Info("report saved", zap.String("filename", target), zap.String("format", string(format)))
	return nil
}

// writeReport writes to target when set and to out otherwise. Files never get
// ANSI styling.
func writeReport(out io.Writer, target string, format report.Format, res *analysis.Result, opts report.Options) error {
	target = strings.TrimSpace(target)
	if target == "" {
		if out == nil {
			return errors.New("no output configured")
		}
		return report.Write(out, format, res, opts)
	}

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}

	opts.NoColor = true
	if err := report.Write(f, format, res, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func defaultReportPath(documentPath string, format report.Format) string {
	base := filepath.Base(documentPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "resume"
	}
	return base + "-ats-report" + format.Extension()
}

// chooseDocument offers every supported document in dir.
func chooseDocument(dir string) (string, error) {
	files, err := supportedDocuments(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no supported documents (%s) in %s", strings.Join(document.SupportedExtensions(), ", "), dir)
	}

	chooser := promptui.Select{
		Label: "Choose a resume and press ENTER",
		Items: files,
		Size:  10,
	}
	_, selected, err := chooser.Run()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, selected), nil
}

func supportedDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := document.FormatFor(e.Name()); ok {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
