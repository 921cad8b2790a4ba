package cmd

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-checker/internal/analysis"
	"github.com/spigell/ats-checker/internal/logger"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the active section patterns, action verbs and finding rules",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		analyzer, err := buildAnalyzer(config, logger)
		if err != nil {
			logger.Fatal("preparing the analyzer", zap.Error(err))
		}

		if err := printRules(cmd.OutOrStdout(), analyzer); err != nil {
			logger.Fatal("printing rules", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func printRules(w io.Writer, analyzer *analysis.Analyzer) error {
	var b strings.Builder

	b.WriteString("Sections:\n")
	for _, s := range analyzer.Rules().Sections() {
		fmt.Fprintf(&b, "  %-12s %-22s %s\n", s.Name, s.Display, strings.TrimPrefix(s.Pattern.String(), "(?i)"))
	}

	b.WriteString("\nAction verbs:\n  ")
	b.WriteString(strings.Join(analyzer.Rules().Verbs(), ", "))
	b.WriteString("\n")

	b.WriteString("\nFinding rules:\n")
	for _, s := range analyzer.FindingRules() {
		state := "enabled"
		if !s.Enabled {
			state = "disabled"
			if s.Reason != "" {
				state += " (" + s.Reason + ")"
			}
		}
		fmt.Fprintf(&b, "  %-30s %s\n", s.Name, state)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
