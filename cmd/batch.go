package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-checker/internal/logger"
	"github.com/spigell/ats-checker/internal/report"
)

var batchCmd = &cobra.Command{
	Use:   "batch <path>...",
	Short: "Score many resumes in parallel",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		batch(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("jobs", "p", 0, "number of documents analyzed concurrently")
	batchCmd.Flags().StringP("format", "f", "table", "output format: table or json")

	viper.BindPFlag("batch.jobs", batchCmd.Flags().Lookup("jobs"))
}

func batch(cmd *cobra.Command, paths []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	format, err := batchFormat(cmd)
	if err != nil {
		logger.Fatal("reading the format flag", zap.Error(err))
	}

	analyzer, err := buildAnalyzer(config, logger)
	if err != nil {
		logger.Fatal("preparing the analyzer", zap.Error(err))
	}

	logger.Info("starting the batch", zap.Int("documents", len(paths)), zap.Int("jobs", config.Batch.Jobs))

	results, err := analyzer.AnalyzeFiles(ctx, paths, config.Batch.Jobs)
	if err != nil {
		logger.Fatal("analyzing documents", zap.Error(err))
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			logger.Fatal("encoding results", zap.Error(err))
		}
		return
	}

	if err := report.Table(out, results); err != nil {
		logger.Fatal("printing results", zap.Error(err))
	}
}

func batchFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", err
	}
	if format != "table" && format != "json" {
		return "", fmt.Errorf("unknown output format %q", format)
	}
	return format, nil
}
