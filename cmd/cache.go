package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-checker/internal/document"
	"github.com/spigell/ats-checker/internal/logger"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the extracted text cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached document text",
	Run: func(_ *cobra.Command, _ []string) {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		if err := clearCache(config.Cache); err != nil {
			logger.Fatal("clearing the cache", zap.Error(err))
		}

		logger.Info("cache cleared", zap.String("dir", config.Cache.Dir))
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func clearCache(config *CacheConfig) error {
	dir := strings.TrimSpace(config.Dir)
	if dir == "" {
		return errors.New("cache.dir is not configured")
	}

	cache, err := document.OpenCache(dir)
	if err != nil {
		return err
	}
	return cache.Clear()
}
