package cmd

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-checker/internal/analysis"
	"github.com/spigell/ats-checker/internal/document"
)

// buildAnalyzer wires the loader, rule set and dictionary described by config.
func buildAnalyzer(config *Config, logger *zap.Logger) (*analysis.Analyzer, error) {
	loader, err := buildLoader(config.Cache, logger)
	if err != nil {
		return nil, err
	}

	rules, err := buildRuleSet(config.Rules)
	if err != nil {
		return nil, err
	}

	opts := []analysis.Option{
		analysis.WithLoader(loader),
		analysis.WithRuleSet(rules),
		analysis.WithLogger(logger),
		analysis.WithWeights(config.Weights.apply(analysis.DefaultWeights)),
	}

	dict, err := buildDictionary(config.Dictionary)
	switch {
	case err != nil:
		logger.Warn("loading dictionary", zap.Error(err))
		opts = append(opts, analysis.WithDictionary(nil))
	case dict != nil || config.Dictionary.Disabled:
		opts = append(opts, analysis.WithDictionary(dict))
	}

	return analysis.New(opts...), nil
}

func buildLoader(config *CacheConfig, logger *zap.Logger) (*document.FileLoader, error) {
	opts := []document.Option{document.WithLogger(logger)}

	if dir := strings.TrimSpace(config.Dir); dir != "" {
		cache, err := document.OpenCache(dir)
		if err != nil {
			return nil, fmt.Errorf("opening text cache: %w", err)
		}
		opts = append(opts, document.WithCache(cache))
		logger.Debug("text cache enabled", zap.String("dir", dir))
	}

	return document.NewFileLoader(opts...), nil
}

// buildRuleSet applies the rules file first and the inline overrides on top.
func buildRuleSet(config *RulesConfig) (*analysis.RuleSet, error) {
	rules := analysis.DefaultRuleSet()

	if path := strings.TrimSpace(config.File); path != "" {
		loaded, err := analysis.LoadRuleSet(path)
		if err != nil {
			return nil, fmt.Errorf("loading rules file: %w", err)
		}
		rules = loaded
	}

	if len(config.Inline) > 0 {
		inline, err := analysis.RuleSetFileFromMap(config.Inline)
		if err != nil {
			return nil, err
		}
		if rules, err = inline.Merge(rules); err != nil {
			return nil, fmt.Errorf("applying inline rules: %w", err)
		}
	}

	return rules, nil
}

// buildDictionary returns nil without error when the bundled dictionary
// should be used as is.
func buildDictionary(config *DictionaryConfig) (*analysis.Dictionary, error) {
	if config.Disabled {
		return nil, nil
	}
	if config.WordsFile == "" && config.StopWordsFile == "" {
		return nil, nil
	}

	return analysis.LoadDictionary(analysis.DictionaryOptions{
		WordsFile:     config.WordsFile,
		StopWordsFile: config.StopWordsFile,
	})
}
