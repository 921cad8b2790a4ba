package cmd

import (
	"fmt"
	"log"
	"runtime"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/ats-checker/internal/analysis"
)

const (
	app = "ats-checker"
)

type Config struct {
	Dictionary *DictionaryConfig `mapstructure:"dictionary"`
	Rules      *RulesConfig      `mapstructure:"rules"`
	Cache      *CacheConfig      `mapstructure:"cache"`
	Batch      *BatchConfig      `mapstructure:"batch"`
	Report     *ReportConfig     `mapstructure:"report"`
	Weights    *WeightsConfig    `mapstructure:"weights"`
}

type DictionaryConfig struct {
	// A missing or unreadable file disables typo detection instead of failing.
	WordsFile     string `mapstructure:"words-file"`
	StopWordsFile string `mapstructure:"stopwords-file"`
	Disabled      bool   `mapstructure:"disabled"`
}

type RulesConfig struct {
	File   string         `mapstructure:"file" validate:"omitempty,file"`
	Inline map[string]any `mapstructure:"inline"`
}

type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

type BatchConfig struct {
	Jobs int `mapstructure:"jobs" validate:"min=1,max=64"`
}

type ReportConfig struct {
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json pdf"`
	Output string `mapstructure:"output"`
}

// WeightsConfig overrides score weights. Unset fields keep their defaults.
type WeightsConfig struct {
	Section          *int `mapstructure:"section" validate:"omitempty,min=0"`
	Verb             *int `mapstructure:"verb" validate:"omitempty,min=0"`
	VerbCap          *int `mapstructure:"verb-cap" validate:"omitempty,min=0"`
	Quantified       *int `mapstructure:"quantified" validate:"omitempty,min=0"`
	IdealLength      *int `mapstructure:"ideal-length" validate:"omitempty,min=0"`
	AcceptableLength *int `mapstructure:"acceptable-length" validate:"omitempty,min=0"`
}

func (w *WeightsConfig) apply(base analysis.Weights) analysis.Weights {
	if w == nil {
		return base
	}
	override := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	override(&base.Section, w.Section)
	override(&base.Verb, w.Verb)
	override(&base.VerbCap, w.VerbCap)
	override(&base.Quantified, w.Quantified)
	override(&base.IdealLength, w.IdealLength)
	override(&base.AcceptableLength, w.AcceptableLength)
	return base
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ats-checker scores resumes against common applicant tracking system heuristics",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("dictionary.words-file", "ATS_CHECKER_DICTIONARY"); err != nil {
		log.Fatalf("binding ATS_CHECKER_DICTIONARY environment variable: %v", err)
	}

	viper.SetDefault("batch.jobs", min(runtime.GOMAXPROCS(0), 64))
	viper.SetDefault("report.format", "text")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-checker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless it was given explicitly.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && cfgFile == "" {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}
	config.setDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) setDefaults() {
	if c.Dictionary == nil {
		c.Dictionary = &DictionaryConfig{}
	}
	if c.Rules == nil {
		c.Rules = &RulesConfig{}
	}
	if c.Cache == nil {
		c.Cache = &CacheConfig{}
	}
	if c.Batch == nil {
		c.Batch = &BatchConfig{}
	}
	if c.Batch.Jobs == 0 {
		c.Batch.Jobs = min(runtime.GOMAXPROCS(0), 64)
	}
	if c.Report == nil {
		c.Report = &ReportConfig{}
	}
	if c.Weights == nil {
		c.Weights = &WeightsConfig{}
	}
}

// Validate checks the config with struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
