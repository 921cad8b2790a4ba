package analysis

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/ats-checker/internal/logger"
)

const textPreviewLength = 120

// Loader resolves a file path to plain text. Implementations live outside
// the core; any error is treated as "no text".
type Loader interface {
	Load(ctx context.Context, path string) (string, error)
}

// Result is everything a presentation layer needs from one analysis run.
type Result struct {
	RunID       string        `json:"run_id,omitempty"`
	Path        string        `json:"path,omitempty"`
	Score       int           `json:"score"`
	Strengths   []string      `json:"strengths"`
	Weaknesses  []string      `json:"weaknesses"`
	Suggestions []string      `json:"suggestions"`
	Sections    []string      `json:"sections"`
	Signals     *SignalReport `json:"signals,omitempty"`
	LoadError   string        `json:"load_error,omitempty"`
}

// Analyzer sequences normalization, section detection, signal extraction,
// scoring and findings. It is safe for concurrent use once built.
type Analyzer struct {
	loader    Loader
	rules     *RuleSet
	dict      *Dictionary
	weights   Weights
	findings  []FindingRule
	extractor *Extractor
	logger    *zap.Logger
	newRunID  func() string
	dictSet   bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

func WithLoader(l Loader) Option { return func(a *Analyzer) { a.loader = l } }

func WithRuleSet(rs *RuleSet) Option { return func(a *Analyzer) { a.rules = rs } }

// WithDictionary sets the typo dictionary. Passing nil disables the typo rule.
func WithDictionary(d *Dictionary) Option {
	return func(a *Analyzer) {
		a.dict = d
		a.dictSet = true
	}
}

func WithWeights(w Weights) Option { return func(a *Analyzer) { a.weights = w } }

func WithLogger(l *zap.Logger) Option { return func(a *Analyzer) { a.logger = l } }

// WithRunIDs replaces the run identifier generator.
func WithRunIDs(fn func() string) Option { return func(a *Analyzer) { a.newRunID = fn } }

// New builds an Analyzer with the default rule set, weights and the bundled
// dictionary unless overridden.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		rules:    DefaultRuleSet(),
		weights:  DefaultWeights,
		findings: DefaultFindingRules(),
		newRunID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	if a.rules == nil {
		a.rules = DefaultRuleSet()
	}
	if !a.dictSet {
		a.dict = DefaultDictionary()
	}

	if !a.dict.Available() {
		DisableRule(a.findings, TyposRuleName, "dictionary unavailable")
		a.logger.Warn("typo detection disabled", zap.String("reason", "dictionary unavailable"))
	}

	a.extractor = NewExtractor(a.rules, a.dict)

	return a
}

// Rules returns the rule set used by the analyzer.
func (a *Analyzer) Rules() *RuleSet { return a.rules }

// FindingRules returns the status of every finding rule.
func (a *Analyzer) FindingRules() []RuleStatus { return DescribeRules(a.findings) }

// Analyze runs the pipeline over already extracted text.
func (a *Analyzer) Analyze(text string) *Result {
	return a.run(a.newRunID(), "", text)
}

// AnalyzeFile loads the document and analyzes it. A load failure never
// surfaces as an error: the result is the degenerate "no text" result with
// the cause recorded in LoadError.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) *Result {
	runID := a.newRunID()
	log := logger.WithDocumentFields(a.logger, runID, path)

	if a.loader == nil {
		log.Warn("loading document failed", zap.Error(errors.New("no loader configured")))
		res := a.run(runID, path, "")
		res.LoadError = "no loader configured"
		return res
	}

	text, err := a.loader.Load(ctx, path)
	if err != nil {
		log.Warn("loading document failed", zap.Error(err))
		res := a.run(runID, path, "")
		res.LoadError = err.Error()
		return res
	}

	return a.run(runID, path, text)
}

func (a *Analyzer) run(runID, path, raw string) *Result {
	log := logger.WithDocumentFields(a.logger, runID, path)
	text := Normalize(raw)

	res := &Result{
		RunID:    runID,
		Path:     path,
		Sections: []string{},
	}

	if text.Empty() {
		f := ApplyRules(true, a.findings, Input{})
		res.Strengths, res.Weaknesses, res.Suggestions = f.Strengths, f.Weaknesses, f.Suggestions
		log.Info("analysis completed", zap.String("reason", "no text extracted"), zap.Int("score", 0))
		return res
	}

	log.Debug("analyzing text",
		zap.Int("text_length", len(text.Text)),
		zap.String("text_preview", logger.TruncateForLog(text.Text, textPreviewLength)),
	)

	sections := DetectSections(text, a.rules.sections)
	log.Debug("sections detected", zap.Strings("sections", sections.Names()))

	signals := a.extractor.Extract(text)
	log.Debug("signals extracted",
		zap.Strings("verbs", signals.Verbs),
		zap.Bool("quantified", signals.Quantified),
		zap.Int("word_count", signals.WordCount),
		zap.Stringer("length_band", signals.Length),
		zap.Int("typos", len(signals.Typos)),
		zap.Bool("long_gap", signals.LongGap),
	)

	res.Score = a.weights.Score(sections, signals)
	f := ApplyRules(false, a.findings, Input{Sections: sections, Signals: signals})

	res.Strengths, res.Weaknesses, res.Suggestions = f.Strengths, f.Weaknesses, f.Suggestions
	res.Sections = sections.Names()
	res.Signals = &signals

	log.Info("analysis completed",
		zap.Int("score", res.Score),
		zap.Int("strengths", len(res.Strengths)),
		zap.Int("weaknesses", len(res.Weaknesses)),
		zap.Int("suggestions", len(res.Suggestions)),
	)

	return res
}
