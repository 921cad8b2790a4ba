package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-checker/internal/analysis"
	"github.com/spigell/ats-checker/internal/document"
	"github.com/spigell/ats-checker/internal/report"
)

func intPtr(v int) *int { return &v }

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	words := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(words, []byte("kubernetes\n"), 0o600); err != nil {
		t.Fatalf("writing words file: %v", err)
	}

	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "defaults", config: Config{}},
		{name: "existing words file", config: Config{Dictionary: &DictionaryConfig{WordsFile: words}}},
		{name: "missing words file", config: Config{Dictionary: &DictionaryConfig{WordsFile: words + ".absent"}}},
		{name: "negative weight", config: Config{Weights: &WeightsConfig{Verb: intPtr(-1)}}, wantErr: true},
		{name: "too many jobs", config: Config{Batch: &BatchConfig{Jobs: 65}}, wantErr: true},
		{name: "unknown format", config: Config{Report: &ReportConfig{Format: "xml"}}, wantErr: true},
		{name: "pdf format", config: Config{Report: &ReportConfig{Format: "pdf"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := tt.config
			cfg.setDefaults()

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.setDefaults()

	if cfg.Batch.Jobs < 1 || cfg.Batch.Jobs > 64 {
		t.Fatalf("unexpected default jobs %d", cfg.Batch.Jobs)
	}
	if cfg.Dictionary == nil || cfg.Rules == nil || cfg.Cache == nil || cfg.Report == nil {
		t.Fatalf("expected every section to be initialized: %+v", cfg)
	}
}

func TestBuildRuleSet(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "rules.toml")
	body := "verbs = [\"shipped\"]\n\n[[section]]\nname = \"projects\"\npattern = \"projects\"\n"
	if err := os.WriteFile(file, []byte(body), 0o600); err != nil {
		t.Fatalf("writing rules file: %v", err)
	}

	rules, err := buildRuleSet(&RulesConfig{
		File: file,
		Inline: map[string]any{
			"verbs": []any{"mentored"},
		},
	})
	if err != nil {
		t.Fatalf("building rules: %v", err)
	}

	if _, ok := rules.Section("projects"); !ok {
		t.Fatalf("expected the projects section from the rules file")
	}

	verbs := strings.Join(rules.Verbs(), ",")
	if !strings.HasSuffix(verbs, "shipped,mentored") {
		t.Fatalf("unexpected verbs order: %s", verbs)
	}
}

func TestBuildRuleSetInvalidInline(t *testing.T) {
	t.Parallel()

	_, err := buildRuleSet(&RulesConfig{Inline: map[string]any{"unknown": true}})
	if err == nil {
		t.Fatalf("expected an error for unknown inline keys")
	}
}

func TestBuildAnalyzerDictionary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		config      *DictionaryConfig
		typosActive bool
	}{
		{name: "bundled", config: &DictionaryConfig{}, typosActive: true},
		{name: "disabled", config: &DictionaryConfig{Disabled: true}, typosActive: false},
		{name: "unreadable words file", config: &DictionaryConfig{WordsFile: "/nonexistent/words.txt"}, typosActive: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &Config{Dictionary: tt.config}
			cfg.setDefaults()

			analyzer, err := buildAnalyzer(cfg, zap.NewNop())
			if err != nil {
				t.Fatalf("building analyzer: %v", err)
			}

			for _, s := range analyzer.FindingRules() {
				if s.Name == analysis.TyposRuleName && s.Enabled != tt.typosActive {
					t.Fatalf("typos rule enabled = %v, want %v", s.Enabled, tt.typosActive)
				}
			}
		})
	}
}

func TestDefaultReportPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		format report.Format
		want   string
	}{
		{path: "docs/cv.pdf", format: report.FormatText, want: "cv-ats-report.txt"},
		{path: "resume.docx", format: report.FormatJSON, want: "resume-ats-report.json"},
		{path: "", format: report.FormatPDF, want: "resume-ats-report.pdf"},
	}

	for _, tt := range tests {
		if got := defaultReportPath(tt.path, tt.format); got != tt.want {
			t.Fatalf("defaultReportPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSupportedDocuments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.docx", "notes.rtf", "c.HTML"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "folder.pdf"), 0o755); err != nil {
		t.Fatalf("creating folder: %v", err)
	}

	files, err := supportedDocuments(dir)
	if err != nil {
		t.Fatalf("listing documents: %v", err)
	}

	if got := strings.Join(files, ","); got != "a.docx,b.pdf,c.HTML" {
		t.Fatalf("unexpected documents: %s", got)
	}
}

func TestHandleAction(t *testing.T) {
	t.Parallel()

	res := analysis.New(analysis.WithDictionary(nil)).Analyze("skills: go")
	opts := report.Options{NoColor: true}

	var out bytes.Buffer
	if err := handleAction(PromptWeaknesses, &out, res, opts, zap.NewNop()); err != nil {
		t.Fatalf("weaknesses: %v", err)
	}
	if !strings.Contains(out.String(), analysis.WeaknessContact) {
		t.Fatalf("expected the contact weakness, got %q", out.String())
	}

	if err := handleAction(PromptExit, &out, res, opts, zap.NewNop()); !errors.Is(err, errExit) {
		t.Fatalf("expected errExit, got %v", err)
	}

	if err := handleAction("unknown", &out, res, opts, zap.NewNop()); err == nil {
		t.Fatalf("expected an error for an unknown action")
	}
}

func TestWriteReportToFile(t *testing.T) {
	t.Parallel()

	res := analysis.New().Analyze("")
	target := filepath.Join(t.TempDir(), "report.json")

	if err := writeReport(nil, target, report.FormatJSON, res, report.Options{}); err != nil {
		t.Fatalf("writing report: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if err := report.ValidateJSON(data); err != nil {
		t.Fatalf("saved report does not match schema: %v", err)
	}

	if err := writeReport(nil, "", report.FormatText, res, report.Options{}); err == nil {
		t.Fatalf("expected an error without any output")
	}
}

func TestPrintRules(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := printRules(&out, analysis.New(analysis.WithDictionary(nil))); err != nil {
		t.Fatalf("printing rules: %v", err)
	}

	for _, want := range []string{"contact", "managed, developed", "typos", "disabled (dictionary unavailable)"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in output:\n%s", want, out.String())
		}
	}
}

func TestMissingDictionaryFileDisablesTypos(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent", "words.txt")
	viper.Set("dictionary.words-file", missing)
	t.Cleanup(func() { viper.Set("dictionary.words-file", "") })

	cfg, err := getConfig()
	if err != nil {
		t.Fatalf("a missing dictionary file must not fail the config: %v", err)
	}
	if cfg.Dictionary.WordsFile != missing {
		t.Fatalf("words file = %q, want %q", cfg.Dictionary.WordsFile, missing)
	}

	analyzer, err := buildAnalyzer(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("building analyzer: %v", err)
	}

	for _, s := range analyzer.FindingRules() {
		if s.Name == analysis.TyposRuleName && s.Enabled {
			t.Fatalf("expected the typos rule to be disabled")
		}
	}

	res := analyzer.Analyze("skills: go, qwzx")
	if res.Score == 0 || len(res.Signals.Typos) != 0 {
		t.Fatalf("expected a scored run without typos, got score %d typos %v", res.Score, res.Signals.Typos)
	}
}

func TestWeightsConfig(t *testing.T) {
	t.Parallel()

	var empty *WeightsConfig
	if got := empty.apply(analysis.DefaultWeights); got != analysis.DefaultWeights {
		t.Fatalf("nil weights changed defaults: %+v", got)
	}

	got := (&WeightsConfig{Section: intPtr(40), VerbCap: intPtr(0)}).apply(analysis.DefaultWeights)
	want := analysis.DefaultWeights
	want.Section, want.VerbCap = 40, 0
	if got != want {
		t.Fatalf("weights = %+v, want %+v", got, want)
	}

	cfg := &Config{Weights: &WeightsConfig{Section: intPtr(40)}}
	cfg.setDefaults()

	analyzer, err := buildAnalyzer(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("building analyzer: %v", err)
	}
	if res := analyzer.Analyze("skills"); res.Score != 40 {
		t.Fatalf("score = %d, want 40", res.Score)
	}
}

func TestSchemaCommand(t *testing.T) {
	var out bytes.Buffer
	schemaCmd.SetOut(&out)
	t.Cleanup(func() { schemaCmd.SetOut(nil) })

	if err := schemaCmd.RunE(schemaCmd, nil); err != nil {
		t.Fatalf("printing schema: %v", err)
	}

	var schema map[string]any
	if err := json.Unmarshal(out.Bytes(), &schema); err != nil {
		t.Fatalf("schema is not json: %v", err)
	}
	if schema["title"] != "ATS analysis result" {
		t.Fatalf("unexpected schema title %v", schema["title"])
	}
}

func TestClearCache(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cache, err := document.OpenCache(dir)
	if err != nil {
		t.Fatalf("opening cache: %v", err)
	}

	key := document.CacheKey([]byte("cv"), ".txt")
	if err := cache.Put(key, document.FormatText, "skills"); err != nil {
		t.Fatalf("writing cache: %v", err)
	}

	if err := clearCache(&CacheConfig{Dir: dir}); err != nil {
		t.Fatalf("clearing cache: %v", err)
	}

	if _, hit, err := cache.Get(key); err != nil || hit {
		t.Fatalf("expected a miss after clearing, hit=%v err=%v", hit, err)
	}

	if err := clearCache(&CacheConfig{}); err == nil {
		t.Fatalf("expected an error without a cache dir")
	}
}

func TestAnalyzeFlags(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{}
	cmd.Flags().BoolP("yes", "y", false, "")
	cmd.Flags().Bool("no-color", false, "")
	if err := cmd.Flags().Parse([]string{"-y", "--no-color"}); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}

	opts, yes, err := analyzeFlags(cmd)
	if err != nil {
		t.Fatalf("reading flags: %v", err)
	}
	if !yes || !opts.NoColor {
		t.Fatalf("expected yes and no-color, got yes=%v opts=%+v", yes, opts)
	}

	if _, _, err := analyzeFlags(&cobra.Command{}); err == nil {
		t.Fatalf("expected an error for undefined flags")
	}
}

func TestBatchFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args    []string
		want    string
		wantErr bool
	}{
		{args: nil, want: "table"},
		{args: []string{"--format", "json"}, want: "json"},
		{args: []string{"-f", "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		cmd := &cobra.Command{}
		cmd.Flags().StringP("format", "f", "table", "")
		if err := cmd.Flags().Parse(tt.args); err != nil {
			t.Fatalf("parsing %v: %v", tt.args, err)
		}

		got, err := batchFormat(cmd)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected an error for %v", tt.args)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("batchFormat(%v) = %q, %v; want %q", tt.args, got, err, tt.want)
		}
	}

	if _, err := batchFormat(&cobra.Command{}); err == nil {
		t.Fatalf("expected an error for an undefined flag")
	}
}
