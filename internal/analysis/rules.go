package analysis

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Canonical section names. Finding rules are keyed on these.
const (
	SectionContact    = "contact"
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionSkills     = "skills"
)

// PatternRule is a named case-insensitive matcher over normalized text.
type PatternRule struct {
	Name    string
	Display string
	Pattern *regexp.Regexp
}

// NewPatternRule compiles expr as a case-insensitive pattern.
func NewPatternRule(name, display, expr string) (PatternRule, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return PatternRule{}, errors.New("pattern rule name is required")
	}

	expr = strings.TrimSpace(expr)
	if expr == "" {
		return PatternRule{}, fmt.Errorf("pattern rule %q: pattern is required", name)
	}

	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return PatternRule{}, fmt.Errorf("pattern rule %q: %w", name, err)
	}

	display = strings.TrimSpace(display)
	if display == "" {
		display = name
	}

	return PatternRule{Name: name, Display: display, Pattern: re}, nil
}

// Match reports whether any alternative of the rule occurs anywhere in the text.
func (r PatternRule) Match(t NormalizedText) bool {
	if r.Pattern == nil {
		return false
	}
	return r.Pattern.MatchString(t.Lower)
}

// RuleSet is the static configuration driving section detection and the
// verb-based signals. It is immutable once built.
type RuleSet struct {
	sections   []PatternRule
	verbs      []string
	quantified *regexp.Regexp
}

var defaultSections = []struct {
	name, display, pattern string
}{
	{SectionContact, "Contact Information", `contact|phone|email|linkedin|address`},
	{SectionSummary, "Summary/Objective", `summary|objective|profile`},
	{SectionExperience, "Experience Section", `experience|work history`},
	{SectionEducation, "Education Section", `education|academic`},
	{SectionSkills, "Skills Section", `skills|proficiencies|technical`},
}

var defaultVerbs = []string{
	"managed", "developed", "created", "implemented", "led", "analyzed",
	"designed", "built", "improved", "reduced", "increased",
}

var defaultRuleSet = mustDefaultRuleSet()

func mustDefaultRuleSet() *RuleSet {
	sections := make([]PatternRule, 0, len(defaultSections))
	for _, s := range defaultSections {
		rule, err := NewPatternRule(s.name, s.display, s.pattern)
		if err != nil {
			panic(err)
		}
		sections = append(sections, rule)
	}

	rs, err := NewRuleSet(sections, defaultVerbs)
	if err != nil {
		panic(err)
	}
	return rs
}

// DefaultRuleSet returns the built-in rule tables. The returned value is shared.
func DefaultRuleSet() *RuleSet {
	return defaultRuleSet
}

// NewRuleSet validates the tables and derives the quantified-achievement
// pattern ("<verb> <number>") from the verb list.
func NewRuleSet(sections []PatternRule, verbs []string) (*RuleSet, error) {
	if len(sections) == 0 {
		return nil, errors.New("at least one section rule is required")
	}

	seen := make(map[string]struct{}, len(sections))
	for _, s := range sections {
		if s.Pattern == nil {
			return nil, fmt.Errorf("section %q has no pattern", s.Name)
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("duplicate section %q", s.Name)
		}
		seen[s.Name] = struct{}{}
	}

	cleaned := make([]string, 0, len(verbs))
	known := make(map[string]struct{}, len(verbs))
	for _, v := range verbs {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, dup := known[v]; dup {
			continue
		}
		known[v] = struct{}{}
		cleaned = append(cleaned, v)
	}
	if len(cleaned) == 0 {
		return nil, errors.New("at least one action verb is required")
	}

	quoted := make([]string, 0, len(cleaned))
	for _, v := range cleaned {
		quoted = append(quoted, regexp.QuoteMeta(v))
	}

	// RE2 \b and \d are ASCII only: a verb preceded by a non-ASCII letter
	// ("ébuilt 5") still starts a word, and non-ASCII digits are not numbers.
	quantified, err := regexp.Compile(`\b(?:` + strings.Join(quoted, "|") + `)\s+\d+`)
	if err != nil {
		return nil, fmt.Errorf("building quantified pattern: %w", err)
	}

	return &RuleSet{
		sections:   append([]PatternRule(nil), sections...),
		verbs:      cleaned,
		quantified: quantified,
	}, nil
}

// Sections returns a copy of the section table in evaluation order.
func (rs *RuleSet) Sections() []PatternRule {
	return append([]PatternRule(nil), rs.sections...)
}

// Verbs returns a copy of the action verb list in evaluation order.
func (rs *RuleSet) Verbs() []string {
	return append([]string(nil), rs.verbs...)
}

// QuantifiedPattern returns the derived "<verb> <number>" matcher.
func (rs *RuleSet) QuantifiedPattern() *regexp.Regexp {
	return rs.quantified
}

// Section looks up a section rule by name.
func (rs *RuleSet) Section(name string) (PatternRule, bool) {
	for _, s := range rs.sections {
		if s.Name == name {
			return s, true
		}
	}
	return PatternRule{}, false
}
