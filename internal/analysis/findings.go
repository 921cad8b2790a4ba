package analysis

import (
	"fmt"
	"strings"
)

// maxListed caps verbs and typos quoted in a single finding.
const maxListed = 5

// Fixed finding texts.
const (
	WeaknessNoText   = "No text extracted from the resume."
	SuggestionNoText = "Ensure the file is a readable PDF or DOCX."

	StrengthQuantified = "Potentially includes quantifiable achievements (e.g., 'increased sales by 15%')."

	WeaknessContact   = "Missing or unclear Contact Information."
	SuggestionContact = "Add clear contact details (phone, email, LinkedIn)."

	WeaknessExperienceEducation   = "Missing both Experience and Education sections."
	SuggestionExperienceEducation = "Include relevant Experience and/or Education sections."

	WeaknessExperience   = "Missing Experience section."
	SuggestionExperience = "Add your work experience."

	WeaknessEducation   = "Missing Education section."
	SuggestionEducation = "Add your educational background."

	WeaknessSkills   = "Missing Skills section."
	SuggestionSkills = "Add a dedicated section for your relevant skills."

	SuggestionTypos = "Read carefully for spelling and grammar errors."

	WeaknessFormatting   = "Potential formatting issues (e.g., large gaps or long paragraphs)."
	SuggestionFormatting = "Use bullet points for experience and education details. Ensure consistent spacing."

	SuggestionFallback = "Could not analyze the resume effectively. Ensure the text is readable."
)

// Findings are the three ordered lists shown to the user. Order follows
// rule evaluation, not severity.
type Findings struct {
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}

func newFindings() Findings {
	return Findings{
		Strengths:   []string{},
		Weaknesses:  []string{},
		Suggestions: []string{},
	}
}

func (f *Findings) strength(s string) {
	f.Strengths = append(f.Strengths, s)
}

// weakness appends a weakness together with its paired suggestion.
func (f *Findings) weakness(w, suggestion string) {
	f.Weaknesses = append(f.Weaknesses, w)
	f.Suggestions = append(f.Suggestions, suggestion)
}

// Input is what finding rules read.
type Input struct {
	Sections SectionReport
	Signals  SignalReport
}

// FindingRule maps signal presence or absence to findings.
type FindingRule interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool
	Apply(in Input, out *Findings)
}

// RuleStatus describes a finding rule for listings.
type RuleStatus struct {
	Name    string
	Enabled bool
	Reason  string
}

// switchable carries the enable state shared by all rules.
type switchable struct {
	disabled bool
	reason   string
}

func (s *switchable) Disable(reason string) {
	s.disabled = true
	s.reason = reason
}

func (s *switchable) IsEnabled() bool { return !s.disabled }

func (s *switchable) status(name string) RuleStatus {
	return RuleStatus{Name: name, Enabled: !s.disabled, Reason: s.reason}
}

type sectionStrengthsRule struct{ switchable }

func (r *sectionStrengthsRule) Name() string { return "section_strengths" }

func (r *sectionStrengthsRule) Apply(in Input, out *Findings) {
	for _, s := range in.Sections.Found {
		out.strength(fmt.Sprintf("Includes a %s.", s.Display))
	}
}

type verbStrengthRule struct{ switchable }

func (r *verbStrengthRule) Name() string { return "action_verbs" }

func (r *verbStrengthRule) Apply(in Input, out *Findings) {
	verbs := in.Signals.Verbs
	if len(verbs) == 0 {
		return
	}
	out.strength(fmt.Sprintf("Uses action verbs like: %s...", strings.Join(firstN(verbs, maxListed), ", ")))
}

type quantifiedStrengthRule struct{ switchable }

func (r *quantifiedStrengthRule) Name() string { return "quantified_achievements" }

func (r *quantifiedStrengthRule) Apply(in Input, out *Findings) {
	if in.Signals.Quantified {
		out.strength(StrengthQuantified)
	}
}

type missingSectionRule struct {
	switchable
	name       string
	section    string
	weakness   string
	suggestion string
}

func (r *missingSectionRule) Name() string { return r.name }

func (r *missingSectionRule) Apply(in Input, out *Findings) {
	if !in.Sections.Has(r.section) {
		out.weakness(r.weakness, r.suggestion)
	}
}

// experienceEducationRule reports the combined weakness when both sections
// are missing, and only then falls through to the single-section cases.
type experienceEducationRule struct{ switchable }

func (r *experienceEducationRule) Name() string { return "missing_experience_education" }

func (r *experienceEducationRule) Apply(in Input, out *Findings) {
	experience := in.Sections.Has(SectionExperience)
	education := in.Sections.Has(SectionEducation)

	switch {
	case !experience && !education:
		out.weakness(WeaknessExperienceEducation, SuggestionExperienceEducation)
	case !experience:
		out.weakness(WeaknessExperience, SuggestionExperience)
	case !education:
		out.weakness(WeaknessEducation, SuggestionEducation)
	}
}

type typosRule struct{ switchable }

func (r *typosRule) Name() string { return "typos" }

func (r *typosRule) Apply(in Input, out *Findings) {
	if len(in.Signals.Typos) == 0 {
		return
	}
	out.weakness(
		fmt.Sprintf("Potential typos detected (e.g., '%s').", strings.Join(firstN(in.Signals.Typos, maxListed), ", ")),
		SuggestionTypos,
	)
}

type formattingRule struct{ switchable }

func (r *formattingRule) Name() string { return "formatting" }

func (r *formattingRule) Apply(in Input, out *Findings) {
	if in.Signals.LongGap {
		out.weakness(WeaknessFormatting, SuggestionFormatting)
	}
}

// TyposRuleName is the rule disabled when the dictionary is unavailable.
const TyposRuleName = "typos"

// DefaultFindingRules returns a fresh rule table in evaluation order.
// Each analyzer owns its table because rules can be disabled.
func DefaultFindingRules() []FindingRule {
	return []FindingRule{
		&sectionStrengthsRule{},
		&verbStrengthRule{},
		&quantifiedStrengthRule{},
		&missingSectionRule{
			name:       "missing_contact",
			section:    SectionContact,
			weakness:   WeaknessContact,
			suggestion: SuggestionContact,
		},
		&experienceEducationRule{},
		&missingSectionRule{
			name:       "missing_skills",
			section:    SectionSkills,
			weakness:   WeaknessSkills,
			suggestion: SuggestionSkills,
		},
		&typosRule{},
		&formattingRule{},
	}
}

// DisableRule marks every rule with the provided name as disabled while
// keeping it in the table.
func DisableRule(rules []FindingRule, name, reason string) {
	for _, r := range rules {
		if r.Name() == name {
			r.Disable(reason)
		}
	}
}

// DescribeRules returns status entries for the provided rules.
func DescribeRules(rules []FindingRule) []RuleStatus {
	statuses := make([]RuleStatus, 0, len(rules))
	for _, r := range rules {
		if reporter, ok := r.(interface{ status(string) RuleStatus }); ok {
			statuses = append(statuses, reporter.status(r.Name()))
			continue
		}
		statuses = append(statuses, RuleStatus{Name: r.Name(), Enabled: r.IsEnabled()})
	}
	return statuses
}

// ApplyRules produces findings. Empty text short-circuits to the fixed
// degenerate findings before any rule runs.
func ApplyRules(textEmpty bool, rules []FindingRule, in Input) Findings {
	out := newFindings()

	if textEmpty {
		out.weakness(WeaknessNoText, SuggestionNoText)
		return out
	}

	for _, r := range rules {
		if !r.IsEnabled() {
			continue
		}
		r.Apply(in, &out)
	}

	if len(out.Strengths) == 0 && len(out.Weaknesses) == 0 {
		out.Suggestions = append(out.Suggestions, SuggestionFallback)
	}

	return out
}

// GenerateFindings runs the default rule table.
func GenerateFindings(textEmpty bool, sections SectionReport, signals SignalReport) Findings {
	return ApplyRules(textEmpty, DefaultFindingRules(), Input{Sections: sections, Signals: signals})
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
