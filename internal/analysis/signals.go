package analysis

import (
	"regexp"
	"strings"
	"unicode"
)

// LengthBand classifies the document word count.
type LengthBand int

const (
	LengthUnscored LengthBand = iota
	LengthAcceptable
	LengthIdeal
)

const (
	idealMinWords      = 300
	idealMaxWords      = 800
	acceptableMinWords = 200
	acceptableMaxWords = 1000

	// longGap is three consecutive line breaks.
	longGap = "\n\n\n"
)

func (b LengthBand) String() string {
	switch b {
	case LengthIdeal:
		return "ideal"
	case LengthAcceptable:
		return "acceptable"
	default:
		return "unscored"
	}
}

// MarshalText renders the band by name in JSON reports.
func (b LengthBand) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// BandFor places a word count into ideal [300,800], acceptable
// [200,300) or (800,1000], or unscored.
func BandFor(words int) LengthBand {
	switch {
	case words >= idealMinWords && words <= idealMaxWords:
		return LengthIdeal
	case words >= acceptableMinWords && words < idealMinWords,
		words > idealMaxWords && words <= acceptableMaxWords:
		return LengthAcceptable
	default:
		return LengthUnscored
	}
}

// SignalReport holds every feature extracted from one document.
type SignalReport struct {
	// Verbs are the distinct action verbs found, in verb-table order.
	Verbs      []string   `json:"verbs"`
	Quantified bool       `json:"quantified"`
	WordCount  int        `json:"word_count"`
	Length     LengthBand `json:"length_band"`
	// Typos are distinct unknown tokens in order of first appearance.
	Typos []string `json:"typos"`
	// TyposChecked is false when no dictionary was available.
	TyposChecked bool `json:"typos_checked"`
	LongGap      bool `json:"long_gap"`
}

// VerbCount is the number of distinct listed verbs present.
func (s SignalReport) VerbCount() int { return len(s.Verbs) }

// Extractor computes a SignalReport from normalized text.
type Extractor struct {
	rules *RuleSet
	dict  *Dictionary
}

// NewExtractor builds an extractor. A nil rule set falls back to the
// defaults; a nil dictionary disables the typo signal.
func NewExtractor(rules *RuleSet, dict *Dictionary) *Extractor {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	return &Extractor{rules: rules, dict: dict}
}

// Extract runs all signal detectors. Every detector is total over its input.
func (e *Extractor) Extract(t NormalizedText) SignalReport {
	words := CountWords(t.Text)

	return SignalReport{
		Verbs:        MatchVerbs(t, e.rules.verbs),
		Quantified:   e.rules.quantified.MatchString(t.Lower),
		WordCount:    words,
		Length:       BandFor(words),
		Typos:        FindTypos(t, e.dict),
		TyposChecked: e.dict.Available(),
		LongGap:      HasLongGap(t.Text),
	}
}

// MatchVerbs returns the listed verbs contained anywhere in the text.
// Containment is by substring, so "managed" also matches "micromanaged".
func MatchVerbs(t NormalizedText, verbs []string) []string {
	found := make([]string, 0, len(verbs))
	for _, v := range verbs {
		if strings.Contains(t.Lower, v) {
			found = append(found, v)
		}
	}
	return found
}

// CountWords splits on whitespace runs.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// HasLongGap reports three or more consecutive line breaks.
func HasLongGap(text string) bool {
	return strings.Contains(text, longGap)
}

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// FindTypos lists tokens that are not numeric, longer than one rune, and
// neither dictionary words nor stop words. It returns an empty list when the
// dictionary is unavailable.
func FindTypos(t NormalizedText, dict *Dictionary) []string {
	typos := make([]string, 0)
	if !dict.Available() {
		return typos
	}

	seen := make(map[string]struct{})
	for _, token := range tokenPattern.FindAllString(t.Lower, -1) {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}

		if isNumeric(token) || len([]rune(token)) <= 1 {
			continue
		}
		if dict.Known(token) || dict.StopWord(token) {
			continue
		}

		typos = append(typos, token)
	}

	return typos
}

func isNumeric(token string) bool {
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return token != ""
}
