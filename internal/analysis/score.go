package analysis

const (
	MinScore = 0
	MaxScore = 100
)

// Weights are the additive points of the score calculator.
type Weights struct {
	Section          int // per present section
	Verb             int // per distinct action verb
	VerbCap          int
	Quantified       int
	IdealLength      int
	AcceptableLength int
}

// DefaultWeights: 15 per section, 2 per verb capped at 20, 10 for a
// quantified achievement, 10 for an ideal and 5 for an acceptable length.
var DefaultWeights = Weights{
	Section:          15,
	Verb:             2,
	VerbCap:          20,
	Quantified:       10,
	IdealLength:      10,
	AcceptableLength: 5,
}

// Score combines sections and signals with the default weights.
func Score(sections SectionReport, signals SignalReport) int {
	return DefaultWeights.Score(sections, signals)
}

// Score computes the bounded score. Typos and formatting gaps only produce
// findings and never move the number.
func (w Weights) Score(sections SectionReport, signals SignalReport) int {
	score := sections.Len() * w.Section
	score += min(signals.VerbCount()*w.Verb, w.VerbCap)

	if signals.Quantified {
		score += w.Quantified
	}

	switch signals.Length {
	case LengthIdeal:
		score += w.IdealLength
	case LengthAcceptable:
		score += w.AcceptableLength
	}

	return clampScore(score)
}

func clampScore(v int) int {
	return max(MinScore, min(MaxScore, v))
}
