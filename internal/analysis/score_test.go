package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func allSections() SectionReport {
	report := SectionReport{}
	for _, r := range DefaultRuleSet().Sections() {
		report.Found = append(report.Found, SectionMatch{Name: r.Name, Display: r.Display})
	}
	return report
}

func TestScore_Weights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		sections SectionReport
		signals  SignalReport
		want     int
	}{
		{
			name: "nothing",
			want: 0,
		},
		{
			name:     "all sections",
			sections: allSections(),
			want:     75,
		},
		{
			name:    "verb points are capped",
			signals: SignalReport{Verbs: DefaultRuleSet().Verbs()},
			want:    20,
		},
		{
			name:    "quantified and acceptable length",
			signals: SignalReport{Verbs: []string{"led"}, Quantified: true, Length: LengthAcceptable},
			want:    17,
		},
		{
			name:     "maximum",
			sections: allSections(),
			signals:  SignalReport{Verbs: DefaultRuleSet().Verbs(), Quantified: true, Length: LengthIdeal},
			want:     100,
		},
		{
			name:    "typos and gaps do not move the score",
			signals: SignalReport{Length: LengthIdeal, Typos: []string{"teh"}, LongGap: true},
			want:    10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Score(tt.sections, tt.signals))
		})
	}
}

func TestScore_Clamped(t *testing.T) {
	heavy := Weights{Section: 50, Verb: 10, VerbCap: 100}
	assert.Equal(t, MaxScore, heavy.Score(allSections(), SignalReport{Verbs: []string{"led"}}))

	negative := Weights{Section: -40}
	assert.Equal(t, MinScore, negative.Score(allSections(), SignalReport{}))
}
