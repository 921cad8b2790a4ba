package analysis

// SectionMatch identifies a section category found in the text.
type SectionMatch struct {
	Name    string `json:"name"`
	Display string `json:"display"`
}

// SectionReport lists the present section categories in rule-table order.
type SectionReport struct {
	Found []SectionMatch `json:"found"`
}

// Has reports whether the named section is present.
func (r SectionReport) Has(name string) bool {
	for _, s := range r.Found {
		if s.Name == name {
			return true
		}
	}
	return false
}

func (r SectionReport) Len() int { return len(r.Found) }

// Names returns the present section names in table order.
func (r SectionReport) Names() []string {
	names := make([]string, 0, len(r.Found))
	for _, s := range r.Found {
		names = append(names, s.Name)
	}
	return names
}

// DetectSections tests every rule against the text. Presence is a plain
// boolean per category; boundaries and content are not located.
func DetectSections(t NormalizedText, rules []PatternRule) SectionReport {
	report := SectionReport{Found: make([]SectionMatch, 0, len(rules))}
	if t.Empty() {
		return report
	}

	for _, rule := range rules {
		if rule.Match(t) {
			report.Found = append(report.Found, SectionMatch{Name: rule.Name, Display: rule.Display})
		}
	}

	return report
}
