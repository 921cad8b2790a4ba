package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
)

// RuleSetFile is the on-disk (TOML) or inline (config map) description of
// rule-set overrides.
//
//	replace_verbs = false
//	verbs = ["optimized", "launched"]
//
//	[[section]]
//	name = "certifications"
//	display = "Certifications Section"
//	pattern = "certification|certified"
type RuleSetFile struct {
	Sections     []SectionSpec `toml:"section" mapstructure:"sections"`
	Verbs        []string      `toml:"verbs" mapstructure:"verbs"`
	ReplaceVerbs bool          `toml:"replace_verbs" mapstructure:"replace-verbs"`
}

// SectionSpec describes one section rule. A spec named like an existing
// section replaces it in place; new names are appended.
type SectionSpec struct {
	Name    string `toml:"name" mapstructure:"name"`
	Display string `toml:"display" mapstructure:"display"`
	Pattern string `toml:"pattern" mapstructure:"pattern"`
}

// LoadRuleSet reads a TOML rule-set file and merges it over the defaults.
func LoadRuleSet(path string) (*RuleSet, error) {
	var file RuleSetFile
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	rs, err := file.Merge(DefaultRuleSet())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// RuleSetFileFromMap decodes inline overrides taken from the application config.
func RuleSetFileFromMap(m map[string]any) (RuleSetFile, error) {
	var file RuleSetFile

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &file,
		ErrorUnused: true,
	})
	if err != nil {
		return file, err
	}

	if err := decoder.Decode(m); err != nil {
		return file, fmt.Errorf("decoding inline rules: %w", err)
	}

	return file, nil
}

// Merge applies the overrides to base and returns a new rule set.
func (f RuleSetFile) Merge(base *RuleSet) (*RuleSet, error) {
	if base == nil {
		base = DefaultRuleSet()
	}

	sections := base.Sections()
	for _, spec := range f.Sections {
		rule, err := NewPatternRule(spec.Name, spec.Display, spec.Pattern)
		if err != nil {
			return nil, err
		}

		replaced := false
		for i := range sections {
			if sections[i].Name == rule.Name {
				if strings.TrimSpace(spec.Display) == "" {
					rule.Display = sections[i].Display
				}
				sections[i] = rule
				replaced = true
				break
			}
		}
		if !replaced {
			sections = append(sections, rule)
		}
	}

	verbs := base.Verbs()
	if f.ReplaceVerbs {
		verbs = nil
	}
	verbs = append(verbs, f.Verbs...)

	return NewRuleSet(sections, verbs)
}
