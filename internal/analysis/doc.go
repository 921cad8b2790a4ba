// Package analysis scores resume text for compatibility with automated
// screening systems.
//
// The pipeline is deterministic: text is normalized once, matched against
// static pattern tables (sections, action verbs), reduced to a SignalReport,
// and then turned into a bounded score and three ordered lists of findings.
// Pattern tables and the dictionary are read-only after construction and can
// be shared by any number of concurrent runs.
package analysis
