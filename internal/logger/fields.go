package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldRunID is the structured log field key for the analysis run identifier.
	FieldRunID = "run_id"
	// FieldPath is the structured log field key for the analyzed document path.
	FieldPath = "document_path"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger, defaulting to a
// no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// DocumentFields returns the fields identifying one analysis run.
// Empty values are dropped; text-only runs have no path.
func DocumentFields(runID, path string) []zap.Field {
	return StringFields(
		StringField{Key: FieldRunID, Value: runID},
		StringField{Key: FieldPath, Value: path},
	)
}

// WithDocumentFields scopes the logger to a single analysis run.
func WithDocumentFields(logger *zap.Logger, runID, path string) *zap.Logger {
	return WithFields(logger, DocumentFields(runID, path)...)
}
