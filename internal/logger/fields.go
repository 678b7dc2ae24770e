package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldRunID is the structured log field key for the import run identifier.
	FieldRunID = "run_id"
	// FieldRecord is the structured log field key for the zero-based spreadsheet record index.
	FieldRecord = "record"
	// FieldPosition is the structured log field key for the candidate position.
	FieldPosition = "position"
	// FieldCandidate is the structured log field key for the candidate full name.
	FieldCandidate = "candidate"
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

// WithFields safely attaches the provided fields to the logger, defaulting to a
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

// CandidateFields describes one spreadsheet record. The index is always present,
// empty position or name are omitted.
func CandidateFields(index int, position, name string) []zap.Field {
	fields := []zap.Field{zap.Int(FieldRecord, index)}

	return append(fields, StringFields(
		StringField{Key: FieldPosition, Value: position},
		StringField{Key: FieldCandidate, Value: name},
	)...)
}

// WithCandidate attaches the record fields to the provided logger.
func WithCandidate(logger *zap.Logger, index int, position, name string) *zap.Logger {
	return WithFields(logger, CandidateFields(index, position, name)...)
}

// WithRunID attaches the import run identifier to the provided logger.
func WithRunID(logger *zap.Logger, runID string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldRunID, Value: runID})...)
}
