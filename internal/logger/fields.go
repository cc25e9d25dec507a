package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldVCFirm is the structured log field key for the venture firm being served.
	FieldVCFirm = "vc_firm"
	// FieldStartup is the structured log field key for the startup being scored.
	FieldStartup = "startup"
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

// WithFields safely attaches the provided fields to the logger.
// A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields returns the fields that identify a scoring subject.
func CommonFields(vcFirm, startup string) []zap.Field {
	return StringFields(
		StringField{Key: FieldVCFirm, Value: vcFirm},
		StringField{Key: FieldStartup, Value: startup},
	)
}

// WithCommonFields attaches the firm and startup fields to the provided logger.
func WithCommonFields(logger *zap.Logger, vcFirm, startup string) *zap.Logger {
	return WithFields(logger, CommonFields(vcFirm, startup)...)
}
