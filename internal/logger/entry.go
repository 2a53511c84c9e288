package logger

import "context"

// Entry carries metric fields (duration_ms, count, size) for one log line.
type Entry struct {
	fields Fields
}

// With creates a new Entry with the given metric fields.
// Example: logger.With(logger.Fields{"count": 250}).WithDuration(12).Info(ctx, "Ranked rows")
func With(fields Fields) *Entry {
	return &Entry{fields: fields}
}

// With adds more fields to an existing Entry.
func (e *Entry) With(fields Fields) *Entry {
	merged := make(Fields, len(e.fields)+len(fields))
	for k, v := range e.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Entry{fields: merged}
}

// WithDuration adds a duration_ms field to the Entry.
func (e *Entry) WithDuration(ms int64) *Entry {
	return e.With(Fields{FieldDurationMs: ms})
}

// WithCount adds a count field to the Entry.
func (e *Entry) WithCount(count int) *Entry {
	return e.With(Fields{FieldCount: count})
}

// WithSize adds a size field to the Entry.
func (e *Entry) WithSize(size int) *Entry {
	return e.With(Fields{FieldSize: size})
}

// Info logs at Info level through the context's logger.
func (e *Entry) Info(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).WithFields(e.fields).Infof(format, args...)
}

// Warn logs at Warn level through the context's logger.
func (e *Entry) Warn(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).WithFields(e.fields).Warnf(format, args...)
}
