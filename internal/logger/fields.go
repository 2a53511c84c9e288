package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// ============================================
// Standard Tracing Fields (Context level)
// These fields are propagated through the call chain
// ============================================

const (
	// FieldJobID is the generation run ID (UUID)
	FieldJobID = "job_id"

	// FieldComponent is the pipeline stage name
	FieldComponent = "component"

	// FieldVariant is the generator variant
	FieldVariant = "variant"

	// FieldMovieID is the record being processed
	FieldMovieID = "movie_id"
)

// ============================================
// Standard Metric Fields (Entry level)
// ============================================

const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldSize is the data size in bytes
	FieldSize = "size"
)
