package domain

import "time"

// JobStatus represents the status of a generation run.
// Values include JobStatusRunning, JobStatusCompleted, and JobStatusFailed.
type JobStatus string

const (
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// GenerationJob records one run of the generator and its counters.
type GenerationJob struct {
	ID            string     `gorm:"type:text;primaryKey" json:"id"`
	Variant       Variant    `gorm:"type:text;not null;index" json:"variant"`
	Status        JobStatus  `gorm:"type:text;default:running" json:"status"`
	TotalRows     int        `gorm:"default:0" json:"total_rows"`
	SkippedRows   int        `gorm:"default:0" json:"skipped_rows"`
	DuplicateRows int        `gorm:"default:0" json:"duplicate_rows"`
	SelectedItems int        `gorm:"default:0" json:"selected_items"`
	EnrichedItems int        `gorm:"default:0" json:"enriched_items"`
	FallbackItems int        `gorm:"default:0" json:"fallback_items"`
	OutputPath    string     `gorm:"type:text" json:"output_path,omitempty"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	ErrorLog      string     `json:"error_log,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName returns the database table name for GenerationJob.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (GenerationJob) TableName() string {
	return "generation_jobs"
}
