package history

import "time"

// Status is the lifecycle state of a recorded run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	// StatusInvalid marks runs rejected because of the manifest or the
	// rendition policy rather than a transport or tool failure.
	StatusInvalid Status = "invalid"
)

// Run is one download attempt.
type Run struct {
	ID           string
	PlaylistURL  string
	OutputPath   string
	ClipID       string
	AudioID      string
	VideoID      string
	Status       Status
	ErrorMessage string
	BytesWritten int64
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// Outcome carries the fields known once a run ends.
type Outcome struct {
	Status       Status
	ClipID       string
	AudioID      string
	VideoID      string
	BytesWritten int64
	Err          error
}
