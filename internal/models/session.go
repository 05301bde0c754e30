package models

// Per-file statuses within a scale session.
const (
	FileStatusPending    = "pending"
	FileStatusProcessing = "processing"
	FileStatusCompleted  = "completed"
	FileStatusFailed     = "failed"
)

// Session statuses. A session never fails as a whole: per-file failures are
// reported on the file entries and the session still completes.
const (
	SessionStatusProcessing = "processing"
	SessionStatusCompleted  = "completed"
	SessionStatusCancelled  = "cancelled"
)

// BatchItem identifies one uploaded file within a scale session.
type BatchItem struct {
	FileID   string `json:"id"`
	Filename string `json:"filename"`
}

// ScaleResult summarizes one successfully scaled file. The scale factors are
// the effective ones actually applied, after the minimum-distance floor and
// maximum-ascent cap.
type ScaleResult struct {
	OutputID              string  `json:"output_id"`
	OutputName            string  `json:"output_name"`
	DistanceKm            float64 `json:"distance_km"`
	AscentM               float64 `json:"ascent_m"`
	DescentM              float64 `json:"descent_m"`
	DistanceScale         float64 `json:"distance_scale"`
	AscentScale           float64 `json:"ascent_scale"`
	DurationHours         float64 `json:"duration_hours"`
	OriginalDurationHours float64 `json:"original_duration_hours"`
}

// FileState is the per-file progress entry exposed to pollers.
type FileState struct {
	Status   string       `json:"status"`
	Filename string       `json:"filename"`
	Error    string       `json:"error,omitempty"`
	Result   *ScaleResult `json:"result,omitempty"`
}

// ProgressSnapshot is a point-in-time copy of a session's progress.
// CurrentFile is 1-based; it stays at the last processed index once the
// session is terminal.
type ProgressSnapshot struct {
	Status          string               `json:"status"`
	CurrentFile     int                  `json:"current_file"`
	TotalFiles      int                  `json:"total_files"`
	CurrentFilename string               `json:"current_filename,omitempty"`
	Files           map[string]FileState `json:"files"`
}
