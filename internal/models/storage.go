package models

// Upload is a stored route file awaiting scaling. Content is the raw GPX
// payload as received; the aggregate columns are denormalized from it at
// upload time so listings never re-parse.
type Upload struct {
	ID         string  `json:"id" db:"id"`
	Filename   string  `json:"filename" db:"filename"`
	Content    []byte  `json:"-" db:"content"`
	DistanceKm float64 `json:"distance_km" db:"distance_km"`
	AscentM    float64 `json:"ascent_m" db:"ascent_m"`
	DescentM   float64 `json:"descent_m" db:"descent_m"`
	PointCount int     `json:"point_count" db:"point_count"`
	UploadedAt int64   `json:"uploaded_at" db:"uploaded_at"` // Unix timestamp
}

// Output is one encoded scaled route produced by a session.
type Output struct {
	ID        string `json:"id" db:"id"`
	SessionID string `json:"session_id" db:"session_id"`
	Filename  string `json:"filename" db:"filename"`
	Format    string `json:"format" db:"format"`
	Payload   []byte `json:"-" db:"payload"`
	CreatedAt int64  `json:"created_at" db:"created_at"` // Unix timestamp
}
