package repository

import (
	"database/sql"
	"fmt"

	"github.com/jengzang/gpxscaler-backend-go/internal/models"
)

// UploadRepository persists uploaded route files and their summary metrics.
type UploadRepository struct {
	db *sql.DB
}

func NewUploadRepository(db *sql.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// Create stores a new upload.
func (r *UploadRepository) Create(u *models.Upload) error {
	query := `INSERT INTO uploads (id, filename, content, distance_km, ascent_m, descent_m, point_count, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, u.ID, u.Filename, u.Content, u.DistanceKm, u.AscentM, u.DescentM, u.PointCount, u.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to create upload: %w", err)
	}
	return nil
}

// GetByID returns the upload with the given id, or nil when absent.
func (r *UploadRepository) GetByID(id string) (*models.Upload, error) {
	query := `SELECT id, filename, content, distance_km, ascent_m, descent_m, point_count, uploaded_at
		FROM uploads WHERE id = ?`
	u := &models.Upload{}
	err := r.db.QueryRow(query, id).Scan(
		&u.ID, &u.Filename, &u.Content, &u.DistanceKm, &u.AscentM, &u.DescentM, &u.PointCount, &u.UploadedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get upload: %w", err)
	}
	return u, nil
}

// DeleteOlderThan removes uploads created before the cutoff (unix seconds)
// and returns how many rows were deleted.
func (r *UploadRepository) DeleteOlderThan(cutoff int64) (int64, error) {
	result, err := r.db.Exec("DELETE FROM uploads WHERE uploaded_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale uploads: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}
