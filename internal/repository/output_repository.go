package repository

import (
	"database/sql"
	"fmt"

	"github.com/jengzang/gpxscaler-backend-go/internal/models"
)

// OutputRepository persists scaled route files produced by batch runs.
type OutputRepository struct {
	db *sql.DB
}

func NewOutputRepository(db *sql.DB) *OutputRepository {
	return &OutputRepository{db: db}
}

// Create stores a generated output file.
func (r *OutputRepository) Create(o *models.Output) error {
	query := `INSERT INTO outputs (id, session_id, filename, format, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, o.ID, o.SessionID, o.Filename, o.Format, o.Payload, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	return nil
}

// GetByID returns the output with the given id, or nil when absent.
func (r *OutputRepository) GetByID(id string) (*models.Output, error) {
	query := `SELECT id, session_id, filename, format, payload, created_at FROM outputs WHERE id = ?`
	o := &models.Output{}
	err := r.db.QueryRow(query, id).Scan(&o.ID, &o.SessionID, &o.Filename, &o.Format, &o.Payload, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get output: %w", err)
	}
	return o, nil
}

// GetByIDs returns the outputs matching the given ids, preserving request
// order and skipping ids that do not exist.
func (r *OutputRepository) GetByIDs(ids []string) ([]*models.Output, error) {
	outputs := make([]*models.Output, 0, len(ids))
	for _, id := range ids {
		o, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		if o != nil {
			outputs = append(outputs, o)
		}
	}
	return outputs, nil
}

// DeleteOlderThan removes outputs created before the cutoff (unix seconds)
// and returns how many rows were deleted.
func (r *OutputRepository) DeleteOlderThan(cutoff int64) (int64, error) {
	result, err := r.db.Exec("DELETE FROM outputs WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale outputs: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}
