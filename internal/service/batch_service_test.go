package service

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/gpxscaler-backend-go/internal/codec"
	"github.com/jengzang/gpxscaler-backend-go/internal/database"
	"github.com/jengzang/gpxscaler-backend-go/internal/models"
	"github.com/jengzang/gpxscaler-backend-go/internal/repository"
)

const testRouteGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <name>Stage-1</name>
    <trkseg>
      <trkpt lat="48.80" lon="2.30"><ele>100</ele></trkpt>
      <trkpt lat="48.85" lon="2.35"><ele>180</ele></trkpt>
      <trkpt lat="48.90" lon="2.40"><ele>140</ele></trkpt>
      <trkpt lat="48.95" lon="2.45"><ele>220</ele></trkpt>
    </trkseg>
  </trk>
</gpx>`

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUpload(t *testing.T, repo *repository.UploadRepository, id string, content []byte) {
	t.Helper()
	require.NoError(t, repo.Create(&models.Upload{
		ID:         id,
		Filename:   id + ".gpx",
		Content:    content,
		UploadedAt: time.Now().Unix(),
	}))
}

func waitDone(t *testing.T, batch *BatchService, sessionID string) *models.ProgressSnapshot {
	t.Helper()
	var snap *models.ProgressSnapshot
	require.Eventually(t, func() bool {
		s, err := batch.Snapshot(sessionID)
		if err != nil {
			return false
		}
		snap = s
		return s.Status != models.SessionStatusProcessing
	}, 10*time.Second, 20*time.Millisecond)
	return snap
}

func TestBatchPartialFailure(t *testing.T) {
	db := testDB(t)
	uploads := repository.NewUploadRepository(db)
	outputs := repository.NewOutputRepository(db)
	batch := NewBatchService(uploads, outputs)

	seedUpload(t, uploads, "f1", []byte(testRouteGPX))
	seedUpload(t, uploads, "f2", []byte("this is not gpx"))
	seedUpload(t, uploads, "f3", []byte(testRouteGPX))

	items := []models.BatchItem{
		{FileID: "f1", Filename: "f1.gpx"},
		{FileID: "f2", Filename: "f2.gpx"},
		{FileID: "f3", Filename: "f3.gpx"},
	}
	opts := BatchOptions{
		Config: models.ScaleConfig{DistanceScale: 0.5, AscentScale: 0.5},
		Rider:  models.RiderParams{PowerWatts: 250, WeightKg: 75},
		Format: codec.FormatGPX,
	}

	sessionID, err := batch.Submit(items, opts)
	require.NoError(t, err)

	snap := waitDone(t, batch, sessionID)
	assert.Equal(t, models.SessionStatusCompleted, snap.Status)
	assert.Equal(t, 3, snap.TotalFiles)

	assert.Equal(t, models.FileStatusCompleted, snap.Files["f1"].Status)
	assert.Equal(t, models.FileStatusFailed, snap.Files["f2"].Status)
	assert.NotEmpty(t, snap.Files["f2"].Error)
	assert.Equal(t, models.FileStatusCompleted, snap.Files["f3"].Status)

	// Completed files carry a result with a downloadable output.
	result := snap.Files["f1"].Result
	require.NotNil(t, result)
	assert.InDelta(t, 0.5, result.DistanceScale, 1e-9)
	assert.Greater(t, result.DurationHours, 0.0)
	assert.Less(t, result.DurationHours, result.OriginalDurationHours)

	out, err := outputs.GetByID(result.OutputID)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, sessionID, out.SessionID)

	points, _, err := codec.ParseGPX(out.Payload)
	require.NoError(t, err)
	assert.Len(t, points, 4)
}

func TestBatchTimedOutput(t *testing.T) {
	db := testDB(t)
	uploads := repository.NewUploadRepository(db)
	outputs := repository.NewOutputRepository(db)
	batch := NewBatchService(uploads, outputs)

	seedUpload(t, uploads, "f1", []byte(testRouteGPX))

	sessionID, err := batch.Submit(
		[]models.BatchItem{{FileID: "f1", Filename: "f1.gpx"}},
		BatchOptions{
			Config:    models.ScaleConfig{DistanceScale: 1, AscentScale: 1},
			Rider:     models.RiderParams{PowerWatts: 250, WeightKg: 75},
			Format:    codec.FormatGPX,
			AddTiming: true,
		},
	)
	require.NoError(t, err)

	snap := waitDone(t, batch, sessionID)
	result := snap.Files["f1"].Result
	require.NotNil(t, result)

	out, err := outputs.GetByID(result.OutputID)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Contains(t, string(out.Payload), "<time>")
}

func TestBatchSkipsUnknownUpload(t *testing.T) {
	db := testDB(t)
	uploads := repository.NewUploadRepository(db)
	batch := NewBatchService(uploads, repository.NewOutputRepository(db))

	sessionID, err := batch.Submit(
		[]models.BatchItem{{FileID: "ghost", Filename: "ghost.gpx"}},
		BatchOptions{
			Config: models.ScaleConfig{DistanceScale: 1, AscentScale: 1},
			Rider:  models.RiderParams{PowerWatts: 250, WeightKg: 75},
		},
	)
	require.NoError(t, err)

	snap := waitDone(t, batch, sessionID)
	assert.Equal(t, models.SessionStatusCompleted, snap.Status)
	assert.Equal(t, models.FileStatusFailed, snap.Files["ghost"].Status)
}

func TestBatchSubmitValidation(t *testing.T) {
	db := testDB(t)
	batch := NewBatchService(repository.NewUploadRepository(db), repository.NewOutputRepository(db))

	_, err := batch.Submit(nil, BatchOptions{
		Config: models.ScaleConfig{DistanceScale: 1, AscentScale: 1},
	})
	assert.Error(t, err)

	_, err = batch.Submit(
		[]models.BatchItem{{FileID: "f1", Filename: "f1.gpx"}},
		BatchOptions{Config: models.ScaleConfig{DistanceScale: -1, AscentScale: 1}},
	)
	assert.Error(t, err)
}

func TestBatchCancelAfterCompletion(t *testing.T) {
	db := testDB(t)
	uploads := repository.NewUploadRepository(db)
	batch := NewBatchService(uploads, repository.NewOutputRepository(db))

	seedUpload(t, uploads, "f1", []byte(testRouteGPX))
	sessionID, err := batch.Submit(
		[]models.BatchItem{{FileID: "f1", Filename: "f1.gpx"}},
		BatchOptions{
			Config: models.ScaleConfig{DistanceScale: 1, AscentScale: 1},
			Rider:  models.RiderParams{PowerWatts: 250, WeightKg: 75},
		},
	)
	require.NoError(t, err)
	waitDone(t, batch, sessionID)

	err = batch.Cancel(sessionID)
	assert.Error(t, err)
}

func TestSnapshotUnknownSession(t *testing.T) {
	db := testDB(t)
	batch := NewBatchService(repository.NewUploadRepository(db), repository.NewOutputRepository(db))

	_, err := batch.Snapshot("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = batch.Cancel("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPreviewUnknownUpload(t *testing.T) {
	db := testDB(t)
	svc := NewScaleService(repository.NewUploadRepository(db))

	_, err := svc.Preview("missing")
	assert.ErrorIs(t, err, ErrUploadNotFound)

	_, err = svc.PreviewScaled("missing",
		models.ScaleConfig{DistanceScale: 1, AscentScale: 1},
		models.RiderParams{PowerWatts: 250, WeightKg: 75})
	assert.ErrorIs(t, err, ErrUploadNotFound)
}

func TestOutputName(t *testing.T) {
	cases := []struct {
		base, orig string
		dist, asc  float64
		want       string
	}{
		{"", "stage-3.gpx", 0.5, 0.5, "stage-3_scaled_0p5.gpx"},
		{"tour", "stage-3.gpx", 0.5, 0.5, "tour_stage-3_scaled_0p5.gpx"},
		{"", "ride.gpx", 0.5, 2, "ride_scaled_0p5_elev_2.gpx"},
		{"alps", "morning ride.gpx", 1, 1, "alps_morning ride_scaled_1.gpx"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%s/%s", c.base, c.orig), func(t *testing.T) {
			assert.Equal(t, c.want, OutputName(c.base, c.orig, c.dist, c.asc, ".gpx"))
		})
	}
}

func TestStageNumber(t *testing.T) {
	assert.Equal(t, 3, StageNumber("stage-3.gpx"))
	assert.Equal(t, 12, StageNumber("Tour_Stage 12.gpx"))
	assert.Equal(t, -1, StageNumber("ride.gpx"))
}
