package service

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jengzang/gpxscaler-backend-go/internal/codec"
	"github.com/jengzang/gpxscaler-backend-go/internal/models"
	"github.com/jengzang/gpxscaler-backend-go/internal/physics"
	"github.com/jengzang/gpxscaler-backend-go/internal/repository"
	"github.com/jengzang/gpxscaler-backend-go/internal/scaler"
)

// ErrSessionNotFound marks a progress or cancel request for an unknown
// session id.
var ErrSessionNotFound = errors.New("session not found")

// BatchOptions carries everything a batch run needs beyond its file list.
type BatchOptions struct {
	Config    models.ScaleConfig
	Rider     models.RiderParams
	Format    codec.Format
	BaseName  string
	AddTiming bool
}

type session struct {
	mu          sync.RWMutex
	id          string
	status      string
	items       []models.BatchItem
	files       map[string]models.FileState
	currentIdx  int
	currentName string
	touchedAt   time.Time

	cancelled atomic.Bool
}

// BatchService runs scale jobs over sets of uploaded files. Each Submit
// starts one background worker; progress is observable per file through
// Snapshot and the whole run can be cancelled between files.
type BatchService struct {
	mu       sync.RWMutex
	sessions map[string]*session

	uploads *repository.UploadRepository
	outputs *repository.OutputRepository
}

func NewBatchService(uploads *repository.UploadRepository, outputs *repository.OutputRepository) *BatchService {
	return &BatchService{
		sessions: make(map[string]*session),
		uploads:  uploads,
		outputs:  outputs,
	}
}

// Submit validates the request, registers a session with every file
// pending, and starts the background run. It returns the session id.
func (s *BatchService) Submit(items []models.BatchItem, opts BatchOptions) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("no files to process")
	}
	if opts.Config.DistanceScale <= 0 || opts.Config.AscentScale <= 0 {
		return "", fmt.Errorf("%w: scale factors must be positive", scaler.ErrInvalidConfig)
	}
	if opts.Format == "" {
		opts.Format = codec.FormatGPX
	}

	sess := &session{
		id:        uuid.NewString(),
		status:    models.SessionStatusProcessing,
		items:     items,
		files:     make(map[string]models.FileState, len(items)),
		touchedAt: time.Now(),
	}
	for _, item := range items {
		sess.files[item.FileID] = models.FileState{
			Status:   models.FileStatusPending,
			Filename: item.Filename,
		}
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	go s.run(sess, opts)
	return sess.id, nil
}

func (s *BatchService) run(sess *session, opts BatchOptions) {
	for i, item := range sess.items {
		if sess.cancelled.Load() {
			break
		}

		sess.mu.Lock()
		sess.currentIdx = i
		sess.currentName = item.Filename
		state := sess.files[item.FileID]
		state.Status = models.FileStatusProcessing
		sess.files[item.FileID] = state
		sess.touchedAt = time.Now()
		sess.mu.Unlock()

		result, err := s.processItem(sess.id, item, opts)

		sess.mu.Lock()
		state = sess.files[item.FileID]
		if err != nil {
			state.Status = models.FileStatusFailed
			state.Error = err.Error()
			log.Printf("batch %s: %s failed: %v", sess.id, item.Filename, err)
		} else {
			state.Status = models.FileStatusCompleted
			state.Result = result
		}
		sess.files[item.FileID] = state
		sess.touchedAt = time.Now()
		sess.mu.Unlock()
	}

	sess.mu.Lock()
	if sess.cancelled.Load() {
		sess.status = models.SessionStatusCancelled
	} else {
		sess.status = models.SessionStatusCompleted
	}
	sess.touchedAt = time.Now()
	sess.mu.Unlock()
}

func (s *BatchService) processItem(sessionID string, item models.BatchItem, opts BatchOptions) (*models.ScaleResult, error) {
	up, err := s.uploads.GetByID(item.FileID)
	if err != nil {
		return nil, err
	}
	if up == nil {
		return nil, fmt.Errorf("upload %s not found", item.FileID)
	}

	track, origName, err := trackFromUpload(up)
	if err != nil {
		return nil, err
	}

	cfg := opts.Config
	effDist := scaler.EffectiveDistanceScale(track.TotalDistance, cfg.DistanceScale, cfg.MinDistanceKm)
	effAscent := scaler.EffectiveAscentScale(track.TotalAscent, cfg.AscentScale, cfg.MaxAscentM)

	scaled, err := scaler.Transform(track, cfg)
	if err != nil {
		return nil, err
	}

	origHours, err := physics.EstimateTrack(track, opts.Rider)
	if err != nil {
		return nil, err
	}
	hours, err := physics.EstimateTrack(scaled, opts.Rider)
	if err != nil {
		return nil, err
	}

	var times []time.Time
	if opts.AddTiming {
		start, err := physics.RideStartTime(scaled, opts.Rider, time.Now())
		if err != nil {
			return nil, err
		}
		times, err = physics.PointTimes(scaled, opts.Rider, start)
		if err != nil {
			return nil, err
		}
	}

	name := OutputName(opts.BaseName, origName, effDist, effAscent, opts.Format.Ext())
	payload, err := codec.Encode(opts.Format, scaled, name, times)
	if err != nil {
		return nil, err
	}

	out := &models.Output{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Filename:  name,
		Format:    string(opts.Format),
		Payload:   payload,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.outputs.Create(out); err != nil {
		return nil, err
	}

	return &models.ScaleResult{
		OutputID:              out.ID,
		OutputName:            name,
		DistanceKm:            scaled.TotalDistance,
		AscentM:               scaled.TotalAscent,
		DescentM:              scaled.TotalDescent,
		DistanceScale:         effDist,
		AscentScale:           effAscent,
		DurationHours:         hours,
		OriginalDurationHours: origHours,
	}, nil
}

// Snapshot returns a copy of the session's progress state.
func (s *BatchService) Snapshot(sessionID string) (*models.ProgressSnapshot, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	sess.mu.RLock()
	defer sess.mu.RUnlock()

	files := make(map[string]models.FileState, len(sess.files))
	for id, st := range sess.files {
		if st.Result != nil {
			r := *st.Result
			st.Result = &r
		}
		files[id] = st
	}

	snap := &models.ProgressSnapshot{
		Status:     sess.status,
		TotalFiles: len(sess.items),
		Files:      files,
	}
	if sess.status == models.SessionStatusProcessing {
		snap.CurrentFile = sess.currentIdx + 1
		snap.CurrentFilename = sess.currentName
	} else {
		snap.CurrentFile = len(sess.items)
	}
	return snap, nil
}

// Cancel asks a running session to stop after the file it is on. A session
// that already finished cannot be cancelled.
func (s *BatchService) Cancel(sessionID string) error {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	sess.mu.RLock()
	status := sess.status
	sess.mu.RUnlock()
	if status != models.SessionStatusProcessing {
		return fmt.Errorf("session %s already %s", sessionID, status)
	}

	sess.cancelled.Store(true)
	return nil
}

// retireIdle drops finished sessions untouched for longer than maxIdle and
// returns how many were removed. Running sessions are never retired.
func (s *BatchService) retireIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		sess.mu.RLock()
		done := sess.status != models.SessionStatusProcessing && sess.touchedAt.Before(cutoff)
		sess.mu.RUnlock()
		if done {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
