package service

import (
	"log"
	"time"

	"github.com/jengzang/gpxscaler-backend-go/internal/repository"
)

const sweepInterval = 5 * time.Minute

// CleanupService removes stale uploads, outputs, and finished sessions on
// a fixed interval. Uploads and outputs live for the configured TTL;
// session progress sticks around twice as long so a client can still read
// the final state of a batch whose files already expired.
type CleanupService struct {
	uploads *repository.UploadRepository
	outputs *repository.OutputRepository
	batch   *BatchService
	ttl     time.Duration
	stop    chan struct{}
}

func NewCleanupService(uploads *repository.UploadRepository, outputs *repository.OutputRepository, batch *BatchService, ttl time.Duration) *CleanupService {
	return &CleanupService{
		uploads: uploads,
		outputs: outputs,
		batch:   batch,
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
}

// Start launches the background sweep loop.
func (s *CleanupService) Start() {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the sweep loop.
func (s *CleanupService) Stop() {
	close(s.stop)
}

func (s *CleanupService) sweep() {
	cutoff := time.Now().Add(-s.ttl).Unix()

	if n, err := s.uploads.DeleteOlderThan(cutoff); err != nil {
		log.Printf("cleanup: uploads sweep failed: %v", err)
	} else if n > 0 {
		log.Printf("cleanup: removed %d stale uploads", n)
	}

	if n, err := s.outputs.DeleteOlderThan(cutoff); err != nil {
		log.Printf("cleanup: outputs sweep failed: %v", err)
	} else if n > 0 {
		log.Printf("cleanup: removed %d stale outputs", n)
	}

	if n := s.batch.retireIdle(2 * s.ttl); n > 0 {
		log.Printf("cleanup: retired %d finished sessions", n)
	}
}
