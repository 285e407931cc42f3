package jobs

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kulhudhufushidive/site-server/internal/config"
	"github.com/kulhudhufushidive/site-server/internal/repository"
	"github.com/kulhudhufushidive/site-server/internal/service"
)

// CleanupJob sweeps state that otherwise only dies lazily: an expired admin
// session waiting for its next CheckAuth, and a service pre-fill selection
// nobody consumed.
type CleanupJob struct {
	auth      *service.AuthService
	selection *repository.SelectionRepository
	interval  time.Duration
	done      chan struct{}
}

func NewCleanupJob(auth *service.AuthService, selection *repository.SelectionRepository, interval time.Duration) *CleanupJob {
	return &CleanupJob{
		auth:      auth,
		selection: selection,
		interval:  interval,
		done:      make(chan struct{}),
	}
}

func (j *CleanupJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Msg("cleanup job started")
}

func (j *CleanupJob) Stop() {
	close(j.done)
	log.Info().Msg("cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.cleanup()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.cleanup()
		}
	}
}

func (j *CleanupJob) cleanup() {
	j.runCleanup("admin session", j.auth.SweepExpired)
	j.runCleanup("service selection", func() (int64, error) {
		return j.selection.SweepStale(config.SelectionTTL)
	})
}

func (j *CleanupJob) runCleanup(name string, fn func() (int64, error)) {
	count, err := fn()
	if err != nil {
		log.Error().Err(err).Msgf("failed to cleanup %s", name)
	} else if count > 0 {
		log.Info().Int64("count", count).Msgf("cleaned up %s", name)
	}
}
