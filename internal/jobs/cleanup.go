package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/samrambhak/community-server-go/internal/metrics"
)

// ExpiredSessionDeleter removes sessions that are past expiry or signed out.
type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

type CleanupJob struct {
	sessions ExpiredSessionDeleter
	interval time.Duration
	done     chan struct{}
}

func NewCleanupJob(sessions ExpiredSessionDeleter, interval time.Duration) *CleanupJob {
	return &CleanupJob{
		sessions: sessions,
		interval: interval,
		done:     make(chan struct{}),
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
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	j.runCleanup(ctx, "sessions", j.sessions.DeleteExpired)
}

func (j *CleanupJob) runCleanup(ctx context.Context, name string, fn func(context.Context) (int64, error)) {
	count, err := fn(ctx)
	if err != nil {
		metrics.BackgroundJobRuns.WithLabelValues("cleanup_"+name, "error").Inc()
		log.Error().Err(err).Msgf("failed to cleanup %s", name)
		return
	}
	metrics.BackgroundJobRuns.WithLabelValues("cleanup_"+name, "ok").Inc()
	if count > 0 {
		log.Info().Int64("count", count).Msgf("cleaned up %s", name)
	}
}
