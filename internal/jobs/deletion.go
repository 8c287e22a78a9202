package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/samrambhak/community-server-go/internal/metrics"
)

// DuePurger purges every account whose grace period has elapsed.
type DuePurger interface {
	ProcessDue(ctx context.Context) (int, error)
}

// DeletionScheduler runs the account purge on a cron schedule. Runs never
// overlap: a tick that fires while the previous purge is still working is
// skipped.
type DeletionScheduler struct {
	purger  DuePurger
	cron    *cron.Cron
	timeout time.Duration
}

// NewDeletionScheduler parses schedule with a leading seconds field, e.g.
// "0 */15 * * * *".
func NewDeletionScheduler(purger DuePurger, schedule string, timeout time.Duration) (*DeletionScheduler, error) {
	s := &DeletionScheduler{
		purger:  purger,
		timeout: timeout,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
	}
	if _, err := s.cron.AddFunc(schedule, s.RunOnce); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *DeletionScheduler) Start() {
	s.cron.Start()
	log.Info().Msg("deletion scheduler started")
}

// Stop waits for a running purge to finish.
func (s *DeletionScheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("deletion scheduler stopped")
}

// RunOnce purges due accounts once.
func (s *DeletionScheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	purged, err := s.purger.ProcessDue(ctx)
	if err != nil {
		metrics.BackgroundJobRuns.WithLabelValues("account_deletion", "error").Inc()
		log.Error().Err(err).Int("purged", purged).Msg("scheduled account deletion failed")
		return
	}
	metrics.BackgroundJobRuns.WithLabelValues("account_deletion", "ok").Inc()
	if purged > 0 {
		log.Info().Int("purged", purged).Msg("purged scheduled account deletions")
	}
}
