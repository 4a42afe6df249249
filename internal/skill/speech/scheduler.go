package speech

import (
	"context"
	"sync"
	"time"

	skillerrors "timeskill/internal/common/errors"
	"timeskill/internal/common/logger"
	"timeskill/internal/common/metrics"
)

const refreshTimeout = 30 * time.Second

// BuildFunc produces the dialog key and substitutions to pre-cache. The
// scheduler always pre-caches the no-location current-time response.
type BuildFunc func(ctx context.Context) (key string, data map[string]string, err error)

// Scheduler keeps the current-time speech artifact warm by recomputing it
// once per minute boundary. At most one refresh is ever pending: each run
// cancels the previous timer and re-arms before doing the fallible work,
// so a failed refresh never leaves future minutes unscheduled.
type Scheduler struct {
	speaker  Speaker
	build    BuildFunc
	cacheKey string
	nowFn    func() time.Time
	logger   logger.Logger

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func NewScheduler(speaker Speaker, build BuildFunc, cacheKey string, log logger.Logger) *Scheduler {
	return &Scheduler{
		speaker:  speaker,
		build:    build,
		cacheKey: cacheKey,
		nowFn:    time.Now,
		logger:   log.WithFields(map[string]interface{}{"component": "tts-scheduler"}),
	}
}

// Kick runs a refresh immediately and re-arms for the next minute boundary.
// The skill calls it on startup and after every live current-time response.
func (s *Scheduler) Kick() {
	s.refresh()
}

// Stop cancels the pending refresh. Subsequent Kicks are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
}

func (s *Scheduler) refresh() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	next := nextRefresh(s.nowFn())
	s.timer = time.AfterFunc(time.Until(next), s.refresh)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	key, data, err := s.build(ctx)
	if err == nil {
		err = s.speaker.PreCache(ctx, key, data, s.cacheKey)
	}
	if err != nil {
		metrics.CacheRefreshes.WithLabelValues("error").Inc()
		s.logger.WithError(skillerrors.NewCacheRefreshError(err)).Warn(
			"speech pre-cache refresh failed", nil)
		return
	}
	metrics.CacheRefreshes.WithLabelValues("ok").Inc()
}

// pending reports whether a refresh is armed.
func (s *Scheduler) pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil && !s.stopped
}

// nextRefresh returns the next minute boundary after now.
func nextRefresh(now time.Time) time.Time {
	return now.Truncate(time.Minute).Add(time.Minute)
}
