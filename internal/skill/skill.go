// Package skill wires the response builder to the speech and display
// capabilities and handles the two time intents.
package skill

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	skillerrors "timeskill/internal/common/errors"
	"timeskill/internal/common/logger"
	"timeskill/internal/common/metrics"
	"timeskill/internal/common/observability"
	"timeskill/internal/skill/dialog"
	"timeskill/internal/skill/display"
	"timeskill/internal/skill/response"
	"timeskill/internal/skill/speech"
)

const (
	IntentCurrentTime = "current-time"
	IntentFutureTime  = "future-time"
)

// Display is the injected display capability. Rendering paths are selected
// by capability, not by platform-name strings: a display that implements
// SegmentedDisplay gets glyphs, one that implements GraphicalDisplay gets a
// structured payload, anything else is left alone.
type Display interface {
	Connected() bool
}

// SegmentedDisplay renders positioned lighting codes on a faceplate.
type SegmentedDisplay interface {
	Display
	DrawGlyphs(glyphs []display.Glyph) error
	Clear() error
}

// GraphicalDisplay renders a structured time payload on a screen.
type GraphicalDisplay interface {
	Display
	ShowTime(hour, minute, location string) error
	Release() error
}

// AlarmStatus reports whether an alarm is set, for the faceplate indicator.
type AlarmStatus interface {
	Active(ctx context.Context) bool
}

type Config struct {
	Format24Hour bool
	// CacheKey is the stable key for the pre-synthesized no-location
	// current-time artifact. Empty disables pre-caching.
	CacheKey string
}

// TimeSkill answers current- and future-time requests. All collaborators
// are constructor parameters; there is no implicit registry.
type TimeSkill struct {
	config    *Config
	builder   *response.Builder
	speaker   speech.Speaker
	scheduler *speech.Scheduler
	disp      Display
	alarms    AlarmStatus
	obs       *observability.Observability
	logger    logger.Logger
}

func New(config *Config, builder *response.Builder, speaker speech.Speaker, disp Display, alarms AlarmStatus, obs *observability.Observability, log logger.Logger) *TimeSkill {
	s := &TimeSkill{
		config:  config,
		builder: builder,
		speaker: speaker,
		disp:    disp,
		alarms:  alarms,
		obs:     obs,
		logger:  log.WithFields(map[string]interface{}{"skill": "time"}),
	}

	if config.CacheKey != "" {
		s.scheduler = speech.NewScheduler(speaker, s.buildCacheEntry, config.CacheKey, log)
	}
	return s
}

// Start arms the pre-cache scheduler and warms the cache once.
func (s *TimeSkill) Start() {
	if s.scheduler != nil {
		s.scheduler.Kick()
	}
}

// Close cancels the pending pre-cache refresh.
func (s *TimeSkill) Close() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// HandleCurrentTime responds to a request for the current time, e.g.
// "what time is it in Tokyo".
func (s *TimeSkill) HandleCurrentTime(ctx context.Context, utterance string) error {
	start := time.Now()
	log := s.requestLogger(IntentCurrentTime, utterance)

	resp, err := s.builder.BuildCurrentTime(ctx, utterance)
	if err != nil {
		return s.recover(ctx, IntentCurrentTime, resp.RequestedLocation, err, log)
	}

	// Only the no-location phrasing is minute-stable enough to cache.
	cacheKey := ""
	if resp.RequestedLocation == "" {
		cacheKey = s.config.CacheKey
	}

	if err := s.respond(ctx, resp, cacheKey); err != nil {
		s.recordFailure(ctx, IntentCurrentTime, err)
		return err
	}

	if s.scheduler != nil {
		s.scheduler.Kick()
	}
	s.recordSuccess(ctx, IntentCurrentTime, start)
	log.Info("request handled", map[string]interface{}{"dialogKey": resp.DialogKey})
	return nil
}

// HandleFutureTime responds to a request for a future time, e.g. "what
// time will it be in 8 hours". Future framing with no parseable offset
// falls back to the current-time protocol.
func (s *TimeSkill) HandleFutureTime(ctx context.Context, utterance string) error {
	start := time.Now()
	log := s.requestLogger(IntentFutureTime, utterance)

	resp, err := s.builder.BuildFutureTime(ctx, utterance)
	if err != nil {
		return s.recover(ctx, IntentFutureTime, resp.RequestedLocation, err, log)
	}

	if resp.DateTime == nil {
		log.Info("no offset found, falling back to current time", nil)
		return s.HandleCurrentTime(ctx, utterance)
	}

	if err := s.respond(ctx, resp, ""); err != nil {
		s.recordFailure(ctx, IntentFutureTime, err)
		return err
	}

	s.recordSuccess(ctx, IntentFutureTime, start)
	log.Info("request handled", map[string]interface{}{"dialogKey": resp.DialogKey})
	return nil
}

// recover produces the location-not-found dialog for unresolvable places.
// Any other error propagates; the skill never silently answers wrong.
func (s *TimeSkill) recover(ctx context.Context, intent, requestedLocation string, err error, log logger.Logger) error {
	if !errors.Is(err, skillerrors.ErrLocationNotFound) {
		s.recordFailure(ctx, intent, err)
		return err
	}

	log.Info("requested location not found", map[string]interface{}{
		"location": requestedLocation,
	})
	metrics.RequestsFailed.WithLabelValues(intent, string(skillerrors.ErrCodeLocationNotFound)).Inc()
	s.obs.RecordRequest(ctx, intent, "location_not_found")

	return s.speaker.Speak(ctx, dialog.KeyLocationNotFound, map[string]string{
		"location": requestedLocation,
	}, "")
}

// respond displays the time, then speaks it.
func (s *TimeSkill) respond(ctx context.Context, resp *response.Response, cacheKey string) error {
	displayTime := display.FormatTime(*resp.DateTime, s.config.Format24Hour)
	s.showTime(ctx, displayTime, resp)

	if err := s.speaker.Speak(ctx, resp.DialogKey, resp.DialogData, cacheKey); err != nil {
		return err
	}

	s.releaseDisplay()
	return nil
}

func (s *TimeSkill) showTime(ctx context.Context, displayTime string, resp *response.Response) {
	if s.disp == nil || !s.disp.Connected() {
		return
	}

	switch d := s.disp.(type) {
	case SegmentedDisplay:
		alarm := s.alarms != nil && s.alarms.Active(ctx)
		if err := d.DrawGlyphs(display.LayoutTime(displayTime, alarm)); err != nil {
			s.logger.WithError(err).Warn("faceplate render failed", nil)
		}
	case GraphicalDisplay:
		hour, minute := splitDisplayTime(displayTime)
		location := ""
		if resp.Geolocation != nil {
			location = resp.Geolocation.DisplayName()
		}
		if err := d.ShowTime(hour, minute, location); err != nil {
			s.logger.WithError(err).Warn("display render failed", nil)
		}
	}
}

func (s *TimeSkill) releaseDisplay() {
	if s.disp == nil || !s.disp.Connected() {
		return
	}
	switch d := s.disp.(type) {
	case SegmentedDisplay:
		if err := d.Clear(); err != nil {
			s.logger.WithError(err).Warn("faceplate clear failed", nil)
		}
	case GraphicalDisplay:
		if err := d.Release(); err != nil {
			s.logger.WithError(err).Warn("display release failed", nil)
		}
	}
}

// buildCacheEntry computes the no-location current-time dialog for the
// pre-cache scheduler. The empty utterance always selects that branch.
func (s *TimeSkill) buildCacheEntry(ctx context.Context) (string, map[string]string, error) {
	resp, err := s.builder.BuildCurrentTime(ctx, "")
	if err != nil {
		return "", nil, err
	}
	return resp.DialogKey, resp.DialogData, nil
}

func (s *TimeSkill) requestLogger(intent, utterance string) logger.Logger {
	return s.logger.WithFields(map[string]interface{}{
		"requestId": uuid.NewString(),
		"intent":    intent,
		"utterance": utterance,
	})
}

func (s *TimeSkill) recordSuccess(ctx context.Context, intent string, start time.Time) {
	metrics.RequestsHandled.WithLabelValues(intent).Inc()
	metrics.RequestDuration.WithLabelValues(intent).Observe(time.Since(start).Seconds())
	s.obs.RecordRequest(ctx, intent, "ok")
	s.obs.RecordRequestDuration(ctx, time.Since(start), intent)
}

func (s *TimeSkill) recordFailure(ctx context.Context, intent string, err error) {
	code := "INTERNAL"
	var stdErr *skillerrors.StandardError
	if errors.As(err, &stdErr) {
		code = string(stdErr.Code)
	}
	metrics.RequestsFailed.WithLabelValues(intent, code).Inc()
	s.obs.RecordRequest(ctx, intent, "error")
}

func splitDisplayTime(displayTime string) (string, string) {
	parts := strings.SplitN(displayTime, ":", 2)
	if len(parts) != 2 {
		return displayTime, ""
	}
	return parts[0], parts[1]
}
