// Package response composes extraction, geolocation and time computation
// into the dialog selection for one request.
package response

import (
	"context"
	"time"

	"timeskill/internal/common/logger"
	"timeskill/internal/skill/clock"
	"timeskill/internal/skill/dialog"
	"timeskill/internal/skill/display"
	"timeskill/internal/skill/geolocation"
	"timeskill/internal/skill/parse"
)

type Config struct {
	Lang         string
	Format24Hour bool
}

// Builder is the response-construction orchestrator. All collaborators are
// injected; the builder is stateless across calls.
type Builder struct {
	config    *Config
	durations *parse.DurationExtractor
	locations *parse.LocationExtractor
	resolver  geolocation.Resolver
	clock     *clock.Clock
	logger    logger.Logger
}

func NewBuilder(config *Config, resolver geolocation.Resolver, clk *clock.Clock, log logger.Logger) *Builder {
	return &Builder{
		config:    config,
		durations: parse.NewDurationExtractor(config.Lang),
		locations: parse.NewLocationExtractor(config.Lang),
		resolver:  resolver,
		clock:     clk,
		logger:    log.WithFields(map[string]interface{}{"component": "response-builder"}),
	}
}

// BuildCurrentTime answers a current-time request. The location pattern
// runs against the full utterance; current-time requests carry no offset
// to strip. An empty utterance is valid (used for pre-caching) and always
// takes the no-location branch.
//
// On a location that cannot be resolved the returned error matches
// errors.ErrLocationNotFound and the Response still carries
// RequestedLocation for the not-found dialog.
func (b *Builder) BuildCurrentTime(ctx context.Context, utterance string) (*Response, error) {
	resp := &Response{}

	geo, err := b.resolveLocation(ctx, resp, utterance)
	if err != nil {
		return resp, err
	}

	now, err := b.now(geo)
	if err != nil {
		return resp, err
	}

	resp.DateTime = &now
	resp.Geolocation = geo
	b.selectDialog(resp, dialog.KeyCurrentTime, dialog.KeyCurrentTimeLocation)
	return resp, nil
}

// BuildFutureTime answers a future-time request. The offset is stripped
// first so the location pattern cannot capture phrases like "in 5 hours";
// the location pattern then runs on the remainder. A future-framed request
// with no parseable offset leaves DateTime nil, signaling the caller to
// fall back to the current-time protocol; it is not an error.
func (b *Builder) BuildFutureTime(ctx context.Context, utterance string) (*Response, error) {
	resp := &Response{}

	remainder, duration := b.durations.Extract(utterance)
	if duration.IsZero() {
		b.logger.Debug("future framing without parseable offset", map[string]interface{}{
			"utterance": utterance,
		})
		return resp, nil
	}

	geo, err := b.resolveLocation(ctx, resp, remainder)
	if err != nil {
		return resp, err
	}

	base, err := b.now(geo)
	if err != nil {
		return resp, err
	}

	target := clock.Compute(base, duration)
	resp.DateTime = &target
	resp.Geolocation = geo
	b.selectDialog(resp, dialog.KeyFutureTime, dialog.KeyFutureTimeLocation)
	return resp, nil
}

// resolveLocation extracts an optional location phrase and resolves it.
// RequestedLocation is recorded before resolution so it survives a failed
// lookup. No phrase means "current device location" and returns nil.
func (b *Builder) resolveLocation(ctx context.Context, resp *Response, text string) (*geolocation.Geolocation, error) {
	name, ok := b.locations.Extract(text)
	if !ok {
		return nil, nil
	}

	resp.RequestedLocation = name
	geo, err := b.resolver.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	return geo, nil
}

func (b *Builder) now(geo *geolocation.Geolocation) (time.Time, error) {
	tzID := ""
	if geo != nil {
		tzID = geo.Timezone
	}
	return b.clock.Now(tzID)
}

func (b *Builder) selectDialog(resp *Response, plainKey, locationKey string) {
	data := map[string]string{
		"time": display.FormatSpokenTime(*resp.DateTime, b.config.Format24Hour),
	}
	key := plainKey
	if resp.Geolocation != nil {
		key = locationKey
		data["location"] = resp.Geolocation.DisplayName()
	}
	resp.DialogKey = key
	resp.DialogData = data
}
