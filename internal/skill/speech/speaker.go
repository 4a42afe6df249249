// Package speech carries the speech capability boundary: rendering dialog
// templates, synthesizing audio, and keeping the pre-synthesized
// current-time artifact warm.
package speech

import (
	"context"

	skillerrors "timeskill/internal/common/errors"
	"timeskill/internal/common/logger"
	"timeskill/internal/skill/dialog"
)

// Speaker is the speech capability consumed by the skill. PreCache
// synthesizes without speaking so the next live request can reuse the
// artifact.
type Speaker interface {
	Speak(ctx context.Context, key string, data map[string]string, cacheKey string) error
	PreCache(ctx context.Context, key string, data map[string]string, cacheKey string) error
}

// Synthesizer is the external TTS engine.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// AudioSink plays a synthesized artifact.
type AudioSink interface {
	Play(ctx context.Context, artifact []byte) error
}

// CachingSpeaker renders dialog templates, synthesizes them, and serves
// cached artifacts when a stable cache key is supplied.
type CachingSpeaker struct {
	registry *dialog.Registry
	synth    Synthesizer
	sink     AudioSink
	cache    *ArtifactCache
	logger   logger.Logger
}

func NewCachingSpeaker(registry *dialog.Registry, synth Synthesizer, sink AudioSink, cache *ArtifactCache, log logger.Logger) *CachingSpeaker {
	return &CachingSpeaker{
		registry: registry,
		synth:    synth,
		sink:     sink,
		cache:    cache,
		logger:   log.WithFields(map[string]interface{}{"component": "speech"}),
	}
}

// Speak renders and plays the dialog. With a cache key, a pre-synthesized
// artifact is preferred over synthesizing on the critical path; a cache
// miss falls through to live synthesis.
func (s *CachingSpeaker) Speak(ctx context.Context, key string, data map[string]string, cacheKey string) error {
	text, err := s.registry.Render(key, data)
	if err != nil {
		return err
	}

	var artifact []byte
	if cacheKey != "" && s.cache != nil {
		if cached, err := s.cache.Fetch(ctx, cacheKey); err == nil {
			artifact = cached
		}
	}

	if artifact == nil {
		artifact, err = s.synth.Synthesize(ctx, text)
		if err != nil {
			return skillerrors.NewSpeechFailedError(err)
		}
	}

	s.logger.Debug("speaking dialog", map[string]interface{}{
		"dialogKey": key,
		"cached":    cacheKey != "",
	})
	return s.sink.Play(ctx, artifact)
}

// PreCache synthesizes the dialog and stores the artifact without playing it.
func (s *CachingSpeaker) PreCache(ctx context.Context, key string, data map[string]string, cacheKey string) error {
	if s.cache == nil {
		return nil
	}
	text, err := s.registry.Render(key, data)
	if err != nil {
		return err
	}
	artifact, err := s.synth.Synthesize(ctx, text)
	if err != nil {
		return skillerrors.NewSpeechFailedError(err)
	}
	return s.cache.Store(ctx, cacheKey, artifact)
}
