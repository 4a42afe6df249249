package speech

import (
	"context"

	"timeskill/internal/common/logger"
)

// TextSynthesizer is a development stand-in for the platform TTS engine:
// the artifact is the rendered phrase itself.
type TextSynthesizer struct{}

func (TextSynthesizer) Synthesize(_ context.Context, text string) ([]byte, error) {
	return []byte(text), nil
}

// LogSink plays artifacts by logging them. Used when no audio device is
// wired, and by the binary in development mode.
type LogSink struct {
	Logger logger.Logger
}

func (s LogSink) Play(_ context.Context, artifact []byte) error {
	s.Logger.Info("speaking", map[string]interface{}{"text": string(artifact)})
	return nil
}
