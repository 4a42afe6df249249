package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"timeskill/internal/common/cache"
	"timeskill/internal/common/config"
	"timeskill/internal/common/logger"
	"timeskill/internal/common/observability"
	"timeskill/internal/skill"
	"timeskill/internal/skill/clock"
	"timeskill/internal/skill/dialog"
	"timeskill/internal/skill/display"
	"timeskill/internal/skill/geolocation"
	"timeskill/internal/skill/response"
	"timeskill/internal/skill/speech"
)

func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting time skill...",
		zap.String("lang", cfg.Locale.Lang),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	registry, err := dialog.LoadRegistry(cfg.Locale.DialogPath())
	if err != nil {
		zapLog.Fatal("dialog registry load failed", zap.Error(err))
	}

	var redisClient *cache.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	resolver := geolocation.NewClient(&geolocation.Config{
		BaseURL:    cfg.Geocoding.BaseURL,
		APIKey:     cfg.Geocoding.APIKey,
		Timeout:    time.Duration(cfg.Geocoding.Timeout) * time.Millisecond,
		MaxRetries: cfg.Geocoding.MaxRetries,
	}, log)

	builder := response.NewBuilder(&response.Config{
		Lang:         cfg.Locale.Lang,
		Format24Hour: cfg.Locale.Format24Hour,
	}, resolver, clock.New(), log)

	artifacts := speech.NewArtifactCache(redisClient, time.Duration(cfg.Speech.CacheTTL)*time.Second)
	speaker := speech.NewCachingSpeaker(registry, speech.TextSynthesizer{}, speech.LogSink{Logger: log}, artifacts, log)

	cacheKey := ""
	if cfg.Speech.PreCache {
		cacheKey = cfg.Speech.CacheKeyPrefix + ".current-time"
	}

	timeSkill := skill.New(&skill.Config{
		Format24Hour: cfg.Locale.Format24Hour,
		CacheKey:     cacheKey,
	}, builder, speaker, newDisplay(cfg.Display.Target, log), nil, obs, log)
	timeSkill.Start()
	defer timeSkill.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/intent/current-time", intentHandler(timeSkill.HandleCurrentTime, log))
	mux.HandleFunc("/intent/future-time", intentHandler(timeSkill.HandleFutureTime, log))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{Addr: ":8080", Handler: mux}
	go func() {
		zapLog.Info("intent endpoint listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("intent server failed", zap.Error(err))
		}
	}()

	if cfg.Metrics.Enabled {
		go func() {
			zapLog.Info("metrics endpoint listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, promhttp.Handler()); err != nil {
				zapLog.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
}

type intentRequest struct {
	Utterance string `json:"utterance"`
}

func intentHandler(handle func(context.Context, string) error, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req intentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if err := handle(r.Context(), req.Utterance); err != nil {
			log.WithError(err).Error("request failed", nil)
			http.Error(w, "request failed", http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// newDisplay selects the rendering adapter for the configured target. Real
// hardware backends plug in behind the same capability interfaces.
func newDisplay(target string, log logger.Logger) skill.Display {
	switch target {
	case "segmented":
		return &logFaceplate{log: log}
	case "graphical":
		return &logScreen{log: log}
	default:
		return nil
	}
}

type logFaceplate struct {
	log logger.Logger
}

func (f *logFaceplate) Connected() bool { return true }

func (f *logFaceplate) DrawGlyphs(glyphs []display.Glyph) error {
	f.log.Info("faceplate render", map[string]interface{}{"glyphs": len(glyphs)})
	return nil
}

func (f *logFaceplate) Clear() error {
	f.log.Debug("faceplate cleared", nil)
	return nil
}

type logScreen struct {
	log logger.Logger
}

func (s *logScreen) Connected() bool { return true }

func (s *logScreen) ShowTime(hour, minute, location string) error {
	s.log.Info("screen render", map[string]interface{}{
		"hour":     hour,
		"minute":   minute,
		"location": location,
	})
	return nil
}

func (s *logScreen) Release() error {
	s.log.Debug("screen released", nil)
	return nil
}
