package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "time-skill", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "en-us", cfg.Locale.Lang)
	assert.Equal(t, "./configs/dialog", cfg.Locale.DialogDir)
	assert.Equal(t, 5000, cfg.Geocoding.Timeout)
	assert.Equal(t, 2, cfg.Geocoding.MaxRetries)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, "skill-time", cfg.Speech.CacheKeyPrefix)
	assert.Equal(t, 120, cfg.Speech.CacheTTL)
	assert.Equal(t, "none", cfg.Display.Target)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":9102", cfg.Metrics.Address)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Locale.Lang = "en-gb"
	cfg.Geocoding.MaxRetries = 5
	cfg.Display.Target = "segmented"

	applyDefaults(cfg)

	assert.Equal(t, "en-gb", cfg.Locale.Lang)
	assert.Equal(t, 5, cfg.Geocoding.MaxRetries)
	assert.Equal(t, "segmented", cfg.Display.Target)
}

func TestLocaleConfig_DialogPath(t *testing.T) {
	locale := LocaleConfig{Lang: "en-us", DialogDir: "./configs/dialog"}

	assert.Equal(t, "./configs/dialog/en-us.json", locale.DialogPath())
}
