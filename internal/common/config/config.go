package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Locale    LocaleConfig    `mapstructure:"locale"`
	Geocoding GeocodingConfig `mapstructure:"geocoding"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Speech    SpeechConfig    `mapstructure:"speech"`
	Display   DisplayConfig   `mapstructure:"display"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// LocaleConfig drives extraction vocabulary, dialog selection and time display.
type LocaleConfig struct {
	Lang         string `mapstructure:"lang"`
	Format24Hour bool   `mapstructure:"format_24_hour"`
	DialogDir    string `mapstructure:"dialog_dir"`
}

// DialogPath returns the dialog registry file for the configured language.
func (l LocaleConfig) DialogPath() string {
	return fmt.Sprintf("%s/%s.json", l.DialogDir, l.Lang)
}

// GeocodingConfig holds settings for the external geolocation service.
type GeocodingConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	Timeout    int    `mapstructure:"timeout"`     // milliseconds
	MaxRetries int    `mapstructure:"max_retries"` // For error handling
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SpeechConfig holds settings for TTS caching.
type SpeechConfig struct {
	CacheKeyPrefix string `mapstructure:"cache_key_prefix"`
	CacheTTL       int    `mapstructure:"cache_ttl"` // seconds
	PreCache       bool   `mapstructure:"pre_cache"`
}

// DisplayConfig selects the rendering path exposed to the skill.
type DisplayConfig struct {
	// Target is "segmented", "graphical" or "none".
	Target string `mapstructure:"target"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig holds the promhttp listener settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}
