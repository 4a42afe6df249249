package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like GEOCODING_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overrides, ignored when the file is absent.
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if cfg.Geocoding.APIKey == "" {
		cfg.Geocoding.APIKey = os.Getenv("GEOCODING_API_KEY")
	}

	return &cfg, nil
}

func loadEnvFile() {
	for _, path := range []string{".env", "../../.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "time-skill"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Locale.Lang == "" {
		cfg.Locale.Lang = "en-us"
	}
	if cfg.Locale.DialogDir == "" {
		cfg.Locale.DialogDir = "./configs/dialog"
	}
	if cfg.Geocoding.Timeout == 0 {
		cfg.Geocoding.Timeout = 5000
	}
	if cfg.Geocoding.MaxRetries == 0 {
		cfg.Geocoding.MaxRetries = 2
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "localhost:6379"
	}
	if cfg.Speech.CacheKeyPrefix == "" {
		cfg.Speech.CacheKeyPrefix = "skill-time"
	}
	if cfg.Speech.CacheTTL == 0 {
		cfg.Speech.CacheTTL = 120
	}
	if cfg.Display.Target == "" {
		cfg.Display.Target = "none"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9102"
	}
}
