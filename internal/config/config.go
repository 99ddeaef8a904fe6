package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field maps 1:1 to an env var.
type Config struct {
	// Server
	Port               int    `mapstructure:"PORT"`
	Env                string `mapstructure:"APP_ENV"` // development | production
	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	PublicURL          string `mapstructure:"PUBLIC_URL"` // base for shared links

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// Feeds
	BolsaURL           string `mapstructure:"BOLSA_URL"`
	DolarAPIURL        string `mapstructure:"DOLAR_API_URL"`
	FeedTimeoutSeconds int    `mapstructure:"FEED_TIMEOUT_SECONDS"`
	CBFailures         int    `mapstructure:"CB_FAILURES"`
	CBOpenSeconds      int    `mapstructure:"CB_OPEN_SECONDS"`

	// Caches
	PreciosCacheMinutes  int `mapstructure:"PRECIOS_CACHE_MINUTES"`
	ResultadosCacheHours int `mapstructure:"RESULTADOS_CACHE_HOURS"`

	// Scheduler
	PizarraCron string `mapstructure:"PIZARRA_CRON"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 600)
	viper.SetDefault("PUBLIC_URL", "http://localhost:3000")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("BOLSA_URL", "https://www.bolsadecereales.com/precios")
	viper.SetDefault("DOLAR_API_URL", "https://dolarapi.com/v1/dolares/oficial")
	viper.SetDefault("FEED_TIMEOUT_SECONDS", 10)
	viper.SetDefault("CB_FAILURES", 3)
	viper.SetDefault("CB_OPEN_SECONDS", 60)
	viper.SetDefault("PRECIOS_CACHE_MINUTES", 60)
	viper.SetDefault("RESULTADOS_CACHE_HOURS", 24)
	viper.SetDefault("PIZARRA_CRON", "@every 1h")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) FeedTimeout() time.Duration {
	return time.Duration(c.FeedTimeoutSeconds) * time.Second
}

func (c *Config) PreciosTTL() time.Duration {
	return time.Duration(c.PreciosCacheMinutes) * time.Minute
}

func (c *Config) ResultadosTTL() time.Duration {
	return time.Duration(c.ResultadosCacheHours) * time.Hour
}

func (c *Config) IsProduction() bool { return c.Env == "production" }
