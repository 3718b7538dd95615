package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Render    RenderConfig    `mapstructure:"render"`
	Preview   PreviewConfig   `mapstructure:"preview"`
	History   HistoryConfig   `mapstructure:"history"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Path           string `mapstructure:"path"`
	MaxConnections int    `mapstructure:"max_connections"`
}

type JWTConfig struct {
	Secret          string        `mapstructure:"secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

type RateLimitConfig struct {
	RenderPerMinute  int `mapstructure:"render_per_minute"`
	APIReadPerMinute int `mapstructure:"api_read_per_minute"`
}

// RenderConfig carries the defaults the engine falls back to when a request
// leaves a knob unset.
type RenderConfig struct {
	DPI           float64       `mapstructure:"dpi"`
	FontPath      string        `mapstructure:"font_path"`
	FontSize      float64       `mapstructure:"font_size"`
	SymbolWidthPx int           `mapstructure:"symbol_width_px"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
}

type PreviewConfig struct {
	MaxPx int `mapstructure:"max_px"`
}

type HistoryConfig struct {
	Retention     time.Duration `mapstructure:"retention"`
	PruneInterval time.Duration `mapstructure:"prune_interval"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

func Load(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// A missing file is not an error: defaults and env overrides still apply.
	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.path", "data/labelr.db")
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("rate_limit.render_per_minute", 120)
	viper.SetDefault("rate_limit.api_read_per_minute", 1000)
	viper.SetDefault("render.dpi", 96)
	viper.SetDefault("render.font_size", 14)
	viper.SetDefault("render.symbol_width_px", 420)
	viper.SetDefault("render.cache_ttl", "5m")
	viper.SetDefault("preview.max_px", 900)
	viper.SetDefault("history.retention", "2160h")
	viper.SetDefault("history.prune_interval", "1h")
	viper.SetDefault("logging.level", "info")
}
