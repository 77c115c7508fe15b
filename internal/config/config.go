// Package config loads ShelfSort configuration.
//
// Values are resolved with this precedence (highest to lowest):
//  1. Command-line flags
//  2. Environment variables (SHELFSORT_ prefix, "." replaced by "_")
//  3. Config file (shelfsort.yaml)
//  4. Default values
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/piwi3910/ShelfSort/internal/model"
)

// Config holds all application configuration.
type Config struct {
	// App contains application-level configuration
	App AppConfig `mapstructure:"app"`

	// Log contains logger configuration
	Log LogConfig `mapstructure:"log"`

	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Sort contains the default sorting run
	Sort SortConfig `mapstructure:"sort"`
}

// AppConfig contains application-level configuration.
type AppConfig struct {
	// Name of the application
	Name string `mapstructure:"name"`

	// Environment the application is running in (development, production)
	Environment string `mapstructure:"environment"`

	// DataDir holds the inventory and saved collections
	DataDir string `mapstructure:"data_dir"`
}

// LogConfig contains logger configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address
	Host string `mapstructure:"host"`

	// Port is the server port
	Port int `mapstructure:"port"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// MaxRequestSize is the maximum allowed request body size in bytes
	MaxRequestSize int64 `mapstructure:"max_request_size"`

	// CORSAllowedOrigins is a list of allowed origins for CORS
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	// RequestsPerSecond and Burst size the per-client token bucket
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`

	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a reverse proxy that overwrites them.
	TrustProxyHeaders bool `mapstructure:"trust_proxy_headers"`
}

// SortConfig is the default sorting run. Placement and rotation stay
// strings here and are parsed by Settings.
type SortConfig struct {
	Placement   string  `mapstructure:"placement"`
	Rotation    string  `mapstructure:"rotation"`
	Shelves     int     `mapstructure:"shelves"`
	ShelfWidth  float64 `mapstructure:"shelf_width"`
	ShelfHeight float64 `mapstructure:"shelf_height"`

	// Preset names an inventory shelf preset whose bounds replace
	// ShelfWidth and ShelfHeight
	Preset string `mapstructure:"preset"`
}

// Settings parses and validates the run settings.
func (c SortConfig) Settings() (model.SortSettings, error) {
	placement, err := model.ParsePlacement(c.Placement)
	if err != nil {
		return model.SortSettings{}, fmt.Errorf("%w: %v", model.ErrInvalidSettings, err)
	}
	rotation, err := model.ParseRotation(c.Rotation)
	if err != nil {
		return model.SortSettings{}, fmt.Errorf("%w: %v", model.ErrInvalidSettings, err)
	}
	s := model.SortSettings{
		Placement:   placement,
		Rotation:    rotation,
		ShelfCount:  c.Shelves,
		ShelfWidth:  c.ShelfWidth,
		ShelfHeight: c.ShelfHeight,
	}
	if err := s.Validate(); err != nil {
		return model.SortSettings{}, err
	}
	return s, nil
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"placement":    "sort.placement",
	"rotation":     "sort.rotation",
	"shelves":      "sort.shelves",
	"shelf-width":  "sort.shelf_width",
	"shelf-height": "sort.shelf_height",
	"preset":       "sort.preset",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"host":         "server.host",
	"port":         "server.port",
	"data-dir":     "app.data_dir",
}

// RegisterFlags adds the flags Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := model.DefaultSettings()
	fs.String("config", "", "path to a config file")
	fs.String("placement", d.Placement.String(), "VERTICAL, HORIZONTAL or FREE")
	fs.String("rotation", d.Rotation.String(), "NOT_ROTATED, ROTATED or FREE_ROTATION")
	fs.Int("shelves", d.ShelfCount, "number of shelves")
	fs.Float64("shelf-width", d.ShelfWidth, "shelf width in mm")
	fs.Float64("shelf-height", d.ShelfHeight, "shelf height in mm")
	fs.String("preset", "", "shelf preset name from the inventory")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.String("log-format", "console", "json or console")
	fs.String("host", "0.0.0.0", "HTTP bind address")
	fs.Int("port", 8080, "HTTP port")
	fs.String("data-dir", "", "directory for inventory and collections")
}

// Load reads configuration from defaults, an optional config file, the
// environment and, when fs is not nil, the flags that were set on it.
// An empty path searches the default locations; a missing file there is not an error.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("shelfsort")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.shelfsort")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("SHELFSORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// MustLoad loads the configuration and panics on error.
func MustLoad(path string, fs *pflag.FlagSet) *Config {
	cfg, err := Load(path, fs)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	d := model.DefaultSettings()

	v.SetDefault("app.name", "shelfsort")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.data_dir", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.max_request_size", 1<<20) // 1MB
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.requests_per_second", 10.0)
	v.SetDefault("server.burst", 20)
	v.SetDefault("server.trust_proxy_headers", false)

	v.SetDefault("sort.placement", d.Placement.String())
	v.SetDefault("sort.rotation", d.Rotation.String())
	v.SetDefault("sort.shelves", d.ShelfCount)
	v.SetDefault("sort.shelf_width", d.ShelfWidth)
	v.SetDefault("sort.shelf_height", d.ShelfHeight)
	v.SetDefault("sort.preset", "")
}
