// Package config loads application settings for the apportion CLI and server.
//
// Settings come from, in increasing precedence: built-in defaults, a YAML (or
// TOML/JSON) config file, and APPORTION_* environment variables, e.g.
// APPORTION_ENGINE_MAX_ITERATIONS=500.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/katalvlaran/apportion/biprop"
)

// envPrefix is the prefix of environment overrides.
const envPrefix = "APPORTION"

// Config is the complete application configuration.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"`
	Output  OutputConfig  `mapstructure:"output"`
	Batch   BatchConfig   `mapstructure:"batch"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// EngineConfig tunes the biproportional engine.
type EngineConfig struct {
	// MaxIterations caps updates plus transfers; -1 derives it from the input.
	MaxIterations int `mapstructure:"max_iterations"`
	// MaxAlternatingPasses bounds the alternating scaling phase; 0 disables it.
	MaxAlternatingPasses int `mapstructure:"max_alternating_passes"`
	// NormalizeTies keeps only genuine ties in the result.
	NormalizeTies bool `mapstructure:"normalize_ties"`
}

// OutputConfig controls how results are written.
type OutputConfig struct {
	// Format is "text" or "json".
	Format string `mapstructure:"format"`
}

// BatchConfig controls the batch command.
type BatchConfig struct {
	// Parallel is the number of problems solved at once.
	Parallel int `mapstructure:"parallel"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr               string `mapstructure:"addr"`
	ReadTimeoutSeconds int    `mapstructure:"read_timeout_seconds"`
	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

// LoggingConfig controls the log level ("debug", "info", "warn", "error").
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			MaxIterations:        -1,
			MaxAlternatingPasses: biprop.DefaultOptions().MaxAlternatingPasses,
			NormalizeTies:        true,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Batch: BatchConfig{
			Parallel: 4,
		},
		Server: ServerConfig{
			Addr:               ":8080",
			ReadTimeoutSeconds: 10,
			MaxBodyBytes:       1 << 20,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers every default on v, which also makes each key
// visible to environment overrides.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("engine.max_iterations", defaults.Engine.MaxIterations)
	v.SetDefault("engine.max_alternating_passes", defaults.Engine.MaxAlternatingPasses)
	v.SetDefault("engine.normalize_ties", defaults.Engine.NormalizeTies)

	v.SetDefault("output.format", defaults.Output.Format)

	v.SetDefault("batch.parallel", defaults.Batch.Parallel)

	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("server.read_timeout_seconds", defaults.Server.ReadTimeoutSeconds)
	v.SetDefault("server.max_body_bytes", defaults.Server.MaxBodyBytes)

	v.SetDefault("logging.level", defaults.Logging.Level)
}

// NewViper returns a viper instance with defaults and environment overrides,
// reading cfgFile when given, otherwise apportion.yaml from ConfigDir or the
// working directory if present.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("apportion")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return v, nil
}

// Load reads the configuration from v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the user's config directory for apportion.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "apportion")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".apportion"
	}

	return filepath.Join(home, ".config", "apportion")
}

// Options converts the engine settings to biprop options.
func (c EngineConfig) Options() []biprop.Option {
	var opts []biprop.Option
	if c.MaxIterations >= 0 {
		opts = append(opts, biprop.WithMaxIterations(c.MaxIterations))
	}
	opts = append(opts, biprop.WithMaxAlternatingPasses(c.MaxAlternatingPasses))
	if !c.NormalizeTies {
		opts = append(opts, biprop.WithoutTieNormalization())
	}

	return opts
}

// ReadTimeout returns the read timeout as a duration.
func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}
