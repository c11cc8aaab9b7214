package config

import (
	"fmt"
	"time"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
)

// Viper keys. They double as CLI flag names; env vars use the WORKPARK_
// prefix with dashes turned into underscores.
const (
	KeyServerMode   = "server-mode"
	KeyHTTPPort     = "http-port"
	KeyNumWorkers   = "workers"
	KeyBenchMode    = "mode"
	KeyBenchWorkers = "bench-workers"
	KeyRounds       = "rounds"
	KeyMaxDelay     = "max-delay"
	KeyTimeout      = "timeout"
	KeyDataFolder   = "data-folder"
	KeyLogFormat    = "log-format"
	KeyLogLevel     = "log-level"
)

const (
	ServerModeDev  = "dev"
	ServerModeProd = "prod"
)

type Configuration struct {
	Server     Server
	Pool       Pool
	Bench      Bench
	DataFolder string `debugmap:"visible"`
	LogFormat  string `debugmap:"visible" default:"console"`
	LogLevel   string `debugmap:"visible" default:"info"`
}

type Server struct {
	ServerMode string `debugmap:"visible" default:"dev"`
	HTTPPort   int    `debugmap:"visible" default:"8000"`
}

type Pool struct {
	NumWorkers int `debugmap:"visible" default:"3"`
}

type Bench struct {
	Mode     string        `debugmap:"visible" default:"coordinator"`
	Workers  int           `debugmap:"visible" default:"4"`
	Rounds   int           `debugmap:"visible" default:"1000"`
	MaxDelay time.Duration `debugmap:"visible" default:"0s"`
	Timeout  time.Duration `debugmap:"visible" default:"30s"`
}

// NewConfigurationWithDefaults returns a configuration with every default applied.
func NewConfigurationWithDefaults() (*Configuration, error) {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to set configuration defaults: %w", err)
	}
	return cfg, nil
}

// Load builds a configuration from defaults overridden by every key set in v
// (flags that were changed or environment variables).
func Load(v *viper.Viper) (*Configuration, error) {
	cfg, err := NewConfigurationWithDefaults()
	if err != nil {
		return nil, err
	}

	if v.IsSet(KeyServerMode) {
		cfg.Server.ServerMode = v.GetString(KeyServerMode)
	}
	if v.IsSet(KeyHTTPPort) {
		cfg.Server.HTTPPort = v.GetInt(KeyHTTPPort)
	}
	if v.IsSet(KeyNumWorkers) {
		cfg.Pool.NumWorkers = v.GetInt(KeyNumWorkers)
	}
	if v.IsSet(KeyBenchMode) {
		cfg.Bench.Mode = v.GetString(KeyBenchMode)
	}
	if v.IsSet(KeyBenchWorkers) {
		cfg.Bench.Workers = v.GetInt(KeyBenchWorkers)
	}
	if v.IsSet(KeyRounds) {
		cfg.Bench.Rounds = v.GetInt(KeyRounds)
	}
	if v.IsSet(KeyMaxDelay) {
		cfg.Bench.MaxDelay = v.GetDuration(KeyMaxDelay)
	}
	if v.IsSet(KeyTimeout) {
		cfg.Bench.Timeout = v.GetDuration(KeyTimeout)
	}
	if v.IsSet(KeyDataFolder) {
		cfg.DataFolder = v.GetString(KeyDataFolder)
	}
	if v.IsSet(KeyLogFormat) {
		cfg.LogFormat = v.GetString(KeyLogFormat)
	}
	if v.IsSet(KeyLogLevel) {
		cfg.LogLevel = v.GetString(KeyLogLevel)
	}

	return cfg, cfg.Validate()
}

func (c *Configuration) Validate() error {
	if c.Server.ServerMode != ServerModeDev && c.Server.ServerMode != ServerModeProd {
		return fmt.Errorf("invalid server mode %q: must be 'dev' or 'prod'", c.Server.ServerMode)
	}
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port %d", c.Server.HTTPPort)
	}
	if c.Pool.NumWorkers < 1 {
		return fmt.Errorf("number of workers must be positive, got %d", c.Pool.NumWorkers)
	}
	if c.Bench.Mode != "coordinator" && c.Bench.Mode != "scheduler" {
		return fmt.Errorf("invalid bench mode %q: must be 'coordinator' or 'scheduler'", c.Bench.Mode)
	}
	if c.Bench.Workers < 1 || c.Bench.Rounds < 1 {
		return fmt.Errorf("bench workers and rounds must be positive, got %d and %d", c.Bench.Workers, c.Bench.Rounds)
	}
	if c.Bench.MaxDelay < 0 || c.Bench.Timeout <= 0 {
		return fmt.Errorf("invalid bench durations: max delay %s, timeout %s", c.Bench.MaxDelay, c.Bench.Timeout)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format %q: must be 'console' or 'json'", c.LogFormat)
	}
	return nil
}

// DebugMap returns the configuration as a flat map for structured logging.
func (c *Configuration) DebugMap() map[string]any {
	return map[string]any{
		"server.mode":    c.Server.ServerMode,
		"server.port":    c.Server.HTTPPort,
		"pool.workers":   c.Pool.NumWorkers,
		"bench.mode":     c.Bench.Mode,
		"bench.workers":  c.Bench.Workers,
		"bench.rounds":   c.Bench.Rounds,
		"bench.maxDelay": c.Bench.MaxDelay.String(),
		"bench.timeout":  c.Bench.Timeout.String(),
		"dataFolder":     c.DataFolder,
		"logFormat":      c.LogFormat,
		"logLevel":       c.LogLevel,
	}
}
