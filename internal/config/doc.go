// Package config defines the configuration structure for workpark.
//
// Configuration is organized into logical sections (Server, Pool, Bench).
// Defaults come from `default` struct tags applied with creasty/defaults and
// are overridden by viper keys (CLI flags or WORKPARK_* environment variables).
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP server settings
//	├── Pool           - Shared scheduler settings
//	├── Bench          - Stress run parameters
//	├── DataFolder     - Where the DuckDB run history lives
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Server Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ ServerMode       │ "dev"   │ Server mode: "prod" or "dev"           │
//	│ HTTPPort         │ 8000    │ HTTP server listen port                │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Pool Configuration
//
//	┌─────────────────────┬─────────┬──────────────────────────────────────┐
//	│ Field               │ Default │ Description                          │
//	├─────────────────────┼─────────┼──────────────────────────────────────┤
//	│ NumWorkers          │ 3       │ Number of scheduler workers          │
//	└─────────────────────┴─────────┴──────────────────────────────────────┘
//
// # Bench Configuration
//
//	┌──────────┬───────────────┬─────────────────────────────────────────────┐
//	│ Field    │ Default       │ Description                                 │
//	├──────────┼───────────────┼─────────────────────────────────────────────┤
//	│ Mode     │ "coordinator" │ "coordinator" or "scheduler"                │
//	│ Workers  │ 4             │ Parked goroutines taking part in the run    │
//	│ Rounds   │ 1000          │ Wakeups expected by each worker             │
//	│ MaxDelay │ 0s            │ Upper bound of the random notify delay      │
//	│ Timeout  │ 30s           │ Run deadline, reported as status "timeout"  │
//	└──────────┴───────────────┴─────────────────────────────────────────────┘
//
// An empty DataFolder keeps the run history in memory.
//
// # Usage Example
//
//	v := viper.New()
//	v.SetEnvPrefix("WORKPARK")
//	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
//	v.AutomaticEnv()
//	_ = v.BindPFlags(cmd.Flags())
//
//	cfg, err := config.Load(v)
//
// # Debug Logging
//
// DebugMap() returns a flat map suitable for structured logging:
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
