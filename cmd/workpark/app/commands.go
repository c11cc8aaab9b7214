// Package app provides the cobra commands of the workpark CLI.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kubev2v/workpark/internal/config"
	"github.com/kubev2v/workpark/internal/store"
	"github.com/kubev2v/workpark/internal/store/migrations"
)

const (
	envPrefix = "WORKPARK"
	dbFile    = "workpark.duckdb"
)

// NewRootCmd creates the root command with every subcommand attached. Each call
// returns a fresh tree bound to its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := &config.Configuration{}

	rootCmd := &cobra.Command{
		Use:          "workpark",
		Short:        "Worker parking coordinator and stress harness",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			loaded, err := config.Load(v)
			if err != nil {
				return err
			}
			if err := setupLogger(loaded.LogFormat, loaded.LogLevel); err != nil {
				return err
			}
			*cfg = *loaded
			zap.S().Named("cli").Debugw("configuration loaded", "config", loaded.DebugMap())
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = zap.L().Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyLogFormat, "console", "Log format: console or json")
	flags.String(config.KeyLogLevel, "info", "Log level: debug, info, warn or error")
	flags.String(config.KeyDataFolder, "", "Folder holding the run history database (empty keeps it in memory)")

	rootCmd.AddCommand(
		newRunCmd(cfg),
		newHistoryCmd(cfg),
		newServeCmd(cfg),
	)

	return rootCmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	return nil
}

// openStore opens the run history and applies pending migrations. An empty
// data folder gives an in-memory store.
func openStore(ctx context.Context, dataFolder string) (*store.Store, error) {
	path := ":memory:"
	if dataFolder != "" {
		if err := os.MkdirAll(dataFolder, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data folder: %w", err)
		}
		path = filepath.Join(dataFolder, dbFile)
	}

	db, err := store.NewDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store.NewStore(db), nil
}
