package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/workpark/api/v1"
	"github.com/kubev2v/workpark/internal/config"
	"github.com/kubev2v/workpark/internal/handlers"
	"github.com/kubev2v/workpark/internal/server"
	"github.com/kubev2v/workpark/internal/services"
	"github.com/kubev2v/workpark/pkg/metrics"
	"github.com/kubev2v/workpark/pkg/scheduler"
)

func newServeCmd(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the worker pool and its HTTP API",
		Long: `Start a shared worker pool and serve the run API, /metrics and /health
until SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.String(config.KeyServerMode, config.ServerModeDev, "Server mode: dev or prod")
	flags.Int(config.KeyHTTPPort, 8000, "HTTP listen port")
	flags.Int(config.KeyNumWorkers, 3, "Number of scheduler workers")
	flags.Duration(config.KeyTimeout, 30*time.Second, "Deadline of each stress run")

	return cmd
}

func serve(ctx context.Context, cfg *config.Configuration) error {
	log := zap.S().Named("serve")

	st, err := openStore(ctx, cfg.DataFolder)
	if err != nil {
		return err
	}
	defer st.Close()

	metrics.Register()

	sched := scheduler.NewScheduler(cfg.Pool.NumWorkers,
		scheduler.WithLogger(zap.S().Named("scheduler")),
		scheduler.WithMetrics(true),
	)
	defer sched.Close()

	h := handlers.New(
		services.NewBenchService(sched, st, cfg.Bench.Timeout),
		services.NewRunService(st),
		sched,
	)

	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, h)
	})
	if err != nil {
		return err
	}

	log.Infow("workpark started", "workers", cfg.Pool.NumWorkers, "port", cfg.Server.HTTPPort)
	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Info("workpark stopped")
	return nil
}
