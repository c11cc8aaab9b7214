package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/workpark/internal/bench"
	"github.com/kubev2v/workpark/internal/config"
	"github.com/kubev2v/workpark/internal/models"
	"github.com/kubev2v/workpark/pkg/metrics"
)

func newRunCmd(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one stress run and print its summary",
		Long: `Execute one stress run. In coordinator mode the workers park on the
coordinator directly and a notifier wakes them one at a time. In scheduler
mode every wakeup is a task submitted to a worker pool.

The run is stored in the history when --data-folder is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runBench(ctx, cfg, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.String(config.KeyBenchMode, "coordinator", "Run mode: coordinator or scheduler")
	flags.Int(config.KeyBenchWorkers, 4, "Number of parked workers")
	flags.Int(config.KeyRounds, 1000, "Wakeups expected by each worker")
	flags.Duration(config.KeyMaxDelay, 0, "Upper bound of the random delay before each notify")
	flags.Duration(config.KeyTimeout, 30*time.Second, "Run deadline")

	return cmd
}

func runBench(ctx context.Context, cfg *config.Configuration, out io.Writer) error {
	params := bench.Params{
		Mode:     models.RunMode(cfg.Bench.Mode),
		Workers:  cfg.Bench.Workers,
		Rounds:   cfg.Bench.Rounds,
		MaxDelay: cfg.Bench.MaxDelay,
	}

	metrics.Register()

	runCtx, cancel := context.WithTimeout(ctx, cfg.Bench.Timeout)
	defer cancel()

	run, err := bench.Run(runCtx, params)
	if err != nil {
		return err
	}

	if cfg.DataFolder != "" {
		st, err := openStore(ctx, cfg.DataFolder)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Runs().Save(ctx, run); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		zap.S().Named("cli").Infow("run stored", "id", run.ID, "folder", cfg.DataFolder)
	}

	printRun(out, run)
	return nil
}

func printRun(out io.Writer, run *models.Run) {
	bold := color.New(color.Bold)
	status := color.New(color.FgGreen, color.Bold)
	if run.Status != models.RunStatusCompleted {
		status = color.New(color.FgRed, color.Bold)
	}

	_, _ = bold.Fprintf(out, "Run %s\n", run.ID)
	fmt.Fprintf(out, "  mode:      %s\n", run.Mode)
	fmt.Fprintf(out, "  workers:   %d x %d rounds\n", run.Workers, run.Rounds)
	fmt.Fprintf(out, "  max delay: %s\n", run.MaxDelay)
	fmt.Fprintf(out, "  wakeups:   %d / %d\n", run.Observed, run.Expected)
	if lost := run.Lost(); lost > 0 {
		_, _ = color.New(color.FgYellow).Fprintf(out, "  lost:      %d\n", lost)
	}
	fmt.Fprintf(out, "  duration:  %s\n", run.Duration)
	fmt.Fprint(out, "  status:    ")
	_, _ = status.Fprintln(out, run.Status)
}
