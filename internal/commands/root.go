// Package commands implements the kpastro command line.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	service "github.com/okian/kpastro/internal/app"
	"github.com/okian/kpastro/internal/config"
	"github.com/okian/kpastro/pkg/logger"
	"github.com/okian/kpastro/pkg/metrics"
)

// cli is the state shared by every subcommand once the root has initialized.
type cli struct {
	cfg    *config.Config
	svc    *service.Service
	format string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	rt := &cli{}
	root := &cobra.Command{
		Use:           "kpastro",
		Short:         "KP astrology chart engine",
		Long:          "kpastro computes sidereal charts with KP sub-lords, significators, Vimshottari dasa and horary times.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.init(cmd.Context())
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if rt.svc != nil {
				rt.svc.Stop()
			}
		},
	}
	root.PersistentFlags().StringVar(&rt.format, "format", formatJSON, "output format: json or yaml")

	root.AddCommand(
		newServeCommand(rt),
		newChartCommand(rt),
		newHoraryCommand(rt),
		newDivisionsCommand(rt),
		newSweepCommand(rt),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// init loads configuration (defaults -> optional file -> env), sets up logging
// on stderr and metrics, and starts the service.
func (rt *cli) init(ctx context.Context) error {
	if err := checkFormat(rt.format); err != nil {
		return err
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(os.Stderr)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Init(cfg.MetricsOptions()...)

	rt.cfg = cfg
	rt.svc = service.New(
		service.WithLogger(logger.Named("service")),
		service.WithDefaults(cfg.DefaultAyanamsa, cfg.DefaultHouseSystem),
		service.WithHoraryTolerance(cfg.HoraryToleranceDeg),
		service.WithSeedVelocity(cfg.HorarySeedVelocity),
		service.WithHoraryTimeout(cfg.HoraryTimeout()),
		service.WithSweepWorkers(cfg.SweepWorkers),
		service.WithHoraryCacheSize(cfg.HoraryCacheSize),
	)
	if err := rt.svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	return nil
}
