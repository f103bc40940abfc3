package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"relief-dispatch-service/internal/adapters/metrics"
	"relief-dispatch-service/internal/api"
	"relief-dispatch-service/internal/app"
	"relief-dispatch-service/internal/config"
	"relief-dispatch-service/internal/platform/logging"
	"relief-dispatch-service/internal/ports"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

// main is the application composition root.
// It wires configured adapters behind ports and starts the HTTP server.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Relief dispatch planning HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			err := run(ctx, cfgPath)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "server:", err)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", config.Get("CONFIG_PATH", ""), "configuration file (yaml or json)")
	return cmd
}

func run(ctx context.Context, cfgPath string) error {
	envErr := godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.New(cfg.Log, "server")
	if envErr != nil {
		log.Debug().Msg("no .env file found (using environment variables)")
	}
	ctx = log.WithContext(ctx)

	stores, err := app.OpenStores(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Error().Err(err).Msg("close stores")
		}
	}()

	deps := api.Deps{
		Scenarios:      stores.Scenarios,
		Plans:          stores.Plans,
		Logger:         log,
		FrameInterval:  time.Duration(cfg.Server.FrameIntervalMillis) * time.Millisecond,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}

	var recorder ports.DispatchRecorder
	if cfg.Metrics.Enabled {
		prom, err := metrics.NewPromRecorder(nil)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		recorder = prom
		deps.Observer = prom
		deps.MetricsHandler = prom.Handler()
		deps.MetricsPath = cfg.Metrics.Path
	}
	deps.Planner = app.NewPlanner(cfg.Planner, stores, recorder)

	if cfg.Server.PlanRatePerSecond > 0 {
		deps.PlanLimiter = rate.NewLimiter(rate.Limit(cfg.Server.PlanRatePerSecond), cfg.Server.PlanBurst)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
