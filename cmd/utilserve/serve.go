package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mnehpets/utilserve/config"
	"github.com/mnehpets/utilserve/logger"
	"github.com/mnehpets/utilserve/service"
)

func newServeCmd() *cobra.Command {
	var (
		port       int
		addr       string
		logMode    string
		configFile string
		envFiles   []string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Runs the HTTP API until SIGINT or SIGTERM.

Settings are layered: defaults, then an optional YAML file (--config or
$UTILSERVE_CONFIG), then the environment (optionally seeded from .env
files), then flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFrom(configFile, envFiles...)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.SetPort(port)
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if logMode != "" {
				cfg.LogMode = logMode
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := logger.New(cfg.LogMode)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", cfg.Addr, err)
			}
			return serve(ctx, ln, cfg, log)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "listen port")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (host:port), overrides --port")
	cmd.Flags().StringVar(&logMode, "log-mode", "", `log format: "production" (JSON) or "development"`)
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "env files to load (default .env)")
	return cmd
}

// serve runs the API on ln until ctx is done, then drains in-flight requests
// for at most cfg.ShutdownTimeout.
func serve(ctx context.Context, ln net.Listener, cfg *config.Config, log *logger.Logger) error {
	srv := &http.Server{
		Handler:           service.NewHandler(cfg, log),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ErrorLog:          zap.NewStdLog(log.SugaredLogger.Desugar()),
	}

	log.Info("listening", "addr", ln.Addr().String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
