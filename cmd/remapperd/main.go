// Command remapperd serves a composite device over HTTP. The device is
// assembled from simulated boards described in a YAML file and routed by a
// remapper configured in the same file.
//
// Configuration:
//   - --config / REMAPPERD_CONFIG: YAML file (required)
//   - --listen / REMAPPERD_LISTEN: listen address (default ":8080")
//   - --verbose: debug logging
//
// The YAML file's healthInterval (default 5s) sets how often every shard is
// probed; the results are served on /health/shards.
//
// Example usage:
//
//	remapperd --config arm.yaml --listen :8080
//	curl localhost:8080/axes
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dreamware/axisremap/internal/health"
	promremap "github.com/dreamware/axisremap/internal/metrics/prometheus"
	"github.com/dreamware/axisremap/internal/remap"
	"github.com/dreamware/axisremap/internal/server"
)

type options struct {
	configPath string
	listen     string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "remapperd",
		Short:        "Serve a composite device built from simulated boards",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			fc, err := loadFile(opts.configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", opts.listen)
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}
			return run(ctx, fc, ln, logger)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", os.Getenv("REMAPPERD_CONFIG"), "YAML file with the remapper and board configuration")
	cmd.Flags().StringVar(&opts.listen, "listen", getenv("REMAPPERD_LISTEN", ":8080"), "HTTP listen address")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// build attaches the configured boards and returns the HTTP front end.
func build(fc fileConfig, logger *zap.Logger) (*server.Server, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	r, err := remap.New(fc.Remapper,
		remap.WithLogger(logger.Named("remap")),
		remap.WithMetrics(promremap.NewRemapMetrics(reg)))
	if err != nil {
		return nil, err
	}
	backends, err := fc.backends()
	if err != nil {
		return nil, err
	}
	if err := r.Attach(backends); err != nil {
		return nil, fmt.Errorf("attach: %w", err)
	}
	return server.New(r, logger.Named("http"), reg), nil
}

// run serves on ln until ctx is done, then shuts down and detaches. The
// shard health monitor runs for as long as the listener does.
func run(ctx context.Context, fc fileConfig, ln net.Listener, logger *zap.Logger) error {
	srv, err := build(fc, logger)
	if err != nil {
		ln.Close()
		return err
	}

	monitor := health.NewMonitor(srv.Ping, fc.HealthInterval,
		health.WithLogger(logger.Named("health")))
	srv.WatchHealth(monitor)
	monitorCtx, stopMonitor := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		monitor.Run(monitorCtx)
	}()
	defer func() {
		stopMonitor()
		wg.Wait()
		_ = srv.Detach()
		logger.Info("remapperd stopped")
	}()

	httpSrv := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("remapperd listening", zap.String("addr", ln.Addr().String()))
		errc <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errc
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
