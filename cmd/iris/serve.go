package main

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/UnknownOlympus/iris/internal/directory"
	"github.com/UnknownOlympus/iris/internal/lib/logger/sl"
	"github.com/UnknownOlympus/iris/internal/metrics"
	"github.com/UnknownOlympus/iris/internal/server"
	"github.com/UnknownOlympus/iris/internal/services/employees"
)

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the employee list once and serve the directory over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return c.serve(ctx)
		},
	}
}

func (c *cli) serve(ctx context.Context) error {
	var wgr sync.WaitGroup
	logger := c.logger

	// Create a separate registry for metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	source, closeSource, err := employees.NewSource(ctx, logger, c.cfg, appMetrics)
	if err != nil {
		return fmt.Errorf("failed to create employee source: %w", err)
	}
	defer closeSource()

	app := server.NewApp(logger, reg, appMetrics, c.settings(), source)
	loader := employees.NewLoader(logger, source, appMetrics)

	wgr.Add(1)
	go func() {
		defer wgr.Done()

		employeeList, loadErr := loader.Load(ctx, c.cfg.Source.Timeout)
		if loadErr != nil {
			logger.ErrorContext(ctx, "Directory stays empty until restart", sl.Err(loadErr))
			return
		}

		app.SetStore(directory.NewStore(employeeList))
		logger.InfoContext(ctx, "Directory is ready", "employees", len(employeeList))
	}()

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	err = app.Start(ctx, c.cfg.HTTP.Port, c.cfg.HTTP.ShutdownTimeout)
	wgr.Wait()

	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Application stopped gracefully...")

	return nil
}
