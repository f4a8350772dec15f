package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/UnknownOlympus/iris/internal/directory"
	"github.com/UnknownOlympus/iris/internal/metrics"
	"github.com/UnknownOlympus/iris/internal/models"
	"github.com/UnknownOlympus/iris/internal/render"
	"github.com/UnknownOlympus/iris/internal/services/employees"
)

func (c *cli) showCmd() *cobra.Command {
	var (
		location string
		search   string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the directory tables for a location or search term",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unsupported format %q: use text or json", format)
			}

			ctx := cmd.Context()
			appMetrics := metrics.NewMetrics(prometheus.NewRegistry())

			source, closeSource, err := employees.NewSource(ctx, c.logger, c.cfg, appMetrics)
			if err != nil {
				return fmt.Errorf("failed to create employee source: %w", err)
			}
			defer closeSource()

			employeeList, err := employees.NewLoader(c.logger, source, appMetrics).Load(ctx, c.cfg.Source.Timeout)
			if err != nil {
				return err
			}

			ctrl := directory.NewController(c.logger, appMetrics, c.settings())
			ctrl.OnDataLoaded(directory.NewStore(employeeList))
			if cmd.Flags().Changed("location") {
				ctrl.OnLocationChanged(location)
			}
			if search != "" {
				ctrl.OnSearchChanged(search)
			}

			return writeView(cmd.OutOrStdout(), ctrl.View(), format, appMetrics)
		},
	}

	cmd.Flags().StringVarP(&location, "location", "l", "", "office location to show (empty for all)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "free-text search over names and extensions")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json")

	return cmd
}

// writeView prints view as text or indented JSON and records how long it took.
func writeView(w io.Writer, view models.View, format string, appMetrics *metrics.Metrics) error {
	defer func(startTime time.Time) {
		appMetrics.RenderDuration.WithLabelValues(format).Observe(time.Since(startTime).Seconds())
	}(time.Now())

	if format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(view); err != nil {
			return fmt.Errorf("failed to encode view: %w", err)
		}

		return nil
	}

	return render.Text(w, view)
}
