package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/UnknownOlympus/iris/internal/directory"
	"github.com/UnknownOlympus/iris/internal/lib/logger/sl"
	"github.com/UnknownOlympus/iris/internal/metrics"
	"github.com/UnknownOlympus/iris/internal/models"
	"github.com/UnknownOlympus/iris/internal/render"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// App serves the directory over HTTP. Every request replays the directory
// triggers on its own controller; the loaded Store is shared read-only.
type App struct {
	log      *slog.Logger
	metrics  *metrics.Metrics
	settings directory.Settings
	store    atomic.Pointer[directory.Store]
	echo     *echo.Echo
}

// NewApp wires routes and middleware. Until SetStore is called every page
// renders two empty tables.
func NewApp(
	log *slog.Logger,
	reg *prometheus.Registry,
	appMetrics *metrics.Metrics,
	settings directory.Settings,
	source SourcePinger,
) *App {
	app := &App{
		log:      log,
		metrics:  appMetrics,
		settings: settings,
		echo:     echo.New(),
	}

	app.echo.HideBanner = true
	app.echo.HidePort = true

	app.echo.Use(middleware.Recover())
	app.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	app.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				log.ErrorContext(c.Request().Context(), "Request failed", append(attrs, sl.Err(v.Error))...)
				return nil
			}
			log.DebugContext(c.Request().Context(), "Request served", attrs...)
			return nil
		},
	}))

	app.echo.GET("/", app.handleIndex)
	app.echo.GET("/api/directory", app.handleDirectory)
	app.echo.GET("/api/offices", app.handleOffices)
	app.echo.GET("/export.xlsx", app.handleExport)
	app.echo.GET("/healthz", echo.WrapHandler(NewHealthChecker(source, app, log)))
	app.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	return app
}

// SetStore publishes the loaded employee list to subsequent requests.
func (a *App) SetStore(store *directory.Store) {
	a.store.Store(store)
}

// Loaded reports whether SetStore has been called.
func (a *App) Loaded() bool {
	return a.store.Load() != nil
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.echo
}

// Start serves on port until ctx is cancelled, then shuts down gracefully.
func (a *App) Start(ctx context.Context, port int, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)

	go func() {
		a.log.InfoContext(ctx, "Starting directory server", "port", port)
		if err := a.echo.Start(":" + strconv.Itoa(port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("directory server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.InfoContext(ctx, "Shutting down directory server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down directory server: %w", err)
	}

	if err, ok := <-errCh; ok {
		return fmt.Errorf("directory server failed: %w", err)
	}

	return nil
}

// ListenerAddr returns the bound address once the server is listening, or "".
func (a *App) ListenerAddr() string {
	addr := a.echo.ListenerAddr()
	if addr == nil {
		return ""
	}

	return addr.String()
}

// buildView replays the directory triggers for a request: data loaded, then
// location changed when the query names a location, then search changed.
func (a *App) buildView(c echo.Context) models.View {
	var ctrl *directory.Controller
	if store := a.store.Load(); store != nil {
		ctrl = directory.NewSession(a.log, a.metrics, a.settings, store)
	} else {
		ctrl = directory.NewController(a.log, a.metrics, a.settings)
	}

	if c.QueryParams().Has("location") {
		ctrl.OnLocationChanged(c.QueryParam("location"))
	}

	if search := c.QueryParam("q"); search != "" {
		ctrl.OnSearchChanged(search)
	}

	return ctrl.View()
}

// locations lists the configured offices followed by any extra record locations.
func (a *App) locations() []string {
	locations := slices.Sorted(maps.Keys(a.settings.Offices))

	for _, location := range a.store.Load().Locations() {
		if _, ok := a.settings.Offices[location]; !ok {
			locations = append(locations, location)
		}
	}

	return locations
}

func (a *App) observeRender(format string, startTime time.Time) {
	a.metrics.RenderDuration.WithLabelValues(format).Observe(time.Since(startTime).Seconds())
}

func (a *App) handleIndex(c echo.Context) error {
	defer a.observeRender("html", time.Now())

	var buf bytes.Buffer
	if err := render.HTML(&buf, a.buildView(c), a.locations()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}

	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (a *App) handleDirectory(c echo.Context) error {
	defer a.observeRender("json", time.Now())

	return c.JSON(http.StatusOK, a.buildView(c))
}

func (a *App) handleOffices(c echo.Context) error {
	return c.JSON(http.StatusOK, a.settings.Offices)
}

func (a *App) handleExport(c echo.Context) error {
	defer a.observeRender("xlsx", time.Now())

	var buf bytes.Buffer
	if err := render.XLSX(&buf, a.buildView(c)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}

	fileName := fmt.Sprintf("directory_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)

	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
