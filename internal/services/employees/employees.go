package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/iris/internal/client"
	"github.com/UnknownOlympus/iris/internal/config"
	"github.com/UnknownOlympus/iris/internal/lib/logger/sl"
	"github.com/UnknownOlympus/iris/internal/metrics"
	"github.com/UnknownOlympus/iris/internal/models"
	"github.com/UnknownOlympus/iris/internal/parser"
	"github.com/UnknownOlympus/iris/internal/repository"
)

var ErrUnknownSource = errors.New("unknown employee source")

// Loader fetches the employee list exactly once per call. A failed load is
// reported and returned; there is no retry.
type Loader struct {
	log     *slog.Logger
	source  Source
	metrics *metrics.Metrics
}

func NewLoader(log *slog.Logger, source Source, appMetrics *metrics.Metrics) *Loader {
	return &Loader{log: log, source: source, metrics: appMetrics}
}

func (l *Loader) initLogger(opn string) *slog.Logger {
	return l.log.With(
		sl.Op(opn),
		slog.String("division", "employee"),
		slog.String("source", l.source.Name()),
	)
}

// Source returns the underlying source.
func (l *Loader) Source() Source {
	return l.source
}

// Load runs a single load attempt bounded by timeout.
func (l *Loader) Load(pctx context.Context, timeout time.Duration) ([]models.Employee, error) {
	const opn = "Loader.Load"
	log := l.initLogger(opn)

	ctx, cancel := context.WithTimeout(pctx, timeout)
	defer cancel()

	startTime := time.Now()
	log.InfoContext(ctx, "Loading employee list")

	employees, err := l.source.Load(ctx)
	l.metrics.LoadDuration.WithLabelValues(l.source.Name()).Observe(time.Since(startTime).Seconds())
	if err != nil {
		l.metrics.Loads.WithLabelValues("failure").Inc()
		log.ErrorContext(ctx, "Error fetching employee data", sl.Err(err))

		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	l.metrics.Loads.WithLabelValues("success").Inc()
	l.metrics.EmployeesLoaded.Set(float64(len(employees)))
	l.metrics.LastSuccessfulLoad.SetToCurrentTime()
	log.InfoContext(ctx, "Employee list loaded", "count", len(employees))

	return employees, nil
}

// NewSource builds the source selected in cfg. The returned closer releases
// any connection the source holds and is never nil.
func NewSource(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Config,
	appMetrics *metrics.Metrics,
) (Source, func(), error) {
	employeeParser := parser.NewEmployeeParser()
	noop := func() {}

	switch cfg.Source.Kind {
	case config.SourceFile:
		return NewFileSource(cfg.Source.Path, employeeParser), noop, nil
	case config.SourceHTTP:
		httpClient := client.CreateHTTPClient(log, cfg.Source.Timeout)
		return NewHTTPSource(httpClient, cfg.Source.URL, employeeParser), noop, nil
	case config.SourcePostgres:
		dbpool, err := repository.NewDatabase(ctx,
			cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Dbname)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to DB: %w", err)
		}
		repo := repository.NewEmployeeRepository(dbpool, appMetrics)
		return NewDBSource(dbpool, repo), dbpool.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source.Kind)
	}
}
