package employees_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/iris/internal/client"
	"github.com/UnknownOlympus/iris/internal/config"
	"github.com/UnknownOlympus/iris/internal/metrics"
	"github.com/UnknownOlympus/iris/internal/models"
	"github.com/UnknownOlympus/iris/internal/parser"
	"github.com/UnknownOlympus/iris/internal/services/employees"
	mocks "github.com/UnknownOlympus/iris/mock"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const employeeDocument = `[
	{"firstname": "Ann", "extension": 102, "location": "Location 1"},
	{"firstname": "Bo", "lastname": "Lee", "extension": 101, "location": "Location 2"}
]`

var expectedEmployees = []models.Employee{
	{Firstname: "Ann", Extension: 102, Location: "Location 1"},
	{Firstname: "Bo", Lastname: "Lee", Extension: 101, Location: "Location 2"},
}

type mockPinger struct {
	err error
}

func (m mockPinger) Ping(_ context.Context) error {
	return m.err
}

func (m mockPinger) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("not used")
}

func TestLoader_Load(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("should record a successful load", func(t *testing.T) {
		appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
		source := mocks.NewSource(t)
		source.On("Name").Return("mock").Maybe()
		source.On("Load", mock.Anything).Return(expectedEmployees, nil).Once()

		loader := employees.NewLoader(logger, source, appMetrics)
		loaded, err := loader.Load(t.Context(), time.Second)

		require.NoError(t, err)
		assert.Equal(t, expectedEmployees, loaded)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.Loads.WithLabelValues("success")), 0)
		assert.InDelta(t, 0, testutil.ToFloat64(appMetrics.Loads.WithLabelValues("failure")), 0)
		assert.InDelta(t, 2, testutil.ToFloat64(appMetrics.EmployeesLoaded), 0)
		assert.Same(t, source, loader.Source())
	})

	t.Run("should report a failed load without retrying", func(t *testing.T) {
		appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
		source := mocks.NewSource(t)
		source.On("Name").Return("mock").Maybe()
		source.On("Load", mock.Anything).Return(nil, assert.AnError).Once()

		loader := employees.NewLoader(logger, source, appMetrics)
		loaded, err := loader.Load(t.Context(), time.Second)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to load employees")
		assert.Nil(t, loaded)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.Loads.WithLabelValues("failure")), 0)
		assert.InDelta(t, 0, testutil.ToFloat64(appMetrics.EmployeesLoaded), 0)
		source.AssertNumberOfCalls(t, "Load", 1)
	})

	t.Run("should bound the attempt with a deadline", func(t *testing.T) {
		appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
		source := mocks.NewSource(t)
		source.On("Name").Return("mock").Maybe()
		source.On("Load", mock.MatchedBy(func(ctx context.Context) bool {
			_, ok := ctx.Deadline()
			return ok
		})).Return(expectedEmployees, nil).Once()

		_, err := employees.NewLoader(logger, source, appMetrics).Load(t.Context(), time.Minute)

		require.NoError(t, err)
	})
}

func TestFileSource(t *testing.T) {
	defer filet.CleanUp(t)

	t.Run("load", func(t *testing.T) {
		file := filet.TmpFile(t, "", employeeDocument)
		source := employees.NewFileSource(file.Name(), parser.NewEmployeeParser())

		loaded, err := source.Load(t.Context())

		require.NoError(t, err)
		assert.Equal(t, expectedEmployees, loaded)
		assert.Equal(t, "file", source.Name())
		require.NoError(t, source.Ping(t.Context()))
	})

	t.Run("malformed content", func(t *testing.T) {
		file := filet.TmpFile(t, "", `{"not": "a list"}`)
		source := employees.NewFileSource(file.Name(), parser.NewEmployeeParser())

		_, err := source.Load(t.Context())

		require.ErrorIs(t, err, parser.ErrMalformedDocument)
	})

	t.Run("missing file", func(t *testing.T) {
		source := employees.NewFileSource("/does/not/exist.json", parser.NewEmployeeParser())

		_, err := source.Load(t.Context())

		require.ErrorContains(t, err, "failed to open employee file")
		require.Error(t, source.Ping(t.Context()))
	})
}

func TestHTTPSource(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("load", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(employeeDocument))
		}))
		defer ts.Close()

		source := employees.NewHTTPSource(client.CreateHTTPClient(logger, time.Second), ts.URL, parser.NewEmployeeParser())

		loaded, err := source.Load(t.Context())

		require.NoError(t, err)
		assert.Equal(t, expectedEmployees, loaded)
		assert.Equal(t, "http", source.Name())
		require.NoError(t, source.Ping(t.Context()))
	})

	t.Run("server error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		source := employees.NewHTTPSource(client.CreateHTTPClient(logger, time.Second), ts.URL, parser.NewEmployeeParser())

		_, err := source.Load(t.Context())

		require.ErrorIs(t, err, client.ErrUnexpectedStatus)
		require.ErrorIs(t, source.Ping(t.Context()), client.ErrUnexpectedStatus)
	})

	t.Run("malformed body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`<html>not json</html>`))
		}))
		defer ts.Close()

		source := employees.NewHTTPSource(client.CreateHTTPClient(logger, time.Second), ts.URL, parser.NewEmployeeParser())

		_, err := source.Load(t.Context())

		require.ErrorIs(t, err, parser.ErrMalformedDocument)
	})
}

func TestDBSource(t *testing.T) {
	t.Run("load", func(t *testing.T) {
		repo := mocks.NewEmployeeRepoIface(t)
		repo.On("ListEmployees", mock.Anything).Return(expectedEmployees, nil).Once()

		source := employees.NewDBSource(mockPinger{}, repo)
		loaded, err := source.Load(t.Context())

		require.NoError(t, err)
		assert.Equal(t, expectedEmployees, loaded)
		assert.Equal(t, "postgres", source.Name())
		require.NoError(t, source.Ping(t.Context()))
	})

	t.Run("query error", func(t *testing.T) {
		repo := mocks.NewEmployeeRepoIface(t)
		repo.On("ListEmployees", mock.Anything).Return(nil, assert.AnError).Once()

		source := employees.NewDBSource(mockPinger{err: assert.AnError}, repo)
		_, err := source.Load(t.Context())

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, source.Ping(t.Context()), "database unavailable")
	})
}

func TestNewSource(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	t.Run("file", func(t *testing.T) {
		cfg := &config.Config{Source: config.SourceConfig{Kind: config.SourceFile, Path: "employees.json"}}

		source, closer, err := employees.NewSource(t.Context(), logger, cfg, appMetrics)
		defer closer()

		require.NoError(t, err)
		assert.IsType(t, &employees.FileSource{}, source)
	})

	t.Run("http", func(t *testing.T) {
		cfg := &config.Config{Source: config.SourceConfig{
			Kind: config.SourceHTTP, URL: "http://example.com/employees.json", Timeout: time.Second,
		}}

		source, closer, err := employees.NewSource(t.Context(), logger, cfg, appMetrics)
		defer closer()

		require.NoError(t, err)
		assert.IsType(t, &employees.HTTPSource{}, source)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := &config.Config{Source: config.SourceConfig{Kind: "ftp"}}

		source, closer, err := employees.NewSource(t.Context(), logger, cfg, appMetrics)
		defer closer()

		require.ErrorIs(t, err, employees.ErrUnknownSource)
		assert.Nil(t, source)
	})
}
