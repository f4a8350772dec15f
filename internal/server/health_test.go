package server_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/UnknownOlympus/iris/internal/server"
	"github.com/stretchr/testify/require"
)

type MockPinger struct {
	ShouldFail bool
}

func (m *MockPinger) Ping(_ context.Context) error {
	if m.ShouldFail {
		return errors.New("mock source error")
	}
	return nil
}

type MockState struct {
	IsLoaded bool
}

func (m *MockState) Loaded() bool {
	return m.IsLoaded
}

func TestHealthChecker(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	tests := []struct {
		name         string
		loaded       bool
		sourceFails  bool
		expectedCode int
		expectedBody string
	}{
		{
			name:         "all systems ok",
			loaded:       true,
			expectedCode: http.StatusOK,
			expectedBody: `{"employees":"ok","source":"ok"}`,
		},
		{
			name:         "employees not loaded",
			loaded:       false,
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: `{"employees":"not_loaded","source":"ok"}`,
		},
		{
			name:         "source unreachable",
			loaded:       true,
			sourceFails:  true,
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: `{"employees":"ok","source":"unreachable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			healthChecker := server.NewHealthChecker(
				&MockPinger{ShouldFail: tt.sourceFails}, &MockState{IsLoaded: tt.loaded}, logger)

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rr := httptest.NewRecorder()

			healthChecker.ServeHTTP(rr, req)

			require.Equal(t, tt.expectedCode, rr.Code)
			require.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}
