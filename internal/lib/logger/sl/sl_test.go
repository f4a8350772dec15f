package sl_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/iris/internal/lib/logger/sl"
	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer // buffer for log capturing
	testLogger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{}))

	testLogger.Warn("expected result:", sl.Err(assert.AnError))

	assert.Contains(t, logBuf.String(), assert.AnError.Error())
}

func TestErr_Nil(t *testing.T) {
	t.Parallel()

	attr := sl.Err(nil)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "<nil>", attr.Value.String())
}

func TestOp(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	testLogger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{}))

	testLogger.Info("message", sl.Op("Loader.Load"))

	assert.Contains(t, logBuf.String(), "op=Loader.Load")
}
