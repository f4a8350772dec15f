package sl

import (
	"log/slog"
)

// Err creates a slog.Attr with the given error. A nil error is logged as "<nil>".
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}

	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op creates the "op" attribute used to tag log lines with the current operation.
func Op(opn string) slog.Attr {
	return slog.String("op", opn)
}
