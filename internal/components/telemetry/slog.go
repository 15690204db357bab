package telemetry

import (
	"io"
	"log/slog"
	"os"
	"strconv"
)

// InitSlog installs a text handler on stderr as the default slog logger.
func InitSlog(verbose bool) {
	InitSlogWriter(os.Stderr, verbose)
}

func InitSlogWriter(out io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	})))
}

// SlogAPI implements API on the default slog logger. Params are logged as
// a "params" group keyed by position.
type SlogAPI struct{}

func paramsGroup(params []any) slog.Attr {
	attrs := make([]any, len(params))
	for i, p := range params {
		attrs[i] = slog.Any(strconv.Itoa(i), p)
	}
	return slog.Group("params", attrs...)
}

func (SlogAPI) ReportBroken(id string, params ...any) {
	slog.Error("broken component", "id", id, paramsGroup(params))
}

func (SlogAPI) ReportWarning(id string, params ...any) {
	slog.Warn("warning", "id", id, paramsGroup(params))
}

func (SlogAPI) ReportDebug(message string, params ...any) {
	slog.Debug(message, paramsGroup(params))
}

func (SlogAPI) ReportCount(id string, count int64) {
	slog.Info("count", "id", id, "n", count)
}
