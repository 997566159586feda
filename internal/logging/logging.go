package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

const instrumentationName = "zen-dashboard"

// ShutdownFunc flushes any buffered records.
type ShutdownFunc func(context.Context) error

// New builds the process logger. format is text, json or otel; otel sends
// records through the OpenTelemetry log SDK to a stdout exporter.
func New(w io.Writer, level, format string) (*slog.Logger, ShutdownFunc, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	noop := func(context.Context) error { return nil }

	switch format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), noop, nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})), noop, nil
	case "otel":
		exporter, err := stdoutlog.New(stdoutlog.WithWriter(w))
		if err != nil {
			return nil, nil, fmt.Errorf("create log exporter: %w", err)
		}
		provider := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)))
		handler := otelslog.NewHandler(instrumentationName, otelslog.WithLoggerProvider(provider))
		return slog.New(levelHandler{Handler: handler, level: lvl}), provider.Shutdown, nil
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", format)
	}
}

func parseLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	if level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return lvl, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// levelHandler drops records below level before they reach the bridge.
type levelHandler struct {
	slog.Handler
	level slog.Level
}

func (h levelHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= h.level && h.Handler.Enabled(ctx, l)
}

func (h levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return levelHandler{Handler: h.Handler.WithAttrs(attrs), level: h.level}
}

func (h levelHandler) WithGroup(name string) slog.Handler {
	return levelHandler{Handler: h.Handler.WithGroup(name), level: h.level}
}
