package app

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/humanbelnik/kinoswipe/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger writes to stdout and, when a log file is configured, to a
// rotated file as well.
func newLogger(cfg config.Log) (*slog.Logger, func()) {
	var out io.Writer = os.Stdout
	closeFn := func() {}

	if cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, fileWriter)
		log.SetOutput(out)
		closeFn = func() { _ = fileWriter.Close() }
	}

	return slog.New(newHandler(out, cfg)), closeFn
}

func newHandler(out io.Writer, cfg config.Log) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.NewJSONHandler(out, opts)
	}
	return slog.NewTextHandler(out, opts)
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
