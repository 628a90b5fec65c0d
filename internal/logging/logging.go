// Package logging configures the process wide slog logger. The terminal
// belongs to the UI, so records go to a rotated file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/idursun/wndkit/internal/config"
)

const (
	levelEnv = "WNDKIT_LOG_LEVEL"
	fileEnv  = "WNDKIT_LOG_FILE"
)

// Init installs the default logger described by cfg. Environment variables
// override the configured level and file. The returned function closes the
// log file.
func Init(cfg config.LogConfig, version string) (func() error, error) {
	if v := os.Getenv(levelEnv); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv(fileEnv); v != "" {
		cfg.File = v
	}

	path := resolvePath(cfg.File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: creating log dir: %w", err)
	}
	rot := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    positiveOr(cfg.MaxSizeMB, 5),
		MaxBackups: positiveOr(cfg.MaxBackups, 3),
		Compress:   true,
	}

	logger := New(rot, ParseLevel(cfg.Level)).With(
		slog.String("app", "wndkit"),
		slog.String("version", version),
	)
	slog.SetDefault(logger)
	return rot.Close, nil
}

// New returns a text logger writing to w.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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

func resolvePath(file string) string {
	if file = strings.TrimSpace(file); file != "" {
		return file
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "wndkit", "wndkit.log")
}

func positiveOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
