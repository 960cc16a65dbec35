// Package logging provides the structured logger shared by flowbox packages.
//
// It wraps [log/slog] behind a single initialization point so every component
// writes through the same handler at the same level. FLOWBOX_LOG_LEVEL selects
// the level at startup (debug, info, warn, error); INFO is the default.
//
//	log := logging.New("scene")
//	log.Info("loaded scene", "path", p, "chips", n)
//
// Output goes to stderr so it never mixes with the canvas or the terminal UI
// on stdout.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LevelEnv names the environment variable read on first use.
const LevelEnv = "FLOWBOX_LOG_LEVEL"

var (
	initLogger sync.Once
	baseLogger *slog.Logger
)

// New returns a logger tagged with component. An empty component returns the
// base logger.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		baseLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLevel(os.Getenv(LevelEnv)),
		}))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

func parseLevel(value string) slog.Level {
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
