package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/countdown-tracker/config"
)

// setupLogging points the global logger at the configured file.
// The terminal is in raw mode while the widget runs, so nothing is logged to it.
// debug forces the debug level. Returns nil when logging is disabled
func setupLogging(cfg config.LogConfig, debug bool) (io.Closer, error) {
	level := cfg.Level
	if debug {
		level = "debug"
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)

	if lvl == zerolog.Disabled {
		log.Logger = zerolog.New(io.Discard)
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	log.Debug().Str("file", cfg.File).Str("level", lvl.String()).Msg("logging started")
	return f, nil
}
