package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/go-theft-auto/grid/config"
)

// newLogger builds the CLI logger. A configured file gets a rotating JSON
// log; otherwise a console writer on stderr is used unless the screen is
// taken, in which case logs are dropped.
func newLogger(cfg config.LoggingSection, stderr io.Writer, screenTaken bool) (zerolog.Logger, io.Closer, error) {
	lvl := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
		lvl = parsed
	}

	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    max(1, cfg.MaxSizeMB),
			MaxBackups: cfg.MaxBackups,
		}
		log := zerolog.New(lj).Level(lvl).With().Timestamp().Logger()
		return log, lj, nil
	}
	if screenTaken {
		return zerolog.Nop(), nil, nil
	}

	console := zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}
	return zerolog.New(console).Level(lvl).With().Timestamp().Logger(), nil, nil
}
