// Package logging configures the process-wide zerolog logger: a styled
// console stream on stderr plus an optional append-only file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// stateFile is the default sink location under the XDG state directory.
const stateFile = "pulsim/pulsim.log"

// Setup configures the global logger based on verbosity:
// 0 warn, 1 info, 2 debug, 3+ trace.
//
// logFile overrides the default XDG state path; "off" disables the file
// sink entirely. Console colors turn off when noColor is set or stderr
// is not a terminal.
func Setup(verbosity int, noColor bool, logFile string) {
	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    noColor || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	writers := []io.Writer{consoleWriter}
	path, err := resolveLogFile(logFile)
	if err == nil && path != "" {
		var file *os.File
		if file, err = openLogFile(path); err == nil {
			writers = append(writers, file)
		}
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	// Report the missing sink with the logger we just built.
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("log file unavailable, console only")
	}

	// Caller information pays off only when debugging.
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", path).Msg("logger initialized")
}

// GetLogger returns a contextualized logger for one component.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// resolveLogFile picks the sink path: explicit override first, then the
// XDG state home, or nothing at all for "off".
func resolveLogFile(override string) (string, error) {
	switch override {
	case "off":
		return "", nil
	case "":
		return xdg.StateFile(stateFile)
	default:
		return override, nil
	}
}

// openLogFile creates parent directories and opens the sink in append
// mode.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("logging: create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return file, nil
}
