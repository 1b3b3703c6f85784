// Package logger provides a global logger for the application
package logger

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

func initLogger() {
	_ = godotenv.Load()

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Metric lines go to stdout, so logging defaults to warn to keep
	// piped output clean.
	logLevel := zerolog.WarnLevel

	level := strings.ToLower(os.Getenv("ELINOR_LOG_LEVEL"))
	switch level {
	case "trace":
		logLevel = zerolog.TraceLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	case "warn", "":
	default:
		log.Warn().Str("level", level).Msg("Unknown ELINOR_LOG_LEVEL - defaulting to warn")
	}

	zerolog.SetGlobalLevel(logLevel)
}

// Init initializes the logger with the configuration from the environment.
// It sets up the global logger to use zerolog with console output.
// Example usage:
//
//	logger.Init() <- inside whichever main() function in your entrypoint
//
// Then, `ELINOR_LOG_LEVEL=debug elinor evaluate ...`
func Init() {
	initLogger()
}
