package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/WelcomerTeam/Sandwich-Events/internal"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	configurationLocation := flag.String("configuration", "sandwich-events.yaml", "Path of the configuration file")
	envLocation := flag.String("env", ".env", "Path of an optional .env file loaded before the configuration")
	loggingLevel := flag.String("level", "info", "Logging level")

	loggingFileEnabled := flag.Bool("logFileEnabled", false, "When enabled, will save logs to a file")
	loggingFilename := flag.String("logFilename", "logs/sandwich-events.log", "Location to save logs to")
	loggingFileMaxSize := flag.Int("logFileMaxSize", 1024, "Maximum size of a log file in megabytes")
	loggingFileMaxBackups := flag.Int("logFileMaxBackups", 16, "Maximum number of old log files to keep")
	loggingFileMaxAge := flag.Int("logFileMaxAge", 14, "Maximum days to keep old log files")
	loggingFileCompress := flag.Bool("logFileCompress", true, "When enabled, old log files are compressed")

	flag.Parse()

	// The .env file is optional.
	_ = godotenv.Load(*envLocation)

	level, err := zerolog.ParseLevel(*loggingLevel)
	if err != nil {
		panic(`zerolog.ParseLevel(` + *loggingLevel + `): ` + err.Error())
	}

	zerolog.SetGlobalLevel(level)

	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.Stamp,
		},
	}

	if *loggingFileEnabled {
		writers = append(writers, &lumberjack.Logger{
			Filename:   *loggingFilename,
			MaxSize:    *loggingFileMaxSize,
			MaxBackups: *loggingFileMaxBackups,
			MaxAge:     *loggingFileMaxAge,
			Compress:   *loggingFileCompress,
		})
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()

	configuration, err := internal.NewConfigProviderFromPath(*configurationLocation).GetConfig(context.Background())
	if err != nil {
		logger.Panic().Err(err).Str("path", *configurationLocation).Msg("Failed to load configuration")
	}

	sd, err := internal.NewStickerDaemon(logger, configuration, nil)
	if err != nil {
		logger.Panic().Err(err).Msg("Cannot create sandwich-events")
	}

	if err = sd.Open(); err != nil {
		logger.Panic().Err(err).Msg("Cannot open sandwich-events")
	}

	// Wait for signal to close.
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-signalCh

	if err = sd.Close(); err != nil {
		logger.Warn().Err(err).Msg("Exception whilst closing sandwich-events")
	}
}
