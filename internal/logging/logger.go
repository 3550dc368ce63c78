package logging

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/2beens/gymxp/pkg"
)

const (
	logFileMaxSizeMB  = 50
	logFileMaxBackups = 10
)

// sentryLevels are forwarded to sentry when it is enabled.
var sentryLevels = []logrus.Level{
	logrus.PanicLevel,
	logrus.FatalLevel,
	logrus.ErrorLevel,
}

type LoggerSetupParams struct {
	// LogFileName is the rotated log file, empty logs to stdout only.
	LogFileName   string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool

	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the standard logrus logger used across the service.
func Setup(params LoggerSetupParams) {
	configure(logrus.StandardLogger(), params)
}

func configure(logger *logrus.Logger, params LoggerSetupParams) {
	logger.SetFormatter(formatter(params.LogFormatJSON))
	logger.SetLevel(GetLevel(params.LogLevel))

	if params.SentryEnabled {
		if err := initSentry(params); err != nil {
			logger.Errorf("sentry init: %s", err)
		} else {
			logger.AddHook(NewSentryHook(sentryLevels))
			logger.Infof("sentry enabled for [%s]", params.Environment)
		}
	}

	out, target := logOutput(params)
	logger.SetOutput(out)
	logger.Infof("logging to %s, level %s", target, logger.GetLevel())
}

func formatter(json bool) logrus.Formatter {
	if json {
		return &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	}
}

func initSentry(params LoggerSetupParams) error {
	if params.SentryDSN == "" {
		return errors.New("dsn not set")
	}
	return sentry.Init(sentry.ClientOptions{
		Dsn:              params.SentryDSN,
		Environment:      params.Environment,
		ServerName:       params.SentryServerName,
		TracesSampleRate: 1.0,
	})
}

// logOutput returns the writer for the logger and a short description of it.
func logOutput(params LoggerSetupParams) (io.Writer, string) {
	if params.LogFileName == "" {
		return os.Stdout, "stdout"
	}

	file := rotatingFile(params.LogFileName)
	if params.LogToStdout {
		return pkg.NewCombinedWriter(os.Stdout, file), file.Filename + " and stdout"
	}
	return file, file.Filename
}

func rotatingFile(name string) *lumberjack.Logger {
	if !strings.HasSuffix(name, ".log") {
		name += ".log"
	}
	return &lumberjack.Logger{
		Filename:   name,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		LocalTime:  false, // rotated file names in UTC
		Compress:   true,
	}
}

// GetLevel parses a level name, unknown names fall back to trace.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.TraceLevel
	}
	return parsed
}
