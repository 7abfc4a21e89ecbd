// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	LogFileName   string
	LogToConsole  bool
	LogLevel      string
	LogFormatJSON bool
	// Console receives the console log lines; nil means stderr, so logs
	// never mix with command output on stdout.
	Console io.Writer
}

// Setup configures the standard logrus logger. The returned func closes the
// log file, if any, and is safe to call when logging only to the console.
func Setup(params LoggerSetupParams) func() error {
	console := params.Console
	if console == nil {
		console = os.Stderr
	}

	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.LogFileName == "" {
		logrus.SetOutput(console)
		logrus.Debugln("writing logs only to the console")
		return func() error { return nil }
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		LocalTime:  false, // false -> use UTC
		Compress:   true,
	}

	if params.LogToConsole {
		logrus.SetOutput(io.MultiWriter(console, lumberJackLogger))
		logrus.Debugln("writing logs to file and the console")
	} else {
		logrus.SetOutput(lumberJackLogger)
	}
	return lumberJackLogger.Close
}

// GetLevel parses a level name; unknown names mean info.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
