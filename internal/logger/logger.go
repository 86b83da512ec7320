package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(levelFromEnv())
	logger, _ := cfg.Build()
	return logger.Sugar()
}

// levelFromEnv reads SUITE_LOG. Anything unrecognized (including unset) keeps
// the logger at error level so normal runs stay quiet.
func levelFromEnv() zapcore.Level {
	val := strings.ToLower(os.Getenv("SUITE_LOG"))
	for _, lvl := range []zapcore.Level{
		zapcore.DebugLevel,
		zapcore.InfoLevel,
		zapcore.WarnLevel,
		zapcore.ErrorLevel,
		zapcore.PanicLevel,
		zapcore.FatalLevel,
	} {
		if val == lvl.String() {
			return lvl
		}
	}
	if val == "off" {
		return zapcore.FatalLevel + 1
	}
	return zapcore.ErrorLevel
}

var (
	Logger = newLogger()
	Debugw = Logger.Debugw
	Debug  = Logger.Debug
	Debugf = Logger.Debugf
	Info   = Logger.Info
	Warn   = Logger.Warn
)

// Print and Printfln write user-facing output to stderr, bypassing the
// structured logger.
func Print(a ...interface{}) {
	fmt.Fprintln(os.Stderr, a...)
}

func Printfln(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
}
