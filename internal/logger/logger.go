package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Entries below level are discarded; warn and
// error go to stderr, everything else to stdout.
func New(level string) *zap.Logger {
	return NewWithWriters(level, os.Stdout, os.Stderr)
}

func NewWithWriters(level string, stdout, stderr io.Writer) *zap.Logger {
	threshold := ParseLevel(level)
	encoder := zapcore.NewJSONEncoder(encoderConfig())

	low := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= threshold && l < zapcore.WarnLevel
	})
	high := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= threshold && l >= zapcore.WarnLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(stdout)), low),
		zapcore.NewCore(encoder.Clone(), zapcore.Lock(zapcore.AddSync(stderr)), high),
	)

	return zap.New(core)
}

// ParseLevel maps debug|info|warn|error to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	}

	return zapcore.InfoLevel
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "event",
		NameKey:        zapcore.OmitKey,
		CallerKey:      zapcore.OmitKey,
		StacktraceKey:  zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
}
