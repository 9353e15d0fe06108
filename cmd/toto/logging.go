package main

import (
	"io"
	"log/slog"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// slogDebugLevel is where slog's Debug lands once it has passed through
// logr (as V(4)) and zapr
const slogDebugLevel = zapcore.Level(-4)

// newLogger returns the logger handed to the tokenizer. Without --debug it
// discards everything; with it, a zap development logger writes to w.
func newLogger(debug bool, w io.Writer) (*slog.Logger, func(), error) {
	if !debug {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(slogDebugLevel),
	)
	zl := zap.New(core, zap.Development())

	logger := zapr.NewLogger(zl)
	return slog.New(logr.ToSlogHandler(logger)), func() { _ = zl.Sync() }, nil
}
