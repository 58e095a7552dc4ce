// Package logging wires go.uber.org/zap into kwic's long-running
// components (corpus load, the HTTP/WebSocket server, the CLI), injected
// explicitly rather than read off a package-level global (spec.md §9,
// "Global state" applies just as much to the ambient stack as to
// default_attr/max_quant).
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger for the given level name ("debug", "info",
// "warn", "error") and encoding (JSON when json is true, console
// otherwise), mirroring the teacher's development/production logger
// split (internal/lsp/server.go uses zap.NewDevelopment as a fallback).
func New(level string, json bool) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if !json {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// Nop returns a logger that discards everything, used in tests and any
// code path that doesn't wire a real one through.
func Nop() *zap.Logger {
	return zap.NewNop()
}
