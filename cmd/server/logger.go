package main

import (
	"log/slog"
	"os"

	catalog "github.com/goliatone/go-catalog"
)

// slogLogger adapts slog to the catalog.Logger surface; arguments are
// key-value pairs.
type slogLogger struct {
	l *slog.Logger
}

func newLogger() catalog.Logger {
	return &slogLogger{
		l: slog.New(slog.NewTextHandler(os.Stdout, nil)),
	}
}

func (s *slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }
