// Copyright 2021 Jonathan Amsterdam.

// Package logging is a wrapper for the logrus logging package.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Fields aliases logrus.Fields.
type Fields = logrus.Fields

// Entry aliases logrus.Entry.
type Entry = logrus.Entry

// Logger is the interface for loggers used by the parsec command.
type Logger interface {
	Debug(...any)
	Debugf(string, ...any)

	Info(...any)
	Infof(string, ...any)

	Warn(...any)
	Warnf(string, ...any)

	Error(...any)
	Errorf(string, ...any)

	WithField(key string, value any) *Entry
	WithFields(Fields) *Entry

	SetLevel(string) error
	SetFormat(string) error
	SetOutput(io.Writer)
	SetJSONFormatter()
}

type logger struct {
	entry *logrus.Entry
}

// NewLogger creates a new logger at level Info that writes text to w.
func NewLogger(w io.Writer) Logger {
	l := logrus.New()
	l.SetOutput(w)
	return logger{entry: logrus.NewEntry(l)}
}

func (l logger) Debug(args ...any)                 { l.entry.Debug(args...) }
func (l logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l logger) Info(args ...any)                  { l.entry.Info(args...) }
func (l logger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l logger) Warn(args ...any)                  { l.entry.Warn(args...) }
func (l logger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l logger) Error(args ...any)                 { l.entry.Error(args...) }
func (l logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }

// WithField adds a field to the logger.
func (l logger) WithField(key string, value any) *Entry {
	return l.entry.WithField(key, value)
}

// WithFields adds a map of fields to the logger.
func (l logger) WithFields(fields Fields) *Entry {
	return l.entry.WithFields(fields)
}

// SetLevel sets the logger level from a name like "debug" or "warn".
func (l logger) SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.entry.Logger.SetLevel(lvl)
	return nil
}

// SetFormat selects the "text" or "json" formatter.
func (l logger) SetFormat(format string) error {
	switch format {
	case "text":
		l.entry.Logger.SetFormatter(&logrus.TextFormatter{})
	case "json":
		l.SetJSONFormatter()
	default:
		return &FormatError{Format: format}
	}
	return nil
}

// SetOutput sets the logger output.
func (l logger) SetOutput(w io.Writer) {
	l.entry.Logger.SetOutput(w)
}

// SetJSONFormatter sets the logger formatter to JSONFormatter.
func (l logger) SetJSONFormatter() {
	l.entry.Logger.SetFormatter(&logrus.JSONFormatter{})
}

// A FormatError reports an unknown log format.
type FormatError struct {
	Format string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unknown log format %q (want \"text\" or \"json\")", e.Format)
}
