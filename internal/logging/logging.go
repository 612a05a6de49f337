// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the diagnostic logger shared by the CLI stages.
package logging

import (
	"fmt"
	"io"

	"github.com/phuslu/log"
)

// Formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var levels = map[string]log.Level{
	"trace": log.TraceLevel,
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
}

// New returns a logger writing entries at or above level to w, either as
// human-readable console lines or as JSON objects. An empty level means
// info and an empty format means console.
func New(level, format string, w io.Writer) (log.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, ok := levels[level]
	if !ok {
		return log.Logger{}, fmt.Errorf("unknown log level %q", level)
	}

	logger := log.Logger{Level: lvl, TimeFormat: "15:04:05"}
	switch format {
	case "", FormatConsole:
		logger.Writer = &log.ConsoleWriter{Writer: w}
	case FormatJSON:
		logger.TimeFormat = ""
		logger.Writer = &log.IOWriter{Writer: w}
	default:
		return log.Logger{}, fmt.Errorf("unknown log format %q", format)
	}
	return logger, nil
}

// Setup builds a logger with New and installs it as the package default
// used by log.Info, log.Debug, and friends.
func Setup(level, format string, w io.Writer) error {
	logger, err := New(level, format, w)
	if err != nil {
		return err
	}
	log.DefaultLogger = logger
	return nil
}
