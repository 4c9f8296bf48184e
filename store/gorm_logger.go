// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm/logger"
)

const slowQuery = time.Second

// GormLogger adapts a zerolog logger to GORM's logger interface.
type GormLogger struct {
	Log      zerolog.Logger
	LogLevel logger.LogLevel
}

// NewGormLogger returns a GORM logger writing to l at warn level. A nil
// l discards all output.
func NewGormLogger(l *zerolog.Logger) *GormLogger {
	log := zerolog.Nop()
	if l != nil {
		log = l.With().Str("component", "store").Logger()
	}
	return &GormLogger{
		Log:      log,
		LogLevel: logger.Warn,
	}
}

// LogMode returns a copy of the logger at the given level.
func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

// Info logs at info level.
func (l *GormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Info {
		l.Log.Info().Interface("data", data).Msg(msg)
	}
}

// Warn logs at warn level.
func (l *GormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Warn {
		l.Log.Warn().Interface("data", data).Msg(msg)
	}
}

// Error logs at error level.
func (l *GormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Error {
		l.Log.Error().Interface("data", data).Msg(msg)
	}
}

// Trace logs one SQL statement.
func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	event := func(e *zerolog.Event) *zerolog.Event {
		return e.Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed)
	}

	switch {
	case err != nil && l.LogLevel >= logger.Error && err.Error() != "record not found":
		event(l.Log.Error()).Err(err).Msg("sql error")
	case elapsed > slowQuery && l.LogLevel >= logger.Warn:
		event(l.Log.Warn()).Dur("threshold", slowQuery).Msg("slow sql")
	case l.LogLevel == logger.Info:
		event(l.Log.Debug()).Msg("sql")
	}
}
