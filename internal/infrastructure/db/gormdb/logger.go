package gormdb

import (
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowThreshold = 200 * time.Millisecond

// zerologWriter adapts zerolog to gorm's Writer. zerolog's own Printf logs at
// debug, which would hide slow-query warnings in production.
type zerologWriter struct {
	log   zerolog.Logger
	level zerolog.Level
}

func (w zerologWriter) Printf(format string, args ...any) {
	w.log.WithLevel(w.level).Msgf(format, args...)
}

// newLogger routes gorm's SQL logging through zerolog. Queries are only
// logged when slow or failing, unless the zerolog level is debug or lower.
func newLogger(log zerolog.Logger, slow time.Duration) gormlogger.Interface {
	if slow <= 0 {
		slow = defaultSlowThreshold
	}

	w := zerologWriter{log: log.With().Str("component", "gorm").Logger(), level: zerolog.WarnLevel}
	level := gormlogger.Warn
	if log.GetLevel() <= zerolog.DebugLevel {
		level = gormlogger.Info
		w.level = zerolog.DebugLevel
	}

	return gormlogger.New(w, gormlogger.Config{
		SlowThreshold:             slow,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
