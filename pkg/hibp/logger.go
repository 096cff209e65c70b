// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// leveledLogger sends retryablehttp logs to zerolog. Retry chatter goes to debug.
type leveledLogger struct {
	z zerolog.Logger
}

func newLeveledLogger() *leveledLogger {
	return &leveledLogger{z: log.With().Str("component", "hibp").Logger()}
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.z.Error().Fields(keysAndValues).Msg(msg)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.z.Debug().Fields(keysAndValues).Msg(msg)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.z.Debug().Fields(keysAndValues).Msg(msg)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.z.Warn().Fields(keysAndValues).Msg(msg)
}
