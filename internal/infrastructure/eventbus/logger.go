package eventbus

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
)

// loggerAdapter routes watermill logs into the service logger.
type loggerAdapter struct {
	logger *logging.Logger
}

func newLoggerAdapter(logger *logging.Logger) watermill.LoggerAdapter {
	return loggerAdapter{logger: logger}
}

func (a loggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.logger.Error(msg, append(fieldArgs(fields), "error", err)...)
}

func (a loggerAdapter) Info(msg string, fields watermill.LogFields) {
	a.logger.Info(msg, fieldArgs(fields)...)
}

func (a loggerAdapter) Debug(msg string, fields watermill.LogFields) {
	a.logger.Debug(msg, fieldArgs(fields)...)
}

// Trace is too chatty for the service log and is folded into debug.
func (a loggerAdapter) Trace(msg string, fields watermill.LogFields) {
	a.logger.Debug(msg, fieldArgs(fields)...)
}

func (a loggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return loggerAdapter{logger: a.logger.With(fieldArgs(fields)...)}
}

func fieldArgs(fields watermill.LogFields) []any {
	out := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}
