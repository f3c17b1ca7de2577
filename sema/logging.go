package sema

import (
	"log/slog"
	"time"
)

// LoggingInterceptor logs every semantic action with its duration. Failed
// actions are logged at warning level.
func LoggingInterceptor(logger *slog.Logger) Interceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(call *Call, next ActionFunc) (any, error) {
		start := time.Now()

		logger.Debug("action started",
			slog.String("action", call.Action),
			slog.String("loc", call.Loc.String()),
		)

		res, err := next(call)
		duration := time.Since(start)

		if err != nil {
			logger.Warn("action failed",
				slog.String("action", call.Action),
				slog.String("loc", call.Loc.String()),
				slog.Duration("duration", duration),
				slog.Any("error", err),
			)
		} else {
			logger.Debug("action completed",
				slog.String("action", call.Action),
				slog.String("loc", call.Loc.String()),
				slog.Duration("duration", duration),
			)
		}

		return res, err
	}
}
