package logger

import (
	"time"

	"github.com/kildevaeld/polka"
	"github.com/kildevaeld/polka/httpcontext"

	"github.com/kildevaeld/strong"
	"go.uber.org/zap"
)

func Logger() polka.HandlerFunc {
	return LoggerWithZap(zap.L())
}

func LoggerWithZap(log *zap.Logger) polka.HandlerFunc {
	return func(ctx *httpcontext.Context, next polka.Next) {
		start := time.Now()

		req := ctx.Request()

		entry := log.With(zap.String("request", req.URL.String()),
			zap.String("method", req.Method),
			zap.String("remote", req.RemoteAddr))

		if reqID := req.Header.Get("X-Request-Id"); reqID != "" {
			entry = entry.With(zap.String("request_id", reqID))
		}

		entry.Info("started handling request")

		ctx.Response().OnWriteHeader(func(status int) {
			latency := time.Since(start)

			entry.Info("completed handling request",
				zap.Int("status", status),
				zap.String("text_status", strong.StatusText(status)),
				zap.Duration("took", latency),
				zap.Int64("measure#.latency", latency.Nanoseconds()))
		})

		next(nil)
	}
}
