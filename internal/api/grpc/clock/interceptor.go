package clock

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// LoggingInterceptor attaches the base logger to every request context and
// logs each call with its status code and duration.
func LoggingInterceptor(base context.Context) grpc.UnaryServerInterceptor {
	requestLogger := logger.FromContext(base)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = logger.ToContext(ctx, requestLogger.With("method", info.FullMethod))
		started := time.Now()

		response, err := handler(ctx, req)

		code := status.Code(err)
		if code == codes.OK || code == codes.NotFound || code == codes.InvalidArgument ||
			code == codes.FailedPrecondition {
			logger.DebugKV(ctx, "Request handled", "code", code.String(), "duration", time.Since(started))
		} else {
			logger.WarnKV(ctx, "Request failed", "code", code.String(), "duration", time.Since(started), "error", err)
		}

		return response, err
	}
}
