package rpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mcoot/pairings-web/internal/wire"
)

// LoggingInterceptor logs every unary call with its status code. Internal
// failures are logged at error level with their cause.
func LoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		attrs := []any{
			slog.String("method", wire.MethodName(info.FullMethod)),
			slog.String("code", code.String()),
			slog.Duration("duration", time.Since(start)),
		}
		switch code {
		case codes.OK:
			logger.Info("rpc", attrs...)
		case codes.Internal, codes.Unknown:
			logger.Error("rpc failed", append(attrs, slog.Any("error", err))...)
		default:
			logger.Info("rpc rejected", append(attrs, slog.String("reason", status.Convert(err).Message()))...)
		}
		return resp, err
	}
}
