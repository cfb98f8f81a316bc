package middleware

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"clinic-consent-api/internal/logger"
)

// Logging writes one line per unary call. Server faults log at error level.
func Logging(log *logger.Logger) grpc.UnaryServerInterceptor {
	entry := log.WithComponent("grpc")
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)

		code := status.Code(err)
		fields := logrus.Fields{
			"method":      info.FullMethod,
			"code":        code.String(),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if uid, ok := UserID(ctx); ok {
			fields["user_id"] = uid
		}
		switch code {
		case codes.OK:
			entry.WithFields(fields).Debug("rpc")
		case codes.Internal, codes.Unknown, codes.DataLoss:
			entry.WithFields(fields).WithError(err).Error("rpc failed")
		default:
			entry.WithFields(fields).Info("rpc rejected")
		}
		return resp, err
	}
}
