package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"clinic-consent-api/internal/auth"
	"clinic-consent-api/internal/model"
	"clinic-consent-api/internal/rpc"
)

type ctxKey string

const (
	userIDKey ctxKey = "uid"
	roleKey   ctxKey = "role"
)

// skip auth for these
var open = map[string]bool{
	rpc.FullMethod("Register"): true,
	rpc.FullMethod("Login"):    true,
}

// WithIdentity stores the authenticated caller in ctx.
func WithIdentity(ctx context.Context, uid string, role model.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, uid)
	return context.WithValue(ctx, roleKey, role)
}

func UserID(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(userIDKey).(string)
	return uid, ok && uid != ""
}

func Role(ctx context.Context) model.Role {
	r, _ := ctx.Value(roleKey).(model.Role)
	return r
}

func Auth(secret string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if open[info.FullMethod] {
			return next(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		// Authorization: Bearer <jwt>
		raw := ""
		if vals := md.Get("authorization"); len(vals) > 0 {
			raw = strings.TrimPrefix(vals[0], "Bearer ")
		}
		if raw == "" {
			return nil, status.Error(codes.Unauthenticated, "no token")
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "bad token")
		}

		return next(WithIdentity(ctx, claims.UserID, claims.Role), req)
	}
}
