package middleware

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"clinic-consent-api/internal/auth"
	"clinic-consent-api/internal/model"
	"clinic-consent-api/internal/rpc"
)

const secret = "test-secret"

func info(method string) *grpc.UnaryServerInfo {
	return &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod(method)}
}

func echoIdentity(ctx context.Context, _ any) (any, error) {
	uid, _ := UserID(ctx)
	return uid + "/" + string(Role(ctx)), nil
}

func withToken(tok string) context.Context {
	return metadata.NewIncomingContext(context.Background(),
		metadata.Pairs("authorization", "Bearer "+tok))
}

func TestAuth(t *testing.T) {
	ic := Auth(secret)

	t.Run("open method", func(t *testing.T) {
		out, err := ic(context.Background(), nil, info("Login"), echoIdentity)
		require.NoError(t, err)
		assert.Equal(t, "/", out)
	})

	t.Run("missing metadata", func(t *testing.T) {
		_, err := ic(context.Background(), nil, info("GetMyDetails"), echoIdentity)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("bad token", func(t *testing.T) {
		_, err := ic(withToken("garbage"), nil, info("GetMyDetails"), echoIdentity)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, err := auth.MakeToken("u1", model.RolePatient, "other")
		require.NoError(t, err)
		_, err = ic(withToken(tok), nil, info("GetMyDetails"), echoIdentity)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("valid", func(t *testing.T) {
		tok, err := auth.MakeToken("u1", model.RolePhysician, secret)
		require.NoError(t, err)
		out, err := ic(withToken(tok), nil, info("GetMyDetails"), echoIdentity)
		require.NoError(t, err)
		assert.Equal(t, "u1/physician", out)
	})
}

func fromPeer(addr string, md metadata.MD) context.Context {
	host, port, _ := net.SplitHostPort(addr)
	p, _ := net.LookupPort("tcp", port)
	ctx := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.ParseIP(host), Port: p}})
	if md != nil {
		ctx = metadata.NewIncomingContext(ctx, md)
	}
	return ctx
}

func ok(context.Context, any) (any, error) { return "ok", nil }

func TestRateLimit(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	ic := RateLimit(rl)

	// different ports on one host share a bucket
	for _, addr := range []string{"10.0.0.1:4000", "10.0.0.1:4001"} {
		_, err := ic(fromPeer(addr, nil), nil, info("Login"), ok)
		require.NoError(t, err)
	}
	_, err := ic(fromPeer("10.0.0.1:4002", nil), nil, info("SubmitAccessCode"), ok)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	_, err = ic(fromPeer("10.0.0.2:4000", nil), nil, info("Login"), ok)
	assert.NoError(t, err, "other hosts have their own bucket")

	for i := 0; i < 5; i++ {
		_, err = ic(fromPeer("10.0.0.1:4000", nil), nil, info("ListMyAppointments"), ok)
		assert.NoError(t, err, "unlimited method")
	}
}

func TestRateLimitForwardedFromBridge(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	rl.TrustRelay("relay-key")
	ic := RateLimit(rl)

	relayed := func(fwd string) context.Context {
		return fromPeer("127.0.0.1:5000", metadata.Pairs(RelayHeader, "relay-key", ForwardedHeader, fwd))
	}
	_, err := ic(relayed("203.0.113.7"), nil, info("Login"), ok)
	require.NoError(t, err)
	_, err = ic(relayed("203.0.113.8"), nil, info("Login"), ok)
	require.NoError(t, err, "each browser has its own bucket")
	_, err = ic(relayed("203.0.113.7"), nil, info("Login"), ok)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}

func TestForwardedHeaderNeedsRelayKey(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	rl.TrustRelay("relay-key")
	ic := RateLimit(rl)

	// a local caller rotating x-forwarded-for still shares one bucket
	spoof := func(fwd, key string) context.Context {
		return fromPeer("127.0.0.1:5000", metadata.Pairs(RelayHeader, key, ForwardedHeader, fwd))
	}
	_, err := ic(spoof("198.51.100.1", "guess"), nil, info("SubmitAccessCode"), ok)
	require.NoError(t, err)
	_, err = ic(spoof("198.51.100.2", "guess"), nil, info("SubmitAccessCode"), ok)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	assert.Equal(t, "127.0.0.1", rl.clientKey(fromPeer("127.0.0.1:1", metadata.Pairs(ForwardedHeader, "1.2.3.4"))))

	untrusting := NewRateLimiter(1, 1)
	assert.Equal(t, "10.1.1.1",
		untrusting.clientKey(fromPeer("10.1.1.1:1", metadata.Pairs(RelayHeader, "", ForwardedHeader, "1.2.3.4"))))
}

func TestEvict(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.get("a")
	rl.get("b")
	assert.Equal(t, 0, rl.evict(time.Now(), time.Minute))
	assert.Equal(t, 2, rl.evict(time.Now().Add(2*time.Minute), time.Minute))
}
