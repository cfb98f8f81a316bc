package middleware

import (
	"context"
	"crypto/subtle"
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"clinic-consent-api/internal/rpc"
)

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

// Metadata set by the grpc-web bridge on relayed calls. The forwarded
// address is honoured only when the relay key matches.
const (
	RelayHeader     = "x-clinic-relay"
	ForwardedHeader = "x-forwarded-for"
)

// RateLimiter keeps one token bucket per client address.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*client
	r        rate.Limit
	burst    int
	relayKey string
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*client),
		r:       rate.Limit(rps),
		burst:   burst,
	}
}

// TrustRelay makes calls carrying key in RelayHeader count against the
// address in ForwardedHeader instead of the peer's.
func (rl *RateLimiter) TrustRelay(key string) {
	rl.mu.Lock()
	rl.relayKey = key
	rl.mu.Unlock()
}

// Cleanup drops clients idle for longer than idle, every interval, until
// ctx is done.
func (rl *RateLimiter) Cleanup(ctx context.Context, interval, idle time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			rl.evict(now, idle)
		}
	}
}

func (rl *RateLimiter) evict(now time.Time, idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	n := 0
	for key, c := range rl.clients {
		if now.Sub(c.seen) > idle {
			delete(rl.clients, key)
			n++
		}
	}
	return n
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if c, ok := rl.clients[key]; ok {
		c.seen = time.Now()
		return c.lim
	}
	l := rate.NewLimiter(rl.r, rl.burst)
	rl.clients[key] = &client{lim: l, seen: time.Now()}
	return l
}

// credentials and consent codes are the guessable surfaces
var limited = map[string]bool{
	rpc.FullMethod("Register"):         true,
	rpc.FullMethod("Login"):            true,
	rpc.FullMethod("SubmitAccessCode"): true,
}

func RateLimit(rl *RateLimiter) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if !limited[info.FullMethod] {
			return next(ctx, req)
		}
		if !rl.get(rl.clientKey(ctx)).Allow() {
			return nil, status.Error(codes.ResourceExhausted, "too many requests")
		}
		return next(ctx, req)
	}
}

// clientKey is the peer host, or the browser address for calls relayed by
// the bridge.
func (rl *RateLimiter) clientKey(ctx context.Context) string {
	if fwd, ok := rl.relayed(ctx); ok {
		return fwd
	}
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(p.Addr.String())
	if err != nil {
		host = p.Addr.String()
	}
	return host
}

func (rl *RateLimiter) relayed(ctx context.Context) (string, bool) {
	rl.mu.Lock()
	key := rl.relayKey
	rl.mu.Unlock()
	if key == "" {
		return "", false
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	got, fwd := md.Get(RelayHeader), md.Get(ForwardedHeader)
	if len(got) == 0 || len(fwd) == 0 || fwd[0] == "" {
		return "", false
	}
	if subtle.ConstantTimeCompare([]byte(got[0]), []byte(key)) != 1 {
		return "", false
	}
	return fwd[0], true
}
