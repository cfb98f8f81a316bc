package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"clinic-consent-api/internal/audit"
	"clinic-consent-api/internal/authz"
	"clinic-consent-api/internal/clock"
	"clinic-consent-api/internal/config"
	"clinic-consent-api/internal/grpcweb"
	"clinic-consent-api/internal/handler"
	"clinic-consent-api/internal/logger"
	"clinic-consent-api/internal/metrics"
	"clinic-consent-api/internal/middleware"
	"clinic-consent-api/internal/otp"
	"clinic-consent-api/internal/rpc"
	"clinic-consent-api/internal/scheduling"
	"clinic-consent-api/internal/store"
	"clinic-consent-api/internal/store/memory"
)

// backend is everything the services need from a store.
type backend interface {
	handler.AccountStore
	scheduling.Store
	authz.LedgerStore
	audit.Sink
	PurgeAuthorizations(ctx context.Context) (int64, error)
}

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (backend, func(), error) {
	if cfg.StoreDriver == "memory" {
		log.WithComponent("server").Warn("using in-memory store, data is lost on exit")
		return memory.New(), func() {}, nil
	}

	pool, err := connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	n, err := store.Migrate(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	log.WithComponent("server").WithField("applied", n).Info("connected to postgres")
	return store.New(pool), pool.Close, nil
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	slog := log.WithComponent("server")

	st, closeStore, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	if n, err := st.PurgeAuthorizations(ctx); err != nil {
		return fmt.Errorf("purge stale authorizations: %w", err)
	} else if n > 0 {
		slog.WithField("rows", n).Info("dropped authorizations from a previous run")
	}
	if err := ensureSuperAdmin(ctx, st, cfg.SuperAdminLogin, cfg.SuperAdminPassword, slog); err != nil {
		return err
	}

	gen, err := otp.NewGenerator(cfg.OTPSecret, cfg.OTPDigits, cfg.OTPStep())
	if err != nil {
		return err
	}
	clk := clock.System{}
	m := metrics.New()
	events := audit.New(st, clk, log)
	consent := authz.New(gen, authz.NewLedger(st, clk, log.WithComponent("ledger")), events, clk, log,
		authz.WithObserver(m))

	h := handler.New(handler.Deps{
		Accounts:        st,
		Engine:          scheduling.New(st, clk, log.WithComponent("scheduling")),
		Window:          scheduling.Window{Days: cfg.BookingHorizonDays},
		Consent:         consent,
		Audit:           events,
		Metrics:         m,
		Clock:           clk,
		Log:             log,
		Secret:          cfg.JWTSecret,
		SuperAdminLogin: cfg.SuperAdminLogin,
	})
	go h.SweepPending(ctx, cfg.OTPStep()/2)

	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rl.Cleanup(ctx, time.Minute, 3*time.Minute)
	// only the bridge knows this key, so only its forwarded addresses count
	relayKey := uuid.NewString()
	rl.TrustRelay(relayKey)

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			m.UnaryInterceptor(),
			middleware.RateLimit(rl),
			middleware.Auth(cfg.JWTSecret),
			middleware.Logging(log),
		),
	)
	rpc.RegisterClinicServer(srv, h)
	hs := health.NewServer()
	hs.SetServingStatus(rpc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	lis, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	go func() {
		slog.Infof("grpc on :%s", cfg.Port)
		if err := srv.Serve(lis); err != nil {
			slog.WithError(err).Error("grpc server stopped")
		}
	}()

	// browsers reach the gRPC server through the bridge on localhost
	bridge, err := grpcweb.New("localhost:"+cfg.Port, log.WithComponent("grpcweb"), grpcweb.WithRelayKey(relayKey))
	if err != nil {
		srv.Stop()
		return err
	}
	defer bridge.Close()

	httpSrv := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           router(m, bridge),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Infof("grpc-web on :%s", cfg.WebPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.WithError(err).Error("http server stopped")
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	hs.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.WithError(err).Warn("http shutdown")
	}
	srv.GracefulStop()
	return nil
}

func router(m *metrics.Metrics, bridge *grpcweb.Bridge) http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.PathPrefix("/" + rpc.ServiceName + "/").Handler(bridge.Handler())
	return r
}

