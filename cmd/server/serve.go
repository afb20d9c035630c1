package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/sanagustin/backend/internal/auth"
	"github.com/sanagustin/backend/internal/config"
	"github.com/sanagustin/backend/internal/lock"
	"github.com/sanagustin/backend/internal/metrics"
	"github.com/sanagustin/backend/internal/middleware"
	"github.com/sanagustin/backend/internal/reservation"
	"github.com/sanagustin/backend/internal/service"
	"github.com/sanagustin/backend/internal/storage/sqlite"
	"github.com/sanagustin/backend/pkg/api/apiconnect"
)

func serveCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Connect API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				cfg.Port, _ = cmd.Flags().GetInt("port")
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().Int("port", 8080, "listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	if cfg.InsecureSecret() {
		slog.Warn("JWT_SECRET not set, using the development default")
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	locker, closeLocker, err := newLocker(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	orch := reservation.New(store, reservation.WithLocker(locker), reservation.WithLogger(slog.Default()))

	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager, apiconnect.AuthServiceRegisterProcedure),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewReservationServiceHandler(service.NewReservationService(store, orch), interceptors))
	mux.Handle(apiconnect.NewCommunityServiceHandler(service.NewCommunityService(store), interceptors))
	mux.Handle(apiconnect.NewAuthServiceHandler(service.NewAuthService(store, slog.Default()), interceptors))
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := store.ListCommonAreas(r.Context()); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	handler := h2c.NewHandler(corsMiddleware(cfg.CORSOrigins, mux), &http2.Server{})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newLocker picks the Redis locker when REDIS_URL is set, the in-process
// one otherwise.
func newLocker(ctx context.Context, cfg *config.Config) (lock.Locker, func(), error) {
	if cfg.RedisURL == "" {
		return lock.NewLocal(), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	slog.Info("Using Redis reservation locks", "addr", opts.Addr)

	return lock.NewRedis(client, redisLockTTL(), 20*time.Millisecond), func() { client.Close() }, nil
}

// redisLockTTL outlives the longest time a booking may hold its lock: every
// retry of a busy transaction waiting the full SQLite busy timeout, plus a
// margin for the work done inside the transaction.
func redisLockTTL() time.Duration {
	return reservation.MaxLockHold(sqlite.BusyTimeout) + 5*time.Second
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(origins []string, next http.Handler) http.Handler {
	allowAll := slices.Contains(origins, "*")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case allowAll:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(origins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms, X-Request-Id")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, X-Request-Id, Reservation-Error")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
