package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shogun-be/internal/api"
	"shogun-be/internal/attachment"
	"shogun-be/internal/category"
	"shogun-be/internal/comment"
	"shogun-be/internal/config"
	"shogun-be/internal/customization"
	"shogun-be/internal/db"
	"shogun-be/internal/logger"
	"shogun-be/internal/metrics"
	"shogun-be/internal/middleware"
	"shogun-be/internal/order"
	"shogun-be/internal/product"
	"shogun-be/internal/stats"
	"shogun-be/internal/storage"
	"shogun-be/internal/user"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

type server struct {
	handler http.Handler
	limiter *middleware.RateLimiter
	redis   *redis.Client
}

func (s *server) Close() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	srv, err := newServer(cfg, database)
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.limiter.Cleanup(ctx)

	logger.L().Info("server starting",
		zap.String("port", cfg.AppPort),
		zap.String("env", cfg.AppEnv),
		zap.String("storage", cfg.StorageDriver),
	)
	return startServerFunc(":"+cfg.AppPort, srv.handler)
}

// newServer wires repositories, services and the HTTP chain around database.
func newServer(cfg *config.Config, database *sql.DB) (*server, error) {
	verifier, err := user.NewVerifier(user.VerifierConfig{
		Secret:       cfg.JWTSecret,
		PublicKeyPEM: cfg.JWTPublicKey,
		Issuer:       cfg.JWTIssuer,
		Audience:     cfg.JWTAudience,
	})
	if err != nil {
		return nil, err
	}
	userSvc := user.NewService(user.NewRepository(database), verifier)

	productSvc := product.NewService(product.NewRepository(database))
	customizationSvc := customization.NewService(customization.NewRepository(database))
	categorySvc := category.NewService(category.NewRepository(database))

	orderSvc := order.NewService(order.NewRepository(database), productSvc, customizationSvc, order.PricingDefaults{
		Shipping: decimal.NewFromFloat(cfg.DefaultShipping),
		LeadDays: cfg.DefaultLeadDays,
	})
	statsSvc := stats.NewService(orderSvc)
	commentSvc := comment.NewService(comment.NewRepository(database))

	srv := &server{}
	store, files, err := newStore(cfg, srv)
	if err != nil {
		return nil, err
	}
	attachmentSvc := attachment.NewService(attachment.NewRepository(database), store, orderSvc, cfg.MaxUploadMB)

	reg := metrics.NewRegistry()
	deps := api.Deps{
		DB:             database,
		Products:       productSvc,
		Customizations: customizationSvc,
		Categories:     categorySvc,
		Orders:         orderSvc,
		Stats:          statsSvc,
		Comments:       commentSvc,
		Attachments:    attachmentSvc,
		Metrics:        reg,
		Version:        cfg.Version,
	}
	if files != nil {
		deps.Files = files
	}
	router := api.NewServer(deps)

	srv.limiter = middleware.NewRateLimiter(cfg.InternalSecretKey)

	var handler http.Handler = router
	handler = srv.limiter.Handler(handler)
	handler = middleware.MetricsMiddleware(reg)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.AuthMiddleware(userSvc)(handler)
	handler = logger.RequestIDMiddleware(handler)
	srv.handler = handler

	return srv, nil
}

// newStore picks the attachment backend. The local store also returns the
// locator that serves its download links.
func newStore(cfg *config.Config, srv *server) (storage.Store, *storage.LocalStore, error) {
	switch cfg.StorageDriver {
	case "supabase":
		if cfg.SupabaseURL == "" || cfg.SupabaseServiceRoleKey == "" {
			return nil, nil, errors.New("STORAGE_DRIVER=supabase needs SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY")
		}
		return storage.NewSupabaseStore(cfg.SupabaseURL, cfg.StorageBucket, cfg.SupabaseServiceRoleKey), nil, nil
	case "local", "":
		links := storage.NewMemoryLinkStore()
		if cfg.RedisAddr != "" {
			client, err := storage.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
			if err != nil {
				logger.L().Warn("redis unavailable, keeping download links in memory", zap.Error(err))
			} else {
				srv.redis = client
				links = storage.NewRedisLinkStore(client)
			}
		}
		local, err := storage.NewLocalStore(cfg.StorageDir, cfg.PublicBaseURL, links)
		if err != nil {
			return nil, nil, err
		}
		return local, local, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

// startServer serves until SIGINT/SIGTERM, then drains in-flight requests.
func startServer(addr string, handler http.Handler) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.L().Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
