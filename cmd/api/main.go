package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"social-api/internal/config"
	"social-api/internal/db"
	apihttp "social-api/internal/http"
	"social-api/internal/repository"
	"social-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

// run arma las dependencias y sirve hasta el apagado; los recursos se
// cierran con defer antes de volver.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()

	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("db migrate: %w", err)
		}
	}

	var (
		limiter     service.LoginRateLimiter
		redisClient *redis.Client
		redisPinger apihttp.RedisPinger
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		redisPinger = redisClient

		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		}
		cancel()
		limiter = service.NewRedisLoginRateLimiter(redisClient, cfg.LoginAttemptWindow, cfg.LoginMaxAttempts)
	} else {
		limiter = service.NewLoginRateLimiter(cfg.LoginAttemptWindow, cfg.LoginMaxAttempts)
	}

	jwtSvc := service.NewJWTService(cfg.JWTKey, cfg.JWTTTL())
	if !jwtSvc.Configured() {
		logger.Warn("jwt key not configured; login will fail")
	}

	userRepo := repository.NewPgUserRepository(pool)
	postRepo := repository.NewPgPostRepository(pool)

	authSvc := service.NewAuthService(logger, userRepo, service.NewBcryptHasher(cfg.BcryptCost), jwtSvc, limiter)
	userSvc := service.NewUserService(logger, userRepo)
	postSvc := service.NewPostService(logger, postRepo)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := apihttp.NewRouter(
		logger,
		cfg.TrustedProxies,
		jwtSvc,
		apihttp.NewAuthHandler(logger, authSvc),
		apihttp.NewUserHandler(logger, userSvc),
		apihttp.NewPostHandler(logger, postSvc),
		apihttp.NewHealthHandler(cfg.AppEnv, pool, redisPinger),
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	return waitForShutdown(logger, server, serverErr)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// waitForShutdown bloquea hasta SIGINT/SIGTERM o hasta que el servidor falle.
func waitForShutdown(logger *zap.Logger, server *http.Server, serverErr <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("serve: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
