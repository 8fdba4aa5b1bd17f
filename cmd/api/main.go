// @title                       Todo API
// @version                     1.0
// @description                 Per-user todo lists with registration and bearer-token login.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/todo-api/todo-service/internal/api"
	"github.com/todo-api/todo-service/internal/api/handler"
	"github.com/todo-api/todo-service/internal/core/service"
	mongodb "github.com/todo-api/todo-service/internal/infrastructure/db/mongo"
	redisdb "github.com/todo-api/todo-service/internal/infrastructure/db/redis"
	"github.com/todo-api/todo-service/internal/infrastructure/queue"
	"github.com/todo-api/todo-service/internal/pkg/config"
	"github.com/todo-api/todo-service/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "todo-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "todo-api",
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	credentials := mongodb.NewCredentialRepository(db)
	todos := mongodb.NewTodoRepository(db)
	if err := mongodb.EnsureIndexes(ctx, credentials, todos); err != nil {
		return err
	}

	// --- Auth engine ---
	poolCtx, stopPool := context.WithCancel(context.Background())
	hashPool := queue.NewHashPool(cfg.Auth.HashWorkers, service.NewBcryptHasher(cfg.Auth.BcryptCost), log)
	hashPool.Start(poolCtx)
	defer func() {
		stopPool()
		hashPool.Wait()
	}()

	tokens := service.NewTokenIssuer([]byte(cfg.Auth.JWTSecret), cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	store := service.NewCredentialStore(credentials, hashPool, log)
	authService := service.NewAuthService(store, hashPool, tokens, log)
	todoService := service.NewTodoService(todos, redisdb.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL), log)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Auth:  authService,
		Todos: todoService,
		Checks: map[string]handler.DependencyCheck{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
		Log: log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
