package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garagely/garage-api/internal/api"
	"github.com/garagely/garage-api/internal/core/token"
	mongodb "github.com/garagely/garage-api/internal/infrastructure/db/mongo"
	redisdb "github.com/garagely/garage-api/internal/infrastructure/db/redis"
	"github.com/garagely/garage-api/internal/pkg/config"
	"github.com/garagely/garage-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           Garage API
// @version         1.0
// @description     User accounts and car inventory service with JWT authentication.
// @BasePath        /api
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(rootCtx)
	if err != nil {
		// Logger is not up yet; stderr is all we have.
		os.Stderr.WriteString("garage-api: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting garage-api")

	issuer, err := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token issuer init")
	}

	client, db, err := mongodb.Connect(rootCtx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(rootCtx); err != nil {
		log.Fatal().Err(err).Msg("user indexes")
	}
	if err := mongodb.NewCarRepository(db).EnsureIndexes(rootCtx); err != nil {
		log.Fatal().Err(err).Msg("car indexes")
	}

	rdb, err := redisdb.Connect(rootCtx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	e := api.NewRouter(db, rdb, issuer, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case <-rootCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
		}
	}

	shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("garage-api stopped")
}
