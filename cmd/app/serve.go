package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/ElSheemy11/High-Up/internal/config"
	"github.com/ElSheemy11/High-Up/internal/handler"
	"github.com/ElSheemy11/High-Up/internal/rabbitmq"
	"github.com/ElSheemy11/High-Up/internal/repository"
	"github.com/ElSheemy11/High-Up/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Run the HTTP API",
	Action: func(ctx context.Context, c *cli.Command) error {
		cfg, logger, err := loadConfig(c)
		if err != nil {
			return err
		}
		defer logger.Sync()

		return serve(ctx, cfg, logger)
	},
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if err := cfg.Session.RequireSecret(); err != nil {
		logger.Sugar().Errorf("refusing to start: %s", err.Error())
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := pgxpool.New(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Sugar().Errorf("failed to connect to postgres: %s", err.Error())
		return err
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	var publisher rabbitmq.Publisher
	if cfg.RabbitMQ.URL != "" {
		mq, err := rabbitmq.New(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Sugar().Errorf("failed to connect to rabbitmq: %s", err.Error())
			return err
		}
		defer mq.Close()
		publisher = mq
	} else {
		logger.Warn("RABBITMQ_URL is not set, notifications will not be published")
	}

	repo := repository.New(db, rdb)
	services := service.New(logger, repo, publisher, service.Options{
		UserIDCacheTTL:         cfg.Redis.UserIDTTL,
		DefaultSuggestionLimit: cfg.Suggestion.DefaultLimit,
	})

	if !cfg.App.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers := handler.New(logger, services, handler.Options{
		SessionSecret: []byte(cfg.Session.Secret),
		ClientOrigin:  cfg.Client.Origin,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: handlers.InitRoutes(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Sugar().Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
