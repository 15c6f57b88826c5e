package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prog6212/cmcs/backend/internal/config"
	"github.com/prog6212/cmcs/backend/internal/handler"
	"github.com/prog6212/cmcs/backend/internal/notify"
	"github.com/prog6212/cmcs/backend/internal/repository"
	"github.com/prog6212/cmcs/backend/internal/seed"
	"github.com/prog6212/cmcs/backend/internal/service"
	"github.com/prog6212/cmcs/backend/internal/session"
	"github.com/prog6212/cmcs/backend/internal/storage"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	/**********************************************
	 * storage
	 **********************************************/
	var repo repository.Repository
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		dbpool, err := repository.OpenPostgres(cfg)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			return
		}
		defer dbpool.Close()

		if err := migrate(cfg, dbpool); err != nil {
			logger.Error("failed to run migrations", "error", err)
			return
		}
		repo = repository.NewPostgresRepository(cfg, dbpool)
	default:
		repo = repository.NewMemoryRepository()
	}
	logger.Info("storage ready", "driver", cfg.Storage.Driver)

	svc := service.New(repo)

	/**********************************************
	 * default accounts and sample data
	 **********************************************/
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := seed.Bootstrap(ctx, svc, cfg.Seed.User.Password); err != nil {
		logger.Error("failed to create default users", "error", err)
		return
	}
	if cfg.Seed.SampleClaims {
		if err := seed.SampleClaims(ctx, repo, time.Now()); err != nil {
			logger.Error("failed to insert sample claims", "error", err)
			return
		}
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open channel", "error", err)
		return
	}
	defer ch.Close()

	if err := notify.DeclareQueue(ch, cfg.RabbitMQ.Queue); err != nil {
		logger.Error("failed to declare queue", "error", err)
		return
	}
	publisher := notify.NewMailPublisher(ch, cfg.RabbitMQ.Queue, time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)

	/**********************************************
	 * redis
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})
	defer rdb.Close()

	tokens := session.NewTokenStore(rdb, time.Duration(cfg.Redis.OperationTimeout)*time.Second)

	/**********************************************
	 * documents
	 **********************************************/
	var documents handler.DocumentStore
	if cfg.DocumentsEnabled() {
		store, err := storage.NewDocumentStore(context.Background(), cfg)
		if err != nil {
			logger.Error("failed to create document store", "error", err)
			return
		}
		documents = store
	} else {
		logger.Info("S3_BUCKET not set, document uploads disabled")
	}

	/**********************************************
	 * handler
	 **********************************************/
	handler, err := handler.NewHandler(cfg, svc, publisher, tokens, documents)
	if err != nil {
		logger.Error("failed to create handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * http server
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}

func migrate(cfg *config.Config, dbpool *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()
	return repository.RunMigrations(ctx, dbpool)
}
