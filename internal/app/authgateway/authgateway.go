package authgateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ravshanbekov/auth-gateway/internal/cache"
	"github.com/ravshanbekov/auth-gateway/internal/config"
	"github.com/ravshanbekov/auth-gateway/internal/lib/sl"
	"github.com/ravshanbekov/auth-gateway/internal/migrations"
	"github.com/ravshanbekov/auth-gateway/internal/rabbitmq"
	authservice "github.com/ravshanbekov/auth-gateway/internal/services/auth"
	authzservice "github.com/ravshanbekov/auth-gateway/internal/services/authz"
	sessionservice "github.com/ravshanbekov/auth-gateway/internal/services/session"
	userservice "github.com/ravshanbekov/auth-gateway/internal/services/user"
	"github.com/ravshanbekov/auth-gateway/internal/storage"
)

type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *storage.Storage
	cache      *cache.Cache
	rabbitConn *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Публикация событий отключается пустым URL.
	var rabbitConn *amqp.Connection
	var publisher sessionservice.EventPublisher
	if cfg.URLRabbitMQ != "" {
		rabbitConn, err = rabbitmq.Connect(cfg.URLRabbitMQ, cfg.ConnectRetries, cfg.ConnectDelay)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(rabbitConn, rabbitmq.GetAuthQueues())
		if err != nil {
			return nil, err
		}
		publisher = rabbitmq.NewPublisher(ch)
	}

	sessionService := sessionservice.New(db, cacheRedis, publisher, logger, cfg.SessionTTL)
	authService := authservice.New(db, sessionService, logger)
	authzService := authzservice.New(sessionService, db, logger)
	userService := userservice.New(db, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, cfg, authService, sessionService, authzService, userService)

	router.Get("/docs/*", httpSwagger.WrapHandler)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		cache:      cacheRedis,
		rabbitConn: rabbitConn,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

// close освобождает ресурсы приложения на любом пути завершения.
func (a *App) close() {
	if err := a.db.DB.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
	if a.rabbitConn != nil {
		if err := a.rabbitConn.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}
}
