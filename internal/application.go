package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/config"
	"github.com/rocketscienceinc/tictactoe-local/internal/repository"
	"github.com/rocketscienceinc/tictactoe-local/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-local/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-local/internal/worker"
	"github.com/rocketscienceinc/tictactoe-local/transport/rest"
	"github.com/rocketscienceinc/tictactoe-local/transport/websocket"
)

const shutdownTimeout = 10 * time.Second

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return Run(ctx, logger, conf)
}

// Run - runs the application until ctx is cancelled.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	sessionRepo, closeStorage, err := newSessionRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err := closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	gameManager := usecase.NewGameManager(logger, sessionRepo)

	cleanup := worker.NewCleanup(logger, gameManager, conf.Storage.CleanupInterval)
	wsServer := websocket.New(logger, gameManager)
	gameHandlers := rest.NewGameHandlers(logger, gameManager)
	httpServer := rest.New(logger, conf.HTTPPort, rest.NewRouter(gameHandlers, wsServer))

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return cleanup.Run(groupCtx)
	})

	group.Go(func() error {
		if err := httpServer.Start(); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Application context canceled, shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(groupCtx), shutdownTimeout)
		defer cancel()

		return httpServer.Shutdown(shutdownCtx)
	})

	if err = group.Wait(); err != nil {
		return fmt.Errorf("application stopped: %w", err)
	}

	return nil
}

func newSessionRepository(ctx context.Context, conf *config.Config) (repository.SessionRepository, func() error, error) {
	switch conf.Storage.Driver {
	case config.StorageMemory:
		return repository.NewMemorySessionRepository(conf.Storage.SessionTTL), func() error { return nil }, nil
	case config.StorageRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr(), conf.Redis.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisSessionRepository(redisStorage.Connection, conf.Storage.SessionTTL), redisStorage.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", apperror.ErrUnknownStorageDriver, conf.Storage.Driver)
	}
}
