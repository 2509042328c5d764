package application

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/config"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/rocketscienceinc/tictactoe-local/internal/pkg"
)

func newConfig(driver string) *config.Config {
	return &config.Config{
		LogLevel: "info",
		HTTPPort: "0",
		Storage: config.Storage{
			Driver:          driver,
			SessionTTL:      time.Hour,
			CleanupInterval: time.Minute,
		},
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewSessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		repo, closeStorage, err := newSessionRepository(ctx, newConfig(config.StorageMemory))

		require.NoError(t, err)
		require.NotNil(t, repo)
		assert.NoError(t, closeStorage())
	})

	t.Run("Redis", func(t *testing.T) {
		// Given: a reachable redis server
		server := miniredis.RunT(t)
		conf := newConfig(config.StorageRedis)
		conf.Redis = config.Redis{Host: server.Host(), Port: server.Port()}

		// When: building the repository
		repo, closeStorage, err := newSessionRepository(ctx, conf)
		require.NoError(t, err)

		// Then: sessions land in redis
		id := pkg.GenerateSessionID()
		require.NoError(t, repo.CreateOrUpdate(ctx, &entity.Session{ID: id, Game: entity.GameState{ActiveMark: entity.PlayerX}}))
		assert.True(t, server.Exists("session:"+id))
		assert.NoError(t, closeStorage())
	})

	t.Run("Unreachable redis", func(t *testing.T) {
		server := miniredis.RunT(t)
		conf := newConfig(config.StorageRedis)
		conf.Redis = config.Redis{Host: server.Host(), Port: server.Port()}
		server.Close()

		_, _, err := newSessionRepository(ctx, conf)

		require.Error(t, err)
	})

	t.Run("Unknown driver", func(t *testing.T) {
		_, _, err := newSessionRepository(ctx, newConfig("sqlite"))

		require.ErrorIs(t, err, apperror.ErrUnknownStorageDriver)
	})
}

func TestRun(t *testing.T) {
	t.Run("Stops when the context is cancelled", func(t *testing.T) {
		// Given: a running application
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		go func() {
			done <- Run(ctx, newLogger(), newConfig(config.StorageMemory))
		}()

		// When: the context is cancelled
		time.Sleep(50 * time.Millisecond)
		cancel()

		// Then: it shuts down cleanly
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("application did not stop")
		}
	})

	t.Run("Fails on an unknown storage driver", func(t *testing.T) {
		err := Run(context.Background(), newLogger(), newConfig("sqlite"))

		require.ErrorIs(t, err, apperror.ErrUnknownStorageDriver)
	})
}
