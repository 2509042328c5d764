package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/rocketscienceinc/tictactoe-local/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-local/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteExpired(ctx context.Context) (int, error)
}

// GameManager owns the live game of every session. Each load, apply and save
// sequence runs under one lock, so a session is only touched by one caller at a time.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo

	mu sync.Mutex
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		sessionRepo: sessionRepo,
	}
}

// GetOrCreateSession returns the session with the given id. A malformed id gets a
// fresh session under a new id, an unknown one a fresh session under the same id.
func (that *GameManager) GetOrCreateSession(ctx context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.getOrCreateSession(ctx, id)
}

// MakeMove applies a move for the session. accepted is false when the move was
// ignored because the cell is taken or the game is already decided.
func (that *GameManager) MakeMove(ctx context.Context, id string, cell int) (*entity.Session, bool, error) {
	log := that.logger.With("method", "MakeMove", "sessionID", id, "cell", cell)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.getOrCreateSession(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("failed get session: %w", err)
	}

	next := tictactoe.ApplyMove(session.Game, cell)
	if next == session.Game {
		log.Debug("move ignored")
		return session, false, nil
	}

	session.Game = next
	if err = that.updateSession(ctx, session); err != nil {
		return nil, false, fmt.Errorf("failed update session: %w", err)
	}

	if outcome := tictactoe.Evaluate(next.Board); outcome.IsDecided() {
		log.Info("game decided", "outcome", outcome.Kind.String(), "winner", outcome.Winner)
	}

	return session, true, nil
}

// Reset starts the session over with an empty board.
func (that *GameManager) Reset(ctx context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.getOrCreateSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed get session: %w", err)
	}

	session.Game = tictactoe.Reset()
	if err = that.updateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed update session: %w", err)
	}

	that.logger.Info("game reset", "sessionID", session.ID)

	return session, nil
}

// CleanupExpired drops sessions nobody has played in for the configured ttl.
func (that *GameManager) CleanupExpired(ctx context.Context) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	deleted, err := that.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	return deleted, nil
}

func (that *GameManager) getOrCreateSession(ctx context.Context, id string) (*entity.Session, error) {
	if !pkg.IsSessionID(id) {
		return that.createSession(ctx, pkg.GenerateSessionID())
	}

	session, err := that.sessionRepo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return that.createSession(ctx, id)
	}

	if errors.Is(err, apperror.ErrCorruptedState) {
		that.logger.Warn("discarding corrupted session", "sessionID", id, "error", err)
		return that.createSession(ctx, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return session, nil
}

func (that *GameManager) createSession(ctx context.Context, id string) (*entity.Session, error) {
	session := &entity.Session{
		ID:   id,
		Game: tictactoe.InitialState(),
	}

	if err := that.updateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "sessionID", id)

	return session, nil
}

func (that *GameManager) updateSession(ctx context.Context, session *entity.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}
