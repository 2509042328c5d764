package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/rocketscienceinc/tictactoe-local/internal/tictactoe"
)

func (that *Server) handleConnect(ctx context.Context, conn *connection, _ *Message) (*ResponsePayload, error) {
	session, err := that.uGame.GetOrCreateSession(ctx, conn.sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return that.sessionPayload(conn, session, nil), nil
}

func (that *Server) handleMove(ctx context.Context, conn *connection, msg *Message) (*ResponsePayload, error) {
	var payload MovePayload

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err)
	}

	if payload.Cell == nil {
		return nil, fmt.Errorf("%w: cell is required", apperror.ErrInvalidPayload)
	}

	session, accepted, err := that.uGame.MakeMove(ctx, conn.sessionID, *payload.Cell)
	if err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	return that.sessionPayload(conn, session, &accepted), nil
}

func (that *Server) handleReset(ctx context.Context, conn *connection, _ *Message) (*ResponsePayload, error) {
	session, err := that.uGame.Reset(ctx, conn.sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	return that.sessionPayload(conn, session, nil), nil
}

// sessionPayload keeps the connection bound to the session the manager answered with.
func (that *Server) sessionPayload(conn *connection, session *entity.Session, accepted *bool) *ResponsePayload {
	conn.sessionID = session.ID

	view := tictactoe.Render(session.Game)

	return &ResponsePayload{
		SessionID: session.ID,
		Accepted:  accepted,
		Game:      &view,
	}
}
