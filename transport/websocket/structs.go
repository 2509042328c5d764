package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-local/internal/tictactoe"
)

const (
	actionConnect = "connect"
	actionMove    = "game:move"
	actionReset   = "game:reset"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type MovePayload struct {
	Cell *int `json:"cell"`
}

type Response struct {
	Action  string           `json:"action"`
	Payload *ResponsePayload `json:"payload,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type ResponsePayload struct {
	SessionID string          `json:"session_id"`
	Accepted  *bool           `json:"accepted,omitempty"`
	Game      *tictactoe.View `json:"game"`
}
