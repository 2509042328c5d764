package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/rocketscienceinc/tictactoe-local/pkg/httputil"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
	maxMessage   = 1 << 12
)

type uGame interface {
	GetOrCreateSession(ctx context.Context, id string) (*entity.Session, error)
	MakeMove(ctx context.Context, id string, cell int) (*entity.Session, bool, error)
	Reset(ctx context.Context, id string) (*entity.Session, error)
}

type handlerFunc func(ctx context.Context, conn *connection, message *Message) (*ResponsePayload, error)

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionReset] = server.handleReset

	return server
}

// ServeHTTP - upgrades the connection to WebSocket and serves it until the client leaves.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	if !websocket.IsWebSocketUpgrade(req) {
		http.Error(writer, "not a websocket upgrade", http.StatusBadRequest)
		return
	}

	session, err := that.uGame.GetOrCreateSession(req.Context(), httputil.SessionID(req))
	if err != nil {
		log.Error("failed to get session", "error", err)
		http.Error(writer, "failed to load the game", http.StatusInternalServerError)
		return
	}

	header := http.Header{}
	header.Add("Set-Cookie", httputil.SessionCookie(session.ID).String())

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := newConnection(conn, session.ID)
	defer client.close()

	log.Info("WebSocket connection established", "sessionID", session.ID)

	ctx, cancel := context.WithCancel(context.WithoutCancel(req.Context()))
	defer cancel()

	go client.keepAlive(ctx)

	if err = that.handleMessages(ctx, client); err != nil {
		log.Error("error handling messages", "error", err)
	}

	log.Info("WebSocket connection closed", "sessionID", session.ID)
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages", "sessionID", conn.sessionID)

	for {
		_, reqBody, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			if err = conn.send(Response{Error: apperror.ErrInvalidPayload.Error()}); err != nil {
				return err
			}
			continue
		}

		if err = conn.send(that.process(ctx, conn, &message)); err != nil {
			return err
		}
	}
}

func (that *Server) process(ctx context.Context, conn *connection, message *Message) Response {
	log := that.logger.With("method", "process", "action", message.Action)

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Warn("unknown action")
		return Response{Action: message.Action, Error: fmt.Sprintf("%s: %q", apperror.ErrUnknownAction, message.Action)}
	}

	payload, err := handler(ctx, conn, message)
	if err != nil {
		if !errors.Is(err, apperror.ErrInvalidPayload) {
			log.Error("error processing message", "error", err)
		}
		return Response{Action: message.Action, Error: err.Error()}
	}

	return Response{Action: message.Action, Payload: payload}
}

type connection struct {
	ws        *websocket.Conn
	sessionID string
}

func newConnection(ws *websocket.Conn, sessionID string) *connection {
	ws.SetReadLimit(maxMessage)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	return &connection{
		ws:        ws,
		sessionID: sessionID,
	}
}

// send is only called from the read loop; pings go through WriteControl, which is safe concurrently.
func (that *connection) send(response Response) error {
	_ = that.ws.SetWriteDeadline(time.Now().Add(writeWait))

	if err := that.ws.WriteJSON(response); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *connection) keepAlive(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := that.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (that *connection) close() {
	_ = that.ws.Close()
}
