package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/rocketscienceinc/tictactoe-local/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-local/pkg/httputil"
)

const maxRequestBody = 1 << 10

type uGame interface {
	GetOrCreateSession(ctx context.Context, id string) (*entity.Session, error)
	MakeMove(ctx context.Context, id string, cell int) (*entity.Session, bool, error)
	Reset(ctx context.Context, id string) (*entity.Session, error)
}

type GameHandlers interface {
	GetGame(w http.ResponseWriter, r *http.Request)
	MakeMove(w http.ResponseWriter, r *http.Request)
	ResetGame(w http.ResponseWriter, r *http.Request)
}

type MoveRequest struct {
	Cell *int `json:"cell"`
}

type GameResponse struct {
	SessionID string          `json:"session_id"`
	Accepted  *bool           `json:"accepted,omitempty"`
	Game      *tictactoe.View `json:"game"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type gameHandlers struct {
	logger *slog.Logger
	uGame  uGame
}

func NewGameHandlers(logger *slog.Logger, uGame uGame) GameHandlers {
	return &gameHandlers{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}
}

func (that *gameHandlers) GetGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetGame")

	session, err := that.uGame.GetOrCreateSession(r.Context(), httputil.SessionID(r))
	if err != nil {
		log.Error("failed to get session", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load the game"})
		return
	}

	that.writeSession(w, session, nil)
}

func (that *gameHandlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "MakeMove")

	var req MoveRequest

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := decoder.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	if req.Cell == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cell is required"})
		return
	}

	session, accepted, err := that.uGame.MakeMove(r.Context(), httputil.SessionID(r), *req.Cell)
	if err != nil {
		log.Error("failed to make move", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to make the move"})
		return
	}

	that.writeSession(w, session, &accepted)
}

func (that *gameHandlers) ResetGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ResetGame")

	session, err := that.uGame.Reset(r.Context(), httputil.SessionID(r))
	if err != nil {
		log.Error("failed to reset game", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to reset the game"})
		return
	}

	that.writeSession(w, session, nil)
}

func (that *gameHandlers) writeSession(w http.ResponseWriter, session *entity.Session, accepted *bool) {
	httputil.SetSessionCookie(w, session.ID)

	view := tictactoe.Render(session.Game)
	writeJSON(w, http.StatusOK, GameResponse{
		SessionID: session.ID,
		Accepted:  accepted,
		Game:      &view,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
