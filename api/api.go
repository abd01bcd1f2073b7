// Package api exposes games over HTTP and websockets. One client drives both
// players of a game in turn.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"connect4/db"
	"connect4/games"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Error response structure
type ErrorResponse struct {
	Outcome string          `json:"outcome"`
	Kind    games.ErrorKind `json:"kind,omitempty"`
	Error   string          `json:"error"`
}

// MoveResponse is returned for an accepted move.
type MoveResponse struct {
	games.Result
	Game db.GameState `json:"game"`
}

type Handler struct {
	store    *db.Store
	hub      *db.Hub
	logger   *slog.Logger
	width    int
	height   int
	upgrader websocket.Upgrader
}

// NewHandler serves games from store. New games default to width x height.
// An empty allowedOrigins accepts websocket upgrades from any origin.
func NewHandler(store *db.Store, hub *db.Hub, logger *slog.Logger, width, height int, allowedOrigins []string) *Handler {
	h := &Handler{
		store:  store,
		hub:    hub,
		logger: logger,
		width:  width,
		height: height,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin(allowedOrigins),
	}
	return h
}

func checkOrigin(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		_, ok := set[r.Header.Get("Origin")]
		return ok
	}
}

// NewRouter registers every route of h.
func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	router.HandleFunc("/api/games", h.CreateGame).Methods(http.MethodPost)
	router.HandleFunc("/api/games", h.GetGames).Methods(http.MethodGet)
	router.HandleFunc("/api/games/{id}", h.GetGame).Methods(http.MethodGet)
	router.HandleFunc("/api/games/{id}", h.DeleteGame).Methods(http.MethodDelete)
	router.HandleFunc("/api/games/{id}/move", h.MakeMove).Methods(http.MethodPost)
	router.HandleFunc("/api/games/{id}/reset", h.ResetGame).Methods(http.MethodPost)

	// WebSocket endpoint for the rendering surface
	router.HandleFunc("/ws/game/{id}", h.GameWebSocket)

	return router
}

// Response helpers
func respondWithError(w http.ResponseWriter, code int, kind games.ErrorKind, message string) {
	respondWithJSON(w, code, ErrorResponse{Outcome: "error", Kind: kind, Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"outcome":"error","error":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithGameError maps store and engine errors to HTTP statuses.
func respondWithGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrGameNotFound):
		respondWithError(w, http.StatusNotFound, "", "Game not found")
	case errors.Is(err, games.ErrInvalidColumn):
		respondWithError(w, http.StatusBadRequest, games.KindInvalidColumn, err.Error())
	case errors.Is(err, games.ErrColumnFull):
		respondWithError(w, http.StatusConflict, games.KindColumnFull, err.Error())
	case errors.Is(err, games.ErrGameAlreadyOver):
		respondWithError(w, http.StatusConflict, games.KindGameAlreadyOver, err.Error())
	case errors.Is(err, games.ErrInvalidDimensions):
		respondWithError(w, http.StatusBadRequest, "", err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "", "Internal Server Error")
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// CreateGame creates a new game. The body may set width and height.
func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var requestData struct {
		Width  *int `json:"width,omitempty"`
		Height *int `json:"height,omitempty"`
	}
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, "", "Invalid request payload")
		return
	}

	width, height := h.width, h.height
	if requestData.Width != nil {
		width = *requestData.Width
	}
	if requestData.Height != nil {
		height = *requestData.Height
	}

	state, err := h.store.CreateGame(width, height)
	if err != nil {
		respondWithGameError(w, err)
		return
	}

	h.logger.Info("game created", "game", state.ID, "width", width, "height", height)
	respondWithJSON(w, http.StatusCreated, state)
}

func (h *Handler) GetGames(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.store.ListGames())
}

// GetGame returns a specific game
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	state, err := h.store.GetGame(gameID)
	if err != nil {
		respondWithGameError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, state)
}

func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	if err := h.store.DeleteGame(gameID); err != nil {
		respondWithGameError(w, err)
		return
	}

	h.hub.CloseGame(gameID)
	h.logger.Info("game deleted", "game", gameID)
	w.WriteHeader(http.StatusNoContent)
}

// MakeMove drops the active player's piece into the requested column.
func (h *Handler) MakeMove(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	var move db.MoveMessage
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&move); err != nil || move.Column == nil {
		respondWithError(w, http.StatusBadRequest, "", "Invalid request payload")
		return
	}

	result, state, err := h.store.DropPiece(gameID, *move.Column)
	if err != nil {
		h.logger.Debug("move rejected", "game", gameID, "column", *move.Column, "err", err)
		respondWithGameError(w, err)
		return
	}

	h.logger.Info("move applied", "game", gameID, "column", result.Column, "row", result.Row, "outcome", result.Outcome)

	// Broadcast game update to WebSocket clients
	h.hub.BroadcastGameState(state)

	respondWithJSON(w, http.StatusOK, MoveResponse{Result: result, Game: state})
}

// ResetGame starts the game over on an empty board.
func (h *Handler) ResetGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	state, err := h.store.ResetGame(gameID)
	if err != nil {
		respondWithGameError(w, err)
		return
	}

	h.logger.Info("game reset", "game", gameID)
	h.hub.BroadcastGameState(state)
	respondWithJSON(w, http.StatusOK, state)
}

func (h *Handler) GameWebSocket(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	if _, err := h.store.GetGame(gameID); err != nil {
		respondWithGameError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "game", gameID, "err", err)
		return
	}

	h.hub.HandleConnection(gameID, conn)
}
