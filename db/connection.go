package db

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"connect4/games"

	"github.com/gorilla/websocket"
)

type MessageType string

// message types for websocket messages
const (
	TypeGameState MessageType = "gameState"
	TypeMove      MessageType = "move"
	TypeReset     MessageType = "reset"
	TypeError     MessageType = "error"
)

// Message is the envelope of every websocket frame.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ErrorMessage struct {
	Kind  games.ErrorKind `json:"kind,omitempty"`
	Error string          `json:"error"`
}

type MoveMessage struct {
	Column *int `json:"column"`
}

// client serializes writes; gorilla connections allow one concurrent writer.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	// sent is the version of the last game state written to conn.
	sent uint64
}

func (c *client) write(data []byte, timeout time.Duration) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.writeLocked(data, timeout)
}

func (c *client) writeLocked(data []byte, timeout time.Duration) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// writeState writes a game state unless a newer one was already sent.
func (c *client) writeState(version uint64, data []byte, timeout time.Duration) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if version <= c.sent {
		return nil
	}
	if err := c.writeLocked(data, timeout); err != nil {
		return err
	}
	c.sent = version
	return nil
}

// Hub pushes game state to the websocket connections watching each game.
type Hub struct {
	store        *Store
	logger       *slog.Logger
	readTimeout  time.Duration
	pingInterval time.Duration

	mu    sync.Mutex
	conns map[string]map[*client]struct{}
}

func NewHub(store *Store, logger *slog.Logger, readTimeout, pingInterval time.Duration) *Hub {
	return &Hub{
		store:        store,
		logger:       logger,
		readTimeout:  readTimeout,
		pingInterval: pingInterval,
		conns:        make(map[string]map[*client]struct{}),
	}
}

func (h *Hub) register(gameID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[gameID] == nil {
		h.conns[gameID] = make(map[*client]struct{})
	}
	h.conns[gameID][c] = struct{}{}
}

func (h *Hub) unregister(gameID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.conns[gameID], c)
	if len(h.conns[gameID]) == 0 {
		delete(h.conns, gameID)
	}
}

// Connections returns the number of connections watching a game.
func (h *Hub) Connections(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns[gameID])
}

// CloseAll closes every websocket connection. Their handlers return once
// the pending read fails.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.conns {
		for c := range clients {
			c.conn.Close()
		}
	}
}

// CloseGame disconnects every connection watching gameID.
func (h *Hub) CloseGame(gameID string) {
	h.mu.Lock()
	clients := h.conns[gameID]
	delete(h.conns, gameID)
	h.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game deleted")
	for c := range clients {
		c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		c.conn.Close()
	}
}

func encode(t MessageType, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return json.Marshal(Message{Type: t, Payload: raw})
}

// BroadcastGameState sends the state to every connection watching the game.
// A connection never receives a state older than one it already has.
func (h *Hub) BroadcastGameState(state GameState) {
	data, err := encode(TypeGameState, state)
	if err != nil {
		h.logger.Error("marshal game state", "game", state.ID, "err", err)
		return
	}

	h.mu.Lock()
	targets := make([]*client, 0, len(h.conns[state.ID]))
	for c := range h.conns[state.ID] {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		if err := c.writeState(state.Version, data, h.readTimeout); err != nil {
			h.logger.Warn("send game state", "game", state.ID, "err", err)
			c.conn.Close()
			h.unregister(state.ID, c)
		}
	}
}

func (h *Hub) sendError(c *client, gameID string, err error) {
	msg := ErrorMessage{Error: err.Error()}
	if kind := games.KindOf(err); kind != games.KindUnknown {
		msg.Kind = kind
	}
	data, encErr := encode(TypeError, msg)
	if encErr != nil {
		h.logger.Error("marshal error message", "game", gameID, "err", encErr)
		return
	}
	if werr := c.write(data, h.readTimeout); werr != nil {
		h.logger.Warn("send error message", "game", gameID, "err", werr)
	}
}

// HandleConnection serves one websocket connection until it closes. The
// connection receives the current state first, then every update.
func (h *Hub) HandleConnection(gameID string, conn *websocket.Conn) {
	c := &client{conn: conn}
	log := h.logger.With("game", gameID, "remote", conn.RemoteAddr().String())

	// Register before reading the state so no update between the two is lost.
	h.register(gameID, c)
	defer func() {
		conn.Close()
		h.unregister(gameID, c)
		log.Info("websocket disconnected")
	}()

	state, err := h.store.GetGame(gameID)
	if err != nil {
		h.sendError(c, gameID, err)
		return
	}
	log.Info("websocket connected")

	conn.SetReadDeadline(time.Now().Add(h.readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.readTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go h.keepAlive(conn, done)

	if data, err := encode(TypeGameState, state); err == nil {
		if err := c.writeState(state.Version, data, h.readTimeout); err != nil {
			log.Warn("send initial state", "err", err)
			return
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("read message", "err", err)
			}
			return
		}

		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			h.sendError(c, gameID, errors.New("malformed message"))
			continue
		}

		switch message.Type {
		case TypeMove:
			var move MoveMessage
			if err := json.Unmarshal(message.Payload, &move); err != nil || move.Column == nil {
				h.sendError(c, gameID, errors.New("move requires a column"))
				continue
			}
			result, state, err := h.store.DropPiece(gameID, *move.Column)
			if err != nil {
				log.Debug("move rejected", "column", *move.Column, "err", err)
				h.sendError(c, gameID, err)
				continue
			}
			log.Info("move applied", "column", result.Column, "row", result.Row, "outcome", result.Outcome)
			h.BroadcastGameState(state)

		case TypeReset:
			state, err := h.store.ResetGame(gameID)
			if err != nil {
				h.sendError(c, gameID, err)
				continue
			}
			log.Info("game reset")
			h.BroadcastGameState(state)

		default:
			h.sendError(c, gameID, errors.New("unknown message type "+string(message.Type)))
		}
	}
}

func (h *Hub) keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(h.readTimeout)); err != nil {
				return
			}
		}
	}
}
