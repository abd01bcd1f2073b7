package db

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"connect4/games"

	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

// GameState is a game snapshot tagged with its registry id. Version grows
// by one with every accepted move and every reset of the game.
type GameState struct {
	ID        string    `json:"id"`
	Version   uint64    `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	games.Snapshot
}

// entry guards one engine; engines are not safe for concurrent use.
type entry struct {
	id        string
	createdAt time.Time

	mu      sync.Mutex
	engine  *games.Engine
	version uint64
}

func (e *entry) state() GameState {
	return GameState{ID: e.id, Version: e.version, CreatedAt: e.createdAt, Snapshot: e.engine.Snapshot()}
}

// Store keeps in-progress and finished games in memory for the lifetime of
// the process.
type Store struct {
	mu    sync.RWMutex
	games map[string]*entry

	newID func() string
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		games: make(map[string]*entry),
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// -------------------------- GAME ---------------------------

func (s *Store) CreateGame(width, height int) (GameState, error) {
	engine, err := games.NewGame(width, height)
	if err != nil {
		return GameState{}, err
	}

	e := &entry{id: s.newID(), createdAt: s.now(), engine: engine, version: 1}

	s.mu.Lock()
	s.games[e.id] = e
	s.mu.Unlock()

	return e.state(), nil
}

func (s *Store) lookup(gameID string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return e, nil
}

func (s *Store) GetGame(gameID string) (GameState, error) {
	e, err := s.lookup(gameID)
	if err != nil {
		return GameState{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state(), nil
}

// ListGames returns every game, oldest first.
func (s *Store) ListGames() []GameState {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.games))
	for _, e := range s.games {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].createdAt.Equal(entries[j].createdAt) {
			return entries[i].id < entries[j].id
		}
		return entries[i].createdAt.Before(entries[j].createdAt)
	})

	result := make([]GameState, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		result = append(result, e.state())
		e.mu.Unlock()
	}
	return result
}

func (s *Store) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[gameID]; !exists {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	delete(s.games, gameID)
	return nil
}

// DropPiece applies a move to the game, one move at a time per game.
func (s *Store) DropPiece(gameID string, column int) (games.Result, GameState, error) {
	e, err := s.lookup(gameID)
	if err != nil {
		return games.Result{}, GameState{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	result, err := e.engine.DropPiece(column)
	if err != nil {
		return games.Result{}, e.state(), err
	}
	e.version++
	return result, e.state(), nil
}

// ResetGame replaces the game's engine with a fresh one of the same size.
func (s *Store) ResetGame(gameID string) (GameState, error) {
	e, err := s.lookup(gameID)
	if err != nil {
		return GameState{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	width, height := e.engine.Dimensions()
	engine, err := games.NewGame(width, height)
	if err != nil {
		return GameState{}, err
	}
	e.engine = engine
	e.version++
	return e.state(), nil
}
