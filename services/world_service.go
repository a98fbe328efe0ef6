package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"gridcrawl/server/config"
	"gridcrawl/server/models"
)

// ErrSessionNotFound is returned for an unknown or ended session ID.
var ErrSessionNotFound = errors.New("session not found")

// Session is one client's game.
type Session struct {
	ID        string
	Layout    string
	StartedAt time.Time
	game      *Game
}

// Snapshot is a read-only view of a game after a turn.
type Snapshot struct {
	SessionID string
	Rows      []string
	Player    models.Player
	Hostiles  int
	Turn      int
}

// WorldService runs independent games side by side. Games are not safe
// for concurrent use, so every turn runs under worldMutex.
type WorldService struct {
	layouts    *LayoutService
	balance    config.Balance
	sessions   map[string]*Session
	worldMutex sync.Mutex
}

// NewWorldService creates a new world service
func NewWorldService(layouts *LayoutService, balance config.Balance) *WorldService {
	return &WorldService{
		layouts:  layouts,
		balance:  balance,
		sessions: make(map[string]*Session),
	}
}

// StartSession loads the named layout into a fresh game.
func (ws *WorldService) StartSession(layoutName string) (*Snapshot, error) {
	layout, err := ws.layouts.GetLayout(layoutName)
	if err != nil {
		return nil, err
	}
	game, err := LoadLayout(layout, ws.balance)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:        uuid.NewString(),
		Layout:    layout.Name,
		StartedAt: time.Now(),
		game:      game,
	}

	ws.worldMutex.Lock()
	defer ws.worldMutex.Unlock()

	ws.sessions[session.ID] = session
	return session.snapshot(), nil
}

// Execute runs one line of input against a session. The snapshot is
// always returned for a live session, even when the turn was rejected.
func (ws *WorldService) Execute(sessionID, line string) (*Snapshot, Outcome, error) {
	ws.worldMutex.Lock()
	defer ws.worldMutex.Unlock()

	session, exists := ws.sessions[sessionID]
	if !exists {
		return nil, Outcome{}, ErrSessionNotFound
	}

	outcome, err := session.game.Step(line)
	return session.snapshot(), outcome, err
}

// Snapshot returns the current state of a session
func (ws *WorldService) Snapshot(sessionID string) (*Snapshot, error) {
	ws.worldMutex.Lock()
	defer ws.worldMutex.Unlock()

	session, exists := ws.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session.snapshot(), nil
}

// EndSession drops a session
func (ws *WorldService) EndSession(sessionID string) {
	ws.worldMutex.Lock()
	defer ws.worldMutex.Unlock()

	delete(ws.sessions, sessionID)
}

func (ws *WorldService) SessionCount() int {
	ws.worldMutex.Lock()
	defer ws.worldMutex.Unlock()

	return len(ws.sessions)
}

func (s *Session) snapshot() *Snapshot {
	return &Snapshot{
		SessionID: s.ID,
		Rows:      s.game.Render(),
		Player:    *s.game.Player(),
		Hostiles:  len(s.game.Hostiles()),
		Turn:      s.game.Turn,
	}
}
