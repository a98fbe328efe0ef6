package models

import "errors"

// ErrMissingPlayer is returned when a game would be built without a player.
var ErrMissingPlayer = errors.New("no player in loadfile")

// Registry is the canonical owner of entity state. Everything else refers to
// entities by EntityID and mutates them through the pointers handed out here.
type Registry struct {
	player   *Player
	hostiles []*Hostile
}

// NewRegistry creates a registry holding exactly one player.
func NewRegistry(player *Player, hostiles []*Hostile) (*Registry, error) {
	if player == nil {
		return nil, ErrMissingPlayer
	}
	return &Registry{
		player:   player,
		hostiles: hostiles,
	}, nil
}

func (r *Registry) Player() *Player {
	return r.player
}

func (r *Registry) Hostiles() []*Hostile {
	return r.hostiles
}

// Hostile looks up a hostile by ID.
func (r *Registry) Hostile(id EntityID) (*Hostile, bool) {
	for _, h := range r.hostiles {
		if h.ID == id {
			return h, true
		}
	}
	return nil, false
}
