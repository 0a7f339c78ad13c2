package core

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Registry owns the top-level room map. Its RWMutex only guards the
// map itself; per-room state is guarded by each room's own lock, so
// creating one room never blocks commands against another.
type Registry struct {
	mu           sync.RWMutex
	rooms        map[string]*Room
	chatCapacity int
	log          *zerolog.Logger
}

// NewRegistry constructs an empty registry. There is no implicit global
// instance; the application builds exactly one at startup.
func NewRegistry(chatCapacity int, logger *zerolog.Logger) *Registry {
	return &Registry{
		rooms:        make(map[string]*Room),
		chatCapacity: chatCapacity,
		log:          logger,
	}
}

// GetOrCreate returns the room for id, lazily creating it. Concurrent
// first references to the same id yield exactly one room.
func (g *Registry) GetOrCreate(id string, now time.Time) *Room {
	g.mu.RLock()
	room, ok := g.rooms[id]
	g.mu.RUnlock()
	if ok {
		return room
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if room, ok := g.rooms[id]; ok {
		return room
	}
	room = NewRoom(id, g.chatCapacity, now)
	g.rooms[id] = room
	g.log.Info().Str("room", id).Msg("created room")
	return room
}

// Get returns the room for id without creating it.
func (g *Registry) Get(id string) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	room, ok := g.rooms[id]
	return room, ok
}

// Len returns the number of live rooms.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// Sweep evicts every room that is both empty and inactive since before
// now-idleThreshold. Returns the number of rooms removed.
func (g *Registry) Sweep(now time.Time, idleThreshold time.Duration) int {
	cutoff := now.Add(-idleThreshold)

	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	for id, room := range g.rooms {
		room.mu.Lock()
		idle := room.idleSinceLocked(cutoff)
		room.mu.Unlock()
		if idle {
			delete(g.rooms, id)
			removed++
			g.log.Info().Str("room", id).Msg("evicted idle room")
		}
	}
	return removed
}

// Run sweeps on a fixed period until ctx is cancelled. The period is
// independent of command traffic.
func (g *Registry) Run(ctx context.Context, interval, idleThreshold time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := g.Sweep(now, idleThreshold); removed > 0 {
				g.log.Debug().Int("removed", removed).Msg("gc sweep finished")
			}
		}
	}
}
