package core

import (
	"time"

	"github.com/rs/zerolog"
)

// Dispatcher is the single entry point for room mutations. Each Apply
// resolves the room, takes its lock, applies exactly one command,
// bumps the activity timestamp and returns an immutable snapshot of the
// post-mutation state. Commands against the same room are linearized;
// commands against different rooms proceed in parallel.
type Dispatcher struct {
	registry *Registry
	notifier *Notifier
	log      *zerolog.Logger
}

// NewDispatcher builds a dispatcher over registry.
func NewDispatcher(registry *Registry, logger *zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		notifier: NewNotifier(),
		log:      logger,
	}
}

// Subscribe registers for state-change snapshots of roomID.
func (d *Dispatcher) Subscribe(roomID string) (<-chan *RoomSnapshot, func()) {
	return d.notifier.Subscribe(roomID)
}

// Apply executes cmd against roomID. Room lookups never fail; an
// unknown id creates the room. On error nothing is mutated and no
// notification is published.
func (d *Dispatcher) Apply(roomID string, cmd *Command, now time.Time) (*RoomSnapshot, error) {
	room := d.registry.GetOrCreate(roomID, now)

	room.mu.Lock()
	defer room.mu.Unlock()

	actor := cmd.Actor
	mutated := true

	switch cmd.Kind {
	case CommandJoin:
		if cmd.Actor == "" {
			return nil, coreError(ErrCodeBadRequest, "name is required")
		}
		actor = room.joinLocked(string(cmd.Actor), now)

	case CommandLeave:
		if !room.leaveLocked(cmd.Actor, now) {
			return nil, coreError(ErrCodeNotInRoom, "identity not present in room")
		}

	case CommandAddMedia:
		if cmd.Item == nil || cmd.Item.ID == "" {
			return nil, coreError(ErrCodeBadRequest, "media item is required")
		}
		item := *cmd.Item
		item.AddedBy = cmd.Actor
		item.AddedAt = now
		room.enqueueOrPlayLocked(item, now)

	case CommandAdvance:
		room.advanceLocked(now)

	case CommandTogglePause:
		room.togglePauseLocked(now)

	case CommandRemoveFromQueue:
		if !room.removeAtLocked(cmd.Index) {
			return nil, coreError(ErrCodeIndexOutOfRange, "queue index out of range")
		}

	case CommandMoveInQueue:
		if !room.moveItemLocked(cmd.From, cmd.To) {
			return nil, coreError(ErrCodeIndexOutOfRange, "queue index out of range")
		}

	case CommandClearQueue:
		room.clearQueueLocked()

	case CommandSendChat:
		if cmd.Text == "" {
			return nil, coreError(ErrCodeBadRequest, "text is required")
		}
		room.chat.append(ChatMessage{Author: cmd.Actor, Text: cmd.Text, SentAt: now})

	case CommandQuerySync:
		mutated = false

	default:
		return nil, coreError(ErrCodeBadRequest, "unknown command")
	}

	if mutated {
		room.lastActivity = now
	}
	snap := room.snapshotLocked(actor, now)
	if mutated {
		d.notifier.Publish(roomID, snap)
		d.log.Debug().
			Str("room", roomID).
			Int("kind", int(cmd.Kind)).
			Str("actor", string(actor)).
			Msg("applied command")
	}
	return snap, nil
}
