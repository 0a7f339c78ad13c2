package core

import (
	"sort"
	"sync"
	"time"
)

// Room is an isolated unit of shared playback, queue, chat and presence
// state. All mutable fields are guarded by mu; the Dispatcher is the
// only caller that takes it, so every command against a room is applied
// one at a time.
type Room struct {
	ID string

	mu           sync.Mutex
	playback     *PlaybackState
	nowPlaying   *MediaItem // metadata of the active track, nil when idle
	queue        []MediaItem
	chat         *chatLog
	presence     map[Identity]struct{}
	creator      Identity // first identity to ever join, never reassigned
	createdAt    time.Time
	lastActivity time.Time
}

// NewRoom constructs an empty room.
func NewRoom(id string, chatCapacity int, now time.Time) *Room {
	return &Room{
		ID:           id,
		chat:         newChatLog(chatCapacity),
		presence:     make(map[Identity]struct{}),
		createdAt:    now,
		lastActivity: now,
	}
}

// idleSinceLocked reports whether the room has been empty with no
// activity since before cutoff. Caller holds mu.
func (r *Room) idleSinceLocked(cutoff time.Time) bool {
	return len(r.presence) == 0 && r.lastActivity.Before(cutoff)
}

// RoomSnapshot is an immutable view of a room taken after a command was
// applied. It is safe to share across goroutines.
type RoomSnapshot struct {
	ID       string
	Playback *PlaybackState // copy, nil when no track is active
	Current  *MediaItem     // metadata of the active track, nil when idle
	Elapsed  time.Duration  // playhead at snapshot time, 0 when idle
	Queue    []MediaItem
	Chat     []ChatMessage
	Users    []Identity
	Creator  Identity
	Actor    Identity // identity the command ran as (resolved on join)

	CreatedAt time.Time
	TakenAt   time.Time
}

// snapshotLocked builds an immutable snapshot. Caller holds mu.
func (r *Room) snapshotLocked(actor Identity, now time.Time) *RoomSnapshot {
	snap := &RoomSnapshot{
		ID:        r.ID,
		Queue:     make([]MediaItem, len(r.queue)),
		Chat:      r.chat.messages(),
		Users:     make([]Identity, 0, len(r.presence)),
		Creator:   r.creator,
		Actor:     actor,
		CreatedAt: r.createdAt,
		TakenAt:   now,
	}
	copy(snap.Queue, r.queue)
	for id := range r.presence {
		snap.Users = append(snap.Users, id)
	}
	sort.Slice(snap.Users, func(i, j int) bool { return snap.Users[i] < snap.Users[j] })
	if r.playback != nil {
		pb := *r.playback
		snap.Playback = &pb
		snap.Elapsed = pb.Elapsed(now)
	}
	if r.nowPlaying != nil {
		item := *r.nowPlaying
		snap.Current = &item
	}
	return snap
}
