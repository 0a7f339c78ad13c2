package core

import (
	"fmt"
	"time"
)

// Presence resolution. All methods assume the caller holds r.mu.
//
// Collision policy: a desired name that is already present gets a
// numeric suffix (name_1, name_2, ...) until unique, instead of being
// rejected. Joining therefore always succeeds.

// joinLocked inserts desiredName into the presence set, resolving
// collisions by suffixing, and returns the resolved identity. The first
// identity ever to join an empty room is recorded as the creator. A
// system chat line announces the join.
func (r *Room) joinLocked(desiredName string, now time.Time) Identity {
	resolved := Identity(desiredName)
	for i := 1; ; i++ {
		if _, taken := r.presence[resolved]; !taken {
			break
		}
		resolved = Identity(fmt.Sprintf("%s_%d", desiredName, i))
	}
	r.presence[resolved] = struct{}{}
	if r.creator == "" {
		r.creator = resolved
	}
	r.chat.append(ChatMessage{
		Author: SystemAuthor,
		Text:   fmt.Sprintf("%s has joined the room.", resolved),
		SentAt: now,
	})
	return resolved
}

// leaveLocked removes identity from the presence set. Returns false if
// the identity was not present. An emptied room is not deleted here; it
// becomes eligible for the next GC sweep.
func (r *Room) leaveLocked(identity Identity, now time.Time) bool {
	if _, ok := r.presence[identity]; !ok {
		return false
	}
	delete(r.presence, identity)
	r.chat.append(ChatMessage{
		Author: SystemAuthor,
		Text:   fmt.Sprintf("%s has left the room.", identity),
		SentAt: now,
	})
	return true
}
