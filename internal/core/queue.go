package core

import "time"

// Queue transition logic. All methods assume the caller holds r.mu.

// enqueueOrPlayLocked plays item immediately when nothing is active,
// otherwise appends it to the queue tail. Current playback is never
// disturbed by an enqueue.
func (r *Room) enqueueOrPlayLocked(item MediaItem, now time.Time) {
	if r.playback == nil {
		r.playback = newPlayback(item.ID, now)
		r.nowPlaying = &item
		return
	}
	r.queue = append(r.queue, item)
}

// advanceLocked pops the queue head into the player, resetting the
// clock completely. With an empty queue the room goes idle.
func (r *Room) advanceLocked(now time.Time) {
	if len(r.queue) == 0 {
		r.playback = nil
		r.nowPlaying = nil
		return
	}
	next := r.queue[0]
	r.queue = r.queue[1:]
	r.playback = newPlayback(next.ID, now)
	r.nowPlaying = &next
}

// togglePauseLocked flips between paused and playing. A no-op when no
// track is active.
func (r *Room) togglePauseLocked(now time.Time) {
	if r.playback == nil {
		return
	}
	if r.playback.Paused {
		r.playback.resume(now)
		return
	}
	r.playback.pause(now)
}

// removeAtLocked deletes the queue entry at index. An out-of-range
// index is a rejected no-op.
func (r *Room) removeAtLocked(index int) bool {
	if index < 0 || index >= len(r.queue) {
		return false
	}
	r.queue = append(r.queue[:index], r.queue[index+1:]...)
	return true
}

// moveItemLocked repositions the entry at from to to, shifting the rest.
func (r *Room) moveItemLocked(from, to int) bool {
	if from < 0 || from >= len(r.queue) || to < 0 || to >= len(r.queue) {
		return false
	}
	if from == to {
		return true
	}
	item := r.queue[from]
	r.queue = append(r.queue[:from], r.queue[from+1:]...)
	r.queue = append(r.queue[:to], append([]MediaItem{item}, r.queue[to:]...)...)
	return true
}

// clearQueueLocked empties the queue without touching current playback.
func (r *Room) clearQueueLocked() {
	r.queue = r.queue[:0]
}
