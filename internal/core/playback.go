package core

import "time"

// PlaybackState tracks the shared playhead of the current media item.
// Every viewer reconstructs the same position from these timestamps
// alone, so no ticking or push is needed to stay in sync.
type PlaybackState struct {
	MediaID    string
	StartedAt  time.Time
	Paused     bool
	PausedAt   time.Time // zero unless Paused
	PauseTotal time.Duration
}

// newPlayback starts a fresh clock for mediaID. Pause bookkeeping is
// always reset; a new track never inherits the previous track's offsets.
func newPlayback(mediaID string, now time.Time) *PlaybackState {
	return &PlaybackState{
		MediaID:   mediaID,
		StartedAt: now,
	}
}

// pause freezes the clock. Returns false if already paused.
func (p *PlaybackState) pause(now time.Time) bool {
	if p.Paused {
		return false
	}
	p.Paused = true
	p.PausedAt = now
	return true
}

// resume unfreezes the clock, folding the paused interval into
// PauseTotal so Elapsed continues from where it stopped.
func (p *PlaybackState) resume(now time.Time) bool {
	if !p.Paused {
		return false
	}
	p.PauseTotal += now.Sub(p.PausedAt)
	p.Paused = false
	p.PausedAt = time.Time{}
	return true
}

// Elapsed returns the playhead position at now. While paused the value
// is frozen at the pause instant regardless of now.
func (p *PlaybackState) Elapsed(now time.Time) time.Duration {
	if p.Paused {
		return p.PausedAt.Sub(p.StartedAt) - p.PauseTotal
	}
	elapsed := now.Sub(p.StartedAt) - p.PauseTotal
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
