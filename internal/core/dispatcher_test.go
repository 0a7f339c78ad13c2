package core

import (
	"errors"
	"testing"
	"time"
)

func newTestDispatcher() *Dispatcher {
	return NewDispatcher(NewRegistry(0, testLogger()), testLogger())
}

func mustApply(t *testing.T, d *Dispatcher, room string, cmd *Command, now time.Time) *RoomSnapshot {
	t.Helper()
	snap, err := d.Apply(room, cmd, now)
	if err != nil {
		t.Fatalf("apply %v failed: %v", cmd.Kind, err)
	}
	return snap
}

func TestDispatcherAddAdvanceScenario(t *testing.T) {
	d := newTestDispatcher()
	base := time.Now()

	mustApply(t, d, "r1", &Command{Kind: CommandJoin, Actor: "u1"}, base)
	mustApply(t, d, "r1", &Command{Kind: CommandJoin, Actor: "u2"}, base)

	snap := mustApply(t, d, "r1", &Command{
		Kind:  CommandAddMedia,
		Actor: "u1",
		Item:  &MediaItem{ID: "AAAAAAAAAAA", SourceRef: "watch?v=AAAAAAAAAAA"},
	}, base)
	if snap.Playback == nil || snap.Playback.MediaID != "AAAAAAAAAAA" {
		t.Fatalf("expected AAAAAAAAAAA playing, got %+v", snap.Playback)
	}
	if len(snap.Queue) != 0 {
		t.Fatalf("queue should be empty, got %+v", snap.Queue)
	}

	snap = mustApply(t, d, "r1", &Command{
		Kind:  CommandAddMedia,
		Actor: "u2",
		Item:  &MediaItem{ID: "BBBBBBBBBBB", SourceRef: "youtu.be/BBBBBBBBBBB"},
	}, base.Add(time.Second))
	if snap.Playback.MediaID != "AAAAAAAAAAA" {
		t.Fatalf("current track changed: %s", snap.Playback.MediaID)
	}
	if len(snap.Queue) != 1 || snap.Queue[0].ID != "BBBBBBBBBBB" {
		t.Fatalf("unexpected queue: %+v", snap.Queue)
	}
	if snap.Queue[0].AddedBy != "u2" {
		t.Fatalf("AddedBy = %q, want u2", snap.Queue[0].AddedBy)
	}

	at := base.Add(2 * time.Minute)
	snap = mustApply(t, d, "r1", &Command{Kind: CommandAdvance, Actor: "u1"}, at)
	if snap.Playback.MediaID != "BBBBBBBBBBB" {
		t.Fatalf("expected BBBBBBBBBBB after advance, got %s", snap.Playback.MediaID)
	}
	if len(snap.Queue) != 0 {
		t.Fatalf("queue should be empty after advance: %+v", snap.Queue)
	}
	if snap.Elapsed != 0 {
		t.Fatalf("elapsed at transition = %v, want 0", snap.Elapsed)
	}
}

func TestDispatcherTogglePauseFreezesElapsed(t *testing.T) {
	d := newTestDispatcher()
	base := time.Now()

	mustApply(t, d, "r1", &Command{Kind: CommandJoin, Actor: "u1"}, base)
	mustApply(t, d, "r1", &Command{
		Kind:  CommandAddMedia,
		Actor: "u1",
		Item:  &MediaItem{ID: "AAAAAAAAAAA"},
	}, base)

	pauseAt := base.Add(30 * time.Second)
	before := mustApply(t, d, "r1", &Command{Kind: CommandQuerySync}, pauseAt).Elapsed
	mustApply(t, d, "r1", &Command{Kind: CommandTogglePause, Actor: "u1"}, pauseAt)

	// Five seconds pass while paused, then resume.
	resumeAt := pauseAt.Add(5 * time.Second)
	after := mustApply(t, d, "r1", &Command{Kind: CommandTogglePause, Actor: "u1"}, resumeAt).Elapsed

	if after != before {
		t.Fatalf("elapsed drifted across pause: before=%v after=%v", before, after)
	}
}

func TestDispatcherTogglePauseIdleRoomIsNoop(t *testing.T) {
	d := newTestDispatcher()
	base := time.Now()

	snap := mustApply(t, d, "r1", &Command{Kind: CommandTogglePause, Actor: "u1"}, base)
	if snap.Playback != nil {
		t.Fatalf("no playback expected, got %+v", snap.Playback)
	}
}

func TestDispatcherJoinResolvesCollision(t *testing.T) {
	d := newTestDispatcher()
	base := time.Now()

	first := mustApply(t, d, "r1", &Command{Kind: CommandJoin, Actor: "dj"}, base)
	second := mustApply(t, d, "r1", &Command{Kind: CommandJoin, Actor: "dj"}, base)

	if first.Actor != "dj" || second.Actor != "dj_1" {
		t.Fatalf("resolved actors = %q, %q", first.Actor, second.Actor)
	}
	if len(second.Users) != 2 {
		t.Fatalf("presence size = %d, want 2", len(second.Users))
	}
	if second.Creator != "dj" {
		t.Fatalf("creator = %q, want dj", second.Creator)
	}
}

func TestDispatcherRejectionsLeaveStateUntouched(t *testing.T) {
	d := newTestDispatcher()
	base := time.Now()

	mustApply(t, d, "r1", &Command{Kind: CommandJoin, Actor: "u1"}, base)
	mustApply(t, d, "r1", &Command{
		Kind:  CommandAddMedia,
		Actor: "u1",
		Item:  &MediaItem{ID: "AAAAAAAAAAA"},
	}, base)
	mustApply(t, d, "r1", &Command{
		Kind:  CommandAddMedia,
		Actor: "u1",
		Item:  &MediaItem{ID: "BBBBBBBBBBB"},
	}, base)

	cases := []*Command{
		{Kind: CommandRemoveFromQueue, Actor: "u1", Index: 5},
		{Kind: CommandMoveInQueue, Actor: "u1", From: 0, To: 9},
		{Kind: CommandLeave, Actor: "ghost"},
		{Kind: CommandSendChat, Actor: "u1", Text: ""},
		{Kind: CommandAddMedia, Actor: "u1", Item: nil},
	}
	for _, cmd := range cases {
		if _, err := d.Apply("r1", cmd, base.Add(time.Second)); err == nil {
			t.Fatalf("command %v should have been rejected", cmd.Kind)
		}
	}

	snap := mustApply(t, d, "r1", &Command{Kind: CommandQuerySync}, base.Add(2*time.Second))
	if len(snap.Queue) != 1 || snap.Queue[0].ID != "BBBBBBBBBBB" {
		t.Fatalf("rejected commands mutated queue: %+v", snap.Queue)
	}
	if len(snap.Users) != 1 {
		t.Fatalf("rejected commands mutated presence: %+v", snap.Users)
	}
}

func TestDispatcherRejectionErrorCodes(t *testing.T) {
	d := newTestDispatcher()
	base := time.Now()

	_, err := d.Apply("r1", &Command{Kind: CommandRemoveFromQueue, Index: 0}, base)
	var coreErr *CoreError
	if !errors.As(err, &coreErr) || coreErr.Code != ErrCodeIndexOutOfRange {
		t.Fatalf("expected index_out_of_range, got %v", err)
	}

	_, err = d.Apply("r1", &Command{Kind: CommandLeave, Actor: "ghost"}, base)
	if !errors.As(err, &coreErr) || coreErr.Code != ErrCodeNotInRoom {
		t.Fatalf("expected not_in_room, got %v", err)
	}
}

func TestDispatcherPublishesSnapshotsToSubscribers(t *testing.T) {
	d := newTestDispatcher()
	base := time.Now()

	ch, cancel := d.Subscribe("r1")
	defer cancel()

	mustApply(t, d, "r1", &Command{Kind: CommandJoin, Actor: "u1"}, base)

	select {
	case snap := <-ch:
		if snap.Actor != "u1" || len(snap.Users) != 1 {
			t.Fatalf("unexpected snapshot: %+v", snap)
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot published after mutation")
	}

	// Reads must not be published.
	mustApply(t, d, "r1", &Command{Kind: CommandQuerySync}, base)
	select {
	case snap := <-ch:
		t.Fatalf("query published a snapshot: %+v", snap)
	default:
	}
}

func TestDispatcherQuerySyncDoesNotBumpActivity(t *testing.T) {
	d := newTestDispatcher()
	base := time.Now()

	mustApply(t, d, "r1", &Command{Kind: CommandJoin, Actor: "u1"}, base)
	mustApply(t, d, "r1", &Command{Kind: CommandLeave, Actor: "u1"}, base)

	// Queries alone must not keep an empty room alive.
	mustApply(t, d, "r1", &Command{Kind: CommandQuerySync}, base.Add(time.Hour))

	removed := d.registry.Sweep(base.Add(time.Hour), time.Minute)
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
}
