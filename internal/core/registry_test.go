package core

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.New(nil)
	return &logger
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	reg := NewRegistry(0, testLogger())
	now := time.Now()

	first := reg.GetOrCreate("party", now)
	second := reg.GetOrCreate("party", now.Add(time.Minute))

	if first != second {
		t.Fatal("same id produced two distinct rooms")
	}
	if reg.Len() != 1 {
		t.Fatalf("registry size = %d, want 1", reg.Len())
	}
}

func TestGetOrCreateConcurrentFirstReference(t *testing.T) {
	reg := NewRegistry(0, testLogger())
	now := time.Now()

	const workers = 32
	rooms := make([]*Room, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			rooms[i] = reg.GetOrCreate("party", now)
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if rooms[i] != rooms[0] {
			t.Fatal("concurrent first references produced more than one room")
		}
	}
	if reg.Len() != 1 {
		t.Fatalf("registry size = %d, want 1", reg.Len())
	}
}

func TestGetDoesNotCreate(t *testing.T) {
	reg := NewRegistry(0, testLogger())

	if _, ok := reg.Get("ghost"); ok {
		t.Fatal("Get should not create rooms")
	}
	if reg.Len() != 0 {
		t.Fatalf("registry size = %d, want 0", reg.Len())
	}
}

func TestSweepRemovesOnlyEmptyStaleRooms(t *testing.T) {
	reg := NewRegistry(0, testLogger())
	base := time.Now()
	idle := 10 * time.Minute

	// Stale and empty: must go.
	reg.GetOrCreate("stale", base)

	// Stale but occupied: must stay.
	occupied := reg.GetOrCreate("occupied", base)
	occupied.mu.Lock()
	occupied.joinLocked("alice", base)
	occupied.mu.Unlock()

	// Empty but recently active: must stay.
	fresh := reg.GetOrCreate("fresh", base)
	fresh.mu.Lock()
	fresh.lastActivity = base.Add(idle)
	fresh.mu.Unlock()

	removed := reg.Sweep(base.Add(idle).Add(time.Second), idle)

	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, ok := reg.Get("stale"); ok {
		t.Fatal("stale empty room survived sweep")
	}
	if _, ok := reg.Get("occupied"); !ok {
		t.Fatal("occupied room was evicted")
	}
	if _, ok := reg.Get("fresh"); !ok {
		t.Fatal("recently active room was evicted")
	}
}

func TestSweptRoomIsRecreatedOnNextReference(t *testing.T) {
	reg := NewRegistry(0, testLogger())
	base := time.Now()

	old := reg.GetOrCreate("party", base)
	reg.Sweep(base.Add(time.Hour), time.Minute)

	fresh := reg.GetOrCreate("party", base.Add(2*time.Hour))
	if fresh == old {
		t.Fatal("expected a fresh room after eviction")
	}
}
