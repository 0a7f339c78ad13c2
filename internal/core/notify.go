package core

import "sync"

// Notifier fans out post-mutation snapshots to per-room subscribers so
// the transport layer can push state changes instead of clients polling.
type Notifier struct {
	mu   sync.RWMutex
	subs map[string]map[int]chan *RoomSnapshot
	next int
}

// NewNotifier constructs an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]map[int]chan *RoomSnapshot)}
}

// Subscribe registers interest in roomID. The returned cancel func must
// be called when the subscriber disconnects.
func (n *Notifier) Subscribe(roomID string) (<-chan *RoomSnapshot, func()) {
	ch := make(chan *RoomSnapshot, 8)

	n.mu.Lock()
	id := n.next
	n.next++
	if n.subs[roomID] == nil {
		n.subs[roomID] = make(map[int]chan *RoomSnapshot)
	}
	n.subs[roomID][id] = ch
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		if subs, ok := n.subs[roomID]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(n.subs, roomID)
			}
		}
		n.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers snap to every subscriber of roomID.
func (n *Notifier) Publish(roomID string, snap *RoomSnapshot) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, ch := range n.subs[roomID] {
		select {
		case ch <- snap:
		default:
			// Drop if slow consumer.
		}
	}
}
