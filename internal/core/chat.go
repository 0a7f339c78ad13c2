package core

// DefaultChatCapacity bounds a room's chat log when no capacity is
// configured.
const DefaultChatCapacity = 100

// chatLog is a bounded, insertion-ordered message buffer. New messages
// append at the tail; when the capacity is exceeded the oldest message
// is evicted from the head.
type chatLog struct {
	capacity int
	msgs     []ChatMessage
}

func newChatLog(capacity int) *chatLog {
	if capacity <= 0 {
		capacity = DefaultChatCapacity
	}
	return &chatLog{capacity: capacity}
}

func (c *chatLog) append(msg ChatMessage) {
	c.msgs = append(c.msgs, msg)
	if len(c.msgs) > c.capacity {
		c.msgs = c.msgs[1:]
	}
}

// messages returns a copy in insertion order, oldest first.
func (c *chatLog) messages() []ChatMessage {
	out := make([]ChatMessage, len(c.msgs))
	copy(out, c.msgs)
	return out
}

func (c *chatLog) len() int {
	return len(c.msgs)
}
