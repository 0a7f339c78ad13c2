package core

import "time"

// Identity is a display name, unique within one room's presence set at
// any instant. It is not a global account.
type Identity string

// SystemAuthor is the reserved author for server-generated chat lines.
const SystemAuthor Identity = "System"

// MediaItem is a resolved media entry, ready to play or queue.
type MediaItem struct {
	ID        string
	SourceRef string
	Title     string
	Author    string
	Thumbnail string
	AddedBy   Identity // empty when added anonymously
	AddedAt   time.Time
}

// ChatMessage is the domain model for one chat line.
type ChatMessage struct {
	Author Identity
	Text   string
	SentAt time.Time
}
