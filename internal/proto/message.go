package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	InboundTypeAdd    = "add"
	InboundTypeSkip   = "skip"
	InboundTypePause  = "pause"
	InboundTypeRemove = "remove"
	InboundTypeMove   = "move"
	InboundTypeClear  = "clear"
	InboundTypeMsg    = "msg"
	InboundTypeSync   = "sync"

	OutboundTypeState = "state"
	OutboundTypeSync  = "sync"
	OutboundTypeError = "error"
)

// AddData asks the server to resolve and play or enqueue a media
// reference (watch URL, share URL, embed URL or bare id).
type AddData struct {
	Reference string `json:"reference"`
}

// RemoveData deletes one queue entry by index.
type RemoveData struct {
	Index int `json:"index"`
}

// MoveData repositions a queue entry.
type MoveData struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// MsgData is a chat message from the client.
type MsgData struct {
	Text string `json:"text"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// RoomState is the full room snapshot pushed after every mutation.
type RoomState struct {
	Room           string      `json:"room"`
	Current        *MediaItem  `json:"current,omitempty"`
	ElapsedSeconds float64     `json:"elapsed_seconds"`
	Paused         bool        `json:"paused"`
	Queue          []MediaItem `json:"queue"`
	Chat           []ChatLine  `json:"chat"`
	Users          []string    `json:"users"`
	You            string      `json:"you,omitempty"`
}

// MediaItem is the wire form of one queue entry.
type MediaItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Thumbnail string `json:"thumbnail"`
	AddedBy   string `json:"added_by,omitempty"`
	AddedAt   int64  `json:"added_at"`
}

// ChatLine is the wire form of one chat message.
type ChatLine struct {
	User string `json:"user"`
	Text string `json:"text"`
	TS   int64  `json:"ts"`
}

// SyncData answers a sync query with the authoritative playhead.
type SyncData struct {
	Room           string  `json:"room"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Paused         bool    `json:"paused"`
	MediaID        string  `json:"media_id,omitempty"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
