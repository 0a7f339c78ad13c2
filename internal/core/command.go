package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoin adds an identity to the room's presence set.
	CommandJoin CommandKind = iota
	// CommandLeave removes an identity from the presence set.
	CommandLeave
	// CommandAddMedia plays or enqueues an already-resolved media item.
	CommandAddMedia
	// CommandAdvance skips to the next queued track.
	CommandAdvance
	// CommandTogglePause pauses or resumes the shared clock.
	CommandTogglePause
	// CommandRemoveFromQueue deletes one queue entry by index.
	CommandRemoveFromQueue
	// CommandMoveInQueue repositions one queue entry.
	CommandMoveInQueue
	// CommandClearQueue empties the queue.
	CommandClearQueue
	// CommandSendChat appends a chat message.
	CommandSendChat
	// CommandQuerySync reads the room state without mutating it.
	CommandQuerySync
)

// Command represents an action requested by a client against one room.
type Command struct {
	Kind  CommandKind
	Actor Identity // issuing identity; for CommandJoin the desired name
	Item  *MediaItem
	Index int
	From  int
	To    int
	Text  string
}
