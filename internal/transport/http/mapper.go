package http

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Prajapati29/syncroom/internal/core"
	"github.com/Prajapati29/syncroom/internal/media"
	"github.com/Prajapati29/syncroom/internal/proto"
)

// inboundToCommand maps one wire frame onto a core command. Reference
// resolution for "add" happens here, before any room lock is taken, so
// a slow metadata lookup never stalls the room.
func inboundToCommand(ctx context.Context, resolver media.Resolver, actor core.Identity, inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeAdd:
		var add proto.AddData
		if err := json.Unmarshal(inbound.Data, &add); err != nil {
			return nil, nil, err
		}
		id, err := media.ExtractID(add.Reference)
		if err != nil {
			if errors.Is(err, media.ErrInvalidReference) {
				return nil, &proto.Error{Code: core.ErrCodeInvalidReference, Msg: "unrecognized media reference"}, nil
			}
			return nil, nil, err
		}
		meta := resolver.Resolve(ctx, id)
		return &core.Command{
			Kind:  core.CommandAddMedia,
			Actor: actor,
			Item: &core.MediaItem{
				ID:        id,
				SourceRef: add.Reference,
				Title:     meta.Title,
				Author:    meta.Author,
				Thumbnail: meta.Thumbnail,
			},
		}, nil, nil

	case proto.InboundTypeSkip:
		return &core.Command{Kind: core.CommandAdvance, Actor: actor}, nil, nil

	case proto.InboundTypePause:
		return &core.Command{Kind: core.CommandTogglePause, Actor: actor}, nil, nil

	case proto.InboundTypeRemove:
		var remove proto.RemoveData
		if err := json.Unmarshal(inbound.Data, &remove); err != nil {
			return nil, nil, err
		}
		return &core.Command{Kind: core.CommandRemoveFromQueue, Actor: actor, Index: remove.Index}, nil, nil

	case proto.InboundTypeMove:
		var move proto.MoveData
		if err := json.Unmarshal(inbound.Data, &move); err != nil {
			return nil, nil, err
		}
		return &core.Command{Kind: core.CommandMoveInQueue, Actor: actor, From: move.From, To: move.To}, nil, nil

	case proto.InboundTypeClear:
		return &core.Command{Kind: core.CommandClearQueue, Actor: actor}, nil, nil

	case proto.InboundTypeMsg:
		var msg proto.MsgData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		if msg.Text == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "text is required"}, nil
		}
		return &core.Command{Kind: core.CommandSendChat, Actor: actor, Text: msg.Text}, nil, nil

	case proto.InboundTypeSync:
		return &core.Command{Kind: core.CommandQuerySync, Actor: actor}, nil, nil

	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func stateFromSnapshot(snap *core.RoomSnapshot, you core.Identity) proto.RoomState {
	state := proto.RoomState{
		Room:  snap.ID,
		Queue: make([]proto.MediaItem, 0, len(snap.Queue)),
		Chat:  make([]proto.ChatLine, 0, len(snap.Chat)),
		Users: make([]string, 0, len(snap.Users)),
		You:   string(you),
	}
	if snap.Current != nil {
		item := mediaItemToWire(*snap.Current)
		state.Current = &item
		state.ElapsedSeconds = snap.Elapsed.Seconds()
		state.Paused = snap.Playback.Paused
	}
	for _, item := range snap.Queue {
		state.Queue = append(state.Queue, mediaItemToWire(item))
	}
	for _, msg := range snap.Chat {
		state.Chat = append(state.Chat, proto.ChatLine{
			User: string(msg.Author),
			Text: msg.Text,
			TS:   msg.SentAt.Unix(),
		})
	}
	for _, user := range snap.Users {
		state.Users = append(state.Users, string(user))
	}
	return state
}

func syncFromSnapshot(snap *core.RoomSnapshot) proto.SyncData {
	sync := proto.SyncData{Room: snap.ID}
	if snap.Playback != nil {
		sync.ElapsedSeconds = snap.Elapsed.Seconds()
		sync.Paused = snap.Playback.Paused
		sync.MediaID = snap.Playback.MediaID
	}
	return sync
}

func mediaItemToWire(item core.MediaItem) proto.MediaItem {
	var addedAt int64
	if !item.AddedAt.IsZero() {
		addedAt = item.AddedAt.Unix()
	}
	return proto.MediaItem{
		ID:        item.ID,
		Title:     item.Title,
		Author:    item.Author,
		Thumbnail: item.Thumbnail,
		AddedBy:   string(item.AddedBy),
		AddedAt:   addedAt,
	}
}
