package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Prajapati29/syncroom/internal/core"
	"github.com/Prajapati29/syncroom/internal/media"
	"github.com/Prajapati29/syncroom/internal/proto"
)

// WSHandler upgrades HTTP connections and bridges them to the
// dispatcher: inbound frames become commands, room snapshots fan out
// as state pushes.
type WSHandler struct {
	dispatcher *core.Dispatcher
	resolver   media.Resolver
	log        *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(dispatcher *core.Dispatcher, resolver media.Resolver, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{dispatcher: dispatcher, resolver: resolver, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		stdhttp.Error(w, "room is required", stdhttp.StatusBadRequest)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "Guest"
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	connID := uuid.NewString()
	log := h.log.With().Str("conn_id", connID).Str("room", roomID).Logger()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Subscribe before joining so the join snapshot reaches this
	// client as its initial state.
	snapshots, unsubscribe := h.dispatcher.Subscribe(roomID)
	defer unsubscribe()

	joinSnap, err := h.dispatcher.Apply(roomID, &core.Command{
		Kind:  core.CommandJoin,
		Actor: core.Identity(name),
	}, time.Now())
	if err != nil {
		log.Warn().Err(err).Msg("join rejected")
		conn.Close(websocket.StatusPolicyViolation, "join rejected")
		return
	}
	identity := joinSnap.Actor
	log = log.With().Str("user", string(identity)).Logger()
	log.Info().Msg("client joined")

	defer func() {
		leaveCmd := &core.Command{Kind: core.CommandLeave, Actor: identity}
		if _, err := h.dispatcher.Apply(roomID, leaveCmd, time.Now()); err != nil {
			log.Warn().Err(err).Msg("leave on disconnect failed")
		}
	}()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, roomID, identity, &log)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, snapshots, identity)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			log.Warn().Err(err).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
	log.Info().Msg("client left")
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, roomID string, identity core.Identity, log *zerolog.Logger) error {
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			return err
		}

		cmd, protoErr, err := inboundToCommand(ctx, h.resolver, identity, inbound)
		if err != nil {
			log.Warn().Err(err).Msg("failed to map inbound")
			return err
		}
		if protoErr != nil {
			if writeErr := wsjson.Write(ctx, conn, proto.Outbound{
				Type:  proto.OutboundTypeError,
				Error: protoErr,
			}); writeErr != nil {
				return writeErr
			}
			continue
		}

		snap, err := h.dispatcher.Apply(roomID, cmd, time.Now())
		if err != nil {
			var coreErr *core.CoreError
			outErr := &proto.Error{Code: core.ErrCodeBadRequest, Msg: err.Error()}
			if errors.As(err, &coreErr) {
				outErr.Code = coreErr.Code
			}
			if writeErr := wsjson.Write(ctx, conn, proto.Outbound{
				Type:  proto.OutboundTypeError,
				Error: outErr,
			}); writeErr != nil {
				return writeErr
			}
			continue
		}

		// Query results go only to the asking client; mutations reach
		// everyone through the subscription.
		if cmd.Kind == core.CommandQuerySync {
			if err := wsjson.Write(ctx, conn, proto.Outbound{
				Type: proto.OutboundTypeSync,
				Data: syncFromSnapshot(snap),
			}); err != nil {
				return err
			}
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, snapshots <-chan *core.RoomSnapshot, identity core.Identity) error {
	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				return nil
			}
			out := proto.Outbound{
				Type: proto.OutboundTypeState,
				Data: stateFromSnapshot(snap, identity),
			}
			if err := wsjson.Write(ctx, conn, out); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
