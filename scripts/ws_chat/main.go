package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/Prajapati29/syncroom/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	user := flag.String("user", "cli-user", "username")
	room := flag.String("room", "party", "room to join")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	url := fmt.Sprintf("%s?room=%s&name=%s", *addr, *room, *user)
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	fmt.Printf("Connected to %s as %s in room %s\n", *addr, *user, *room)
	fmt.Println("Type to chat. Commands: /add <url>, /skip, /pause, /remove <i>, /move <from> <to>, /clear, /sync. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, conn)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var frame struct {
			Type  string          `json:"type"`
			Data  json.RawMessage `json:"data"`
			Error *proto.Error    `json:"error"`
		}
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		switch frame.Type {
		case proto.OutboundTypeState:
			var state proto.RoomState
			if err := json.Unmarshal(frame.Data, &state); err != nil {
				log.Printf("unmarshal state: %v", err)
				continue
			}
			printState(state)
		case proto.OutboundTypeSync:
			var sync proto.SyncData
			if err := json.Unmarshal(frame.Data, &sync); err != nil {
				log.Printf("unmarshal sync: %v", err)
				continue
			}
			fmt.Printf("[sync] media=%s elapsed=%.1fs paused=%v\n", sync.MediaID, sync.ElapsedSeconds, sync.Paused)
		case proto.OutboundTypeError:
			if frame.Error != nil {
				fmt.Printf("[error] %s: %s\n", frame.Error.Code, frame.Error.Msg)
			}
		default:
			fmt.Printf("frame=%s data=%s\n", frame.Type, frame.Data)
		}
	}
}

func printState(state proto.RoomState) {
	if state.Current != nil {
		fmt.Printf("[now playing] %s (%s) at %.1fs paused=%v\n",
			state.Current.Title, state.Current.ID, state.ElapsedSeconds, state.Paused)
	} else {
		fmt.Println("[idle] nothing playing")
	}
	for i, item := range state.Queue {
		fmt.Printf("  queue %d. %s (%s)\n", i, item.Title, item.ID)
	}
	if n := len(state.Chat); n > 0 {
		last := state.Chat[n-1]
		fmt.Printf("[chat] %s: %s\n", last.User, last.Text)
	}
	fmt.Printf("[users] %s\n", strings.Join(state.Users, ", "))
}

func writeLoop(ctx context.Context, conn *websocket.Conn) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			inbound, err := lineToInbound(text)
			if err != nil {
				fmt.Printf("[error] %v\n", err)
				continue
			}
			if err := wsjson.Write(ctx, conn, inbound); err != nil {
				log.Printf("send error: %v", err)
				return
			}
		}
	}
}

func lineToInbound(text string) (proto.Inbound, error) {
	if !strings.HasPrefix(text, "/") {
		payload, err := json.Marshal(proto.MsgData{Text: text})
		if err != nil {
			return proto.Inbound{}, err
		}
		return proto.Inbound{Type: proto.InboundTypeMsg, Data: payload}, nil
	}

	fields := strings.Fields(text)
	switch fields[0] {
	case "/add":
		if len(fields) < 2 {
			return proto.Inbound{}, errors.New("usage: /add <url>")
		}
		payload, err := json.Marshal(proto.AddData{Reference: fields[1]})
		if err != nil {
			return proto.Inbound{}, err
		}
		return proto.Inbound{Type: proto.InboundTypeAdd, Data: payload}, nil
	case "/skip":
		return proto.Inbound{Type: proto.InboundTypeSkip}, nil
	case "/pause":
		return proto.Inbound{Type: proto.InboundTypePause}, nil
	case "/clear":
		return proto.Inbound{Type: proto.InboundTypeClear}, nil
	case "/sync":
		return proto.Inbound{Type: proto.InboundTypeSync}, nil
	case "/remove":
		if len(fields) < 2 {
			return proto.Inbound{}, errors.New("usage: /remove <index>")
		}
		index, err := strconv.Atoi(fields[1])
		if err != nil {
			return proto.Inbound{}, err
		}
		payload, err := json.Marshal(proto.RemoveData{Index: index})
		if err != nil {
			return proto.Inbound{}, err
		}
		return proto.Inbound{Type: proto.InboundTypeRemove, Data: payload}, nil
	case "/move":
		if len(fields) < 3 {
			return proto.Inbound{}, errors.New("usage: /move <from> <to>")
		}
		from, err := strconv.Atoi(fields[1])
		if err != nil {
			return proto.Inbound{}, err
		}
		to, err := strconv.Atoi(fields[2])
		if err != nil {
			return proto.Inbound{}, err
		}
		payload, err := json.Marshal(proto.MoveData{From: from, To: to})
		if err != nil {
			return proto.Inbound{}, err
		}
		return proto.Inbound{Type: proto.InboundTypeMove, Data: payload}, nil
	default:
		return proto.Inbound{}, fmt.Errorf("unknown command %s", fields[0])
	}
}
