// internal/handlers/room_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/jmallory/wordwheel/internal/game"
)

// RoomMessage is the structure of every incoming client action.
type RoomMessage struct {
	Type     string `json:"type"`
	Code     string `json:"code,omitempty"`
	Name     string `json:"name,omitempty"`
	Word     string `json:"word,omitempty"`
	Duration int    `json:"duration,omitempty"` // round duration in seconds
}

// connState tracks which rooms a single connection is bound to. A
// connection hosts at most one room and plays in at most one room; the
// teardown path depends on which role it held.
type connState struct {
	hosted string // room code this connection owns, if any
	joined string // room code this connection plays in, if any
}

// WSHandler upgrades the HTTP connection and runs the gateway protocol:
// read pump dispatching player/host actions into the registry and round
// controller, write pump relaying room events back out.
func WSHandler(logger *logrus.Logger, gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remoteAddr := r.RemoteAddr

		// Resolve identity before the upgrade; the cookie cannot be set
		// once the connection is hijacked.
		connID, err := EnsureEphemeralSession(w, r)
		if err != nil {
			logger.Warnf("session setup failed for %s: %v", remoteAddr, err)
			http.Error(w, "session setup failed", http.StatusInternalServerError)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"wordwheel"},
			OriginPatterns: []string{"*"}, // Adjust in production
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "wordwheel" {
			c.Close(websocket.StatusPolicyViolation, "client must speak the wordwheel subprotocol")
			return
		}

		logger.Infof("connection %s (%s) established", connID, remoteAddr)

		cl := &client{id: connID, out: make(chan game.RoomEvent, 16)}
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		go writePump(ctx, c, cl, logger)

		state := &connState{}
		readPump(ctx, c, gs, cl, state, logger)

		// ---- Cleanup after readPump exits ----
		gs.handleDisconnect(cl, state)
		logger.Infof("connection %s (%s) closed", connID, remoteAddr)
	}
}

// readPump handles incoming actions until the connection closes.
func readPump(ctx context.Context, c *websocket.Conn, gs *GameServer, cl *client, state *connState, logger *logrus.Logger) {
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			closeStatus := websocket.CloseStatus(err)
			if closeStatus == websocket.StatusNormalClosure || closeStatus == websocket.StatusGoingAway {
				logger.Infof("websocket closed normally for connection %s", cl.id)
			} else if strings.Contains(err.Error(), "context canceled") {
				// Parent request context ended; nothing to report.
			} else {
				logger.Warnf("read error for connection %s: %v (CloseStatus: %d)", cl.id, err, closeStatus)
			}
			return
		}

		if typ != websocket.MessageText {
			logger.Warnf("non-text message type %d from connection %s, ignoring", typ, cl.id)
			continue
		}

		var msg RoomMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("invalid json from connection %s: %v", cl.id, err)
			cl.send(game.RoomEvent{Type: game.EventErrorMsg, Message: "Invalid JSON format"})
			continue
		}

		gs.handleRoomMessage(msg, cl, state)
	}
}

// handleRoomMessage dispatches one client action. Start/submit/restart on
// an unknown code are dropped silently; they are stale client actions, not
// user mistakes worth alarming anyone about. Joining an unknown code is a
// user mistake, so that one gets an explicit error reply.
func (gs *GameServer) handleRoomMessage(msg RoomMessage, cl *client, state *connState) {
	switch msg.Type {
	case "host-create":
		room := gs.CreateRoom(cl.id)
		gs.Attach(room.Code, cl)
		state.hosted = room.Code
		cl.send(game.RoomEvent{Type: game.EventGameCreated, Code: room.Code})
		gs.Logger.Infof("room %s created by %s", room.Code, cl.id)

	case "start-game":
		room, ok := gs.Rooms.GetRoom(msg.Code)
		if !ok {
			return
		}
		room.StartRound(gs.Dict, roundDuration(msg.Duration))
		gs.Logger.Infof("room %s round started", msg.Code)

	case "player-join":
		room, ok := gs.Rooms.GetRoom(msg.Code)
		if !ok {
			cl.send(game.RoomEvent{Type: game.EventErrorMsg, Message: "Game not found"})
			return
		}
		gs.Attach(msg.Code, cl)
		state.joined = msg.Code
		room.AddPlayer(cl.id, msg.Name)
		gs.Logger.Infof("player %s (%q) joined room %s", cl.id, msg.Name, msg.Code)

	case "submit-word":
		room, ok := gs.Rooms.GetRoom(msg.Code)
		if !ok {
			return
		}
		room.SubmitWord(gs.Dict, cl.id, msg.Word)

	case "host-restart":
		room, ok := gs.Rooms.GetRoom(msg.Code)
		if !ok {
			return
		}
		room.Restart(gs.Dict, roundDuration(msg.Duration))
		gs.Logger.Infof("room %s restarted", msg.Code)

	default:
		gs.Logger.Warnf("unknown action %q from connection %s", msg.Type, cl.id)
		cl.send(game.RoomEvent{Type: game.EventErrorMsg, Message: fmt.Sprintf("Unknown action type: %s", msg.Type)})
	}
}

// handleDisconnect tears down a departed connection. A departing host ends
// the room's round (the same broadcast sequence as a natural timer expiry);
// a departing player is removed and the player count rebroadcast.
func (gs *GameServer) handleDisconnect(cl *client, state *connState) {
	if state.joined != "" {
		if room, ok := gs.Rooms.GetRoom(state.joined); ok {
			room.RemovePlayer(cl.id)
		}
		gs.Detach(state.joined, cl)
	}
	if state.hosted != "" {
		if room, ok := gs.Rooms.GetRoom(state.hosted); ok {
			gs.Logger.Infof("host %s left, ending round in room %s", cl.id, state.hosted)
			room.EndRound(gs.Dict)
		}
		gs.Detach(state.hosted, cl)
	}
}

// writePump relays room events to the websocket and keeps the connection
// alive with periodic pings.
func writePump(ctx context.Context, c *websocket.Conn, cl *client, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-cl.out:
			data, err := json.Marshal(ev)
			if err != nil {
				logger.Warnf("failed to marshal event %q for connection %s: %v", ev.Type, cl.id, err)
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("failed to write to connection %s: %v", cl.id, err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Warnf("ping failed for connection %s: %v, assuming disconnect", cl.id, err)
				return
			}
		}
	}
}
