// internal/handlers/game_server.go
package handlers

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jmallory/wordwheel/internal/game"
	"github.com/jmallory/wordwheel/internal/words"
)

// DefaultRoundDuration is used when a host supplies no duration or an
// unusable one.
const DefaultRoundDuration = 90 * time.Second

// maxRoundDuration bounds client-supplied durations; anything longer falls
// back to the default instead of arming an absurd timer.
const maxRoundDuration = 30 * time.Minute

// GameServer is the high-level gateway state: the room registry, the
// dictionary, and the per-room websocket connections. The connection
// registry lives here so the game package never touches a transport.
type GameServer struct {
	Rooms  *game.RoomStore
	Dict   *words.Dictionary
	Logger *logrus.Logger

	mu      sync.Mutex
	clients map[string]map[uuid.UUID]*client // room code -> connection id
}

// NewGameServer wires a gateway around an existing store and dictionary.
func NewGameServer(rooms *game.RoomStore, dict *words.Dictionary, logger *logrus.Logger) *GameServer {
	return &GameServer{
		Rooms:   rooms,
		Dict:    dict,
		Logger:  logger,
		clients: make(map[string]map[uuid.UUID]*client),
	}
}

// client is a single connection's presence in a room's broadcast group.
type client struct {
	id  uuid.UUID
	out chan game.RoomEvent
}

// send pushes an event onto the connection's outgoing channel
// non-blockingly. Logs if the channel is full or closed.
func (cl *client) send(ev game.RoomEvent) {
	select {
	case cl.out <- ev:
	default:
		log.Printf("client %s: out channel full or closed, dropped event %q", cl.id, ev.Type)
	}
}

// CreateRoom creates a registry room, installs its broadcast functions and
// expiry callback, and prepares its broadcast group.
func (gs *GameServer) CreateRoom(hostID uuid.UUID) *game.Room {
	room := gs.Rooms.CreateRoom(hostID)
	code := room.Code

	gs.mu.Lock()
	gs.clients[code] = make(map[uuid.UUID]*client)
	gs.mu.Unlock()

	// Broadcast functions are invoked while the room lock is held; they
	// touch only the gateway's own mutex and the non-blocking channels.
	room.BroadcastFn = func(ev game.RoomEvent) {
		for _, cl := range gs.roomClients(code) {
			cl.send(ev)
		}
	}
	room.BroadcastToPlayerFn = func(playerID uuid.UUID, ev game.RoomEvent) {
		gs.mu.Lock()
		cl := gs.clients[code][playerID]
		gs.mu.Unlock()
		if cl != nil {
			cl.send(ev)
		}
	}
	room.OnExpire = func(code string) {
		gs.Logger.Infof("room %s retention elapsed, removing", code)
		gs.Rooms.DeleteRoom(code)
		gs.mu.Lock()
		delete(gs.clients, code)
		gs.mu.Unlock()
	}
	return room
}

// Attach adds a connection to a room's broadcast group, replacing any
// previous connection with the same identity (a reconnect).
func (gs *GameServer) Attach(code string, cl *client) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	group, ok := gs.clients[code]
	if !ok {
		group = make(map[uuid.UUID]*client)
		gs.clients[code] = group
	}
	group[cl.id] = cl
}

// Detach removes a connection from a room's broadcast group. Only the exact
// client is removed, so a stale teardown cannot evict a fresh reconnect.
func (gs *GameServer) Detach(code string, cl *client) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if group, ok := gs.clients[code]; ok && group[cl.id] == cl {
		delete(group, cl.id)
	}
}

// roomClients snapshots a room's broadcast group.
func (gs *GameServer) roomClients(code string) []*client {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	group := gs.clients[code]
	out := make([]*client, 0, len(group))
	for _, cl := range group {
		out = append(out, cl)
	}
	return out
}

// roundDuration converts a client-supplied duration in seconds into a
// bounded time.Duration.
func roundDuration(seconds int) time.Duration {
	d := time.Duration(seconds) * time.Second
	if d <= 0 || d > maxRoundDuration {
		return DefaultRoundDuration
	}
	return d
}
