// internal/handlers/game_server_test.go
package handlers

import (
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmallory/wordwheel/internal/game"
	"github.com/jmallory/wordwheel/internal/words"
)

func newTestServer(t *testing.T) *GameServer {
	t.Helper()
	dict := words.New(
		[]string{"cat", "rat", "tale", "crab", "blare", "calibrate", "dog"},
		[]string{"calibrate"},
	)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewGameServer(game.NewRoomStore(), dict, logger)
}

func newTestClient() *client {
	return &client{id: uuid.New(), out: make(chan game.RoomEvent, 16)}
}

// drain empties a client's outgoing channel.
func drain(cl *client) []game.RoomEvent {
	var events []game.RoomEvent
	for {
		select {
		case ev := <-cl.out:
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestRoundDuration(t *testing.T) {
	assert.Equal(t, DefaultRoundDuration, roundDuration(0))
	assert.Equal(t, DefaultRoundDuration, roundDuration(-5))
	assert.Equal(t, 60*time.Second, roundDuration(60))
	assert.Equal(t, 30*time.Minute, roundDuration(1800))
	assert.Equal(t, DefaultRoundDuration, roundDuration(1801))
}

func TestHostCreate(t *testing.T) {
	gs := newTestServer(t)
	host := newTestClient()
	state := &connState{}

	gs.handleRoomMessage(RoomMessage{Type: "host-create"}, host, state)

	events := drain(host)
	require.Len(t, events, 1)
	assert.Equal(t, game.EventGameCreated, events[0].Type)
	assert.Len(t, events[0].Code, game.CodeLength)

	assert.Equal(t, events[0].Code, state.hosted)
	_, ok := gs.Rooms.GetRoom(state.hosted)
	assert.True(t, ok)
}

func TestPlayerJoinUnknownRoom(t *testing.T) {
	gs := newTestServer(t)
	player := newTestClient()

	gs.handleRoomMessage(RoomMessage{Type: "player-join", Code: "ZZZZZ", Name: "ada"}, player, &connState{})

	events := drain(player)
	require.Len(t, events, 1)
	assert.Equal(t, game.EventErrorMsg, events[0].Type)
	assert.Equal(t, "Game not found", events[0].Message)
}

func TestUnknownAction(t *testing.T) {
	gs := newTestServer(t)
	cl := newTestClient()

	gs.handleRoomMessage(RoomMessage{Type: "self-destruct"}, cl, &connState{})

	events := drain(cl)
	require.Len(t, events, 1)
	assert.Equal(t, game.EventErrorMsg, events[0].Type)
	assert.Equal(t, "Unknown action type: self-destruct", events[0].Message)
}

func TestFullRoundOverGateway(t *testing.T) {
	gs := newTestServer(t)
	host := newTestClient()
	hostState := &connState{}
	gs.handleRoomMessage(RoomMessage{Type: "host-create"}, host, hostState)
	code := hostState.hosted
	drain(host)

	player := newTestClient()
	playerState := &connState{}
	gs.handleRoomMessage(RoomMessage{Type: "player-join", Code: code, Name: "ada"}, player, playerState)
	assert.Equal(t, code, playerState.joined)

	// Both connections see the player count change.
	for _, cl := range []*client{host, player} {
		events := drain(cl)
		require.NotEmpty(t, events)
		assert.Equal(t, game.EventPlayerCount, events[0].Type)
		require.NotNil(t, events[0].Count)
		assert.Equal(t, 1, *events[0].Count)
	}

	gs.handleRoomMessage(RoomMessage{Type: "start-game", Code: code, Duration: 60}, host, hostState)
	events := drain(player)
	require.NotEmpty(t, events)
	assert.Equal(t, game.EventGameStarted, events[0].Type)
	assert.Len(t, events[0].Letters, 9)
	drain(host)

	gs.handleRoomMessage(RoomMessage{Type: "submit-word", Code: code, Word: "cat"}, player, playerState)
	events = drain(player)
	require.Len(t, events, 3)
	assert.Equal(t, game.EventWordResult, events[0].Type)
	require.NotNil(t, events[0].Valid)
	assert.True(t, *events[0].Valid)
	assert.Equal(t, 9, events[0].Points)
	assert.Equal(t, game.EventPlayerWords, events[1].Type)
	assert.Equal(t, game.EventClassScore, events[2].Type)

	// Private events never reach the host; the class score does.
	hostEvents := drain(host)
	require.Len(t, hostEvents, 1)
	assert.Equal(t, game.EventClassScore, hostEvents[0].Type)
}

func TestStartGameUnknownRoomIsSilent(t *testing.T) {
	gs := newTestServer(t)
	cl := newTestClient()

	gs.handleRoomMessage(RoomMessage{Type: "start-game", Code: "ZZZZZ", Duration: 60}, cl, &connState{})
	gs.handleRoomMessage(RoomMessage{Type: "submit-word", Code: "ZZZZZ", Word: "cat"}, cl, &connState{})
	gs.handleRoomMessage(RoomMessage{Type: "host-restart", Code: "ZZZZZ"}, cl, &connState{})

	assert.Empty(t, drain(cl))
}

func TestHostDisconnectEndsRound(t *testing.T) {
	gs := newTestServer(t)
	host := newTestClient()
	hostState := &connState{}
	gs.handleRoomMessage(RoomMessage{Type: "host-create"}, host, hostState)
	code := hostState.hosted

	room, ok := gs.Rooms.GetRoom(code)
	require.True(t, ok)
	room.StartRound(gs.Dict, time.Minute)
	require.False(t, room.Ended())

	gs.handleDisconnect(host, hostState)

	assert.True(t, room.Ended())
	// The room itself lingers until retention elapses, so late summary
	// reads still work.
	_, ok = gs.Rooms.GetRoom(code)
	assert.True(t, ok)
}

func TestPlayerDisconnectLeavesRoom(t *testing.T) {
	gs := newTestServer(t)
	host := newTestClient()
	hostState := &connState{}
	gs.handleRoomMessage(RoomMessage{Type: "host-create"}, host, hostState)
	code := hostState.hosted

	player := newTestClient()
	playerState := &connState{}
	gs.handleRoomMessage(RoomMessage{Type: "player-join", Code: code, Name: "ada"}, player, playerState)

	room, ok := gs.Rooms.GetRoom(code)
	require.True(t, ok)
	require.Equal(t, 1, room.PlayerCount())
	drain(host)

	gs.handleDisconnect(player, playerState)

	assert.Equal(t, 0, room.PlayerCount())
	events := drain(host)
	require.NotEmpty(t, events)
	assert.Equal(t, game.EventPlayerCount, events[0].Type)
	require.NotNil(t, events[0].Count)
	assert.Equal(t, 0, *events[0].Count)
}

func TestReconnectReplacesBroadcastGroupEntry(t *testing.T) {
	gs := newTestServer(t)
	host := newTestClient()
	hostState := &connState{}
	gs.handleRoomMessage(RoomMessage{Type: "host-create"}, host, hostState)
	code := hostState.hosted

	id := uuid.New()
	first := &client{id: id, out: make(chan game.RoomEvent, 16)}
	second := &client{id: id, out: make(chan game.RoomEvent, 16)}
	gs.Attach(code, first)
	gs.Attach(code, second)

	// Tearing down the stale connection must not evict the replacement.
	gs.Detach(code, first)

	room, ok := gs.Rooms.GetRoom(code)
	require.True(t, ok)
	room.AddPlayer(id, "ada")
	room.StartRound(gs.Dict, time.Minute)
	room.SubmitWord(gs.Dict, id, "cat")

	assert.Empty(t, drain(first))
	events := drain(second)
	assert.NotEmpty(t, events, "replacement connection should still receive events")
}
