// internal/game/room.go
package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmallory/wordwheel/internal/words"
)

// DefaultRetention is how long an ended room stays resident before the
// registry reclaims it.
const DefaultRetention = 10 * time.Minute

// Player is one participant's per-round state within a room.
type Player struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Score int       `json:"score"`

	// Words holds accepted submissions in submission order (most recent
	// last). It drives both per-player duplicate checks and the client's
	// word list display.
	Words []string `json:"words"`
}

// Room holds the entire state of one play session in memory. All mutation
// happens under Mu; the broadcast functions are installed by the gateway
// layer and must not re-acquire the room lock.
type Room struct {
	Code   string
	HostID uuid.UUID

	// Solution is the hidden nine-letter word for the current round;
	// Letters is its shuffled permutation shown to all players.
	Solution string
	Letters  []string

	Players map[uuid.UUID]*Player

	// FoundWords is the distinct set of words credited to anyone this
	// round. It feeds the end-of-round collation only; duplicate
	// enforcement is per-player, so two players may both score a word.
	FoundWords map[string]struct{}

	ClassScore int
	Started    bool
	EndTime    time.Time

	// RetentionDelay overrides DefaultRetention, mainly for tests.
	RetentionDelay time.Duration

	ended          bool
	deadlineTimer  *time.Timer
	retentionTimer *time.Timer

	Mu sync.Mutex

	// BroadcastFn sends an event to every participant (host included).
	// If nil, no broadcast is done.
	BroadcastFn func(ev RoomEvent)

	// BroadcastToPlayerFn sends an event to a single participant.
	BroadcastToPlayerFn func(playerID uuid.UUID, ev RoomEvent)

	// OnExpire is invoked once the post-round retention delay elapses,
	// typically assigned by the owner of the RoomStore:
	//   room.OnExpire = func(code string) { store.DeleteRoom(code) }
	OnExpire func(code string)
}

// NewRoom builds an empty, unstarted room. Rooms are normally created
// through RoomStore.CreateRoom, which guarantees a unique code.
func NewRoom(code string, hostID uuid.UUID) *Room {
	return &Room{
		Code:           code,
		HostID:         hostID,
		Players:        make(map[uuid.UUID]*Player),
		FoundWords:     make(map[string]struct{}),
		RetentionDelay: DefaultRetention,
	}
}

// StartRound picks a fresh solution, derives the shuffled letter set, arms
// the round deadline, and announces the new round to every participant.
// Per-player scores and histories are untouched; that is Restart's job.
func (r *Room) StartRound(dict *words.Dictionary, duration time.Duration) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.startRoundLocked(dict, duration, EventGameStarted)
}

// Restart begins a new round and additionally zeroes every player's score
// and word history, so "play again" is a genuinely clean slate.
func (r *Room) Restart(dict *words.Dictionary, duration time.Duration) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	for _, p := range r.Players {
		p.Score = 0
		p.Words = nil
	}
	r.startRoundLocked(dict, duration, EventGameRestart)
}

// startRoundLocked is the shared start/restart sequence. Assumes lock held.
func (r *Room) startRoundLocked(dict *words.Dictionary, duration time.Duration, ev RoomEventType) {
	r.Solution = dict.RandomSolution()
	r.Letters = shuffleLetters(r.Solution)
	r.Started = true
	r.ended = false
	r.ClassScore = 0
	r.FoundWords = make(map[string]struct{})
	r.EndTime = time.Now().Add(duration)

	// A pending retention timer from a previous round must not reap a room
	// that is live again.
	if r.retentionTimer != nil {
		r.retentionTimer.Stop()
		r.retentionTimer = nil
	}
	r.armDeadlineLocked(dict, duration)

	r.fireEvent(RoomEvent{
		Type:    ev,
		Letters: r.Letters,
		EndTime: r.EndTime.UnixMilli(),
	})
}

// armDeadlineLocked replaces the round deadline timer. The fired callback
// verifies it is still the room's current timer before ending the round, so
// a stale deadline from a superseded round can never fire after a restart
// has armed a new one. Assumes lock held.
func (r *Room) armDeadlineLocked(dict *words.Dictionary, duration time.Duration) {
	if r.deadlineTimer != nil {
		r.deadlineTimer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(duration, func() {
		r.Mu.Lock()
		if r.deadlineTimer != timer {
			r.Mu.Unlock()
			return
		}
		r.Mu.Unlock()
		r.EndRound(dict)
	})
	r.deadlineTimer = timer
}

// AddPlayer registers a player and rebroadcasts the room's player count.
// If a round is already running, the joiner is privately synced with the
// current letters, end time, and class score.
func (r *Room) AddPlayer(playerID uuid.UUID, name string) *Player {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	p := &Player{ID: playerID, Name: name}
	r.Players[playerID] = p
	r.fireEvent(RoomEvent{Type: EventPlayerCount, Count: intPtr(len(r.Players))})

	if r.Started && !r.ended && time.Now().Before(r.EndTime) {
		r.firePlayerEvent(playerID, RoomEvent{
			Type:    EventGameStarted,
			Letters: r.Letters,
			EndTime: r.EndTime.UnixMilli(),
		})
		r.firePlayerEvent(playerID, RoomEvent{Type: EventClassScore, Score: intPtr(r.ClassScore)})
	}
	return p
}

// RemovePlayer drops a departed player and rebroadcasts the count.
func (r *Room) RemovePlayer(playerID uuid.UUID) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if _, ok := r.Players[playerID]; !ok {
		return
	}
	delete(r.Players, playerID)
	r.fireEvent(RoomEvent{Type: EventPlayerCount, Count: intPtr(len(r.Players))})
}

// SubmitWord validates and scores a submission. Submissions to an
// unstarted, ended, or expired round are silently dropped (a stale client
// action, not worth alarming anyone). Rejections go to the submitter only;
// acceptance updates player and class scores and notifies the room.
func (r *Room) SubmitWord(dict *words.Dictionary, playerID uuid.UUID, word string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if !r.Started || r.ended || time.Now().After(r.EndTime) {
		return
	}
	p, ok := r.Players[playerID]
	if !ok {
		return
	}

	res := Validate(word, r.Letters, p.Words, dict)
	if !res.Valid {
		r.firePlayerEvent(playerID, RoomEvent{
			Type:   EventWordResult,
			Valid:  boolPtr(false),
			Reason: res.Reason,
		})
		// Re-send the unchanged history so the client UI can resync.
		r.firePlayerEvent(playerID, RoomEvent{Type: EventPlayerWords, Words: p.Words})
		return
	}

	w := words.Normalize(word)
	points := len(w) * len(w)
	p.Words = append(p.Words, w)
	p.Score += points
	r.ClassScore += points
	r.FoundWords[w] = struct{}{}

	r.firePlayerEvent(playerID, RoomEvent{
		Type:   EventWordResult,
		Valid:  boolPtr(true),
		Points: points,
		Total:  intPtr(p.Score),
	})
	r.firePlayerEvent(playerID, RoomEvent{Type: EventPlayerWords, Words: p.Words})
	r.fireEvent(RoomEvent{Type: EventClassScore, Score: intPtr(r.ClassScore)})
}

// EndRound closes the current round: it collates the distinct words anyone
// found, computes every dictionary word constructible from the letters,
// broadcasts the summary plus an input lock, and arms the retention timer.
// Safe to invoke more than once for the same round; later calls no-op.
// Both the deadline callback and a host disconnect land here.
func (r *Room) EndRound(dict *words.Dictionary) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if !r.Started || r.ended {
		return
	}
	r.ended = true
	if r.deadlineTimer != nil {
		r.deadlineTimer.Stop()
		r.deadlineTimer = nil
	}

	found := make([]string, 0, len(r.FoundWords))
	for w := range r.FoundWords {
		found = append(found, w)
	}
	sortWords(found)

	all := PossibleWords(dict.All(), r.Letters)

	r.fireEvent(RoomEvent{
		Type:       EventGameEnded,
		Words:      found,
		AllWords:   all,
		Solution:   r.Solution,
		ClassScore: intPtr(r.ClassScore),
	})
	r.fireEvent(RoomEvent{Type: EventLockInput})

	r.armRetentionLocked()
}

// armRetentionLocked schedules registry reclamation of this room. A restart
// cancels the pending timer; the callback re-checks it is still current and
// that no new round has begun. Assumes lock held.
func (r *Room) armRetentionLocked() {
	if r.retentionTimer != nil {
		r.retentionTimer.Stop()
	}
	delay := r.RetentionDelay
	if delay <= 0 {
		delay = DefaultRetention
	}
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		r.Mu.Lock()
		if r.retentionTimer != timer || !r.ended {
			r.Mu.Unlock()
			return
		}
		expire := r.OnExpire
		r.Mu.Unlock()
		if expire != nil {
			expire(r.Code)
		}
	})
	r.retentionTimer = timer
}

// Ended reports whether the current round has finished.
func (r *Room) Ended() bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.ended
}

// PlayerCount returns the number of currently joined players.
func (r *Room) PlayerCount() int {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return len(r.Players)
}

// fireEvent broadcasts to the whole room. Assumes lock held; the installed
// broadcast function must not take the room lock.
func (r *Room) fireEvent(ev RoomEvent) {
	if r.BroadcastFn != nil {
		r.BroadcastFn(ev)
	}
}

// firePlayerEvent sends to one participant. Assumes lock held.
func (r *Room) firePlayerEvent(playerID uuid.UUID, ev RoomEvent) {
	if r.BroadcastToPlayerFn != nil {
		r.BroadcastToPlayerFn(playerID, ev)
	}
}
