// internal/game/events.go
package game

// RoomEventType is an enum-like type for events relayed to clients.
type RoomEventType string

const (
	EventGameCreated RoomEventType = "game-created" // reply to host-create, carries the room code
	EventPlayerCount RoomEventType = "player-count" // number of currently joined players
	EventGameStarted RoomEventType = "game-started" // letters + endTime at round start (also late-join sync)
	EventGameRestart RoomEventType = "game-restart" // letters + endTime after a host restart
	EventClassScore  RoomEventType = "class-score"  // aggregate room score
	EventWordResult  RoomEventType = "word-result"  // submission outcome, sent to the submitter only
	EventPlayerWords RoomEventType = "player-words" // the submitter's accepted words, submission order
	EventGameEnded   RoomEventType = "game-ended"   // end-of-round summary
	EventLockInput   RoomEventType = "lock-input"   // tells clients to stop accepting input
	EventErrorMsg    RoomEventType = "error-msg"    // user-facing error string
)

// RoomEvent is the single wire format for every server-to-client message.
// Fields are omitted when not relevant to the event type; pointer fields
// distinguish "absent" from a meaningful zero (a class score of 0 must still
// be sent).
type RoomEvent struct {
	Type RoomEventType `json:"type"`

	Code    string   `json:"code,omitempty"`
	Count   *int     `json:"count,omitempty"`
	Letters []string `json:"letters,omitempty"`
	EndTime int64    `json:"endTime,omitempty"` // unix milliseconds
	Score   *int     `json:"score,omitempty"`

	Valid  *bool  `json:"valid,omitempty"`
	Reason string `json:"reason,omitempty"`
	Points int    `json:"points,omitempty"`
	Total  *int   `json:"total,omitempty"`

	Words      []string `json:"words,omitempty"`
	AllWords   []string `json:"allWords,omitempty"`
	Solution   string   `json:"solution,omitempty"`
	ClassScore *int     `json:"classScore,omitempty"`

	Message string `json:"message,omitempty"`
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
