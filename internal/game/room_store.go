// internal/game/room_store.go
package game

import (
	"sync"

	"github.com/google/uuid"
)

// RoomStore manages the live rooms in memory only, keyed by their short
// join code. It is constructed once at process start and handed to the
// gateway; there is no package-level registry.
type RoomStore struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRoomStore returns an in-memory store for Rooms.
func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string]*Room),
	}
}

// CreateRoom generates a code not currently in use, initializes an empty
// unstarted room owned by hostID, and registers it. Code generation retries
// until the candidate is free; with 24^5 combinations collisions are rare.
func (s *RoomStore) CreateRoom(hostID uuid.UUID) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := newCode()
	for _, taken := s.rooms[code]; taken; _, taken = s.rooms[code] {
		code = newCode()
	}

	room := NewRoom(code, hostID)
	s.rooms[code] = room
	return room
}

// GetRoom retrieves a room if it exists.
func (s *RoomStore) GetRoom(code string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[code]
	return r, ok
}

// DeleteRoom removes the room entirely; its code becomes reclaimable.
func (s *RoomStore) DeleteRoom(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

// Codes returns the codes of all live rooms, typically for debugging.
func (s *RoomStore) Codes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	codes := make([]string, 0, len(s.rooms))
	for code := range s.rooms {
		codes = append(codes, code)
	}
	return codes
}

// Len returns the number of live rooms.
func (s *RoomStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}
