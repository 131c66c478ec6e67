// internal/game/codes.go
package game

import (
	"math/rand"
	"strings"
)

// codeAlphabet deliberately omits I and O, the two letters most easily
// confused with digits when a code is read off a projector.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"

// CodeLength is the length of every room code.
const CodeLength = 5

// newCode returns a random candidate room code. Uniqueness against live
// rooms is the RoomStore's job; codes are reclaimable after deletion.
func newCode() string {
	var b strings.Builder
	b.Grow(CodeLength)
	for i := 0; i < CodeLength; i++ {
		b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// shuffleLetters splits a solution word into single-letter strings and
// applies an in-place Fisher-Yates shuffle, yielding a uniformly random
// permutation of the solution's characters.
func shuffleLetters(solution string) []string {
	letters := strings.Split(solution, "")
	for i := len(letters) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		letters[i], letters[j] = letters[j], letters[i]
	}
	return letters
}
