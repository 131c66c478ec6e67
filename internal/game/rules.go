// internal/game/rules.go
package game

import (
	"sort"
	"strings"

	"github.com/jmallory/wordwheel/internal/words"
)

// Rejection reasons surfaced to the submitting player. The check order in
// Validate decides which reason wins when several apply.
const (
	ReasonTooShort        = "too-short"
	ReasonDuplicate       = "duplicate"
	ReasonNotInDictionary = "not-in-dictionary"
	ReasonInvalidLetters  = "invalid-letters"
)

// MinWordLength is the shortest word worth any points.
const MinWordLength = 3

// Lookup is the dictionary capability the validator needs. *words.Dictionary
// satisfies it; tests pass a map-backed fake.
type Lookup interface {
	Contains(word string) bool
}

// WordResult is the tagged outcome of a word submission. Rejections are
// ordinary values, never errors; the caller decides whether to notify anyone.
type WordResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Validate decides whether word is acceptable given the room's letter pool
// and the player's prior submissions this round. Checks run in a fixed
// order; the first failure wins, which matters for user-facing messaging.
// Pure: no side effects on any input.
func Validate(word string, letters []string, history []string, dict Lookup) WordResult {
	w := words.Normalize(word)

	if len(w) < MinWordLength {
		return WordResult{Valid: false, Reason: ReasonTooShort}
	}
	for _, prior := range history {
		if prior == w {
			return WordResult{Valid: false, Reason: ReasonDuplicate}
		}
	}
	if !dict.Contains(w) {
		return WordResult{Valid: false, Reason: ReasonNotInDictionary}
	}
	if !canBuild(w, letters) {
		return WordResult{Valid: false, Reason: ReasonInvalidLetters}
	}
	return WordResult{Valid: true}
}

// canBuild reports whether word can be assembled from the letter pool,
// consuming each pool letter at most once per occurrence. Multiset
// containment, not character-set containment: "bee" needs two e's.
func canBuild(word string, letters []string) bool {
	pool := make(map[string]int, len(letters))
	for _, l := range letters {
		pool[strings.ToLower(l)]++
	}
	for _, r := range word {
		c := string(r)
		if pool[c] == 0 {
			return false
		}
		pool[c]--
	}
	return true
}

// PossibleWords returns every word in list of length >= MinWordLength that
// can be built from the letter pool, sorted longest first and
// alphabetically within a length. This is the end-of-round "what you
// missed" set.
func PossibleWords(list []string, letters []string) []string {
	var out []string
	for _, w := range list {
		if len(w) >= MinWordLength && canBuild(w, letters) {
			out = append(out, w)
		}
	}
	sortWords(out)
	return out
}

// sortWords orders by descending length, then ascending alphabetical.
func sortWords(ws []string) {
	sort.Slice(ws, func(i, j int) bool {
		if len(ws[i]) != len(ws[j]) {
			return len(ws[i]) > len(ws[j])
		}
		return ws[i] < ws[j]
	})
}
