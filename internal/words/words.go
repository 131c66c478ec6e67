// internal/words/words.go
package words

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"
)

// SolutionLength is the fixed length of every round solution. The letter grid
// shown to players is always a permutation of a word of this length.
const SolutionLength = 9

// Dictionary holds the master word set plus the curated list of nine-letter
// solution candidates. It is loaded once at startup and never mutated on the
// serving path, so lookups need no locking.
type Dictionary struct {
	set       map[string]struct{}
	ordered   []string // load order, used for possible-word enumeration
	solutions []string

	rng *rand.Rand
}

// New builds a Dictionary from in-memory word lists. Both lists are
// normalized (trimmed, lower-cased) and deduplicated; solution candidates
// that are not exactly nine letters are discarded. Intended for tests and
// for callers that already hold the lists.
func New(wordList, solutionList []string) *Dictionary {
	d := &Dictionary{
		set: make(map[string]struct{}, len(wordList)),
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, w := range wordList {
		w = Normalize(w)
		if w == "" {
			continue
		}
		if _, dup := d.set[w]; dup {
			continue
		}
		d.set[w] = struct{}{}
		d.ordered = append(d.ordered, w)
	}
	for _, s := range solutionList {
		s = Normalize(s)
		if len(s) != SolutionLength {
			continue
		}
		d.solutions = append(d.solutions, s)
	}
	return d
}

// Load reads the master dictionary and the nine-letter solution list from
// newline-delimited files. An unreadable file or an empty solutions list is
// an error; the process cannot serve without its word lists.
func Load(dictPath, solutionsPath string) (*Dictionary, error) {
	wordList, err := ReadWordFile(dictPath)
	if err != nil {
		return nil, fmt.Errorf("load master dictionary: %w", err)
	}
	solutionList, err := ReadWordFile(solutionsPath)
	if err != nil {
		return nil, fmt.Errorf("load solutions list: %w", err)
	}

	d := New(wordList, solutionList)
	if len(d.ordered) == 0 {
		return nil, fmt.Errorf("master dictionary %s is empty", dictPath)
	}
	if len(d.solutions) == 0 {
		return nil, fmt.Errorf("solutions list %s has no nine-letter words", solutionsPath)
	}
	return d, nil
}

// Normalize trims surrounding whitespace and lower-cases a word. Every word
// entering the dictionary or the validator passes through here first.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// ReadWordFile loads one word per line, skipping blank lines.
func ReadWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := Normalize(sc.Text())
		if w == "" {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// Contains reports whether word is in the master dictionary.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.set[Normalize(word)]
	return ok
}

// RandomSolution returns a uniformly random nine-letter solution candidate.
func (d *Dictionary) RandomSolution() string {
	return d.solutions[d.rng.Intn(len(d.solutions))]
}

// All returns every dictionary word in load order. Callers must not mutate
// the returned slice.
func (d *Dictionary) All() []string {
	return d.ordered
}

// Solutions returns the curated nine-letter candidate list.
func (d *Dictionary) Solutions() []string {
	return d.solutions
}

// Len returns the number of distinct dictionary words.
func (d *Dictionary) Len() int {
	return len(d.set)
}
