// internal/words/audit.go
package words

import (
	"fmt"
	"os"
	"strings"
)

// MissingSolutions returns every nine-letter solution candidate that is
// absent from the master dictionary, in solutions-list order.
func (d *Dictionary) MissingSolutions() []string {
	var missing []string
	for _, s := range d.solutions {
		if _, ok := d.set[s]; !ok {
			missing = append(missing, s)
		}
	}
	return missing
}

// Reconcile appends every missing solution candidate to the master
// dictionary file so that each selectable solution is itself a valid word.
// The file is opened append-only: existing lines are never rewritten,
// truncated, or reordered. A leading newline guards against gluing the first
// appended word onto an unterminated final line. Returns the words added.
func (d *Dictionary) Reconcile(dictPath string) ([]string, error) {
	missing := d.MissingSolutions()
	if len(missing) == 0 {
		return nil, nil
	}

	f, err := os.OpenFile(dictPath, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open master dictionary for append: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("\n" + strings.Join(missing, "\n")); err != nil {
		return nil, fmt.Errorf("append missing words: %w", err)
	}

	for _, w := range missing {
		d.set[w] = struct{}{}
		d.ordered = append(d.ordered, w)
	}
	return missing, nil
}
