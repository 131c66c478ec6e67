// cmd/audit/main.go
//
// Maintenance tool: reconciles the nine-letter solutions list against the
// master dictionary, appending any solution candidates the dictionary is
// missing so that every selectable solution is guaranteed to validate.
// Append-only; existing dictionary lines are never touched. Not part of the
// serving path.
package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/jmallory/wordwheel/internal/words"
)

func main() {
	logger := logrus.New()

	dictPath := getEnv("DICT_FILE", "data/master-dictionary.txt")
	solutionsPath := getEnv("SOLUTIONS_FILE", "data/nine-letter-words.txt")

	dict, err := words.Load(dictPath, solutionsPath)
	if err != nil {
		logger.Fatalf("failed to load word lists: %v", err)
	}

	added, err := dict.Reconcile(dictPath)
	if err != nil {
		logger.Fatalf("failed to reconcile: %v", err)
	}
	if len(added) == 0 {
		logger.Info("all nine-letter words are already in the master dictionary")
		return
	}
	logger.Infof("appended %d missing word(s) to %s", len(added), dictPath)
	for _, w := range added {
		logger.Infof("  added %s", w)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
