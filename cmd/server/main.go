// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/jmallory/wordwheel/internal/auth"
	"github.com/jmallory/wordwheel/internal/game"
	"github.com/jmallory/wordwheel/internal/handlers"
	"github.com/jmallory/wordwheel/internal/middleware"
	"github.com/jmallory/wordwheel/internal/words"
)

func main() {
	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(lvl)
	}

	if err := auth.Init(); err != nil {
		logger.Fatalf("auth init failed: %v", err)
	}

	dictPath := getEnv("DICT_FILE", "data/master-dictionary.txt")
	solutionsPath := getEnv("SOLUTIONS_FILE", "data/nine-letter-words.txt")
	dict, err := words.Load(dictPath, solutionsPath)
	if err != nil {
		// No degraded mode: the process cannot serve without its lists.
		logger.Fatalf("failed to load word lists: %v", err)
	}
	logger.Infof("loaded %d dictionary words, %d solution candidates", dict.Len(), len(dict.Solutions()))

	rooms := game.NewRoomStore()
	gs := handlers.NewGameServer(rooms, dict, logger)

	r := chi.NewRouter()
	r.Use(middleware.LogMiddleware(logger))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/ws", handlers.WSHandler(logger, gs))

	addr := ":" + getEnv("PORT", "8080")
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
