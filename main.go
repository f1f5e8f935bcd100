// main.go
//
// Entry point for the Wordle HTTP server.
//   - Loads configuration (.env + environment) and sets the global log level.
//   - Opens and migrates the SQLite database.
//   - Loads word lists (embedded defaults or WORDS_*_FILE overrides).
//   - Optionally connects to a remote word service (REMOTE_URL).
//   - Serves until SIGINT/SIGTERM, sweeping idle games in the background.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/haydenChuu/wordle-clone/internal/config"
	"github.com/haydenChuu/wordle-clone/internal/db"
	"github.com/haydenChuu/wordle-clone/internal/httpserver"
	"github.com/haydenChuu/wordle-clone/internal/remote"
	"github.com/haydenChuu/wordle-clone/internal/store"
	"github.com/haydenChuu/wordle-clone/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.OpenMigrated(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer conn.Close()

	list, err := words.Load(words.Files{Answers: cfg.WordsAnswersFile, Allowed: cfg.WordsAllowedFile})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	answers, allowed := list.Stats()
	log.Info().Int("answers", answers).Int("allowed", allowed).Msg("word lists loaded")

	var rc *remote.Client
	if cfg.RemoteURL != "" {
		rc = remote.New(cfg.RemoteURL, cfg.RemoteTimeout, remote.WithLogger(log.Logger))
		log.Info().Str("url", cfg.RemoteURL).Msg("using remote word service")
	}

	mem := store.NewMemoryStore()
	go sweep(ctx, mem, cfg.SessionIdle)

	srv := httpserver.New(cfg, httpserver.Deps{
		Store:  mem,
		DB:     conn,
		Words:  list,
		Remote: rc,
		Logger: log.Logger,
	})
	log.Info().Str("port", cfg.Port).Msg("starting go-server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// sweep drops idle games until ctx is done.
func sweep(ctx context.Context, mem *store.Memory, maxIdle time.Duration) {
	t := time.NewTicker(maxIdle / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := mem.Sweep(maxIdle); n > 0 {
				log.Debug().Int("games", n).Msg("swept idle games")
			}
		}
	}
}
