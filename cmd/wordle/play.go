// cmd/wordle/play.go
//
// `wordle play`: the interactive game loop.
// Responsibilities:
//   - Wire a play.Game for random, daily, fixed-secret or remote play.
//   - Read guesses line by line and render the board after each one.
//   - Record finished games in the local statistics database.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/haydenChuu/wordle-clone/internal/daily"
	"github.com/haydenChuu/wordle-clone/internal/db"
	"github.com/haydenChuu/wordle-clone/internal/game"
	"github.com/haydenChuu/wordle-clone/internal/play"
	"github.com/haydenChuu/wordle-clone/internal/remote"
	"github.com/haydenChuu/wordle-clone/internal/stats"
	"github.com/haydenChuu/wordle-clone/internal/words"
)

// localPlayer keys the CLI's statistics in the local database.
const localPlayer = "local"

func newPlayCmd(a *app) *cobra.Command {
	var (
		dailyMode bool
		useRemote bool
		secret    string
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play interactively; type a guess and press enter",
		Long: `Play a game in the terminal.

Each line is a guess. Commands:
  :new   start another game
  :q     quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conn, err := db.OpenMigrated(ctx, a.dbPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			g, err := a.newGame(ctx, conn, dailyMode, useRemote, secret)
			if err != nil {
				return err
			}
			return a.loop(ctx, g)
		},
	}
	cmd.Flags().BoolVar(&dailyMode, "daily", false, "play today's daily word")
	cmd.Flags().BoolVar(&useRemote, "remote", false, "take the secret from the word service, mirroring guesses")
	cmd.Flags().StringVar(&secret, "secret", "", "play against a fixed word")
	cmd.MarkFlagsMutuallyExclusive("daily", "remote", "secret")
	return cmd
}

// newGame wires a play.Game for the chosen mode.
func (a *app) newGame(ctx context.Context, conn *sql.DB, dailyMode, useRemote bool, secret string) (*play.Game, error) {
	list, err := words.Load(words.Files{Answers: a.cfg.WordsAnswersFile, Allowed: a.cfg.WordsAllowedFile})
	if err != nil {
		return nil, err
	}

	store := stats.NewSQLStore(conn, a.cfg.MaxAttempts)
	local, err := store.Load(ctx, localPlayer)
	if err != nil {
		return nil, err
	}

	cfg := play.Config{
		Fallback:    list,
		Dictionary:  list,
		Recorder:    stats.NewTracker(store, localPlayer, local, a.log),
		MaxAttempts: a.cfg.MaxAttempts,
		Logger:      a.log,
	}
	switch {
	case secret != "":
		if _, err := game.NewSecret(secret); err != nil {
			return nil, fmt.Errorf("--secret: %s", game.Reason(err))
		}
		cfg.Fallback = game.SecretSourceFunc(func(context.Context) (game.Assignment, error) {
			return game.Assignment{Word: secret}, nil
		})
		// custom secrets may fall outside the word lists
		cfg.Dictionary = nil
	case dailyMode:
		cfg.Fallback = daily.NewSource(list.Answers(), a.cfg.DailySalt)
	case useRemote:
		if a.remoteURL == "" {
			return nil, fmt.Errorf("--remote needs --remote-url or REMOTE_URL")
		}
		rc := remote.New(a.remoteURL, a.remoteTimeout, remote.WithLogger(a.log))
		cfg.Source = rc
		cfg.Mirror = rc
		cfg.WordCheck = rc
	}
	return play.New(cfg), nil
}

// loop reads guesses line by line until EOF or :q.
func (a *app) loop(ctx context.Context, g *play.Game) error {
	start := func() error {
		turn, err := g.Start(ctx)
		if err != nil {
			return err
		}
		a.notices(turn.Notices)
		a.printf("Guess the %d-letter word. You have %d tries.\n", turn.Snapshot.WordLength, turn.Snapshot.MaxAttempts)
		renderBoard(a.out, turn.Snapshot)
		return nil
	}
	if err := start(); err != nil {
		return err
	}

	sc := bufio.NewScanner(a.in)
	for {
		a.printf("> ")
		if !sc.Scan() {
			a.printf("\n")
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case ":q", ":quit":
			return nil
		case ":new":
			if err := start(); err != nil {
				return err
			}
			continue
		}

		turn, err := g.SubmitWord(ctx, line)
		if err != nil {
			a.printf("%s\n", color.RedString(game.Reason(err)))
			continue
		}
		a.notices(turn.Notices)
		renderBoard(a.out, turn.Snapshot)
		if !turn.Snapshot.Status.Terminal() {
			renderKeyboard(a.out, turn.Snapshot.Hints)
			continue
		}

		if turn.Snapshot.Status == game.StatusWon {
			a.printf("%s\n", color.GreenString("Solved in %d/%d!", turn.Snapshot.Attempts, turn.Snapshot.MaxAttempts))
		} else {
			a.printf("%s\n", color.RedString("Out of tries. The word was %s.", turn.Snapshot.Secret))
		}
		a.printf("\n%s\n\n", game.ShareText(turn.Snapshot))
		if turn.Stats != nil {
			renderStats(a.out, *turn.Stats)
		}
		a.printf("Type :new for another game or :q to quit.\n")
	}
}

func (a *app) notices(ns []error) {
	for _, n := range ns {
		a.printf("%s\n", color.YellowString(game.Reason(n)))
	}
}
