// cmd/wordle/stats.go
//
// `wordle stats`: print local statistics, or the word service's with --remote.
package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/haydenChuu/wordle-clone/internal/db"
	"github.com/haydenChuu/wordle-clone/internal/game"
	"github.com/haydenChuu/wordle-clone/internal/remote"
	"github.com/haydenChuu/wordle-clone/internal/stats"
)

func newStatsCmd(a *app) *cobra.Command {
	var useRemote bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show your statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conn, err := db.OpenMigrated(ctx, a.dbPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			local, err := stats.NewSQLStore(conn, a.cfg.MaxAttempts).Load(ctx, localPlayer)
			if err != nil {
				return err
			}
			if !useRemote || a.remoteURL == "" {
				renderStats(a.out, local)
				return nil
			}

			rc := remote.New(a.remoteURL, a.remoteTimeout, remote.WithLogger(a.log))
			tr := stats.NewTracker(rc.StatsStore(a.cfg.MaxAttempts), localPlayer, local, a.log)
			s, err := tr.Load(ctx)
			if err != nil {
				a.printf("%s\n", color.YellowString(game.Reason(err)))
			}
			renderStats(a.out, s)
			return nil
		},
	}
	cmd.Flags().BoolVar(&useRemote, "remote", false, "read statistics from the word service, falling back to local ones")
	return cmd
}
