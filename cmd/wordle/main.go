// cmd/wordle/main.go
//
// Entry point for the wordle terminal client.
//
//	wordle play [--daily] [--remote] [--secret WORD]
//	wordle stats [--remote]
//	wordle check GUESS SECRET
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/haydenChuu/wordle-clone/internal/config"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

// app holds state shared by subcommands.
type app struct {
	in     io.Reader
	out    io.Writer
	cfg    config.Config
	log    zerolog.Logger
	dbPath string

	verbose       bool
	noColor       bool
	remoteURL     string
	remoteTimeout time.Duration
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	rootCmd := &cobra.Command{
		Use:           "wordle",
		Short:         "Guess the five-letter word in six tries",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			if a.remoteURL == "" {
				a.remoteURL = cfg.RemoteURL
			}
			if !cmd.Flags().Changed("remote-timeout") {
				a.remoteTimeout = cfg.RemoteTimeout
			}

			lvl := zerolog.Disabled
			if a.verbose {
				lvl = zerolog.DebugLevel
			}
			a.log = zerolog.New(zerolog.ConsoleWriter{Out: errOut, TimeFormat: time.Kitchen}).
				Level(lvl).With().Timestamp().Logger()

			if a.noColor {
				color.NoColor = true
			}
			return nil
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.dbPath, "db", defaultDBPath(), "local statistics database")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	pf.BoolVar(&a.noColor, "no-color", false, "disable coloured tiles")
	pf.StringVar(&a.remoteURL, "remote-url", "", "word service base URL (default $REMOTE_URL)")
	pf.DurationVar(&a.remoteTimeout, "remote-timeout", 5*time.Second, "word service request timeout")

	rootCmd.AddCommand(
		newPlayCmd(a),
		newStatsCmd(a),
		newCheckCmd(a),
	)
	return rootCmd
}

// defaultDBPath returns ~/.wordle/stats.db, or a relative path without a home dir.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".wordle", "stats.db")
	}
	return filepath.Join(home, ".wordle", "stats.db")
}

// printf writes to the command output, ignoring write errors.
func (a *app) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}
