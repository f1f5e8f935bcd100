// cmd/wordle/check.go
//
// `wordle check GUESS SECRET`: score one guess and print the marks.
package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/haydenChuu/wordle-clone/internal/game"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "check GUESS SECRET",
		Short:   "Score one guess against a secret",
		Example: "  wordle check trace crane",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			marks, err := game.Evaluate(args[0], args[1])
			if err != nil {
				return err
			}
			rec := game.GuessRecord{Guess: strings.ToUpper(args[0]), Marks: marks}
			names := make([]string, len(marks))
			for i, m := range marks {
				names[i] = string(m)
			}
			a.printf("%s\n%s\n", row(rec), strings.Join(names, " "))
			return nil
		},
	}
}
