// cmd/wordle/render.go
//
// Terminal rendering for the board, keyboard hints and statistics.
package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/haydenChuu/wordle-clone/internal/game"
	"github.com/haydenChuu/wordle-clone/internal/stats"
)

var (
	correctTile = color.New(color.BgGreen, color.FgBlack, color.Bold)
	presentTile = color.New(color.BgYellow, color.FgBlack, color.Bold)
	absentTile  = color.New(color.BgHiBlack, color.FgWhite)
	plainTile   = color.New(color.Bold)
)

// tile draws one letter. Brackets keep marks readable without colour:
// [A] correct, (A) present, " A " absent.
func tile(r rune, m game.Mark) string {
	switch m {
	case game.MarkCorrect:
		return correctTile.Sprintf("[%c]", r)
	case game.MarkPresent:
		return presentTile.Sprintf("(%c)", r)
	case game.MarkAbsent:
		return absentTile.Sprintf(" %c ", r)
	}
	return plainTile.Sprintf(" %c ", r)
}

// row draws a scored guess.
func row(rec game.GuessRecord) string {
	var sb strings.Builder
	for i, r := range []rune(rec.Guess) {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(tile(r, rec.Marks[i]))
	}
	return sb.String()
}

// renderBoard prints history, the typed row and the empty rows left.
func renderBoard(w io.Writer, snap game.Snapshot) {
	for _, rec := range snap.History {
		fmt.Fprintln(w, "  "+row(rec))
	}
	if snap.Status.Terminal() {
		return
	}
	blank := strings.TrimSpace(strings.Repeat(" _  ", snap.WordLength))
	for i := len(snap.History); i < snap.MaxAttempts; i++ {
		if i == len(snap.History) && snap.Current != "" {
			typed := []rune(snap.Current)
			cells := make([]string, snap.WordLength)
			for j := range cells {
				cells[j] = " _ "
				if j < len(typed) {
					cells[j] = tile(typed[j], "")
				}
			}
			fmt.Fprintln(w, "  "+strings.Join(cells, " "))
			continue
		}
		fmt.Fprintln(w, "   "+blank)
	}
}

var keyboardRows = []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

// renderKeyboard prints the QWERTY layout with hint colours, then any hinted
// letters outside it.
func renderKeyboard(w io.Writer, h game.Hints) {
	seen := map[rune]bool{}
	for i, keys := range keyboardRows {
		cells := make([]string, 0, len(keys))
		for _, k := range keys {
			seen[k] = true
			if m, ok := h[k]; ok {
				cells = append(cells, tile(k, m))
				continue
			}
			cells = append(cells, fmt.Sprintf(" %c ", k))
		}
		fmt.Fprintln(w, strings.Repeat(" ", 2+i*2)+strings.Join(cells, ""))
	}
	var extra []string
	for _, r := range h.Letters() {
		if !seen[r] {
			extra = append(extra, tile(r, h[r]))
		}
	}
	if len(extra) > 0 {
		fmt.Fprintln(w, "  "+strings.Join(extra, ""))
	}
}

// renderStats prints the summary and a bar chart of the distribution.
func renderStats(w io.Writer, s stats.Stats) {
	sum := s.Summarize()
	fmt.Fprintf(w, "Played: %d  Win %%: %d  Current streak: %d  Max streak: %d\n",
		sum.GamesPlayed, sum.WinRate, sum.CurrentStreak, sum.MaxStreak)
	if sum.GamesWon > 0 {
		fmt.Fprintf(w, "Average guesses per win: %.2f\n", sum.AverageGuessesPerWin)
	}

	buckets := make([]int, 0, len(s.Distribution))
	most := 0
	for n, c := range s.Distribution {
		buckets = append(buckets, n)
		most = max(most, c)
	}
	sort.Ints(buckets)
	fmt.Fprintln(w, "Guess distribution:")
	for _, n := range buckets {
		c := s.Distribution[n]
		bar := 1
		if most > 0 {
			bar += c * 20 / most
		}
		fmt.Fprintf(w, "  %d %s %d\n", n, strings.Repeat("█", bar), c)
	}
}
