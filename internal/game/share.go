// internal/game/share.go
//
// Emoji share text for a finished game (the familiar coloured grid).
package game

import (
	"fmt"
	"strings"
)

// ShareText renders a spoiler-free summary of a finished game:
//
//	Wordle Clone 3/6
//
//	⬛🟨⬛⬛🟩
//	...
//
// The score is X when the game was lost. In-progress games share their rows so far.
func ShareText(snap Snapshot) string {
	score := fmt.Sprint(snap.Attempts)
	if snap.Status != StatusWon {
		score = "X"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Wordle Clone %s/%d\n", score, snap.MaxAttempts)
	if len(snap.History) > 0 {
		b.WriteString("\n")
	}
	for i, rec := range snap.History {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, m := range rec.Marks {
			switch m {
			case MarkCorrect:
				b.WriteString("🟩")
			case MarkPresent:
				b.WriteString("🟨")
			default:
				b.WriteString("⬛")
			}
		}
	}
	return b.String()
}
