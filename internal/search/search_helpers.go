package search

import (
	"fmt"
)

var Inf int = 999999

// WinInNScore scores a position the side to move wins after n plies.
// Negative n means the side to move loses after -n plies.
func WinInNScore(n int) int {
	if n < 0 {
		return -Inf - n
	}
	return Inf - n
}

func IsWin(score int) bool {
	return score > Inf-1000 || score < -Inf+1000
}

// scoreToTable and scoreFromTable shift win scores so cached entries are
// relative to the node they were stored at, not the root.
func scoreToTable(score int, ply int) int {
	if !IsWin(score) {
		return score
	}
	if score > 0 {
		return score + ply
	}
	return score - ply
}

func scoreFromTable(score int, ply int) int {
	if !IsWin(score) {
		return score
	}
	if score > 0 {
		return score - ply
	}
	return score + ply
}

func ScoreString(score int) string {
	if score > Inf-1000 {
		return fmt.Sprint("win+", Inf-score)
	}
	if score < -Inf+1000 {
		return fmt.Sprint("loss-", Inf+score)
	}
	return fmt.Sprint(score)
}
