package rules

import (
	. "github.com/cricklet/checkersgo/internal/helpers"
)

func MaterialCount(board Board) (int, int) {
	red, black := 0, 0
	for _, piece := range board {
		if piece.BelongsTo(Red) {
			red += piece.Value()
		} else if piece.BelongsTo(Black) {
			black += piece.Value()
		}
	}
	return red, black
}

// IsTerminal only checks whether a side has run out of pieces. A side that
// still has pieces but no successors is detected by the caller.
func IsTerminal(board Board) bool {
	red, black := MaterialCount(board)
	return red == 0 || black == 0
}

// Evaluate scores the board from red's perspective.
func Evaluate(board Board) int {
	red, black := MaterialCount(board)
	return red - black
}
