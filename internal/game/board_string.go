package game

import (
	"strings"

	. "github.com/cricklet/checkersgo/internal/helpers"
)

// BoardString renders the board one row per line, '.' for empty squares.
func BoardString(b Board) string {
	return b.String()
}

// BoardFromString parses 8 lines of 8 characters from ".rRbB". Trailing
// whitespace on a line and trailing blank lines are ignored.
func BoardFromString(s string) (Board, Error) {
	rows := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}

	if len(rows) != BoardSize {
		return Board{}, Errorf("expected %v rows, got %v: %w", BoardSize, len(rows), ErrInvalidBoard)
	}

	var board Board
	for y, row := range rows {
		row = strings.TrimRight(row, " \t")
		if len(row) != BoardSize {
			return Board{}, Errorf("row %v %q has %v squares: %w", y, row, len(row), ErrInvalidBoard)
		}
		for x, c := range row {
			piece, err := PieceFromRune(c)
			if !IsNil(err) {
				return Board{}, Errorf("row %v column %v: %w", y, x, err)
			}
			board.Set(x, y, piece)
		}
	}

	return board, NilError
}

func BoardFromRows(rows ...string) (Board, Error) {
	return BoardFromString(strings.Join(rows, "\n"))
}
