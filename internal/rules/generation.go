package rules

import (
	. "github.com/cricklet/checkersgo/internal/helpers"
)

type Direction struct {
	DX int
	DY int
}

var (
	_blackManDirections = []Direction{{1, 1}, {-1, 1}}
	_redManDirections   = []Direction{{1, -1}, {-1, -1}}
	_kingDirections     = []Direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// Directions returns the diagonal steps a piece may take. Men move toward
// the opponent's back rank, kings move both ways. Unknown pieces get nil.
func Directions(piece Piece) []Direction {
	switch piece {
	case BlackMan:
		return _blackManDirections
	case RedMan:
		return _redManDirections
	case RedKing, BlackKing:
		return _kingDirections
	}
	return nil
}

func PromotionRow(player Player) int {
	if player == Black {
		return BoardSize - 1
	}
	return 0
}

func Promote(piece Piece, y int) Piece {
	if piece.IsMan() && y == PromotionRow(piece.Player()) {
		return KingFor(piece.Player())
	}
	return piece
}

func movablePiece(board Board, player Player, x int, y int) (Piece, bool) {
	if !InBounds(x, y) {
		return XX, false
	}
	piece := board.At(x, y)
	if !piece.BelongsTo(player) {
		return XX, false
	}
	return piece, true
}

func SingleStepMoves(board Board, player Player, x int, y int) []Board {
	piece, ok := movablePiece(board, player, x, y)
	if !ok {
		return nil
	}

	var moves []Board
	for _, dir := range Directions(piece) {
		newX, newY := x+dir.DX, y+dir.DY
		if !InBounds(newX, newY) || !board.At(newX, newY).IsEmpty() {
			continue
		}

		newBoard := board
		newBoard.Set(x, y, XX)
		newBoard.Set(newX, newY, Promote(piece, newY))
		moves = append(moves, newBoard)
	}
	return moves
}

type jump struct {
	board    Board
	x        int
	y        int
	captures int
}

// singleJumps lists the boards reachable by one more capture from the
// landing square of `from`.
func singleJumps(from jump, player Player) []jump {
	board, x, y := from.board, from.x, from.y
	piece := board.At(x, y)

	var jumps []jump
	for _, dir := range Directions(piece) {
		captureX, captureY := x+dir.DX, y+dir.DY
		newX, newY := x+2*dir.DX, y+2*dir.DY
		if !InBounds(newX, newY) {
			continue
		}
		if !board.At(newX, newY).IsEmpty() || !board.At(captureX, captureY).BelongsTo(player.Other()) {
			continue
		}

		newBoard := board
		newBoard.Set(x, y, XX)
		newBoard.Set(captureX, captureY, XX)
		newBoard.Set(newX, newY, Promote(piece, newY))
		jumps = append(jumps, jump{newBoard, newX, newY, from.captures + 1})
	}
	return jumps
}

// CaptureMoves returns every maximal capture chain starting at (x, y). A
// chain keeps jumping from its landing square (with the piece promoted if it
// landed on its promotion row) until no further capture exists, so partial
// chains are never returned. Results are in depth-first direction order.
func CaptureMoves(board Board, player Player, x int, y int) []Board {
	if _, ok := movablePiece(board, player, x, y); !ok {
		return nil
	}

	var results []Board

	stack := []jump{{board, x, y, 0}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		next := singleJumps(current, player)
		if len(next) == 0 {
			if current.captures > 0 {
				results = append(results, current.board)
			}
			continue
		}

		for i := len(next) - 1; i >= 0; i-- {
			stack = append(stack, next[i])
		}
	}

	return results
}

func HasCapture(board Board, player Player) bool {
	for i := range board {
		x, y := XYFromIndex(i)
		if !board[i].BelongsTo(player) {
			continue
		}
		if len(singleJumps(jump{board, x, y, 0}, player)) > 0 {
			return true
		}
	}
	return false
}

// GenerateAllSuccessors scans the board in row-major order. Captures are
// mandatory: if any piece can capture, only capture chains are returned.
func GenerateAllSuccessors(board Board, player Player) []Board {
	var singles []Board
	var captures []Board

	for i := range board {
		if !board[i].BelongsTo(player) {
			continue
		}
		x, y := XYFromIndex(i)
		captures = append(captures, CaptureMoves(board, player, x, y)...)
		if len(captures) == 0 {
			singles = append(singles, SingleStepMoves(board, player, x, y)...)
		}
	}

	if len(captures) > 0 {
		return captures
	}
	return singles
}
