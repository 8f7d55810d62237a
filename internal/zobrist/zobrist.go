package zobrist

import (
	"math/rand"

	. "github.com/cricklet/checkersgo/internal/helpers"
)

var ZobristPieceAtSquare [BlackKing + 1] /*includes empty*/ [BoardSize * BoardSize]uint64
var ZobristSideToMove uint64

func init() {
	r := rand.New(rand.NewSource(32879419))
	ZobristSideToMove = r.Uint64()
	for piece := RedMan; /* skip empty */ piece <= BlackKing; piece++ {
		for boardIndex := 0; boardIndex < BoardSize*BoardSize; boardIndex++ {
			ZobristPieceAtSquare[piece][boardIndex] = r.Uint64()
		}
	}
}

// HashForBoard ignores the side to move. Unknown pieces hash like empty squares.
func HashForBoard(board *Board) uint64 {
	hash := uint64(0)
	for boardIndex, piece := range board {
		if piece.IsValid() {
			hash ^= ZobristPieceAtSquare[piece][boardIndex]
		}
	}
	return hash
}

func HashForPosition(board *Board, player Player) uint64 {
	hash := HashForBoard(board)
	if player == Black {
		hash ^= ZobristSideToMove
	}
	return hash
}
