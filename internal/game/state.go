package game

import (
	. "github.com/cricklet/checkersgo/internal/helpers"
	"github.com/cricklet/checkersgo/internal/rules"
	"github.com/cricklet/checkersgo/internal/zobrist"
)

// State is an immutable position: a board, the side to move and a depth
// budget. The depth budget is not read by the rules; search drivers use it
// to decide when to stop recursing.
type State struct {
	board Board
	turn  Player
	depth int
}

// PositionKey identifies a position including the side to move. Use it
// instead of BoardKey whenever results depend on whose turn it is.
type PositionKey struct {
	Board Board
	Turn  Player
}

func NewState(board Board, turn Player, depth int) State {
	return State{board: board, turn: turn, depth: depth}
}

func StateFromString(s string, turn Player, depth int) (State, Error) {
	board, err := BoardFromString(s)
	if !IsNil(err) {
		return State{}, err
	}
	if !turn.IsValid() {
		return State{}, Errorf("turn %v: %w", int(turn), ErrInvalidPlayer)
	}
	return NewState(board, turn, depth), NilError
}

func (s State) Board() Board {
	return s.board
}

func (s State) Turn() Player {
	return s.turn
}

func (s State) Depth() int {
	return s.depth
}

// WithDepth returns the same position with a different depth budget.
func (s State) WithDepth(depth int) State {
	return State{board: s.board, turn: s.turn, depth: depth}
}

func (s State) String() string {
	return BoardString(s.board)
}

// Equal compares boards only; turn and depth are not part of a State's
// identity.
func (s State) Equal(other State) bool {
	return s.board == other.board
}

func (s State) BoardKey() Board {
	return s.board
}

func (s State) PositionKey() PositionKey {
	return PositionKey{s.board, s.turn}
}

func (s State) Hash() uint64 {
	return zobrist.HashForBoard(&s.board)
}

func (s State) PositionHash() uint64 {
	return zobrist.HashForPosition(&s.board, s.turn)
}

func (s State) next(board Board) State {
	return State{board: board, turn: s.turn.Other(), depth: s.depth - 1}
}

// Successors lists every legal next position. Captures are mandatory, and a
// whole capture chain counts as a single successor.
func (s State) Successors() []State {
	boards := rules.GenerateAllSuccessors(s.board, s.turn)
	return MapSlice(boards, s.next)
}

func (s State) IsTerminal() bool {
	return rules.IsTerminal(s.board)
}

// Evaluate is always from red's perspective, whoever is to move.
func (s State) Evaluate() int {
	return rules.Evaluate(s.board)
}

func (s State) MaterialCount() (int, int) {
	return rules.MaterialCount(s.board)
}

// Winner is set once one side has no material left.
func (s State) Winner() Optional[Player] {
	red, black := s.MaterialCount()
	if red > 0 && black == 0 {
		return Some(Red)
	}
	if black > 0 && red == 0 {
		return Some(Black)
	}
	return Empty[Player]()
}
