package helpers

import "strings"

const BoardSize = 8

type Player uint8

const (
	Red Player = iota
	Black
)

var _playerStrings = [2]string{
	"red", "black",
}

func (p Player) String() string {
	if p > Black {
		return "?"
	}
	return _playerStrings[p]
}

// Other returns the opponent. Invalid players are returned unchanged.
func (p Player) Other() Player {
	if !p.IsValid() {
		return p
	}
	return 1 - p
}

func (p Player) IsValid() bool {
	return p == Red || p == Black
}

func PlayerFromString(s string) (Player, Error) {
	switch strings.ToLower(s) {
	case "r", "red":
		return Red, NilError
	case "b", "black":
		return Black, NilError
	default:
		return Red, Errorf("player %q: %w", s, ErrInvalidPlayer)
	}
}

type Piece uint8

const (
	XX Piece = iota
	RedMan
	RedKing
	BlackMan
	BlackKing
)

var _pieceRunes = [5]rune{'.', 'r', 'R', 'b', 'B'}

func PieceFromRune(c rune) (Piece, Error) {
	for i, r := range _pieceRunes {
		if r == c {
			return Piece(i), NilError
		}
	}
	return XX, Errorf("piece %q: %w", c, ErrInvalidBoard)
}

func (p Piece) Rune() rune {
	if p > BlackKing {
		return '?'
	}
	return _pieceRunes[p]
}

func (p Piece) String() string {
	return string(p.Rune())
}

func (p Piece) IsEmpty() bool {
	return p == XX
}

func (p Piece) IsValid() bool {
	return p >= RedMan && p <= BlackKing
}

func (p Piece) IsKing() bool {
	return p == RedKing || p == BlackKing
}

func (p Piece) IsMan() bool {
	return p == RedMan || p == BlackMan
}

// Player is only meaningful for valid pieces.
func (p Piece) Player() Player {
	if p == BlackMan || p == BlackKing {
		return Black
	}
	return Red
}

func (p Piece) BelongsTo(player Player) bool {
	return p.IsValid() && p.Player() == player
}

// Value is the material value: a man is worth 1, a king 2.
func (p Piece) Value() int {
	switch p {
	case RedMan, BlackMan:
		return 1
	case RedKing, BlackKing:
		return 2
	}
	return 0
}

func KingFor(player Player) Piece {
	if player == Black {
		return BlackKing
	}
	return RedKing
}

// Board is indexed y*8+x. Row 0 is black's back rank.
type Board [BoardSize * BoardSize]Piece

func InBounds(x int, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

func IndexFromXY(x int, y int) int {
	return y*BoardSize + x
}

func XYFromIndex(index int) (int, int) {
	return index % BoardSize, index / BoardSize
}

func (b Board) At(x int, y int) Piece {
	if !InBounds(x, y) {
		return XX
	}
	return b[IndexFromXY(x, y)]
}

// With returns a copy of the board with (x, y) set to piece.
func (b Board) With(x int, y int, piece Piece) Board {
	b[IndexFromXY(x, y)] = piece
	return b
}

func (b *Board) Set(x int, y int, piece Piece) {
	b[IndexFromXY(x, y)] = piece
}

func (b Board) String() string {
	result := strings.Builder{}
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			result.WriteRune(b.At(x, y).Rune())
		}
		result.WriteString("\n")
	}
	return result.String()
}

// StartingBoard has black on rows 0-2 and red on rows 5-7, on the dark squares.
func StartingBoard() Board {
	b := Board{}
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if (x+y)%2 == 0 {
				continue
			}
			if y < 3 {
				b.Set(x, y, BlackMan)
			} else if y > 4 {
				b.Set(x, y, RedMan)
			}
		}
	}
	return b
}

const _hintForeground = "\033[38;5;244m"
const _redForeground = "\033[38;5;196m"
const _blackForeground = "\033[38;5;232m"
const _lightBackground = "\033[48;5;250m"
const _darkBackground = "\033[48;5;243m"
const _resetColors = "\x1b[0m"

var _pieceUnicode = [5]string{" ", "⛀", "⛁", "⛂", "⛃"}

func (b Board) Unicode() string {
	result := "  "
	for x := 0; x < BoardSize; x++ {
		result += _hintForeground + " " + string(rune('0'+x)) + " " + _resetColors
	}
	result += "\n"

	for y := 0; y < BoardSize; y++ {
		result += _hintForeground + string(rune('0'+y)) + " " + _resetColors
		for x := 0; x < BoardSize; x++ {
			piece := b.At(x, y)
			if (x+y)%2 == 0 {
				result += _lightBackground
			} else {
				result += _darkBackground
			}
			if piece.Player() == Red {
				result += _redForeground
			} else {
				result += _blackForeground
			}

			glyph := " "
			if piece.IsValid() {
				glyph = _pieceUnicode[piece]
			}
			result += " " + glyph + " " + _resetColors
		}
		result += "\n"
	}

	return result
}
