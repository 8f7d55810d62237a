package helpers

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/acarl005/stripansi"
	"github.com/stretchr/testify/assert"
)

func TestBoardString(t *testing.T) {
	board := StartingBoard()
	assert.Equal(t, strings.Join([]string{
		".b.b.b.b",
		"b.b.b.b.",
		".b.b.b.b",
		"........",
		"........",
		"r.r.r.r.",
		".r.r.r.r",
		"r.r.r.r.",
	}, "\n")+"\n", board.String())
}

func TestBoardUnicode(t *testing.T) {
	board := Board{}.With(1, 0, BlackKing).With(2, 7, RedMan)

	lines := strings.Split(strings.TrimRight(stripansi.Strip(board.Unicode()), "\n"), "\n")
	assert.Equal(t, 9, len(lines))
	assert.Equal(t, "   0  1  2  3  4  5  6  7 ", lines[0])
	for _, line := range lines[1:] {
		assert.Equal(t, 2+3*BoardSize, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, lines[1], "⛃")
	assert.Contains(t, lines[8], "⛀")
}

func TestBoardValueSemantics(t *testing.T) {
	a := Board{}
	b := a.With(3, 4, RedKing)

	assert.Equal(t, XX, a.At(3, 4))
	assert.Equal(t, RedKing, b.At(3, 4))
	assert.Equal(t, XX, b.At(-1, 4))
	assert.Equal(t, XX, b.At(3, 8))

	key := map[Board]int{a: 1, b: 2}
	assert.Equal(t, 2, key[Board{}.With(3, 4, RedKing)])
}

func TestPieces(t *testing.T) {
	for _, c := range ".rRbB" {
		p, err := PieceFromRune(c)
		assert.True(t, IsNil(err), err)
		assert.Equal(t, c, p.Rune())
	}

	_, err := PieceFromRune('x')
	assert.True(t, errors.Is(err, ErrInvalidBoard))

	assert.Equal(t, 1, RedMan.Value())
	assert.Equal(t, 2, BlackKing.Value())
	assert.Equal(t, 0, XX.Value())
	assert.Equal(t, 0, Piece(9).Value())

	assert.True(t, BlackMan.BelongsTo(Black))
	assert.False(t, XX.BelongsTo(Red))
	assert.False(t, Piece(9).BelongsTo(Red))
	assert.Equal(t, BlackKing, KingFor(Black))
}

func TestPlayers(t *testing.T) {
	p, err := PlayerFromString("r")
	assert.True(t, IsNil(err), err)
	assert.Equal(t, Red, p)
	assert.Equal(t, Black, p.Other())
	assert.Equal(t, Red, Black.Other())
	assert.Equal(t, Player(7), Player(7).Other())
	assert.False(t, Player(7).Other().IsValid())
	assert.Equal(t, "black", Black.String())

	_, err = PlayerFromString("w")
	assert.True(t, errors.Is(err, ErrInvalidPlayer))
}
