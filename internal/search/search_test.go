package search

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/cricklet/checkersgo/internal/game"
	. "github.com/cricklet/checkersgo/internal/helpers"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallTable() *TranspositionTable {
	return NewTranspositionTable(1 << 16)
}

func TestSearchTakesWinningCapture(t *testing.T) {
	root := game.NewState(Board{}.With(2, 3, RedKing).With(3, 4, BlackMan), Red, 4)

	result, err := Search(context.Background(), root, WithTranspositionTable{smallTable()})
	require.True(t, IsNil(err), err)

	require.True(t, result.Best.HasValue())
	assert.Equal(t, Board{}.With(4, 5, RedKing), result.Best.Value().Board())
	assert.Equal(t, Black, result.Best.Value().Turn())
	assert.Equal(t, 3, result.Best.Value().Depth())
	assert.Equal(t, WinInNScore(1), result.Score)
	assert.Equal(t, "win+1", ScoreString(result.Score))
	assert.Equal(t, 1, result.Depth)
}

func TestSearchPrefersCapturingKing(t *testing.T) {
	board, err := game.BoardFromRows(
		".......b",
		"........",
		"........",
		"........",
		".b.B....",
		"..r.....",
		"........",
		"........",
	)
	require.True(t, IsNil(err), err)

	root := game.NewState(board, Red, 5)
	result, err := Search(context.Background(), root, WithMaxDepth{1}, WithTranspositionTable{smallTable()})
	require.True(t, IsNil(err), err)

	require.True(t, result.Best.HasValue())
	best := result.Best.Value().Board()
	assert.Equal(t, XX, best.At(3, 4), best.String())
	assert.Equal(t, RedMan, best.At(4, 3), best.String())
	assert.Equal(t, -1, result.RedScore(root))
	assert.Equal(t, 4, result.Best.Value().Depth())
}

func TestSearchWithoutSuccessorsLoses(t *testing.T) {
	board, err := game.BoardFromRows(
		"b.b.....",
		".r......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	)
	require.True(t, IsNil(err), err)

	root := game.NewState(board, Red, 3)
	require.Empty(t, root.Successors())

	result, err := Search(context.Background(), root, WithTranspositionTable{smallTable()})
	require.True(t, IsNil(err), err)
	assert.True(t, result.Best.IsEmpty())
	assert.Equal(t, -Inf, result.Score)
}

func TestSearchTerminalRoot(t *testing.T) {
	root := game.NewState(Board{}.With(1, 6, RedMan), Red, 3)

	result, err := Search(context.Background(), root, WithTranspositionTable{smallTable()})
	require.True(t, IsNil(err), err)
	assert.True(t, result.Best.IsEmpty())
	assert.Equal(t, WinInNScore(0), result.Score)

	root = game.NewState(Board{}.With(1, 6, RedMan), Black, 3)
	result, err = Search(context.Background(), root, WithTranspositionTable{smallTable()})
	require.True(t, IsNil(err), err)
	assert.Equal(t, WinInNScore(0), result.RedScore(root))
}

func TestSearchWithoutDepthBudget(t *testing.T) {
	root := game.NewState(Board{}.With(1, 6, RedMan).With(3, 0, BlackKing), Black, 0)

	result, err := Search(context.Background(), root, WithTranspositionTable{smallTable()})
	require.True(t, IsNil(err), err)
	assert.True(t, result.Best.IsEmpty())
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, -1, result.RedScore(root))
}

func TestSearchInvalidTurn(t *testing.T) {
	root := game.NewState(StartingBoard(), Player(5), 3)

	_, err := Search(context.Background(), root, WithTranspositionTable{smallTable()})
	assert.True(t, errors.Is(err, ErrInvalidPlayer))
}

func TestParallelSearchMatchesSequential(t *testing.T) {
	root := game.NewState(StartingBoard(), Black, 4)

	sequential, err := Search(context.Background(), root, WithTranspositionTable{smallTable()})
	require.True(t, IsNil(err), err)

	parallel, err := Search(context.Background(), root, WithWorkers{4}, WithTranspositionTable{smallTable()})
	require.True(t, IsNil(err), err)

	assert.Equal(t, 4, sequential.Depth)
	assert.Equal(t, 4, parallel.Depth)
	assert.Equal(t, sequential.Score, parallel.Score, spew.Sdump(sequential.Score, parallel.Score))
	assert.True(t, parallel.Best.HasValue())
}

func TestTranspositionTableIsUsed(t *testing.T) {
	table := smallTable()
	root := game.NewState(StartingBoard(), Red, 5)

	result, err := Search(context.Background(), root, WithTranspositionTable{table})
	require.True(t, IsNil(err), err)
	assert.Equal(t, 5, result.Depth)
	assert.Greater(t, table.Hits(), 0, table.Stats())
}

// The same board is a win for red with red to move and an ordinary position
// with black to move, so the search cache has to be keyed by board and turn.
func TestSearchNeedsTurnAwareKeys(t *testing.T) {
	table := smallTable()
	board := Board{}.With(2, 3, RedKing).With(3, 4, BlackMan)

	redToMove := game.NewState(board, Red, 2)
	blackToMove := game.NewState(board, Black, 2)
	require.Equal(t, redToMove.BoardKey(), blackToMove.BoardKey())
	require.NotEqual(t, redToMove.PositionHash(), blackToMove.PositionHash())

	redResult, err := Search(context.Background(), redToMove, WithTranspositionTable{table})
	require.True(t, IsNil(err), err)
	blackResult, err := Search(context.Background(), blackToMove, WithTranspositionTable{table})
	require.True(t, IsNil(err), err)

	assert.Equal(t, WinInNScore(1), redResult.RedScore(redToMove))
	assert.Equal(t, 1, blackResult.RedScore(blackToMove))
}

func TestSearchStopsAtDeadline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lines := []string{}
	logger := FuncLogger(func(s string) { lines = append(lines, s) })

	root := game.NewState(StartingBoard(), Red, 8)
	result, err := Search(ctx, root, WithLogger{logger}, WithTranspositionTable{smallTable()})
	require.True(t, IsNil(err), err)

	assert.Equal(t, 1, result.Depth)
	assert.True(t, result.Best.HasValue())
	assert.Equal(t, 7, result.Best.Value().Depth())

	output := strings.Join(lines, "")
	assert.Contains(t, output, "evaluated to depth 1")
	assert.Contains(t, output, "out of time at depth 2")
}

func TestVariationStartsWithBest(t *testing.T) {
	root := game.NewState(StartingBoard(), Red, 3)

	result, err := Search(context.Background(), root, WithTranspositionTable{smallTable()})
	require.True(t, IsNil(err), err)
	require.NotEmpty(t, result.Variation)
	assert.True(t, result.Variation[0].Equal(result.Best.Value()))

	// each state in the line follows from the previous one
	previous := root
	for _, state := range result.Variation {
		found := false
		for _, successor := range previous.Successors() {
			if successor.Equal(state) {
				found = true
			}
		}
		assert.True(t, found, state.String())
		previous = state
	}
}

func TestPerft(t *testing.T) {
	expected := []int{1, 7, 49, 302}

	for _, player := range []Player{Red, Black} {
		root := game.NewState(StartingBoard(), player, len(expected))
		for depth, leaves := range expected {
			assert.Equal(t, leaves, Perft(root, depth).Leaves, "depth %v", depth)
		}
	}
}

func TestPerftCountsCaptures(t *testing.T) {
	root := game.NewState(Board{}.With(2, 3, RedKing).With(3, 4, BlackMan).With(7, 0, BlackMan), Red, 1)

	result := Perft(root, 1)
	assert.Equal(t, PerftResult{Leaves: 1, Captures: 1}, result)
}

func TestPerftParallel(t *testing.T) {
	root := game.NewState(StartingBoard(), Black, 4)

	progress := atomic.Int32{}
	result, err := PerftParallel(context.Background(), root, 4, 3, func() { progress.Add(1) })
	require.True(t, IsNil(err), err)

	assert.Equal(t, Perft(root, 4), result)
	assert.Equal(t, int32(7), progress.Load())
}

func TestPerftParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PerftParallel(ctx, game.NewState(StartingBoard(), Black, 4), 4, 2, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}
