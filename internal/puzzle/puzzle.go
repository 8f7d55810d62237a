package puzzle

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cricklet/checkersgo/internal/game"
	. "github.com/cricklet/checkersgo/internal/helpers"
	"github.com/cricklet/checkersgo/internal/search"
)

// ParseBoard reads a whole board file: 8 rows of ".rRbB".
func ParseBoard(r io.Reader) (Board, Error) {
	input, err := io.ReadAll(r)
	if !IsNil(err) {
		return Board{}, Wrap(err)
	}
	return game.BoardFromString(string(input))
}

func ReadBoard(path string) (Board, Error) {
	f, err := os.Open(path)
	if !IsNil(err) {
		return Board{}, Wrap(err)
	}
	defer f.Close()

	board, parseErr := ParseBoard(f)
	if !IsNil(parseErr) {
		return Board{}, Errorf("%v: %w", path, parseErr)
	}
	return board, NilError
}

// FormatSolution renders every board of the line with a blank line between
// consecutive boards.
func FormatSolution(line []game.State) string {
	return strings.Join(MapSlice(line, game.State.String), "\n")
}

func WriteSolution(path string, line []game.State) Error {
	err := os.WriteFile(path, []byte(FormatSolution(line)), 0600)
	return Wrap(err)
}

type solveOptions struct {
	maxPlies int
	depth    Optional[int]
	moveTime time.Duration
	workers  int
	logger   Logger
}

type SolveOption interface {
	apply(options *solveOptions)
}

// WithMaxPlies caps the length of the played line.
type WithMaxPlies struct {
	MaxPlies int
}

func (o WithMaxPlies) apply(options *solveOptions) {
	options.maxPlies = o.MaxPlies
}

// WithDepth overrides the depth budget of the initial state for every move.
type WithDepth struct {
	Depth int
}

func (o WithDepth) apply(options *solveOptions) {
	options.depth = Some(o.Depth)
}

type WithMoveTime struct {
	MoveTime time.Duration
}

func (o WithMoveTime) apply(options *solveOptions) {
	options.moveTime = o.MoveTime
}

type WithWorkers struct {
	Workers int
}

func (o WithWorkers) apply(options *solveOptions) {
	options.workers = o.Workers
}

type WithLogger struct {
	Logger Logger
}

func (o WithLogger) apply(options *solveOptions) {
	options.logger = o.Logger
}

var DefaultMaxPlies = 200

// Solve plays the searched best move for whichever side is to move until the
// game is over, the side to move is stuck, the ply limit is hit or ctx is
// done. The returned line starts with the initial state.
func Solve(ctx context.Context, initial game.State, opts ...SolveOption) ([]game.State, Error) {
	options := solveOptions{
		maxPlies: DefaultMaxPlies,
		depth:    Empty[int](),
		workers:  1,
		logger:   &SilentLogger,
	}
	for _, opt := range opts {
		opt.apply(&options)
	}

	depth := options.depth.ValueOr(initial.Depth())
	if depth <= 0 {
		return nil, Errorf("solve needs a positive search depth, got %v", depth)
	}
	table := search.NewTranspositionTable(search.DefaultTranspositionTableSize)

	line := []game.State{initial}
	state := initial.WithDepth(depth)
	for ply := 0; ply < options.maxPlies; ply++ {
		if ctx.Err() != nil {
			options.logger.Println("stopped after", ply, "plies:", ctx.Err())
			break
		}
		if state.IsTerminal() {
			options.logger.Println("game over after", ply, "plies, red material", state.Evaluate())
			break
		}

		moveCtx, cancel := ctx, context.CancelFunc(func() {})
		if options.moveTime > 0 {
			moveCtx, cancel = context.WithTimeout(ctx, options.moveTime)
		}
		result, err := search.Search(moveCtx, state,
			search.WithWorkers{Workers: options.workers},
			search.WithLogger{Logger: options.logger},
			search.WithTranspositionTable{Table: table})
		cancel()
		if !IsNil(err) {
			return line, err
		}

		if result.Best.IsEmpty() {
			options.logger.Println(state.Turn(), "has no moves after", ply, "plies")
			break
		}

		options.logger.Println("ply", ply+1, state.Turn(),
			"score", search.ScoreString(result.Score), "depth", result.Depth)

		state = result.Best.Value().WithDepth(depth)
		line = append(line, state)
	}

	return line, NilError
}
