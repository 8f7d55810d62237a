package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/cricklet/checkersgo/internal/game"
	. "github.com/cricklet/checkersgo/internal/helpers"
	"github.com/cricklet/checkersgo/internal/puzzle"
	"github.com/cricklet/checkersgo/internal/rules"
	"github.com/cricklet/checkersgo/internal/search"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

var profiler interface{ Stop() }

var logOutput io.Writer = os.Stderr

func configureLogging(out io.Writer, debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	noColor := true
	if f, ok := out.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: noColor, TimeFormat: time.Kitchen}).
		With().
		Timestamp().
		Str("run", uuid.NewString()).
		Logger()
}

// searchLogger reports search progress at debug level so --debug shows every
// iteration.
func searchLogger() Logger {
	return &ZerologLogger{Logger: log.Logger, Level: zerolog.DebugLevel}
}

func render(board Board) string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return board.Unicode()
	}
	return board.String()
}

func loadState(cCtx *cli.Context) (game.State, Error) {
	board, err := puzzle.ReadBoard(cCtx.String("inputfile"))
	if !IsNil(err) {
		return game.State{}, err
	}
	turn, err := PlayerFromString(cCtx.String("turn"))
	if !IsNil(err) {
		return game.State{}, err
	}
	return game.NewState(board, turn, cCtx.Int("depth")), NilError
}

var inputFlag = &cli.StringFlag{
	Name:     "inputfile",
	Aliases:  []string{"i"},
	Usage:    "board file: 8 rows of .rRbB",
	Required: true,
}

var turnFlag = &cli.StringFlag{
	Name:    "turn",
	Aliases: []string{"t"},
	Usage:   "side to move: r or b",
	Value:   "r",
}

var workersFlag = &cli.IntFlag{
	Name:  "workers",
	Usage: "parallel search workers",
	Value: runtime.NumCPU(),
}

func solve(cCtx *cli.Context) error {
	state, err := loadState(cCtx)
	if !IsNil(err) {
		return err
	}

	log.Info().Str("turn", state.Turn().String()).Int("depth", state.Depth()).Msg("solving")
	fmt.Println(render(state.Board()))

	line, err := puzzle.Solve(cCtx.Context, state,
		puzzle.WithMaxPlies{MaxPlies: cCtx.Int("plies")},
		puzzle.WithMoveTime{MoveTime: cCtx.Duration("timeout")},
		puzzle.WithWorkers{Workers: cCtx.Int("workers")},
		puzzle.WithLogger{Logger: searchLogger()})
	if !IsNil(err) {
		return err
	}

	last := line[len(line)-1]
	fmt.Println(render(last.Board()))

	red, black := last.MaterialCount()
	log.Info().
		Int("plies", len(line)-1).
		Int("red", red).
		Int("black", black).
		Str("output", cCtx.String("outputfile")).
		Msg("solved")

	err = puzzle.WriteSolution(cCtx.String("outputfile"), line)
	if !IsNil(err) {
		return err
	}
	return nil
}

func show(cCtx *cli.Context) error {
	state, err := loadState(cCtx)
	if !IsNil(err) {
		return err
	}

	fmt.Println(render(state.Board()))
	successors := state.Successors()
	for i, successor := range successors {
		fmt.Printf("successor %v:\n%v\n", i+1, render(successor.Board()))
	}

	red, black := state.MaterialCount()
	log.Info().
		Str("turn", state.Turn().String()).
		Int("successors", len(successors)).
		Bool("forced_capture", rules.HasCapture(state.Board(), state.Turn())).
		Bool("terminal", state.IsTerminal()).
		Int("red", red).
		Int("black", black).
		Int("evaluation", state.Evaluate()).
		Msg("position")

	if cCtx.Int("depth") > 0 {
		result, err := search.Search(cCtx.Context, state, search.WithLogger{Logger: searchLogger()})
		if !IsNil(err) {
			return err
		}
		log.Info().
			Str("score", search.ScoreString(result.RedScore(state))).
			Int("depth", result.Depth).
			Str("nodes", humanize.Comma(int64(result.Nodes))).
			Msg("search")
	}
	return nil
}

func perft(cCtx *cli.Context) error {
	state, err := loadState(cCtx)
	if !IsNil(err) {
		return err
	}

	successors := len(state.Successors())
	for depth := 1; depth <= cCtx.Int("depth"); depth++ {
		bar := progressbar.Default(int64(successors), fmt.Sprint("depth ", depth))
		start := time.Now()

		result, err := search.PerftParallel(cCtx.Context, state, depth, cCtx.Int("workers"), func() {
			bar.Add(1)
		})
		bar.Finish()
		if !IsNil(err) {
			return err
		}

		log.Info().
			Int("depth", depth).
			Str("leaves", humanize.Comma(int64(result.Leaves))).
			Str("captures", humanize.Comma(int64(result.Captures))).
			Dur("elapsed", time.Since(start)).
			Msg("perft")
	}
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "checkers",
		Usage: "solve, inspect and count checkers positions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "profile",
				Usage: "write a cpu profile to this directory",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log every search iteration",
			},
		},
		Before: func(cCtx *cli.Context) error {
			configureLogging(logOutput, cCtx.Bool("debug"))
			if path := cCtx.String("profile"); path != "" {
				profiler = profile.Start(profile.ProfilePath(path), profile.Quiet)
			}
			return nil
		},
		After: func(cCtx *cli.Context) error {
			if profiler != nil {
				profiler.Stop()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "solve",
				Usage: "play out the best line from a board file",
				Flags: []cli.Flag{
					inputFlag,
					turnFlag,
					workersFlag,
					&cli.StringFlag{
						Name:     "outputfile",
						Aliases:  []string{"o"},
						Usage:    "where to write every board of the line",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "depth",
						Aliases: []string{"d"},
						Usage:   "search depth per move",
						Value:   8,
					},
					&cli.IntFlag{
						Name:  "plies",
						Usage: "stop after this many moves",
						Value: puzzle.DefaultMaxPlies,
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "search time per move, 0 for no limit",
						Value: 5 * time.Second,
					},
				},
				Action: solve,
			},
			{
				Name:  "show",
				Usage: "print a board, its successors and its evaluation",
				Flags: []cli.Flag{
					inputFlag,
					turnFlag,
					&cli.IntFlag{
						Name:    "depth",
						Aliases: []string{"d"},
						Usage:   "also search the position to this depth",
					},
				},
				Action: show,
			},
			{
				Name:  "perft",
				Usage: "count the positions reachable from a board file",
				Flags: []cli.Flag{
					inputFlag,
					turnFlag,
					workersFlag,
					&cli.IntFlag{
						Name:    "depth",
						Aliases: []string{"d"},
						Value:   6,
					},
				},
				Action: perft,
			},
		},
	}
}

func main() {
	if err := newApp().RunContext(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("checkers")
	}
}
