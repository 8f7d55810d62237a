package search

import (
	"context"

	"github.com/cricklet/checkersgo/internal/game"
	. "github.com/cricklet/checkersgo/internal/helpers"
	"golang.org/x/sync/errgroup"
)

type PerftResult struct {
	Leaves   int
	Captures int
}

func (p *PerftResult) add(o PerftResult) {
	p.Leaves += o.Leaves
	p.Captures += o.Captures
}

func isCapture(from game.State, to game.State) bool {
	red, black := from.MaterialCount()
	newRed, newBlack := to.MaterialCount()
	if from.Turn() == Red {
		return newBlack < black
	}
	return newRed < red
}

// Perft counts the positions reachable in exactly depth plies. Captures
// counts how many of the final plies were capture chains.
func Perft(state game.State, depth int) PerftResult {
	if depth == 0 {
		return PerftResult{Leaves: 1}
	}

	result := PerftResult{}
	for _, successor := range state.Successors() {
		if depth == 1 {
			result.Leaves++
			if isCapture(state, successor) {
				result.Captures++
			}
		} else {
			result.add(Perft(successor, depth-1))
		}
	}
	return result
}

// PerftParallel splits the root successors across workers. progress, if not
// nil, is called once per finished root successor.
func PerftParallel(ctx context.Context, state game.State, depth int, workers int, progress func()) (PerftResult, Error) {
	if depth <= 1 {
		return Perft(state, depth), NilError
	}

	successors := state.Successors()
	results := make([]PerftResult, len(successors))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(MaxInt(workers, 1))
	for i := range successors {
		i := i
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = Perft(successors[i], depth-1)
			if progress != nil {
				progress()
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return PerftResult{}, Wrap(err)
	}

	total := PerftResult{}
	for _, r := range results {
		total.add(r)
	}
	return total, NilError
}
