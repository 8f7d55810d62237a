package search

import (
	"context"
	"sort"
	"sync/atomic"

	"github.com/cricklet/checkersgo/internal/game"
	. "github.com/cricklet/checkersgo/internal/helpers"
	"golang.org/x/sync/errgroup"
)

/*
negamax with alpha/beta pruning over game.State

every score is from the point of view of the side to move:
  score(s) = max over children c of -score(c)

red's material evaluation is negated when black is to move. a side with no
pieces, or with pieces but no legal successor, has lost. wins found closer to
the root score higher (Inf - ply) so the search prefers the fastest win and
the slowest loss.

the remaining depth is the State's own depth budget: the root is rebuilt
with the iteration depth, and every successor spends one.
*/

type searchOptions struct {
	maxDepth int
	workers  int
	logger   Logger
	table    *TranspositionTable
}

type SearchOption interface {
	apply(options *searchOptions)
}

type WithMaxDepth struct {
	MaxDepth int
}

func (o WithMaxDepth) apply(options *searchOptions) {
	options.maxDepth = o.MaxDepth
}

// WithWorkers searches root successors in parallel.
type WithWorkers struct {
	Workers int
}

func (o WithWorkers) apply(options *searchOptions) {
	options.workers = o.Workers
}

type WithLogger struct {
	Logger Logger
}

func (o WithLogger) apply(options *searchOptions) {
	options.logger = o.Logger
}

type WithTranspositionTable struct {
	Table *TranspositionTable
}

func (o WithTranspositionTable) apply(options *searchOptions) {
	options.table = o.Table
}

type Result struct {
	// Best is empty when the root has no successors or no depth budget.
	Best Optional[game.State]
	// Score is from the root side to move's point of view.
	Score     int
	Depth     int
	Nodes     int
	Variation []game.State
}

// RedScore converts Score to red's point of view.
func (r Result) RedScore(root game.State) int {
	if root.Turn() == Black {
		return -r.Score
	}
	return r.Score
}

type searcher struct {
	ctx     context.Context
	table   *TranspositionTable
	nodes   *atomic.Int64
	canStop bool
}

func (s *searcher) outOfTime() bool {
	return s.canStop && s.ctx.Err() != nil
}

func colorFor(player Player) int {
	if player == Black {
		return -1
	}
	return 1
}

func evaluateLeaf(state game.State) int {
	return colorFor(state.Turn()) * state.Evaluate()
}

func (s *searcher) negamax(state game.State, alpha int, beta int, ply int) (int, []game.State, bool) {
	s.nodes.Add(1)

	if s.outOfTime() {
		return 0, nil, false
	}

	if state.IsTerminal() {
		winner := state.Winner()
		if winner.IsEmpty() {
			return 0, nil, true
		} else if winner.Value() == state.Turn() {
			return WinInNScore(ply), nil, true
		}
		return -WinInNScore(ply), nil, true
	}

	if state.Depth() <= 0 {
		return evaluateLeaf(state), nil, true
	}

	hash := state.PositionHash()
	originalAlpha := alpha
	if ply > 0 {
		if cached := s.table.Get(hash, state.Depth()); cached.HasValue() {
			v := cached.Value()
			score := scoreFromTable(v.Score, ply)
			switch v.ScoreType {
			case Exact:
				return score, nil, true
			case BetaFailLowerBound:
				alpha = MaxInt(alpha, score)
			case AlphaFailUpperBound:
				beta = MinInt(beta, score)
			}
			if alpha >= beta {
				return score, nil, true
			}
		}
	}

	successors := state.Successors()
	if len(successors) == 0 {
		return -WinInNScore(ply), nil, true
	}

	best := -Inf - 1
	var variation []game.State
	for _, successor := range successors {
		childScore, childVariation, ok := s.negamax(successor, -beta, -alpha, ply+1)
		if !ok {
			return 0, nil, false
		}

		score := -childScore
		if score > best {
			best = score
			variation = append([]game.State{successor}, childVariation...)
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	scoreType := Exact
	if best <= originalAlpha {
		scoreType = AlphaFailUpperBound
	} else if best >= beta {
		scoreType = BetaFailLowerBound
	}
	s.table.Put(hash, state.Depth(), scoreToTable(best, ply), scoreType)

	return best, variation, true
}

type rootMove struct {
	state     game.State
	score     int
	variation []game.State
}

func (s *searcher) searchRoot(moves []rootMove, workers int) bool {
	if workers <= 1 {
		alpha := -Inf - 1
		for i := range moves {
			score, variation, ok := s.negamax(moves[i].state, -Inf-1, -alpha, 1)
			if !ok {
				return false
			}
			moves[i].score = -score
			moves[i].variation = variation
			if moves[i].score > alpha {
				alpha = moves[i].score
			}
		}
		return true
	}

	group := errgroup.Group{}
	group.SetLimit(workers)
	for i := range moves {
		i := i
		group.Go(func() error {
			score, variation, ok := s.negamax(moves[i].state, -Inf-1, Inf+1, 1)
			if !ok {
				return s.ctx.Err()
			}
			moves[i].score = -score
			moves[i].variation = variation
			return nil
		})
	}
	return group.Wait() == nil
}

// Search runs iterative deepening from the root up to the smaller of the
// root's depth budget and WithMaxDepth. When ctx is done the result of the
// last completed iteration is returned; the first iteration always completes.
func Search(ctx context.Context, root game.State, opts ...SearchOption) (Result, Error) {
	options := searchOptions{
		maxDepth: root.Depth(),
		workers:  1,
		logger:   &SilentLogger,
	}
	for _, opt := range opts {
		opt.apply(&options)
	}
	if options.table == nil {
		options.table = NewTranspositionTable(DefaultTranspositionTableSize)
	}
	if !root.Turn().IsValid() {
		return Result{}, Errorf("search root turn %v: %w", int(root.Turn()), ErrInvalidPlayer)
	}

	maxDepth := MinInt(root.Depth(), options.maxDepth)

	nodes := atomic.Int64{}
	result := Result{
		Best:  Empty[game.State](),
		Score: evaluateLeaf(root),
	}

	if root.IsTerminal() || maxDepth <= 0 {
		s := searcher{ctx, options.table, &nodes, false}
		score, _, _ := s.negamax(root.WithDepth(0), -Inf-1, Inf+1, 0)
		result.Score = score
		result.Nodes = int(nodes.Load())
		return result, NilError
	}

	moves := MapSlice(root.Successors(), func(state game.State) rootMove {
		return rootMove{state: state}
	})
	if len(moves) == 0 {
		result.Score = -Inf
		result.Nodes = 1
		return result, NilError
	}

	for depth := 1; depth <= maxDepth; depth++ {
		s := searcher{ctx, options.table, &nodes, depth > 1}

		iteration := make([]rootMove, len(moves))
		for i := range moves {
			iteration[i] = rootMove{state: moves[i].state.WithDepth(depth - 1)}
		}

		if !s.searchRoot(iteration, options.workers) {
			options.logger.Println("out of time at depth", depth, "- nodes", nodes.Load())
			break
		}

		sort.SliceStable(iteration, func(i, j int) bool {
			return iteration[i].score > iteration[j].score
		})
		moves = iteration

		best := moves[0]
		result = Result{
			Best:      Some(best.state.WithDepth(root.Depth() - 1)),
			Score:     best.score,
			Depth:     depth,
			Nodes:     int(nodes.Load()),
			Variation: append([]game.State{best.state}, best.variation...),
		}

		options.logger.Println("evaluated",
			"to depth", depth,
			"- nodes", nodes.Load(),
			"- score", ScoreString(best.score),
			"- table", options.table.Stats())

		if IsWin(best.score) {
			break
		}
	}

	return result, NilError
}
