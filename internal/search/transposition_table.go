package search

import (
	"fmt"
	"sync"
	"sync/atomic"

	. "github.com/cricklet/checkersgo/internal/helpers"
	"github.com/dustin/go-humanize"
)

type ScoreType int

const (
	NoneType ScoreType = iota
	AlphaFailUpperBound
	BetaFailLowerBound
	Exact
)

type CachedEvaluation struct {
	Depth     int
	Score     int
	ScoreType ScoreType
	Hash      uint64
}

// TranspositionTable caches search results by position hash (board and side
// to move). It is safe for concurrent use by search workers.
type TranspositionTable struct {
	Size  int
	cache []CachedEvaluation
	lock  sync.RWMutex

	hits        atomic.Int64
	collisions  atomic.Int64
	depthTooLow atomic.Int64
	misses      atomic.Int64
}

var DefaultTranspositionTableSize = 1 << 20

func NewTranspositionTable(size int) *TranspositionTable {
	return &TranspositionTable{
		Size:  size,
		cache: make([]CachedEvaluation, size),
	}
}

func (t *TranspositionTable) Stats() string {
	return fmt.Sprintf("hits: %v, collisions: %v, depth too low: %v, misses: %v",
		humanize.Comma(t.hits.Load()), humanize.Comma(t.collisions.Load()),
		humanize.Comma(t.depthTooLow.Load()), humanize.Comma(t.misses.Load()),
	)
}

func (t *TranspositionTable) Hits() int {
	return int(t.hits.Load())
}

func (t *TranspositionTable) Get(hash uint64, depth int) Optional[CachedEvaluation] {
	i := hash % uint64(t.Size)

	t.lock.RLock()
	v := t.cache[i]
	t.lock.RUnlock()

	if v.ScoreType != NoneType && v.Hash == hash {
		if v.Depth >= depth {
			t.hits.Add(1)
			return Some(v)
		} else {
			t.depthTooLow.Add(1)
		}
	} else if v.ScoreType != NoneType {
		t.collisions.Add(1)
	} else {
		t.misses.Add(1)
	}
	return Empty[CachedEvaluation]()
}

// Put replaces the slot unless it holds a deeper result for the same position.
func (t *TranspositionTable) Put(hash uint64, depth int, score int, scoreType ScoreType) {
	i := hash % uint64(t.Size)

	t.lock.Lock()
	defer t.lock.Unlock()

	if existing := t.cache[i]; existing.Hash == hash && existing.Depth > depth {
		return
	}
	t.cache[i] = CachedEvaluation{
		Depth:     depth,
		Score:     score,
		ScoreType: scoreType,
		Hash:      hash,
	}
}
