// Package pool implements the Thread Pool (C8, spec.md §4.4 and §5):
// a fixed set of search.Worker goroutines sharing one root-move split,
// one stop flag and one move-count table, fanned out and joined with
// errgroup.Group. The fan-out shape is the teacher's per-thread
// goroutine loop in internal/mcts/search.go's Search (a
// sync.WaitGroup-joined range over NumThreads); the join is
// restructured onto errgroup so a worker panic is captured and
// surfaced through Wait() instead of silently dropped, the same
// helper-thread pattern other_examples/domino14-macondo__solver.go
// uses its errgroup.Group for.
package pool

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jkorten/matefish/internal/chessboard"
	"github.com/jkorten/matefish/internal/matevalue"
	"github.com/jkorten/matefish/internal/search"
	"github.com/jkorten/matefish/internal/tablebase"
)

// Pool owns the configuration a Run needs to reconstruct every time a
// "go" command starts a new search: thread count, search options and
// the tablebase oracle, plus a logger for per-worker diagnostics.
type Pool struct {
	Threads int
	Oracle  tablebase.Oracle
	Options search.Options
	Log     zerolog.Logger
}

// New builds a Pool, clamping threads to at least one the way the
// teacher's SearchConfig.Threads is clamped before use.
func New(threads int, oracle tablebase.Oracle, options search.Options, log zerolog.Logger) *Pool {
	if threads < 1 {
		threads = 1
	}
	if oracle == nil {
		oracle = tablebase.NullOracle{}
	}
	return &Pool{Threads: threads, Oracle: oracle, Options: options, Log: log}
}

// Result is what the protocol layer reads back after a search: the
// best root move across every worker's share plus the aggregate node
// and tablebase-hit counts spec.md §4.5's "bestmove" and periodic
// "info" lines report.
type Result struct {
	Best     *search.RootMove
	Nodes    int64
	TBHits   int64
	SelDepth int
	RootInTB bool
}

// Run is spec.md §4.4's "N goroutines search disjoint shares of the
// root move list, the pool owns the merged output" step. It blocks
// until every worker returns, ctx is cancelled (spec.md §5's "stop"
// command), or a worker finds a mate short enough to satisfy the
// search window — whichever comes first.
func (p *Pool) Run(ctx context.Context, pos *chessboard.Position, limits search.Limits) (Result, error) {
	prepared := search.PrepareRoot(pos, limits, p.Oracle)
	threads := p.Threads
	if threads > len(prepared.Moves) && len(prepared.Moves) > 0 {
		threads = len(prepared.Moves)
	}
	buckets := search.Distribute(prepared.Moves, threads)

	var stop atomic.Bool
	var moveCount [matevalue.MaxPly + 1]atomic.Int64
	workers := make([]*search.Worker, 0, len(buckets))

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-gctx.Done():
			stop.Store(true)
		case <-done:
		}
	}()

	for i, share := range buckets {
		if len(share) == 0 {
			continue
		}
		w := &search.Worker{
			ID:        i,
			Root:      pos,
			RootMoves: share,
			RootInTB:  prepared.RootInTB,
			Limits:    limits,
			Options:   p.Options,
			Oracle:    p.Oracle,
			Stop:      &stop,
			MoveCount: &moveCount,
		}
		workers = append(workers, w)

		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					stop.Store(true)
					err = fmt.Errorf("pool worker %d: %v", w.ID, r)
				}
			}()
			w.Run()
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		p.Log.Error().Err(err).Msg("search worker failed")
	}

	return p.merge(workers), err
}

// merge picks the best RootMove across all workers' shares and sums
// their node/tbHits counters — the "main worker owns the output" half
// of spec.md §4.4, expressed without a designated "main" goroutine
// since every worker's RootMoves already live in prepared.Moves order.
func (p *Pool) merge(workers []*search.Worker) Result {
	var res Result
	var best *search.RootMove

	for _, w := range workers {
		res.Nodes += w.Nodes.Load()
		res.TBHits += w.TBHits.Load()
		if w.SelDepth > res.SelDepth {
			res.SelDepth = w.SelDepth
		}
		if w.RootInTB {
			res.RootInTB = true
		}
		for _, rm := range w.RootMoves {
			if best == nil || rm.Score > best.Score ||
				(rm.Score == best.Score && rm.TBRank > best.TBRank) {
				best = rm
			}
		}
	}

	res.Best = best
	return res
}

// DefaultThreads mirrors the teacher's NumThreads default: one worker
// per logical CPU, since a mate search has no I/O to hide behind
// oversubscription.
func DefaultThreads() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}
