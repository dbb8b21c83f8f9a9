package search

import (
	"sync/atomic"
	"testing"

	"github.com/jkorten/matefish/internal/chessboard"
	"github.com/jkorten/matefish/internal/matevalue"
	"github.com/jkorten/matefish/internal/tablebase"
)

func runSingleWorker(t *testing.T, fen string, mate int) *RootMove {
	t.Helper()
	pos, err := chessboard.DecodeFEN(fen)
	if err != nil {
		t.Fatalf("decode fen %q: %v", fen, err)
	}

	limits := Limits{Mate: mate}
	prepared := PrepareRoot(pos, limits, tablebase.NullOracle{})
	buckets := Distribute(prepared.Moves, 1)

	var stop atomic.Bool
	var moveCount [matevalue.MaxPly + 1]atomic.Int64
	w := &Worker{
		Root:      pos,
		RootMoves: buckets[0],
		RootInTB:  prepared.RootInTB,
		Limits:    limits,
		Options:   DefaultOptions(),
		Oracle:    tablebase.NullOracle{},
		Stop:      &stop,
		MoveCount: &moveCount,
	}
	w.Run()

	if len(w.RootMoves) == 0 {
		t.Fatalf("no root moves generated for %q", fen)
	}
	SortRootMoves(w.RootMoves)
	return w.RootMoves[0]
}

func TestWorkerFindsBackRankMateInOne(t *testing.T) {
	best := runSingleWorker(t, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", 1)
	if !matevalue.IsMateScore(best.Score) {
		t.Fatalf("expected a mate score, got %v", best.Score)
	}
	if got := matevalue.MovesToMate(best.Score); got != 1 {
		t.Fatalf("expected mate in 1, got mate in %d", got)
	}
	if uci := chessboard.MoveUCI(best.Move()); uci != "a1a8" {
		t.Errorf("expected a1a8, got %s", uci)
	}
}

func TestWorkerFindsQueenMateInOne(t *testing.T) {
	best := runSingleWorker(t, "4k3/8/3K4/3Q4/8/8/8/8 w - - 0 1", 1)
	if !matevalue.IsMateScore(best.Score) {
		t.Fatalf("expected a mate score, got %v", best.Score)
	}
}

func TestWorkerReportsNoMateFromStartpos(t *testing.T) {
	best := runSingleWorker(t, chessboard.StartposFEN, 3)
	if matevalue.IsMateScore(best.Score) {
		t.Fatalf("start position should have no forced mate in 3, got score %v", best.Score)
	}
}
