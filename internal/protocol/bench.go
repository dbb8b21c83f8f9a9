package protocol

import (
	"context"
	"runtime"
	"time"

	"github.com/jkorten/matefish/internal/chessboard"
	"github.com/jkorten/matefish/internal/pool"
	"github.com/jkorten/matefish/internal/search"
)

// benchPositions is a fixed suite of mate-in-N FENs, the node-count/
// nps sanity check original_source/src/uci.cpp's bench() runs and the
// teacher's cmd/selfplay benchmark loop reports the timing for.
var benchPositions = []struct {
	fen  string
	mate int
}{
	{"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", 1},
	{"4k3/8/3K4/3Q4/8/8/8/8 w - - 0 1", 1},
	{"4k3/8/3K4/8/8/8/8/7R w - - 0 1", 3},
	{chessboard.StartposFEN, 2},
}

// handleBench runs the fixed suite through the α/β pool and reports
// aggregate nodes/time/nps, mirroring bench()'s summary line.
func (s *Session) handleBench() {
	start := time.Now()
	var totalNodes int64

	for i, b := range benchPositions {
		pos, err := chessboard.DecodeFEN(b.fen)
		if err != nil {
			s.printf("info string bench position %d: %v", i+1, err)
			continue
		}
		limits := search.Limits{Mate: b.mate, StartTime: time.Now()}
		p := pool.New(s.Options.Threads, s.oracle(), search.Options{KingMoves: s.Options.KingMoves, AllMoves: s.Options.AllMoves}, s.Log)
		res, err := p.Run(context.Background(), pos, limits)
		if err != nil {
			s.printf("info string bench position %d: %v", i+1, err)
			continue
		}
		totalNodes += res.Nodes
		s.printf("Position: %d/%d", i+1, len(benchPositions))
	}

	elapsed := time.Since(start)
	ms := elapsed.Milliseconds()
	if ms <= 0 {
		ms = 1
	}
	s.println("===========================")
	s.printf("Total time (ms) : %d", ms)
	s.printf("Nodes searched  : %d", totalNodes)
	s.printf("Nodes/second    : %d", totalNodes*1000/ms)
}

// compilerInfo reports the Go toolchain version the binary was built
// with, the Go analogue of uci.cpp's compiler_info().
func compilerInfo() string {
	return "Go " + runtime.Version() + " " + runtime.GOOS + "/" + runtime.GOARCH
}
