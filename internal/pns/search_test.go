package pns

import (
	"sync/atomic"
	"testing"

	"github.com/jkorten/matefish/internal/chessboard"
	"github.com/jkorten/matefish/internal/matevalue"
	"github.com/jkorten/matefish/internal/search"
	"github.com/jkorten/matefish/internal/tablebase"
)

func TestSearchProvesBackRankMateInOne(t *testing.T) {
	pos, err := chessboard.DecodeFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	if err != nil {
		t.Fatalf("decode fen: %v", err)
	}

	var stop atomic.Bool
	s := &Search{
		Root:    pos,
		Limits:  search.Limits{Mate: 1},
		Options: search.DefaultOptions(),
		Oracle:  tablebase.NullOracle{},
		Stop:    &stop,
	}
	s.Run()

	if s.Exhausted {
		t.Fatal("did not expect arena exhaustion on a mate-in-1")
	}
	if len(s.BestPV) == 0 {
		t.Fatal("expected a non-empty proof PV")
	}
	if !matevalue.IsMateScore(s.BestScore) {
		t.Fatalf("expected a mate score, got %v", s.BestScore)
	}
	if uci := chessboard.MoveUCI(s.BestPV[0]); uci != "a1a8" {
		t.Errorf("expected a1a8, got %s", uci)
	}
}

func TestSearchStopsImmediatelyWhenAlreadyStopped(t *testing.T) {
	pos, err := chessboard.DecodeFEN(chessboard.StartposFEN)
	if err != nil {
		t.Fatalf("decode fen: %v", err)
	}

	var stop atomic.Bool
	stop.Store(true)

	s := &Search{
		Root:    pos,
		Limits:  search.Limits{Mate: 3},
		Options: search.DefaultOptions(),
		Oracle:  tablebase.NullOracle{},
		Stop:    &stop,
	}
	s.Run()

	if s.Nodes != 0 {
		t.Errorf("expected no expansion once Stop is already set, got %d nodes", s.Nodes)
	}
	if matevalue.IsMateScore(s.BestScore) {
		t.Fatal("did not expect a mate score from the startpos")
	}
}

func TestSearchDisprovesWhenTargetDepthTooShallow(t *testing.T) {
	pos, err := chessboard.DecodeFEN(chessboard.StartposFEN)
	if err != nil {
		t.Fatalf("decode fen: %v", err)
	}

	var stop atomic.Bool
	s := &Search{
		Root:    pos,
		Limits:  search.Limits{Mate: 1},
		Options: search.DefaultOptions(),
		Oracle:  tablebase.NullOracle{},
		Stop:    &stop,
	}
	s.Run()

	root := s.arena.Get(RootRef)
	if root.DN != 0 {
		t.Fatalf("expected the root to be disproved, got pn=%d dn=%d", root.PN, root.DN)
	}
	if len(s.BestPV) != 0 {
		t.Errorf("expected no proof PV on disproof, got %v", s.BestPV)
	}
}
