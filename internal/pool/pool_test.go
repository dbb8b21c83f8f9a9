package pool

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jkorten/matefish/internal/chessboard"
	"github.com/jkorten/matefish/internal/matevalue"
	"github.com/jkorten/matefish/internal/search"
	"github.com/jkorten/matefish/internal/tablebase"
)

func TestPoolFindsBackRankMateInOne(t *testing.T) {
	pos, err := chessboard.DecodeFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	if err != nil {
		t.Fatalf("decode fen: %v", err)
	}

	p := New(2, tablebase.NullOracle{}, search.DefaultOptions(), zerolog.Nop())
	res, err := p.Run(context.Background(), pos, search.Limits{Mate: 1})
	if err != nil {
		t.Fatalf("pool run: %v", err)
	}
	if res.Best == nil {
		t.Fatal("expected a best root move")
	}
	if !matevalue.IsMateScore(res.Best.Score) {
		t.Fatalf("expected a mate score, got %v", res.Best.Score)
	}
	if uci := chessboard.MoveUCI(res.Best.Move()); uci != "a1a8" {
		t.Errorf("expected a1a8, got %s", uci)
	}
}

func TestPoolStopCancelsWorkers(t *testing.T) {
	pos, err := chessboard.DecodeFEN(chessboard.StartposFEN)
	if err != nil {
		t.Fatalf("decode fen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(DefaultThreads(), tablebase.NullOracle{}, search.DefaultOptions(), zerolog.Nop())
	res, err := p.Run(ctx, pos, search.Limits{Mate: 9})
	if err != nil {
		t.Fatalf("pool run: %v", err)
	}
	if matevalue.IsMateScore(res.Best.Score) {
		t.Fatalf("cancelled search should not report a mate, got %v", res.Best.Score)
	}
}
