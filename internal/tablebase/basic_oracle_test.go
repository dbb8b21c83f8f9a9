package tablebase

import (
	"testing"

	"github.com/jkorten/matefish/internal/chessboard"
)

func TestDetectSignatureKQK(t *testing.T) {
	pos, err := chessboard.DecodeFEN("4k3/8/3K4/3Q4/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("decode fen: %v", err)
	}
	sig, strong := DetectSignature(pos)
	if sig != SigKQK {
		t.Fatalf("expected SigKQK, got %v", sig)
	}
	if strong != chessboard.White {
		t.Fatalf("expected White as strong side, got %v", strong)
	}
}

func TestBasicOracleProbeWDL(t *testing.T) {
	pos, err := chessboard.DecodeFEN("4k3/8/3K4/3Q4/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("decode fen: %v", err)
	}
	o := NewBasicOracle()
	wdl, ok := o.ProbeWDL(pos)
	if !ok {
		t.Fatalf("expected BasicOracle to recognise KQK")
	}
	if wdl != Win {
		t.Fatalf("expected Win for the side with the queen to move, got %v", wdl)
	}
}

func TestBasicOracleRanksTowardCorner(t *testing.T) {
	pos, err := chessboard.DecodeFEN("4k3/8/3K4/3Q4/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("decode fen: %v", err)
	}
	o := NewBasicOracle()
	moves := pos.GenerateLegalMoves()
	ranked, ok := o.RankRoot(pos, moves)
	if !ok || len(ranked) == 0 {
		t.Fatalf("expected RankRoot to produce ranked moves")
	}
}

func TestNullOracleAlwaysAbstains(t *testing.T) {
	pos := chessboard.NewInitialPosition()
	var o NullOracle
	if _, ok := o.ProbeWDL(pos); ok {
		t.Fatalf("NullOracle must never claim coverage")
	}
	if _, ok := o.RankRoot(pos, nil); ok {
		t.Fatalf("NullOracle must never claim coverage")
	}
}
