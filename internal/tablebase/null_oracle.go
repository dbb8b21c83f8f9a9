package tablebase

import "github.com/jkorten/matefish/internal/chessboard"

// NullOracle is the oracle used when no tablebase path is configured
// (SyzygyPath unset): every probe reports "no information", so every
// node is searched normally (spec.md §7 "oracle failure").
type NullOracle struct{}

func (NullOracle) ProbeWDL(*chessboard.Position) (WDL, bool) { return Draw, false }

func (NullOracle) RankRoot(*chessboard.Position, []chessboard.Move) ([]RankedRootMove, bool) {
	return nil, false
}

func (NullOracle) MaxCardinality() int { return 0 }
