// Package tablebase implements the Tablebase Oracle (spec.md §6, C2):
// an external collaborator specified only by its interface. There is
// no real Syzygy file format parser here — per SPEC_FULL.md's Domain
// Stack decision, NullOracle always reports "no information" and
// BasicOracle recognises the small set of basic-mate material
// signatures spec.md §4.3/§4.6 name (KQK, KRK) and solves them
// directly with classic king-driving technique, good enough to
// exercise the Root Preparer's and Tablebase Walker's oracle contract
// without shipping gigabytes of endgame data.
package tablebase

import "github.com/jkorten/matefish/internal/chessboard"

// WDL is the win/draw/loss verdict for the side to move, from a real
// Syzygy table's point of view (cursed/blessed variants collapse to
// plain Win/Draw/Loss here — this oracle never returns them).
type WDL int

const (
	Loss WDL = -2
	Draw WDL = 0
	Win  WDL = 2
)

// RankedRootMove is a root move annotated with a DTZ-derived rank, the
// shape the Root Preparer (§4.2 step 2) consumes.
type RankedRootMove struct {
	Move chessboard.Move
	Rank int
}

// Oracle is the contract spec.md §6 describes for the tablebase
// collaborator: probe WDL, rank root moves by distance-to-zero, and
// report the cardinality it can serve.
type Oracle interface {
	// ProbeWDL reports the win/draw/loss verdict for pos from the side
	// to move's perspective. ok is false when the oracle has no
	// information (wrong cardinality, no file loaded, recognised
	// pattern not covered) — spec.md §7 treats that as "no information,
	// search normally".
	ProbeWDL(pos *chessboard.Position) (result WDL, ok bool)

	// RankRoot ranks moves by DTZ (spec.md §4.2 step 2). ok is false
	// when the root isn't covered, in which case the caller falls back
	// to the Move Ranker's own scoring plus the king-mobility term.
	RankRoot(pos *chessboard.Position, moves []chessboard.Move) (ranked []RankedRootMove, ok bool)

	// MaxCardinality is the largest total piece count this oracle can
	// probe; positions with more pieces are never queried (spec.md
	// §4.3 step 6: "if piece count <= TB max cardinality").
	MaxCardinality() int
}
