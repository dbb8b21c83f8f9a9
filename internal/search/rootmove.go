package search

import (
	"sort"

	"github.com/jkorten/matefish/internal/chessboard"
	"github.com/jkorten/matefish/internal/matevalue"
)

// RootMove is spec.md §3's RootMove record: an ordered PV whose first
// move is the root move, its score, the tablebase rank it was seeded
// with, and the deepest seldepth any iteration reached while
// searching it. Only the owning worker ever mutates one.
type RootMove struct {
	PV       []chessboard.Move
	Score    matevalue.Value
	TBRank   int
	SelDepth int
}

// Move returns the root move itself (PV[0]); RootMove is never
// constructed with an empty PV.
func (r *RootMove) Move() chessboard.Move { return r.PV[0] }

// SortRootMoves orders descending by score, ties broken by tbRank
// descending, per spec.md §3.
func SortRootMoves(moves []*RootMove) {
	sort.SliceStable(moves, func(i, j int) bool {
		if moves[i].Score != moves[j].Score {
			return moves[i].Score > moves[j].Score
		}
		return moves[i].TBRank > moves[j].TBRank
	})
}
