package search

import (
	"github.com/jkorten/matefish/internal/chessboard"
	"github.com/jkorten/matefish/internal/matevalue"
	"github.com/jkorten/matefish/internal/rank"
	"github.com/jkorten/matefish/internal/tablebase"
)

// PreparedRoot is the Root Preparer's (C4, spec.md §4.2) output: the
// full, sorted root-move list plus whether the tablebase oracle
// covered the position.
type PreparedRoot struct {
	Moves    []*RootMove
	RootInTB bool
}

// PrepareRoot runs spec.md §4.2's five steps: collect, TB-rank (or
// score-and-rank with the king-mobility term), sort, and the caller
// then distributes round-robin via Distribute.
func PrepareRoot(pos *chessboard.Position, limits Limits, oracle tablebase.Oracle) PreparedRoot {
	legal := pos.LegalMovesFiltered(limits.SearchMoves)

	if tbRanked, ok := oracle.RankRoot(pos, legal); ok {
		moves := make([]*RootMove, len(tbRanked))
		for i, rm := range tbRanked {
			moves[i] = &RootMove{
				PV:     []chessboard.Move{rm.Move},
				Score:  matevalue.VMateInMaxPly - 1,
				TBRank: rm.Rank,
			}
		}
		SortRootMoves(moves)
		return PreparedRoot{Moves: moves, RootInTB: true}
	}

	moves := make([]*RootMove, 0, len(legal))
	for _, mv := range legal {
		tbRank := rank.ScoreMove(pos, mv, 0)
		if next, ok := pos.ApplyMove(mv); ok {
			tbRank -= 40 * countKingMoves(next)
		}
		moves = append(moves, &RootMove{
			PV:     []chessboard.Move{mv},
			Score:  matevalue.VMateInMaxPly - 1,
			TBRank: tbRank,
		})
	}
	SortRootMoves(moves)
	return PreparedRoot{Moves: moves, RootInTB: false}
}

// Distribute hands out root moves round-robin across n workers: worker
// i gets items i, i+n, i+2n, ... (spec.md §4.2 step 5).
func Distribute(moves []*RootMove, n int) [][]*RootMove {
	buckets := make([][]*RootMove, n)
	for i, rm := range moves {
		w := i % n
		buckets[w] = append(buckets[w], rm)
	}
	return buckets
}

// countKingMoves counts the side-to-move's legal king moves, the
// "enemy king mobility" term of spec.md §4.2 step 3.
func countKingMoves(pos *chessboard.Position) int {
	n := 0
	for _, mv := range pos.GenerateLegalMoves() {
		if pos.Board.Squares[mv.From].Type() == chessboard.PieceKing {
			n++
		}
	}
	return n
}
