package search

import (
	"github.com/jkorten/matefish/internal/chessboard"
	"github.com/jkorten/matefish/internal/matevalue"
)

// WalkTablebase implements the Tablebase Walker (C7, spec.md §4.7):
// when the root is a basic-mate endgame already won according to the
// oracle, repeatedly ask it to rank the legal moves, play the top
// one, and descend until a mated position is reached. The PV is the
// concatenation of chosen moves; the score is the resulting mate
// distance. Reports false when it could not produce a PV, so the
// caller can fall through to the ordinary iterative-deepening search
// instead of reporting a false "no mate found".
func WalkTablebase(w *Worker) bool {
	pos := w.Root
	pv := make([]chessboard.Move, 0, matevalue.MaxPly)

	for len(pv) < matevalue.MaxPly {
		legal := pos.GenerateLegalMoves()
		if len(legal) == 0 {
			break
		}
		ranked, ok := w.Oracle.RankRoot(pos, legal)
		if !ok || len(ranked) == 0 {
			break
		}

		best := ranked[0]
		for _, rm := range ranked[1:] {
			if rm.Rank > best.Rank {
				best = rm
			}
		}

		next, ok := pos.ApplyMove(best.Move)
		if !ok {
			break
		}
		pv = append(pv, best.Move)
		pos = next

		if len(pos.GenerateLegalMoves()) == 0 {
			break
		}
	}

	if len(pv) == 0 || len(w.RootMoves) == 0 {
		return false
	}

	rm := w.RootMoves[0]
	rm.PV = pv
	rm.Score = matevalue.MateIn(len(pv))
	w.RootInTB = true
	w.Stop.Store(true)
	return true
}
