package tablebase

import "github.com/jkorten/matefish/internal/chessboard"

// BasicOracle answers probes for the KQK and KRK signatures with the
// classic king-driving technique (push the lone king to an edge or
// corner, keep the kings in opposition, mate along the rim) instead of
// a real tablebase file. KBBK/KNNK/KBNK/KNNNK are recognised by
// DetectSignature but not solved here: ProbeWDL and RankRoot report no
// information (ok=false) for them, so the root is never flagged as in
// the tablebase and the search handles them with ordinary α/β or PNS.
type BasicOracle struct {
	// MaxPieces bounds the cardinality BasicOracle claims to cover;
	// both recognised signatures top out at 3 men.
	MaxPieces int
}

// NewBasicOracle returns a BasicOracle with its natural cardinality.
func NewBasicOracle() *BasicOracle { return &BasicOracle{MaxPieces: 3} }

func (o *BasicOracle) MaxCardinality() int { return o.MaxPieces }

func (o *BasicOracle) ProbeWDL(pos *chessboard.Position) (WDL, bool) {
	sig, strong := DetectSignature(pos)
	if sig != SigKQK && sig != SigKRK {
		return Draw, false
	}
	if pos.SideToMove == strong {
		return Win, true
	}
	return Loss, true
}

// RankRoot ranks moves for the strong side by how much they compress
// the lone king's box and bring the kings toward opposition, and ranks
// the weak side's moves by how much room they retain — the two halves
// of the standard corner-driving technique.
func (o *BasicOracle) RankRoot(pos *chessboard.Position, moves []chessboard.Move) ([]RankedRootMove, bool) {
	sig, strong := DetectSignature(pos)
	if sig != SigKQK && sig != SigKRK {
		return nil, false
	}

	weak := strong.Opposite()
	out := make([]RankedRootMove, 0, len(moves))
	if pos.SideToMove == strong {
		for _, mv := range moves {
			next, ok := pos.ApplyMove(mv)
			if !ok {
				continue
			}
			rank := 0
			if next.IsInCheck(weak) {
				rank += 500
			}
			rank -= 40 * boxSize(next.KingSquare(weak))
			rank -= 10 * chessboard.Chebyshev(next.KingSquare(strong), next.KingSquare(weak))
			out = append(out, RankedRootMove{Move: mv, Rank: rank})
		}
	} else {
		for _, mv := range moves {
			next, ok := pos.ApplyMove(mv)
			if !ok {
				continue
			}
			rank := 40 * boxSize(next.KingSquare(weak))
			out = append(out, RankedRootMove{Move: mv, Rank: rank})
		}
	}
	return out, true
}

// boxSize approximates how much room the lone king still has, via its
// Chebyshev distance to the nearest board edge: 0 means pinned to the
// rim, larger means more central and harder to mate.
func boxSize(kingSq int) int {
	row, col := chessboard.RowOf(kingSq), chessboard.ColOf(kingSq)
	edge := func(v int) int {
		d := v
		if chessboard.Rows-1-v < d {
			d = chessboard.Rows - 1 - v
		}
		return d
	}
	rowDist := edge(row)
	colDist := col
	if chessboard.Cols-1-col < colDist {
		colDist = chessboard.Cols - 1 - col
	}
	if rowDist < colDist {
		return rowDist
	}
	return colDist
}
