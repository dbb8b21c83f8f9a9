package search

import (
	"sync/atomic"

	"github.com/jkorten/matefish/internal/chessboard"
	"github.com/jkorten/matefish/internal/matevalue"
	"github.com/jkorten/matefish/internal/rank"
	"github.com/jkorten/matefish/internal/tablebase"
)

// Options carries the subset of spec.md §6's option table the search
// itself consumes, copied out of the protocol layer's options on every
// "go" (spec.md §9: "global mutable singletons ... package as explicit
// configuration structs").
type Options struct {
	KingMoves int // 1..8, defender king-mobility cap
	AllMoves  int // 1..250, defender total-mobility cap
}

// DefaultOptions returns the caps in their disabled position (spec.md
// §8 boundary: "kingMoves=8, allMoves=250: caps effectively disabled").
func DefaultOptions() Options { return Options{KingMoves: 8, AllMoves: 250} }

// Worker is one pool member's search state (spec.md §3 "Workers"):
// its own root position, its share of root moves, depth counters and
// atomic node/tbHits counters. Only the owning goroutine ever mutates
// RootDepth/TargetDepth/FullDepth/SelDepth or RootMoves' contents.
type Worker struct {
	ID        int
	Root      *chessboard.Position
	RootMoves []*RootMove
	RootInTB  bool
	Limits    Limits
	Options   Options
	Oracle    tablebase.Oracle
	Stop      *atomic.Bool
	Nodes     atomic.Int64
	TBHits    atomic.Int64
	MoveCount *[matevalue.MaxPly + 1]atomic.Int64

	RootDepth   int
	TargetDepth int
	FullDepth   int
	SelDepth    int

	stack *Stack
}

// IsBasicMateEndgame reports whether sig names one of spec.md §4.3's
// delegation-worthy basic endgames.
func IsBasicMateEndgame(sig tablebase.Signature) bool {
	switch sig {
	case tablebase.SigKRK, tablebase.SigKQK, tablebase.SigKBBK,
		tablebase.SigKNNK, tablebase.SigKBNK, tablebase.SigKNNNK:
		return true
	default:
		return false
	}
}

// Run executes spec.md §4.3's top loop: delegate to the Tablebase
// Walker when the root is a basic-mate endgame already deep in the
// tablebase's favour, else iterative-deepen the recursive search over
// this worker's share of root moves.
func (w *Worker) Run() {
	if len(w.RootMoves) == 0 {
		return
	}

	sig, strong := tablebase.DetectSignature(w.Root)
	if w.RootInTB && IsBasicMateEndgame(sig) && strong == w.Root.SideToMove && w.RootMoves[0].TBRank > 900 {
		if WalkTablebase(w) {
			return
		}
	}

	w.TargetDepth = w.Limits.TargetDepth()
	w.FullDepth = w.Limits.FullDepth()
	w.stack = NewStack(w.Root)

	alpha := w.Limits.Alpha()
	beta := matevalue.VInfinite
	bestValue := matevalue.VMateInMaxPly - 1

	for rootDepth := 1; rootDepth <= w.TargetDepth; rootDepth += 2 {
		w.RootDepth = rootDepth
		if w.MoveCount != nil {
			w.MoveCount[rootDepth].Store(0)
		}

		for _, rm := range w.RootMoves {
			if w.Stop.Load() || w.Limits.TimeUp() {
				return
			}
			if rootFilterSkip(rm, rootDepth, w.TargetDepth, w.RootInTB) {
				continue
			}
			if w.MoveCount != nil {
				w.MoveCount[rootDepth].Add(1)
			}

			next, ok := w.Root.ApplyMove(rm.Move())
			if !ok {
				continue
			}
			w.stack[1].Pos = next
			w.stack[1].PV = nil

			value := -w.search(-beta, -alpha, rootDepth-1, 1)

			if value > rm.Score {
				rm.Score = value
				rm.SelDepth = w.SelDepth
				rm.PV = append([]chessboard.Move{rm.Move()}, w.stack[1].PV...)
			}
			if value > bestValue {
				bestValue = value
			}
			if bestValue >= alpha {
				w.Stop.Store(true)
				return
			}
		}
	}
}

// rootFilterSkip implements spec.md §4.3's root-filter schedule table.
func rootFilterSkip(rm *RootMove, rootDepth, targetDepth int, rootInTB bool) bool {
	if rootInTB {
		return rm.TBRank <= 0
	}
	if rootDepth == 1 && rm.TBRank < 5000 {
		return true
	}
	return iterationBandSkip(rootDepth, targetDepth, rm.TBRank)
}

// iterationBandSkip is the three-rung iteration-band cutoff shared by
// the root-filter schedule and the in-search "attacker low-iteration
// skip" (spec.md §4.3 step 7).
func iterationBandSkip(rootDepth, targetDepth, val int) bool {
	if targetDepth <= 7 {
		return false
	}
	if rootDepth < targetDepth-4 && val < 8000 {
		return true
	}
	if rootDepth < targetDepth-2 && val < 4000 {
		return true
	}
	if rootDepth < targetDepth && val < 0 {
		return true
	}
	return false
}

// search is spec.md §4.3's recursive search(alpha, beta, depth) at
// stack ply, negamax convention: the return value is always from the
// side-to-move-at-ply's point of view.
func (w *Worker) search(alpha, beta matevalue.Value, depth, ply int) matevalue.Value {
	w.Nodes.Add(1)
	if ply > w.SelDepth {
		w.SelDepth = ply
	}

	if w.Stop.Load() || ply == matevalue.MaxPly {
		return 0
	}

	pos := w.stack[ply].Pos
	us := pos.SideToMove
	them := us.Opposite()
	attackerPly := ply%2 == 0
	inCheck := pos.IsInCheck(us)

	if depth == 0 {
		if inCheck && len(pos.GenerateLegalMoves()) == 0 {
			return matevalue.MatedIn(ply)
		}
		return matevalue.VDraw
	}

	if !attackerPly {
		if w.Options.KingMoves < 8 && countKingMoves(pos) > w.Options.KingMoves {
			return matevalue.VDraw
		}
		if w.Options.AllMoves < 250 && len(pos.GenerateLegalMoves()) > w.Options.AllMoves {
			return matevalue.VDraw
		}
	} else if onlyBareKing(pos, us) {
		return matevalue.VDraw
	}

	if pos.HalfmoveClock >= 100 || w.hasRepetition(ply) {
		return matevalue.VDraw
	}

	if pos.TotalPieces() <= w.Oracle.MaxCardinality() && !pos.HasCastlingRights() {
		if wdl, ok := w.Oracle.ProbeWDL(pos); ok {
			w.TBHits.Add(1)
			if !attackerPly && wdl != tablebase.Loss {
				return matevalue.VDraw
			}
			if attackerPly && wdl != tablebase.Win {
				return matevalue.VDraw
			}
		}
	}

	ranked := rank.ScoreAndRank(pos, ply)
	if len(ranked) == 0 {
		if inCheck {
			return matevalue.MatedIn(ply)
		}
		return matevalue.VDraw
	}

	bestValue := matevalue.Value(0)
	anyTried := false
	extensionUsed := false
	triedCount := 0

	for _, rm := range ranked {
		mv := rm.Move
		val := rm.Rank

		if !attackerPly && depth > 1 && triedCount >= 5 {
			if mv.Promotion == chessboard.PieceNone && pos.Board.Squares[mv.From].Type() == chessboard.PieceBishop &&
				pos.CountPieces(us, chessboard.PieceBishop) > 3 &&
				oppositeBishopColors(pos, us, them) {
				continue
			}
		}

		if attackerPly && depth > 1 && w.TargetDepth >= 7 && triedCount > 0 {
			if iterationBandSkip(w.RootDepth, w.TargetDepth, val) {
				continue
			}
		}

		extend := 0
		if !extensionUsed && depth == 1 && w.RootDepth < w.TargetDepth && ply < w.TargetDepth-1 {
			if val >= rank.RankCheckNoisy {
				extend = 1
			} else if w.RootDepth >= w.FullDepth {
				isCapture := pos.Board.Squares[mv.To] != 0 || mv.Flag == chessboard.FlagEnPassant
				isPromo := mv.Promotion != chessboard.PieceNone
				if isCapture || isPromo || rank.ReachesCheckSquare(pos, mv) {
					extend = 1
				}
			}
		}

		if depth == 1 && extend == 0 && val < rank.RankCheckNoisy {
			continue
		}

		next, ok := pos.ApplyMove(mv)
		if !ok {
			continue
		}
		triedCount++

		w.stack[ply+1].Pos = next
		w.stack[ply+1].PV = nil

		value := -w.search(-beta, -alpha, depth-1+2*extend, ply+1)
		if extend != 0 {
			extensionUsed = true
		}

		if value >= beta {
			return value
		}
		if !anyTried || value > bestValue {
			bestValue = value
			anyTried = true
			w.stack[ply].PV = append([]chessboard.Move{mv}, w.stack[ply+1].PV...)
			if value > alpha {
				alpha = value
			}
		}
		if bestValue > matevalue.VMate-matevalue.Value(2*w.Limits.Mate) {
			break
		}
	}

	if !anyTried {
		if inCheck {
			return matevalue.MatedIn(ply)
		}
		return matevalue.VDraw
	}
	return bestValue
}

// onlyBareKing reports whether side has nothing left but its king.
func onlyBareKing(pos *chessboard.Position, side chessboard.Side) bool {
	for pt := chessboard.PiecePawn; pt <= chessboard.PieceQueen; pt++ {
		if pos.CountPieces(side, pt) > 0 {
			return false
		}
	}
	return true
}

// hasRepetition reports whether the position at ply already occurred
// earlier on this search path at a ply of the same parity — a
// simplified, path-local repetition test (no game history is carried
// into the search), adequate to stop the mate solver cycling forever
// in a drawn sub-line.
func (w *Worker) hasRepetition(ply int) bool {
	cur := w.stack[ply].Pos
	for p := ply - 2; p >= 0; p -= 2 {
		if w.stack[p].Pos != nil && w.stack[p].Pos.Hash == cur.Hash {
			return true
		}
	}
	return false
}
