// Package rank implements the Move Ranker (spec.md §4.1, C3): an
// additive, integer scoring function over legal moves whose only
// purpose is to order a mate search's branches, never to evaluate a
// position. It is grounded on the teacher's scoreVCFMoves in
// internal/engine/vcf.go — a much smaller additive ranker for the
// same purpose (order moves for a forced-mate search) — generalized
// to the full rule set spec.md §4.1 requires for standard chess.
package rank

import (
	"sort"

	"github.com/jkorten/matefish/internal/chessboard"
)

// MVV is indexed by chessboard.PieceType; index 0 (PieceNone) and the
// king entry are unused placeholders, kept so the table reads the way
// spec.md §4.1 states it: "MVV = {_, 100, 300, 305, 500, 900}" indexed
// by pawn/knight/bishop/rook/queen.
var MVV = [7]int{0, 100, 300, 305, 500, 900, 0}

const (
	RankCheck      = 8000
	RankCheckNoisy = 6000
)

// RankedMove pairs a move with its integer rank (spec.md §3).
type RankedMove struct {
	Move chessboard.Move
	Rank int
}

// ScoreAndRank scores every legal move of pos and returns them sorted
// descending by rank — the same rule set root preparation uses to
// rank non-tablebase root moves, so ply-level and root-level ordering
// agree (spec.md §4.1: "applied so that per-ply ordering matches root
// ordering").
func ScoreAndRank(pos *chessboard.Position, ply int) []RankedMove {
	legal := pos.GenerateLegalMoves()
	out := make([]RankedMove, len(legal))
	for i, mv := range legal {
		out[i] = RankedMove{Move: mv, Rank: ScoreMove(pos, mv, ply)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank > out[j].Rank })
	return out
}

// ScoreMove computes the rank of a single legal move mv at ply,
// implementing spec.md §4.1's additive rule set verbatim, including
// its magic constants.
func ScoreMove(pos *chessboard.Position, mv chessboard.Move, ply int) int {
	us := pos.SideToMove
	them := us.Opposite()
	movedPiece := pos.Board.Squares[mv.From]
	movedType := movedPiece.Type()
	target := pos.Board.Squares[mv.To]
	isCapture := target != 0 || mv.Flag == chessboard.FlagEnPassant

	next, ok := pos.ApplyMove(mv)
	givesCheck := ok && next.IsInCheck(them)

	rankVal := 0
	if givesCheck {
		rankVal += RankCheck
	}
	if isCapture {
		capturedType := target.Type()
		if mv.Flag == chessboard.FlagEnPassant {
			capturedType = chessboard.PiecePawn
		}
		rankVal += MVV[capturedType]
	}

	theirKing := pos.KingSquare(them)
	ourKing := pos.KingSquare(us)
	kingRing := kingRingSquares(theirKing)

	attackerPly := ply%2 == 0

	if !attackerPly {
		// Defender to move (spec.md: "ply odd").
		inCheck := pos.IsInCheck(us)
		if inCheck {
			checkerSq := findChecker(pos, us)
			if isCapture && mv.To == checkerSq {
				rankVal += 1000
			} else if movedType != chessboard.PieceKing && checkerSq >= 0 && aligned(checkerSq, ourKing, mv.To) {
				rankVal += 400
			}
		}
		if rankVal < 6000 {
			switch movedType {
			case chessboard.PieceBishop:
				if pseudoAttacksContain(chessboard.PieceBishop, theirKing, mv.To) {
					rankVal += 200
				}
			case chessboard.PieceRook:
				if pseudoAttacksContain(chessboard.PieceRook, theirKing, mv.To) {
					rankVal += 300
				}
			case chessboard.PieceQueen:
				if pseudoAttacksContain(chessboard.PieceQueen, theirKing, mv.To) {
					rankVal += 350
				}
			}
		}
		return rankVal
	}

	// Attacker to move (spec.md: "ply even").
	if rankVal >= RankCheckNoisy {
		switch movedType {
		case chessboard.PieceKnight:
			rankVal += 400
		case chessboard.PieceQueen, chessboard.PieceRook:
			if chebyshevDistance(theirKing, mv.To) == 1 {
				rankVal += 500
			}
		}

		if ok {
			replies := next.GenerateLegalMoves()
			if len(replies) == 0 {
				rankVal += 4096
			} else {
				rankVal -= 8 * len(replies)
			}
		}
	}

	if isAdvancedPawnPush(us, movedType, mv) {
		rankVal += 1000
	}

	if movedType == chessboard.PieceKing && pos.CountPieces(us, chessboard.PieceQueen) == 0 && pos.CountPieces(us, chessboard.PieceRook) <= 1 {
		rankVal += 480 - 20*chebyshevDistance(mv.To, theirKing)
	}

	if freesPromotionSquare(pos, us, mv.From) {
		rankVal += 500
	}

	switch movedType {
	case chessboard.PieceKnight:
		if pos.AttacksFromSquare(mv.To, pos.KingSquare(them)) || attacksCheckSquare(pos, them, chessboard.PieceKnight, mv.To) {
			rankVal += 600
		}
		rankVal += 256 * popcountPseudoAttacks(chessboard.PieceKnight, mv.To, kingRing)
	case chessboard.PieceQueen:
		if attacksCheckSquare(pos, them, chessboard.PieceQueen, mv.To) {
			rankVal += 500
		}
		rankVal += 128 * popcountPseudoAttacks(chessboard.PieceQueen, mv.To, kingRing)
	case chessboard.PieceRook:
		if attacksCheckSquare(pos, them, chessboard.PieceRook, mv.To) {
			rankVal += 400
		}
		rankVal += 96 * popcountPseudoAttacks(chessboard.PieceRook, mv.To, kingRing)
	case chessboard.PieceBishop:
		if attacksCheckSquare(pos, them, chessboard.PieceBishop, mv.To) {
			rankVal += 300
		}
		rankVal += 64 * popcountPseudoAttacks(chessboard.PieceBishop, mv.To, kingRing)
	}

	if pseudoAttacksContain(chessboard.PieceBishop, ourKing, mv.To) {
		rankVal += 128 - 32*chebyshevDistance(ourKing, mv.To)
	}
	if pseudoAttacksContain(chessboard.PieceRook, ourKing, mv.To) {
		rankVal += 128 - 32*chebyshevDistance(ourKing, mv.To)
	}

	return rankVal
}
