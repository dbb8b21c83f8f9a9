package rank

import "github.com/jkorten/matefish/internal/chessboard"

// kingRingSquares returns the squares the defending king could step
// to, the set spec.md §4.1's per-piece-type "future check" popcount
// bonuses weigh against.
func kingRingSquares(kingSq int) []int {
	return chessboard.KingRing(kingSq)
}

// chebyshevDistance is the king-move distance between two squares,
// used by the king-approach and own-king-ray bonuses.
func chebyshevDistance(a, b int) int {
	return chessboard.Chebyshev(a, b)
}

// aligned reports whether checkerSq, kingSq and to share a rank, file
// or diagonal — the defender's interposition bonus fires only for a
// move that actually blocks the checking ray.
func aligned(checkerSq, kingSq, to int) bool {
	return chessboard.Aligned(checkerSq, kingSq, to)
}

// pseudoAttacksContain reports whether a hypothetical piece of type pt
// standing on from attacks to, ignoring board occupancy — the
// board-independent ray test spec.md §4.1 uses for slider pin and
// own-king-ray bonuses.
func pseudoAttacksContain(pt chessboard.PieceType, from, to int) bool {
	switch pt {
	case chessboard.PieceBishop:
		return chessboard.OnBishopRay(from, to)
	case chessboard.PieceRook:
		return chessboard.OnRookRay(from, to)
	case chessboard.PieceQueen:
		return chessboard.OnBishopRay(from, to) || chessboard.OnRookRay(from, to)
	default:
		return false
	}
}

// findChecker locates the single piece currently giving check to us,
// or -1 if none (or more than one — a double check has no single
// interposition/capture square to rank, so the defender bonuses are
// simply skipped).
func findChecker(pos *chessboard.Position, us chessboard.Side) int {
	kingSq := pos.KingSquare(us)
	them := us.Opposite()
	found := -1
	for sq := 0; sq < chessboard.NumSquares; sq++ {
		pc := pos.Board.Squares[sq]
		if pc == 0 || pc.Side() != them {
			continue
		}
		if pos.AttacksFromSquare(sq, kingSq) {
			if found >= 0 {
				return -1
			}
			found = sq
		}
	}
	return found
}

// isAdvancedPawnPush reports whether mv pushes a pawn to the rank
// immediately before promotion, mirroring Stockfish's
// advanced_pawn_push used by spec.md §4.1's attacker pawn-push bonus.
func isAdvancedPawnPush(us chessboard.Side, movedType chessboard.PieceType, mv chessboard.Move) bool {
	if movedType != chessboard.PiecePawn {
		return false
	}
	row := chessboard.RowOf(mv.To)
	if us == chessboard.White {
		return row == 6
	}
	return row == 1
}

// freesPromotionSquare reports whether the piece leaving fromSq was
// standing on a square directly in front of one of our own pawns on
// its seventh rank, i.e. the move clears that pawn's path to promote.
func freesPromotionSquare(pos *chessboard.Position, us chessboard.Side, fromSq int) bool {
	row := chessboard.RowOf(fromSq)
	col := chessboard.ColOf(fromSq)
	var behindRow int
	if us == chessboard.White {
		behindRow = row - 1
		if behindRow != 6 {
			return false
		}
	} else {
		behindRow = row + 1
		if behindRow != 1 {
			return false
		}
	}
	if !chessboard.OnBoard(behindRow, col) {
		return false
	}
	pc := pos.Board.Squares[chessboard.Index(behindRow, col)]
	return pc != 0 && pc.Side() == us && pc.Type() == chessboard.PiecePawn
}

// ReachesCheckSquare reports whether mv lands a piece somewhere that
// threatens a checking square next move — the same "future check"
// test ScoreMove's quiet bonuses use, exported so the α/β search can
// reuse it for its capture/promotion/"reaches a checking square"
// extension condition (spec.md §4.3 step 7) without recomputing the
// rule twice.
func ReachesCheckSquare(pos *chessboard.Position, mv chessboard.Move) bool {
	us := pos.SideToMove
	them := us.Opposite()
	movedType := pos.Board.Squares[mv.From].Type()
	switch movedType {
	case chessboard.PieceKnight, chessboard.PieceQueen, chessboard.PieceRook, chessboard.PieceBishop:
		return attacksCheckSquare(pos, them, movedType, mv.To)
	default:
		return false
	}
}

// attacksCheckSquare reports whether a piece of type pt, having just
// landed on to, now attacks one of the squares from which it could
// give check to them's king on the next move — spec.md §4.1's
// "future check" potential, not an immediate check.
func attacksCheckSquare(pos *chessboard.Position, them chessboard.Side, pt chessboard.PieceType, to int) bool {
	kingSq := pos.KingSquare(them)
	targets := chessboard.CheckSquares(pos, pt, kingSq)
	return chessboard.AttacksAnyOf(pos, pt, to, targets)
}

// popcountPseudoAttacks counts how many squares in kingRing a
// hypothetical piece of type pt on square to would attack, ignoring
// occupancy — the per-piece-type king-ring pressure bonus.
func popcountPseudoAttacks(pt chessboard.PieceType, to int, kingRing []int) int {
	count := 0
	for _, sq := range kingRing {
		if pseudoAttacksContain(pt, to, sq) {
			count++
		}
	}
	if pt == chessboard.PieceKnight {
		count = 0
		for _, sq := range kingRing {
			for _, h := range chessboard.KnightHops(to) {
				if h == sq {
					count++
					break
				}
			}
		}
	}
	return count
}
