package chessboard

// This file exposes the small set of board-geometry primitives the
// move ranker (internal/rank) needs to reproduce spec.md §4.1's
// "future check" and king-ring bonuses: distances, alignment, and
// attack-square sets for a hypothetical piece, independent of who
// actually occupies the square.

func RowOf(sq int) int { return rowOf(sq) }
func ColOf(sq int) int { return colOf(sq) }
func Index(row, col int) int { return indexOf(row, col) }
func OnBoard(row, col int) bool { return onBoard(row, col) }

// Chebyshev is the king-move distance between two squares.
func Chebyshev(a, b int) int { return chebyshev(a, b) }

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func lineDir(a, b int) (dr, dc int, ok bool) {
	dr0 := rowOf(b) - rowOf(a)
	dc0 := colOf(b) - colOf(a)
	if dr0 == 0 && dc0 == 0 {
		return 0, 0, false
	}
	if dr0 == 0 || dc0 == 0 || dr0 == dc0 || dr0 == -dc0 {
		return sign(dr0), sign(dc0), true
	}
	return 0, 0, false
}

// Aligned reports whether a, b and c lie on a common rank, file or
// diagonal, mirroring Stockfish's aligned(s1, s2, s3) used by the
// interposition bonus in spec.md §4.1.
func Aligned(a, b, c int) bool {
	dr1, dc1, ok1 := lineDir(a, b)
	if !ok1 {
		return false
	}
	dr2, dc2, ok2 := lineDir(a, c)
	if !ok2 {
		return false
	}
	return (dr1 == dr2 && dc1 == dc2) || (dr1 == -dr2 && dc1 == -dc2)
}

// OnBishopRay/OnRookRay report whether b lies on a diagonal/straight
// line through a, the board-independent "PseudoAttacks[BISHOP/ROOK][a]
// & b" test spec.md §4.1 uses for the pin/attack-on-enemy-king bonus.
func OnBishopRay(a, b int) bool {
	if a == b {
		return false
	}
	dr := rowOf(b) - rowOf(a)
	dc := colOf(b) - colOf(a)
	return dr == dc || dr == -dc
}

func OnRookRay(a, b int) bool {
	if a == b {
		return false
	}
	return rowOf(a) == rowOf(b) || colOf(a) == colOf(b)
}

// KingRing returns the up-to-8 squares a king on kingSq could step to,
// the "kingRing" bitboard of spec.md §4.1.
func KingRing(kingSq int) []int {
	if kingSq < 0 {
		return nil
	}
	row, col := rowOf(kingSq), colOf(kingSq)
	out := make([]int, 0, 8)
	for _, d := range kingOffsets {
		r, c := row+d[0], col+d[1]
		if onBoard(r, c) {
			out = append(out, indexOf(r, c))
		}
	}
	return out
}

// KnightHops returns the squares a knight on sq pseudo-attacks.
func KnightHops(sq int) []int {
	row, col := rowOf(sq), colOf(sq)
	out := make([]int, 0, 8)
	for _, d := range knightOffsets {
		r, c := row+d[0], col+d[1]
		if onBoard(r, c) {
			out = append(out, indexOf(r, c))
		}
	}
	return out
}

// SlidingAttackSquares returns the squares attacked by a hypothetical
// slider of the given geometry (rook-like or bishop-like directions)
// standing on from, against the actual occupancy of pos — stopping at,
// and including, the first occupied square in each direction. Used to
// compute "check squares" (spec.md §4.1's "future check" bonuses)
// without caring which color occupies the blocking square.
func SlidingAttackSquares(pos *Position, from int, dirs [4][2]int) []int {
	row, col := rowOf(from), colOf(from)
	var out []int
	for _, d := range dirs {
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			to := indexOf(r, c)
			out = append(out, to)
			if pos.Board.Squares[to] != 0 {
				break
			}
			r += d[0]
			c += d[1]
		}
	}
	return out
}

// CheckSquares returns the squares from which a hypothetical piece of
// type pt (friendly to attacker) would give check to the king on
// kingSq, given pos's current occupancy.
func CheckSquares(pos *Position, pt PieceType, kingSq int) []int {
	switch pt {
	case PieceKnight:
		return KnightHops(kingSq)
	case PieceBishop:
		return SlidingAttackSquares(pos, kingSq, bishopDirs)
	case PieceRook:
		return SlidingAttackSquares(pos, kingSq, rookDirs)
	case PieceQueen:
		out := SlidingAttackSquares(pos, kingSq, bishopDirs)
		return append(out, SlidingAttackSquares(pos, kingSq, rookDirs)...)
	default:
		return nil
	}
}

// AttacksAnyOf reports whether a hypothetical piece of type pt on
// square from attacks any square in targets, given pos's occupancy —
// the "attacks_from<PT>(to) & check_squares(PT)" test of spec.md §4.1.
func AttacksAnyOf(pos *Position, pt PieceType, from int, targets []int) bool {
	if len(targets) == 0 {
		return false
	}
	var attacked []int
	switch pt {
	case PieceKnight:
		attacked = KnightHops(from)
	case PieceBishop:
		attacked = SlidingAttackSquares(pos, from, bishopDirs)
	case PieceRook:
		attacked = SlidingAttackSquares(pos, from, rookDirs)
	case PieceQueen:
		attacked = SlidingAttackSquares(pos, from, bishopDirs)
		attacked = append(attacked, SlidingAttackSquares(pos, from, rookDirs)...)
	default:
		return false
	}
	for _, a := range attacked {
		for _, t := range targets {
			if a == t {
				return true
			}
		}
	}
	return false
}
