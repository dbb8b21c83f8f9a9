package search

import "github.com/jkorten/matefish/internal/chessboard"

// squareColor is 0 for a dark square, 1 for a light square, the
// classic (row+col)&1 parity test.
func squareColor(sq int) int {
	return (chessboard.RowOf(sq) + chessboard.ColOf(sq)) & 1
}

// bishopsAllOneColor reports whether every one of side's bishops in
// pos stands on squares of the same color.
func bishopsAllOneColor(pos *chessboard.Position, side chessboard.Side) bool {
	seen := -1
	for sq := 0; sq < chessboard.NumSquares; sq++ {
		pc := pos.Board.Squares[sq]
		if pc == 0 || pc.Side() != side || pc.Type() != chessboard.PieceBishop {
			continue
		}
		c := squareColor(sq)
		if seen == -1 {
			seen = c
		} else if seen != c {
			return false
		}
	}
	return seen != -1
}

// oppositeBishopColors reports whether us's bishops and them's bishops
// occupy disjoint square colors (the "opposite-colored bishops"
// configuration the explosion guard of spec.md §4.3 step 7 checks
// for, since those positions can never actually be mated by the
// bishop pair alone and exploring every bishop shuffle is wasted
// work).
func oppositeBishopColors(pos *chessboard.Position, us, them chessboard.Side) bool {
	if !bishopsAllOneColor(pos, us) || !bishopsAllOneColor(pos, them) {
		return false
	}
	var usColor, themColor int = -1, -1
	for sq := 0; sq < chessboard.NumSquares; sq++ {
		pc := pos.Board.Squares[sq]
		if pc == 0 || pc.Type() != chessboard.PieceBishop {
			continue
		}
		if pc.Side() == us {
			usColor = squareColor(sq)
		} else if pc.Side() == them {
			themColor = squareColor(sq)
		}
	}
	return usColor != -1 && themColor != -1 && usColor != themColor
}
