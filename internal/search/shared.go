package search

import "github.com/jkorten/matefish/internal/chessboard"

// OnlyBareKing reports whether side has nothing left but its king —
// exported so the PNS engine (C6) can apply the same attacker-bare-
// king terminal rule the α/β search (C5) uses.
func OnlyBareKing(pos *chessboard.Position, side chessboard.Side) bool {
	return onlyBareKing(pos, side)
}

// CountKingMoves counts the side-to-move's legal king moves —
// exported for the same reason as OnlyBareKing.
func CountKingMoves(pos *chessboard.Position) int {
	return countKingMoves(pos)
}
