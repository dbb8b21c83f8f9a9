package tablebase

import "github.com/jkorten/matefish/internal/chessboard"

// Signature names one of the basic-mate endgame patterns spec.md
// §4.3's top loop and §4.6's terminal rules check for before
// delegating to the Tablebase Walker or marking a PNS leaf disproven.
type Signature int

const (
	SigNone Signature = iota
	SigKQK
	SigKRK
	SigKBBK
	SigKNNK
	SigKBNK
	SigKNNNK
)

// DetectSignature reports whether pos is one opposing bare king
// against a side holding exactly one of the recognised basic-mate
// material sets (no pawns on either side), and which side holds it.
func DetectSignature(pos *chessboard.Position) (sig Signature, strongSide chessboard.Side) {
	for _, side := range [2]chessboard.Side{chessboard.White, chessboard.Black} {
		other := side.Opposite()
		bareOther := pos.CountPieces(other, chessboard.PieceKnight) == 0 &&
			pos.CountPieces(other, chessboard.PieceBishop) == 0 &&
			pos.CountPieces(other, chessboard.PieceRook) == 0 &&
			pos.CountPieces(other, chessboard.PieceQueen) == 0 &&
			pos.CountPieces(other, chessboard.PiecePawn) == 0
		if !bareOther {
			continue
		}
		if pos.CountPieces(side, chessboard.PiecePawn) != 0 {
			continue
		}
		q := pos.CountPieces(side, chessboard.PieceQueen)
		r := pos.CountPieces(side, chessboard.PieceRook)
		b := pos.CountPieces(side, chessboard.PieceBishop)
		n := pos.CountPieces(side, chessboard.PieceKnight)

		switch {
		case q == 1 && r == 0 && b == 0 && n == 0:
			return SigKQK, side
		case q == 0 && r == 1 && b == 0 && n == 0:
			return SigKRK, side
		case q == 0 && r == 0 && b == 2 && n == 0:
			return SigKBBK, side
		case q == 0 && r == 0 && b == 0 && n == 2:
			return SigKNNK, side
		case q == 0 && r == 0 && b == 1 && n == 1:
			return SigKBNK, side
		case q == 0 && r == 0 && b == 0 && n == 3:
			return SigKNNNK, side
		}
	}
	return SigNone, chessboard.NoSide
}
