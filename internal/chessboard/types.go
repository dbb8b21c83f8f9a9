// Package chessboard implements the move oracle: board representation,
// legal move generation, make/unmake, attack queries and Zobrist
// hashing for standard chess. It plays the role the teacher's
// xionghan package plays for its 13x13 variant, re-expressed for an
// 8x8 board with castling, en passant and promotion.
package chessboard

// Side identifies which player is to move or owns a piece.
type Side int8

const (
	NoSide Side = -1
	White  Side = 0
	Black  Side = 1
)

func (s Side) Opposite() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoSide
	}
}

// PieceType is the kind of chessman, independent of color.
type PieceType int8

const (
	PieceNone PieceType = iota
	PiecePawn
	PieceKnight
	PieceBishop
	PieceRook
	PieceQueen
	PieceKing
)

// Piece packs a Side and a PieceType into a single signed byte:
// positive is White, negative is Black, magnitude is the PieceType.
type Piece int8

func MakePiece(side Side, pt PieceType) Piece {
	if pt == PieceNone || side == NoSide {
		return 0
	}
	if side == White {
		return Piece(pt)
	}
	return -Piece(pt)
}

func (p Piece) Type() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

func (p Piece) Side() Side {
	if p == 0 {
		return NoSide
	}
	if p > 0 {
		return White
	}
	return Black
}

func (p Piece) IsNone() bool { return p == 0 }

// MoveFlag distinguishes the special-move handling a Move needs during
// apply/unapply beyond the plain from/to relocation.
type MoveFlag int8

const (
	FlagNormal MoveFlag = iota
	FlagDoublePawnPush
	FlagEnPassant
	FlagCastleKingside
	FlagCastleQueenside
)

// Move is a single ply. Promotion is PieceNone for non-promoting moves.
// Score is scratch space for move ordering; it is never serialized and
// never compared for move equality.
type Move struct {
	From      int
	To        int
	Promotion PieceType
	Flag      MoveFlag
	Score     int
}

func (m Move) IsZero() bool { return m.From == 0 && m.To == 0 && m.Promotion == PieceNone && m.Flag == FlagNormal }

// Same compares two moves by their board effect, ignoring Score.
func (m Move) Same(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion && m.Flag == o.Flag
}

// Castling rights bit layout, one bit per right.
const (
	CastleWhiteKingside uint8 = 1 << iota
	CastleWhiteQueenside
	CastleBlackKingside
	CastleBlackQueenside
)
