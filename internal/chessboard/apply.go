package chessboard

// ApplyMove returns the position after playing m, leaving p untouched,
// exactly like the teacher's ApplyMove in xionghan/generate.go: the
// caller's search-stack frame simply holds onto the new snapshot, so
// "unmake" is never anything more than letting that frame go out of
// scope. The incremental Zobrist update (XOR out the old occupants,
// XOR in the new ones) also follows the teacher's pattern directly.
func (p *Position) ApplyMove(m Move) (*Position, bool) {
	if m.From < 0 || m.From >= NumSquares || m.To < 0 || m.To >= NumSquares {
		return nil, false
	}
	pc := p.Board.Squares[m.From]
	if pc == 0 || pc.Side() != p.SideToMove {
		return nil, false
	}

	np := *p
	h := p.EnsureHash()
	side := p.SideToMove

	captured := np.Board.Squares[m.To]
	capturedSq := m.To

	if m.Flag == FlagEnPassant {
		capturedSq = indexOf(rowOf(m.From), colOf(m.To))
		captured = np.Board.Squares[capturedSq]
		np.Board.Squares[capturedSq] = 0
	}

	moved := pc
	if m.Promotion != PieceNone {
		moved = MakePiece(side, m.Promotion)
	}

	h ^= pieceHashKey(pc, m.From)
	if captured != 0 {
		h ^= pieceHashKey(captured, capturedSq)
	}
	h ^= pieceHashKey(moved, m.To)

	np.Board.Squares[m.To] = moved
	np.Board.Squares[m.From] = 0

	if m.Flag == FlagCastleKingside || m.Flag == FlagCastleQueenside {
		homeRow := rowOf(m.From)
		var rookFrom, rookTo int
		if m.Flag == FlagCastleKingside {
			rookFrom, rookTo = indexOf(homeRow, 7), indexOf(homeRow, 5)
		} else {
			rookFrom, rookTo = indexOf(homeRow, 0), indexOf(homeRow, 3)
		}
		rook := np.Board.Squares[rookFrom]
		h ^= pieceHashKey(rook, rookFrom)
		h ^= pieceHashKey(rook, rookTo)
		np.Board.Squares[rookTo] = rook
		np.Board.Squares[rookFrom] = 0
	}

	h ^= zobristCastle[np.CastleRights&0xF]
	np.CastleRights &^= castleRightsLostBy(m.From)
	np.CastleRights &^= castleRightsLostBy(m.To)
	h ^= zobristCastle[np.CastleRights&0xF]

	if np.EnPassant >= 0 {
		h ^= zobristEnPassant[colOf(np.EnPassant)]
	}
	if m.Flag == FlagDoublePawnPush {
		np.EnPassant = indexOf((rowOf(m.From)+rowOf(m.To))/2, colOf(m.From))
		h ^= zobristEnPassant[colOf(np.EnPassant)]
	} else {
		np.EnPassant = -1
	}

	if pc.Type() == PiecePawn || captured != 0 {
		np.HalfmoveClock = 0
	} else {
		np.HalfmoveClock++
	}
	if side == Black {
		np.FullmoveNumber++
	}

	np.SideToMove = side.Opposite()
	h ^= zobristSide
	np.Hash = h

	return &np, true
}

// castleRightsLostBy returns the rights that are forfeit the moment a
// piece leaves or a piece arrives on sq: the king's home square or
// either rook's home square.
func castleRightsLostBy(sq int) uint8 {
	switch sq {
	case indexOf(0, 4):
		return CastleWhiteKingside | CastleWhiteQueenside
	case indexOf(0, 0):
		return CastleWhiteQueenside
	case indexOf(0, 7):
		return CastleWhiteKingside
	case indexOf(7, 4):
		return CastleBlackKingside | CastleBlackQueenside
	case indexOf(7, 0):
		return CastleBlackQueenside
	case indexOf(7, 7):
		return CastleBlackKingside
	default:
		return 0
	}
}
