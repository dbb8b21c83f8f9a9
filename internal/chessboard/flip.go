package chessboard

// Flip mirrors p vertically and swaps side colours, the debug
// transform original_source/src/uci.cpp's "flip" command applies —
// useful for spot-checking that the engine's evaluation and move
// generation are symmetric under colour reversal.
func (p *Position) Flip() *Position {
	out := &Position{
		SideToMove:     p.SideToMove.Opposite(),
		EnPassant:      -1,
		HalfmoveClock:  p.HalfmoveClock,
		FullmoveNumber: p.FullmoveNumber,
	}

	for sq := 0; sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 {
			continue
		}
		mirrored := indexOf(Rows-1-rowOf(sq), colOf(sq))
		out.Board.Squares[mirrored] = MakePiece(pc.Side().Opposite(), pc.Type())
	}

	if p.CastleRights&CastleWhiteKingside != 0 {
		out.CastleRights |= CastleBlackKingside
	}
	if p.CastleRights&CastleWhiteQueenside != 0 {
		out.CastleRights |= CastleBlackQueenside
	}
	if p.CastleRights&CastleBlackKingside != 0 {
		out.CastleRights |= CastleWhiteKingside
	}
	if p.CastleRights&CastleBlackQueenside != 0 {
		out.CastleRights |= CastleWhiteQueenside
	}

	if p.EnPassant >= 0 {
		out.EnPassant = indexOf(Rows-1-rowOf(p.EnPassant), colOf(p.EnPassant))
	}

	out.Hash = out.CalculateHash()
	return out
}
