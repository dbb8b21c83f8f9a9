package chessboard

// Position is a full board snapshot: pieces, side to move, castling
// rights, the en-passant target square (-1 if none) and the move
// counters needed for the 50-move rule. Copies are cheap (one array of
// 64 bytes plus a handful of scalars), so, as in the teacher's
// xionghan package, ApplyMove returns a fresh *Position rather than
// mutating in place; there is no separate UnmakeMove — the caller's
// own stack frame simply drops the child snapshot.
type Position struct {
	Board          Board
	SideToMove     Side
	CastleRights   uint8
	EnPassant      int // -1 if none
	HalfmoveClock  int
	FullmoveNumber int
	Hash           uint64
}

func (p *Position) KingSquare(side Side) int {
	for sq := 0; sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc != 0 && pc.Side() == side && pc.Type() == PieceKing {
			return sq
		}
	}
	return -1
}

func (p *Position) TotalPieces() int {
	n := 0
	for _, pc := range p.Board.Squares {
		if pc != 0 {
			n++
		}
	}
	return n
}

func (p *Position) CountPieces(side Side, pt PieceType) int {
	n := 0
	for _, pc := range p.Board.Squares {
		if pc != 0 && pc.Side() == side && pc.Type() == pt {
			n++
		}
	}
	return n
}

// HasCastlingRights reports whether either side retains any right,
// used by the tablebase-probe gate in search (spec.md step 6: probing
// requires no castling rights left on the board).
func (p *Position) HasCastlingRights() bool {
	return p.CastleRights != 0
}
