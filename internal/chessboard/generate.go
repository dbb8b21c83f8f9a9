package chessboard

// GeneratePseudoMovesForSide mirrors the teacher's dispatch-by-type
// loop in generate.go, one switch arm per piece kind.
func (p *Position) GeneratePseudoMovesForSide(side Side) []Move {
	var moves []Move
	for sq := 0; sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 || pc.Side() != side {
			continue
		}
		switch pc.Type() {
		case PiecePawn:
			genPawnMoves(p, sq, &moves)
		case PieceKnight:
			genKnightMoves(p, sq, &moves)
		case PieceBishop:
			genBishopMoves(p, sq, &moves)
		case PieceRook:
			genRookMoves(p, sq, &moves)
		case PieceQueen:
			genQueenMoves(p, sq, &moves)
		case PieceKing:
			genKingMoves(p, sq, &moves)
		}
	}
	return moves
}

func (p *Position) GeneratePseudoMoves() []Move {
	return p.GeneratePseudoMovesForSide(p.SideToMove)
}

// GenerateLegalMoves filters pseudo-legal moves down to moves that
// leave the mover's own king safe, the one rule that cannot be
// expressed locally per piece. Unlike the teacher's AI heuristic
// filters (opening-book-ish move suppression), nothing here is
// heuristic: a mate solver must see every legal reply.
func (p *Position) GenerateLegalMoves() []Move {
	pseudo := p.GeneratePseudoMoves()
	out := make([]Move, 0, len(pseudo))
	side := p.SideToMove
	for _, mv := range pseudo {
		next, ok := p.ApplyMove(mv)
		if !ok {
			continue
		}
		if next.IsAttacked(next.KingSquare(side), side.Opposite()) {
			continue
		}
		out = append(out, mv)
	}
	return out
}

// LegalMovesFiltered applies a searchmoves restriction (spec.md §4.2
// step 1); an empty restriction set means "no restriction".
func (p *Position) LegalMovesFiltered(restrict []Move) []Move {
	all := p.GenerateLegalMoves()
	if len(restrict) == 0 {
		return all
	}
	out := make([]Move, 0, len(all))
	for _, mv := range all {
		for _, r := range restrict {
			if mv.Same(r) {
				out = append(out, mv)
				break
			}
		}
	}
	return out
}
