package chessboard

// IsAttacked reports whether bySide attacks sq, by direct ray-casting
// and offset checks rather than full move generation, since pawn
// attacks differ from pawn pushes. Mirrors the teacher's IsAttacked in
// check.go in spirit (loop all of bySide's pieces) but is piece-exact
// for chess rather than reusing the move generator.
func (p *Position) IsAttacked(sq int, bySide Side) bool {
	row, col := rowOf(sq), colOf(sq)

	for _, d := range knightOffsets {
		r, c := row+d[0], col+d[1]
		if !onBoard(r, c) {
			continue
		}
		pc := p.Board.Squares[indexOf(r, c)]
		if pc != 0 && pc.Side() == bySide && pc.Type() == PieceKnight {
			return true
		}
	}

	for _, d := range kingOffsets {
		r, c := row+d[0], col+d[1]
		if !onBoard(r, c) {
			continue
		}
		pc := p.Board.Squares[indexOf(r, c)]
		if pc != 0 && pc.Side() == bySide && pc.Type() == PieceKing {
			return true
		}
	}

	// Pawns attack diagonally toward the opponent's side, i.e. from
	// the squares a bySide pawn would capture FROM onto sq.
	attackerDir := -pawnDir(bySide)
	for _, dc := range [2]int{-1, 1} {
		r, c := row+attackerDir, col+dc
		if !onBoard(r, c) {
			continue
		}
		pc := p.Board.Squares[indexOf(r, c)]
		if pc != 0 && pc.Side() == bySide && pc.Type() == PiecePawn {
			return true
		}
	}

	if raySliderAttacks(p, row, col, bySide, rookDirs, PieceRook, PieceQueen) {
		return true
	}
	if raySliderAttacks(p, row, col, bySide, bishopDirs, PieceBishop, PieceQueen) {
		return true
	}
	return false
}

func raySliderAttacks(p *Position, row, col int, bySide Side, dirs [4][2]int, straight, alsoQueen PieceType) bool {
	for _, d := range dirs {
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			pc := p.Board.Squares[indexOf(r, c)]
			if pc != 0 {
				if pc.Side() == bySide && (pc.Type() == straight || pc.Type() == alsoQueen) {
					return true
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
	return false
}

func (p *Position) IsInCheck(side Side) bool {
	kingSq := p.KingSquare(side)
	if kingSq == -1 {
		return false
	}
	return p.IsAttacked(kingSq, side.Opposite())
}

// AttacksFromSquare reports whether the piece standing on from (if
// any) pseudo-legally attacks to, used by the move ranker's "future
// check" bonuses (spec.md §4.1) without needing a full move list.
func (p *Position) AttacksFromSquare(from, to int) bool {
	pc := p.Board.Squares[from]
	if pc == 0 {
		return false
	}
	var moves []Move
	switch pc.Type() {
	case PieceKnight:
		genKnightMoves(p, from, &moves)
	case PieceBishop:
		genBishopMoves(p, from, &moves)
	case PieceRook:
		genRookMoves(p, from, &moves)
	case PieceQueen:
		genQueenMoves(p, from, &moves)
	case PieceKing:
		for _, d := range kingOffsets {
			r, c := rowOf(from)+d[0], colOf(from)+d[1]
			if onBoard(r, c) && indexOf(r, c) == to {
				return true
			}
		}
		return false
	case PiecePawn:
		return pawnAttacks(from, pc.Side(), to)
	default:
		return false
	}
	for _, mv := range moves {
		if mv.To == to {
			return true
		}
	}
	return false
}
