package chessboard

// pawnDir mirrors the teacher's pawnDir helper: White advances toward
// higher rows (rank 1 -> rank 8), Black toward lower ones.
func pawnDir(side Side) int {
	if side == White {
		return 1
	}
	if side == Black {
		return -1
	}
	return 0
}

func pawnStartRow(side Side) int {
	if side == White {
		return 1
	}
	return 6
}

func pawnPromotionRow(side Side) int {
	if side == White {
		return Rows - 1
	}
	return 0
}

var promotionPieces = [4]PieceType{PieceQueen, PieceRook, PieceBishop, PieceKnight}

func genPawnMoves(p *Position, from int, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	side := p.Board.Squares[from].Side()
	dir := pawnDir(side)

	addPromotingOrPlain := func(to int) {
		if rowOf(to) == pawnPromotionRow(side) {
			for _, pt := range promotionPieces {
				*moves = append(*moves, Move{From: from, To: to, Promotion: pt})
			}
		} else {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}

	// Single push.
	r1 := row + dir
	if onBoard(r1, col) {
		to := indexOf(r1, col)
		if p.Board.Squares[to] == 0 {
			addPromotingOrPlain(to)

			// Double push from the starting rank.
			if row == pawnStartRow(side) {
				r2 := row + 2*dir
				to2 := indexOf(r2, col)
				if p.Board.Squares[to2] == 0 {
					*moves = append(*moves, Move{From: from, To: to2, Flag: FlagDoublePawnPush})
				}
			}
		}
	}

	// Captures, including en passant.
	for _, dc := range [2]int{-1, 1} {
		r, c := row+dir, col+dc
		if !onBoard(r, c) {
			continue
		}
		to := indexOf(r, c)
		dst := p.Board.Squares[to]
		if dst != 0 && dst.Side() != side {
			addPromotingOrPlain(to)
			continue
		}
		if dst == 0 && to == p.EnPassant {
			*moves = append(*moves, Move{From: from, To: to, Flag: FlagEnPassant})
		}
	}
}

// pawnAttacks reports whether a pawn of bySide standing on sq attacks
// target, used by the attack-detection path without generating moves.
func pawnAttacks(sq int, bySide Side, target int) bool {
	row, col := rowOf(sq), colOf(sq)
	dir := pawnDir(bySide)
	for _, dc := range [2]int{-1, 1} {
		r, c := row+dir, col+dc
		if onBoard(r, c) && indexOf(r, c) == target {
			return true
		}
	}
	return false
}
