package chessboard

func genKingMoves(p *Position, from int, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	side := p.Board.Squares[from].Side()
	for _, d := range kingOffsets {
		r, c := row+d[0], col+d[1]
		if !onBoard(r, c) {
			continue
		}
		to := indexOf(r, c)
		dst := p.Board.Squares[to]
		if dst == 0 || dst.Side() != side {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
	genCastleMoves(p, from, side, moves)
}

// genCastleMoves adds castling moves. Legality beyond "squares between
// king and rook are empty and the king does not move through or into
// check" is enforced by the generic legal-move filter in generate.go,
// which additionally needs the "king not currently in check" and
// "king does not pass through an attacked square" conditions checked
// here directly, since those two squares are not the destination
// square that the generic filter re-validates.
func genCastleMoves(p *Position, kingSq int, side Side, moves *[]Move) {
	if p.IsInCheck(side) {
		return
	}
	homeRow := 0
	if side == Black {
		homeRow = Rows - 1
	}
	if rowOf(kingSq) != homeRow || colOf(kingSq) != 4 {
		return
	}

	kingsideRight, queensideRight := CastleWhiteKingside, CastleWhiteQueenside
	if side == Black {
		kingsideRight, queensideRight = CastleBlackKingside, CastleBlackQueenside
	}
	opp := side.Opposite()

	if p.CastleRights&kingsideRight != 0 {
		f, g, h := indexOf(homeRow, 5), indexOf(homeRow, 6), indexOf(homeRow, 7)
		rook := p.Board.Squares[h]
		if p.Board.Squares[f] == 0 && p.Board.Squares[g] == 0 &&
			rook.Type() == PieceRook && rook.Side() == side &&
			!p.IsAttacked(f, opp) && !p.IsAttacked(g, opp) {
			*moves = append(*moves, Move{From: kingSq, To: g, Flag: FlagCastleKingside})
		}
	}
	if p.CastleRights&queensideRight != 0 {
		d, c, b, a := indexOf(homeRow, 3), indexOf(homeRow, 2), indexOf(homeRow, 1), indexOf(homeRow, 0)
		rook := p.Board.Squares[a]
		if p.Board.Squares[d] == 0 && p.Board.Squares[c] == 0 && p.Board.Squares[b] == 0 &&
			rook.Type() == PieceRook && rook.Side() == side &&
			!p.IsAttacked(d, opp) && !p.IsAttacked(c, opp) {
			*moves = append(*moves, Move{From: kingSq, To: c, Flag: FlagCastleQueenside})
		}
	}
}
