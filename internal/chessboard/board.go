package chessboard

const (
	Rows       = 8
	Cols       = 8
	NumSquares = Rows * Cols
)

func indexOf(row, col int) int { return row*Cols + col }
func rowOf(sq int) int         { return sq / Cols }
func colOf(sq int) int         { return sq % Cols }

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// Board is a flat mailbox, square 0 = a1, square 63 = h8 (row = rank-1,
// col = file index), matching the teacher's row-major Squares array.
type Board struct {
	Squares [NumSquares]Piece
}

var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

var kingOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

var rookDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
var bishopDirs = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

func chebyshev(a, b int) int {
	dr := rowOf(a) - rowOf(b)
	dc := colOf(a) - colOf(b)
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	if dr > dc {
		return dr
	}
	return dc
}

// NewInitialPosition returns the standard chess starting position.
func NewInitialPosition() *Position {
	pos := &Position{
		SideToMove:    White,
		CastleRights:  CastleWhiteKingside | CastleWhiteQueenside | CastleBlackKingside | CastleBlackQueenside,
		EnPassant:     -1,
		FullmoveNumber: 1,
	}
	back := [8]PieceType{PieceRook, PieceKnight, PieceBishop, PieceQueen, PieceKing, PieceBishop, PieceKnight, PieceRook}
	for c := 0; c < Cols; c++ {
		pos.Board.Squares[indexOf(0, c)] = MakePiece(White, back[c])
		pos.Board.Squares[indexOf(1, c)] = MakePiece(White, PiecePawn)
		pos.Board.Squares[indexOf(6, c)] = MakePiece(Black, PiecePawn)
		pos.Board.Squares[indexOf(7, c)] = MakePiece(Black, back[c])
	}
	pos.Hash = pos.CalculateHash()
	return pos
}
