package chessboard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var ErrInvalidFEN = errors.New("chessboard: invalid FEN")

var letterToPieceType = map[rune]PieceType{
	'p': PiecePawn,
	'n': PieceKnight,
	'b': PieceBishop,
	'r': PieceRook,
	'q': PieceQueen,
	'k': PieceKing,
}

var pieceTypeToLetter = map[PieceType]rune{
	PiecePawn:   'p',
	PieceKnight: 'n',
	PieceBishop: 'b',
	PieceRook:   'r',
	PieceQueen:  'q',
	PieceKing:   'k',
}

// StartposFEN is the standard initial position, for the protocol's
// "position startpos" command.
const StartposFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// DecodeFEN parses a full FEN record (piece placement, side to move,
// castling rights, en-passant square, halfmove clock, fullmove
// number), following standard chess FEN rather than the teacher's
// simplified variant-board encoding.
func DecodeFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, ErrInvalidFEN
	}

	rowsField := strings.Split(fields[0], "/")
	if len(rowsField) != Rows {
		return nil, ErrInvalidFEN
	}

	var b Board
	for i, rowStr := range rowsField {
		r := Rows - 1 - i // FEN ranks run 8 down to 1
		c := 0
		for _, ch := range rowStr {
			if ch >= '1' && ch <= '8' {
				c += int(ch - '0')
				continue
			}
			if c >= Cols {
				return nil, ErrInvalidFEN
			}
			pt, ok := letterToPieceType[unicode.ToLower(ch)]
			if !ok {
				return nil, ErrInvalidFEN
			}
			side := Black
			if unicode.IsUpper(ch) {
				side = White
			}
			b.Squares[indexOf(r, c)] = MakePiece(side, pt)
			c++
		}
		if c != Cols {
			return nil, ErrInvalidFEN
		}
	}

	var stm Side
	switch fields[1] {
	case "w":
		stm = White
	case "b":
		stm = Black
	default:
		return nil, ErrInvalidFEN
	}

	var rights uint8
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				rights |= CastleWhiteKingside
			case 'Q':
				rights |= CastleWhiteQueenside
			case 'k':
				rights |= CastleBlackKingside
			case 'q':
				rights |= CastleBlackQueenside
			default:
				return nil, ErrInvalidFEN
			}
		}
	}

	ep := -1
	if fields[3] != "-" {
		sq, err := parseSquareName(fields[3])
		if err != nil {
			return nil, err
		}
		ep = sq
	}

	halfmove, fullmove := 0, 1
	if len(fields) >= 5 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			halfmove = n
		}
	}
	if len(fields) >= 6 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
			fullmove = n
		}
	}

	pos := &Position{
		Board:          b,
		SideToMove:     stm,
		CastleRights:   rights,
		EnPassant:      ep,
		HalfmoveClock:  halfmove,
		FullmoveNumber: fullmove,
	}
	pos.Hash = pos.CalculateHash()
	return pos, nil
}

// Encode renders the position as a standard FEN string.
func (p *Position) Encode() string {
	var sb strings.Builder
	for i := 0; i < Rows; i++ {
		r := Rows - 1 - i
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := p.Board.Squares[indexOf(r, c)]
			if pc == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			letter := pieceTypeToLetter[pc.Type()]
			if pc.Side() == White {
				letter = unicode.ToUpper(letter)
			}
			sb.WriteRune(letter)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if i != Rows-1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if p.CastleRights == 0 {
		sb.WriteByte('-')
	} else {
		if p.CastleRights&CastleWhiteKingside != 0 {
			sb.WriteByte('K')
		}
		if p.CastleRights&CastleWhiteQueenside != 0 {
			sb.WriteByte('Q')
		}
		if p.CastleRights&CastleBlackKingside != 0 {
			sb.WriteByte('k')
		}
		if p.CastleRights&CastleBlackQueenside != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	if p.EnPassant < 0 {
		sb.WriteByte('-')
	} else {
		sb.WriteString(squareName(p.EnPassant))
	}

	fmt.Fprintf(&sb, " %d %d", p.HalfmoveClock, p.FullmoveNumber)
	return sb.String()
}

func squareName(sq int) string {
	return string(rune('a'+colOf(sq))) + string(rune('1'+rowOf(sq)))
}

func parseSquareName(s string) (int, error) {
	if len(s) != 2 {
		return -1, ErrInvalidFEN
	}
	c := int(s[0] - 'a')
	r := int(s[1] - '1')
	if !onBoard(r, c) {
		return -1, ErrInvalidFEN
	}
	return indexOf(r, c), nil
}

// ParseMoveUCI decodes a long-algebraic move string ("e2e4", "e7e8q")
// against the legal moves of p, the format the protocol's "position
// ... moves ..." and "go searchmoves" use.
func ParseMoveUCI(p *Position, s string) (Move, bool) {
	if len(s) < 4 {
		return Move{}, false
	}
	from, err := parseSquareName(s[0:2])
	if err != nil {
		return Move{}, false
	}
	to, err := parseSquareName(s[2:4])
	if err != nil {
		return Move{}, false
	}
	promo := PieceNone
	if len(s) >= 5 {
		pt, ok := letterToPieceType[unicode.ToLower(rune(s[4]))]
		if !ok {
			return Move{}, false
		}
		promo = pt
	}
	for _, mv := range p.GenerateLegalMoves() {
		if mv.From == from && mv.To == to && mv.Promotion == promo {
			return mv, true
		}
	}
	return Move{}, false
}

// MoveUCI renders a move in long algebraic notation.
func MoveUCI(m Move) string {
	s := squareName(m.From) + squareName(m.To)
	if m.Promotion != PieceNone {
		s += string(pieceTypeToLetter[m.Promotion])
	}
	return s
}
