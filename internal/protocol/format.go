package protocol

import (
	"fmt"
	"strings"
	"time"

	"github.com/jkorten/matefish/internal/chessboard"
	"github.com/jkorten/matefish/internal/matevalue"
)

// moveString renders mv in coordinate notation, applying
// UCI_Chess960's king-captures-own-rook castling encoding on output
// only when chess960 is set — uci.cpp's UCI::move, minus the
// chess960-position-generation half spec.md's supplemented-features
// section scopes out.
func moveString(pos *chessboard.Position, mv chessboard.Move, chess960 bool) string {
	if mv.IsZero() {
		return "(none)"
	}
	if !chess960 || (mv.Flag != chessboard.FlagCastleKingside && mv.Flag != chessboard.FlagCastleQueenside) {
		return chessboard.MoveUCI(mv)
	}
	// Chess960 castling notation: king captures its own rook.
	rookFile := 7
	if mv.Flag == chessboard.FlagCastleQueenside {
		rookFile = 0
	}
	rookSq := chessboard.Index(chessboard.RowOf(mv.From), rookFile)
	return chessboard.MoveUCI(chessboard.Move{From: mv.From, To: rookSq})
}

// scoreString renders a Value as UCI's "cp <x>" or "mate <y>", the Go
// analogue of uci.cpp's UCI::value.
func scoreString(v matevalue.Value) string {
	if matevalue.IsMateScore(v) {
		return fmt.Sprintf("mate %d", matevalue.MovesToMate(v))
	}
	return fmt.Sprintf("cp %d", v)
}

// pvString joins a PV as space-separated coordinate moves, replaying
// them from root so castling can be re-encoded per move.
func pvString(root *chessboard.Position, pv []chessboard.Move, chess960 bool) string {
	if len(pv) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pv))
	pos := root
	for _, mv := range pv {
		parts = append(parts, moveString(pos, mv, chess960))
		next, ok := pos.ApplyMove(mv)
		if !ok {
			break
		}
		pos = next
	}
	return strings.Join(parts, " ")
}

// infoLine renders one "info" progress line (spec.md §6: time, depth,
// seldepth, nodes, nps, tbhits, score, pv).
func infoLine(root *chessboard.Position, depth, seldepth int, nodes, tbhits int64, elapsed time.Duration, score matevalue.Value, pv []chessboard.Move, chess960 bool) string {
	ms := elapsed.Milliseconds()
	if ms <= 0 {
		ms = 1
	}
	nps := nodes * 1000 / ms
	var b strings.Builder
	fmt.Fprintf(&b, "info depth %d seldepth %d time %d nodes %d nps %d tbhits %d score %s",
		depth, seldepth, ms, nodes, nps, tbhits, scoreString(score))
	if s := pvString(root, pv, chess960); s != "" {
		b.WriteString(" pv ")
		b.WriteString(s)
	}
	return b.String()
}

// bestmoveLine renders the terminal "bestmove" line.
func bestmoveLine(root *chessboard.Position, mv chessboard.Move, chess960 bool) string {
	return "bestmove " + moveString(root, mv, chess960)
}
