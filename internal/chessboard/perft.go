package chessboard

// Perft counts the leaf nodes of the legal move tree rooted at p to
// depth plies, the move-generator validator from
// Koma1867-Soomi-V1-Chess-engine-in-golang's Soomi.go perft, adapted
// to this package's immutable ApplyMove instead of make/unmake.
func (p *Position) Perft(depth int) int64 {
	if depth == 0 {
		return 1
	}
	var nodes int64
	for _, mv := range p.GenerateLegalMoves() {
		next, ok := p.ApplyMove(mv)
		if !ok {
			continue
		}
		nodes += next.Perft(depth - 1)
	}
	return nodes
}

// PerftDivide reports each root move's own subtree count, the
// "divide" variant Soomi.go pairs with perft for isolating which
// branch a node-count mismatch comes from.
func (p *Position) PerftDivide(depth int) ([]PerftLine, int64) {
	var lines []PerftLine
	var total int64
	for _, mv := range p.GenerateLegalMoves() {
		next, ok := p.ApplyMove(mv)
		if !ok {
			continue
		}
		count := next.Perft(depth - 1)
		lines = append(lines, PerftLine{Move: mv, Nodes: count})
		total += count
	}
	return lines, total
}

// PerftLine is one root move's perft count, for "go perft" divide
// output.
type PerftLine struct {
	Move  Move
	Nodes int64
}
