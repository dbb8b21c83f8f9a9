package search

import (
	"github.com/jkorten/matefish/internal/chessboard"
	"github.com/jkorten/matefish/internal/matevalue"
)

// Frame is one ply of the search stack (spec.md §3): the position at
// that ply and the local PV built from this node downward. Unlike the
// teacher's mutable board which is make/unmake'd in place, Frame holds
// a snapshot — chessboard.ApplyMove already returns a fresh
// *Position, so "unmake" is simply not overwriting the parent frame.
type Frame struct {
	Ply int
	Pos *chessboard.Position
	PV  []chessboard.Move
}

// Stack is the fixed per-worker array of Frames, spec.md §3's
// invariant frame[i].ply == i held by NewStack.
type Stack [matevalue.MaxPly + 1]Frame

func NewStack(root *chessboard.Position) *Stack {
	s := &Stack{}
	for i := range s {
		s[i].Ply = i
	}
	s[0].Pos = root
	return s
}
