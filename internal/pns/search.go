package pns

import (
	"sync/atomic"
	"unsafe"

	"github.com/jkorten/matefish/internal/chessboard"
	"github.com/jkorten/matefish/internal/matevalue"
	"github.com/jkorten/matefish/internal/search"
	"github.com/jkorten/matefish/internal/tablebase"
)

// ErrArenaExhausted names the arena-exhaustion condition as an error
// value. Search reports exhaustion through its Exhausted field, which
// is what the protocol layer checks to print spec.md §4.6's "running
// out of memory" info string; nothing here returns this error.
type ErrArenaExhausted struct{}

func (ErrArenaExhausted) Error() string { return "pns: arena exhausted" }

// Search runs the Proof-Number Search engine (C6) single-threaded over
// one arena-held AND/OR tree, the alternative to the α/β Worker pool
// the protocol layer routes to when ProofNumberSearch is set.
type Search struct {
	Root    *chessboard.Position
	Limits  search.Limits
	Options search.Options
	Oracle  tablebase.Oracle
	Stop    *atomic.Bool

	Nodes       int64
	TargetDepth int
	BestPV      []chessboard.Move
	BestScore   matevalue.Value
	Exhausted   bool

	arena *Arena
}

// NodeBudget converts a budget in megabytes into an arena node count,
// the same "MB -> capacity" conversion idiom as a hash-table size
// option, dividing by Node's in-memory size. Run always sizes its
// arena with NodeBudget(0), the 16 MB default; the protocol layer's
// PNS Hash option is stored but not passed to the engine.
func NodeBudget(hashMB int) int {
	const bytesPerNode = int(unsafe.Sizeof(Node{}))
	if hashMB <= 0 {
		hashMB = 16
	}
	n := hashMB * 1024 * 1024 / bytesPerNode
	if n < 1024 {
		n = 1024
	}
	return n
}

// Run executes the main loop of spec.md §4.6: iterate select/expand/
// backpropagate until the root is proved, disproved, the arena is
// exhausted, movetime elapses or stop is requested.
func (s *Search) Run() {
	if s.Oracle == nil {
		s.Oracle = tablebase.NullOracle{}
	}
	s.TargetDepth = s.Limits.TargetDepth()
	if s.arena == nil {
		s.arena = NewArena(NodeBudget(0))
	}
	root := s.arena.Get(RootRef)
	root.PN, root.DN = 1, 1

	for {
		if s.Stop != nil && s.Stop.Load() {
			return
		}
		if s.Limits.TimeUp() {
			return
		}
		root = s.arena.Get(RootRef)
		if root.PN == 0 || root.DN == 0 {
			return
		}
		if s.arena.Exhausted() {
			s.Exhausted = true
			return
		}
		s.iterate()
	}
}

// path tracks one selection descent: arena refs and the position at
// each ref (path.refs[0]/path.pos[0] is the root).
type path struct {
	refs []NodeRef
	pos  []*chessboard.Position
}

func (s *Search) iterate() {
	p := s.selectMPN()
	leafRef := p.refs[len(p.refs)-1]
	leafPly := len(p.refs) - 1
	leafPos := p.pos[len(p.pos)-1]

	pv := s.expand(leafRef, leafPos, leafPly, p.pos)
	s.backpropagate(p, pv)
}

// selectMPN descends from the root choosing, at every already-expanded
// node, the child with minimum pn (OR, attacker to move, even ply) or
// minimum dn (AND, defender to move, odd ply) — spec.md §4.6 step 1.
// The scan keeps the "< minKey" strict-comparison guard the REDESIGN
// FLAGS call out, seeded one above Infinite so any real child value
// is picked on the first comparison.
func (s *Search) selectMPN() path {
	p := path{refs: []NodeRef{RootRef}, pos: []*chessboard.Position{s.Root}}
	ref := RootRef
	pos := s.Root
	ply := 0

	for {
		n := s.arena.Get(ref)
		if n.FirstChild == RootRef {
			return p
		}
		isAnd := ply%2 == 1

		var best NodeRef = RootRef
		minKey := uint64(Infinite) + 1
		child := n.FirstChild
		for child != RootRef {
			cn := s.arena.Get(child)
			var key uint32
			if isAnd {
				key = cn.DN
			} else {
				key = cn.PN
			}
			if uint64(key) < minKey {
				minKey = uint64(key)
				best = child
			}
			child = cn.NextSibling
		}
		if best == RootRef {
			return p
		}

		childPos, ok := pos.ApplyMove(s.arena.Get(best).Move)
		if !ok {
			return p
		}
		ref, pos, ply = best, childPos, ply+1
		p.refs = append(p.refs, ref)
		p.pos = append(p.pos, pos)
	}
}

// expand generates ref's legal replies, links each as a child with its
// terminal or estimated (pn, dn), and returns the proof PV if any
// child turned out to be an immediate proof (spec.md §4.6 steps 2-3).
// history is the selection path's positions (root..leaf, leaf
// included) used for the path-local repetition check on each child.
func (s *Search) expand(ref NodeRef, pos *chessboard.Position, ply int, history []*chessboard.Position) []chessboard.Move {
	s.Nodes++
	moves := pos.GenerateLegalMoves()

	if ply == s.TargetDepth-1 {
		moves = s.filterFrontier(pos, moves)
	}

	if len(moves) == 0 {
		// No candidate move is left (the frontier filter dropped every
		// quiet reply), so nothing below this node can prove it.
		parent := s.arena.Get(ref)
		parent.PN, parent.DN = Infinite, 0
		return nil
	}

	n := len(moves)
	parentIsAnd := ply%2 == 1

	var firstChild, prev NodeRef = RootRef, RootRef
	var provenPV []chessboard.Move

	for _, mv := range moves {
		childPos, ok := pos.ApplyMove(mv)
		if !ok {
			continue
		}
		childRef, ok := s.arena.Alloc()
		if !ok {
			break
		}
		cn := s.arena.Get(childRef)
		cn.Move = mv
		cn.NextSibling = RootRef

		childIsAnd := !parentIsAnd
		pn, dn, terminal := s.terminalValue(childPos, ply+1, childIsAnd, history)
		if terminal {
			cn.PN, cn.DN = pn, dn
		} else if childIsAnd {
			cn.PN, cn.DN = uint32(1+n), 1
		} else {
			cn.PN, cn.DN = 1, uint32(1+n)
		}

		if prev == RootRef {
			firstChild = childRef
		} else {
			s.arena.Get(prev).NextSibling = childRef
		}
		prev = childRef

		if cn.PN == 0 && provenPV == nil {
			provenPV = []chessboard.Move{mv}
		}

		if !parentIsAnd && cn.PN == 0 {
			break // OR parent already proved by this child
		}
		if parentIsAnd && cn.DN == 0 {
			break // AND parent already disproved by this child
		}
	}

	parent := s.arena.Get(ref)
	parent.FirstChild = firstChild
	s.recompute(ref, ply)

	return provenPV
}

// filterFrontier implements spec.md §4.6's frontier rule: at the last
// ply before the ply==targetDepth disprove boundary, only moves that
// give check can possibly still lead to a proof, so quiet moves are
// dropped during expansion — the PNS analogue of the α/β search's
// depth==1 noisy-move cutoff.
func (s *Search) filterFrontier(pos *chessboard.Position, moves []chessboard.Move) []chessboard.Move {
	kept := moves[:0]
	for _, mv := range moves {
		next, ok := pos.ApplyMove(mv)
		if ok && next.IsInCheck(next.SideToMove) {
			kept = append(kept, mv)
		}
	}
	return kept
}

// terminalValue implements spec.md §4.6's terminal-assignment table
// for a freshly created child at ply, which is an AND node when
// isAndChild. history is the selection path the child hangs off,
// checked for a same-parity hash repeat the way search.Worker's
// hasRepetition walks its own stack.
func (s *Search) terminalValue(pos *chessboard.Position, ply int, isAndChild bool, history []*chessboard.Position) (pn, dn uint32, terminal bool) {
	us := pos.SideToMove
	inCheck := pos.IsInCheck(us)
	legal := pos.GenerateLegalMoves()

	if len(legal) == 0 {
		if inCheck {
			if isAndChild {
				return 0, Infinite, true
			}
			return Infinite, 0, true
		}
		return Infinite, 0, true // stalemate
	}

	if ply == s.TargetDepth {
		return Infinite, 0, true
	}
	if pos.HalfmoveClock >= 100 || repeatsHistory(pos, history) {
		return Infinite, 0, true
	}

	attackerPly := ply%2 == 0
	if !attackerPly {
		if s.Options.KingMoves < 8 && search.CountKingMoves(pos) > s.Options.KingMoves {
			return Infinite, 0, true
		}
	} else if search.OnlyBareKing(pos, us) {
		return Infinite, 0, true
	}

	if pos.TotalPieces() <= s.Oracle.MaxCardinality() && !pos.HasCastlingRights() {
		if wdl, ok := s.Oracle.ProbeWDL(pos); ok {
			if wdl == tablebase.Draw {
				return Infinite, 0, true
			}
			if !isAndChild && wdl == tablebase.Loss {
				return Infinite, 0, true
			}
			if isAndChild && wdl == tablebase.Win {
				return Infinite, 0, true
			}
		}
	}

	return 0, 0, false
}

// repeatsHistory reports whether pos's hash already occurred at a
// same-parity ply in history — the PNS analogue of search.Worker's
// path-local repetition test, since PNS keeps no game history either.
func repeatsHistory(pos *chessboard.Position, history []*chessboard.Position) bool {
	for i := len(history) - 2; i >= 0; i -= 2 {
		if history[i] != nil && history[i].Hash == pos.Hash {
			return true
		}
	}
	return false
}

// recompute applies spec.md §4.6's OR/AND aggregation rule to ref
// using its current children, saturating at Infinite.
func (s *Search) recompute(ref NodeRef, ply int) {
	n := s.arena.Get(ref)
	if n.FirstChild == RootRef {
		return
	}
	isAnd := ply%2 == 1

	var pn, dn uint64
	if isAnd {
		pnSum, dnMin := uint64(0), uint64(Infinite)+1
		child := n.FirstChild
		for child != RootRef {
			cn := s.arena.Get(child)
			pnSum += uint64(cn.PN)
			if uint64(cn.DN) < dnMin {
				dnMin = uint64(cn.DN)
			}
			child = cn.NextSibling
		}
		pn, dn = pnSum, dnMin
	} else {
		pnMin, dnSum := uint64(Infinite)+1, uint64(0)
		child := n.FirstChild
		for child != RootRef {
			cn := s.arena.Get(child)
			if uint64(cn.PN) < pnMin {
				pnMin = uint64(cn.PN)
			}
			dnSum += uint64(cn.DN)
			child = cn.NextSibling
		}
		pn, dn = pnMin, dnSum
	}

	n.PN = saturate(pn)
	n.DN = saturate(dn)
}

func saturate(v uint64) uint32 {
	if v >= uint64(Infinite) {
		return Infinite
	}
	return uint32(v)
}

// backpropagate unwinds p from its deepest node back to the root,
// recomputing each node's (pn, dn) from its children and recycling
// any child whose entire subtree is now resolved — spec.md §4.6 step
// 4. When expand found a proof, the PV is extended with each proven
// ancestor's move on the way up, stopping the instant an ancestor
// turns out not to be proven (the chain is only as long as the
// contiguous run of proven nodes reaching back from the leaf).
func (s *Search) backpropagate(p path, leafPV []chessboard.Move) {
	pv := leafPV
	chainIntact := true

	for i := len(p.refs) - 1; i >= 1; i-- {
		ref := p.refs[i]
		s.recompute(ref, i)

		n := s.arena.Get(ref)
		proven := n.PN == 0
		resolved := proven || n.DN == 0

		parentRef := p.refs[i-1]
		// Parent must see ref's just-recomputed (pn, dn) while ref is
		// still linked into its child list — unlinking first would
		// drop ref's contribution to the parent's own aggregate.
		s.recompute(parentRef, i-1)

		if pv != nil && chainIntact {
			if proven {
				pv = append([]chessboard.Move{n.Move}, pv...)
			} else {
				chainIntact = false
			}
		}

		if resolved {
			s.unlinkAndRecycle(parentRef, ref)
		}
	}

	if pv != nil && chainIntact && s.arena.Get(RootRef).PN == 0 {
		s.BestPV = pv
		s.BestScore = matevalue.MateIn(len(pv))
	}
}

// unlinkAndRecycle splices child out of parent's FirstChild/NextSibling
// list and recycles its subtree. Safe to call once parent's own (pn,
// dn) already reflect child's resolution, since a resolved child's
// saturated key value would never again be chosen by selectMPN even
// if it were left in place — unlinking just reclaims the memory
// promptly instead of waiting for it to age out of relevance.
func (s *Search) unlinkAndRecycle(parentRef, childRef NodeRef) {
	parent := s.arena.Get(parentRef)
	if parent.FirstChild == childRef {
		parent.FirstChild = s.arena.Get(childRef).NextSibling
	} else {
		prev := parent.FirstChild
		for prev != RootRef {
			pn := s.arena.Get(prev)
			if pn.NextSibling == childRef {
				pn.NextSibling = s.arena.Get(childRef).NextSibling
				break
			}
			prev = pn.NextSibling
		}
	}
	s.arena.RecycleSubtree(childRef)
}
