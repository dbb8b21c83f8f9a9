// Package pns implements the Proof-Number Search engine (C6, spec.md
// §4.6): an explicit AND/OR game tree held in a fixed-size arena, with
// node recycling instead of garbage collection. Field names on Node
// mirror original_source/src/search.h's Node struct; the pointer
// fields become arena indices per the REDESIGN
// FLAGS' "raw pointers -> arena indices" note, since idiomatic Go has
// no manual node ownership to hand off between a free-store and a
// live tree.
package pns

import (
	"github.com/jkorten/matefish/internal/chessboard"
)

// Infinite is the PNS sentinel "unbounded" proof/disproof number.
// UINT32_MAX/2 in the original; a plain large uint32 constant here
// since Go's arena never needs the top half of the range for anything
// else.
const Infinite uint32 = 1 << 30

// NodeRef is an arena index. The zero value, RootRef, is reserved for
// the arena's own sentinel root slot and doubles as the "no child" /
// "no sibling" marker, the same dual role spec.md §4.6 describes.
type NodeRef uint32

// RootRef is the sentinel: both the tree's root and "null".
const RootRef NodeRef = 0

// Node is spec.md §4.6's PNS Node: a move, its proof/disproof numbers,
// and arena-index links to its first child and next sibling.
type Node struct {
	Move        chessboard.Move
	PN          uint32
	DN          uint32
	NextSibling NodeRef
	FirstChild  NodeRef
}

// Proved reports whether n is proved for the root's side (pn==0).
func (n *Node) Proved() bool { return n.PN == 0 }

// Disproved reports whether n is disproved (dn==0).
func (n *Node) Disproved() bool { return n.DN == 0 }

// Arena is a contiguously allocated block of Node, bump-allocated from
// index 1 (index 0 is RootRef's sentinel). Recycling pushes resolved
// subtrees' indices onto a FIFO queue, consumed before the bump
// pointer advances once the queue grows past the hysteresis threshold
// (spec.md §4.6 "Arena policy").
type Arena struct {
	nodes     []Node
	bump      NodeRef
	free      []NodeRef
	freeHead  int
	exhausted bool
}

// freeQueueThreshold is the hysteresis threshold below which the free
// queue is left alone and the bump pointer is used instead, avoiding
// immediate re-use of a just-freed node.
const freeQueueThreshold = 40

// lowWaterSlack is the "nodeCount - 100" / "fewer than 100 freed
// slots" exhaustion guard spec.md §4.6 specifies.
const lowWaterSlack = 100

// NewArena sizes the arena from a node budget; index 0 is reserved for
// RootRef and is never handed out by Alloc.
func NewArena(nodeCount int) *Arena {
	if nodeCount < 2 {
		nodeCount = 2
	}
	a := &Arena{
		nodes: make([]Node, nodeCount),
		bump:  1,
	}
	return a
}

// Reset clears the arena for a fresh search without reallocating.
func (a *Arena) Reset() {
	a.bump = 1
	a.free = a.free[:0]
	a.freeHead = 0
	a.exhausted = false
	for i := range a.nodes {
		a.nodes[i] = Node{}
	}
}

// Get returns the node at ref. Index 0 (RootRef) holds the tree's
// actual root node; since the root is never itself anyone's child or
// sibling, reusing its index as the "no child"/"no sibling" sentinel
// is safe, per spec.md §4.6's "a sentinel root plays the dual role".
func (a *Arena) Get(ref NodeRef) *Node { return &a.nodes[ref] }

// freeQueueLen is the number of not-yet-consumed entries left in free.
func (a *Arena) freeQueueLen() int { return len(a.free) - a.freeHead }

// Exhausted reports whether the last Alloc failed for lack of space.
func (a *Arena) Exhausted() bool { return a.exhausted }

// Alloc hands out the next node index: from the free queue once it is
// at least freeQueueThreshold deep, otherwise by bumping the
// high-water pointer. Returns ok=false once the arena is judged too
// close to full to continue (spec.md §4.6 "running out of memory").
func (a *Arena) Alloc() (NodeRef, bool) {
	if a.freeQueueLen() >= freeQueueThreshold {
		ref := a.free[a.freeHead]
		a.freeHead++
		if a.freeHead == len(a.free) {
			a.free = a.free[:0]
			a.freeHead = 0
		}
		a.nodes[ref] = Node{}
		return ref, true
	}

	// Reaching here means the free queue held fewer than
	// freeQueueThreshold (< lowWaterSlack) entries, so a bump pointer
	// this close to the end with so few freed slots behind it really
	// is running low — spec.md §4.6's "nodeCount - 100 and fewer than
	// 100 freed slots" exhaustion guard.
	if int(a.bump) >= len(a.nodes)-lowWaterSlack {
		a.exhausted = true
		return 0, false
	}

	ref := a.bump
	a.bump++
	a.nodes[ref] = Node{}
	return ref, true
}

// Recycle pushes ref (and, via the caller walking FirstChild/
// NextSibling, its whole resolved subtree) onto the free queue.
func (a *Arena) Recycle(ref NodeRef) {
	if ref == RootRef {
		return
	}
	a.free = append(a.free, ref)
}

// RecycleSubtree walks ref's children and siblings depth-first,
// recycling every node in the subtree rooted at ref — spec.md §4.6's
// "recycle any fully resolved child (and its whole subtree, linked via
// firstChild -> nextSibling)".
func (a *Arena) RecycleSubtree(ref NodeRef) {
	if ref == RootRef {
		return
	}
	n := a.Get(ref)
	child := n.FirstChild
	for child != RootRef {
		next := a.Get(child).NextSibling
		a.RecycleSubtree(child)
		child = next
	}
	a.Recycle(ref)
}
