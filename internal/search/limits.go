// Package search implements the Root Preparer (C4), the α/β Mate
// Search (C5) and the Tablebase Walker (C7) of spec.md §4.2-§4.3 and
// §4.7. It is grounded on the teacher's internal/engine package —
// search.go's iterative-deepening root loop and goroutine fan-out,
// vcf.go's recursive attacker/defender structure — generalized from
// the teacher's material-evaluation search to spec.md's pure
// mate-distance search, with the extensions, frontier pruning and
// root-filter schedule §4.3 adds on top.
package search

import (
	"time"

	"github.com/jkorten/matefish/internal/chessboard"
	"github.com/jkorten/matefish/internal/matevalue"
)

// Limits mirrors spec.md §3's SearchLimits record.
type Limits struct {
	SearchMoves []chessboard.Move
	MovetimeMs  int
	Nodes       int64
	Mate        int
	Perft       int
	Infinite    bool
	StartTime   time.Time
}

// NormalizeMate enforces spec.md §7's "mate 0 coerced to mate 1 with a
// warning" rule. It returns whether coercion happened, so the caller
// (the protocol layer) can print the warning.
func (l *Limits) NormalizeMate() (warned bool) {
	if l.Mate == 0 {
		l.Mate = 1
		return true
	}
	return false
}

// TargetDepth and FullDepth implement spec.md §3's worker invariants:
// targetDepth = 2*mate - 1; fullDepth = max(targetDepth - (mate > 5 ? 4 : 2), 1).
func (l Limits) TargetDepth() int { return 2*l.Mate - 1 }

func (l Limits) FullDepth() int {
	shrink := 2
	if l.Mate > 5 {
		shrink = 4
	}
	fd := l.TargetDepth() - shrink
	if fd < 1 {
		fd = 1
	}
	return fd
}

// Alpha is the search window floor spec.md §4.3 derives from mate:
// VMate - 2*mate.
func (l Limits) Alpha() matevalue.Value {
	return matevalue.VMate - matevalue.Value(2*l.Mate)
}

// Elapsed reports how long the search has been running.
func (l Limits) Elapsed() time.Duration { return time.Since(l.StartTime) }

// TimeUp reports whether movetime has elapsed, when one was set.
func (l Limits) TimeUp() bool {
	if l.MovetimeMs <= 0 {
		return false
	}
	return l.Elapsed() >= time.Duration(l.MovetimeMs)*time.Millisecond
}
