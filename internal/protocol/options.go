// Package protocol implements the text command loop (C9, spec.md §6):
// a line-oriented reader over stdin/stdout recognising uci, setoption,
// isready, ucinewgame, position, go, stop, quit, plus the debug
// extensions d/flip/bench/compiler/eval. Command dispatch is grounded
// on chessvariantengine-lib's interface.go (Run/ExecuteLine's
// scan-a-line, look-up-the-first-token shape); the command and option
// set themselves are grounded on original_source/src/uci.cpp.
package protocol

import "strings"

// Options packages every UCI-settable option spec.md §6 names into
// one struct built once at startup and mutated by setoption, replacing
// original_source's package-level Options map per spec.md §9's
// "global mutable singletons -> explicit configuration structs".
type Options struct {
	Threads           int
	KingMoves         int
	AllMoves          int
	ProofNumberSearch bool
	PNSHashMB         int
	RootMoveStats     bool
	SyzygyPath        string
	SyzygyProbeDepth  int
	SyzygyProbeLimit  int
	Syzygy50MoveRule  bool
	UCIChess960       bool
}

// DefaultOptions returns spec.md §8's "caps effectively disabled"
// boundary values plus one worker per logical CPU.
func DefaultOptions(defaultThreads int) Options {
	return Options{
		Threads:          defaultThreads,
		KingMoves:        8,
		AllMoves:         250,
		PNSHashMB:        16,
		SyzygyProbeDepth: 1,
		SyzygyProbeLimit: 7,
		Syzygy50MoveRule: true,
	}
}

// optionSpec is one entry of the "uci" response's option list and the
// setoption name table, mirroring uci.cpp's Options map population in
// UCI::init (not reproduced here; the teacher has no direct analogue,
// so the table is built straight from spec.md §6).
type optionSpec struct {
	name string
	typ  string
	def  string
	min  string
	max  string
}

var optionTable = []optionSpec{
	{name: "Threads", typ: "spin", def: "1", min: "1", max: "512"},
	{name: "KingMoves", typ: "spin", def: "8", min: "1", max: "8"},
	{name: "AllMoves", typ: "spin", def: "250", min: "1", max: "250"},
	{name: "ProofNumberSearch", typ: "check", def: "false"},
	{name: "PNS Hash", typ: "spin", def: "16", min: "1", max: "32768"},
	{name: "RootMoveStats", typ: "check", def: "false"},
	{name: "SyzygyPath", typ: "string", def: "<empty>"},
	{name: "SyzygyProbeDepth", typ: "spin", def: "1", min: "1", max: "100"},
	{name: "SyzygyProbeLimit", typ: "spin", def: "7", min: "0", max: "7"},
	{name: "Syzygy50MoveRule", typ: "check", def: "true"},
	{name: "UCI_Chess960", typ: "check", def: "false"},
}

// describeOptions renders the "uci" response's option lines.
func describeOptions() []string {
	lines := make([]string, 0, len(optionTable))
	for _, o := range optionTable {
		var b strings.Builder
		b.WriteString("option name ")
		b.WriteString(o.name)
		b.WriteString(" type ")
		b.WriteString(o.typ)
		b.WriteString(" default ")
		b.WriteString(o.def)
		if o.min != "" {
			b.WriteString(" min ")
			b.WriteString(o.min)
			b.WriteString(" max ")
			b.WriteString(o.max)
		}
		lines = append(lines, b.String())
	}
	return lines
}

// Set applies a setoption name/value pair, reporting an unknown-option
// error the caller turns into an "info string" line the way uci.cpp's
// setoption() does for a name not present in Options.
func (o *Options) Set(name, value string) error {
	switch name {
	case "Threads":
		return setInt(&o.Threads, value, 1, 512)
	case "KingMoves":
		return setInt(&o.KingMoves, value, 1, 8)
	case "AllMoves":
		return setInt(&o.AllMoves, value, 1, 250)
	case "ProofNumberSearch":
		return setBool(&o.ProofNumberSearch, value)
	case "PNS Hash":
		return setInt(&o.PNSHashMB, value, 1, 32768)
	case "RootMoveStats":
		return setBool(&o.RootMoveStats, value)
	case "SyzygyPath":
		o.SyzygyPath = value
		return nil
	case "SyzygyProbeDepth":
		return setInt(&o.SyzygyProbeDepth, value, 1, 100)
	case "SyzygyProbeLimit":
		return setInt(&o.SyzygyProbeLimit, value, 0, 7)
	case "Syzygy50MoveRule":
		return setBool(&o.Syzygy50MoveRule, value)
	case "UCI_Chess960":
		return setBool(&o.UCIChess960, value)
	default:
		return errUnknownOption(name)
	}
}

type errUnknownOption string

func (e errUnknownOption) Error() string { return "No such option: " + string(e) }
