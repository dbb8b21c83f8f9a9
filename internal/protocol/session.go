package protocol

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jkorten/matefish/internal/chessboard"
	"github.com/jkorten/matefish/internal/matevalue"
	"github.com/jkorten/matefish/internal/pns"
	"github.com/jkorten/matefish/internal/pool"
	"github.com/jkorten/matefish/internal/rank"
	"github.com/jkorten/matefish/internal/search"
	"github.com/jkorten/matefish/internal/tablebase"
)

const engineName = "Matefish"

// Session is the command loop's state: the current position, the
// options table, and the bookkeeping a running "go" needs so a later
// "stop"/"quit" can reach it. One Session serves one stdio connection,
// the way original_source's UCI::loop owns one Position and one
// StateListPtr for the process's lifetime.
type Session struct {
	Out io.Writer
	Log zerolog.Logger

	Options Options

	pos *chessboard.Position

	mu      sync.Mutex
	cancel  context.CancelFunc
	running sync.WaitGroup

	id uuid.UUID
}

// NewSession builds a Session at the standard starting position with
// default options, ready for ExecuteLine.
func NewSession(out io.Writer, log zerolog.Logger) *Session {
	id := uuid.New()
	return &Session{
		Out:     out,
		Log:     log.With().Str("session", id.String()).Logger(),
		Options: DefaultOptions(pool.DefaultThreads()),
		pos:     chessboard.NewInitialPosition(),
		id:      id,
	}
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.Out, format+"\n", args...)
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.Out, line)
}

// errQuit unwinds Run's read loop without being logged as a protocol
// error, the Go analogue of uci.cpp's "token != quit" loop condition.
var errQuit = fmt.Errorf("quit")

// Run reads lines from in until "quit" or EOF, dispatching each to the
// matching handler — chessvariantengine-lib's interface.go Run/
// ExecuteLine shape (scan a line, split on whitespace, switch on the
// first token), adapted from that package's switch-on-command-string
// to this repo's per-command method set.
func (s *Session) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if err := s.ExecuteLine(scanner.Text()); err == errQuit {
			break
		}
	}
	s.running.Wait()
}

// ExecuteLine parses and dispatches one input line. Unknown commands
// and malformed arguments are reported as a single "info string" line
// and leave state unchanged (spec.md §7's input-error handling).
func (s *Session) ExecuteLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "uci":
		s.handleUCI()
	case "isready":
		s.println("readyok")
	case "ucinewgame":
		s.handleNewGame()
	case "setoption":
		s.handleSetOption(args)
	case "position":
		s.handlePosition(args)
	case "go":
		s.handleGo(args)
	case "stop":
		s.handleStop()
	case "quit":
		s.handleStop()
		s.running.Wait()
		return errQuit
	case "d":
		s.println(s.pos.Encode())
	case "flip":
		s.pos = s.pos.Flip()
	case "eval":
		s.printf("info string static material %d", materialBalance(s.pos))
	case "compiler":
		s.println(compilerInfo())
	case "bench":
		s.handleBench()
	default:
		if !strings.HasPrefix(cmd, "#") {
			s.printf("info string Unknown command: %s", line)
		}
	}
	return nil
}

func (s *Session) handleUCI() {
	s.printf("id name %s", engineName)
	s.printf("id author jkorten")
	for _, l := range describeOptions() {
		s.println(l)
	}
	s.println("uciok")
}

func (s *Session) handleNewGame() {
	s.handleStop()
	s.running.Wait()
	s.pos = chessboard.NewInitialPosition()
	s.id = uuid.New()
	s.Log = s.Log.With().Str("session", s.id.String()).Logger()
}

func (s *Session) handleSetOption(args []string) {
	name, value, ok := parseSetOption(args)
	if !ok {
		s.printf("info string Malformed setoption command")
		return
	}
	if err := s.Options.Set(name, value); err != nil {
		s.printf("info string %s", err.Error())
	}
}

// parseSetOption splits "name <name…> value <value…>" the way
// uci.cpp's setoption() accumulates space-containing tokens.
func parseSetOption(args []string) (name, value string, ok bool) {
	i := 0
	if i >= len(args) || args[i] != "name" {
		return "", "", false
	}
	i++
	var nameParts []string
	for i < len(args) && args[i] != "value" {
		nameParts = append(nameParts, args[i])
		i++
	}
	if len(nameParts) == 0 {
		return "", "", false
	}
	if i < len(args) && args[i] == "value" {
		i++
		value = strings.Join(args[i:], " ")
	}
	return strings.Join(nameParts, " "), value, true
}

func (s *Session) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}
	pos, rest, err := parsePositionArgs(args)
	if err != nil {
		s.printf("info string %s", err.Error())
		return
	}
	for _, tok := range rest {
		mv, ok := chessboard.ParseMoveUCI(pos, tok)
		if !ok {
			s.printf("info string Illegal move in position command: %s", tok)
			return
		}
		next, ok := pos.ApplyMove(mv)
		if !ok {
			s.printf("info string Illegal move in position command: %s", tok)
			return
		}
		pos = next
	}
	s.pos = pos
}

func parsePositionArgs(args []string) (*chessboard.Position, []string, error) {
	if args[0] == "startpos" {
		rest := args[1:]
		if len(rest) > 0 && rest[0] == "moves" {
			rest = rest[1:]
		}
		return chessboard.NewInitialPosition(), rest, nil
	}
	if args[0] != "fen" {
		return nil, nil, fmt.Errorf("malformed position command")
	}
	fenTokens := args[1:]
	var rest []string
	for i, tok := range fenTokens {
		if tok == "moves" {
			rest = fenTokens[i+1:]
			fenTokens = fenTokens[:i]
			break
		}
	}
	pos, err := chessboard.DecodeFEN(strings.Join(fenTokens, " "))
	if err != nil {
		return nil, nil, err
	}
	return pos, rest, nil
}

// oracle builds the tablebase oracle the current Options describe: a
// NullOracle when no Syzygy path is configured, the BasicOracle
// (direct computation of the small basic-mate endgames) otherwise —
// there being no Syzygy file parser in this repo (see DESIGN.md).
func (s *Session) oracle() tablebase.Oracle {
	if s.Options.SyzygyPath == "" {
		return tablebase.NullOracle{}
	}
	return tablebase.NewBasicOracle()
}

func (s *Session) handleGo(args []string) {
	s.handleStop()
	s.running.Wait()

	limits, err := parseGoArgs(s.pos, args)
	if err != nil {
		s.printf("info string %s", err.Error())
		return
	}

	if limits.Perft > 0 {
		s.runPerft(limits.Perft)
		return
	}

	if warned := limits.NormalizeMate(); warned {
		s.println("info string Infinite analysis or game playing mode not supported!")
		s.println("info string Please set a depth or mate limit.")
	}
	limits.StartTime = time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	s.running.Add(1)
	go func() {
		defer s.running.Done()
		defer cancel()
		if s.Options.ProofNumberSearch {
			s.runPNS(ctx, limits)
		} else {
			s.runAlphaBeta(ctx, limits)
		}
	}()
}

func (s *Session) handleStop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

func parseGoArgs(pos *chessboard.Position, args []string) (search.Limits, error) {
	var limits search.Limits
	i := 0
	for i < len(args) {
		switch args[i] {
		case "searchmoves":
			i++
			for i < len(args) {
				mv, ok := chessboard.ParseMoveUCI(pos, args[i])
				if !ok {
					break
				}
				limits.SearchMoves = append(limits.SearchMoves, mv)
				i++
			}
		case "depth", "mate":
			i++
			if i >= len(args) {
				return limits, fmt.Errorf("missing value for %s", args[i-1])
			}
			n, err := strconv.Atoi(args[i])
			if err != nil {
				return limits, fmt.Errorf("invalid %s value: %s", args[i-1], args[i])
			}
			limits.Mate = n
			i++
		case "nodes":
			i++
			if i >= len(args) {
				return limits, fmt.Errorf("missing value for nodes")
			}
			n, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				return limits, fmt.Errorf("invalid nodes value: %s", args[i])
			}
			limits.Nodes = n
			i++
		case "movetime":
			i++
			if i >= len(args) {
				return limits, fmt.Errorf("missing value for movetime")
			}
			n, err := strconv.Atoi(args[i])
			if err != nil {
				return limits, fmt.Errorf("invalid movetime value: %s", args[i])
			}
			limits.MovetimeMs = n
			i++
		case "perft":
			i++
			if i >= len(args) {
				return limits, fmt.Errorf("missing value for perft")
			}
			n, err := strconv.Atoi(args[i])
			if err != nil {
				return limits, fmt.Errorf("invalid perft value: %s", args[i])
			}
			limits.Perft = n
			i++
		case "infinite":
			limits.Infinite = true
			i++
		default:
			i++
		}
	}
	return limits, nil
}

func (s *Session) runPerft(depth int) {
	start := time.Now()
	lines, total := s.pos.PerftDivide(depth)
	for _, l := range lines {
		s.printf("%s: %d", moveString(s.pos, l.Move, s.Options.UCIChess960), l.Nodes)
	}
	s.printf("\nNodes searched: %d", total)
	s.Log.Debug().Dur("elapsed", time.Since(start)).Int64("nodes", total).Msg("perft")
}

func (s *Session) runAlphaBeta(ctx context.Context, limits search.Limits) {
	root := s.pos
	legal := root.GenerateLegalMoves()
	if len(legal) == 0 {
		s.reportNoLegalMoves(root)
		return
	}

	if s.Options.RootMoveStats {
		for _, rm := range rank.ScoreAndRank(root, 0) {
			s.printf("info string %s rank %d", chessboard.MoveUCI(rm.Move), rm.Rank)
		}
	}

	p := pool.New(s.Options.Threads, s.oracle(), search.Options{KingMoves: s.Options.KingMoves, AllMoves: s.Options.AllMoves}, s.Log)

	res, err := p.Run(ctx, root, limits)
	if err != nil {
		s.Log.Error().Err(err).Msg("search pool failed")
	}

	s.reportResult(root, limits, res.Best, res.Nodes, res.TBHits, res.SelDepth)
}

// pnsStopFlag bridges ctx cancellation onto the atomic.Bool pns.Search
// polls, the same bridge pool.Run uses internally for its own workers
// (search.Worker has no context parameter either).
func pnsStopFlag(ctx context.Context) *atomic.Bool {
	var stop atomic.Bool
	go func() {
		<-ctx.Done()
		stop.Store(true)
	}()
	return &stop
}

func (s *Session) runPNS(ctx context.Context, limits search.Limits) {
	root := s.pos
	legal := root.GenerateLegalMoves()
	if len(legal) == 0 {
		s.reportNoLegalMoves(root)
		return
	}

	sr := &pns.Search{
		Root:    root,
		Limits:  limits,
		Options: search.Options{KingMoves: s.Options.KingMoves, AllMoves: s.Options.AllMoves},
		Oracle:  s.oracle(),
		Stop:    pnsStopFlag(ctx),
	}
	sr.Run()

	if sr.Exhausted {
		s.println("info string Running out of memory")
	}

	elapsed := limits.Elapsed()
	if len(sr.BestPV) == 0 {
		s.printf("info string Failure! No mate in %d found!", limits.Mate)
		s.println(infoLine(root, limits.TargetDepth(), limits.TargetDepth(), sr.Nodes, 0, elapsed, matevalue.VDraw, nil, s.Options.UCIChess960))
		s.println(bestmoveLine(root, anyLegalMove(root), s.Options.UCIChess960))
		return
	}

	s.printf("info string Success! Mate in %d found!", limits.Mate)
	s.println(infoLine(root, len(sr.BestPV), len(sr.BestPV), sr.Nodes, 0, elapsed, sr.BestScore, sr.BestPV, s.Options.UCIChess960))
	s.println(bestmoveLine(root, sr.BestPV[0], s.Options.UCIChess960))
}

func (s *Session) reportNoLegalMoves(root *chessboard.Position) {
	if root.IsInCheck(root.SideToMove) {
		s.println("info depth 0 score mate 0")
	} else {
		s.println("info depth 0 score cp 0")
	}
	s.println("bestmove (none)")
}

func (s *Session) reportResult(root *chessboard.Position, limits search.Limits, best *search.RootMove, nodes, tbhits int64, seldepth int) {
	elapsed := limits.Elapsed()
	if best == nil || !matevalue.IsMateScore(best.Score) {
		s.printf("info string Failure! No mate in %d found!", limits.Mate)
		score := matevalue.VDraw
		var pv []chessboard.Move
		if best != nil {
			score = best.Score
			pv = best.PV
		}
		s.println(infoLine(root, limits.TargetDepth(), seldepth, nodes, tbhits, elapsed, score, pv, s.Options.UCIChess960))
		mv := anyLegalMove(root)
		if best != nil {
			mv = best.Move()
		}
		s.println(bestmoveLine(root, mv, s.Options.UCIChess960))
		return
	}

	s.printf("info string Success! Mate in %d found!", limits.Mate)
	s.println(infoLine(root, len(best.PV), seldepth, nodes, tbhits, elapsed, best.Score, best.PV, s.Options.UCIChess960))
	s.println(bestmoveLine(root, best.Move(), s.Options.UCIChess960))
}

func anyLegalMove(pos *chessboard.Position) chessboard.Move {
	legal := pos.GenerateLegalMoves()
	if len(legal) == 0 {
		return chessboard.Move{}
	}
	return legal[0]
}

// materialBalance is the "eval" command's static material count, seen
// from the side to move — diagnostic only, never consulted by the
// mate search itself (spec.md Non-goals exclude general evaluation).
func materialBalance(pos *chessboard.Position) int {
	var values = map[chessboard.PieceType]int{
		chessboard.PiecePawn: 100, chessboard.PieceKnight: 300,
		chessboard.PieceBishop: 300, chessboard.PieceRook: 500,
		chessboard.PieceQueen: 900,
	}
	total := 0
	for _, pt := range []chessboard.PieceType{chessboard.PiecePawn, chessboard.PieceKnight, chessboard.PieceBishop, chessboard.PieceRook, chessboard.PieceQueen} {
		total += values[pt] * pos.CountPieces(pos.SideToMove, pt)
		total -= values[pt] * pos.CountPieces(pos.SideToMove.Opposite(), pt)
	}
	return total
}
