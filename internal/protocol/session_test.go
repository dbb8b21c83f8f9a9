package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	s := NewSession(&buf, zerolog.Nop())
	return s, &buf
}

func TestUCIHandshakeReportsNameAndOptions(t *testing.T) {
	s, buf := newTestSession(t)
	if err := s.ExecuteLine("uci"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "id name Matefish") {
		t.Errorf("missing id name line: %q", out)
	}
	if !strings.Contains(out, "option name Threads") {
		t.Errorf("missing Threads option line: %q", out)
	}
	if !strings.HasSuffix(strings.TrimRight(out, "\n"), "uciok") {
		t.Errorf("expected uciok as the last line: %q", out)
	}
}

func TestIsReadyRespondsImmediately(t *testing.T) {
	s, buf := newTestSession(t)
	s.ExecuteLine("isready")
	if got := strings.TrimSpace(buf.String()); got != "readyok" {
		t.Errorf("expected readyok, got %q", got)
	}
}

func TestSetOptionRejectsUnknownName(t *testing.T) {
	s, buf := newTestSession(t)
	s.ExecuteLine("setoption name NotARealOption value 3")
	if !strings.Contains(buf.String(), "No such option") {
		t.Errorf("expected an unknown-option message, got %q", buf.String())
	}
}

func TestSetOptionThreads(t *testing.T) {
	s, _ := newTestSession(t)
	s.ExecuteLine("setoption name Threads value 4")
	if s.Options.Threads != 4 {
		t.Errorf("expected Threads=4, got %d", s.Options.Threads)
	}
}

func TestPositionStartposWithMoves(t *testing.T) {
	s, buf := newTestSession(t)
	s.ExecuteLine("position startpos moves e2e4 e7e5")
	if strings.Contains(buf.String(), "info string") {
		t.Errorf("did not expect an error, got %q", buf.String())
	}
	if s.pos.SideToMove != 0 {
		t.Errorf("expected white to move after two plies, got side %v", s.pos.SideToMove)
	}
}

func TestGoMateOneFindsBackRankMate(t *testing.T) {
	s, buf := newTestSession(t)
	s.ExecuteLine("position fen 6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	s.ExecuteLine("go mate 1")
	s.running.Wait()

	out := buf.String()
	if !strings.Contains(out, "Success! Mate in 1 found!") {
		t.Fatalf("expected a success message, got %q", out)
	}
	if !strings.Contains(out, "bestmove a1a8") {
		t.Errorf("expected bestmove a1a8, got %q", out)
	}
}

func TestGoPerftReportsNodeCount(t *testing.T) {
	s, buf := newTestSession(t)
	s.ExecuteLine("go perft 2")
	out := buf.String()
	if !strings.Contains(out, "Nodes searched: 400") {
		t.Errorf("expected perft(2) == 400 from startpos, got %q", out)
	}
}

func TestQuitStopsTheReadLoop(t *testing.T) {
	s, _ := newTestSession(t)
	s.ExecuteLine("position fen 4k3/8/3K4/8/8/8/8/7R w - - 0 1")
	s.ExecuteLine("go mate 10")
	if err := s.ExecuteLine("quit"); err != errQuit {
		t.Fatalf("expected errQuit, got %v", err)
	}
}
