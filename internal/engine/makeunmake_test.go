package engine

import (
	"testing"

	"github.com/corvidchess/corvid/internal/board"
)

func expectedPieceKey(e *Engine) uint64 {
	var key uint64
	for sq, p := range e.board {
		if p == board.NoPiece {
			continue
		}
		key ^= board.HashPiece[p][sq]
	}
	return key
}

func TestPieceKeyMatchesBoardXOR(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fenStr := range fens {
		e := New(1, NulLogger{})
		if err := e.SetPosition(fenStr); err != nil {
			t.Fatalf("invalid FEN %q: %v", fenStr, err)
		}
		root := e.Root()
		if got, want := root.pieceKey, expectedPieceKey(e); got != want {
			t.Errorf("%q: pieceKey = %#x, want %#x", fenStr, got, want)
		}

		for _, sm := range e.Generate(root, true) {
			e.Exec(sm.Move)
			n := e.Current()
			if got, want := n.pieceKey, expectedPieceKey(e); got != want {
				t.Errorf("%q: after %v, pieceKey = %#x, want %#x", fenStr, sm.Move, got, want)
			}
			e.Undo(sm.Move)
		}
	}
}

func TestExecUndoRoundTrips(t *testing.T) {
	fenStr := "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	e := New(1, NulLogger{})
	if err := e.SetPosition(fenStr); err != nil {
		t.Fatalf("invalid FEN: %v", err)
	}
	before := e.board
	beforeSeenLen := len(e.seen)

	for _, sm := range e.Generate(e.Root(), true) {
		e.Exec(sm.Move)
		e.Undo(sm.Move)

		if e.board != before {
			t.Fatalf("Exec/Undo of %v did not restore the board array", sm.Move)
		}
		if len(e.seen) != beforeSeenLen {
			t.Fatalf("Exec/Undo of %v left %d seen-set entries, want %d", sm.Move, len(e.seen), beforeSeenLen)
		}
		if e.ply != 0 {
			t.Fatalf("Exec/Undo of %v left ply at %d, want 0", sm.Move, e.ply)
		}
	}
}

func TestGeneratedMovesLeaveKingSafe(t *testing.T) {
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	}
	for _, fenStr := range fens {
		e := New(1, NulLogger{})
		if err := e.SetPosition(fenStr); err != nil {
			t.Fatalf("invalid FEN %q: %v", fenStr, err)
		}
		root := e.Root()
		mover := root.ColorToMove()
		for _, sm := range e.Generate(root, true) {
			e.Exec(sm.Move)
			n := e.Current()
			ksq := n.king[mover]
			if e.attackedBy(n, ksq, mover.Opposite()) {
				t.Errorf("%q: move %v leaves %v's king in check", fenStr, sm.Move, mover)
			}
			e.Undo(sm.Move)
		}
	}
}

func TestFiftyMoveRuleTripsAt100Halfmoves(t *testing.T) {
	e := New(1, NulLogger{})
	if err := e.SetPosition("8/8/8/4k3/8/8/8/4K2R w K - 99 1"); err != nil {
		t.Fatalf("invalid FEN: %v", err)
	}
	root := e.Root()
	var quiet board.Move
	for _, sm := range e.Generate(root, true) {
		if sm.Move.IsQuiet() && !sm.Move.IsCastle() {
			quiet = sm.Move
			break
		}
	}
	if quiet == board.NoMoveValue {
		t.Fatalf("expected at least one quiet non-castle move in this position")
	}
	e.Exec(quiet)
	if !e.isDraw(e.Current()) {
		t.Errorf("expected isDraw to be true at rcount %d", e.Current().rcount)
	}
}
