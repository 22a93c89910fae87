package engine

import "testing"

func perftHelper(t *testing.T, fenStr string, expected map[int]uint64) {
	t.Helper()
	for depth, want := range expected {
		if testing.Short() && want > 1000000 {
			continue
		}
		e := New(1, NulLogger{})
		if err := e.SetPosition(fenStr); err != nil {
			t.Fatalf("invalid FEN %q: %v", fenStr, err)
		}
		if got := e.Perft(depth); got != want {
			t.Errorf("perft(%q, %d) = %d, want %d", fenStr, depth, got, want)
		}
	}
}

func TestPerftStartPosition(t *testing.T) {
	perftHelper(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -", map[int]uint64{
		5: 4865609,
	})
}

func TestPerftKiwipete(t *testing.T) {
	perftHelper(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -", map[int]uint64{
		4: 4085603,
	})
}

func TestPerftEndgameRookPawn(t *testing.T) {
	perftHelper(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -", map[int]uint64{
		5: 674624,
	})
}

func TestPerftPromotionHeavy(t *testing.T) {
	perftHelper(t, "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", map[int]uint64{
		4: 422333,
	})
}

func TestPerftKnightFork(t *testing.T) {
	perftHelper(t, "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", map[int]uint64{
		4: 2103487,
	})
}

func TestPerftCastleRich(t *testing.T) {
	perftHelper(t, "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", map[int]uint64{
		4: 3894594,
	})
}
