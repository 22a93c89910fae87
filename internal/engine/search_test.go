package engine

import "testing"

func TestSearchMaterialScoreNotMate(t *testing.T) {
	e := New(1, NulLogger{})
	if err := e.SetPosition("r1b1k2r/ppppnppp/2n2q2/2b5/3NP3/2P1B3/PP3PPP/RN1QKB1R w KQkq -"); err != nil {
		t.Fatalf("invalid FEN: %v", err)
	}
	e.SearchRoot(6)

	root := e.Root()
	entry, ok := e.TT.Probe(root.positionKey)
	if !ok {
		t.Fatalf("expected a TT entry for the root after search")
	}
	if isMateScore(int(entry.Score)) {
		t.Errorf("expected a plain centipawn score, got a mate score %d", entry.Score)
	}
}

func TestSearchStalemateHasNoMoves(t *testing.T) {
	e := New(1, NulLogger{})
	if err := e.SetPosition("8/8/8/8/8/6k1/6p1/6K1 w - -"); err != nil {
		t.Fatalf("invalid FEN: %v", err)
	}
	root := e.Root()
	moves := e.Generate(root, true)
	if len(moves) != 0 {
		t.Fatalf("expected stalemate (zero legal moves), got %d", len(moves))
	}
	if root.InCheck() {
		t.Fatalf("stalemate position must not be in check")
	}
}

func TestSearchFindsMateInTwo(t *testing.T) {
	e := New(1, NulLogger{})
	if err := e.SetPosition("4k3/8/4K3/4Q3/8/8/8/8 w - -"); err != nil {
		t.Fatalf("invalid FEN: %v", err)
	}
	e.SearchRoot(3)

	root := e.Root()
	entry, ok := e.TT.Probe(root.positionKey)
	if !ok {
		t.Fatalf("expected a TT entry for the root after search")
	}
	if !isMateScore(int(entry.Score)) {
		t.Fatalf("expected a mate score, got %d", entry.Score)
	}
	if entry.Score < 0 {
		t.Fatalf("expected White (side to move) to be winning, got negative score %d", entry.Score)
	}
}
