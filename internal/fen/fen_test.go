package fen

import "testing"

func TestParseFormatRoundTrips(t *testing.T) {
	cases := []string{
		Start,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, in := range cases {
		pos, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		out := Format(pos)
		if out != in {
			t.Errorf("round trip mismatch:\n got  %q\n want %q", out, in)
		}
	}
}

func TestParseRejectsMalformedFEN(t *testing.T) {
	cases := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"not-a-fen w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
	}
	for _, in := range cases {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) expected an error, got nil", in)
		}
	}
}

func TestParseEnPassantSquare(t *testing.T) {
	pos, err := Parse("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !pos.HasEPSquare {
		t.Fatalf("expected HasEPSquare to be true")
	}
	if pos.EPSquare.String() != "d6" {
		t.Errorf("EPSquare = %v, want d6", pos.EPSquare)
	}
}
