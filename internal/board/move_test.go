package board

import "testing"

func TestMovePacksAndUnpacksExactly(t *testing.T) {
	cases := []struct {
		typ              MoveType
		from, to         Square
		piece, cap, prom Piece
	}{
		{Normal, E2, E4, MakePiece(White, Pawn), NoPiece, NoPiece},
		{PawnCapture, D4, E5, MakePiece(White, Pawn), MakePiece(Black, Pawn), NoPiece},
		{EnPassant, E5, D6, MakePiece(White, Pawn), MakePiece(Black, Pawn), NoPiece},
		{Normal, E7, E8, MakePiece(Black, Pawn), NoPiece, MakePiece(Black, Queen)},
		{CastleShort, E1, G1, MakePiece(White, King), NoPiece, NoPiece},
		{KingMove, H8, H7, MakePiece(Black, King), MakePiece(White, Rook), NoPiece},
	}

	for _, c := range cases {
		m := NewMove(c.typ, c.from, c.to, c.piece, c.cap, c.prom)
		if got := m.Type(); got != c.typ {
			t.Errorf("Type() = %v, want %v", got, c.typ)
		}
		if got := m.From(); got != c.from {
			t.Errorf("From() = %v, want %v", got, c.from)
		}
		if got := m.To(); got != c.to {
			t.Errorf("To() = %v, want %v", got, c.to)
		}
		if got := m.Piece(); got != c.piece {
			t.Errorf("Piece() = %v, want %v", got, c.piece)
		}
		if got := m.Captured(); got != c.cap {
			t.Errorf("Captured() = %v, want %v", got, c.cap)
		}
		if got := m.Promoted(); got != c.prom {
			t.Errorf("Promoted() = %v, want %v", got, c.prom)
		}
	}
}

func TestMoveStringCoordinateNotation(t *testing.T) {
	cases := []struct {
		m    Move
		want string
	}{
		{NoMoveValue, "0000"},
		{NewMove(Normal, E2, E4, MakePiece(White, Pawn), NoPiece, NoPiece), "e2e4"},
		{NewMove(Normal, E7, E8, MakePiece(White, Pawn), NoPiece, MakePiece(White, Queen)), "e7e8q"},
	}
	for _, c := range cases {
		if got := c.m.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestMoveClassification(t *testing.T) {
	quiet := NewMove(Normal, E2, E4, MakePiece(White, Pawn), NoPiece, NoPiece)
	if !quiet.IsQuiet() || quiet.IsCapture() || quiet.IsPromotion() {
		t.Errorf("expected a plain quiet pawn push")
	}

	capture := NewMove(PawnCapture, D4, E5, MakePiece(White, Pawn), MakePiece(Black, Pawn), NoPiece)
	if capture.IsQuiet() || !capture.IsCapture() {
		t.Errorf("expected a capture")
	}

	ep := NewMove(EnPassant, E5, D6, MakePiece(White, Pawn), MakePiece(Black, Pawn), NoPiece)
	if !ep.IsCapture() {
		t.Errorf("en passant must report IsCapture")
	}

	castle := NewMove(CastleShort, E1, G1, MakePiece(White, King), NoPiece, NoPiece)
	if !castle.IsCastle() || !castle.IsQuiet() {
		t.Errorf("castle should be a quiet, castle-flagged move")
	}

	promo := NewMove(Normal, E7, E8, MakePiece(White, Pawn), NoPiece, MakePiece(White, Queen))
	if !promo.IsPromotion() || promo.IsQuiet() {
		t.Errorf("promotion should not classify as quiet")
	}
}
