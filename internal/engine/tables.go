package engine

import "github.com/corvidchess/corvid/internal/board"

// Piece-square tables, White's perspective, a1..h8 (rank-major, same
// order as board.Square). Black's value for square sq is looked up at
// the vertically mirrored square. Values are in centipawns and follow
// the familiar "simplified evaluation" shape: centralize knights and
// bishops, keep the king safe in the midgame and active in the
// endgame, push pawns toward promotion.
var pstPawnMid = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var pstPawnEnd = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	10, 10, 10, 10, 10, 10, 10, 10,
	20, 20, 20, 20, 20, 20, 20, 20,
	35, 35, 35, 35, 35, 35, 35, 35,
	55, 55, 55, 55, 55, 55, 55, 55,
	80, 80, 80, 80, 80, 80, 80, 80,
	110, 110, 110, 110, 110, 110, 110, 110,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var pstKnight = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var pstBishop = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var pstRook = [64]int{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var pstQueen = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var pstKingMid = [64]int{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

var pstKingEnd = [64]int{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}

// mirror flips a White-perspective square vertically for Black's lookup.
func mirror(sq board.Square) board.Square {
	return board.RankFile(7-sq.Rank(), sq.File())
}

func pstLookup(tbl *[64]int, c board.Color, sq board.Square) int {
	if c == board.Black {
		sq = mirror(sq)
	}
	return tbl[sq]
}

// pstMid returns the midgame piece-square value for p on sq.
func pstMid(p board.Piece, sq board.Square) int {
	c := p.Color()
	switch p.Base() {
	case board.Pawn:
		return pstLookup(&pstPawnMid, c, sq)
	case board.Knight:
		return pstLookup(&pstKnight, c, sq)
	case board.Bishop:
		return pstLookup(&pstBishop, c, sq)
	case board.Rook:
		return pstLookup(&pstRook, c, sq)
	case board.Queen:
		return pstLookup(&pstQueen, c, sq)
	case board.King:
		return pstLookup(&pstKingMid, c, sq)
	}
	return 0
}

// pstEnd returns the endgame piece-square value for p on sq.
func pstEnd(p board.Piece, sq board.Square) int {
	c := p.Color()
	switch p.Base() {
	case board.Pawn:
		return pstLookup(&pstPawnEnd, c, sq)
	case board.King:
		return pstLookup(&pstKingEnd, c, sq)
	default:
		return pstMid(p, sq)
	}
}

// StartMaterial is the non-king, non-pawn material each side starts
// with; ratio = enemyMaterial/StartMaterial blends king PSTs and
// scales king-attack terms between midgame and endgame.
const StartMaterial = 2*300 + 2*320 + 2*500 + 975
