package engine

import "github.com/corvidchess/corvid/internal/board"

// attackersTo returns every piece attacking sq given an explicit
// occupancy bitboard (so callers can probe "as if" a piece were
// removed, e.g. the en-passant horizontal pin check).
func (e *Engine) attackersTo(n *Node, sq board.Square, occ board.Bitboard) board.Bitboard {
	var attackers board.Bitboard

	attackers |= board.BbPawnAttack[board.Black][sq] & n.pc[board.MakePiece(board.White, board.Pawn)]
	attackers |= board.BbPawnAttack[board.White][sq] & n.pc[board.MakePiece(board.Black, board.Pawn)]

	knights := n.pc[board.MakePiece(board.White, board.Knight)] | n.pc[board.MakePiece(board.Black, board.Knight)]
	attackers |= board.BbKnightAttack[sq] & knights

	kings := n.pc[board.MakePiece(board.White, board.King)] | n.pc[board.MakePiece(board.Black, board.King)]
	attackers |= board.BbKingAttack[sq] & kings

	bishopsQueens := n.pc[board.MakePiece(board.White, board.Bishop)] | n.pc[board.MakePiece(board.Black, board.Bishop)] |
		n.pc[board.MakePiece(board.White, board.Queen)] | n.pc[board.MakePiece(board.Black, board.Queen)]
	if diag := board.SlidingAttack(sq, board.BishopDirections, occ); diag&bishopsQueens != 0 {
		attackers |= diag & bishopsQueens
	}

	rooksQueens := n.pc[board.MakePiece(board.White, board.Rook)] | n.pc[board.MakePiece(board.Black, board.Rook)] |
		n.pc[board.MakePiece(board.White, board.Queen)] | n.pc[board.MakePiece(board.Black, board.Queen)]
	if orth := board.SlidingAttack(sq, board.RookDirections, occ); orth&rooksQueens != 0 {
		attackers |= orth & rooksQueens
	}

	return attackers
}

// attackedBy reports whether any piece of color c attacks sq.
func (e *Engine) attackedBy(n *Node, sq board.Square, c board.Color) bool {
	return e.attackersTo(n, sq, n.Occupied())&n.pc[c] != 0
}

// computeSliderCache refreshes slider[sq] for every bishop, rook and
// queen currently on the board.
func (e *Engine) computeSliderCache(n *Node) {
	occ := n.Occupied()
	for _, base := range []board.Piece{board.Bishop, board.Rook, board.Queen} {
		for _, c := range []board.Color{board.White, board.Black} {
			bb := n.pc[board.MakePiece(c, base)]
			for bb != 0 {
				var sq board.Square
				sq, bb = bb.Pop()
				n.slider[sq] = board.SlidingAttack(sq, dirsFor(base), occ)
			}
		}
	}
}

func dirsFor(base board.Piece) []board.Direction {
	switch base {
	case board.Bishop:
		return board.BishopDirections
	case board.Rook:
		return board.RookDirections
	default:
		return board.QueenDirections
	}
}

// computeChecksAndPins recomputes chkrs, kcross, kdiags and pinned[]
// from scratch. This is the simplified, always-full-recompute
// replacement for the source engine's lazy incremental refresh - see
// DESIGN.md.
func (e *Engine) computeChecksAndPins(n *Node) {
	occ := n.Occupied()
	for _, c := range []board.Color{board.White, board.Black} {
		ksq := n.king[c]
		n.kcross[c] = board.KingCrossRays(ksq)
		n.kdiags[c] = board.KingDiagRays(ksq)
		n.pinned[c] = e.computePinned(n, c, ksq, occ)
	}

	stm := n.ColorToMove()
	n.chkrs = e.attackersTo(n, n.king[stm], occ) & n.pc[stm.Opposite()]
}

// computePinned walks each of the 8 rays from ksq, stopping at the
// first friendly piece; if the next piece along that ray is an enemy
// slider attacking along it, the friendly piece is pinned.
func (e *Engine) computePinned(n *Node, c board.Color, ksq board.Square, occ board.Bitboard) board.Bitboard {
	var pinned board.Bitboard
	enemy := c.Opposite()

	check := func(dirs []board.Direction, sliderBase1, sliderBase2 board.Piece) {
		sliders := n.pc[board.MakePiece(enemy, sliderBase1)] | n.pc[board.MakePiece(enemy, sliderBase2)]
		for _, d := range dirs {
			ray := board.RayBb[ksq][d]
			blockers := ray & occ
			if blockers == 0 {
				continue
			}
			first, _ := firstAlong(blockers, d)
			if first.Bitboard()&n.pc[c] == 0 {
				continue // first blocker is enemy or doesn't exist: no pin
			}
			rest := blockers &^ first.Bitboard()
			if rest == 0 {
				continue
			}
			second, _ := firstAlong(rest, d)
			if second.Bitboard()&sliders != 0 {
				pinned |= first.Bitboard()
			}
		}
	}

	check(board.RookDirections, board.Rook, board.Queen)
	check(board.BishopDirections, board.Bishop, board.Queen)
	return pinned
}

// firstAlong returns the square in bb nearest the ray origin when
// walking in direction d.
func firstAlong(bb board.Bitboard, d board.Direction) (board.Square, bool) {
	if bb == 0 {
		return 0, false
	}
	switch d {
	case board.North, board.NorthEast, board.East, board.NorthWest:
		sq, _ := bb.LSB()
		return sq, true
	default:
		sq, _ := bb.MSB()
		return sq, true
	}
}

// isPinnedMoveLegal rejects from->to moves where from is pinned and to
// leaves the pinning ray.
func isPinnedMoveLegal(n *Node, c board.Color, from, to board.Square) bool {
	if n.pinned[c]&from.Bitboard() == 0 {
		return true
	}
	ksq := n.king[c]
	// Legal iff from, to and ksq are collinear (same ray).
	return collinear(ksq, from, to)
}

func collinear(a, b, c board.Square) bool {
	ar, af := a.Rank(), a.File()
	br, bf := b.Rank(), b.File()
	cr, cf := c.Rank(), c.File()
	return (br-ar)*(cf-af) == (bf-af)*(cr-ar)
}

// epHorizontalPinLegal implements the special en-passant pin check:
// simulate removing both the capturing and captured pawns, and reject
// if an enemy rook/queen then sees the king along the rank.
func (e *Engine) epHorizontalPinLegal(n *Node, c board.Color, fromSq, capturedSq board.Square) bool {
	ksq := n.king[c]
	if ksq.Rank() != fromSq.Rank() {
		return true
	}
	occ := n.Occupied() &^ fromSq.Bitboard() &^ capturedSq.Bitboard()
	enemy := c.Opposite()
	rooksQueens := n.pc[board.MakePiece(enemy, board.Rook)] | n.pc[board.MakePiece(enemy, board.Queen)]
	attack := board.SlidingAttack(ksq, board.RookDirections, occ)
	return attack&rooksQueens == 0
}
