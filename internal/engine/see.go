package engine

import "github.com/corvidchess/corvid/internal/board"

// staticExchange evaluates the net material swing of a capture (or a
// quiet move walking into an attacked square) at to, by repeatedly
// replacing the least valuable attacker on both sides until one side
// has none left. It is a loop over an attackers bitboard rather than
// the source engine's recursive piece-removal formulation.
func (e *Engine) staticExchange(n *Node, from, to board.Square, side board.Color) int {
	occ := n.Occupied()
	var gain [32]int
	depth := 0

	target := e.board[to]
	gain[0] = target.Value()
	attacker := e.board[from]

	occ &^= from.Bitboard()
	mayXray := n.pc[board.MakePiece(board.White, board.Bishop)] | n.pc[board.MakePiece(board.Black, board.Bishop)] |
		n.pc[board.MakePiece(board.White, board.Rook)] | n.pc[board.MakePiece(board.Black, board.Rook)] |
		n.pc[board.MakePiece(board.White, board.Queen)] | n.pc[board.MakePiece(board.Black, board.Queen)] |
		n.pc[board.MakePiece(board.White, board.Pawn)] | n.pc[board.MakePiece(board.Black, board.Pawn)]

	attackers := e.attackersTo(n, to, occ)
	side = side.Opposite()

	for {
		depth++
		gain[depth] = attacker.Value() - gain[depth-1]
		if max(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		sideAttackers := attackers & n.pc[side]
		if sideAttackers == 0 {
			break
		}

		sq, bb, found := leastValuableAttacker(e, sideAttackers)
		if !found {
			break
		}
		attacker = e.board[sq]
		occ &^= bb
		if mayXray&bb != 0 {
			attackers |= e.attackersTo(n, to, occ) & occ
		}
		attackers &^= bb
		side = side.Opposite()

		if depth >= 31 {
			break
		}
	}

	for depth--; depth > 0; depth-- {
		gain[depth-1] = -max(-gain[depth-1], gain[depth])
	}
	return gain[0]
}

// leastValuableAttacker picks the cheapest piece in bb, returning its
// square and single-bit bitboard.
func leastValuableAttacker(e *Engine, bb board.Bitboard) (board.Square, board.Bitboard, bool) {
	if bb == 0 {
		return 0, 0, false
	}
	best := board.NoSquare
	bestValue := 1 << 30
	work := bb
	for work != 0 {
		var sq board.Square
		sq, work = work.Pop()
		v := e.board[sq].Value()
		if v < bestValue {
			bestValue = v
			best = sq
		}
	}
	return best, best.Bitboard(), true
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// seeCapture is the convenience entry point move ordering uses: SEE
// value of capturing at m.To() with the piece moving from m.From().
func (e *Engine) seeCapture(n *Node, m board.Move) int {
	return e.staticExchange(n, m.From(), m.To(), n.ColorToMove())
}
