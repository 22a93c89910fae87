package engine

import "github.com/corvidchess/corvid/internal/board"

// orderScore computes the move's generation-time sort key: the
// piece-square delta, static exchange value for captures, flat bonuses
// by move type, and a killer or history bonus for quiets.
func (e *Engine) orderScore(n *Node, m board.Move) int32 {
	piece := m.Piece()
	score := pstMid(piece, m.To()) - pstMid(piece, m.From())

	see := e.seeCapture(n, m)
	if m.IsCapture() || m.IsPromotion() {
		score += see
	} else if see < 0 {
		score += see
	}

	switch m.Type() {
	case board.PawnPush, board.PawnLung:
		score += 10
	case board.PawnCapture, board.EnPassant:
		score += 15
	case board.CastleShort, board.CastleLong:
		score += 25
	}

	if m.IsPromotion() {
		score += m.Promoted().Value() - board.Pawn.Value()
	}

	if m.IsQuiet() {
		if e.killers[e.ply].has(m) {
			score += 50
		} else {
			score += int(e.history.get(m))
		}
	}

	return int32(score)
}

// selectNext scans moves[i:] for the highest-scored entry and swaps it
// into moves[i], the incremental selection sort spec.md 4.2 calls for:
// each call touches only the unsorted suffix, so the cost of ordering
// a move is paid only when it is actually consumed.
func selectNext(moves []ScoredMove, i int) {
	best := i
	for j := i + 1; j < len(moves); j++ {
		if moves[j].Score > moves[best].Score {
			best = j
		}
	}
	if best != i {
		moves[i], moves[best] = moves[best], moves[i]
	}
}
