package engine

import "github.com/corvidchess/corvid/internal/board"

// computePawnCache rebuilds pinfo[c] for the given pawn bitboard. It
// is the engine's "pinfo" lazy pawn cache: the caller only calls this
// when the cache was invalidated (Exec does so on every pawn move or
// capture) or pawns no longer matches the cached bitboard.
func (e *Engine) computePawnCache(n *Node, c board.Color, pawns board.Bitboard) {
	enemy := c.Opposite()
	enemyPawns := n.pc[board.MakePiece(enemy, board.Pawn)]

	cache := pawnCache{pawns: pawns, valid: true}

	bb := pawns
	for bb != 0 {
		var sq board.Square
		sq, bb = bb.Pop()
		cache.attacks |= board.BbPawnAttack[c][sq]

		if isIsolated(pawns, sq) {
			cache.isolated |= sq.Bitboard()
		}
		if isDoubled(pawns, sq, c) {
			cache.doubled |= sq.Bitboard()
		}
		if isPassed(pawns, enemyPawns, sq, c) {
			cache.passed |= sq.Bitboard()
		}
		if isConnected(pawns, sq, c) {
			cache.connected |= sq.Bitboard()
		}
		if isBackward(pawns, enemyPawns, sq, c) {
			cache.backward |= sq.Bitboard()
		}
	}

	n.pinfo[c] = cache
}

// pawnStructure scores the broad pawn-shape terms (isolated, doubled,
// backward, connected) from pinfo; passed pawns are scored separately
// by passedPawns since they scale with rank rather than being flat.
func (e *Engine) pawnStructure(n *Node) int {
	var score int
	for _, c := range []board.Color{board.White, board.Black} {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		cache := &n.pinfo[c]
		score -= sign * cache.isolated.Popcount() * 12
		score -= sign * cache.doubled.Popcount() * 10
		score -= sign * cache.backward.Popcount() * 8
		score += sign * cache.connected.Popcount() * 5
	}
	return score
}

func isIsolated(pawns board.Bitboard, sq board.Square) bool {
	f := sq.File()
	var neighbors board.Bitboard
	if f > 0 {
		neighbors |= board.FileBb(f - 1)
	}
	if f < 7 {
		neighbors |= board.FileBb(f + 1)
	}
	return pawns&neighbors == 0
}

func isDoubled(pawns board.Bitboard, sq board.Square, c board.Color) bool {
	file := board.FileBb(sq.File()) &^ sq.Bitboard()
	return pawns&file != 0
}

// isPassed reports that no enemy pawn on sq's file or the two
// adjacent files sits further toward promotion than sq.
func isPassed(ownPawns, enemyPawns board.Bitboard, sq board.Square, c board.Color) bool {
	f := sq.File()
	var files board.Bitboard
	for _, ff := range []int{f - 1, f, f + 1} {
		if ff >= 0 && ff <= 7 {
			files |= board.FileBb(ff)
		}
	}

	var ahead board.Bitboard
	if c == board.White {
		for r := sq.Rank() + 1; r < 8; r++ {
			ahead |= board.RankBb(r)
		}
	} else {
		for r := sq.Rank() - 1; r >= 0; r-- {
			ahead |= board.RankBb(r)
		}
	}
	return enemyPawns&files&ahead == 0
}

func isConnected(pawns board.Bitboard, sq board.Square, c board.Color) bool {
	r, f := sq.Rank(), sq.File()
	var support board.Bitboard
	rear := r - 1
	if c == board.Black {
		rear = r + 1
	}
	if rear >= 0 && rear < 8 {
		if f > 0 {
			support |= board.RankFile(rear, f-1).Bitboard()
		}
		if f < 7 {
			support |= board.RankFile(rear, f+1).Bitboard()
		}
	}
	if f > 0 {
		support |= board.RankFile(r, f-1).Bitboard()
	}
	if f < 7 {
		support |= board.RankFile(r, f+1).Bitboard()
	}
	return pawns&support != 0
}

// isBackward reports that sq's pawn has no support behind it on an
// adjacent file and the square in front is controlled by an enemy pawn.
func isBackward(ownPawns, enemyPawns board.Bitboard, sq board.Square, c board.Color) bool {
	r, f := sq.Rank(), sq.File()
	var behind board.Bitboard
	if c == board.White {
		for rr := 0; rr < r; rr++ {
			if f > 0 {
				behind |= board.RankFile(rr, f-1).Bitboard()
			}
			if f < 7 {
				behind |= board.RankFile(rr, f+1).Bitboard()
			}
		}
	} else {
		for rr := r + 1; rr < 8; rr++ {
			if f > 0 {
				behind |= board.RankFile(rr, f-1).Bitboard()
			}
			if f < 7 {
				behind |= board.RankFile(rr, f+1).Bitboard()
			}
		}
	}
	if ownPawns&behind != 0 {
		return false
	}
	stop := sq.Relative(1, 0)
	if c == board.Black {
		stop = sq.Relative(-1, 0)
	}
	if stop < 0 || stop >= 64 {
		return false
	}
	return board.BbPawnAttack[c][stop]&enemyPawns != 0
}
