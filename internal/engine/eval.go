package engine

import "github.com/corvidchess/corvid/internal/board"

// Evaluate computes the node's static score from White's perspective
// and stores it in n.standPat (negated for Black to move, so standPat
// is always "good for the side to move"). It also refreshes the
// per-color attack bitboards and pawn cache, and raises the Draw
// state bit when neither side has mating material.
func (e *Engine) Evaluate(n *Node) {
	e.computeAttackSets(n)

	score := e.tempoScore(n)
	score += e.materialAndPST(n)
	score += e.pinPenalty(n)
	score += e.pawnStructure(n)
	score += e.pieceTerms(n)
	score += e.passedPawns(n)
	score += e.coverageScore(n)
	score += e.loosePiecePenalty(n)
	score = e.applyScaling(n, score)

	if e.isInsufficientMaterial(n) {
		n.state |= board.DrawFlag
		score = 0
	}

	if n.rcount > 25 {
		if score > 8 {
			score = score * 25 / n.rcount
		} else if score < -8 {
			score = -(-score * 25 / n.rcount)
		}
	}

	if n.ColorToMove() == board.Black {
		score = -score
	}
	n.standPat = score
}

// atkWeight[atkCount] dampens the raw attacker score as more pieces
// join the assault on the king zone - the curve saturates quickly
// since a handful of attackers is already close to maximally
// dangerous. The two-attacker case is halved again by the caller.
var atkWeight = [8]int{0, 0, 50, 75, 88, 94, 97, 99}

// computeAttackSets fills atks[color] with every square attacked by
// that color's pieces, tallies the attacker count/score each color
// builds up against the enemy king zone (for kingTerms), and
// invalidates/recomputes the pawn cache.
func (e *Engine) computeAttackSets(n *Node) {
	occ := n.Occupied()
	n.atkCount = [2]int{}
	n.atkScore = [2]int{}
	for _, c := range []board.Color{board.White, board.Black} {
		enemyKingZone := board.BbKingAttack[n.king[c.Opposite()]]

		var atk board.Bitboard
		pawns := n.pc[board.MakePiece(c, board.Pawn)]
		p := pawns
		var pawnAtk board.Bitboard
		for p != 0 {
			var sq board.Square
			sq, p = p.Pop()
			pawnAtk |= board.BbPawnAttack[c][sq]
		}
		atk |= pawnAtk
		if pawnAtk&enemyKingZone != 0 {
			n.atkCount[c]++
		}

		knights := n.pc[board.MakePiece(c, board.Knight)]
		for knights != 0 {
			var sq board.Square
			sq, knights = knights.Pop()
			x := board.BbKnightAttack[sq]
			atk |= x
			if x&enemyKingZone != 0 {
				n.atkCount[c]++
				n.atkScore[c] += 20
			}
		}

		for _, base := range []board.Piece{board.Bishop, board.Rook, board.Queen} {
			weight := 20
			switch base {
			case board.Rook:
				weight = 40
			case board.Queen:
				weight = 80
			}
			bb := n.pc[board.MakePiece(c, base)]
			for bb != 0 {
				var sq board.Square
				sq, bb = bb.Pop()
				x := board.SlidingAttack(sq, dirsFor(base), occ)
				atk |= x
				if x&enemyKingZone != 0 {
					n.atkCount[c]++
					n.atkScore[c] += weight
				}
			}
		}
		atk |= board.BbKingAttack[n.king[c]]
		n.atks[c] = atk

		if !n.pinfo[c].valid || n.pinfo[c].pawns != pawns {
			e.computePawnCache(n, c, pawns)
		}
	}
}

func (e *Engine) tempoScore(n *Node) int {
	if n.ColorToMove() == board.White {
		return e.Tuning.Tempo
	}
	return -e.Tuning.Tempo
}

// materialAndPST sums material plus piece-square values for both
// sides; king PST is blended between midgame and endgame tables by
// the opponent's remaining non-pawn material.
func (e *Engine) materialAndPST(n *Node) int {
	var score int
	var nonPawnMaterial [2]int
	for _, c := range []board.Color{board.White, board.Black} {
		for _, base := range []board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
			bb := n.pc[board.MakePiece(c, base)]
			nonPawnMaterial[c] += bb.Popcount() * base.Value()
		}
	}

	for sq, p := range e.board {
		if p == board.NoPiece {
			continue
		}
		sqr := board.Square(sq)
		sign := 1
		if p.Color() == board.Black {
			sign = -1
		}
		score += sign * p.Value()
		if p.Base() == board.King {
			enemy := p.Color().Opposite()
			ratio := nonPawnMaterial[enemy] * 128 / StartMaterial
			if ratio > 128 {
				ratio = 128
			}
			mid := pstMid(p, sqr)
			end := pstEnd(p, sqr)
			score += sign * (mid*ratio + end*(128-ratio)) / 128
		} else {
			score += sign * pstMid(p, sqr)
		}
	}
	return score
}

func (e *Engine) pinPenalty(n *Node) int {
	whitePinned := n.pinned[board.White].Popcount()
	blackPinned := n.pinned[board.Black].Popcount()
	return -6*whitePinned + 6*blackPinned
}

func (e *Engine) pieceTerms(n *Node) int {
	var score int
	for _, c := range []board.Color{board.White, board.Black} {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		score += sign * e.knightTerms(n, c)
		score += sign * e.bishopTerms(n, c)
		score += sign * e.rookTerms(n, c)
		score += sign * e.queenTerms(n, c)
		score += sign * e.kingTerms(n, c)
	}
	return score
}

func (e *Engine) knightTerms(n *Node, c board.Color) int {
	knights := n.pc[board.MakePiece(c, board.Knight)]
	count := knights.Popcount()
	if count == 0 {
		return 0
	}
	var score int
	if count >= 2 {
		score -= 8
	}
	ownPawns := n.pc[board.MakePiece(c, board.Pawn)]
	enemyPawnAtk := n.pinfo[c.Opposite()].attacks
	bb := knights
	for bb != 0 {
		var sq board.Square
		sq, bb = bb.Pop()
		mobility := (board.BbKnightAttack[sq] &^ n.pc[c]).Popcount()
		if mobility == 0 {
			score -= 10
		}
		if board.BbPawnAttack[c.Opposite()][sq]&ownPawns != 0 && enemyPawnAtk&sq.Bitboard() == 0 {
			score += 12
		}
	}
	return score
}

func (e *Engine) bishopTerms(n *Node, c board.Color) int {
	bishops := n.pc[board.MakePiece(c, board.Bishop)]
	count := bishops.Popcount()
	if count == 0 {
		return 0
	}
	var score int
	if count >= 2 {
		pawns := (n.pc[board.MakePiece(board.White, board.Pawn)] | n.pc[board.MakePiece(board.Black, board.Pawn)]).Popcount()
		score += 30 + (16-pawns)*1
	}
	fianchetto := board.RankFile(1, 1).Bitboard() | board.RankFile(1, 6).Bitboard()
	if c == board.Black {
		fianchetto = board.RankFile(6, 1).Bitboard() | board.RankFile(6, 6).Bitboard()
	}
	if bishops&fianchetto != 0 {
		score += 10
	}
	return score
}

func (e *Engine) rookTerms(n *Node, c board.Color) int {
	rooks := n.pc[board.MakePiece(c, board.Rook)]
	if rooks == 0 {
		return 0
	}
	var score int
	ownPawns := n.pc[board.MakePiece(c, board.Pawn)]
	enemyPawns := n.pc[board.MakePiece(c.Opposite(), board.Pawn)]
	bb := rooks
	for bb != 0 {
		var sq board.Square
		sq, bb = bb.Pop()
		file := board.FileBb(sq.File())
		switch {
		case ownPawns&file == 0 && enemyPawns&file == 0:
			score += 20
		case ownPawns&file == 0:
			score += 10
		}
	}
	return score
}

func (e *Engine) queenTerms(n *Node, c board.Color) int {
	queens := n.pc[board.MakePiece(c, board.Queen)]
	if queens == 0 {
		return 0
	}
	backRank := board.RankBb(0)
	if c == board.Black {
		backRank = board.RankBb(7)
	}
	var score int
	developedEarly := queens&backRank == 0
	minorsHome := (n.pc[board.MakePiece(c, board.Knight)] | n.pc[board.MakePiece(c, board.Bishop)]) & backRank
	if developedEarly && minorsHome.Popcount() >= 2 {
		score -= 15
	}
	return score
}

func (e *Engine) kingTerms(n *Node, c board.Color) int {
	ksq := n.king[c]
	mobility := (board.BbKingAttack[ksq] &^ n.pc[c] &^ n.atks[c.Opposite()]).Popcount()
	var score int
	if mobility == 0 {
		score -= 5
	}

	enemy := c.Opposite()
	if hasNonPawnMaterialForColor(n, enemy) && n.atkCount[enemy] > 1 {
		idx := n.atkCount[enemy]
		if idx >= len(atkWeight) {
			idx = len(atkWeight) - 1
		}
		mid := atkWeight[idx] * n.atkScore[enemy] / 100
		if n.atkCount[enemy] == 2 {
			mid /= 2
		}

		nonPawnMaterial := 0
		for _, base := range []board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
			nonPawnMaterial += n.pc[board.MakePiece(enemy, base)].Popcount() * base.Value()
		}
		ratio := nonPawnMaterial * 128 / StartMaterial
		if ratio > 128 {
			ratio = 128
		}

		score -= mid * ratio / 128
	}
	return score
}

// hasNonPawnMaterialForColor reports whether c still has at least one
// knight, bishop, rook or queen on the board.
func hasNonPawnMaterialForColor(n *Node, c board.Color) bool {
	for _, base := range []board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
		if n.pc[board.MakePiece(c, base)] != 0 {
			return true
		}
	}
	return false
}

// passedPawns scores each side's passed pawns by rank, with bonuses
// handled via pinfo.passed computed in computePawnCache.
func (e *Engine) passedPawns(n *Node) int {
	var score int
	progressTable := [8]int{0, 5, 10, 20, 35, 60, 100, 0}
	for _, c := range []board.Color{board.White, board.Black} {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		passed := n.pinfo[c].passed
		for passed != 0 {
			var sq board.Square
			sq, passed = passed.Pop()
			rank := sq.Rank()
			if c == board.Black {
				rank = 7 - rank
			}
			score += sign * progressTable[rank]
		}
	}
	return score
}

// coverageScore rewards control of the four central squares and the
// total number of attacked squares. King zones are not weighted here.
func (e *Engine) coverageScore(n *Node) int {
	center4 := board.RankFile(3, 3).Bitboard() | board.RankFile(3, 4).Bitboard() |
		board.RankFile(4, 3).Bitboard() | board.RankFile(4, 4).Bitboard()
	var score int
	for _, c := range []board.Color{board.White, board.Black} {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		score += sign * (n.atks[c] & center4).Popcount() * 3
		score += sign * n.atks[c].Popcount()
	}
	return score
}

func (e *Engine) loosePiecePenalty(n *Node) int {
	var score int
	for _, c := range []board.Color{board.White, board.Black} {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		enemyAtk := n.atks[c.Opposite()]
		minors := n.pc[board.MakePiece(c, board.Knight)] | n.pc[board.MakePiece(c, board.Bishop)]
		pawns := n.pc[board.MakePiece(c, board.Pawn)]
		loose := (minors | pawns) &^ n.atks[c] & enemyAtk
		score -= sign * loose.Popcount() * 4
	}
	return score
}

// applyScaling shrinks the score when pawns are densely locked, and
// adjusts piece value by pawn density (knights gain with more pawns,
// rooks lose).
func (e *Engine) applyScaling(n *Node, score int) int {
	pawnCount := (n.pc[board.MakePiece(board.White, board.Pawn)] | n.pc[board.MakePiece(board.Black, board.Pawn)]).Popcount()

	for _, c := range []board.Color{board.White, board.Black} {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		knights := n.pc[board.MakePiece(c, board.Knight)].Popcount()
		rooks := n.pc[board.MakePiece(c, board.Rook)].Popcount()
		score += sign * knights * (pawnCount - 8)
		score -= sign * rooks * (pawnCount - 8)
	}

	locked := e.lockedPawnCount(n)
	if locked >= 4 {
		score = score * 90 / 100
	}

	return score
}

func (e *Engine) lockedPawnCount(n *Node) int {
	wp := n.pc[board.MakePiece(board.White, board.Pawn)]
	bp := n.pc[board.MakePiece(board.Black, board.Pawn)]
	locked := 0
	bb := wp
	for bb != 0 {
		var sq board.Square
		sq, bb = bb.Pop()
		ahead := sq.Relative(1, 0)
		if ahead >= 0 && ahead < 64 && bp.Has(ahead) {
			locked++
		}
	}
	return locked
}

// isInsufficientMaterial reports whether neither side can force mate:
// king-only or king+single-minor on both sides.
func (e *Engine) isInsufficientMaterial(n *Node) bool {
	for _, c := range []board.Color{board.White, board.Black} {
		if n.pc[board.MakePiece(c, board.Pawn)] != 0 ||
			n.pc[board.MakePiece(c, board.Rook)] != 0 ||
			n.pc[board.MakePiece(c, board.Queen)] != 0 {
			return false
		}
		minors := n.pc[board.MakePiece(c, board.Knight)].Popcount() + n.pc[board.MakePiece(c, board.Bishop)].Popcount()
		if minors > 1 {
			return false
		}
	}
	return true
}
