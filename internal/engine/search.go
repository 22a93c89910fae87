package engine

import (
	"time"

	"github.com/corvidchess/corvid/internal/board"
	"github.com/corvidchess/corvid/internal/tt"
)

// scoreMate builds the "mate in N plies" score that always outranks a
// mate found one ply further away.
func scoreMate(ply int) int { return ply - Infinity }

func isMateScore(score int) bool {
	return score > MateThreshold || score < -MateThreshold
}

// SearchRoot runs iterative deepening from ply 0 up to maxDepth,
// reporting each iteration through e.Log, and returns the best move
// found. Deepening stops early if Stop is called.
func (e *Engine) SearchRoot(maxDepth int) board.Move {
	e.stop = false
	e.searchStart = time.Now()
	e.Stats = Stats{}
	e.Log.BeginSearch()
	defer e.Log.EndSearch()

	root := e.Root()
	moves := e.Generate(root, true)
	if len(moves) == 0 {
		return board.NoMoveValue
	}

	best := moves[0].Move
	bestScore := 0

	for d := 0; d < maxDepth && !e.stop; d++ {
		e.Stats.Depth = d + 1
		e.Stats.SelDepth = d + 1

		alpha, beta := -Infinity, Infinity
		if d > 0 {
			alpha, beta = clampScore(bestScore-25), clampScore(bestScore+25)
		}

		first := true
		for i := range moves {
			if i > 0 || d == 0 {
				selectNext(moves, i)
			}
			m := moves[i].Move
			e.Exec(m)
			var score int
			if first {
				score = -e.negaSearch(-beta, -alpha, d, true, false)
			} else {
				score = -e.negaSearch(-alpha-1, -alpha, d, false, false)
				if score > alpha && score < beta {
					score = -e.negaSearch(-beta, -alpha, d, true, false)
				}
			}
			e.Undo(m)

			if e.stop {
				break
			}

			if score >= beta {
				beta = clampScore(beta + (beta-alpha)*20)
				if time.Since(e.searchStart) > time.Second {
					e.Log.PrintPV(e.Stats, score, []board.Move{m})
				}
			}
			if first && score <= alpha {
				alpha = clampScore(alpha - (beta-alpha)*20)
			}

			if first || score > bestScore {
				bestScore = score
				best = m
				e.pv[0][0] = m
				e.pvLen[0] = 1 + e.pvLen[1]
				copy(e.pv[0][1:], e.pv[1][:e.pvLen[1]])
				e.Log.PrintPV(e.Stats, bestScore, e.pv[0][:e.pvLen[0]])
				e.TT.Store(root.positionKey, m, bestScore, d+1, tt.ExactScore, tt.FromPV)
				promoteToFront(moves, i)
			}
			first = false
		}
	}

	return best
}

func clampScore(s int) int {
	if s > Infinity {
		return Infinity
	}
	if s < -Infinity {
		return -Infinity
	}
	return s
}

// promoteToFront moves moves[i] to the head of the slice, preserving
// the relative order of the rest - so the next iteration's move loop
// tries this iteration's best move first.
func promoteToFront(moves []ScoredMove, i int) {
	if i == 0 {
		return
	}
	m := moves[i]
	copy(moves[1:i+1], moves[:i])
	moves[0] = m
}

// negaSearch is Search from spec.md 4.5: alpha-beta with TT probing,
// null-move pruning, razoring, IID, check/hash/one-reply extensions
// and late-move reductions. parentExtended carries whether the move
// that led to this node already consumed a check extension, so two
// checks in a row never both extend.
func (e *Engine) negaSearch(alpha, beta, depth int, pv, parentExtended bool) int {
	e.Stats.Nodes++
	n := e.Current()
	ply := e.ply

	if ply > 0 && e.isDraw(n) {
		return e.drawScore()
	}

	mateBest := scoreMate(ply)
	if mateBest >= beta || ply >= MaxPlies-1 {
		return mateBest
	}
	if mateBest > alpha {
		alpha = mateBest
	}

	origAlpha := alpha
	var firstMove board.Move
	hashExtend := false

	entry, hit := e.TT.Probe(n.positionKey)
	if hit {
		switch entry.Flags.Primary() {
		case tt.Checkmate:
			return scoreMate(ply)
		case tt.Stalemate:
			return e.drawScore()
		case tt.UpperBound:
			if int(entry.Depth) >= depth && int(entry.Score) <= alpha {
				return int(entry.Score)
			}
		case tt.ExactScore:
			if int(entry.Depth) >= depth {
				return int(entry.Score)
			}
		case tt.LowerBound:
			if int(entry.Depth) >= depth && int(entry.Score) >= beta {
				if entry.Move.IsQuiet() {
					e.killers[ply].add(entry.Move)
					e.history.inc(entry.Move)
				}
				return int(entry.Score)
			}
		}
		firstMove = entry.Move
		hashExtend = entry.Flags.HasExtended()
	}

	if depth <= 0 {
		return e.negaQuiescence(alpha, beta, depth)
	}

	inCheck := n.InCheck()

	// Check/one-reply/hash extensions are mutually exclusive and
	// resolved before move generation so the extended depth governs
	// razoring, null-move and the move loop alike.
	var evasions []ScoredMove
	extended := false
	if inCheck {
		evasions = e.Generate(n, true)
		if len(evasions) == 0 {
			e.TT.StoreCheckmate(n.positionKey, scoreMate(ply))
			return scoreMate(ply)
		}

		// Only a double check or a check with at most one king escape
		// square is forced enough to extend; a check with several
		// replies is not.
		kingMoves := 0
		for _, sm := range evasions {
			if sm.Move.Type() == board.KingMove {
				kingMoves++
			}
		}
		forcedCheck := n.chkrs.Popcount() >= 2 || kingMoves <= 1

		if e.Tuning.CheckExtensions && forcedCheck && !parentExtended {
			depth++
			extended = true
		} else if e.Tuning.OneReplyExt && !parentExtended && len(evasions) == 1 {
			depth++
			extended = true
		}
	} else if !parentExtended && hashExtend {
		depth++
		extended = true
	}

	if !inCheck && !pv && firstMove == board.NoMoveValue && depth <= 2 &&
		!isMateScore(alpha) {
		razorMargin := e.Tuning.Razoring + 64*(depth-1)
		if n.standPat+razorMargin < alpha {
			score := e.negaQuiescence(alpha, alpha+1, 0)
			if score <= alpha {
				return score
			}
		}
	}

	if e.Tuning.NullMovePruning && !inCheck && !pv && depth > 1 && n.nullMoveOk &&
		n.standPat >= beta && !isMateScore(beta) && hasNonPawnMaterial(n) {
		reduction := 3 + depth/6
		if n.standPat-beta >= 400 {
			reduction++
		}
		newDepth := depth - 1 - reduction
		if newDepth < 0 {
			newDepth = 0
		}
		e.ExecNull()
		score := -e.negaSearch(-beta, -beta+1, newDepth, false, true)
		e.UndoNull()
		if score >= beta {
			return beta
		}
	}

	if e.Tuning.IID && !inCheck && firstMove == board.NoMoveValue && beta < Infinity {
		threshold := 5
		if pv {
			threshold = 3
		}
		if depth > threshold {
			reduction := 4
			if pv {
				reduction = 2
			}
			savedNullOk := n.nullMoveOk
			n.nullMoveOk = false
			e.negaSearch(beta-1, beta, depth-reduction, false, true)
			n.nullMoveOk = savedNullOk
			if e.pvLen[ply] > 0 {
				firstMove = e.pv[ply][0]
			}
		}
	}

	var moves []ScoredMove
	if inCheck {
		moves = evasions
	} else {
		moves = e.Generate(n, true)
	}
	orderWithFirst(moves, firstMove)

	if len(moves) == 0 {
		e.TT.StoreStalemate(n.positionKey)
		return e.drawScore()
	}

	best := -Infinity
	var bestMove board.Move
	e.pvLen[ply] = 0

	for idx := range moves {
		if !(idx == 0 && firstMove != board.NoMoveValue) {
			selectNext(moves, idx)
		}
		m := moves[idx].Move
		e.Exec(m)

		reduced := 0
		if e.lmrEligible(n, m, depth, pv, inCheck) {
			reduced = e.Tuning.LMR
			if depth > e.Tuning.LMR+1 && e.history.get(m) < -1 {
				reduced++
			}
		}

		childDepth := depth - 1 - reduced
		var score int
		if childDepth <= 0 {
			score = -e.negaQuiescence(-alpha-1, -alpha, 0)
		} else {
			score = -e.negaSearch(-alpha-1, -alpha, childDepth, false, extended)
		}

		if reduced > 0 && score > alpha {
			score = -e.negaSearch(-alpha-1, -alpha, depth-1, false, extended)
		}
		if pv && score > alpha {
			score = -e.negaSearch(-beta, -alpha, depth-1, true, extended)
		}

		e.Undo(m)

		if e.stop {
			return beta
		}

		if score > best {
			best = score
			bestMove = m
			e.pv[ply][0] = m
			e.pvLen[ply] = 1 + e.pvLen[ply+1]
			copy(e.pv[ply][1:], e.pv[ply+1][:e.pvLen[ply+1]])

			if score > alpha {
				alpha = score
			}
		}

		if alpha >= beta {
			other := tt.Flag(0)
			if extended {
				other |= tt.Extended
			}
			if pv {
				other |= tt.FromPV
			}
			e.TT.Store(n.positionKey, m, beta, depth-reduced, tt.LowerBound, other)
			if m.IsQuiet() {
				e.killers[ply].add(m)
				e.history.inc(m)
			}
			return beta
		}

		if m.IsQuiet() && score <= origAlpha {
			e.history.dec(m)
		}
	}

	var primary tt.Flag
	if alpha > origAlpha {
		primary = tt.ExactScore
	} else {
		primary = tt.UpperBound
	}
	other := tt.Flag(0)
	if extended {
		other |= tt.Extended
	}
	if pv {
		other |= tt.FromPV
	}
	e.TT.Store(n.positionKey, bestMove, best, depth, primary, other)
	return best
}

// lmrEligible implements spec.md 4.5's late-move-reduction gate.
func (e *Engine) lmrEligible(n *Node, m board.Move, depth int, pv, inCheck bool) bool {
	if e.Tuning.LMR <= 0 || pv || inCheck {
		return false
	}
	if depth <= e.Tuning.LMR+1 {
		return false
	}
	if m.IsCapture() || m.IsPromotion() {
		return false
	}
	if e.Current().InCheck() {
		return false
	}
	if e.killers[e.ply-1].has(m) {
		return false
	}
	if m.Type() == board.PawnPush || m.Type() == board.PawnLung {
		seventh := 6
		if n.ColorToMove() == board.Black {
			seventh = 1
		}
		if m.From().Rank() == seventh {
			return false
		}
	}
	return e.history.get(m) < 0
}

func hasNonPawnMaterial(n *Node) bool {
	return hasNonPawnMaterialForColor(n, n.ColorToMove())
}

// orderWithFirst moves the entry matching first (the TT/IID move) to
// the front of moves, if present.
func orderWithFirst(moves []ScoredMove, first board.Move) {
	if first == board.NoMoveValue {
		return
	}
	for i, sm := range moves {
		if sm.Move == first {
			if i != 0 {
				moves[i], moves[0] = moves[0], moves[i]
			}
			return
		}
	}
}

// negaQuiescence is QSearch from spec.md 4.5: captures, promotions and
// evasions only (plus checks at depth 0), with delta pruning and
// stand-pat as the baseline score.
func (e *Engine) negaQuiescence(alpha, beta, depth int) int {
	e.Stats.Nodes++
	n := e.Current()
	ply := e.ply

	if e.isDraw(n) {
		return e.drawScore()
	}

	inCheck := n.InCheck()
	var best int
	if inCheck {
		best = scoreMate(ply)
	} else {
		best = n.standPat
	}
	if best >= beta || ply >= MaxPlies-1 {
		return best
	}
	if best > alpha {
		alpha = best
	}

	includeChecks := depth == 0
	moves := e.Generate(n, includeChecks)
	if !inCheck && !includeChecks {
		moves = filterCapturesAndPromos(moves)
	}

	if len(moves) == 0 {
		if inCheck {
			e.TT.StoreCheckmate(n.positionKey, scoreMate(ply))
			return scoreMate(ply)
		}
		return best
	}

	for idx := range moves {
		selectNext(moves, idx)
		m := moves[idx].Move

		e.Exec(m)
		childInCheck := e.Current().InCheck()

		// Quiet moves are only generated at depth 0 (or as evasions);
		// outside check, only those that give check are searched.
		if !inCheck && m.IsQuiet() && !childInCheck {
			e.Undo(m)
			continue
		}

		if !inCheck && depth < 0 && !m.IsPromotion() && !childInCheck {
			captureValue := m.Captured().Value()
			delta := e.Tuning.DeltaPruning
			if n.standPat+captureValue+delta < alpha {
				e.Undo(m)
				continue
			}
		}

		score := -e.negaQuiescence(-beta, -alpha, depth-1)
		e.Undo(m)

		if e.stop {
			return beta
		}

		if score > best {
			best = score
			if score > alpha {
				alpha = score
			}
		}
		if alpha >= beta {
			return beta
		}
	}

	return best
}

func filterCapturesAndPromos(moves []ScoredMove) []ScoredMove {
	out := moves[:0]
	for _, sm := range moves {
		if sm.Move.IsCapture() || sm.Move.IsPromotion() {
			out = append(out, sm)
		}
	}
	return out
}
