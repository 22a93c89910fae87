package engine

import "github.com/corvidchess/corvid/internal/board"

// Generate returns every legal move in n: captures and promotions
// always, and castling, pawn pushes and piece and king quiets only if
// includeQuiets. The list is built piece type by piece type, so quiets
// and captures are interleaved; callers order it by Score through
// selectNext. When the side to move is in
// check, the full legal evasion set is produced regardless of
// includeQuiets - quiescence search must still see check evasions.
func (e *Engine) Generate(n *Node, includeQuiets bool) []ScoredMove {
	c := n.ColorToMove()
	var raw []board.Move
	if n.InCheck() {
		raw = e.generateEvasions(n)
	} else {
		raw = e.generatePseudoLegal(n, includeQuiets, ^board.Bitboard(0))
		raw = append(raw, e.kingMoves(n, c, includeQuiets)...)
	}

	moves := make([]ScoredMove, 0, len(raw))
	for _, m := range raw {
		if !e.isLegalMove(n, c, m) {
			continue
		}
		moves = append(moves, ScoredMove{Move: m, Score: e.orderScore(n, m)})
	}
	return moves
}

// generateEvasions enumerates the legal-shaped candidate set when the
// side to move is in check: king moves always; if single-checked,
// captures of the checker and blocks of a sliding checker too.
func (e *Engine) generateEvasions(n *Node) []board.Move {
	c := n.ColorToMove()
	king := e.kingMoves(n, c, true)

	if n.chkrs.Popcount() >= 2 {
		return king
	}

	checkerSq, _ := n.chkrs.LSB()
	destMask := n.chkrs
	if e.checkerIsSlider(checkerSq) {
		destMask |= between(n.king[c], checkerSq)
	}

	moves := e.generatePseudoLegal(n, true, destMask)
	moves = append(moves, king...)

	// En-passant capture of a pawn that just delivered check by a
	// double push: the capture's "to" square is not the checker's
	// square, so it needs to be added explicitly.
	if n.epSquare != board.NoSquare {
		capturedSq := n.epSquare.Relative(epBackRank(c), 0)
		if capturedSq == checkerSq {
			moves = append(moves, e.epCaptures(n, c)...)
		}
	}
	return moves
}

func (e *Engine) checkerIsSlider(sq board.Square) bool {
	base := e.board[sq].Base()
	return base == board.Bishop || base == board.Rook || base == board.Queen
}

// between returns the squares strictly between a and b along a shared
// rank, file or diagonal; empty if they aren't aligned.
func between(a, b board.Square) board.Bitboard {
	if a == b {
		return 0
	}
	dr := sign(b.Rank() - a.Rank())
	df := sign(b.File() - a.File())
	if dr == 0 && df == 0 {
		return 0
	}
	if dr != 0 && df != 0 && abs(b.Rank()-a.Rank()) != abs(b.File()-a.File()) {
		return 0
	}
	if dr == 0 && b.Rank() != a.Rank() {
		return 0
	}
	if df == 0 && b.File() != a.File() {
		return 0
	}
	var bb board.Bitboard
	r, f := a.Rank()+dr, a.File()+df
	for board.RankFile(r, f) != b {
		bb |= board.RankFile(r, f).Bitboard()
		r += dr
		f += df
	}
	return bb
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func epBackRank(c board.Color) int {
	if c == board.White {
		return -1
	}
	return 1
}

// generatePseudoLegal builds captures/promos (always) and quiets (if
// includeQuiets) for every piece type, restricted to destinations in
// destMask.
func (e *Engine) generatePseudoLegal(n *Node, includeQuiets bool, destMask board.Bitboard) []board.Move {
	c := n.ColorToMove()
	var moves []board.Move

	moves = append(moves, e.pawnMoves(n, c, includeQuiets, destMask)...)
	for _, m := range e.epCaptures(n, c) {
		if destMask.Has(m.To()) {
			moves = append(moves, m)
		}
	}
	moves = append(moves, e.knightMoves(n, c, includeQuiets, destMask)...)
	moves = append(moves, e.sliderMoves(n, c, board.Bishop, board.BishopDirections, includeQuiets, destMask)...)
	moves = append(moves, e.sliderMoves(n, c, board.Rook, board.RookDirections, includeQuiets, destMask)...)
	moves = append(moves, e.sliderMoves(n, c, board.Queen, board.QueenDirections, includeQuiets, destMask)...)
	if includeQuiets {
		moves = append(moves, e.castleMoves(n, c)...)
	}
	return moves
}

var promoPieces = [4]board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight}

func (e *Engine) pawnMoves(n *Node, c board.Color, includeQuiets bool, destMask board.Bitboard) []board.Move {
	var moves []board.Move
	pawns := n.pc[board.MakePiece(c, board.Pawn)]
	occ := n.Occupied()
	enemy := n.pc[c.Opposite()]

	fwd := 1
	startRank, promoRank := 1, 7
	if c == board.Black {
		fwd = -1
		startRank, promoRank = 6, 0
	}

	bb := pawns
	for bb != 0 {
		var from board.Square
		from, bb = bb.Pop()

		// Captures.
		attacks := board.BbPawnAttack[c][from] & enemy & destMask
		t := attacks
		for t != 0 {
			var to board.Square
			to, t = t.Pop()
			cap := e.board[to]
			if to.Rank() == promoRank {
				for _, pr := range promoPieces {
					moves = append(moves, board.NewMove(board.PawnCapture, from, to, board.MakePiece(c, board.Pawn), cap, board.MakePiece(c, pr)))
				}
			} else {
				moves = append(moves, board.NewMove(board.PawnCapture, from, to, board.MakePiece(c, board.Pawn), cap, board.NoPiece))
			}
		}

		if !includeQuiets {
			continue
		}

		one := from.Relative(fwd, 0)
		if one < 0 || one >= 64 || occ.Has(one) {
			continue
		}
		if destMask.Has(one) {
			if one.Rank() == promoRank {
				for _, pr := range promoPieces {
					moves = append(moves, board.NewMove(board.PawnPush, from, one, board.MakePiece(c, board.Pawn), board.NoPiece, board.MakePiece(c, pr)))
				}
			} else {
				moves = append(moves, board.NewMove(board.PawnPush, from, one, board.MakePiece(c, board.Pawn), board.NoPiece, board.NoPiece))
			}
		}

		if from.Rank() == startRank {
			two := from.Relative(fwd*2, 0)
			if !occ.Has(two) && destMask.Has(two) {
				moves = append(moves, board.NewMove(board.PawnLung, from, two, board.MakePiece(c, board.Pawn), board.NoPiece, board.NoPiece))
			}
		}
	}
	return moves
}

func (e *Engine) epCaptures(n *Node, c board.Color) []board.Move {
	if n.epSquare == board.NoSquare {
		return nil
	}
	var moves []board.Move
	pawns := n.pc[board.MakePiece(c, board.Pawn)]
	attackers := board.BbPawnAttack[c.Opposite()][n.epSquare] & pawns
	bb := attackers
	for bb != 0 {
		var from board.Square
		from, bb = bb.Pop()
		moves = append(moves, board.NewMove(board.EnPassant, from, n.epSquare, board.MakePiece(c, board.Pawn), board.MakePiece(c.Opposite(), board.Pawn), board.NoPiece))
	}
	return moves
}

func (e *Engine) knightMoves(n *Node, c board.Color, includeQuiets bool, destMask board.Bitboard) []board.Move {
	var moves []board.Move
	occ := n.Occupied()
	bb := n.pc[board.MakePiece(c, board.Knight)]
	for bb != 0 {
		var from board.Square
		from, bb = bb.Pop()
		targets := board.BbKnightAttack[from] &^ n.pc[c] & destMask
		t := targets
		for t != 0 {
			var to board.Square
			to, t = t.Pop()
			if occ.Has(to) {
				moves = append(moves, board.NewMove(board.Normal, from, to, board.MakePiece(c, board.Knight), e.board[to], board.NoPiece))
			} else if includeQuiets {
				moves = append(moves, board.NewMove(board.Normal, from, to, board.MakePiece(c, board.Knight), board.NoPiece, board.NoPiece))
			}
		}
	}
	return moves
}

func (e *Engine) sliderMoves(n *Node, c board.Color, base board.Piece, dirs []board.Direction, includeQuiets bool, destMask board.Bitboard) []board.Move {
	var moves []board.Move
	occ := n.Occupied()
	bb := n.pc[board.MakePiece(c, base)]
	for bb != 0 {
		var from board.Square
		from, bb = bb.Pop()
		targets := board.SlidingAttack(from, dirs, occ) &^ n.pc[c] & destMask
		t := targets
		for t != 0 {
			var to board.Square
			to, t = t.Pop()
			if occ.Has(to) {
				moves = append(moves, board.NewMove(board.Normal, from, to, board.MakePiece(c, base), e.board[to], board.NoPiece))
			} else if includeQuiets {
				moves = append(moves, board.NewMove(board.Normal, from, to, board.MakePiece(c, base), board.NoPiece, board.NoPiece))
			}
		}
	}
	return moves
}

func (e *Engine) kingCaptures(n *Node, c board.Color) []board.Move {
	var moves []board.Move
	from := n.king[c]
	occ := n.Occupied()
	targets := board.BbKingAttack[from] &^ n.pc[c] & occ
	t := targets
	for t != 0 {
		var to board.Square
		to, t = t.Pop()
		moves = append(moves, board.NewMove(board.KingMove, from, to, board.MakePiece(c, board.King), e.board[to], board.NoPiece))
	}
	return moves
}

func (e *Engine) kingQuiets(n *Node, c board.Color) []board.Move {
	var moves []board.Move
	from := n.king[c]
	occ := n.Occupied()
	targets := board.BbKingAttack[from] &^ n.pc[c] &^ occ
	t := targets
	for t != 0 {
		var to board.Square
		to, t = t.Pop()
		moves = append(moves, board.NewMove(board.KingMove, from, to, board.MakePiece(c, board.King), board.NoPiece, board.NoPiece))
	}
	return moves
}

// kingMoves returns legal (already filtered for safety) king moves,
// including captures - the only path that ever produces a KingMove,
// so Generate never needs to safety-filter one again.
func (e *Engine) kingMoves(n *Node, c board.Color, includeQuiets bool) []board.Move {
	cand := e.kingCaptures(n, c)
	if includeQuiets {
		cand = append(cand, e.kingQuiets(n, c)...)
	}

	occWithoutKing := n.Occupied() &^ n.king[c].Bitboard()
	var legal []board.Move
	for _, m := range cand {
		to := m.To()
		if e.attackersTo(n, to, occWithoutKing)&n.pc[c.Opposite()] != 0 {
			continue
		}
		legal = append(legal, m)
	}
	return legal
}

func (e *Engine) castleMoves(n *Node, c board.Color) []board.Move {
	var moves []board.Move
	occ := n.Occupied()
	rights := n.Castle()
	enemy := c.Opposite()

	type spec struct {
		right         board.Castle
		kingFrom      board.Square
		kingTo        board.Square
		between       board.Bitboard
		mustBeSafe    []board.Square
		moveType      board.MoveType
	}
	var specs []spec
	if c == board.White {
		specs = []spec{
			{board.WhiteShort, board.E1, board.G1, board.F1.Bitboard() | board.G1.Bitboard(), []board.Square{board.E1, board.F1, board.G1}, board.CastleShort},
			{board.WhiteLong, board.E1, board.C1, board.D1.Bitboard() | board.C1.Bitboard() | board.B1.Bitboard(), []board.Square{board.E1, board.D1, board.C1}, board.CastleLong},
		}
	} else {
		specs = []spec{
			{board.BlackShort, board.E8, board.G8, board.F8.Bitboard() | board.G8.Bitboard(), []board.Square{board.E8, board.F8, board.G8}, board.CastleShort},
			{board.BlackLong, board.E8, board.C8, board.D8.Bitboard() | board.C8.Bitboard() | board.B8.Bitboard(), []board.Square{board.E8, board.D8, board.C8}, board.CastleLong},
		}
	}

	for _, s := range specs {
		if rights&s.right == 0 {
			continue
		}
		if occ&s.between != 0 {
			continue
		}
		safe := true
		for _, sq := range s.mustBeSafe {
			if e.attackersTo(n, sq, occ)&n.pc[enemy] != 0 {
				safe = false
				break
			}
		}
		if !safe {
			continue
		}
		moves = append(moves, board.NewMove(s.moveType, s.kingFrom, s.kingTo, board.MakePiece(c, board.King), board.NoPiece, board.NoPiece))
	}
	return moves
}

// isLegalMove applies pin and en-passant-pin filtering uniformly; king
// move safety is already enforced by kingMoves/generateEvasions.
func (e *Engine) isLegalMove(n *Node, c board.Color, m board.Move) bool {
	if m.Type() == board.KingMove || m.IsCastle() {
		return true // already safety-filtered at generation time
	}
	if !isPinnedMoveLegal(n, c, m.From(), m.To()) {
		return false
	}
	if m.Type() == board.EnPassant {
		capturedSq := m.To().Relative(epBackRank(c), 0)
		if !e.epHorizontalPinLegal(n, c, m.From(), capturedSq) {
			return false
		}
	}
	return true
}
