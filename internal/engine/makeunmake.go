package engine

import "github.com/corvidchess/corvid/internal/board"

// touchMask[sq] is ANDed into the state byte's castling bits whenever
// a move touches sq as either its from or to square - moving a rook
// off its home square, moving the king at all, or capturing a rook on
// its home square each revoke exactly the rights that square guards.
var touchMask [64]uint8

func init() {
	for i := range touchMask {
		touchMask[i] = 0xFF
	}
	touchMask[board.E1] &^= uint8(board.WhiteShort | board.WhiteLong)
	touchMask[board.A1] &^= uint8(board.WhiteLong)
	touchMask[board.H1] &^= uint8(board.WhiteShort)
	touchMask[board.E8] &^= uint8(board.BlackShort | board.BlackLong)
	touchMask[board.A8] &^= uint8(board.BlackLong)
	touchMask[board.H8] &^= uint8(board.BlackShort)
}

func castleRookSquares(t board.MoveType, c board.Color) (from, to board.Square) {
	if c == board.White {
		if t == board.CastleShort {
			return board.H1, board.F1
		}
		return board.A1, board.D1
	}
	if t == board.CastleShort {
		return board.H8, board.F8
	}
	return board.A8, board.D8
}

// Exec plays m from the current node, deriving the next ply's node in
// place and advancing e.ply. The shared 8x8 mailbox (e.board) is
// mutated directly; every other field is derived fresh into the child
// so Undo never has to reconstruct them.
func (e *Engine) Exec(m board.Move) {
	parent := &e.nodes[e.ply]
	e.markSeen(parent.positionKey)

	child := &e.nodes[e.ply+1]
	*child = *parent
	child.lastMove = m
	child.nullMoveOk = true

	c := parent.ColorToMove()
	enemy := c.Opposite()
	from, to := m.From(), m.To()
	piece := m.Piece()
	captured := m.Captured()
	promoted := m.Promoted()

	child.pieceKey = parent.pieceKey

	child.pc[piece] &^= from.Bitboard()
	child.pc[c] &^= from.Bitboard()
	child.pieceKey ^= board.HashPiece[piece][from]

	capturedSq := to
	if m.Type() == board.EnPassant {
		capturedSq = to.Relative(epBackRank(c), 0)
	}
	if captured != board.NoPiece {
		child.pc[captured] &^= capturedSq.Bitboard()
		child.pc[enemy] &^= capturedSq.Bitboard()
		child.pieceKey ^= board.HashPiece[captured][capturedSq]
		e.board[capturedSq] = board.NoPiece
	}

	placed := piece
	if promoted != board.NoPiece {
		placed = promoted
	}
	child.pc[placed] |= to.Bitboard()
	child.pc[c] |= to.Bitboard()
	child.pieceKey ^= board.HashPiece[placed][to]

	e.board[from] = board.NoPiece
	e.board[to] = placed

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(m.Type(), c)
		rook := board.MakePiece(c, board.Rook)
		child.pc[rook] &^= rookFrom.Bitboard()
		child.pc[c] &^= rookFrom.Bitboard()
		child.pieceKey ^= board.HashPiece[rook][rookFrom]
		child.pc[rook] |= rookTo.Bitboard()
		child.pc[c] |= rookTo.Bitboard()
		child.pieceKey ^= board.HashPiece[rook][rookTo]
		e.board[rookFrom] = board.NoPiece
		e.board[rookTo] = rook
	}

	if piece.Base() == board.King {
		child.king[c] = to
	}

	child.state = (parent.state ^ board.ColorMask) & touchMask[from] & touchMask[to]
	child.state &^= board.DrawFlag | board.CheckFlag

	child.epSquare = board.NoSquare
	if m.Type() == board.PawnLung {
		child.epSquare = board.RankFile((from.Rank()+to.Rank())/2, from.File())
	}

	if piece.Base() == board.Pawn || captured != board.NoPiece {
		child.rcount = 0
	} else {
		child.rcount = parent.rcount + 1
	}

	child.positionKey = child.pieceKey ^ board.HashState[child.state&board.StateMask]
	if child.epSquare != board.NoSquare {
		child.positionKey ^= board.HashEnPassant[child.epSquare]
	}

	if piece.Base() == board.Pawn || captured != board.NoPiece {
		child.pinfo[board.White].valid = false
		child.pinfo[board.Black].valid = false
	}

	e.computeSliderCache(child)
	e.computeChecksAndPins(child)
	if child.InCheck() {
		child.state |= board.CheckFlag
	}
	e.Evaluate(child)

	e.ply++
}

// Undo reverses the most recent Exec: restore the mailbox entries it
// touched and drop the parent's seen-set entry. The child node itself
// is simply abandoned - the next Exec overwrites it.
func (e *Engine) Undo(m board.Move) {
	e.ply--
	parent := &e.nodes[e.ply]

	e.unmarkSeen(parent.positionKey)

	c := parent.ColorToMove()
	from, to := m.From(), m.To()

	e.board[from] = m.Piece()
	e.board[to] = board.NoPiece

	capturedSq := to
	if m.Type() == board.EnPassant {
		capturedSq = to.Relative(epBackRank(c), 0)
	}
	if m.Captured() != board.NoPiece {
		e.board[capturedSq] = m.Captured()
	}

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(m.Type(), c)
		e.board[rookFrom] = board.MakePiece(c, board.Rook)
		e.board[rookTo] = board.NoPiece
	}
}

// ExecNull plays a null move: flips the side to move and clears the
// en-passant square without moving any piece, for null-move pruning.
func (e *Engine) ExecNull() {
	parent := &e.nodes[e.ply]
	e.markSeen(parent.positionKey)

	child := &e.nodes[e.ply+1]
	*child = *parent
	child.lastMove = board.NoMoveValue
	child.nullMoveOk = false

	child.state = (parent.state ^ board.ColorMask) &^ (board.DrawFlag | board.CheckFlag)
	child.epSquare = board.NoSquare
	child.rcount = parent.rcount + 1

	child.positionKey = child.pieceKey ^ board.HashState[child.state&board.StateMask]

	e.computeChecksAndPins(child)
	e.Evaluate(child)

	e.ply++
}

// UndoNull reverses ExecNull.
func (e *Engine) UndoNull() {
	e.ply--
	parent := &e.nodes[e.ply]
	e.unmarkSeen(parent.positionKey)
}
