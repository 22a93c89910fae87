package engine

import "github.com/corvidchess/corvid/internal/board"

// pawnCache is the per-color lazily recomputed pawn-structure cache
// ("pinfo" in the spec this engine follows). It is invalidated
// whenever pawns no longer matches the node's current pawn bitboard
// for that color.
type pawnCache struct {
	pawns     board.Bitboard
	valid     bool
	passed    board.Bitboard
	connected board.Bitboard
	backward  board.Bitboard
	isolated  board.Bitboard
	doubled   board.Bitboard
	attacks   board.Bitboard
}

// ScoredMove pairs a packed Move with its move-ordering score,
// mirroring the spec's choice to keep the score outside the packed
// 32-bit move value.
type ScoredMove struct {
	Move  board.Move
	Score int32
}

// Node is one ply's worth of position state. The root node is
// nodes[0]; Exec derives nodes[ply+1] from nodes[ply] and Undo simply
// discards it - nothing here is heap-allocated per move.
type Node struct {
	pc [board.PieceArraySize]board.Bitboard

	king    [2]board.Square
	epSquare board.Square
	state   uint8 // color | castle rights | Draw | Check, low 5 bits are the position-key state
	rcount  int   // half-moves since the last pawn move or capture

	pieceKey    uint64
	positionKey uint64

	chkrs  board.Bitboard
	pinned [2]board.Bitboard
	kcross [2][4]board.Bitboard
	kdiags [2][4]board.Bitboard
	slider [64]board.Bitboard

	pinfo [2]pawnCache

	atks     [2]board.Bitboard // all squares attacked by each color
	atkCount [2]int           // pieces of that color menacing the enemy king zone
	atkScore [2]int           // their combined weight, before ATK_WEIGHT damping
	standPat int

	lastMove   board.Move
	nullMoveOk bool
}

// ColorToMove returns the side to move for this node.
func (n *Node) ColorToMove() board.Color {
	return board.Color(n.state & board.ColorMask)
}

// Castle returns the node's castling rights.
func (n *Node) Castle() board.Castle {
	return board.Castle(n.state) & board.AnyCastle
}

// InCheck reports whether the side to move is currently in check.
func (n *Node) InCheck() bool {
	return n.chkrs != 0
}

// Occupied returns the union of all pieces on the board.
func (n *Node) Occupied() board.Bitboard {
	return n.pc[board.White] | n.pc[board.Black]
}

// PieceBb returns the bitboard for a specific color|base piece code.
func (n *Node) PieceBb(p board.Piece) board.Bitboard {
	return n.pc[p]
}
