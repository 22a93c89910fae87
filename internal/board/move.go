package board

import "strings"

// MoveType classifies a Move for make/unmake and move-ordering purposes.
type MoveType uint8

const (
	NoMove MoveType = iota
	Normal
	PawnPush
	PawnLung
	PawnCapture
	EnPassant
	KingMove
	CastleShort
	CastleLong
)

// Shift amounts for the packed Move fields, in bit order low to high:
// type(4) | from(6) | to(6) | piece(4) | captured(4) | promoted(4).
const (
	fromShift  = 4
	toShift    = 10
	pcShift    = 16
	capShift   = 20
	promoShift = 24

	typeMask  = 0xF
	sqrMask   = 0x3F
	pieceMask = 0xF
)

// Move is a packed move: 4 bits type, 6 bits from, 6 bits to, 4 bits
// moving piece, 4 bits captured piece (0 if none), 4 bits promoted
// piece (0 if none). Its search-ordering score is not packed in -
// callers that need one pair it alongside the Move value.
type Move uint32

// NewMove packs a move's fields into a Move value.
func NewMove(typ MoveType, from, to Square, piece, captured, promoted Piece) Move {
	return Move(uint32(typ) |
		uint32(from)<<fromShift |
		uint32(to)<<toShift |
		uint32(piece)<<pcShift |
		uint32(captured)<<capShift |
		uint32(promoted)<<promoShift)
}

// NoMoveValue is the zero Move, used as a "no move" sentinel (e.g. an
// empty transposition-table slot).
const NoMoveValue Move = 0

// Type returns the move's MoveType.
func (m Move) Type() MoveType { return MoveType(m & typeMask) }

// From returns the origin square.
func (m Move) From() Square { return Square((m >> fromShift) & sqrMask) }

// To returns the destination square.
func (m Move) To() Square { return Square((m >> toShift) & sqrMask) }

// Piece returns the moving piece (color|base).
func (m Move) Piece() Piece { return Piece((m >> pcShift) & pieceMask) }

// Captured returns the captured piece (color|base), or NoPiece.
func (m Move) Captured() Piece { return Piece((m >> capShift) & pieceMask) }

// Promoted returns the promoted-to piece (color|base), or NoPiece.
func (m Move) Promoted() Piece { return Piece((m >> promoShift) & pieceMask) }

// IsCapture reports whether the move captures a piece, including
// en-passant.
func (m Move) IsCapture() bool {
	return m.Captured() != NoPiece || m.Type() == EnPassant
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m.Promoted() != NoPiece }

// IsCastle reports whether the move castles either side.
func (m Move) IsCastle() bool {
	t := m.Type()
	return t == CastleShort || t == CastleLong
}

// IsQuiet reports whether the move is neither a capture nor a
// promotion - the category subject to history/killer ordering.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// HistoryIndex returns the (from<<6)|to index used by the history
// table.
func (m Move) HistoryIndex() uint16 {
	return uint16(m.From())<<6 | uint16(m.To())
}

var promoLetter = map[Piece]byte{
	Knight: 'n',
	Bishop: 'b',
	Rook:   'r',
	Queen:  'q',
}

// String renders the move in coordinate form: <from><to>[promotion],
// e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NoMoveValue {
		return "0000"
	}
	var b strings.Builder
	b.WriteString(m.From().String())
	b.WriteString(m.To().String())
	if p := m.Promoted(); p != NoPiece {
		b.WriteByte(promoLetter[p.Base()])
	}
	return b.String()
}
