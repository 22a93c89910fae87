package engine

import (
	"github.com/corvidchess/corvid/internal/board"
	"github.com/corvidchess/corvid/internal/fen"
)

// SetPosition parses fenStr and replaces the root position. On
// failure the previous root position is left untouched.
func (e *Engine) SetPosition(fenStr string) error {
	pos, err := fen.Parse(fenStr)
	if err != nil {
		return wrapInvalidFEN(err)
	}
	if err := validatePosition(pos); err != nil {
		return wrapInvalidFEN(err)
	}

	e.board = pos.Board
	e.ply = 0
	e.seen = make(map[uint64]struct{}, 256)

	n := &e.nodes[0]
	*n = Node{}
	e.loadNode(n, pos)
	return nil
}

func wrapInvalidFEN(cause error) error {
	return &fenError{cause: cause}
}

type fenError struct{ cause error }

func (f *fenError) Error() string { return "engine: invalid FEN: " + f.cause.Error() }
func (f *fenError) Unwrap() error { return ErrInvalidFEN }

func validatePosition(pos fen.Position) error {
	var kings [2]int
	for _, p := range pos.Board {
		if p.Base() == board.King {
			kings[p.Color()]++
		}
	}
	if kings[board.White] != 1 || kings[board.Black] != 1 {
		return errInvalidKingCount
	}
	return nil
}

var errInvalidKingCount = simpleError("each side must have exactly one king")

type simpleError string

func (s simpleError) Error() string { return string(s) }

// loadNode fills n from pos: piece bitboards, king squares, state
// byte, keys, and derived attack/pin data.
func (e *Engine) loadNode(n *Node, pos fen.Position) {
	for sq, p := range pos.Board {
		if p == board.NoPiece {
			continue
		}
		sqr := board.Square(sq)
		n.pc[p] |= sqr.Bitboard()
		n.pc[p.Color()] |= sqr.Bitboard()
		if p.Base() == board.King {
			n.king[p.Color()] = sqr
		}
	}

	n.state = uint8(pos.SideToMove) | uint8(pos.Castle)
	n.nullMoveOk = true
	if pos.HasEPSquare {
		n.epSquare = pos.EPSquare
	} else {
		n.epSquare = board.NoSquare
	}
	n.rcount = pos.HalfmoveClock

	e.computeKeys(n)
	e.computeSliderCache(n)
	e.computeChecksAndPins(n)
	if n.InCheck() {
		n.state |= board.CheckFlag
	}
	e.Evaluate(n)
}

// computeKeys recomputes pieceKey and positionKey from scratch.
func (e *Engine) computeKeys(n *Node) {
	var pieceKey uint64
	for sq, p := range e.board {
		if p == board.NoPiece {
			continue
		}
		pieceKey ^= board.HashPiece[p][sq]
	}
	n.pieceKey = pieceKey

	stateKey := board.HashState[n.state&board.StateMask]
	epKey := board.HashEnPassant[n.epSquare]
	if n.epSquare == board.NoSquare {
		epKey = 0
	}
	n.positionKey = pieceKey ^ stateKey ^ epKey
}

// FEN renders the current root position back to FEN text.
func (e *Engine) FEN() string {
	n := &e.nodes[0]
	pos := fen.Position{
		Board:          e.board,
		SideToMove:     n.ColorToMove(),
		Castle:         n.Castle(),
		HalfmoveClock:  n.rcount,
		FullmoveNumber: 1,
	}
	if n.epSquare != board.NoSquare {
		pos.EPSquare = n.epSquare
		pos.HasEPSquare = true
	}
	return fen.Format(pos)
}
