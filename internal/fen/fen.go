// Package fen parses and formats Forsyth-Edwards Notation position
// strings. It is an external collaborator to the engine core: the
// core never reads or writes FEN text itself, only the Position value
// this package produces.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corvidchess/corvid/internal/board"
)

// Position is the plain data a FEN string describes, handed to the
// engine to populate its root node.
type Position struct {
	Board          [64]board.Piece
	SideToMove     board.Color
	Castle         board.Castle
	EPSquare       board.Square
	HasEPSquare    bool
	HalfmoveClock  int
	FullmoveNumber int
}

// Start is the standard starting position.
const Start = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var symbolToPiece = map[byte]board.Piece{
	'P': board.MakePiece(board.White, board.Pawn),
	'N': board.MakePiece(board.White, board.Knight),
	'B': board.MakePiece(board.White, board.Bishop),
	'R': board.MakePiece(board.White, board.Rook),
	'Q': board.MakePiece(board.White, board.Queen),
	'K': board.MakePiece(board.White, board.King),
	'p': board.MakePiece(board.Black, board.Pawn),
	'n': board.MakePiece(board.Black, board.Knight),
	'b': board.MakePiece(board.Black, board.Bishop),
	'r': board.MakePiece(board.Black, board.Rook),
	'q': board.MakePiece(board.Black, board.Queen),
	'k': board.MakePiece(board.Black, board.King),
}

var pieceToSymbol = map[board.Piece]byte{
	board.MakePiece(board.White, board.Pawn):   'P',
	board.MakePiece(board.White, board.Knight): 'N',
	board.MakePiece(board.White, board.Bishop): 'B',
	board.MakePiece(board.White, board.Rook):   'R',
	board.MakePiece(board.White, board.Queen):  'Q',
	board.MakePiece(board.White, board.King):   'K',
	board.MakePiece(board.Black, board.Pawn):   'p',
	board.MakePiece(board.Black, board.Knight): 'n',
	board.MakePiece(board.Black, board.Bishop): 'b',
	board.MakePiece(board.Black, board.Rook):   'r',
	board.MakePiece(board.Black, board.Queen):  'q',
	board.MakePiece(board.Black, board.King):   'k',
}

// Parse parses a FEN string into a Position. It validates field count,
// rank lengths, piece letters and the side-to-move/castle/en-passant
// fields, but leaves deeper chess-legality checks (e.g. exactly one
// king per side) to the engine.
func Parse(s string) (Position, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) < 4 {
		return Position{}, fmt.Errorf("fen: expected at least 4 fields, got %d", len(fields))
	}

	var pos Position
	if err := parseBoard(fields[0], &pos); err != nil {
		return Position{}, err
	}

	switch fields[1] {
	case "w":
		pos.SideToMove = board.White
	case "b":
		pos.SideToMove = board.Black
	default:
		return Position{}, fmt.Errorf("fen: invalid side to move %q", fields[1])
	}

	castle, err := parseCastle(fields[2])
	if err != nil {
		return Position{}, err
	}
	pos.Castle = castle

	if fields[3] != "-" {
		sq, err := board.SquareFromString(fields[3])
		if err != nil {
			return Position{}, fmt.Errorf("fen: invalid en-passant square: %w", err)
		}
		pos.EPSquare = sq
		pos.HasEPSquare = true
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return Position{}, fmt.Errorf("fen: invalid halfmove clock: %w", err)
		}
		pos.HalfmoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return Position{}, fmt.Errorf("fen: invalid fullmove number: %w", err)
		}
		pos.FullmoveNumber = n
	} else {
		pos.FullmoveNumber = 1
	}

	return pos, nil
}

func parseBoard(field string, pos *Position) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i // FEN ranks run 8 (index 0) down to 1 (index 7)
		file := 0
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			p, ok := symbolToPiece[c]
			if !ok {
				return fmt.Errorf("fen: invalid piece letter %q", c)
			}
			if file >= 8 {
				return fmt.Errorf("fen: rank %d overflows the board", rank+1)
			}
			pos.Board[board.RankFile(rank, file)] = p
			file++
		}
		if file != 8 {
			return fmt.Errorf("fen: rank %d does not sum to 8 files", rank+1)
		}
	}
	return nil
}

func parseCastle(field string) (board.Castle, error) {
	if field == "-" {
		return board.NoCastle, nil
	}
	var c board.Castle
	for _, r := range field {
		switch r {
		case 'K':
			c |= board.WhiteShort
		case 'Q':
			c |= board.WhiteLong
		case 'k':
			c |= board.BlackShort
		case 'q':
			c |= board.BlackLong
		default:
			return 0, fmt.Errorf("fen: invalid castle letter %q", r)
		}
	}
	return c, nil
}

// Format renders pos back into FEN text.
func Format(pos Position) string {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := pos.Board[board.RankFile(rank, file)]
			if p == board.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte(byte('0' + empty))
				empty = 0
			}
			b.WriteByte(pieceToSymbol[p])
		}
		if empty > 0 {
			b.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}

	b.WriteByte(' ')
	if pos.SideToMove == board.White {
		b.WriteByte('w')
	} else {
		b.WriteByte('b')
	}

	b.WriteByte(' ')
	if pos.Castle == board.NoCastle {
		b.WriteByte('-')
	} else {
		if pos.Castle&board.WhiteShort != 0 {
			b.WriteByte('K')
		}
		if pos.Castle&board.WhiteLong != 0 {
			b.WriteByte('Q')
		}
		if pos.Castle&board.BlackShort != 0 {
			b.WriteByte('k')
		}
		if pos.Castle&board.BlackLong != 0 {
			b.WriteByte('q')
		}
	}

	b.WriteByte(' ')
	if pos.HasEPSquare {
		b.WriteString(pos.EPSquare.String())
	} else {
		b.WriteByte('-')
	}

	fmt.Fprintf(&b, " %d %d", pos.HalfmoveClock, pos.FullmoveNumber)
	return b.String()
}
