// zobrist.go contains the magic numbers used for Zobrist hashing of a
// position. See http://research.cs.wisc.edu/techreports/1970/TR88.pdf.

package board

import "math/rand"

var (
	// HashPiece[piece][sq] is XORed in for every occupied square when
	// computing pieceKey.
	HashPiece [PieceArraySize][64]uint64
	// HashState[stateBits&StateMask] is XORed in once for the
	// color-to-move and castling-rights bits of positionKey.
	HashState [StateMask + 1]uint64
	// HashEnPassant[sq] is XORed in for the en-passant target square,
	// index NoSquare when there is none.
	HashEnPassant [64]uint64
)

func rand64(r *rand.Rand) uint64 {
	return uint64(r.Int63())<<32 ^ uint64(r.Int63())
}

func initHashPiece(r *rand.Rand) {
	for _, base := range []Piece{Pawn, Knight, Bishop, Rook, Queen, King} {
		for _, c := range []Color{White, Black} {
			p := MakePiece(c, base)
			for sq := Square(0); sq < 64; sq++ {
				HashPiece[p][sq] = rand64(r)
			}
		}
	}
}

func initHashState(r *rand.Rand) {
	for i := range HashState {
		HashState[i] = rand64(r)
	}
}

func initHashEnPassant(r *rand.Rand) {
	for sq := A3; sq <= H3; sq++ {
		HashEnPassant[sq] = rand64(r)
	}
	for sq := A6; sq <= H6; sq++ {
		HashEnPassant[sq] = rand64(r)
	}
}

func init() {
	r := rand.New(rand.NewSource(1))
	initHashPiece(r)
	initHashState(r)
	initHashEnPassant(r)
}
