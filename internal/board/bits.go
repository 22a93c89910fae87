package board

import "math/bits"

// Popcount returns the number of set bits.
func (bb Bitboard) Popcount() int { return bits.OnesCount64(uint64(bb)) }

// bitScanForward returns the lowest-indexed set square. bb must be nonzero.
func bitScanForward(bb Bitboard) Square {
	return Square(bits.TrailingZeros64(uint64(bb)))
}

// bitScanReverse returns the highest-indexed set square. bb must be nonzero.
func bitScanReverse(bb Bitboard) Square {
	return Square(63 - bits.LeadingZeros64(uint64(bb)))
}

// LSB returns the lowest-indexed set square and true, or (0, false) if
// bb is empty.
func (bb Bitboard) LSB() (Square, bool) {
	if bb == 0 {
		return 0, false
	}
	return bitScanForward(bb), true
}

// MSB returns the highest-indexed set square and true, or (0, false)
// if bb is empty.
func (bb Bitboard) MSB() (Square, bool) {
	if bb == 0 {
		return 0, false
	}
	return bitScanReverse(bb), true
}

// Pop removes and returns the lowest-indexed set square, along with
// the resulting bitboard. Calling Pop on an empty bitboard is a bug in
// the caller; it returns (0, bb).
func (bb Bitboard) Pop() (Square, Bitboard) {
	sq, ok := bb.LSB()
	if !ok {
		return 0, bb
	}
	return sq, bb &^ sq.Bitboard()
}

// ForEach calls fn once for every set square, lowest to highest.
func (bb Bitboard) ForEach(fn func(Square)) {
	for bb != 0 {
		var sq Square
		sq, bb = bb.Pop()
		fn(sq)
	}
}
