// Package tt implements the engine's transposition table: a
// direct-mapped, always-replace cache from position key to the best
// move, score, depth and bound type found for it.
package tt

import (
	"unsafe"

	"github.com/corvidchess/corvid/internal/board"
)

// Flag is a bitmask of primary bound kind plus independent annotation
// bits. The primary kinds are mutually exclusive; Extended and FromPV
// may be OR'd onto any of them.
type Flag uint8

const (
	Checkmate  Flag = 0x01
	Stalemate  Flag = 0x02
	UpperBound Flag = 0x03
	ExactScore Flag = 0x04
	LowerBound Flag = 0x05

	primaryMask Flag = 0x07

	Extended Flag = 0x08
	FromPV   Flag = 0x10

	otherMask Flag = Extended | FromPV
)

// Primary returns the entry's primary bound kind, stripping the
// Extended/FromPV annotation bits.
func (f Flag) Primary() Flag { return f & primaryMask }

// HasExtended reports whether the storing node used a search extension.
func (f Flag) HasExtended() bool { return f&Extended != 0 }

// HasPV reports whether the storing node was a PV node.
func (f Flag) HasPV() bool { return f&FromPV != 0 }

// Entry is one slot of the table. The zero Entry (positionKey 0) is an
// empty slot, since a legal position key is never exactly zero in
// practice (and even if it collided, Probe would simply miss).
type Entry struct {
	Key   uint64
	Move  board.Move
	Score int16
	Depth uint8
	Flags Flag
}

// entrySize is used only to size the table; unsafe.Sizeof is a compile
// time constant here, matching the teacher's own hashEntry sizing.
var entrySize = uint64(unsafe.Sizeof(Entry{}))

// Table is a direct-mapped transposition table: degree one,
// unconditional replace on collision, no secondary hashing.
type Table struct {
	entries []Entry
	mask    uint64

	stores     uint64
	hits       uint64
	checkmates uint64
	stalemates uint64
}

// New allocates a table sized to the nearest power of two of entries
// that fit in mbytes megabytes. If that size cannot be satisfied (e.g.
// mbytes <= 0) it returns a one-slot table instead; use Resize for the
// fallible form used by UCI's "Hash" option.
func New(mbytes int) *Table {
	t := &Table{}
	if !t.Resize(mbytes) {
		return &Table{entries: make([]Entry, 1), mask: 0}
	}
	return t
}

// Resize rebuilds the table to the largest power-of-two entry count
// that fits in mbytes megabytes, and clears it. It reports false and
// leaves the previous table untouched if mbytes is zero or the
// computed entry count overflows - the AllocationFailure case from
// the external interface, which must keep serving the old table.
func (t *Table) Resize(mbytes int) bool {
	if mbytes <= 0 {
		return false
	}
	bytes := uint64(mbytes) * 1024 * 1024
	count := bytes / entrySize
	highBit := highestPowerOfTwo(count + 1)
	if highBit == 0 {
		return false
	}
	mask := highBit - 1
	if mask == 0 {
		t.entries = nil
		t.mask = 0
		return true
	}
	t.entries = make([]Entry, mask+1)
	t.mask = mask
	t.Clear()
	return true
}

// highestPowerOfTwo returns the largest power of two <= n, or 0 if n is 0.
func highestPowerOfTwo(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	p := uint64(1)
	for p<<1 != 0 && p<<1 <= n {
		p <<= 1
	}
	return p
}

// Clear zeros every entry and resets the hit/store counters.
func (t *Table) Clear() {
	t.ResetCounters()
	for i := range t.entries {
		t.entries[i] = Entry{}
	}
}

// ResetCounters zeros the store/hit/checkmate/stalemate counters
// without touching the stored entries.
func (t *Table) ResetCounters() {
	t.stores = 0
	t.hits = 0
	t.checkmates = 0
	t.stalemates = 0
}

// Probe returns the entry at key's slot and true iff its stored key
// equals key exactly; there is no secondary verification.
func (t *Table) Probe(key uint64) (Entry, bool) {
	if key == 0 || len(t.entries) == 0 {
		return Entry{}, false
	}
	e := &t.entries[key&t.mask]
	if e.Key != key {
		return Entry{}, false
	}
	t.hits++
	return *e, true
}

// Store unconditionally overwrites the slot for key - no depth or age
// preference, matching the design this table is ported from.
func (t *Table) Store(key uint64, move board.Move, score int, depth int, primary Flag, other Flag) {
	if key == 0 || len(t.entries) == 0 {
		return
	}
	t.stores++
	e := &t.entries[key&t.mask]
	e.Key = key
	e.Move = move
	e.Score = int16(score)
	e.Depth = uint8(depth)
	e.Flags = primary | (other & otherMask)
}

// StoreCheckmate records a mated position: depth 0, no move.
func (t *Table) StoreCheckmate(key uint64, mateScore int) {
	if key == 0 || len(t.entries) == 0 {
		return
	}
	t.checkmates++
	e := &t.entries[key&t.mask]
	e.Key = key
	e.Move = board.NoMoveValue
	e.Score = int16(mateScore)
	e.Depth = 0
	e.Flags = Checkmate
}

// StoreStalemate records a stalemated position: depth 0, score 0, no move.
func (t *Table) StoreStalemate(key uint64) {
	if key == 0 || len(t.entries) == 0 {
		return
	}
	t.stalemates++
	e := &t.entries[key&t.mask]
	e.Key = key
	e.Move = board.NoMoveValue
	e.Score = 0
	e.Depth = 0
	e.Flags = Stalemate
}

// Stores, Hits, Checkmates and Stalemates report lifetime counters,
// used by the host layer's stats commands.
func (t *Table) Stores() uint64     { return t.stores }
func (t *Table) Hits() uint64       { return t.hits }
func (t *Table) Checkmates() uint64 { return t.checkmates }
func (t *Table) Stalemates() uint64 { return t.stalemates }

// Len reports the number of slots currently allocated.
func (t *Table) Len() int { return len(t.entries) }
