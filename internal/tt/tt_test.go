package tt

import (
	"testing"

	"github.com/corvidchess/corvid/internal/board"
)

func TestProbeAfterStoreRoundTrips(t *testing.T) {
	table := New(1)
	key := uint64(0xdeadbeefcafef00d)
	m := board.NewMove(board.Normal, board.E2, board.E4, board.MakePiece(board.White, board.Pawn), board.NoPiece, board.NoPiece)

	table.Store(key, m, 123, 7, ExactScore, FromPV)

	entry, ok := table.Probe(key)
	if !ok {
		t.Fatalf("expected a hit immediately after Store")
	}
	if entry.Move != m || entry.Score != 123 || entry.Depth != 7 {
		t.Errorf("got %+v, want move=%v score=123 depth=7", entry, m)
	}
	if entry.Flags.Primary() != ExactScore || !entry.Flags.HasPV() {
		t.Errorf("got flags %v, want ExactScore|FromPV", entry.Flags)
	}
}

func TestProbeMissForUnstoredKey(t *testing.T) {
	table := New(1)
	if _, ok := table.Probe(0x123456789abcdef0); ok {
		t.Errorf("expected a miss for a key that was never stored")
	}
}

func TestResizeFailureKeepsPreviousTable(t *testing.T) {
	table := New(1)
	before := table.Len()

	if table.Resize(0) {
		t.Fatalf("Resize(0) should report failure")
	}
	if table.Len() != before {
		t.Errorf("failed Resize changed table size from %d to %d", before, table.Len())
	}
}
