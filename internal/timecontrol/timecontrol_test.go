package timecontrol

import (
	"testing"
	"time"

	"github.com/corvidchess/corvid/internal/board"
)

func TestFixedDepthNeverStopsOnTime(t *testing.T) {
	tc := NewFixedDepth(32, board.White, 4)
	tc.Start(false)

	if !tc.NextDepth(4) {
		t.Errorf("expected depth 4 to be allowed")
	}
	if tc.NextDepth(5) {
		t.Errorf("expected depth 5 to be refused past the fixed depth")
	}
}

func TestStopTripsStoppedImmediately(t *testing.T) {
	tc := New(32, board.White)
	tc.Start(false)
	if tc.Stopped() {
		t.Fatalf("freshly started control should not be stopped")
	}
	tc.Stop()
	if !tc.Stopped() {
		t.Errorf("expected Stopped() to be true after Stop()")
	}
}

func TestMoveTimeExpiresAndStillRunsDepthOneAndTwo(t *testing.T) {
	tc := NewMoveTime(32, board.White, time.Millisecond)
	tc.Start(false)
	time.Sleep(5 * time.Millisecond)

	if !tc.NextDepth(1) {
		t.Errorf("depth 1 must always be allowed, even past the deadline")
	}
	if !tc.NextDepth(2) {
		t.Errorf("depth 2 must always be allowed, even past the deadline")
	}
	if tc.NextDepth(3) {
		t.Errorf("expected depth 3 to be refused once movetime has elapsed")
	}
}
