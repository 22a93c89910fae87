// Package timecontrol allocates a per-move thinking budget from the
// clock/increment/moves-to-go parameters the UCI "go" command
// supplies, the way a host layer times an iterative-deepening search.
package timecontrol

import (
	"math"
	"sync"
	"time"

	"github.com/corvidchess/corvid/internal/board"
)

const (
	defaultMovesToGo    = 30
	defaultBranchFactor = 2
)

// atomicFlag is a mutex-guarded bool that only ever transitions false
// to true, so Stop is idempotent from any goroutine.
type atomicFlag struct {
	mu   sync.Mutex
	flag bool
}

func (f *atomicFlag) set() {
	f.mu.Lock()
	f.flag = true
	f.mu.Unlock()
}

func (f *atomicFlag) get() bool {
	f.mu.Lock()
	v := f.flag
	f.mu.Unlock()
	return v
}

// TimeControl splits the remaining clock over the estimated number of
// moves left in the game, reserving more time per move when there are
// fewer pieces on the board (mobility drops, the TT carries more of
// the load) or when MovesToGo is small.
type TimeControl struct {
	WTime, WInc time.Duration
	BTime, BInc time.Duration
	Depth       int
	MovesToGo   int

	numPieces  int
	sideToMove board.Color

	stopped   atomicFlag
	ponderhit atomicFlag

	searchTime     time.Duration
	searchDeadline time.Time
	ponderTime     time.Duration
	ponderDeadline time.Time
}

// New returns a time control with no limits; callers set WTime/BTime/
// Depth/MovesToGo (or use NewFixedDepth/NewMoveTime) before Start.
func New(numPieces int, sideToMove board.Color) *TimeControl {
	inf := time.Duration(math.MaxInt64)
	return &TimeControl{
		WTime:      inf,
		BTime:      inf,
		Depth:      MaxSearchDepth,
		MovesToGo:  defaultMovesToGo,
		numPieces:  numPieces,
		sideToMove: sideToMove,
	}
}

// MaxSearchDepth is the depth cap used when no explicit depth limit
// is requested; it is below the engine's node-stack bound of 100 plies.
const MaxSearchDepth = 64

// NewFixedDepth returns a time control that ignores the clock and
// stops only once depth is exhausted.
func NewFixedDepth(numPieces int, sideToMove board.Color, depth int) *TimeControl {
	tc := New(numPieces, sideToMove)
	tc.Depth = depth
	tc.MovesToGo = 1
	return tc
}

// NewMoveTime returns a time control that allots exactly duration to
// this move regardless of the clock (UCI's "movetime").
func NewMoveTime(numPieces int, sideToMove board.Color, duration time.Duration) *TimeControl {
	tc := New(numPieces, sideToMove)
	tc.WTime, tc.BTime = duration, duration
	tc.MovesToGo = 1
	return tc
}

func (tc *TimeControl) thinkingTime(t, i time.Duration) time.Duration {
	moves := time.Duration(tc.MovesToGo)
	if tt := (t + (moves-1)*i) / moves; tt < t {
		return tt
	}
	return t
}

// Start computes the search/ponder deadlines from the current clock
// state; call it as close as possible to when the "go" command is
// received so elapsed thinking time isn't lost to setup.
func (tc *TimeControl) Start(ponder bool) {
	branchFactor := time.Duration(defaultBranchFactor)
	for np := tc.numPieces - 2; np > 0; np /= 6 {
		branchFactor++
	}
	for i := 4; i > 0; i /= 2 {
		if tc.MovesToGo <= i {
			branchFactor++
		}
	}

	var ourTime, ourInc, theirTime, theirInc time.Duration
	if tc.sideToMove == board.White {
		ourTime, ourInc, theirTime, theirInc = tc.WTime, tc.WInc, tc.BTime, tc.BInc
	} else {
		ourTime, ourInc, theirTime, theirInc = tc.BTime, tc.BInc, tc.WTime, tc.WInc
	}

	tc.stopped = atomicFlag{}
	tc.ponderhit = atomicFlag{flag: !ponder}

	tc.searchTime = tc.thinkingTime(ourTime, ourInc) / branchFactor
	tc.ponderTime = (tc.thinkingTime(theirTime, theirInc) + tc.searchTime/2) / branchFactor

	now := time.Now()
	tc.searchDeadline = now.Add(tc.searchTime)
	tc.ponderDeadline = now.Add(tc.ponderTime)
}

// NextDepth reports whether the search should begin iteration depth.
// Depths 1 and 2 always run, even over time, so a hard time scramble
// never returns with no move at all.
func (tc *TimeControl) NextDepth(depth int) bool {
	return depth <= tc.Depth && (depth <= 2 || !tc.Stopped())
}

// PonderHit switches the deadline from the ponder budget to the
// normal search budget.
func (tc *TimeControl) PonderHit() {
	tc.searchDeadline = time.Now().Add(tc.searchTime)
	tc.ponderhit.set()
}

// Stop marks the search as externally stopped (UCI "stop").
func (tc *TimeControl) Stop() { tc.stopped.set() }

// Stopped reports whether the search must unwind now, either because
// Stop was called or because the relevant deadline has passed.
func (tc *TimeControl) Stopped() bool {
	if tc.stopped.get() {
		return true
	}
	if tc.ponderhit.get() && time.Now().After(tc.searchDeadline) {
		tc.stopped.set()
		return true
	}
	if !tc.ponderhit.get() && time.Now().After(tc.ponderDeadline) {
		tc.stopped.set()
		return true
	}
	return false
}
