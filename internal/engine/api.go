package engine

import (
	"time"

	"github.com/corvidchess/corvid/internal/board"
	"github.com/corvidchess/corvid/internal/timecontrol"
)

// Initialize performs one-time setup. All of this engine's tables
// (Zobrist keys, ray/attack tables) are built by package-level init
// functions in internal/board, so there is nothing left to do here;
// it exists so the host layer has a stable call to make on startup.
func (e *Engine) Initialize() {}

// MakeMove parses coordinateMove ("<from><to>[promotion]") and, if it
// names a currently legal move, plays it and promotes the resulting
// position to the new root. It returns ErrIllegalMove for anything
// else, leaving the position untouched.
func (e *Engine) MakeMove(coordinateMove string) error {
	if e.ply != 0 {
		return ErrIllegalMove
	}
	m, ok := e.parseCoordinateMove(coordinateMove)
	if !ok {
		return ErrIllegalMove
	}

	e.Exec(m)
	e.nodes[0] = e.nodes[1]
	e.ply = 0
	return nil
}

// parseCoordinateMove matches a coordinate-notation string against
// the current root's legal move list.
func (e *Engine) parseCoordinateMove(s string) (board.Move, bool) {
	if len(s) < 4 {
		return board.NoMoveValue, false
	}
	from, err := board.SquareFromString(s[0:2])
	if err != nil {
		return board.NoMoveValue, false
	}
	to, err := board.SquareFromString(s[2:4])
	if err != nil {
		return board.NoMoveValue, false
	}
	var promo byte
	if len(s) >= 5 {
		promo = s[4]
	}

	root := e.Root()
	for _, sm := range e.Generate(root, true) {
		m := sm.Move
		if m.From() != from || m.To() != to {
			continue
		}
		if p := m.Promoted(); p != board.NoPiece {
			letter := promoLetterFor(p)
			if letter != promo {
				continue
			}
		} else if promo != 0 {
			continue
		}
		return m, true
	}
	return board.NoMoveValue, false
}

func promoLetterFor(p board.Piece) byte {
	switch p.Base() {
	case board.Knight:
		return 'n'
	case board.Bishop:
		return 'b'
	case board.Rook:
		return 'r'
	case board.Queen:
		return 'q'
	}
	return 0
}

// GoParams bundles the UCI "go" command's clock and depth parameters.
type GoParams struct {
	Depth     int
	MoveTime  time.Duration
	WTime     time.Duration
	WInc      time.Duration
	BTime     time.Duration
	BInc      time.Duration
	MovesToGo int
	Ponder    bool
	Infinite  bool
}

// Go runs an iterative-deepening search under the given time/depth
// budget and returns the best move along with a ponder move (the PV's
// second move) when one is available. A background goroutine watches
// the clock and calls Stop once the allotted time elapses - the
// "external thread" the core's concurrency model expects, here
// implemented in-process since there is no separate UCI thread.
func (e *Engine) Go(params GoParams) (best, ponder board.Move) {
	root := e.Root()
	numPieces := root.Occupied().Popcount()

	var tc *timecontrol.TimeControl
	switch {
	case params.Infinite:
		tc = timecontrol.New(numPieces, root.ColorToMove())
	case params.MoveTime > 0:
		tc = timecontrol.NewMoveTime(numPieces, root.ColorToMove(), params.MoveTime)
	case params.Depth > 0:
		tc = timecontrol.NewFixedDepth(numPieces, root.ColorToMove(), params.Depth)
	default:
		tc = timecontrol.New(numPieces, root.ColorToMove())
		tc.WTime, tc.WInc = params.WTime, params.WInc
		tc.BTime, tc.BInc = params.BTime, params.BInc
		if params.MovesToGo > 0 {
			tc.MovesToGo = params.MovesToGo
		}
	}
	if params.Depth > 0 && params.Depth < tc.Depth {
		tc.Depth = params.Depth
	}
	tc.Start(params.Ponder)
	e.timeControl = tc

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(5 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if tc.Stopped() {
					e.Stop()
					return
				}
			}
		}
	}()

	best = e.SearchRoot(tc.Depth)
	close(done)
	e.timeControl = nil

	if e.pvLen[0] >= 2 {
		ponder = e.pv[0][1]
	}
	return best, ponder
}

// PonderHit transitions an in-flight ponder search onto the normal
// clock budget.
func (e *Engine) PonderHit() {
	if e.timeControl != nil {
		e.timeControl.PonderHit()
	}
}

// Quit requests the current search stop; the host layer is
// responsible for exiting the process once it observes completion.
func (e *Engine) Quit() {
	e.Stop()
}

// ResetStatsTotals zeros the counters reported by GetStats and the
// transposition table's own counters.
func (e *Engine) ResetStatsTotals() {
	e.TT.ResetCounters()
	e.Stats = Stats{}
}

// ShowStatsTotals returns the engine's Stats value, the same counters
// GetStats reports; SearchRoot resets them at the start of each search.
func (e *Engine) ShowStatsTotals() Stats {
	return e.Stats
}

// GetStats returns the current search's node/depth counters.
func (e *Engine) GetStats() Stats {
	return e.Stats
}

// OptionKind distinguishes the three UCI option widgets this engine
// exposes.
type OptionKind int

const (
	OptionSpin OptionKind = iota
	OptionCheck
	OptionButton
)

// Option describes one configurable engine knob for the host layer's
// "option name ... type ..." announcement.
type Option struct {
	Name    string
	Kind    OptionKind
	Default int
	Min     int
	Max     int
}

// GetOptions enumerates every configurable option, in the order
// spec.md's option table lists them.
func (e *Engine) GetOptions() []Option {
	return []Option{
		{Name: "Hash", Kind: OptionSpin, Default: DefaultHashMB, Min: 1, Max: 65536},
		{Name: "Clear Hash", Kind: OptionButton},
		{Name: "Contempt", Kind: OptionSpin, Default: 0, Min: -1000, Max: 1000},
		{Name: "DeltaPruning", Kind: OptionSpin, Default: 200, Min: 0, Max: 1000},
		{Name: "Razoring", Kind: OptionSpin, Default: 300, Min: 0, Max: 1000},
		{Name: "CheckExtensions", Kind: OptionCheck, Default: 1},
		{Name: "IID", Kind: OptionCheck, Default: 1},
		{Name: "LMR", Kind: OptionSpin, Default: 1, Min: 0, Max: 4},
		{Name: "NullMovePruning", Kind: OptionCheck, Default: 1},
		{Name: "OneReplyExt", Kind: OptionCheck, Default: 1},
		{Name: "Tempo", Kind: OptionSpin, Default: 10, Min: -100, Max: 100},
		{Name: "Test", Kind: OptionSpin, Default: 0, Min: 0, Max: 10},
	}
}

// Resize reallocates the transposition table to mbytes, keeping the
// previous table on failure per spec.md §7's AllocationFailure kind.
func (e *Engine) Resize(mbytes int) error {
	if !e.TT.Resize(mbytes) {
		return ErrAllocationFailure
	}
	return nil
}
