// Package engine implements the Corvid chess core: board state, legal
// move generation, static evaluation, and alpha-beta search with
// quiescence.
//
// Move generation (movegen.go, makeunmake.go) uses:
//
//   - Bitboards for piece placement - https://www.chessprogramming.org/Bitboards
//   - Ray scanning for sliding attacks - https://www.chessprogramming.org/Classical_Approach
//   - Pin detection via king-centered cross/diagonal rays
//
// Search (search.go) features implemented:
//
//   - Negamax with alpha-beta pruning and fail-hard cutoffs
//   - Principal variation search with aspiration windows at the root
//   - Quiescence search with delta pruning
//   - Transposition table probing/storing (internal/tt)
//   - Null-move pruning, razoring, internal iterative deepening
//   - Late move reductions, including double reduction
//   - Check, one-reply and hash extensions
//   - Mate distance pruning
//   - Killer move and history heuristics - https://www.chessprogramming.org/Killer_Heuristic
//   - Static exchange evaluation for move ordering (see.go)
//
// Evaluation (eval.go) blends material, piece-square tables, pawn
// structure, king safety, passed pawns, mobility and several endgame
// corrections, phased between midgame and endgame tables.
package engine

import (
	"time"

	"github.com/corvidchess/corvid/internal/board"
	"github.com/corvidchess/corvid/internal/timecontrol"
	"github.com/corvidchess/corvid/internal/tt"
)

// Tuning holds the numeric knobs the search reads every node. UCI is
// the only writer; defaults match the spec's option table.
type Tuning struct {
	Contempt        int
	DeltaPruning    int
	Razoring        int
	CheckExtensions bool
	IID             bool
	LMR             int
	NullMovePruning bool
	OneReplyExt     bool
	Tempo           int
	Test            int
}

// DefaultHashMB is the transposition table size a freshly constructed
// engine uses until the host layer sets "Hash" explicitly.
const DefaultHashMB = 64

// DefaultTuning returns the engine's default option values.
func DefaultTuning() Tuning {
	return Tuning{
		Contempt:        0,
		DeltaPruning:    200,
		Razoring:        300,
		CheckExtensions: true,
		IID:             true,
		LMR:             1,
		NullMovePruning: true,
		OneReplyExt:     true,
		Tempo:           10,
		Test:            0,
	}
}

// Stats reports search progress for the UCI "info" line.
type Stats struct {
	Nodes    uint64
	Depth    int
	SelDepth int
}

// Logger receives search progress notifications. The zero value isn't
// usable; callers that don't want UCI chatter pass NulLogger{}.
type Logger interface {
	BeginSearch()
	EndSearch()
	PrintPV(stats Stats, score int, pv []board.Move)
	CurrMove(move board.Move, number int)
}

// NulLogger discards every notification.
type NulLogger struct{}

func (NulLogger) BeginSearch()                                   {}
func (NulLogger) EndSearch()                                     {}
func (NulLogger) PrintPV(Stats, int, []board.Move)                {}
func (NulLogger) CurrMove(board.Move, int)                        {}

// historyTable is the fixed (from<<6)|to indexed history heuristic
// table, bounded to [-2, +40] as the spec requires.
type historyTable [65536]int8

const (
	historyMin int8 = -2
	historyMax int8 = 40
)

func (ht *historyTable) get(m board.Move) int8 {
	return ht[m.HistoryIndex()]
}

func (ht *historyTable) inc(m board.Move) {
	i := m.HistoryIndex()
	if ht[i] < historyMax {
		ht[i]++
	}
}

func (ht *historyTable) dec(m board.Move) {
	i := m.HistoryIndex()
	if ht[i] > historyMin {
		ht[i]--
	}
}

func (ht *historyTable) clear() {
	for i := range ht {
		ht[i] = 0
	}
}

// killerPair is the per-ply pair of quiet killer moves.
type killerPair [2]board.Move

func (kp *killerPair) add(m board.Move) {
	if kp[0] == m {
		return
	}
	kp[1] = kp[0]
	kp[0] = m
}

func (kp killerPair) has(m board.Move) bool {
	return kp[0] == m || kp[1] == m
}

// Engine bundles everything the search needs: the node stack, history
// and killer tables, the seen-set for repetition detection, the
// transposition table and the tuning knobs. Per Design Notes, this
// replaces the original's global statics with one aggregate value.
type Engine struct {
	nodes [MaxPlies]Node
	board [64]board.Piece
	ply   int

	seen map[uint64]struct{}

	history historyTable
	killers [MaxPlies]killerPair

	TT     *tt.Table
	Tuning Tuning
	Log    Logger
	Stats  Stats

	pv    [MaxPlies][MaxPlies]board.Move
	pvLen [MaxPlies]int

	searchStart time.Time
	timeControl *timecontrol.TimeControl

	stop bool
}

// New creates an engine with a freshly allocated transposition table
// of hashMB megabytes and the default tuning.
func New(hashMB int, log Logger) *Engine {
	if log == nil {
		log = NulLogger{}
	}
	e := &Engine{
		TT:     tt.New(hashMB),
		Tuning: DefaultTuning(),
		Log:    log,
		seen:   make(map[uint64]struct{}, 256),
	}
	return e
}

// Root returns the current root node (ply 0).
func (e *Engine) Root() *Node { return &e.nodes[0] }

// Current returns the node at the engine's current ply.
func (e *Engine) Current() *Node { return &e.nodes[e.ply] }

// Stop requests that any in-flight search unwind as soon as it next
// polls the flag.
func (e *Engine) Stop() { e.stop = true }

// Stopped reports whether Stop has been called since the last search began.
func (e *Engine) Stopped() bool { return e.stop }

// ClearSearchData clears history, killers and the seen-set, but keeps
// the transposition table (it survives across searches until resized
// or explicitly cleared).
func (e *Engine) ClearSearchData() {
	e.history.clear()
	for i := range e.killers {
		e.killers[i] = killerPair{}
	}
	clear(e.seen)
}

// ClearHash zeros the transposition table.
func (e *Engine) ClearHash() {
	e.TT.Clear()
}

// markSeen records positionKey as visited at the current ply.
func (e *Engine) markSeen(key uint64) {
	e.seen[key] = struct{}{}
}

// unmarkSeen removes positionKey, called by Undo.
func (e *Engine) unmarkSeen(key uint64) {
	delete(e.seen, key)
}

// isRepeated reports whether key has already occurred somewhere on the
// current search path - the spec's plain-set semantics, not a
// strict third-occurrence counter.
func (e *Engine) isRepeated(key uint64) bool {
	_, ok := e.seen[key]
	return ok
}

// isDraw reports the three draw conditions Search/QSearch must treat
// alike: fifty-move rule, repetition along the current path, and
// insufficient mating material (flagged by Evaluate).
func (e *Engine) isDraw(n *Node) bool {
	if n.rcount >= 100 {
		return true
	}
	if n.state&board.DrawFlag != 0 {
		return true
	}
	return e.isRepeated(n.positionKey)
}

// drawScore is the contempt-adjusted score for a draw, from the
// perspective of the side to move: positive Contempt makes drawing
// from a worse-than-even position relatively more attractive to the
// opponent, so the side to move is penalized for steering into one.
func (e *Engine) drawScore() int {
	return -e.Tuning.Contempt
}
