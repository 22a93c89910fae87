package engine

import "github.com/corvidchess/corvid/internal/board"

// Perft counts leaf nodes reachable in exactly depth plies from the
// current position, the reference property test for the move
// generator. depth 0 counts the position itself as a single leaf.
func (e *Engine) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}
	n := e.Current()
	moves := e.Generate(n, true)
	var total uint64
	for _, sm := range moves {
		e.Exec(sm.Move)
		total += e.Perft(depth - 1)
		e.Undo(sm.Move)
	}
	return total
}

// PerftDivide is Perft's root variant: it reports the leaf count
// contributed by each legal root move, in generation order.
type PerftDivide struct {
	Move  board.Move
	Count uint64
}

// Divide runs Perft(depth-1) after each legal root move and returns
// the per-move breakdown alongside the total.
func (e *Engine) Divide(depth int) ([]PerftDivide, uint64) {
	n := e.Current()
	moves := e.Generate(n, true)
	results := make([]PerftDivide, 0, len(moves))
	var total uint64
	for _, sm := range moves {
		e.Exec(sm.Move)
		var count uint64
		if depth <= 1 {
			count = 1
		} else {
			count = e.Perft(depth - 1)
		}
		e.Undo(sm.Move)
		results = append(results, PerftDivide{Move: sm.Move, Count: count})
		total += count
	}
	return results, total
}
