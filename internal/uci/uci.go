// Package uci implements the UCI protocol
// (http://wbec-ridderkerk.nl/html/UCIProtocol.html) as the host
// process layer around internal/engine: it owns the command loop,
// option parsing, and stdout "info"/"bestmove" formatting. The core
// engine never talks UCI itself.
package uci

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/corvidchess/corvid/internal/board"
	"github.com/corvidchess/corvid/internal/engine"
	"github.com/corvidchess/corvid/internal/fen"
)

// ErrQuit is returned by Execute for the "quit" command; the caller's
// read loop treats it as a normal exit, not an error to log.
var ErrQuit = errors.New("uci: quit")

const (
	name   = "Corvid"
	author = "Corvid Authors"
)

// uciLogger writes search progress as UCI "info" lines to stdout.
type uciLogger struct {
	start time.Time
}

func newUCILogger() *uciLogger { return &uciLogger{} }

func (l *uciLogger) BeginSearch() { l.start = time.Now() }
func (l *uciLogger) EndSearch()   {}

func (l *uciLogger) PrintPV(stats engine.Stats, score int, pv []board.Move) {
	var scoreField string
	switch {
	case score > engine.MateThreshold:
		scoreField = fmt.Sprintf("mate %d", (engine.Infinity-score+1)/2)
	case score < -engine.MateThreshold:
		scoreField = fmt.Sprintf("mate %d", -(engine.Infinity+score)/2)
	default:
		scoreField = fmt.Sprintf("cp %d", score)
	}

	elapsed := time.Since(l.start)
	if elapsed <= 0 {
		elapsed = time.Millisecond
	}
	millis := elapsed.Milliseconds()
	nps := uint64(float64(stats.Nodes) / elapsed.Seconds())

	var b strings.Builder
	fmt.Fprintf(&b, "info depth %d seldepth %d score %s nodes %d time %d nps %d pv",
		stats.Depth, stats.SelDepth, scoreField, stats.Nodes, millis, nps)
	for _, m := range pv {
		b.WriteByte(' ')
		b.WriteString(m.String())
	}
	fmt.Println(b.String())
}

func (l *uciLogger) CurrMove(move board.Move, number int) {
	if time.Since(l.start) > 10*time.Second {
		fmt.Printf("info currmove %s currmovenumber %d\n", move.String(), number)
	}
}

// UCI drives one engine instance through the command loop. It is not
// safe for concurrent use from multiple goroutines beyond the single
// search goroutine Go itself spawns.
type UCI struct {
	Engine *engine.Engine
	out    *os.File
}

// New creates a UCI host wrapping a freshly constructed engine.
func New() *UCI {
	return &UCI{
		Engine: engine.New(engine.DefaultHashMB, newUCILogger()),
		out:    os.Stdout,
	}
}

var reCmd = regexp.MustCompile(`^\S+`)

// Execute parses and runs one line of UCI input. It returns ErrQuit
// for "quit" and a plain error for anything malformed; the caller
// decides how to report the latter.
func (u *UCI) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd := reCmd.FindString(line)
	switch cmd {
	case "uci":
		return u.handleUCI()
	case "isready":
		fmt.Println("readyok")
		return nil
	case "ucinewgame":
		u.Engine.ClearHash()
		u.Engine.ClearSearchData()
		return nil
	case "position":
		return u.handlePosition(line)
	case "go":
		return u.handleGo(line)
	case "stop":
		u.Engine.Stop()
		return nil
	case "ponderhit":
		u.Engine.PonderHit()
		return nil
	case "setoption":
		return u.handleSetOption(line)
	case "quit":
		return ErrQuit
	default:
		return fmt.Errorf("uci: unhandled command %q", cmd)
	}
}

func (u *UCI) handleUCI() error {
	fmt.Printf("id name %s\n", name)
	fmt.Printf("id author %s\n", author)
	for _, opt := range u.Engine.GetOptions() {
		switch opt.Kind {
		case engine.OptionSpin:
			fmt.Printf("option name %s type spin default %d min %d max %d\n", opt.Name, opt.Default, opt.Min, opt.Max)
		case engine.OptionCheck:
			fmt.Printf("option name %s type check default %v\n", opt.Name, opt.Default != 0)
		case engine.OptionButton:
			fmt.Printf("option name %s type button\n", opt.Name)
		}
	}
	fmt.Println("uciok")
	return nil
}

func (u *UCI) handlePosition(line string) error {
	args := strings.Fields(line)[1:]
	if len(args) == 0 {
		return errors.New("uci: position requires an argument")
	}

	i := 0
	var fenStr string
	switch args[0] {
	case "startpos":
		fenStr = fen.Start
		i = 1
	case "fen":
		i = 1
		for i < len(args) && args[i] != "moves" {
			i++
		}
		fenStr = strings.Join(args[1:i], " ")
	default:
		return fmt.Errorf("uci: unknown position argument %q", args[0])
	}

	if err := u.Engine.SetPosition(fenStr); err != nil {
		return err
	}

	if i < len(args) {
		if args[i] != "moves" {
			return fmt.Errorf("uci: expected 'moves', got %q", args[i])
		}
		for _, mv := range args[i+1:] {
			if err := u.Engine.MakeMove(mv); err != nil {
				return err
			}
		}
	}
	return nil
}

var validGoTokens = map[string]bool{
	"ponder": true, "wtime": true, "btime": true, "winc": true, "binc": true,
	"movestogo": true, "depth": true, "nodes": true, "mate": true,
	"movetime": true, "infinite": true,
}

func (u *UCI) handleGo(line string) error {
	var params engine.GoParams
	args := strings.Fields(line)[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "ponder":
			params.Ponder = true
		case "infinite":
			params.Infinite = true
		case "wtime":
			i++
			params.WTime = millisArg(args[i])
		case "winc":
			i++
			params.WInc = millisArg(args[i])
		case "btime":
			i++
			params.BTime = millisArg(args[i])
		case "binc":
			i++
			params.BInc = millisArg(args[i])
		case "movestogo":
			i++
			n, _ := strconv.Atoi(args[i])
			params.MovesToGo = n
		case "depth":
			i++
			n, _ := strconv.Atoi(args[i])
			params.Depth = n
		case "movetime":
			i++
			params.MoveTime = millisArg(args[i])
		case "nodes", "mate", "searchmoves":
			for i+1 < len(args) && !validGoTokens[args[i+1]] {
				i++
			}
		default:
			return fmt.Errorf("uci: invalid go argument %q", args[i])
		}
	}

	go func() {
		best, ponder := u.Engine.Go(params)
		if best == board.NoMoveValue {
			fmt.Println("bestmove (none)")
		} else if ponder != board.NoMoveValue {
			fmt.Printf("bestmove %s ponder %s\n", best.String(), ponder.String())
		} else {
			fmt.Printf("bestmove %s\n", best.String())
		}
	}()
	return nil
}

func millisArg(s string) time.Duration {
	n, _ := strconv.Atoi(s)
	return time.Duration(n) * time.Millisecond
}

var reSetOption = regexp.MustCompile(`^setoption\s+name\s+(.+?)(\s+value\s+(.*))?$`)

func (u *UCI) handleSetOption(line string) error {
	m := reSetOption.FindStringSubmatch(line)
	if m == nil {
		return errors.New("uci: malformed setoption line")
	}
	optName, hasValue, value := m[1], m[2] != "", m[3]

	if optName == "Clear Hash" {
		u.Engine.ClearHash()
		return nil
	}
	if !hasValue {
		return fmt.Errorf("uci: option %q requires a value", optName)
	}

	switch optName {
	case "Hash":
		mb, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		return u.Engine.Resize(mb)
	case "Contempt":
		u.Engine.Tuning.Contempt = mustAtoi(value)
	case "DeltaPruning":
		u.Engine.Tuning.DeltaPruning = mustAtoi(value)
	case "Razoring":
		u.Engine.Tuning.Razoring = mustAtoi(value)
	case "CheckExtensions":
		u.Engine.Tuning.CheckExtensions = mustAtob(value)
	case "IID":
		u.Engine.Tuning.IID = mustAtob(value)
	case "LMR":
		u.Engine.Tuning.LMR = mustAtoi(value)
	case "NullMovePruning":
		u.Engine.Tuning.NullMovePruning = mustAtob(value)
	case "OneReplyExt":
		u.Engine.Tuning.OneReplyExt = mustAtob(value)
	case "Tempo":
		u.Engine.Tuning.Tempo = mustAtoi(value)
	case "Test":
		u.Engine.Tuning.Test = mustAtoi(value)
	default:
		return fmt.Errorf("uci: unhandled option %q", optName)
	}
	return nil
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func mustAtob(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}
