// Package local provides an in-process implementation of engine.GameEngine.
package local

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"termtris/engine"
	"termtris/engine/arena"
	"termtris/engine/piece"
	"termtris/types"
)

// MinWidth and MinHeight are the smallest well that fits every piece.
const (
	MinWidth  = 4
	MinHeight = 4
)

var debugLog = log.New(io.Discard, "", log.Ltime|log.Lmicroseconds)

// SetDebugLog redirects the engine's debug log to w.
func SetDebugLog(w io.Writer) {
	debugLog.SetOutput(w)
}

// player is the piece under control.
type player struct {
	typ   piece.Type
	shape types.Matrix
	pos   types.Pos
	color int
}

// LocalEngine implements the GameEngine interface with the rules in
// packages arena and piece. It is driven from a single goroutine.
type LocalEngine struct {
	config engine.GameConfig
	board  *arena.Board
	player *player
	rng    *rand.Rand

	phase       types.Phase
	score       int
	lines       int
	pieces      int
	dropCounter time.Duration

	scoreCallback    func(score, lines int)
	gameOverCallback func(state *types.GameState)
}

var _ engine.GameEngine = (*LocalEngine)(nil)

// NewLocalEngine creates an idle engine. Call Start to begin playing.
func NewLocalEngine(cfg engine.GameConfig) (*LocalEngine, error) {
	if cfg.Width < MinWidth || cfg.Height < MinHeight {
		return nil, fmt.Errorf("well must be at least %dx%d, got %dx%d", MinWidth, MinHeight, cfg.Width, cfg.Height)
	}
	if cfg.DropInterval <= 0 {
		cfg.DropInterval = engine.DefaultDropInterval
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &LocalEngine{
		config: cfg,
		board:  arena.New(cfg.Width, cfg.Height),
		rng:    rand.New(rand.NewSource(seed)),
		phase:  types.PhaseIdle,
	}, nil
}

// Start clears the board and score and spawns the first piece. It may be
// called in any phase.
func (e *LocalEngine) Start() {
	e.board.Clear()
	e.score = 0
	e.lines = 0
	e.pieces = 0
	e.dropCounter = 0
	e.phase = types.PhasePlaying
	debugLog.Printf("start: %dx%d, drop every %s", e.config.Width, e.config.Height, e.config.DropInterval)
	e.spawn()
}

// Tick accumulates elapsed time and runs a gravity step once the total
// exceeds the drop interval.
func (e *LocalEngine) Tick(elapsed time.Duration) {
	if e.phase != types.PhasePlaying || elapsed <= 0 {
		return
	}
	e.dropCounter += elapsed
	if e.dropCounter > e.config.DropInterval {
		e.step()
	}
}

// Drop runs a gravity step now and restarts the drop timer.
func (e *LocalEngine) Drop() {
	if e.phase != types.PhasePlaying {
		return
	}
	e.step()
}

// Move shifts the piece by dir columns, reverting if the new spot collides.
func (e *LocalEngine) Move(dir int) bool {
	if e.phase != types.PhasePlaying || dir == 0 {
		return false
	}
	next := e.player.pos.Add(dir, 0)
	if e.board.Collides(e.player.shape, next) {
		return false
	}
	e.player.pos = next
	return true
}

// Rotate turns the piece a quarter turn. If the turned shape collides, the
// x offset is probed at +1, -2, +3, ... steps from where it stands; once the
// next step would be positive and wider than the shape, the rotation is
// abandoned and the piece is left exactly as it was.
func (e *LocalEngine) Rotate(dir int) bool {
	if e.phase != types.PhasePlaying || dir == 0 {
		return false
	}
	p := e.player
	rotated := piece.Rotate(p.shape, dir)
	x := p.pos.X
	step := 1
	for e.board.Collides(rotated, types.Pos{X: x, Y: p.pos.Y}) {
		x += step
		if step > 0 {
			step = -(step + 1)
		} else {
			step = -(step - 1)
		}
		if step > rotated.Cols() {
			debugLog.Printf("rotate: %s dir %d rejected at %v", p.typ, dir, p.pos)
			return false
		}
	}
	p.shape = rotated
	p.pos.X = x
	return true
}

// Dispatch runs cmd. Soft drop always reports true while playing.
func (e *LocalEngine) Dispatch(cmd engine.Command) bool {
	switch cmd {
	case engine.CmdMoveLeft:
		return e.Move(-1)
	case engine.CmdMoveRight:
		return e.Move(1)
	case engine.CmdRotateCW:
		return e.Rotate(1)
	case engine.CmdRotateCCW:
		return e.Rotate(-1)
	case engine.CmdSoftDrop:
		if e.phase != types.PhasePlaying {
			return false
		}
		e.Drop()
		return true
	}
	return false
}

// GetGameState returns a snapshot that shares no memory with the engine.
func (e *LocalEngine) GetGameState() *types.GameState {
	state := &types.GameState{
		Phase:  e.phase,
		Board:  e.board.Rows(),
		Score:  e.score,
		Lines:  e.lines,
		Pieces: e.pieces,
	}
	if e.phase == types.PhasePlaying && e.player != nil {
		state.Piece = &types.PieceState{
			Type:   e.player.typ.String(),
			Shape:  e.player.shape.Clone(),
			Offset: e.player.pos,
			Color:  e.player.color,
		}
	}
	return state
}

// Phase returns the lifecycle state.
func (e *LocalEngine) Phase() types.Phase {
	return e.phase
}

// OnScore registers a callback invoked after a sweep clears at least one row.
func (e *LocalEngine) OnScore(callback func(score, lines int)) {
	e.scoreCallback = callback
}

// OnGameOver registers a callback invoked when a game ends.
func (e *LocalEngine) OnGameOver(callback func(state *types.GameState)) {
	e.gameOverCallback = callback
}

// step moves the piece down one row, or locks it where it is.
func (e *LocalEngine) step() {
	e.dropCounter = 0
	next := e.player.pos.Add(0, 1)
	if !e.board.Collides(e.player.shape, next) {
		e.player.pos = next
		return
	}
	e.lock()
}

// lock merges the piece, sweeps complete rows and spawns the next piece.
func (e *LocalEngine) lock() {
	p := e.player
	if err := e.board.Merge(p.shape, p.pos, p.color); err != nil {
		e.gameOver(fmt.Sprintf("lock failed: %v", err))
		return
	}
	e.player = nil
	e.pieces++

	lines, delta := e.board.Sweep()
	debugLog.Printf("lock: %s at %v, cleared %d for %d", p.typ, p.pos, lines, delta)
	if lines > 0 {
		e.score += delta
		e.lines += lines
		if e.scoreCallback != nil {
			e.scoreCallback(e.score, e.lines)
		}
	}
	e.spawn()
}

func (e *LocalEngine) spawn() {
	e.spawnType(piece.Random(e.rng))
}

// spawnType places a fresh t centred at the top. A blocked spawn ends the game.
func (e *LocalEngine) spawnType(t piece.Type) {
	shape, err := piece.New(t)
	if err != nil {
		panic(err)
	}
	p := &player{
		typ:   t,
		shape: shape,
		pos:   types.Pos{X: e.board.Width()/2 - shape.Cols()/2, Y: 0},
		color: t.Color(),
	}
	if e.board.Collides(p.shape, p.pos) {
		e.gameOver(fmt.Sprintf("no room for %s", t))
		return
	}
	debugLog.Printf("spawn: %s at %v", t, p.pos)
	e.player = p
}

func (e *LocalEngine) gameOver(reason string) {
	e.phase = types.PhaseGameOver
	e.player = nil
	e.dropCounter = 0

	state := e.GetGameState()
	if data, err := json.Marshal(state); err == nil {
		debugLog.Printf("game over: %s: %s", reason, data)
	}
	if e.gameOverCallback != nil {
		e.gameOverCallback(state)
	}
}
