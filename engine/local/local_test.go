package local

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termtris/engine"
	"termtris/engine/arena"
	"termtris/engine/piece"
	"termtris/types"
)

func newTestEngine(t *testing.T) *LocalEngine {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.Seed = 42
	e, err := NewLocalEngine(cfg)
	require.NoError(t, err)
	return e
}

// place swaps the active piece for typ in the given orientation and position.
func place(t *testing.T, e *LocalEngine, typ piece.Type, quarterTurns int, pos types.Pos) {
	t.Helper()
	shape, err := piece.New(typ)
	require.NoError(t, err)
	for i := 0; i < quarterTurns; i++ {
		shape = piece.Rotate(shape, 1)
	}
	e.player = &player{typ: typ, shape: shape, pos: pos, color: typ.Color()}
}

// loadBoard replaces the engine's board with one parsed from text.
func loadBoard(t *testing.T, e *LocalEngine, text string) {
	t.Helper()
	b, err := arena.Parse(text)
	require.NoError(t, err)
	require.Equal(t, e.board.Width(), b.Width())
	require.Equal(t, e.board.Height(), b.Height())
	e.board = b
}

// wellWith returns a 10x20 board text whose bottom rows are the given rows.
func wellWith(rows ...string) string {
	var lines []string
	for i := 0; i < 20-len(rows); i++ {
		lines = append(lines, "..........")
	}
	return strings.Join(append(lines, rows...), "\n")
}

func TestNewLocalEngineValidates(t *testing.T) {
	_, err := NewLocalEngine(engine.GameConfig{Width: 3, Height: 20})
	assert.Error(t, err)
	_, err = NewLocalEngine(engine.GameConfig{Width: 10, Height: 2})
	assert.Error(t, err)

	e, err := NewLocalEngine(engine.GameConfig{Width: 10, Height: 20})
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultDropInterval, e.config.DropInterval)
	assert.Equal(t, types.PhaseIdle, e.Phase())
}

func TestIdleIgnoresCommands(t *testing.T) {
	e := newTestEngine(t)
	assert.False(t, e.Move(1))
	assert.False(t, e.Rotate(1))
	assert.False(t, e.Dispatch(engine.CmdSoftDrop))
	e.Drop()
	e.Tick(5 * time.Second)

	state := e.GetGameState()
	assert.Equal(t, types.PhaseIdle, state.Phase)
	assert.Nil(t, state.Piece)
	assert.Equal(t, 0, e.pieces)
}

func TestStartSpawnsCentredPiece(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	require.Equal(t, types.PhasePlaying, e.Phase())

	state := e.GetGameState()
	require.NotNil(t, state.Piece)
	assert.Equal(t, 0, state.Piece.Offset.Y)
	assert.Equal(t, 10/2-state.Piece.Shape.Cols()/2, state.Piece.Offset.X)
	assert.Zero(t, state.Score)
	assert.Equal(t, 20, state.Height())
	assert.Equal(t, 10, state.Width())
}

func TestSpawnOffsets(t *testing.T) {
	want := map[piece.Type]int{piece.T: 4, piece.J: 4, piece.L: 4, piece.O: 4, piece.S: 4, piece.Z: 4, piece.I: 3}
	for typ, x := range want {
		e := newTestEngine(t)
		e.phase = types.PhasePlaying
		e.spawnType(typ)
		require.NotNil(t, e.player, "type %s", typ)
		assert.Equal(t, types.Pos{X: x, Y: 0}, e.player.pos, "type %s", typ)
		assert.Equal(t, typ.Color(), e.player.color)
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	sequence := func() []piece.Type {
		e := newTestEngine(t)
		e.Start()
		var seq []piece.Type
		for i := 0; i < 20; i++ {
			e.spawn()
			seq = append(seq, e.player.typ)
		}
		return seq
	}
	assert.Equal(t, sequence(), sequence())
}

func TestMoveRejectsWallCollision(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	place(t, e, piece.I, 0, types.Pos{X: 3, Y: 0})

	assert.False(t, e.Move(100))
	assert.Equal(t, types.Pos{X: 3, Y: 0}, e.player.pos)

	assert.True(t, e.Move(3))
	assert.False(t, e.Move(1), "flush against the right wall")
	assert.Equal(t, 6, e.player.pos.X)

	assert.True(t, e.Dispatch(engine.CmdMoveLeft))
	assert.Equal(t, 5, e.player.pos.X)
	assert.False(t, e.Move(0))
}

func TestTickAccumulatesPastInterval(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	place(t, e, piece.O, 0, types.Pos{X: 4, Y: 0})

	e.Tick(600 * time.Millisecond)
	assert.Equal(t, 0, e.player.pos.Y)
	e.Tick(400 * time.Millisecond)
	assert.Equal(t, 0, e.player.pos.Y, "the interval must be exceeded, not reached")
	e.Tick(time.Millisecond)
	assert.Equal(t, 1, e.player.pos.Y)
	assert.Zero(t, e.dropCounter)

	e.Tick(999 * time.Millisecond)
	assert.Equal(t, 1, e.player.pos.Y)
	e.Tick(-time.Second)
	assert.Equal(t, 999*time.Millisecond, e.dropCounter, "negative ticks are ignored")
}

func TestDropResetsTimer(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	place(t, e, piece.O, 0, types.Pos{X: 4, Y: 0})

	e.Tick(900 * time.Millisecond)
	assert.True(t, e.Dispatch(engine.CmdSoftDrop))
	assert.Equal(t, 1, e.player.pos.Y)
	assert.Zero(t, e.dropCounter)

	e.Tick(500 * time.Millisecond)
	assert.Equal(t, 1, e.player.pos.Y)
}

func TestLockClearsLineAndScores(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	loadBoard(t, e, wellWith("22222.2222"))
	place(t, e, piece.I, 1, types.Pos{X: 3, Y: 16})

	var gotScore, gotLines, calls int
	e.OnScore(func(score, lines int) {
		gotScore, gotLines = score, lines
		calls++
	})

	e.Drop()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 10, gotScore)
	assert.Equal(t, 1, gotLines)

	state := e.GetGameState()
	assert.Equal(t, 10, state.Score)
	assert.Equal(t, 1, state.Lines)
	assert.Equal(t, 1, state.Pieces)
	assert.Equal(t, types.PhasePlaying, state.Phase)
	require.NotNil(t, state.Piece, "a new piece spawns after the lock")

	for x := 0; x < 10; x++ {
		want := 0
		if x == 5 {
			want = piece.I.Color()
		}
		assert.Equal(t, want, state.Board[19][x], "row 19 col %d", x)
	}
	assert.Equal(t, 3, state.Board.Count())
}

func TestLockDoubleClear(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	loadBoard(t, e, wellWith(
		"1111.11111",
		"3333.33333",
	))
	place(t, e, piece.I, 1, types.Pos{X: 2, Y: 15})
	e.OnScore(func(score, lines int) {})

	// Falls one row then locks with its bottom two cells in the gaps.
	e.Drop()
	require.Equal(t, 16, e.player.pos.Y)
	e.Drop()

	state := e.GetGameState()
	assert.Equal(t, 30, state.Score)
	assert.Equal(t, 2, state.Lines)
	assert.Equal(t, 2, state.Board.Count())
}

func TestLockWithoutClearKeepsScore(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	place(t, e, piece.O, 0, types.Pos{X: 0, Y: 18})
	e.OnScore(func(score, lines int) { t.Fatal("no rows were cleared") })

	e.Drop()
	state := e.GetGameState()
	assert.Equal(t, 0, state.Score)
	assert.Equal(t, 1, state.Pieces)
	assert.Equal(t, piece.O.Color(), state.Board[19][0])
	assert.Equal(t, piece.O.Color(), state.Board[18][1])
}

func TestRotateInOpenSpace(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	place(t, e, piece.T, 0, types.Pos{X: 4, Y: 5})

	require.True(t, e.Rotate(1))
	want, _ := piece.New(piece.T)
	assert.Equal(t, piece.Rotate(want, 1), e.player.shape)
	assert.Equal(t, types.Pos{X: 4, Y: 5}, e.player.pos)

	require.True(t, e.Dispatch(engine.CmdRotateCCW))
	assert.Equal(t, want, e.player.shape)
}

func TestRotateKicksOffWall(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	// Vertical I with its column in x=9; turned flat it would poke through the wall.
	place(t, e, piece.I, 1, types.Pos{X: 7, Y: 5})

	require.True(t, e.Rotate(1))
	assert.Equal(t, 6, e.player.pos.X, "probed +1 then -2 from x=7")
	assert.Equal(t, 5, e.player.pos.Y)
	assert.False(t, e.board.Collides(e.player.shape, e.player.pos))
}

func TestRotateRejectedLeavesPieceUntouched(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	loadBoard(t, e, wellWith(
		"22222.2222",
		"22222.2222",
		"22222.2222",
		"22222.2222",
		"22222.2222",
		"22222.2222",
		"22222.2222",
		"22222.2222",
	))
	place(t, e, piece.I, 1, types.Pos{X: 3, Y: 12})
	shape := e.player.shape.Clone()
	before := e.GetGameState()

	var logBuf bytes.Buffer
	SetDebugLog(&logBuf)
	defer SetDebugLog(io.Discard)

	assert.False(t, e.Rotate(1))
	assert.False(t, e.Rotate(-1))

	assert.Equal(t, shape, e.player.shape)
	assert.Equal(t, before, e.GetGameState())
	assert.Contains(t, logBuf.String(), "rejected")
}

func TestRotateOIsStable(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	place(t, e, piece.O, 0, types.Pos{X: 4, Y: 0})
	require.True(t, e.Rotate(1))
	assert.Equal(t, types.Matrix{{1, 1}, {1, 1}}, e.player.shape)
	assert.Equal(t, types.Pos{X: 4, Y: 0}, e.player.pos)
}

func TestSpawnBlockedEndsGame(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	full := strings.Repeat("1", 10)
	rows := []string{full, full}
	for i := 0; i < 18; i++ {
		rows = append(rows, "..........")
	}
	loadBoard(t, e, strings.Join(rows, "\n"))

	var final *types.GameState
	e.OnGameOver(func(state *types.GameState) { final = state })

	e.spawn()

	require.NotNil(t, final, "game over must be reported")
	assert.True(t, final.Finished())
	assert.Nil(t, final.Piece)
	assert.Equal(t, 20, final.Board.Count(), "final board stays visible")
	assert.Equal(t, types.PhaseGameOver, e.Phase())

	assert.False(t, e.Move(-1))
	assert.False(t, e.Rotate(1))
	assert.False(t, e.Dispatch(engine.CmdSoftDrop))
	e.Drop()
	e.Tick(10 * time.Second)
	assert.Equal(t, types.PhaseGameOver, e.Phase(), "no auto-restart")
}

func TestLockThatEndsGame(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	rows := []string{"..........", "111...1111"}
	for i := 0; i < 18; i++ {
		rows = append(rows, "1111.11111")
	}
	loadBoard(t, e, strings.Join(rows, "\n"))
	place(t, e, piece.O, 0, types.Pos{X: 4, Y: 0})

	overs := 0
	e.OnGameOver(func(*types.GameState) { overs++ })

	// O locks in rows 0-1 without completing row 1; every spawn then overlaps it.
	e.Drop()
	assert.Equal(t, 1, overs)
	assert.Equal(t, types.PhaseGameOver, e.Phase())
	assert.Equal(t, 1, e.pieces)
}

func TestStartAfterGameOverResets(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	e.score = 120
	e.lines = 5
	rows := make([]string, 20)
	for i := range rows {
		rows[i] = "1111111111"
	}
	loadBoard(t, e, strings.Join(rows, "\n"))
	e.spawn()
	require.Equal(t, types.PhaseGameOver, e.Phase())

	e.Start()
	state := e.GetGameState()
	assert.Equal(t, types.PhasePlaying, state.Phase)
	assert.Zero(t, state.Score)
	assert.Zero(t, state.Lines)
	assert.Zero(t, state.Pieces)
	assert.Zero(t, state.Board.Count())
	assert.NotNil(t, state.Piece)
}

func TestGameStateIsACopy(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	state := e.GetGameState()
	state.Board[19][0] = 3
	state.Piece.Shape[0][0] = 9
	state.Piece.Offset.X = 99

	again := e.GetGameState()
	assert.Zero(t, again.Board[19][0])
	assert.NotEqual(t, 99, again.Piece.Offset.X)
	assert.NotEqual(t, 9, e.player.shape[0][0])
}
