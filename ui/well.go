// Package ui specifies custom controls for tview to play falling-block games in the terminal.
package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termtris/config"
	"termtris/engine"
	"termtris/types"
)

// style slots
const (
	styleWell = iota
	styleWellAlt
	styleGrid
	styleBorder
	stylePiece // first of types.NumColors piece colours
)

type WellUI struct {
	Box       *tview.Box
	State     *types.GameState
	hint      *tview.TextView
	cfg       *config.Config
	keys      map[rune]engine.Command
	app       *tview.Application
	eng       engine.GameEngine
	styles    []tcell.Color
	infoPanel *GameInfoPanel
	focusMode bool
	gameCfg   engine.GameConfig
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *WellUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *WellUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *WellUI) IsFocusMode() bool {
	return g.focusMode
}

func NewWell(app *tview.Application, c *config.Config, hint *tview.TextView) *WellUI {
	well := &WellUI{
		Box:   tview.NewBox(),
		State: types.NewGameState(c.Game.Width, c.Game.Height),
		hint:  hint,
		app:   app,
	}
	well.SetConfig(c)
	well.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		if well.State == nil || well.State.Width() == 0 {
			return x, y, 1, 1
		}
		w, h := well.State.Width(), well.State.Height()
		border := tcell.StyleDefault.Foreground(well.styles[styleBorder])
		for row := 0; row < h; row++ {
			screen.SetContent(x, y+row, '│', nil, border)
			screen.SetContent(x+1+w*2, y+row, '│', nil, border)
			for col := 0; col < w; col++ {
				r, style := well.cellStyle(col, row)
				// 2 characters per cell for square appearance
				screen.SetContent(x+1+col*2, y+row, r, nil, style)
				screen.SetContent(x+2+col*2, y+row, r, nil, style)
			}
		}
		screen.SetContent(x, y+h, '└', nil, border)
		for col := 1; col <= w*2; col++ {
			screen.SetContent(x+col, y+h, '─', nil, border)
		}
		screen.SetContent(x+1+w*2, y+h, '┘', nil, border)
		return x, y, w*2 + 2, h + 1
	})
	return well
}

// cellStyle returns what to draw for board cell (col, row), with the active
// piece overlaid on the settled blocks.
func (g *WellUI) cellStyle(col, row int) (rune, tcell.Style) {
	theme := g.cfg.Theme
	bg := g.styles[styleWell]
	if theme.UseGridLines && (col+row)%2 == 1 {
		bg = g.styles[styleWellAlt]
	}
	v := g.State.Board[row][col]
	if p := g.State.PieceCell(col, row); p != 0 {
		v = p
	}
	if v <= 0 || v > types.NumColors {
		r := ' '
		if theme.UseGridLines {
			r = theme.Symbols.Empty
		}
		return r, tcell.StyleDefault.Background(bg).Foreground(g.styles[styleGrid])
	}
	color := g.styles[stylePiece+v-1]
	if theme.DrawBlockBackground {
		return ' ', tcell.StyleDefault.Background(color)
	}
	return theme.Symbols.Block, tcell.StyleDefault.Background(bg).Foreground(color)
}

// ConnectEngine connects the well to a game engine and starts a game.
func (g *WellUI) ConnectEngine(e engine.GameEngine, gameCfg engine.GameConfig) {
	g.eng = e
	g.gameCfg = gameCfg

	e.OnScore(func(score, lines int) {
		if g.infoPanel != nil {
			g.infoPanel.Flash(fmt.Sprintf("+%d lines", lines))
		}
	})

	e.OnGameOver(func(state *types.GameState) {
		g.State = state
		g.refreshHint()
		// Spawn goroutine to avoid deadlock when called from the event loop
		go func() {
			g.app.QueueUpdateDraw(func() {})
		}()
	})

	e.Start()
	g.sync()
}

// Restart begins a new game on the connected engine.
func (g *WellUI) Restart() {
	if g.eng == nil {
		return
	}
	g.eng.Start()
	g.sync()
}

// Tick advances the engine clock. Must run on the event loop.
func (g *WellUI) Tick(elapsed time.Duration) {
	if g.eng == nil || g.eng.Phase() != types.PhasePlaying {
		return
	}
	g.eng.Tick(elapsed)
	g.sync()
}

// Dispatch forwards a command to the engine.
func (g *WellUI) Dispatch(cmd engine.Command) bool {
	if g.eng == nil {
		return false
	}
	ok := g.eng.Dispatch(cmd)
	g.sync()
	return ok
}

// HandleKey runs the command bound to event, if any. It returns nil when the
// event was consumed.
func (g *WellUI) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	cmd := commandForKey(g.keys, event)
	if cmd == engine.CmdNone {
		return event
	}
	g.Dispatch(cmd)
	return nil
}

// IsFinished returns true if the game is over.
func (g *WellUI) IsFinished() bool {
	return g.State != nil && g.State.Finished()
}

func (g *WellUI) sync() {
	if g.eng == nil {
		return
	}
	g.State = g.eng.GetGameState()
	g.refreshHint()
}

func (g *WellUI) SetConfig(c *config.Config) {
	colors := c.Theme.Colors
	g.styles = []tcell.Color{
		tcell.PaletteColor(colors.WellColor),    // 0
		tcell.PaletteColor(colors.WellColorAlt), // 1
		tcell.PaletteColor(colors.GridColor),    // 2
		tcell.PaletteColor(colors.BorderColor),  // 3
	}
	for _, code := range colors.Pieces {
		g.styles = append(g.styles, tcell.PaletteColor(code))
	}
	if keys, err := c.Keys.Runes(); err == nil {
		g.keys = keys
	} else {
		g.keys, _ = config.DefaultConfig.Keys.Runes()
	}
	g.cfg = c
}

func (g *WellUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetGameState(g.State, g.gameCfg)
	}
	if g.hint == nil {
		return
	}

	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	if g.IsFinished() {
		g.hint.SetText(fmt.Sprintf("  ■ Game over · %d points\n  s · new game   q · return to menu", g.State.Score))
		return
	}
	g.hint.SetText(fmt.Sprintf("  ←→/%s%s move   ↑/%s %s rotate   ↓/%s drop\n  s restart   f focus   q quit",
		g.keyFor(engine.CmdMoveLeft), g.keyFor(engine.CmdMoveRight),
		g.keyFor(engine.CmdRotateCW), g.keyFor(engine.CmdRotateCCW),
		g.keyFor(engine.CmdSoftDrop)))
}

// keyFor returns the rune bound to cmd, or "-" if there is none.
func (g *WellUI) keyFor(cmd engine.Command) string {
	for r, c := range g.keys {
		if c == cmd {
			return string(r)
		}
	}
	return "-"
}

// commandForKey maps arrow keys and the configured runes to commands.
func commandForKey(keys map[rune]engine.Command, event *tcell.EventKey) engine.Command {
	switch event.Key() {
	case tcell.KeyLeft:
		return engine.CmdMoveLeft
	case tcell.KeyRight:
		return engine.CmdMoveRight
	case tcell.KeyDown:
		return engine.CmdSoftDrop
	case tcell.KeyUp:
		return engine.CmdRotateCW
	case tcell.KeyRune:
		if cmd, ok := keys[event.Rune()]; ok {
			return cmd
		}
	}
	return engine.CmdNone
}
