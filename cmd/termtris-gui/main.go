// termtris-gui plays termtris in a desktop window.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"termtris/config"
	"termtris/engine"
	"termtris/engine/local"
	"termtris/types"
)

const (
	cellSize  = 24
	marginX   = 16
	marginTop = 40
	panelW    = 160
	tps       = 60
)

var (
	flagSeed  = flag.Int64("seed", 0, "Piece sequence seed (0 for random)")
	flagDebug = flag.Bool("debug", false, "Write the engine debug log to stderr")
)

// keyCommands maps keys to engine commands. Arrow keys follow the terminal
// front-end; Z/X rotate in either direction.
var keyCommands = []struct {
	key ebiten.Key
	cmd engine.Command
}{
	{ebiten.KeyArrowLeft, engine.CmdMoveLeft},
	{ebiten.KeyArrowRight, engine.CmdMoveRight},
	{ebiten.KeyArrowDown, engine.CmdSoftDrop},
	{ebiten.KeyArrowUp, engine.CmdRotateCW},
	{ebiten.KeyX, engine.CmdRotateCW},
	{ebiten.KeyZ, engine.CmdRotateCCW},
}

type Game struct {
	eng    *local.LocalEngine
	state  *types.GameState
	well   color.Color
	grid   color.Color
	pieces [types.NumColors]color.Color
}

func paletteRGBA(code int) color.Color {
	r, g, b := tcell.PaletteColor(code).RGB()
	return color.RGBA{uint8(r), uint8(g), uint8(b), 0xff}
}

func NewGame(cfg *config.Config, gameCfg engine.GameConfig) (*Game, error) {
	eng, err := local.NewLocalEngine(gameCfg)
	if err != nil {
		return nil, err
	}
	g := &Game{
		eng:  eng,
		well: paletteRGBA(cfg.Theme.Colors.WellColor),
		grid: paletteRGBA(cfg.Theme.Colors.GridColor),
	}
	for i, code := range cfg.Theme.Colors.Pieces {
		g.pieces[i] = paletteRGBA(code)
	}
	eng.Start()
	g.state = eng.GetGameState()
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) || (g.state.Finished() && inpututil.IsKeyJustPressed(ebiten.KeyEnter)) {
		g.eng.Start()
	}
	for _, kc := range keyCommands {
		if inpututil.IsKeyJustPressed(kc.key) {
			g.eng.Dispatch(kc.cmd)
		}
	}
	g.eng.Tick(time.Second / tps)
	g.state = g.eng.GetGameState()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	s := g.state
	w, h := s.Width(), s.Height()
	vector.DrawFilledRect(screen, marginX-2, marginTop-2, float32(w*cellSize+4), float32(h*cellSize+4), g.grid, false)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := s.Board[y][x]
			if p := s.PieceCell(x, y); p != 0 {
				v = p
			}
			c := g.well
			if v > 0 && v <= types.NumColors {
				c = g.pieces[v-1]
			}
			px := float32(marginX + x*cellSize)
			py := float32(marginTop + y*cellSize)
			vector.DrawFilledRect(screen, px+1, py+1, cellSize-2, cellSize-2, c, false)
		}
	}

	info := fmt.Sprintf("SCORE %d\nLINES %d\nPIECES %d", s.Score, s.Lines, s.Pieces)
	ebitenutil.DebugPrintAt(screen, info, marginX*2+w*cellSize, marginTop)
	ebitenutil.DebugPrintAt(screen, "ARROWS move/rotate  Z/X rotate  R restart", marginX, 12)
	if s.Finished() {
		ebitenutil.DebugPrintAt(screen, "GAME OVER\nENTER to play again", marginX*2+w*cellSize, marginTop+64)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return marginX*3 + g.state.Width()*cellSize + panelW, marginTop + g.state.Height()*cellSize + marginX
}

func main() {
	flag.Parse()

	cfg, err := config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *flagDebug {
		local.SetDebugLog(os.Stderr)
	}

	gameCfg := cfg.GameConfig()
	if *flagSeed != 0 {
		gameCfg.Seed = *flagSeed
	}
	game, err := NewGame(cfg, gameCfg)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetTPS(tps)
	ebiten.SetWindowTitle("termtris")
	ebiten.SetWindowSize(game.Layout(0, 0))
	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
