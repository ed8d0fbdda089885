// termtris is a falling-block puzzle game for the terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termtris/config"
	"termtris/engine"
	"termtris/engine/local"
	"termtris/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// frameRate is how often the ticker feeds elapsed time to the engine.
const frameRate = 60

// Command-line flags
var (
	flagWidth      = flag.Int("width", 0, "Well width in columns (4-40)")
	flagHeight     = flag.Int("height", 0, "Well height in rows (4-60)")
	flagInterval   = flag.Duration("interval", 0, "Time between gravity steps, e.g. 500ms")
	flagSeed       = flag.Int64("seed", 0, "Piece sequence seed (0 for random)")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (well only)")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameWell *ui.WellUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("termtris %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cfg.DebugLog {
		path, err := config.DebugLogPath()
		if err == nil {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
			if err == nil {
				defer f.Close()
				local.SetDebugLog(f)
			}
		}
	}

	quickStart := *flagQuickStart || *flagWidth > 0 || *flagHeight > 0 || *flagInterval > 0 || *flagSeed != 0 || *flagFocus

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ▦ termtris ")

	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameWell = ui.NewWell(app, cfg, gameHint)

	gameFrame = ui.CreateGameLayout(gameWell, gameHint)

	gameWell.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune {
			switch event.Rune() {
			case 'q':
				rootPage.SwitchToPage("setup")
				return nil
			case 's':
				gameWell.Restart()
				return nil
			case 'f':
				if gameWell.ToggleFocusMode() {
					ui.BuildFocusLayout(gameFrame, gameWell)
				} else {
					ui.RebuildNormalLayout(gameFrame, gameWell, gameHint)
				}
				return nil
			}
		}
		return gameWell.HandleKey(event)
	})

	setupUI := ui.NewGameSetup(cfg,
		func(gameCfg engine.GameConfig) {
			startGame(gameCfg)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	colorConfig := ui.NewColorConfig(cfg, func() {
		gameWell.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 60), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if quickStart {
		startGame(buildGameConfigFromFlags())
		if *flagFocus {
			gameWell.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameWell)
		}
	}

	stop := make(chan struct{})
	go runTicker(stop)
	defer close(stop)

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		panic(err)
	}
}

// runTicker posts the elapsed time to the engine on the event loop until
// stop is closed. Ticks are only delivered while the game view is shown.
func runTicker(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			app.QueueUpdateDraw(func() {
				if name, _ := rootPage.GetFrontPage(); name == "gameview" {
					gameWell.Tick(elapsed)
				}
			})
		}
	}
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	eng, err := local.NewLocalEngine(gameCfg)
	if err != nil {
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.RemovePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}
	gameWell.ConnectEngine(eng, gameCfg)
	if gameWell.IsFocusMode() {
		ui.BuildFocusLayout(gameFrame, gameWell)
	} else {
		ui.RebuildNormalLayout(gameFrame, gameWell, gameHint)
	}
	rootPage.SwitchToPage("gameview")
}

// buildGameConfigFromFlags creates a GameConfig from command-line flags.
func buildGameConfigFromFlags() engine.GameConfig {
	gameCfg := cfg.GameConfig()

	if *flagWidth > 0 {
		gameCfg.Width = *flagWidth
	}
	if *flagHeight > 0 {
		gameCfg.Height = *flagHeight
	}
	if *flagInterval > 0 {
		gameCfg.DropInterval = *flagInterval
	}
	if *flagSeed != 0 {
		gameCfg.Seed = *flagSeed
	}

	return gameCfg
}
