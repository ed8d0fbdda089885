package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termtris/config"
	"termtris/engine"
)

// speedLevels are the gravity periods offered on the setup screen.
var speedLevels = []time.Duration{
	1000 * time.Millisecond,
	800 * time.Millisecond,
	600 * time.Millisecond,
	400 * time.Millisecond,
	250 * time.Millisecond,
	150 * time.Millisecond,
	80 * time.Millisecond,
}

// speedLevel returns the index of the slowest level that is at least as fast as d.
func speedLevel(d time.Duration) int {
	for i, level := range speedLevels {
		if d >= level {
			return i
		}
	}
	return len(speedLevels) - 1
}

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	onStart  func(engine.GameConfig)
	onCancel func()
	onColors func()

	width    int
	height   int
	interval time.Duration
	seed     int64
}

// NewGameSetup creates a new game setup form seeded with the game defaults in cfg.
func NewGameSetup(cfg *config.Config, onStart func(engine.GameConfig), onCancel func(), onColors func()) *GameSetupUI {
	defaults := cfg.GameConfig()
	setup := &GameSetupUI{
		onStart:  onStart,
		onCancel: onCancel,
		onColors: onColors,
		width:    defaults.Width,
		height:   defaults.Height,
		interval: defaults.DropInterval,
		seed:     defaults.Seed,
	}

	levels := make([]string, len(speedLevels))
	for i, d := range speedLevels {
		levels[i] = fmt.Sprintf("%d (%s)", i+1, d)
	}

	form := tview.NewForm()

	form.AddInputField("Well Width", strconv.Itoa(setup.width), 4, tview.InputFieldInteger, func(text string) {
		if val, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			setup.width = val
		}
	})

	form.AddInputField("Well Height", strconv.Itoa(setup.height), 4, tview.InputFieldInteger, func(text string) {
		if val, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			setup.height = val
		}
	})

	form.AddDropDown("Speed", levels, speedLevel(setup.interval), func(option string, index int) {
		if index >= 0 && index < len(speedLevels) {
			setup.interval = speedLevels[index]
		}
	})

	form.AddInputField("Seed (0 = random)", strconv.FormatInt(setup.seed, 10), 12, tview.InputFieldInteger, func(text string) {
		if val, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64); err == nil {
			setup.seed = val
		}
	})

	form.AddButton("Start Game", func() {
		onStart(setup.GameConfig())
	})

	form.AddButton("Colors", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetBorderColor(MenuColors.Border)
	form.SetTitle(" New Game ")
	form.SetTitleColor(MenuColors.Title)
	form.SetTitleAlign(tview.AlignCenter)
	form.SetLabelColor(MenuColors.Label)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// GameConfig returns the configuration currently entered in the form.
// Sizes are clamped to what the config file accepts.
func (s *GameSetupUI) GameConfig() engine.GameConfig {
	return engine.GameConfig{
		Width:        clamp(s.width, 4, 40),
		Height:       clamp(s.height, 4, 60),
		DropInterval: s.interval,
		Seed:         s.seed,
	}
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
