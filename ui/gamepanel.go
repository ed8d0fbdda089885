package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"termtris/engine"
	"termtris/types"
)

// GameInfoPanel displays score and game information alongside the well.
type GameInfoPanel struct {
	box     *tview.TextView
	state   *types.GameState
	gameCfg engine.GameConfig
	flash   string // shown until the next lock
	pending bool   // flash arrived before the lock that caused it was seen
	pieces  int
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetGameState updates the panel with the current game.
func (p *GameInfoPanel) SetGameState(state *types.GameState, gameCfg engine.GameConfig) {
	if state != nil && state.Pieces != p.pieces {
		p.pieces = state.Pieces
		if p.pending {
			p.pending = false
		} else {
			p.flash = ""
		}
	}
	p.state = state
	p.gameCfg = gameCfg
	p.refresh()
}

// Flash shows msg under the score until another piece locks without clearing.
func (p *GameInfoPanel) Flash(msg string) {
	p.flash = msg
	p.pending = true
	p.refresh()
}

// Text returns the panel contents without colour tags.
func (p *GameInfoPanel) Text() string {
	return p.box.GetText(true)
}

func (p *GameInfoPanel) refresh() {
	if p.state == nil {
		p.box.SetText("")
		return
	}

	var text string

	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"

	text += fmt.Sprintf("[white]Score:[-:-:-]  %d\n", p.state.Score)
	text += fmt.Sprintf("[white]Lines:[-:-:-]  %d\n", p.state.Lines)
	text += fmt.Sprintf("[white]Pieces:[-:-:-] %d\n", p.state.Pieces)
	if p.flash != "" {
		text += fmt.Sprintf("[yellow]%s[-]\n", p.flash)
	}

	text += "\n[white::b]Well[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[white]Size:[-:-:-]   %dx%d\n", p.state.Width(), p.state.Height())
	if p.gameCfg.DropInterval > 0 {
		text += fmt.Sprintf("[white]Speed:[-:-:-]  %s\n", p.gameCfg.DropInterval)
	}
	if p.gameCfg.Seed != 0 {
		text += fmt.Sprintf("[white]Seed:[-:-:-]   %d\n", p.gameCfg.Seed)
	}

	switch p.state.Phase {
	case types.PhasePlaying:
		if p.state.Piece != nil {
			text += fmt.Sprintf("\n[dimgray]falling[-] %s\n", p.state.Piece.Type)
		}
	case types.PhaseGameOver:
		text += "\n[red::b]GAME OVER[-:-:-]\n"
	default:
		text += "\n[dimgray]press s to start[-]\n"
	}

	p.box.SetText(text)
}

// CreateGameLayout creates the main game layout with well and side panel.
func CreateGameLayout(well *WellUI, hint *tview.TextView) *tview.Flex {
	mainFlex := tview.NewFlex()
	RebuildNormalLayout(mainFlex, well, hint)
	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form *tview.Flex, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)        // Left spacer
	centered.AddItem(form, maxWidth, 0, true) // Form with max width
	centered.AddItem(nil, 0, 1, false)        // Right spacer

	return centered
}

// RebuildNormalLayout restores the normal game layout with well, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, well *WellUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel()
	well.infoPanel = infoPanel
	if well.State != nil {
		infoPanel.SetGameState(well.State, well.gameCfg)
	}

	wellWidth, _ := wellSize(well)
	wellRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	wellRow.AddItem(nil, 2, 0, false)
	wellRow.AddItem(well.Box, wellWidth, 0, true)
	wellRow.AddItem(nil, 2, 0, false)
	wellRow.AddItem(infoPanel.Box(), 0, 1, false)

	// Main vertical flex: well area on top, compact status bar at bottom
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(wellRow, 0, 1, true)
	gameFrame.AddItem(hint, 4, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered well.
func BuildFocusLayout(gameFrame *tview.Flex, well *WellUI) {
	gameFrame.Clear()

	wellWidth, wellHeight := wellSize(well)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false) // top spacer

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(well.Box, wellWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, wellHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false) // bottom spacer
}

// wellSize returns the screen size of the well including its border.
func wellSize(well *WellUI) (int, int) {
	w, h := 10, 20
	if well.State != nil && well.State.Width() > 0 {
		w, h = well.State.Width(), well.State.Height()
	}
	return w*2 + 2, h + 1
}
