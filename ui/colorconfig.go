package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termtris/config"
)

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	// Current selection
	selectedWellColor int
	selectedGridColor int
	editingGrid       bool // true = editing grid color, false = editing well color
}

type namedColor struct {
	code int
	name string
}

// Dark backgrounds that keep the piece colours readable
var wellColors = []namedColor{
	{16, "True Black"},
	{232, "Black"},
	{233, "Coal"},
	{234, "Charcoal"},
	{235, "Graphite"},
	{236, "Dark Gray"},
	{237, "Slate"},
	{17, "Navy Blue"},
	{18, "Deep Blue"},
	{22, "Dark Green"},
	{23, "Teal"},
	{52, "Dark Maroon"},
	{53, "Plum"},
	{54, "Purple"},
	{58, "Olive"},
}

var gridColors = []namedColor{
	{236, "Dark Gray"},
	{238, "Gray"},
	{240, "Medium Gray"},
	{244, "Light Gray"},
	{60, "Blue Gray"},
	{24, "Dark Cyan"},
	{94, "Saddle Brown"},
	{88, "Dark Red"},
	{16, "True Black"},
}

// previewPieces is a small settled stack shown in the preview well.
var previewPieces = [][]int{
	{0, 0, 0, 0, 0, 0},
	{0, 0, 1, 0, 0, 0},
	{0, 1, 1, 1, 0, 0},
	{0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 7, 0},
	{3, 0, 0, 4, 7, 0},
	{3, 5, 5, 4, 7, 6},
	{3, 3, 5, 5, 7, 6},
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:               cfg,
		onDone:            onDone,
		selectedWellColor: cfg.Theme.Colors.WellColor,
		selectedGridColor: cfg.Theme.Colors.GridColor,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.SetBorderColor(MenuColors.Border)
	cc.colorList.SetSelectedBackgroundColor(MenuColors.Selected)
	cc.colorList.ShowSecondaryText(false)

	cc.populateColorList()

	// Handle selection change (preview)
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cc.selectIndex(index)
	})

	// Handle selection confirm (apply)
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cc.selectIndex(index)
		if cc.editingGrid {
			cc.cfg.Theme.Colors.GridColor = cc.selectedGridColor
			cc.cfg.Save()
			// Switch back to well color selection
			cc.editingGrid = false
			cc.populateColorList()
			return
		}
		cc.cfg.Theme.Colors.WellColor = cc.selectedWellColor
		cc.cfg.Theme.Colors.WellColorAlt = cc.selectedWellColor
		cc.cfg.Save()
		onDone()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetBorderColor(MenuColors.Border)
	cc.preview.SetTitle(" Well Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	// Layout: list on left, preview on right
	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

// selectIndex records the highlighted list entry as the pending colour.
func (cc *ColorConfigUI) selectIndex(index int) {
	if cc.editingGrid {
		if index >= 0 && index < len(gridColors) {
			cc.selectedGridColor = gridColors[index].code
		}
		return
	}
	if index >= 0 && index < len(wellColors) {
		cc.selectedWellColor = wellColors[index].code
	}
}

// populateColorList fills the list with appropriate colors based on editing mode.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	colors, current := wellColors, cc.selectedWellColor
	cc.colorList.SetTitle(" Select Well Color (Tab: switch to grid) ")
	if cc.editingGrid {
		colors, current = gridColors, cc.selectedGridColor
		cc.colorList.SetTitle(" Select Grid Color (Tab: switch to well) ")
	}
	for i, c := range colors {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range colors {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	wellStyle := tcell.StyleDefault.Background(tcell.PaletteColor(cc.selectedWellColor)).
		Foreground(tcell.PaletteColor(cc.selectedGridColor))
	border := tcell.StyleDefault.Foreground(tcell.PaletteColor(cc.cfg.Theme.Colors.BorderColor))

	rows, cols := len(previewPieces), len(previewPieces[0])
	startX := x + 2
	startY := y + 1

	if width < cols*2+6 || height < rows+4 {
		return x, y, width, height
	}

	for row := 0; row < rows; row++ {
		screen.SetContent(startX, startY+row, '│', nil, border)
		screen.SetContent(startX+1+cols*2, startY+row, '│', nil, border)
		for col := 0; col < cols; col++ {
			r, style := cc.cfg.Theme.Symbols.Empty, wellStyle
			if v := previewPieces[row][col]; v > 0 {
				r = ' '
				style = tcell.StyleDefault.Background(tcell.PaletteColor(cc.cfg.Theme.Colors.Pieces[v-1]))
			}
			screen.SetContent(startX+1+col*2, startY+row, r, nil, style)
			screen.SetContent(startX+2+col*2, startY+row, r, nil, style)
		}
	}
	screen.SetContent(startX, startY+rows, '└', nil, border)
	for col := 1; col <= cols*2; col++ {
		screen.SetContent(startX+col, startY+rows, '─', nil, border)
	}
	screen.SetContent(startX+1+cols*2, startY+rows, '┘', nil, border)

	info := fmt.Sprintf("Well: %d  Grid: %d", cc.selectedWellColor, cc.selectedGridColor)
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+rows+2, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between well color and grid color editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingGrid = !cc.editingGrid
	cc.populateColorList()
}
