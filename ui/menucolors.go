package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette shared by the menu screens.
var MenuColors = struct {
	Border     tcell.Color
	Title      tcell.Color
	Label      tcell.Color
	Hint       tcell.Color
	Selected   tcell.Color
	ButtonBG   tcell.Color
	ButtonText tcell.Color
}{
	Border:     tcell.PaletteColor(60),  // blue-gray
	Title:      tcell.PaletteColor(255), // white
	Label:      tcell.PaletteColor(250), // light gray
	Hint:       tcell.PaletteColor(245), // dim gray
	Selected:   tcell.PaletteColor(109), // blue
	ButtonBG:   tcell.PaletteColor(60),
	ButtonText: tcell.PaletteColor(255),
}
