package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawBlockBackground: true,
		UseGridLines:        true,
		Colors: ConfigColors{
			WellColor:    234,
			WellColorAlt: 235,
			GridColor:    238,
			BorderColor:  60,
			//           T    J   L    O    S   Z    I
			Pieces: [7]int{129, 33, 208, 220, 40, 160, 51},
		},
		Symbols: ConfigSymbols{
			Block: '█',
			Empty: '·',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameSettings{
			Width:          10,
			Height:         20,
			DropIntervalMs: 1000,
		},
		Keys: KeyBindings{
			"moveLeft":  "h",
			"moveRight": "l",
			"softDrop":  "j",
			"rotateCW":  "k",
			"rotateCCW": "z",
		},
	}
}
