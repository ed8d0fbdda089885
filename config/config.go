package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/adrg/xdg"

	"termtris/engine"
	"termtris/types"
)

var (
	cfgFile = "termtris/config.json"
	logFile = "termtris/debug.log"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	WellColor    int `json:"well"`
	WellColorAlt int `json:"well_alt"`
	GridColor    int `json:"grid"`
	BorderColor  int `json:"border"`
	// Pieces holds one palette code per colour id 1..7 (T J L O S Z I).
	Pieces [types.NumColors]int `json:"pieces"`
}

type ConfigSymbols struct {
	Block rune `json:"block"`
	Empty rune `json:"empty"`
}

type Theme struct {
	DrawBlockBackground bool          `json:"draw_block_bg"`
	UseGridLines        bool          `json:"use_grid_lines"`
	Colors              ConfigColors  `json:"colors"`
	Symbols             ConfigSymbols `json:"symbols"`
}

// GameSettings holds the defaults for a new game.
type GameSettings struct {
	Width          int   `json:"width"`
	Height         int   `json:"height"`
	DropIntervalMs int   `json:"drop_interval_ms"`
	Seed           int64 `json:"seed"`
}

// KeyBindings maps each command name (see engine.ParseCommand) to the rune
// that triggers it. Arrow keys are always bound as well.
type KeyBindings map[string]string

type Config struct {
	Theme    Theme        `json:"theme"`
	Game     GameSettings `json:"game"`
	Keys     KeyBindings  `json:"keys"`
	DebugLog bool         `json:"debug_log"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig.clone()
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.Block, c.Theme.Symbols.Empty} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	g := c.Game
	if g.Width < 4 || g.Width > 40 || g.Height < 4 || g.Height > 60 {
		return &InvalidConfig{fmt.Sprintf("well size %dx%d outside 4x4 to 40x60", g.Width, g.Height)}
	}
	if g.DropIntervalMs <= 0 {
		return &InvalidConfig{fmt.Sprintf("drop_interval_ms must be positive, got %d", g.DropIntervalMs)}
	}
	if _, err := c.Keys.Runes(); err != nil {
		return err
	}
	return nil
}

// GameConfig converts the game section into an engine configuration.
func (c *Config) GameConfig() engine.GameConfig {
	return engine.GameConfig{
		Width:        c.Game.Width,
		Height:       c.Game.Height,
		DropInterval: time.Duration(c.Game.DropIntervalMs) * time.Millisecond,
		Seed:         c.Game.Seed,
	}
}

// Runes resolves the bindings into a rune lookup table.
func (k KeyBindings) Runes() (map[rune]engine.Command, error) {
	out := make(map[rune]engine.Command, len(k))
	for name, key := range k {
		cmd, err := engine.ParseCommand(name)
		if err != nil {
			return nil, &InvalidConfig{err.Error()}
		}
		r := []rune(key)
		if len(r) != 1 {
			return nil, &InvalidConfig{fmt.Sprintf("key for %s must be a single character, got %q", name, key)}
		}
		if prev, ok := out[r[0]]; ok {
			return nil, &InvalidConfig{fmt.Sprintf("key %q bound to both %s and %s", key, prev, cmd)}
		}
		out[r[0]] = cmd
	}
	return out, nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

// DebugLogPath returns the file the engine debug log is written to,
// creating its directory if needed.
func DebugLogPath() (string, error) {
	return xdg.StateFile(logFile)
}

func (c Config) clone() Config {
	keys := make(KeyBindings, len(c.Keys))
	for k, v := range c.Keys {
		keys[k] = v
	}
	c.Keys = keys
	return c
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	configReader, err := os.ReadFile(filePath)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(configReader, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
