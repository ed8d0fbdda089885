package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termtris/engine"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig.clone()
	require.NoError(t, cfg.Validate())

	gc := cfg.GameConfig()
	assert.Equal(t, 10, gc.Width)
	assert.Equal(t, 20, gc.Height)
	assert.Equal(t, time.Second, gc.DropInterval)
	assert.Zero(t, gc.Seed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"control symbol", func(c *Config) { c.Theme.Symbols.Block = '\t' }},
		{"c1 symbol", func(c *Config) { c.Theme.Symbols.Empty = 0x85 }},
		{"narrow well", func(c *Config) { c.Game.Width = 3 }},
		{"tall well", func(c *Config) { c.Game.Height = 61 }},
		{"zero interval", func(c *Config) { c.Game.DropIntervalMs = 0 }},
		{"unknown command", func(c *Config) { c.Keys["hardDrop"] = "x" }},
		{"long key", func(c *Config) { c.Keys["moveLeft"] = "ab" }},
		{"duplicate key", func(c *Config) { c.Keys["moveLeft"] = "l" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig.clone()
			tt.modify(&cfg)
			err := cfg.Validate()
			var invalid *InvalidConfig
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestCloneDoesNotShareKeys(t *testing.T) {
	cfg := DefaultConfig.clone()
	cfg.Keys["moveLeft"] = "a"
	assert.Equal(t, "h", DefaultConfig.Keys["moveLeft"])
}

func TestKeyRunes(t *testing.T) {
	runes, err := DefaultConfig.Keys.Runes()
	require.NoError(t, err)
	assert.Len(t, runes, len(engine.Commands))
	assert.Equal(t, engine.CmdMoveLeft, runes['h'])
	assert.Equal(t, engine.CmdRotateCCW, runes['z'])
}

func TestSaveAndReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig.clone()
	cfg.Game.Width = 12
	cfg.Game.Seed = 7
	cfg.Theme.Colors.Pieces[3] = 11
	cfg.Keys["softDrop"] = "s"
	require.NoError(t, saveCfgFile(path, &cfg, 0600))

	loaded := DefaultConfig.clone()
	require.NoError(t, readCfgFile(path, &loaded))
	assert.Equal(t, cfg, loaded)
}

func TestReadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"game":{"width":8,"height":16,"drop_interval_ms":500}}`), 0600))

	cfg := DefaultConfig.clone()
	require.NoError(t, readCfgFile(path, &cfg))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8, cfg.Game.Width)
	assert.Equal(t, 500*time.Millisecond, cfg.GameConfig().DropInterval)
	assert.Equal(t, DefaultTheme, cfg.Theme)
}

func TestReadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"game":`), 0600))

	cfg := DefaultConfig.clone()
	err := readCfgFile(path, &cfg)
	var invalid *InvalidConfig
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "Config error")
}

func TestReadMissingFileIsIgnored(t *testing.T) {
	cfg := DefaultConfig.clone()
	assert.NoError(t, readCfgFile(filepath.Join(t.TempDir(), "nope.json"), &cfg))
}
