package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kuanb/gosm-network/osm"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, 20.0, cfg.Speeds["residential"])
	assert.Equal(t, "highway", cfg.Network.CategoryTag)
}

func TestLoadMergesSpeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[network]
junction_kinds = ["traffic_signals", "stop"]

[speeds]
residential = 25.0
unclassified = 15.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25.0, cfg.Speeds["residential"])
	assert.Equal(t, 15.0, cfg.Speeds["unclassified"])
	assert.Equal(t, 70.0, cfg.Speeds["motorway"])
	assert.Equal(t, []string{"traffic_signals", "stop"}, cfg.Network.JunctionKinds)
	assert.Equal(t, "name", cfg.Network.NameTag)
}

func TestLoadRejectsBadSpeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[speeds]\nservice = 0.0\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, osm.ErrConfiguration)
	assert.Contains(t, err.Error(), "service")
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[speeds\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	cfg.Network.JunctionKinds = nil
	assert.ErrorIs(t, cfg.Validate(), osm.ErrConfiguration)
}
