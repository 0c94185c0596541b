package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kuanb/gosm-network/osm"
)

const doc = `<osm>
  <node id="1" lat="0" lon="0"><tag k="highway" v="crossing"/></node>
  <node id="2" lat="0.00145545" lon="0"/>
  <node id="3" lat="0.0029109" lon="0"><tag k="highway" v="traffic_signals"/></node>
  <way id="10"><nd ref="1"/><nd ref="2"/><nd ref="3"/><tag k="highway" v="residential"/><tag k="name" v="Elm St"/></way>
</osm>`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "elm.osm")
	require.NoError(t, os.WriteFile(input, []byte(doc), 0o644))

	var out bytes.Buffer
	err := run(&options{
		configPath: filepath.Join(dir, "missing.toml"),
		input:      input,
		edges:      true,
		nearest:    "0.0028,0.0001",
	}, zap.NewNop(), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "2 junctions, 1 edges")
	assert.Contains(t, out.String(), "1\t3\t0.010000\tElm St")
	assert.Contains(t, out.String(), "nearest junction 3")
}

func TestRunMissingInput(t *testing.T) {
	err := run(&options{
		configPath: filepath.Join(t.TempDir(), "missing.toml"),
		input:      filepath.Join(t.TempDir(), "missing.osm"),
	}, zap.NewNop(), &bytes.Buffer{})
	assert.ErrorIs(t, err, osm.ErrIO)
}

func TestParseLatLon(t *testing.T) {
	pt, err := parseLatLon("51.5, -0.12")
	require.NoError(t, err)
	assert.Equal(t, 51.5, pt.Lat())
	assert.Equal(t, -0.12, pt.Lon())

	_, err = parseLatLon("51.5")
	assert.Error(t, err)
	_, err = parseLatLon("a,b")
	assert.Error(t, err)
}
