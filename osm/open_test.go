package osm

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.osm")
	require.NoError(t, os.WriteFile(path, []byte(sampleXML), 0o644))

	store, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, store.NumPoints())

	b := store.Bound()
	assert.InDelta(t, 51.5, b.Min.Lat(), 1e-9)
	assert.InDelta(t, 51.502, b.Max.Lat(), 1e-9)
}

func TestOpenPBF(t *testing.T) {
	store, err := Open(filepath.Join("testdata", "elm.osm.pbf"), nil)
	require.NoError(t, err)

	require.Equal(t, 3, store.NumPoints())
	require.Equal(t, 1, store.NumPaths())

	points := store.Points()
	assert.Equal(t, NodeID(1), points[0].ID)
	assert.Equal(t, NodeID(2), points[1].ID)
	assert.Equal(t, NodeID(3), points[2].ID)

	assert.InDelta(t, 51.5, points[0].Lat(), 1e-7)
	assert.InDelta(t, -0.12, points[0].Lon(), 1e-7)
	assert.InDelta(t, 51.502, points[2].Lat(), 1e-7)
	assert.Equal(t, Tags{"highway": "crossing"}, points[0].Tags)
	assert.Empty(t, points[1].Tags)
	assert.Equal(t, Tags{"highway": "traffic_signals"}, points[2].Tags)

	way, ok := store.Path(10)
	require.True(t, ok)
	assert.Equal(t, []NodeID{1, 2, 3}, way.Points)
	assert.Equal(t, Tags{"highway": "residential", "name": "Elm St"}, way.Tags)
}

func TestLoadPBFRejectsOutOfRangeLatitude(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "bad_lat.osm.pbf"))
	require.NoError(t, err)
	defer f.Close()

	store, err := LoadPBF(f, nil)
	assert.Nil(t, store)
	assert.ErrorIs(t, err, ErrAttribute)

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "lat", perr.Attr)
}

func TestOpenMissingFile(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "nope.osm"), nil)
	assert.Nil(t, store)
	assert.ErrorIs(t, err, ErrIO)
}

func TestLoadPBFRejectsGarbage(t *testing.T) {
	store, err := LoadPBF(bytes.NewReader([]byte("this is not a pbf file at all")), nil)
	assert.Nil(t, store)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestLoadPBFReadFailure(t *testing.T) {
	store, err := LoadPBF(iotest.ErrReader(errors.New("broken pipe")), nil)
	assert.Nil(t, store)
	assert.ErrorIs(t, err, ErrIO)
}

func TestEmptyStoreBound(t *testing.T) {
	s := newStore()
	assert.True(t, s.Bound().IsZero())
	assert.Empty(t, s.Points())
	assert.Empty(t, s.Paths())
}
