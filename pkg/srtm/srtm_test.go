package srtm

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/Stunkymonkey/pbfextractor/pkg"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// writeTile creates a sparse N47E008 tile and pokes the given raw
// samples into it. keys are (row, col) with row in [1, 3601].
func writeTile(t *testing.T, dir string, samples map[[2]int64]int16) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, "N47E008.hgt"))
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.Truncate(pkg.SRTM_TILE_SIZE*pkg.SRTM_TILE_SIZE*pkg.SRTM_SAMPLE_SIZE))
	for rc, val := range samples {
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], uint16(val))
		offset := ((rc[0]-1)*pkg.SRTM_TILE_SIZE + rc[1]) * pkg.SRTM_SAMPLE_SIZE
		_, err := f.WriteAt(buf[:], offset)
		require.NoError(t, err)
	}
}

func newTestSampler(t *testing.T, dir string) *Sampler {
	t.Helper()
	s, err := NewSampler(dir, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestElevationExactSamples(t *testing.T) {
	dir := t.TempDir()
	// lat fractions 0, 0.25, 0.5, 0.75 land exactly on grid rows
	// 3601, 2701, 1801, 901; lon fractions on cols 0, 900, 1800, 2700.
	writeTile(t, dir, map[[2]int64]int16{
		{3601, 0}:    101,
		{2701, 900}:  202,
		{1801, 1800}: -303,
		{901, 2700}:  404,
	})
	s := newTestSampler(t, dir)

	testCases := []struct {
		name     string
		lat, lon float64
		want     float64
	}{
		{"south west corner", 47.0, 8.0, 101},
		{"quarter degree", 47.25, 8.25, 202},
		{"tile center, negative sample", 47.5, 8.5, -303},
		{"three quarter degree", 47.75, 8.75, 404},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Elevation(tt.lat, tt.lon)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestElevationInterpolatesBetweenRows(t *testing.T) {
	dir := t.TempDir()
	writeTile(t, dir, map[[2]int64]int16{
		{1800, 900}: 100,
		{1801, 900}: 200,
	})
	s := newTestSampler(t, dir)

	// halfway between rows 1800 and 1801 at exact column 900
	lat := 47.5 + 0.5/3600.0
	got, err := s.Elevation(lat, 8.25)
	require.NoError(t, err)
	require.InDelta(t, 150.0, got, 0.05)
}

func TestElevationTruncatedTileIsFatal(t *testing.T) {
	dir := t.TempDir()
	// too short for any sample of the requested cell
	err := os.WriteFile(filepath.Join(dir, "N47E008.hgt"), make([]byte, 128), 0o644)
	require.NoError(t, err)
	s := newTestSampler(t, dir)

	_, err = s.Elevation(47.5, 8.5)
	require.Error(t, err)
	require.Contains(t, err.Error(), "N47E008.hgt")
}

func TestElevationMissingTile(t *testing.T) {
	s := newTestSampler(t, t.TempDir())

	got, err := s.Elevation(47.5, 8.5)
	require.NoError(t, err)
	require.Equal(t, 0.0, got)

	// warn-once bookkeeping must not change the answer
	got, err = s.Elevation(47.9, 8.9)
	require.NoError(t, err)
	require.Equal(t, 0.0, got)
}

func TestElevationReusesCachedTile(t *testing.T) {
	dir := t.TempDir()
	writeTile(t, dir, map[[2]int64]int16{{1801, 1800}: 42})
	s := newTestSampler(t, dir)

	for i := 0; i < 3; i++ {
		got, err := s.Elevation(47.5, 8.5)
		require.NoError(t, err)
		require.Equal(t, 42.0, got)
	}
}
