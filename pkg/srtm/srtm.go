package srtm

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/Stunkymonkey/pbfextractor/pkg"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const tileCacheSize = 4

// Sampler maps a (lat, lon) to an elevation estimate by bilinear
// interpolation over the enclosing one-degree srtm tile.
type Sampler struct {
	srtmPath string
	tiles    *lru.Cache[string, *os.File]
	missing  map[string]struct{}
	logger   *zap.Logger
}

func NewSampler(srtmPath string, logger *zap.Logger) (*Sampler, error) {
	tiles, err := lru.NewWithEvict[string, *os.File](tileCacheSize, func(_ string, f *os.File) {
		f.Close()
	})
	if err != nil {
		return nil, err
	}
	return &Sampler{
		srtmPath: srtmPath,
		tiles:    tiles,
		missing:  make(map[string]struct{}),
		logger:   logger,
	}, nil
}

// Close releases the cached tile file handles.
func (s *Sampler) Close() {
	s.tiles.Purge()
}

// Elevation returns the interpolated elevation in meter. A missing
// tile is not fatal: it logs a warning once per tile and yields 0.0.
// Failed reads inside an open tile are propagated.
func (s *Sampler) Elevation(lat, lon float64) (float64, error) {
	// arc seconds per degree, the sample spacing of one tile row
	const samplesPerDegree = 3600.0

	north := int64(math.Trunc(lat))
	east := int64(math.Trunc(lon))
	fileName := fmt.Sprintf("N%02dE%03d.hgt", north, east)

	f, err := s.openTile(fileName)
	if err != nil {
		return 0, err
	}
	if f == nil {
		return 0, nil
	}

	latOffset := float64(pkg.SRTM_TILE_SIZE) - math.Mod(lat, 1.0)*samplesPerDegree
	lonOffset := math.Mod(lon, 1.0) * samplesPerDegree

	latOffsetFloor := int64(math.Floor(latOffset))
	latOffsetCeil := int64(math.Ceil(latOffset))
	lonOffsetFloor := int64(math.Floor(lonOffset))
	lonOffsetCeil := int64(math.Ceil(lonOffset))

	h1, err := s.readSample(f, latOffsetFloor, lonOffsetFloor, lat, lon)
	if err != nil {
		return 0, err
	}
	h2, err := s.readSample(f, latOffsetCeil, lonOffsetFloor, lat, lon)
	if err != nil {
		return 0, err
	}
	h3, err := s.readSample(f, latOffsetFloor, lonOffsetCeil, lat, lon)
	if err != nil {
		return 0, err
	}
	h4, err := s.readSample(f, latOffsetCeil, lonOffsetCeil, lat, lon)
	if err != nil {
		return 0, err
	}

	latFrac := latOffset - math.Floor(latOffset)
	lonFrac := lonOffset - math.Floor(lonOffset)

	h1Weight := (1.0 - latFrac) * (1.0 - lonFrac)
	h2Weight := latFrac * (1.0 - lonFrac)
	h3Weight := (1.0 - latFrac) * lonFrac
	h4Weight := latFrac * lonFrac

	return h1*h1Weight + h2*h2Weight + h3*h3Weight + h4*h4Weight, nil
}

func (s *Sampler) openTile(fileName string) (*os.File, error) {
	if f, ok := s.tiles.Get(fileName); ok {
		return f, nil
	}
	if _, ok := s.missing[fileName]; ok {
		return nil, nil
	}

	f, err := os.Open(filepath.Join(s.srtmPath, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			s.missing[fileName] = struct{}{}
			s.logger.Warn("could not find srtm tile, defaulting elevation to 0",
				zap.String("tile", fileName))
			return nil, nil
		}
		return nil, err
	}
	s.tiles.Add(fileName, f)
	return f, nil
}

func (s *Sampler) readSample(f *os.File, latOffset, lonOffset int64, lat, lon float64) (float64, error) {
	// interpolation neighbors of points on the tile border fall off
	// the grid, clamp them back onto it.
	if latOffset < 1 {
		latOffset = 1
	}
	if latOffset > pkg.SRTM_TILE_SIZE {
		latOffset = pkg.SRTM_TILE_SIZE
	}
	if lonOffset < 0 {
		lonOffset = 0
	}
	if lonOffset > pkg.SRTM_TILE_SIZE-1 {
		lonOffset = pkg.SRTM_TILE_SIZE - 1
	}

	offset := ((latOffset-1)*pkg.SRTM_TILE_SIZE + lonOffset) * pkg.SRTM_SAMPLE_SIZE
	var buf [pkg.SRTM_SAMPLE_SIZE]byte
	if _, err := f.ReadAt(buf[:], offset); err != nil {
		return 0, fmt.Errorf("reading srtm tile %s failed at %f, %f: %w", f.Name(), lat, lon, err)
	}
	return float64(int16(binary.BigEndian.Uint16(buf[:]))), nil
}
