package metrics

import (
	"github.com/Stunkymonkey/pbfextractor/pkg/datastructure"
	"github.com/Stunkymonkey/pbfextractor/pkg/geo"
	"golang.org/x/exp/rand"
)

// Distance. great-circle distance between the edge endpoints in meter.
type Distance struct{}

func (Distance) Name() string {
	return "distance"
}

func (Distance) Calc(source, target *datastructure.NodeRecord) (float64, error) {
	return geo.CalculateHaversineDistance(source.GetLat(), source.GetLon(),
		target.GetLat(), target.GetLon()), nil
}

// HeightAscent. positive elevation difference along the edge, meter.
type HeightAscent struct{}

func (HeightAscent) Name() string {
	return "height_ascent"
}

func (HeightAscent) Calc(source, target *datastructure.NodeRecord) (float64, error) {
	heightDiff := target.GetHeight() - source.GetHeight()
	if heightDiff > 0 {
		return heightDiff, nil
	}
	return 0, nil
}

// GridX reports the spatial bin column of the edge target.
type GridX struct {
	grid *Grid
}

func NewGridX(grid *Grid) *GridX {
	return &GridX{grid: grid}
}

func (*GridX) Name() string {
	return "grid_x"
}

func (m *GridX) Calc(_, target *datastructure.NodeRecord) (float64, error) {
	_, col := m.grid.Cell(target.GetLat(), target.GetLon())
	return float64(col), nil
}

// GridY reports the spatial bin row of the edge target.
type GridY struct {
	grid *Grid
}

func NewGridY(grid *Grid) *GridY {
	return &GridY{grid: grid}
}

func (*GridY) Name() string {
	return "grid_y"
}

func (m *GridY) Calc(_, target *datastructure.NodeRecord) (float64, error) {
	row, _ := m.grid.Cell(target.GetLat(), target.GetLon())
	return float64(row), nil
}

// ChessBoard colors the spatial bins like a chessboard: 0 or 1 by
// parity of the target's bin.
type ChessBoard struct {
	grid *Grid
}

func NewChessBoard(grid *Grid) *ChessBoard {
	return &ChessBoard{grid: grid}
}

func (*ChessBoard) Name() string {
	return "chessboard"
}

func (m *ChessBoard) Calc(_, target *datastructure.NodeRecord) (float64, error) {
	row, col := m.grid.Cell(target.GetLat(), target.GetLon())
	return float64((row + col) % 2), nil
}

// RandomWeights draws a uniform weight in [0,1) per edge from a
// seeded source.
type RandomWeights struct {
	rng *rand.Rand
}

func NewRandomWeights(rng *rand.Rand) *RandomWeights {
	return &RandomWeights{rng: rng}
}

func (*RandomWeights) Name() string {
	return "random"
}

func (m *RandomWeights) Calc(_, _ *datastructure.NodeRecord) (float64, error) {
	return m.rng.Float64(), nil
}
