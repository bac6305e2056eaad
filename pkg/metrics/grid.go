package metrics

// Grid is the spatial binning context shared by the positional
// metrics. It is constructed fully before any processing starts and
// only read afterwards.
type Grid struct {
	minLat, minLon float64
	maxLat, maxLon float64
	rows, cols     int
}

func NewGrid(minLat, minLon, maxLat, maxLon float64, rows, cols int) *Grid {
	return &Grid{
		minLat: minLat,
		minLon: minLon,
		maxLat: maxLat,
		maxLon: maxLon,
		rows:   rows,
		cols:   cols,
	}
}

// Cell returns the (row, col) bin containing the coordinate, clamped
// onto the grid.
func (g *Grid) Cell(lat, lon float64) (int, int) {
	row := int(float64(g.rows) * (lat - g.minLat) / (g.maxLat - g.minLat))
	col := int(float64(g.cols) * (lon - g.minLon) / (g.maxLon - g.minLon))
	return clamp(row, 0, g.rows-1), clamp(col, 0, g.cols-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
