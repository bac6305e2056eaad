package extractor

import (
	"testing"

	"github.com/Stunkymonkey/pbfextractor/pkg/datastructure"
	"github.com/Stunkymonkey/pbfextractor/pkg/metrics"
	"github.com/Stunkymonkey/pbfextractor/pkg/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// flatland returns fixed heights keyed by latitude.
type stubElevation struct {
	byLat map[float64]float64
}

func (s stubElevation) Elevation(lat, _ float64) (float64, error) {
	return s.byLat[lat], nil
}

func testRegistry(t *testing.T, names ...string) *metrics.Registry {
	t.Helper()
	grid := metrics.NewGrid(-90, -180, 90, 180, 100, 100)
	reg, err := metrics.NewRegistry(names, nil, grid, 1)
	require.NoError(t, err)
	return reg
}

func newTestExtractor(t *testing.T, elevation ElevationSource, names ...string) *Extractor {
	t.Helper()
	if len(names) == 0 {
		names = []string{"distance", "height_ascent", "unsuitability"}
	}
	return New(testRegistry(t, names...), BicycleEdgeFilter{}, elevation, zap.NewNop())
}

func findEdge(t *testing.T, edges []datastructure.ResolvedEdge, source, dest datastructure.Index) datastructure.ResolvedEdge {
	t.Helper()
	for _, e := range edges {
		if e.GetSource() == source && e.GetDest() == dest {
			return e
		}
	}
	t.Fatalf("edge %d -> %d not found", source, dest)
	return datastructure.ResolvedEdge{}
}

func TestExtractResidentialWay(t *testing.T) {
	elevation := stubElevation{byLat: map[float64]float64{
		0.00: 0,
		0.01: 10,
		0.02: 5,
	}}
	ext := newTestExtractor(t, elevation)

	require.NoError(t, ext.AcceptNode(100, 0.00, 0))
	require.NoError(t, ext.AcceptNode(200, 0.01, 0))
	require.NoError(t, ext.AcceptNode(300, 0.02, 0))
	ext.AcceptWay(datastructure.NewWay(1, []int64{100, 200, 300},
		datastructure.Tags{"highway": "residential"}))

	graph, err := ext.Run()
	require.NoError(t, err)

	require.Equal(t, 3, graph.NumberOfNodes())
	require.Equal(t, int64(100), graph.GetNodes()[0].GetOsmID())
	require.Equal(t, 10.0, graph.GetNodes()[1].GetHeight())

	edges := graph.GetEdges()
	require.Len(t, edges, 4)

	ab := findEdge(t, edges, 0, 1)
	ba := findEdge(t, edges, 1, 0)
	bc := findEdge(t, edges, 1, 2)
	cb := findEdge(t, edges, 2, 1)

	require.Equal(t, 10.0, ab.GetHeightAscent())
	require.Equal(t, 0.0, ba.GetHeightAscent())
	require.Equal(t, 0.0, bc.GetHeightAscent())
	require.Equal(t, 5.0, cb.GetHeightAscent())

	for _, e := range edges {
		require.Equal(t, 2.0, e.GetUnsuitability())
		// 0.01 degrees of latitude is roughly 1.11 km
		require.InEpsilon(t, 1_112.0, e.GetLength(), 0.01)
	}

	// cost vector mirrors the geometry
	reg := testRegistry(t, "distance", "height_ascent", "unsuitability")
	distIdx, _ := reg.IndexOf("distance")
	ascentIdx, _ := reg.IndexOf("height_ascent")
	require.InDelta(t, ab.GetLength(), ab.GetCosts()[distIdx], 1e-9)
	require.Equal(t, 10.0, ab.GetCosts()[ascentIdx])
}

func TestOneWayEmitsSingleDirection(t *testing.T) {
	elevation := stubElevation{byLat: map[float64]float64{}}
	ext := newTestExtractor(t, elevation)

	require.NoError(t, ext.AcceptNode(1, 0.00, 0))
	require.NoError(t, ext.AcceptNode(2, 0.01, 0))
	ext.AcceptWay(datastructure.NewWay(7, []int64{1, 2},
		datastructure.Tags{"highway": "residential", "oneway": "yes"}))

	graph, err := ext.Run()
	require.NoError(t, err)
	require.Equal(t, 1, graph.NumberOfEdges())
	require.Equal(t, datastructure.Index(0), graph.GetEdges()[0].GetSource())
	require.Equal(t, datastructure.Index(1), graph.GetEdges()[0].GetDest())
}

func TestRelationDiscountWinsDominance(t *testing.T) {
	elevation := stubElevation{byLat: map[float64]float64{}}
	ext := newTestExtractor(t, elevation)

	require.NoError(t, ext.AcceptNode(1, 0.00, 0))
	require.NoError(t, ext.AcceptNode(2, 0.01, 0))
	ext.AcceptWay(datastructure.NewWay(7, []int64{1, 2},
		datastructure.Tags{"highway": "residential"}))
	ext.AcceptRelation(datastructure.NewRelation(
		datastructure.Tags{"type": "route", "route": "bicycle"},
		[]datastructure.Member{datastructure.NewMember(datastructure.MEMBER_WAY, 7)}))

	graph, err := ext.Run()
	require.NoError(t, err)

	// the discounted duplicates dominate the plain ones
	edges := graph.GetEdges()
	require.Len(t, edges, 2)
	for _, e := range edges {
		require.Equal(t, 1.0, e.GetUnsuitability())
	}
}

func TestNonBicycleRelationIgnored(t *testing.T) {
	elevation := stubElevation{byLat: map[float64]float64{}}
	ext := newTestExtractor(t, elevation)

	require.NoError(t, ext.AcceptNode(1, 0.00, 0))
	require.NoError(t, ext.AcceptNode(2, 0.01, 0))
	ext.AcceptWay(datastructure.NewWay(7, []int64{1, 2},
		datastructure.Tags{"highway": "residential"}))
	ext.AcceptRelation(datastructure.NewRelation(
		datastructure.Tags{"type": "route", "route": "bus"},
		[]datastructure.Member{datastructure.NewMember(datastructure.MEMBER_WAY, 7)}))

	graph, err := ext.Run()
	require.NoError(t, err)
	for _, e := range graph.GetEdges() {
		require.Equal(t, 2.0, e.GetUnsuitability())
	}
}

func TestDanglingEdgeReferenceIsFatal(t *testing.T) {
	elevation := stubElevation{byLat: map[float64]float64{}}
	ext := newTestExtractor(t, elevation)

	require.NoError(t, ext.AcceptNode(1, 0.00, 0))
	ext.AcceptWay(datastructure.NewWay(7, []int64{1, 999},
		datastructure.Tags{"highway": "residential"}))

	_, err := ext.Run()
	require.ErrorIs(t, err, util.ErrDanglingEdgeReference)
}

func TestFilteredWayEmitsNothing(t *testing.T) {
	elevation := stubElevation{byLat: map[float64]float64{}}
	ext := newTestExtractor(t, elevation)

	require.NoError(t, ext.AcceptNode(1, 0.00, 0))
	require.NoError(t, ext.AcceptNode(2, 0.01, 0))
	ext.AcceptWay(datastructure.NewWay(7, []int64{1, 2},
		datastructure.Tags{"highway": "motorway"}))

	graph, err := ext.Run()
	require.NoError(t, err)
	require.Equal(t, 0, graph.NumberOfEdges())
}

func TestTravelTimeThroughPipeline(t *testing.T) {
	elevation := stubElevation{byLat: map[float64]float64{}}
	ext := newTestExtractor(t, elevation, "time:car")

	require.NoError(t, ext.AcceptNode(1, 0.00, 0))
	require.NoError(t, ext.AcceptNode(2, 0.01, 0))
	ext.AcceptWay(datastructure.NewWay(7, []int64{1, 2},
		datastructure.Tags{"highway": "residential", "oneway": "yes"}))

	graph, err := ext.Run()
	require.NoError(t, err)
	require.Equal(t, 1, graph.NumberOfEdges())

	reg := testRegistry(t, "time:car")
	timeIdx, _ := reg.IndexOf("time:car")
	e := graph.GetEdges()[0]
	require.InDelta(t, e.GetLength()*360.0/50.0, e.GetCosts()[timeIdx], 1e-9)
}
