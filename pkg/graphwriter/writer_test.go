package graphwriter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Stunkymonkey/pbfextractor/pkg/datastructure"
	"github.com/Stunkymonkey/pbfextractor/pkg/metrics"
	"github.com/stretchr/testify/require"
)

func testGraph(t *testing.T) (*datastructure.Graph, *metrics.Registry) {
	t.Helper()
	grid := metrics.NewGrid(-90, -180, 90, 180, 100, 100)
	reg, err := metrics.NewRegistry(
		[]string{"distance", "height_ascent", "unsuitability"}, nil, grid, 1)
	require.NoError(t, err)

	nodes := []*datastructure.NodeRecord{
		datastructure.NewNodeRecord(100, 48.5, 9.25, 350),
		datastructure.NewNodeRecord(200, 48.51, 9.25, 360),
	}
	// tag metrics precede node metrics: unsuitability, distance, height_ascent
	edges := []datastructure.ResolvedEdge{
		datastructure.NewResolvedEdge(0, 1, 1112, 10, 2, []float64{2, 1112, 10}),
		datastructure.NewResolvedEdge(1, 0, 1112, 0, 2, []float64{2, 1112, 0}),
	}
	return datastructure.NewGraph(nodes, edges), reg
}

func TestWriteTextFormat(t *testing.T) {
	graph, reg := testGraph(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, graph, reg))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// 3 comment lines, blank separator, 3 count lines, 2 nodes, 2 edges
	require.Len(t, lines, 11)

	require.True(t, strings.HasPrefix(lines[0], "# Build by: pbfextractor"))
	require.True(t, strings.HasPrefix(lines[1], "# Build on: "))
	require.Equal(t, "# metrics: unsuitability, distance, height_ascent, ", lines[2])
	require.Equal(t, "", lines[3])

	require.Equal(t, "3", lines[4])
	require.Equal(t, "2", lines[5])
	require.Equal(t, "2", lines[6])

	require.Equal(t, "0 100 48.5 9.25 350 0", lines[7])
	require.Equal(t, "1 200 48.51 9.25 360 0", lines[8])

	require.Equal(t, "0 1 2 1112 10 -1 -1", lines[9])
	require.Equal(t, "1 0 2 1112 0 -1 -1", lines[10])
}

func TestWriteExcludesInternalMetrics(t *testing.T) {
	grid := metrics.NewGrid(-90, -180, 90, 180, 100, 100)
	reg, err := metrics.NewRegistry([]string{"time:car"}, nil, grid, 1)
	require.NoError(t, err)
	// layout: speed:car, distance (both internal), time:car
	require.Equal(t, 1, reg.ExternalMetricCount())

	nodes := []*datastructure.NodeRecord{
		datastructure.NewNodeRecord(100, 48.5, 9.25, 350),
		datastructure.NewNodeRecord(200, 48.51, 9.25, 360),
	}
	edges := []datastructure.ResolvedEdge{
		datastructure.NewResolvedEdge(0, 1, 1000, 0, 2, []float64{50, 1000, 7200}),
	}
	graph := datastructure.NewGraph(nodes, edges)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, graph, reg))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, "# metrics: time:car, ", lines[2])
	require.Equal(t, "1", lines[4])
	require.Equal(t, "0 1 7200 -1 -1", lines[len(lines)-1])
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write(_ []byte) (int, error) {
	return 0, w.err
}

func TestWritePropagatesWriteError(t *testing.T) {
	graph, reg := testGraph(t)

	wantErr := errors.New("disk full")
	err := Write(failingWriter{err: wantErr}, graph, reg)
	require.ErrorIs(t, err, wantErr)
}

func TestWriteFilePlain(t *testing.T) {
	graph, reg := testGraph(t)
	path := filepath.Join(t.TempDir(), "graph.txt")

	require.NoError(t, WriteFile(path, false, graph, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, graph, reg))
	// the timestamp line may differ between the two runs
	require.Equal(t, len(strings.Split(buf.String(), "\n")), len(strings.Split(string(data), "\n")))
	require.Contains(t, string(data), "0 1 2 1112 10 -1 -1")
}

func TestWriteFileCompressed(t *testing.T) {
	graph, reg := testGraph(t)
	path := filepath.Join(t.TempDir(), "graph.txt.bz2")

	require.NoError(t, WriteFile(path, true, graph, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("BZh")))
}
