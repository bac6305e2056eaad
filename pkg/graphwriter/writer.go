package graphwriter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/Stunkymonkey/pbfextractor/pkg/datastructure"
	"github.com/Stunkymonkey/pbfextractor/pkg/metrics"
	"github.com/dsnet/compress/bzip2"
)

// WriteFile serializes the graph to filename, optionally compressed.
func WriteFile(filename string, compress bool, graph *datastructure.Graph, registry *metrics.Registry) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if !compress {
		return Write(f, graph, registry)
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	if err := Write(bz, graph, registry); err != nil {
		return err
	}
	return bz.Close()
}

// Write emits the text graph format: a comment header listing the
// serialized metric names, the metric/node/edge counts, one line per
// node in dense-index order, one line per edge with its cost vector.
// All writes go through one buffered writer, the first write error
// sticks and surfaces at the final flush.
func Write(w io.Writer, graph *datastructure.Graph, registry *metrics.Registry) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# Build by: pbfextractor\n")
	fmt.Fprintf(bw, "# Build on: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(bw, "# metrics: ")
	for _, name := range registry.ExternalNames() {
		fmt.Fprintf(bw, "%s, ", name)
	}
	fmt.Fprintf(bw, "\n\n")

	fmt.Fprintf(bw, "%d\n", registry.ExternalMetricCount())
	fmt.Fprintf(bw, "%d\n", graph.NumberOfNodes())
	fmt.Fprintf(bw, "%d\n", graph.NumberOfEdges())

	for i, node := range graph.GetNodes() {
		latF := strconv.FormatFloat(node.GetLat(), 'f', -1, 64)
		lonF := strconv.FormatFloat(node.GetLon(), 'f', -1, 64)
		heightF := strconv.FormatFloat(node.GetHeight(), 'f', -1, 64)

		fmt.Fprintf(bw, "%d %d %s %s %s 0\n", i, node.GetOsmID(), latF, lonF, heightF)
	}

	for _, edge := range graph.GetEdges() {
		fmt.Fprintf(bw, "%d %d ", edge.GetSource(), edge.GetDest())
		for _, cost := range registry.ExternalCosts(edge.GetCosts()) {
			fmt.Fprintf(bw, "%s ", strconv.FormatFloat(cost, 'f', -1, 64))
		}
		fmt.Fprintf(bw, "-1 -1\n")
	}
	return bw.Flush()
}
