package metrics

import (
	"github.com/Stunkymonkey/pbfextractor/pkg/datastructure"
)

// Metric is a named computation unit. The name is the only
// cross-reference mechanism between metrics.
type Metric interface {
	Name() string
}

// TagMetric computes one scalar from an object's tags. Evaluated once
// per way and copied to every edge candidate emitted from it.
type TagMetric interface {
	Metric
	Calc(tags datastructure.Tags) (float64, error)
}

// NodeMetric computes one scalar from a pair of resolved node records.
type NodeMetric interface {
	Metric
	Calc(source, target *datastructure.NodeRecord) (float64, error)
}

// CostMetric computes one scalar from the partially-computed cost
// vector, looking up its prerequisites by name. Prerequisites always
// carry lower indices, so a single evaluation pass suffices.
type CostMetric interface {
	Metric
	Dependencies() []string
	Calc(costs []float64, indexOf map[string]int) (float64, error)
}
