package metrics

import (
	"github.com/Stunkymonkey/pbfextractor/pkg/datastructure"
	"github.com/Stunkymonkey/pbfextractor/pkg/util"
	"golang.org/x/exp/rand"
)

// Registry holds the selected metrics and defines the cost-vector
// layout: metric name -> stable index. Tag metrics come first, then
// node metrics, then cost metrics, so every cost metric's
// prerequisites already carry lower indices.
type Registry struct {
	tagMetrics  []TagMetric
	nodeMetrics []NodeMetric
	costMetrics []CostMetric

	indexOf  map[string]int
	names    []string
	internal map[string]struct{}
}

// NewRegistry builds the registry from the configured metric names.
// Prerequisites of a selected cost metric are auto-included as
// internal-only metrics when not selected themselves. An unrecognized
// name is a configuration error.
func NewRegistry(selected, internal []string, grid *Grid, randomSeed uint64) (*Registry, error) {
	rng := rand.New(rand.NewSource(randomSeed))

	chosen := make([]string, 0, len(selected)+len(internal))
	internalSet := make(map[string]struct{}, len(internal))
	seen := make(map[string]struct{}, len(selected)+len(internal))

	add := func(name string, markInternal bool) {
		if markInternal {
			internalSet[name] = struct{}{}
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		chosen = append(chosen, name)
	}

	for _, name := range selected {
		add(name, false)
	}
	for _, name := range internal {
		add(name, true)
	}

	built := make(map[string]Metric, len(chosen))
	// auto-include prerequisites; they may pull in further ones.
	for i := 0; i < len(chosen); i++ {
		metric, err := newMetric(chosen[i], grid, rng)
		if err != nil {
			return nil, err
		}
		built[chosen[i]] = metric
		if cost, ok := metric.(CostMetric); ok {
			for _, dep := range cost.Dependencies() {
				if _, ok := seen[dep]; !ok {
					add(dep, true)
				}
			}
		}
	}

	reg := &Registry{
		indexOf:  make(map[string]int, len(chosen)),
		internal: internalSet,
	}

	for _, name := range chosen {
		if m, ok := built[name].(TagMetric); ok {
			reg.tagMetrics = append(reg.tagMetrics, m)
		}
	}
	for _, name := range chosen {
		if m, ok := built[name].(NodeMetric); ok {
			reg.nodeMetrics = append(reg.nodeMetrics, m)
		}
	}
	for _, name := range chosen {
		if m, ok := built[name].(CostMetric); ok {
			reg.costMetrics = append(reg.costMetrics, m)
		}
	}

	for _, m := range reg.tagMetrics {
		reg.appendName(m.Name())
	}
	for _, m := range reg.nodeMetrics {
		reg.appendName(m.Name())
	}
	for _, m := range reg.costMetrics {
		reg.appendName(m.Name())
	}

	// single-pass evaluation invariant: prerequisites precede their
	// dependents in the vector layout.
	for _, m := range reg.costMetrics {
		for _, dep := range m.Dependencies() {
			depIndex, ok := reg.indexOf[dep]
			if !ok || depIndex >= reg.indexOf[m.Name()] {
				return nil, util.WrapErrorf(nil, util.ErrUnknownMetric,
					"%s: prerequisite %q does not precede it in the metric layout", m.Name(), dep)
			}
		}
	}

	return reg, nil
}

func (reg *Registry) appendName(name string) {
	reg.indexOf[name] = len(reg.names)
	reg.names = append(reg.names, name)
}

func newMetric(name string, grid *Grid, rng *rand.Rand) (Metric, error) {
	switch name {
	case "distance":
		return Distance{}, nil
	case "height_ascent":
		return HeightAscent{}, nil
	case "unsuitability":
		return BicycleUnsuitability{}, nil
	case "speed:car":
		return CarSpeed{}, nil
	case "speed:fast_car":
		return FastCarSpeed{}, nil
	case "speed:truck":
		return TruckSpeed{}, nil
	case "time:car":
		return NewTravelTime("time:car", "distance", "speed:car"), nil
	case "time:fast_car":
		return NewTravelTime("time:fast_car", "distance", "speed:fast_car"), nil
	case "time:truck":
		return NewTravelTime("time:truck", "distance", "speed:truck"), nil
	case "grid_x":
		return NewGridX(grid), nil
	case "grid_y":
		return NewGridY(grid), nil
	case "chessboard":
		return NewChessBoard(grid), nil
	case "random":
		return NewRandomWeights(rng), nil
	}
	return nil, util.WrapErrorf(nil, util.ErrUnsupportedMetricName, "unsupported metric name: %q", name)
}

// MetricCount returns the full vector length, internal-only metrics
// included.
func (reg *Registry) MetricCount() int {
	return len(reg.names)
}

// ExternalMetricCount returns the number of serialized cost entries.
func (reg *Registry) ExternalMetricCount() int {
	return len(reg.names) - len(reg.internal)
}

// Names returns all metric names in vector-index order.
func (reg *Registry) Names() []string {
	return reg.names
}

// ExternalNames returns the serialized metric names in vector-index
// order, internal-only metrics excluded.
func (reg *Registry) ExternalNames() []string {
	external := make([]string, 0, reg.ExternalMetricCount())
	for _, name := range reg.names {
		if reg.IsInternal(name) {
			continue
		}
		external = append(external, name)
	}
	return external
}

func (reg *Registry) IsInternal(name string) bool {
	_, ok := reg.internal[name]
	return ok
}

func (reg *Registry) IndexOf(name string) (int, bool) {
	index, ok := reg.indexOf[name]
	return index, ok
}

// ExternalCosts filters a full cost vector down to the serialized
// entries, in vector-index order.
func (reg *Registry) ExternalCosts(costs []float64) []float64 {
	external := make([]float64, 0, reg.ExternalMetricCount())
	for i, name := range reg.names {
		if reg.IsInternal(name) {
			continue
		}
		external = append(external, costs[i])
	}
	return external
}

// CalcTagCosts fills the tag-metric entries of the cost vector.
func (reg *Registry) CalcTagCosts(tags datastructure.Tags, costs []float64) error {
	for _, m := range reg.tagMetrics {
		val, err := m.Calc(tags)
		if err != nil {
			return err
		}
		costs[reg.indexOf[m.Name()]] = val
	}
	return nil
}

// CalcNodeCosts fills the node-metric entries of the cost vector once
// both endpoints are resolved.
func (reg *Registry) CalcNodeCosts(source, target *datastructure.NodeRecord, costs []float64) error {
	for _, m := range reg.nodeMetrics {
		val, err := m.Calc(source, target)
		if err != nil {
			return err
		}
		costs[reg.indexOf[m.Name()]] = val
	}
	return nil
}

// CalcCostMetrics fills the derived entries, in vector-index order.
func (reg *Registry) CalcCostMetrics(costs []float64) error {
	for _, m := range reg.costMetrics {
		val, err := m.Calc(costs, reg.indexOf)
		if err != nil {
			return err
		}
		costs[reg.indexOf[m.Name()]] = val
	}
	return nil
}
