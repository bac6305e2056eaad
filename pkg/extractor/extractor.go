package extractor

import (
	"github.com/Stunkymonkey/pbfextractor/pkg"
	"github.com/Stunkymonkey/pbfextractor/pkg/datastructure"
	"github.com/Stunkymonkey/pbfextractor/pkg/geo"
	"github.com/Stunkymonkey/pbfextractor/pkg/metrics"
	"github.com/Stunkymonkey/pbfextractor/pkg/util"
	"go.uber.org/zap"
)

// ElevationSource resolves a coordinate to an elevation estimate.
type ElevationSource interface {
	Elevation(lat, lon float64) (float64, error)
}

// Extractor turns already-decoded map objects into a routable graph
// with multi-criteria edge costs. Feed it all objects, then call Run.
type Extractor struct {
	registry  *metrics.Registry
	filter    EdgeFilter
	elevation ElevationSource
	logger    *zap.Logger

	nodes   []*datastructure.NodeRecord
	nodeIdx map[int64]datastructure.Index

	ways     map[int64]datastructure.Way
	wayOrder []int64

	// way-member lists of tagged bicycle route relations.
	relationWays [][]int64

	edges []datastructure.UnresolvedEdge
}

func New(registry *metrics.Registry, filter EdgeFilter, elevation ElevationSource, logger *zap.Logger) *Extractor {
	return &Extractor{
		registry:  registry,
		filter:    filter,
		elevation: elevation,
		logger:    logger,
		nodes:     make([]*datastructure.NodeRecord, 0),
		nodeIdx:   make(map[int64]datastructure.Index),
		ways:      make(map[int64]datastructure.Way),
	}
}

// AcceptNode records a map node, sampling its elevation eagerly. The
// dense index is the node's emission order.
func (e *Extractor) AcceptNode(osmID int64, lat, lon float64) error {
	if _, ok := e.nodeIdx[osmID]; ok {
		return nil
	}
	height, err := e.elevation.Elevation(lat, lon)
	if err != nil {
		return err
	}
	e.nodeIdx[osmID] = datastructure.Index(len(e.nodes))
	e.nodes = append(e.nodes, datastructure.NewNodeRecord(osmID, lat, lon, height))
	return nil
}

// AcceptWay records a way. Usability filtering happens in Run, so
// relations can still reference ways the filter rejects.
func (e *Extractor) AcceptWay(w datastructure.Way) {
	if len(w.GetNodes()) < 2 {
		return
	}
	if _, ok := e.ways[w.GetID()]; !ok {
		e.wayOrder = append(e.wayOrder, w.GetID())
	}
	e.ways[w.GetID()] = w
}

// AcceptRelation records the way members of a tagged bicycle route
// relation. Its member ways are re-emitted with the relation discount
// even when already processed on their own; the dominance filter
// resolves the duplicates.
func (e *Extractor) AcceptRelation(r datastructure.Relation) {
	if r.GetTags().Find("route") != "bicycle" {
		return
	}
	members := make([]int64, 0, len(r.GetMembers()))
	for _, m := range r.GetMembers() {
		if m.GetType() != datastructure.MEMBER_WAY {
			continue
		}
		members = append(members, m.GetRef())
	}
	e.relationWays = append(e.relationWays, members)
}

// Run executes the batch pipeline: way/relation processing, node
// resolution with the geometry pass, then deduplication and dominance
// filtering.
func (e *Extractor) Run() (*datastructure.Graph, error) {
	e.logger.Sugar().Infof("building %s graph from %d stored ways", e.filter.Name(), len(e.wayOrder))
	for _, id := range e.wayOrder {
		w := e.ways[id]
		if e.filter.Ignore(w.GetTags()) {
			continue
		}
		if err := e.processWay(w, 1.0); err != nil {
			return nil, err
		}
	}

	for _, members := range e.relationWays {
		for _, id := range members {
			w, ok := e.ways[id]
			if !ok {
				continue
			}
			if err := e.processWay(w, pkg.BICYCLE_RELATION_DISCOUNT); err != nil {
				return nil, err
			}
		}
	}

	e.logger.Sugar().Infof("calculating distances and height differences on %d edge candidates", len(e.edges))
	resolved, err := e.resolve()
	if err != nil {
		return nil, err
	}

	resolved = e.filterEdges(resolved)

	e.logger.Sugar().Infof("number of nodes: %d", len(e.nodes))
	e.logger.Sugar().Infof("number of edges: %d", len(resolved))

	return datastructure.NewGraph(e.nodes, resolved), nil
}

// processWay emits one directed edge candidate per consecutive node
// pair, plus the reverse direction for bidirectional ways. Tag-derived
// costs are computed once per way and copied to every candidate.
func (e *Extractor) processWay(w datastructure.Way, factor float64) error {
	tags := w.GetTags()

	tagCosts := make([]float64, e.registry.MetricCount())
	if err := e.registry.CalcTagCosts(tags, tagCosts); err != nil {
		return err
	}
	unsuitability := metrics.BicycleUnsuitabilityScore(tags) * factor
	if idx, ok := e.registry.IndexOf("unsuitability"); ok {
		tagCosts[idx] *= factor
	}

	oneWay := isOneWay(tags)
	nodes := w.GetNodes()
	for i := 0; i+1 < len(nodes); i++ {
		e.emit(nodes[i], nodes[i+1], unsuitability, tagCosts)
		if !oneWay {
			e.emit(nodes[i+1], nodes[i], unsuitability, tagCosts)
		}
	}
	return nil
}

func (e *Extractor) emit(source, dest int64, unsuitability float64, tagCosts []float64) {
	costs := make([]float64, len(tagCosts))
	copy(costs, tagCosts)
	e.edges = append(e.edges, datastructure.NewUnresolvedEdge(source, dest, unsuitability, costs))
}

// resolve rewrites external node ids to dense indices and fills in the
// true geometry. It must run only after all nodes have been observed.
func (e *Extractor) resolve() ([]datastructure.ResolvedEdge, error) {
	resolved := make([]datastructure.ResolvedEdge, 0, len(e.edges))
	for _, edge := range e.edges {
		sourceIdx, ok := e.nodeIdx[edge.GetSource()]
		if !ok {
			return nil, util.WrapErrorf(nil, util.ErrDanglingEdgeReference,
				"edge references unknown node %d", edge.GetSource())
		}
		destIdx, ok := e.nodeIdx[edge.GetDest()]
		if !ok {
			return nil, util.WrapErrorf(nil, util.ErrDanglingEdgeReference,
				"edge references unknown node %d", edge.GetDest())
		}

		source := e.nodes[sourceIdx]
		dest := e.nodes[destIdx]

		length := geo.CalculateHaversineDistance(source.GetLat(), source.GetLon(),
			dest.GetLat(), dest.GetLon())
		heightAscent := dest.GetHeight() - source.GetHeight()
		if heightAscent < 0 {
			heightAscent = 0
		}

		costs := edge.GetCosts()
		if err := e.registry.CalcNodeCosts(source, dest, costs); err != nil {
			return nil, err
		}
		if err := e.registry.CalcCostMetrics(costs); err != nil {
			return nil, err
		}

		resolved = append(resolved, datastructure.NewResolvedEdge(
			sourceIdx, destIdx, length, heightAscent, edge.GetUnsuitability(), costs))
	}
	return resolved, nil
}
