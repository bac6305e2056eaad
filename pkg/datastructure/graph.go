package datastructure

// Index is the dense node index assigned in emission order, distinct
// from the external (source-dataset) node identifier.
type Index uint32

// NodeRecord. one record per distinct external node id. elevation is
// filled at creation time and never mutated afterwards.
type NodeRecord struct {
	osmID  int64
	lat    float64
	lon    float64
	height float64
}

func NewNodeRecord(osmID int64, lat, lon, height float64) *NodeRecord {
	return &NodeRecord{
		osmID:  osmID,
		lat:    lat,
		lon:    lon,
		height: height,
	}
}

func (n *NodeRecord) GetOsmID() int64 {
	return n.osmID
}

func (n *NodeRecord) GetLat() float64 {
	return n.lat
}

func (n *NodeRecord) GetLon() float64 {
	return n.lon
}

func (n *NodeRecord) GetHeight() float64 {
	return n.height
}

// Graph. ordered node records (dense index = position) plus the
// surviving resolved edges.
type Graph struct {
	nodes []*NodeRecord
	edges []ResolvedEdge
}

func NewGraph(nodes []*NodeRecord, edges []ResolvedEdge) *Graph {
	return &Graph{
		nodes: nodes,
		edges: edges,
	}
}

func (g *Graph) GetNodes() []*NodeRecord {
	return g.nodes
}

func (g *Graph) GetEdges() []ResolvedEdge {
	return g.edges
}

func (g *Graph) NumberOfNodes() int {
	return len(g.nodes)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}
