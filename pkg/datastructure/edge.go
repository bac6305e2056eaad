package datastructure

// UnresolvedEdge is a directed edge candidate still keyed by external
// node ids, before the resolver pass. Geometry is not computed yet;
// only the tag-derived cost entries are filled.
type UnresolvedEdge struct {
	source        int64
	dest          int64
	unsuitability float64
	costs         []float64
}

func NewUnresolvedEdge(source, dest int64, unsuitability float64, costs []float64) UnresolvedEdge {
	return UnresolvedEdge{
		source:        source,
		dest:          dest,
		unsuitability: unsuitability,
		costs:         costs,
	}
}

func (e UnresolvedEdge) GetSource() int64 {
	return e.source
}

func (e UnresolvedEdge) GetDest() int64 {
	return e.dest
}

func (e UnresolvedEdge) GetUnsuitability() float64 {
	return e.unsuitability
}

func (e UnresolvedEdge) GetCosts() []float64 {
	return e.costs
}

// ResolvedEdge is a directed edge with dense endpoints and true
// geometry. Only resolved edges reach the dominance filter.
type ResolvedEdge struct {
	source        Index
	dest          Index
	length        float64
	heightAscent  float64
	unsuitability float64
	costs         []float64
}

func NewResolvedEdge(source, dest Index, length, heightAscent, unsuitability float64, costs []float64) ResolvedEdge {
	return ResolvedEdge{
		source:        source,
		dest:          dest,
		length:        length,
		heightAscent:  heightAscent,
		unsuitability: unsuitability,
		costs:         costs,
	}
}

func (e ResolvedEdge) GetSource() Index {
	return e.source
}

func (e ResolvedEdge) GetDest() Index {
	return e.dest
}

func (e ResolvedEdge) GetLength() float64 {
	return e.length
}

func (e ResolvedEdge) GetHeightAscent() float64 {
	return e.heightAscent
}

func (e ResolvedEdge) GetUnsuitability() float64 {
	return e.unsuitability
}

func (e ResolvedEdge) GetCosts() []float64 {
	return e.costs
}

// SameEndpoints reports whether both edges connect the same ordered
// (source, dest) pair.
func (e ResolvedEdge) SameEndpoints(other ResolvedEdge) bool {
	return e.source == other.source && e.dest == other.dest
}

// EqualsFilterTuple is filtering-tuple equality, not bit-identity of
// the whole struct.
func (e ResolvedEdge) EqualsFilterTuple(other ResolvedEdge) bool {
	return e.SameEndpoints(other) &&
		e.length == other.length &&
		e.heightAscent == other.heightAscent &&
		e.unsuitability == other.unsuitability
}

// Dominates reports whether e is no worse than other in every
// filtering dimension. Both edges must share endpoints.
func (e ResolvedEdge) Dominates(other ResolvedEdge) bool {
	return e.length <= other.length &&
		e.heightAscent <= other.heightAscent &&
		e.unsuitability <= other.unsuitability
}
