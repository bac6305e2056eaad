package osmparser

import (
	"context"
	"io"
	"os"

	"github.com/Stunkymonkey/pbfextractor/pkg/datastructure"
	"github.com/Stunkymonkey/pbfextractor/pkg/extractor"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

// Parser streams decoded objects out of a pbf file into the
// extractor. The file is scanned three times: relations first to
// learn bicycle-route membership, then the ways (admitted by highway
// tag or route membership) to learn which nodes are needed, then
// exactly those nodes.
type Parser struct {
	pbfPath string
}

func NewParser(pbfPath string) *Parser {
	return &Parser{
		pbfPath: pbfPath,
	}
}

func relevantWay(tags datastructure.Tags) bool {
	return tags.Find("highway") != ""
}

func relevantRelation(tags datastructure.Tags) bool {
	return tags.Find("route") == "bicycle"
}

func tagMap(tags osm.Tags) datastructure.Tags {
	m := make(datastructure.Tags, len(tags))
	for _, tag := range tags {
		m[tag.Key] = tag.Value
	}
	return m
}

// ingest carries the state shared by the three scans of one Parse
// run.
type ingest struct {
	ext    *extractor.Extractor
	logger *zap.Logger

	memberWays  map[int64]struct{}
	neededNodes map[int64]struct{}

	countWays  int
	countNodes int
}

func newIngest(ext *extractor.Extractor, logger *zap.Logger) *ingest {
	return &ingest{
		ext:         ext,
		logger:      logger,
		memberWays:  make(map[int64]struct{}),
		neededNodes: make(map[int64]struct{}),
	}
}

// relation records a bicycle-route relation and marks its member
// ways, which the way scan admits even without a highway tag.
func (in *ingest) relation(relation *osm.Relation) {
	tags := tagMap(relation.Tags)
	if !relevantRelation(tags) {
		return
	}
	members := make([]datastructure.Member, 0, len(relation.Members))
	for _, member := range relation.Members {
		if member.Type != osm.TypeWay {
			continue
		}
		in.memberWays[member.Ref] = struct{}{}
		members = append(members, datastructure.NewMember(datastructure.MEMBER_WAY, member.Ref))
	}
	in.ext.AcceptRelation(datastructure.NewRelation(tags, members))
}

// way admits a way when it carries a highway tag or belongs to a
// bicycle-route relation, and marks its nodes as needed.
func (in *ingest) way(way *osm.Way) {
	if len(way.Nodes) < 2 {
		return
	}
	tags := tagMap(way.Tags)
	if !relevantWay(tags) {
		if _, ok := in.memberWays[int64(way.ID)]; !ok {
			return
		}
	}
	if (in.countWays+1)%50000 == 0 {
		in.logger.Sugar().Infof("scanning openstreetmap ways: %d...", in.countWays+1)
	}
	in.countWays++

	nodes := make([]int64, 0, len(way.Nodes))
	for _, node := range way.Nodes {
		in.neededNodes[int64(node.ID)] = struct{}{}
		nodes = append(nodes, int64(node.ID))
	}
	in.ext.AcceptWay(datastructure.NewWay(int64(way.ID), nodes, tags))
}

func (in *ingest) node(node *osm.Node) error {
	if _, ok := in.neededNodes[int64(node.ID)]; !ok {
		return nil
	}
	if (in.countNodes+1)%500000 == 0 {
		in.logger.Sugar().Infof("processing openstreetmap nodes: %d...", in.countNodes+1)
	}
	in.countNodes++

	return in.ext.AcceptNode(int64(node.ID), node.Lat, node.Lon)
}

func (p *Parser) Parse(ext *extractor.Extractor, logger *zap.Logger) error {
	logger.Sugar().Infof("extracting data out of: %s", p.pbfPath)

	f, err := os.Open(p.pbfPath)
	if err != nil {
		return err
	}
	defer f.Close()

	in := newIngest(ext, logger)

	scanner := osmpbf.New(context.Background(), f, 0)
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeRelation {
			continue
		}
		in.relation(o.(*osm.Relation))
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return err
	}
	scanner.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	scanner = osmpbf.New(context.Background(), f, 0)
	// must not be parallel, way order defines the edge candidate order
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}
		in.way(o.(*osm.Way))
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return err
	}
	scanner.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	scanner = osmpbf.New(context.Background(), f, 0)
	// must not be parallel, node order defines the dense index order
	defer scanner.Close()

	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeNode {
			continue
		}
		if err := in.node(o.(*osm.Node)); err != nil {
			return err
		}
	}
	return scanner.Err()
}
