package datastructure

// Tags is the string key/value tag set of an already-decoded map object.
type Tags map[string]string

func (t Tags) Find(key string) string {
	return t[key]
}

func (t Tags) Has(key string) bool {
	_, ok := t[key]
	return ok
}

type MemberType uint8

const (
	MEMBER_NODE MemberType = iota
	MEMBER_WAY
	MEMBER_RELATION
)

// Way. ordered sequence of map nodes forming a path segment.
type Way struct {
	id    int64
	nodes []int64
	tags  Tags
}

func NewWay(id int64, nodes []int64, tags Tags) Way {
	return Way{
		id:    id,
		nodes: nodes,
		tags:  tags,
	}
}

func (w Way) GetID() int64 {
	return w.id
}

func (w Way) GetNodes() []int64 {
	return w.nodes
}

func (w Way) GetTags() Tags {
	return w.tags
}

type Member struct {
	memberType MemberType
	ref        int64
}

func NewMember(memberType MemberType, ref int64) Member {
	return Member{
		memberType: memberType,
		ref:        ref,
	}
}

func (m Member) GetType() MemberType {
	return m.memberType
}

func (m Member) GetRef() int64 {
	return m.ref
}

// Relation. tagged grouping referencing other map objects, e.g. a
// signed bicycle route spanning multiple ways.
type Relation struct {
	tags    Tags
	members []Member
}

func NewRelation(tags Tags, members []Member) Relation {
	return Relation{
		tags:    tags,
		members: members,
	}
}

func (r Relation) GetTags() Tags {
	return r.tags
}

func (r Relation) GetMembers() []Member {
	return r.members
}
