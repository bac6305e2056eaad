package extractor

import (
	"github.com/Stunkymonkey/pbfextractor/pkg/datastructure"
)

// EdgeFilter decides whether a way is usable by the travel mode being
// extracted.
type EdgeFilter interface {
	Name() string
	Ignore(tags datastructure.Tags) bool
}

// BicycleEdgeFilter admits every way a bicycle may legally and
// sensibly use.
type BicycleEdgeFilter struct{}

func (BicycleEdgeFilter) Name() string {
	return "bicycle"
}

func (BicycleEdgeFilter) Ignore(tags datastructure.Tags) bool {
	bicycleTag := tags.Find("bicycle")
	if bicycleTag == "no" {
		return true
	}
	if tags.Has("cycleway") || (tags.Has("bicycle") && bicycleTag != "no") {
		return false
	}

	if sideWalk := tags.Find("sidewalk"); sideWalk != "" && sideWalk != "no" {
		return false
	}

	switch tags.Find("highway") {
	case "motorway", "motorway_link", "trunk", "trunk_link", "proposed",
		"steps", "elevator", "corridor", "raceway", "rest_area", "construction":
		return true
	}
	return false
}

// CarEdgeFilter admits drivable road classes only.
type CarEdgeFilter struct{}

func (CarEdgeFilter) Name() string {
	return "car"
}

func (CarEdgeFilter) Ignore(tags datastructure.Tags) bool {
	switch tags.Find("highway") {
	case "motorway", "motorway_link", "trunk", "trunk_link",
		"primary", "primary_link", "secondary", "secondary_link",
		"tertiary", "tertiary_link", "unclassified", "residential",
		"living_street", "service", "road":
		return false
	}
	return true
}

// isOneWay. a way is one-way given an explicit oneway tag, else when
// its road class is motorway.
func isOneWay(tags datastructure.Tags) bool {
	switch tags.Find("oneway") {
	case "yes", "true", "1":
		return true
	case "no", "false", "0":
		return false
	}
	return tags.Find("highway") == "motorway"
}
