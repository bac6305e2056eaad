package metrics

import (
	"math"

	"github.com/Stunkymonkey/pbfextractor/pkg"
	"github.com/Stunkymonkey/pbfextractor/pkg/datastructure"
	"github.com/Stunkymonkey/pbfextractor/pkg/util"
)

// maxSpeedTag returns the explicit maxspeed tag value if it parses to
// a positive number, 0 otherwise.
func maxSpeedTag(tags datastructure.Tags) float64 {
	val, err := util.StringToFloat64(tags.Find("maxspeed"))
	if err != nil || val <= 0 {
		return 0
	}
	return val
}

func roadClassSpeed(tags datastructure.Tags) float64 {
	switch tags.Find("highway") {
	case "motorway", "trunk":
		return 130.0
	case "primary":
		return 100.0
	case "secondary", "trunk_link":
		return 80.0
	case "motorway_link", "primary_link", "secondary_link", "tertiary", "tertiary_link":
		return 70.0
	case "service":
		return 30.0
	case "living_street":
		return 5.0
	default:
		return pkg.DEFAULT_ROAD_SPEED
	}
}

// CarSpeed. speed in km/h from the explicit maxspeed tag if positive,
// else a lookup table keyed by the road class.
type CarSpeed struct{}

func (CarSpeed) Name() string {
	return "speed:car"
}

func (CarSpeed) Calc(tags datastructure.Tags) (float64, error) {
	if speed := maxSpeedTag(tags); speed > 0 {
		return speed, nil
	}
	return roadClassSpeed(tags), nil
}

// FastCarSpeed is the car profile with raised speeds on the
// motorway-class roads.
type FastCarSpeed struct{}

func (FastCarSpeed) Name() string {
	return "speed:fast_car"
}

func (FastCarSpeed) Calc(tags datastructure.Tags) (float64, error) {
	if speed := maxSpeedTag(tags); speed > 0 {
		return speed, nil
	}
	switch tags.Find("highway") {
	case "motorway", "trunk":
		return 160.0, nil
	case "primary":
		return 110.0, nil
	}
	return roadClassSpeed(tags), nil
}

// TruckSpeed is the car profile capped at the truck speed limit.
type TruckSpeed struct{}

func (TruckSpeed) Name() string {
	return "speed:truck"
}

func (TruckSpeed) Calc(tags datastructure.Tags) (float64, error) {
	speed := maxSpeedTag(tags)
	if speed <= 0 {
		speed = roadClassSpeed(tags)
	}
	return math.Min(speed, pkg.MAX_TRUCK_SPEED), nil
}

// BicycleUnsuitabilityScore scores how unsuitable a tagged way is for
// cycling: 0.5 (dedicated cycling infrastructure) up to 6 (unknown
// road class).
func BicycleUnsuitabilityScore(tags datastructure.Tags) float64 {
	bicycleTag := tags.Find("bicycle")
	if tags.Has("cycleway") || (tags.Has("bicycle") && bicycleTag != "no") {
		return 0.5
	}

	if tags.Find("sidewalk") == "yes" {
		return 1.0
	}

	switch tags.Find("highway") {
	case "primary", "primary_link":
		return 5.0
	case "secondary", "secondary_link":
		return 4.0
	case "tertiary", "tertiary_link", "road", "bridleway":
		return 3.0
	case "unclassified", "residential", "traffic_island":
		return 2.0
	case "living_street", "service", "track", "platform", "pedestrian", "path", "footway":
		return 1.0
	case "cycleway":
		return 0.5
	default:
		return pkg.UNSUITABILITY_UNKNOWN_ROAD
	}
}

type BicycleUnsuitability struct{}

func (BicycleUnsuitability) Name() string {
	return "unsuitability"
}

func (BicycleUnsuitability) Calc(tags datastructure.Tags) (float64, error) {
	return BicycleUnsuitabilityScore(tags), nil
}
