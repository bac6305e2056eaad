package metrics

import (
	"math"

	"github.com/Stunkymonkey/pbfextractor/pkg/util"
)

// TravelTime derives travel time from already-computed distance and
// speed entries of the cost vector, looked up by name.
type TravelTime struct {
	name         string
	distanceName string
	speedName    string
}

func NewTravelTime(name, distanceName, speedName string) *TravelTime {
	return &TravelTime{
		name:         name,
		distanceName: distanceName,
		speedName:    speedName,
	}
}

func (t *TravelTime) Name() string {
	return t.name
}

func (t *TravelTime) Dependencies() []string {
	return []string{t.distanceName, t.speedName}
}

func (t *TravelTime) Calc(costs []float64, indexOf map[string]int) (float64, error) {
	distIndex, ok := indexOf[t.distanceName]
	if !ok {
		return 0, util.WrapErrorf(nil, util.ErrUnknownMetric,
			"%s: prerequisite %q is not registered", t.name, t.distanceName)
	}
	speedIndex, ok := indexOf[t.speedName]
	if !ok {
		return 0, util.WrapErrorf(nil, util.ErrUnknownMetric,
			"%s: prerequisite %q is not registered", t.name, t.speedName)
	}

	dist := costs[distIndex]
	speed := costs[speedIndex]
	time := dist * 360.0 / speed
	if !math.IsInf(time, 0) && !math.IsNaN(time) {
		return time, nil
	}
	return 0, util.WrapErrorf(nil, util.ErrNonFiniteResult,
		"%s: non-finite travel time from distance=%f speed=%f", t.name, dist, speed)
}
