package util

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.code
}

func (e *Error) Code() error {
	return e.code
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

var (
	// a cost metric references a prerequisite name absent from the registry.
	ErrUnknownMetric = errors.New("unknown metric")
	// a cost metric produced NaN or Infinity.
	ErrNonFiniteResult = errors.New("non-finite metric result")
	// an edge endpoint was never observed among the map nodes.
	ErrDanglingEdgeReference = errors.New("dangling edge reference")
	// a configured metric name is not part of the metric catalog.
	ErrUnsupportedMetricName = errors.New("unsupported metric name")
)

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func StringToFloat64(str string) (float64, error) {
	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, err
	}
	return val, nil
}
