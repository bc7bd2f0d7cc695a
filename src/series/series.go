// Package series reshapes the downloaded tables into dated series.
package series

import "time"

type Point struct {
	Date  time.Time
	Value float64
}

// Series is a named line. Points are in ascending date order and may skip
// dates where the value is undefined.
type Series struct {
	Name   string
	Points []Point
}

func (s *Series) add(d time.Time, v float64) {
	s.Points = append(s.Points, Point{Date: d, Value: v})
}
