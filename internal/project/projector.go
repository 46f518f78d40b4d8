// Package project converts logged LiDAR scans into global-frame 2D
// geometry: the vehicle path and the obstacle point cloud.
package project

import (
	"fmt"
	"math"

	"github.com/banshee-data/scanmap/internal/scanlog"
)

// Point is a global-frame 2D coordinate in meters.
type Point struct {
	X float64
	Y float64
}

// Sensor describes the fixed scan geometry. The field of view and start
// angle are sensor constants that cannot be recovered from the data, so
// they arrive as configuration.
type Sensor struct {
	// FOVDeg is the angular span covered by one scan, in degrees.
	FOVDeg float64

	// AngleStartRad is the sensor-relative angle of beam 0, radians,
	// counter-clockwise positive. Conventionally the left edge of the
	// field of view (-FOV/2).
	AngleStartRad float64

	// MaxRange is the largest reading (meters) treated as a real return.
	// Readings at or beyond it are out-of-range sentinels, not obstacles.
	MaxRange float64
}

// NewSensor builds a Sensor with the span centred on the sensor's forward
// axis: beam 0 at -fovDeg/2, the last beam at +fovDeg/2.
func NewSensor(fovDeg, maxRange float64) Sensor {
	return Sensor{
		FOVDeg:        fovDeg,
		AngleStartRad: -fovDeg * math.Pi / 180.0 / 2.0,
		MaxRange:      maxRange,
	}
}

// DefaultSensor matches the 270° racing LiDAR the logs were recorded with,
// with a 30 m usable range.
func DefaultSensor() Sensor { return NewSensor(270, 30) }

// increment returns the per-beam angular step for an n-beam scan. A
// single-beam scan has no step; its one beam sits at AngleStartRad.
func (s Sensor) increment(n int) float64 {
	if n < 2 {
		return 0
	}
	return s.FOVDeg * math.Pi / 180.0 / float64(n-1)
}

// validReading reports whether a range reading is a plottable return:
// finite, positive and strictly inside the sensor's usable range.
func (s Sensor) validReading(r float64) bool {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return false
	}
	return r > 0 && r < s.MaxRange
}

// ProjectRow converts one scan into global-frame obstacle points. Beam i
// sits at local angle AngleStartRad + i*increment; yaw rotates it into the
// global frame and the row's position translates it. Invalid readings are
// dropped. Pure function of its inputs.
func (s Sensor) ProjectRow(row scanlog.LogRow) []Point {
	inc := s.increment(len(row.Ranges))
	x, y := row.Position[0], row.Position[1]
	yaw := row.Yaw()

	pts := make([]Point, 0, len(row.Ranges))
	for i, r := range row.Ranges {
		if !s.validReading(r) {
			continue
		}
		angle := s.AngleStartRad + float64(i)*inc + yaw
		pts = append(pts, Point{
			X: x + r*math.Cos(angle),
			Y: y + r*math.Sin(angle),
		})
	}
	return pts
}

// Track is the derived output of one projection pass. It is built in a
// single pass over the log and never mutated afterwards.
type Track struct {
	// Path holds each row's (x, y) position, in row order.
	Path []Point

	// Cloud holds every valid obstacle point, grouped by row.
	Cloud []Point

	// RowPoints[i] is the number of Cloud points contributed by row i.
	// Beam-segment rendering uses it to pair points with their origin.
	RowPoints []int

	// Beams is the per-scan reading count shared by every row.
	Beams int
}

// Build projects every row of a log. Rows must all carry the same number of
// range readings; a mismatch makes the angular increment ambiguous and
// fails with a *scanlog.MalformedLogError naming the offending row, before
// any output is produced.
func Build(rows []scanlog.LogRow, s Sensor) (*Track, error) {
	if len(rows) == 0 {
		return &Track{}, nil
	}

	beams := len(rows[0].Ranges)
	for i, row := range rows {
		if len(row.Ranges) != beams {
			return nil, &scanlog.MalformedLogError{
				Row:    i,
				Column: -1,
				Err:    fmt.Errorf("scan has %d range readings, expected %d", len(row.Ranges), beams),
			}
		}
	}

	tr := &Track{
		Path:      make([]Point, 0, len(rows)),
		RowPoints: make([]int, 0, len(rows)),
		Beams:     beams,
	}
	for _, row := range rows {
		tr.Path = append(tr.Path, Point{X: row.Position[0], Y: row.Position[1]})
		pts := s.ProjectRow(row)
		tr.Cloud = append(tr.Cloud, pts...)
		tr.RowPoints = append(tr.RowPoints, len(pts))
	}
	return tr, nil
}
