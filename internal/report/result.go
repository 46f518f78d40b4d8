// Package report summarises a render run as JSON, in the style of the
// analysis exports produced by the rest of the tooling.
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/scanmap/internal/project"
	"github.com/banshee-data/scanmap/internal/scanlog"
)

// Result holds the summary of one projection run.
type Result struct {
	RunID            string        `json:"run_id"`
	SourceFile       string        `json:"source_file"`
	Rows             int           `json:"rows"`
	BeamsPerScan     int           `json:"beams_per_scan"`
	ObstaclePoints   int           `json:"obstacle_points"`
	FilteredReadings int           `json:"filtered_readings"`
	PathLengthM      float64       `json:"path_length_m"`
	Bounds           *Bounds       `json:"bounds,omitempty"`
	Speed            *ChannelStats `json:"speed_mps,omitempty"`
}

// Bounds is the bounding box of the rendered geometry in meters.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

// ChannelStats summarises one scalar motion channel.
type ChannelStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Stddev float64 `json:"stddev"`
	Count  int     `json:"count"`
}

// Build computes the summary for a projected track. Every reading that was
// dropped by the validity filter counts as filtered. The speed channel is
// summarised when at least one row carries a parseable speed value.
func Build(rows []scanlog.LogRow, tr *project.Track, sourceFile string) *Result {
	res := &Result{
		RunID:            uuid.NewString(),
		SourceFile:       sourceFile,
		Rows:             len(rows),
		BeamsPerScan:     tr.Beams,
		ObstaclePoints:   len(tr.Cloud),
		FilteredReadings: len(rows)*tr.Beams - len(tr.Cloud),
		PathLengthM:      pathLength(tr.Path),
		Bounds:           bounds(tr),
		Speed:            channelStats(rows, scanlog.MotionSpeed),
	}
	return res
}

// WriteJSON writes the result to path as indented JSON.
func (r *Result) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func pathLength(path []project.Point) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += math.Hypot(path[i].X-path[i-1].X, path[i].Y-path[i-1].Y)
	}
	return total
}

func bounds(tr *project.Track) *Bounds {
	n := len(tr.Path) + len(tr.Cloud)
	if n == 0 {
		return nil
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for _, pt := range tr.Path {
		xs = append(xs, pt.X)
		ys = append(ys, pt.Y)
	}
	for _, pt := range tr.Cloud {
		xs = append(xs, pt.X)
		ys = append(ys, pt.Y)
	}
	return &Bounds{
		MinX: floats.Min(xs), MaxX: floats.Max(xs),
		MinY: floats.Min(ys), MaxY: floats.Max(ys),
	}
}

// channelStats parses one motion channel across all rows. Rows without the
// channel, or with unparseable text, are skipped; the channels are
// pass-through data and were never validated on read.
func channelStats(rows []scanlog.LogRow, channel int) *ChannelStats {
	var vs []float64
	for _, row := range rows {
		if channel >= len(row.Motion) {
			continue
		}
		v, err := strconv.ParseFloat(row.Motion[channel], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		vs = append(vs, v)
	}
	if len(vs) == 0 {
		return nil
	}
	// StdDev is NaN for a single sample, and NaN does not marshal.
	var stddev float64
	if len(vs) > 1 {
		stddev = stat.StdDev(vs, nil)
	}
	return &ChannelStats{
		Min:    floats.Min(vs),
		Max:    floats.Max(vs),
		Mean:   stat.Mean(vs, nil),
		Stddev: stddev,
		Count:  len(vs),
	}
}
