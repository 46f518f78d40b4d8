package render

import (
	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/scanmap/internal/project"
)

// Bounds is the axis-aligned bounding box over every drawable point.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// trackBounds computes the bounding box over path and cloud together. The
// second return is false for an empty track.
func trackBounds(tr *project.Track) (Bounds, bool) {
	n := len(tr.Path) + len(tr.Cloud)
	if n == 0 {
		return Bounds{}, false
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

	return Bounds{
		MinX: floats.Min(xs), MaxX: floats.Max(xs),
		MinY: floats.Min(ys), MaxY: floats.Max(ys),
	}, true
}
