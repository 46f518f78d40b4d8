// Package render draws a projected track as a top-down figure: the vehicle
// path, the obstacle cloud and optionally the individual beam segments.
// Every renderer builds its own figure object per invocation; there is no
// shared current-figure state, so runs in one process do not interfere.
package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/scanmap/internal/project"
)

// Options controls figure layout. Zero values fall back to the package
// defaults noted on each field.
type Options struct {
	Title        string  // figure title, conventionally the source file name
	WidthIn      float64 // figure width in inches (default 14)
	HeightIn     float64 // figure height in inches (default 12)
	PointSizePt  float64 // cloud glyph radius in points (default 0.5)
	BeamSegments bool    // draw a segment from each scan origin to each of its points
}

var (
	pathColor  = color.RGBA{R: 0xd6, G: 0x2a, B: 0x2a, A: 0xff}
	cloudColor = color.NRGBA{A: 0xb2} // translucent black, keeps dense areas readable
	beamColor  = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x30}
	startColor = color.RGBA{G: 0x96, A: 0xff}
	endColor   = color.RGBA{B: 0xc8, A: 0xff}
)

// NewTrackPlot assembles the figure for a track: obstacle scatter, path
// polyline with START/END markers at the first and last positions, and
// optional beam segments. Axis ranges are forced to equal scale so the
// geometry is not distorted.
func NewTrackPlot(tr *project.Track, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"
	p.Add(plotter.NewGrid())

	if opts.BeamSegments {
		if err := addBeamSegments(p, tr); err != nil {
			return nil, err
		}
	}

	if len(tr.Cloud) > 0 {
		cloudPts := make(plotter.XYs, len(tr.Cloud))
		for i, pt := range tr.Cloud {
			cloudPts[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		scatter, err := plotter.NewScatter(cloudPts)
		if err != nil {
			return nil, fmt.Errorf("cloud scatter: %w", err)
		}
		radius := opts.PointSizePt
		if radius <= 0 {
			radius = 0.5
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(radius)
		scatter.GlyphStyle.Color = cloudColor
		p.Add(scatter)
		p.Legend.Add("LiDAR points", scatter)
	}

	if len(tr.Path) > 0 {
		pathPts := make(plotter.XYs, len(tr.Path))
		for i, pt := range tr.Path {
			pathPts[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		line, err := plotter.NewLine(pathPts)
		if err != nil {
			return nil, fmt.Errorf("path line: %w", err)
		}
		line.Color = pathColor
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add("Car path", line)

		if err := addEndpointLabels(p, tr); err != nil {
			return nil, err
		}
	}

	squareRanges(p, tr)

	p.Legend.Top = true
	p.Legend.Left = false
	return p, nil
}

// WritePNG renders the track figure to a PNG file at outPath.
func WritePNG(tr *project.Track, opts Options, outPath string) error {
	p, err := NewTrackPlot(tr, opts)
	if err != nil {
		return err
	}
	w, h := opts.WidthIn, opts.HeightIn
	if w <= 0 {
		w = 14
	}
	if h <= 0 {
		h = 12
	}
	if err := p.Save(vg.Length(w)*vg.Inch, vg.Length(h)*vg.Inch, outPath); err != nil {
		return fmt.Errorf("save track plot: %w", err)
	}
	return nil
}

// addBeamSegments draws one thin line per (row, point) pair. RowPoints
// groups the flat cloud back into per-row slices.
func addBeamSegments(p *plot.Plot, tr *project.Track) error {
	offset := 0
	for row, n := range tr.RowPoints {
		origin := tr.Path[row]
		for _, pt := range tr.Cloud[offset : offset+n] {
			seg, err := plotter.NewLine(plotter.XYs{
				{X: origin.X, Y: origin.Y},
				{X: pt.X, Y: pt.Y},
			})
			if err != nil {
				return fmt.Errorf("beam segment row %d: %w", row, err)
			}
			seg.Color = beamColor
			seg.Width = vg.Points(0.25)
			p.Add(seg)
		}
		offset += n
	}
	return nil
}

// addEndpointLabels marks the first and last path points.
func addEndpointLabels(p *plot.Plot, tr *project.Track) error {
	first := tr.Path[0]
	last := tr.Path[len(tr.Path)-1]
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: first.X, Y: first.Y}, {X: last.X, Y: last.Y}},
		Labels: []string{"START", "END"},
	})
	if err != nil {
		return fmt.Errorf("endpoint labels: %w", err)
	}
	labels.TextStyle[0].Color = startColor
	labels.TextStyle[1].Color = endColor
	p.Add(labels)
	return nil
}

// squareRanges pads the data bounding box and forces both axes to span the
// same distance, keeping the aspect ratio honest without a dedicated
// equal-axis mode.
func squareRanges(p *plot.Plot, tr *project.Track) {
	b, ok := trackBounds(tr)
	if !ok {
		return
	}

	spanX := b.MaxX - b.MinX
	spanY := b.MaxY - b.MinY
	span := math.Max(math.Max(spanX, spanY), 1e-6)
	pad := span * 0.05

	cx := (b.MinX + b.MaxX) / 2
	cy := (b.MinY + b.MaxY) / 2
	half := span/2 + pad

	p.X.Min, p.X.Max = cx-half, cx+half
	p.Y.Min, p.Y.Max = cy-half, cy+half
}
