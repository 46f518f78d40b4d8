package render

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/scanmap/internal/project"
)

// maxHTMLPoints caps the scatter payload so a long log still produces a
// page the browser can handle; beyond it points are thinned by stride.
const maxHTMLPoints = 50000

// densityGridSize is the bin count per axis for the density colouring.
const densityGridSize = 200

// infernoColors approximates matplotlib's inferno colormap for the
// visual-map gradient.
var infernoColors = []string{
	"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60",
	"#cf4446", "#ed6925", "#fb9b06", "#f7d03c", "#fcffa4",
}

// WriteHTML renders an interactive top-down chart of the track to w.
// Cloud points are coloured by local log-density, which stands in for a
// hexbin heatmap; the path is overlaid as a line series.
func WriteHTML(tr *project.Track, o Options, w io.Writer) error {
	density, maxDensity := cloudDensity(tr)

	stride := 1
	if len(tr.Cloud) > maxHTMLPoints {
		stride = int(math.Ceil(float64(len(tr.Cloud)) / float64(maxHTMLPoints)))
	}

	data := make([]opts.ScatterData, 0, len(tr.Cloud)/stride+1)
	for i := 0; i < len(tr.Cloud); i += stride {
		pt := tr.Cloud[i]
		data = append(data, opts.ScatterData{Value: []interface{}{pt.X, pt.Y, density[i]}})
	}

	b, ok := trackBounds(tr)
	if !ok {
		return fmt.Errorf("empty track: nothing to render")
	}
	span := math.Max(b.MaxX-b.MinX, b.MaxY-b.MinY)
	pad := span * 0.05
	if pad == 0 {
		pad = 1.0
	}
	cx := (b.MinX + b.MaxX) / 2
	cy := (b.MinY + b.MaxY) / 2
	half := span/2 + pad

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: o.Title, Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: o.Title, Subtitle: fmt.Sprintf("rows=%d points=%d stride=%d", len(tr.Path), len(tr.Cloud), stride)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: cx - half, Max: cx + half, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: cy - half, Max: cy + half, Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxDensity),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: infernoColors},
		}),
	)
	scatter.AddSeries("lidar points", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))

	if len(tr.Path) > 0 {
		pathData := make([]opts.LineData, 0, len(tr.Path))
		for _, pt := range tr.Path {
			pathData = append(pathData, opts.LineData{Value: []interface{}{pt.X, pt.Y}})
		}
		line := charts.NewLine()
		line.AddSeries("car path", pathData,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: "#d62a2a", Width: 1.5}),
		)
		scatter.Overlap(line)
	}

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// cloudDensity bins the cloud on a coarse grid and returns, per point, the
// log of its bin's population. Log scaling keeps walls from washing out
// sparse obstacles, matching a log-binned heatmap.
func cloudDensity(tr *project.Track) ([]float64, float64) {
	density := make([]float64, len(tr.Cloud))
	if len(tr.Cloud) == 0 {
		return density, 0
	}

	b, _ := trackBounds(tr)
	spanX := b.MaxX - b.MinX
	spanY := b.MaxY - b.MinY
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}

	bin := func(pt project.Point) int {
		ix := int(float64(densityGridSize-1) * (pt.X - b.MinX) / spanX)
		iy := int(float64(densityGridSize-1) * (pt.Y - b.MinY) / spanY)
		return iy*densityGridSize + ix
	}

	counts := make(map[int]int, densityGridSize)
	for _, pt := range tr.Cloud {
		counts[bin(pt)]++
	}

	var maxDensity float64
	for i, pt := range tr.Cloud {
		d := math.Log1p(float64(counts[bin(pt)]))
		density[i] = d
		if d > maxDensity {
			maxDensity = d
		}
	}
	return density, maxDensity
}
