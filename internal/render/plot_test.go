package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/scanmap/internal/project"
)

func testTrack() *project.Track {
	return &project.Track{
		Path: []project.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		Cloud: []project.Point{
			{X: 2, Y: 0}, {X: 2, Y: 1},
			{X: 3, Y: 0},
			{X: 0, Y: 2},
		},
		RowPoints: []int{2, 1, 1},
		Beams:     3,
	}
}

func TestNewTrackPlot(t *testing.T) {
	t.Parallel()

	p, err := NewTrackPlot(testTrack(), Options{Title: "File: record_test"})
	require.NoError(t, err)
	assert.Equal(t, "File: record_test", p.Title.Text)

	// Equal-scale axes: both spans must match.
	assert.InDelta(t, p.X.Max-p.X.Min, p.Y.Max-p.Y.Min, 1e-9)
}

func TestNewTrackPlot_BeamSegments(t *testing.T) {
	t.Parallel()

	_, err := NewTrackPlot(testTrack(), Options{BeamSegments: true})
	require.NoError(t, err)
}

func TestNewTrackPlot_EmptyTrack(t *testing.T) {
	t.Parallel()

	_, err := NewTrackPlot(&project.Track{}, Options{})
	require.NoError(t, err)
}

func TestWritePNG(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "track.png")
	err := WritePNG(testTrack(), Options{Title: "track", WidthIn: 4, HeightIn: 4}, out)
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWritePNG_BadPath(t *testing.T) {
	t.Parallel()

	err := WritePNG(testTrack(), Options{}, filepath.Join(t.TempDir(), "missing", "track.png"))
	assert.Error(t, err)
}

func TestTrackBounds(t *testing.T) {
	t.Parallel()

	b, ok := trackBounds(testTrack())
	require.True(t, ok)
	assert.Equal(t, Bounds{MinX: 0, MaxX: 3, MinY: 0, MaxY: 2}, b)

	_, ok = trackBounds(&project.Track{})
	assert.False(t, ok)
}
