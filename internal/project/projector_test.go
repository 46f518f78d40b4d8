package project

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/scanmap/internal/scanlog"
)

const tol = 1e-9

// forwardSensor aims its sole beam straight along the vehicle's heading.
func forwardSensor() Sensor {
	return Sensor{FOVDeg: 0, AngleStartRad: 0, MaxRange: 30}
}

func row(x, y, yaw float64, ranges ...float64) scanlog.LogRow {
	return scanlog.LogRow{
		Ranges:      ranges,
		Position:    [3]float64{x, y, 0},
		Orientation: [3]float64{0, 0, yaw},
	}
}

func TestProjectRow_SingleBeamForward(t *testing.T) {
	t.Parallel()

	pts := forwardSensor().ProjectRow(row(0, 0, 0, 1.0))
	require.Len(t, pts, 1)
	assert.InDelta(t, 1.0, pts[0].X, tol)
	assert.InDelta(t, 0.0, pts[0].Y, tol)
}

func TestProjectRow_SingleBeamQuarterTurn(t *testing.T) {
	t.Parallel()

	// A beam at local angle 0 rotated by yaw=π/2 points along +y.
	pts := forwardSensor().ProjectRow(row(2, 3, math.Pi/2, 1.0))
	require.Len(t, pts, 1)
	assert.InDelta(t, 2.0, pts[0].X, tol)
	assert.InDelta(t, 4.0, pts[0].Y, tol)
}

func TestProjectRow_CentreBeamOfOddScan(t *testing.T) {
	t.Parallel()

	// With a 270° span and three beams, the middle beam sits on the
	// vehicle's forward axis.
	pts := NewSensor(270, 30).ProjectRow(row(0, 0, 0, 25, 2.0, 25))
	require.Len(t, pts, 3)
	assert.InDelta(t, 2.0, pts[1].X, tol)
	assert.InDelta(t, 0.0, pts[1].Y, tol)
}

func TestProjectRow_ValidityFilter(t *testing.T) {
	t.Parallel()

	s := forwardSensor()
	tests := []struct {
		name    string
		reading float64
		keep    bool
	}{
		{"ordinary return", 5.0, true},
		{"zero reading", 0.0, false},
		{"negative reading", -1.0, false},
		{"nan reading", math.NaN(), false},
		{"inf reading", math.Inf(1), false},
		{"exactly max range", 30.0, false},
		{"just inside max range", 29.999, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pts := s.ProjectRow(row(0, 0, 0, tt.reading))
			if tt.keep {
				assert.Len(t, pts, 1)
			} else {
				assert.Empty(t, pts)
			}
		})
	}
}

func TestProjectRow_YawPeriodicity(t *testing.T) {
	t.Parallel()

	s := NewSensor(270, 30)
	base := s.ProjectRow(row(1.5, -2.0, 0.73, 1, 2, 3, 4, 5))
	turned := s.ProjectRow(row(1.5, -2.0, 0.73+2*math.Pi, 1, 2, 3, 4, 5))

	require.Equal(t, len(base), len(turned))
	for i := range base {
		assert.InDelta(t, base[i].X, turned[i].X, 1e-6)
		assert.InDelta(t, base[i].Y, turned[i].Y, 1e-6)
	}
}

func TestBuild_TranslationConsistency(t *testing.T) {
	t.Parallel()

	s := NewSensor(270, 30)
	rows := []scanlog.LogRow{
		row(0, 0, 0.1, 1, 2, 3),
		row(1, 1, 0.2, 3, 2, 1),
	}

	const dx, dy = 10.5, -4.25
	shifted := make([]scanlog.LogRow, len(rows))
	for i, r := range rows {
		r.Position[0] += dx
		r.Position[1] += dy
		shifted[i] = r
	}

	base, err := Build(rows, s)
	require.NoError(t, err)
	moved, err := Build(shifted, s)
	require.NoError(t, err)

	require.Equal(t, len(base.Cloud), len(moved.Cloud))
	for i := range base.Cloud {
		assert.InDelta(t, base.Cloud[i].X+dx, moved.Cloud[i].X, tol)
		assert.InDelta(t, base.Cloud[i].Y+dy, moved.Cloud[i].Y, tol)
	}
	for i := range base.Path {
		assert.InDelta(t, base.Path[i].X+dx, moved.Path[i].X, tol)
		assert.InDelta(t, base.Path[i].Y+dy, moved.Path[i].Y, tol)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	t.Parallel()

	s := NewSensor(270, 30)
	rows := []scanlog.LogRow{
		row(0, 0, 0.1, 1, 2, 3),
		row(1, 1, 0.2, 3, 40, 1), // 40 is beyond max range
	}

	first, err := Build(rows, s)
	require.NoError(t, err)
	second, err := Build(rows, s)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated projection differs (-first +second):\n%s", diff)
	}
}

func TestBuild_PointCountBound(t *testing.T) {
	t.Parallel()

	s := NewSensor(270, 30)
	rows := []scanlog.LogRow{
		row(0, 0, 0, 1, 0, 3, math.Inf(1), 5),
		row(1, 0, 0, 1, 2, 3, 4, 5),
	}

	tr, err := Build(rows, s)
	require.NoError(t, err)

	require.Len(t, tr.RowPoints, len(rows))
	total := 0
	for i, n := range tr.RowPoints {
		assert.LessOrEqual(t, n, tr.Beams, "row %d", i)
		total += n
	}
	assert.Equal(t, total, len(tr.Cloud))
	assert.Equal(t, 5, tr.Beams)
	assert.Equal(t, 3, tr.RowPoints[0]) // zero and inf filtered
}

func TestBuild_MixedScanLengths(t *testing.T) {
	t.Parallel()

	rows := []scanlog.LogRow{
		row(0, 0, 0, 1, 2, 3, 4, 5),
		row(1, 0, 0, 1, 2, 3, 4, 5, 6),
	}

	tr, err := Build(rows, NewSensor(270, 30))
	require.Error(t, err)
	assert.Nil(t, tr, "no output for an ambiguous log")

	var merr *scanlog.MalformedLogError
	require.True(t, errors.As(err, &merr), "want MalformedLogError, got %T", err)
	assert.Equal(t, 1, merr.Row)
}

func TestBuild_Empty(t *testing.T) {
	t.Parallel()

	tr, err := Build(nil, NewSensor(270, 30))
	require.NoError(t, err)
	assert.Empty(t, tr.Path)
	assert.Empty(t, tr.Cloud)
}
