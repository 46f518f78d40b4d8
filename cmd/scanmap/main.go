// Package main provides scanmap, an offline visualizer for recorded drive
// logs. It reads a CSV log of LiDAR scans and vehicle poses, projects every
// scan into the global frame and renders a top-down figure of the car path
// and the perceived obstacles.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/banshee-data/scanmap/internal/config"
	"github.com/banshee-data/scanmap/internal/monitoring"
	"github.com/banshee-data/scanmap/internal/project"
	"github.com/banshee-data/scanmap/internal/render"
	"github.com/banshee-data/scanmap/internal/report"
	"github.com/banshee-data/scanmap/internal/scanlog"
	"github.com/banshee-data/scanmap/internal/version"
)

var (
	outPath     = flag.String("out", "", "PNG output path (default: <input>.png)")
	htmlPath    = flag.String("html", "", "also write an interactive HTML chart to this path")
	summaryPath = flag.String("summary", "", "also write a JSON run summary to this path")
	configPath  = flag.String("config", "", "sensor/plot config JSON file")
	fovDeg      = flag.Float64("fov", 0, "sensor field of view in degrees (overrides config)")
	maxRange    = flag.Float64("max-range", 0, "maximum valid reading in meters (overrides config)")
	beams       = flag.Bool("beams", false, "draw beam segments from each scan origin to its points")
	quiet       = flag.Bool("quiet", false, "suppress progress logging")
	showVersion = flag.Bool("version", false, "print version and exit")
)

// Exit codes. A malformed log is distinguished from a missing file so batch
// callers can tell bad data from bad paths.
const (
	exitUsage     = 1
	exitFile      = 2
	exitMalformed = 3
)

func main() {
	flag.Usage = usage
	flag.Parse()
	if *showVersion {
		fmt.Println(version.String())
		return
	}
	os.Exit(run(flag.Args()))
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: scanmap [flags] <log-file>\n\n")
	flag.PrintDefaults()
}

func run(args []string) int {
	if len(args) != 1 {
		usage()
		return exitUsage
	}
	input := args[0]

	if *quiet {
		monitoring.SetLogger(nil)
	}

	cfg := config.Empty()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "scanmap: %v\n", err)
			return exitUsage
		}
	}
	sensor := buildSensor(cfg)

	rows, err := scanlog.ReadLog(input)
	if err != nil {
		return reportError(err)
	}
	monitoring.Logf("read %d rows from %s", len(rows), input)

	track, err := project.Build(rows, sensor)
	if err != nil {
		return reportError(err)
	}
	monitoring.Logf("projected %d obstacle points (%d beams per scan, max range %.1fm)",
		len(track.Cloud), track.Beams, sensor.MaxRange)

	opts := render.Options{
		Title:        fmt.Sprintf("File: %s", filepath.Base(input)),
		WidthIn:      cfg.GetPlotWidthIn(),
		HeightIn:     cfg.GetPlotHeightIn(),
		PointSizePt:  cfg.GetPointSizePt(),
		BeamSegments: *beams || cfg.GetBeamSegments(),
	}

	png := *outPath
	if png == "" {
		png = defaultOutPath(input)
	}
	if err := render.WritePNG(track, opts, png); err != nil {
		fmt.Fprintf(os.Stderr, "scanmap: %v\n", err)
		return exitFile
	}
	monitoring.Logf("wrote %s", png)

	if *htmlPath != "" {
		f, err := os.Create(*htmlPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "scanmap: %v\n", err)
			return exitFile
		}
		err = render.WriteHTML(track, opts, f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "scanmap: %v\n", err)
			return exitFile
		}
		monitoring.Logf("wrote %s", *htmlPath)
	}

	if *summaryPath != "" {
		res := report.Build(rows, track, filepath.Base(input))
		if err := res.WriteJSON(*summaryPath); err != nil {
			fmt.Fprintf(os.Stderr, "scanmap: %v\n", err)
			return exitFile
		}
		monitoring.Logf("wrote %s (run %s)", *summaryPath, res.RunID)
	}

	return 0
}

// buildSensor merges config file values and flag overrides into the sensor
// geometry.
func buildSensor(cfg *config.Config) project.Sensor {
	fov := cfg.GetFOVDeg()
	if *fovDeg > 0 {
		fov = *fovDeg
	}
	rng := cfg.GetMaxRangeM()
	if *maxRange > 0 {
		rng = *maxRange
	}

	s := project.NewSensor(fov, rng)
	// An explicit start angle in the config wins over the centred default,
	// but only when the FOV itself was not overridden out from under it.
	if cfg.AngleStartDeg != nil && *fovDeg == 0 {
		s.AngleStartRad = cfg.GetAngleStartDeg() * math.Pi / 180.0
	}
	return s
}

// defaultOutPath derives the PNG path from the input name: the input
// extension (if any) is replaced with .png.
func defaultOutPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".png"
}

// reportError prints a pipeline error and maps it to an exit code.
func reportError(err error) int {
	fmt.Fprintf(os.Stderr, "scanmap: %v\n", err)

	var fileErr *scanlog.FileAccessError
	if errors.As(err, &fileErr) {
		return exitFile
	}
	var logErr *scanlog.MalformedLogError
	if errors.As(err, &logErr) {
		return exitMalformed
	}
	return exitUsage
}
