package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jengzang/gpxscaler-backend-go/internal/codec"
	"github.com/jengzang/gpxscaler-backend-go/internal/elevation"
	"github.com/jengzang/gpxscaler-backend-go/internal/models"
	"github.com/jengzang/gpxscaler-backend-go/internal/physics"
	"github.com/jengzang/gpxscaler-backend-go/internal/scaler"
	"github.com/jengzang/gpxscaler-backend-go/internal/service"
)

var scaleCmd = &cobra.Command{
	Use:   "scale [directory]",
	Short: "Scale every GPX file in a directory",
	Long: `scale transforms each .gpx file in the directory (default: current
directory) by the given factors and writes the results to a new output
directory. Routes keep their shape; an optional new start point relocates
them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScale,
}

var (
	scaleFactor    float64
	ascentFactor   float64
	startLat       float64
	startLon       float64
	startElevation float64
	minDistanceKm  float64
	maxAscentM     float64
	outFormat      string
	baseName       string
	addTiming      bool
	outputDir      string
)

func init() {
	scaleCmd.Flags().Float64Var(&scaleFactor, "scale", 1, "distance scale factor")
	scaleCmd.Flags().Float64Var(&ascentFactor, "ascent-scale", 0, "elevation gain scale factor (default: same as --scale)")
	scaleCmd.Flags().Float64Var(&startLat, "start-lat", 0, "latitude of the new start point")
	scaleCmd.Flags().Float64Var(&startLon, "start-lon", 0, "longitude of the new start point")
	scaleCmd.Flags().Float64Var(&startElevation, "start-elevation", 0, "elevation of the new start point in meters")
	scaleCmd.Flags().Float64Var(&minDistanceKm, "min-distance", 0, "minimum output distance in km")
	scaleCmd.Flags().Float64Var(&maxAscentM, "max-ascent", 0, "maximum output ascent in meters")
	scaleCmd.Flags().StringVar(&outFormat, "format", "gpx", "output format: gpx, tcx, or fit")
	scaleCmd.Flags().StringVar(&baseName, "base-name", "", "replacement base name for output files")
	scaleCmd.Flags().BoolVar(&addTiming, "timing", false, "embed per-point timestamps from the ride model")
	scaleCmd.Flags().StringVar(&outputDir, "output", "", "output directory (default: <timestamp>_scale_<factor>)")
	rootCmd.AddCommand(scaleCmd)
}

func runScale(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	files, err := gpxFiles(dir)
	if err != nil {
		return err
	}

	format, err := codec.ParseFormat(outFormat)
	if err != nil {
		return err
	}

	cfg := models.ScaleConfig{
		DistanceScale: scaleFactor,
		AscentScale:   scaleFactor,
	}
	if cmd.Flags().Changed("ascent-scale") {
		cfg.AscentScale = ascentFactor
	}
	if cmd.Flags().Changed("start-lat") && cmd.Flags().Changed("start-lon") {
		cfg.StartLat, cfg.StartLon = &startLat, &startLon
	}
	if cmd.Flags().Changed("start-elevation") {
		cfg.StartElevation = &startElevation
	}
	if cmd.Flags().Changed("min-distance") {
		cfg.MinDistanceKm = &minDistanceKm
	}
	if cmd.Flags().Changed("max-ascent") {
		cfg.MaxAscentM = &maxAscentM
	}

	// One terrain lookup covers the whole batch since every route gets
	// the same new start. Failure just keeps the original base elevation.
	if cfg.Relocated() && cfg.StartElevation == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		ele, err := elevation.NewClient().Lookup(ctx, *cfg.StartLat, *cfg.StartLon)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "elevation lookup failed, keeping original base elevation: %v\n", err)
		} else {
			cfg.StartElevation = &ele
		}
	}

	outDir := outputDir
	if outDir == "" {
		outDir = fmt.Sprintf("%s_scale_%g", time.Now().Format("20060102_150405"), scaleFactor)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rider := models.RiderParams{PowerWatts: flagPower, WeightKg: flagWeight}

	for _, path := range files {
		track, name, err := loadTrack(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %v\n", err)
			continue
		}

		scaled, err := scaler.Transform(track, cfg)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		hours, err := physics.EstimateTrack(scaled, rider)
		if err != nil {
			return err
		}

		var times []time.Time
		if addTiming {
			start, err := physics.RideStartTime(scaled, rider, time.Now())
			if err != nil {
				return err
			}
			times, err = physics.PointTimes(scaled, rider, start)
			if err != nil {
				return err
			}
		}

		effDist := scaler.EffectiveDistanceScale(track.TotalDistance, cfg.DistanceScale, cfg.MinDistanceKm)
		effAscent := scaler.EffectiveAscentScale(track.TotalAscent, cfg.AscentScale, cfg.MaxAscentM)
		outName := service.OutputName(baseName, filepath.Base(path), effDist, effAscent, format.Ext())

		payload, err := codec.Encode(format, scaled, name, times)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		outPath := filepath.Join(outDir, outName)
		if err := os.WriteFile(outPath, payload, 0o644); err != nil {
			return err
		}

		fmt.Printf("Scaled %s -> %s (%.1f km, %.0f m ascent, %s)\n",
			filepath.Base(path), outName, scaled.TotalDistance, scaled.TotalAscent, formatHours(hours))
	}

	fmt.Printf("Output written to %s\n", outDir)
	return nil
}
