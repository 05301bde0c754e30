package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jengzang/gpxscaler-backend-go/internal/codec"
	"github.com/jengzang/gpxscaler-backend-go/internal/models"
	"github.com/jengzang/gpxscaler-backend-go/internal/scaler"
	"github.com/jengzang/gpxscaler-backend-go/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "gpxscaler",
	Short: "Scale GPX routes and estimate ride times",
	Long: `gpxscaler shrinks or stretches GPS routes while keeping their shape,
optionally relocating them to a new start point, and estimates ride
duration from rider power and weight.`,
	SilenceUsage: true,
}

var (
	flagPower  float64
	flagWeight float64
)

func init() {
	rootCmd.PersistentFlags().Float64Var(&flagPower, "power", 250, "rider power in watts")
	rootCmd.PersistentFlags().Float64Var(&flagWeight, "weight", 75, "rider weight in kg")
}

// gpxFiles lists the .gpx files in dir, sorted by stage number when the
// names carry one and alphabetically otherwise.
func gpxFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.gpx"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no .gpx files in %s", dir)
	}
	sort.Slice(matches, func(i, j int) bool {
		ni, nj := service.StageNumber(matches[i]), service.StageNumber(matches[j])
		if ni != nj {
			return ni < nj
		}
		return matches[i] < matches[j]
	})
	return matches, nil
}

// loadTrack reads a GPX file into a track.
func loadTrack(path string) (*models.Track, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	points, name, err := codec.ParseGPX(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	track, err := scaler.BuildTrack(points)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if name == "" {
		name = filepath.Base(path)
	}
	return track, name, nil
}

// formatHours renders a duration in hours as "3h42m".
func formatHours(hours float64) string {
	totalMinutes := int(math.Round(hours * 60))
	return fmt.Sprintf("%dh%02dm", totalMinutes/60, totalMinutes%60)
}
