package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jengzang/gpxscaler-backend-go/internal/models"
	"github.com/jengzang/gpxscaler-backend-go/internal/physics"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [directory]",
	Short: "Summarize the GPX files in a directory",
	Long: `analyze reads every .gpx file in the directory (default: current
directory), sorted by stage number, and prints distance, elevation, and an
estimated ride time for each.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	files, err := gpxFiles(dir)
	if err != nil {
		return err
	}

	rider := models.RiderParams{PowerWatts: flagPower, WeightKg: flagWeight}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("File", "Distance (km)", "Ascent (m)", "Descent (m)", "Points", "Est. Time")

	var totalKm, totalAscent, totalDescent, totalHours float64
	for _, path := range files {
		track, _, err := loadTrack(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %v\n", err)
			continue
		}
		hours, err := physics.EstimateTrack(track, rider)
		if err != nil {
			return err
		}

		table.Append(
			filepath.Base(path),
			fmt.Sprintf("%.1f", track.TotalDistance),
			fmt.Sprintf("%.0f", track.TotalAscent),
			fmt.Sprintf("%.0f", track.TotalDescent),
			fmt.Sprintf("%d", len(track.Points)),
			formatHours(hours),
		)

		totalKm += track.TotalDistance
		totalAscent += track.TotalAscent
		totalDescent += track.TotalDescent
		totalHours += hours
	}

	table.Append(
		"TOTAL",
		fmt.Sprintf("%.1f", totalKm),
		fmt.Sprintf("%.0f", totalAscent),
		fmt.Sprintf("%.0f", totalDescent),
		"",
		formatHours(totalHours),
	)

	return table.Render()
}
