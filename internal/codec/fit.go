package codec

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/jengzang/gpxscaler-backend-go/internal/models"
)

// EncodeFIT converts the track to Garmin's binary FIT container through
// gpsbabel, the only dependable writer for it. The GPX intermediate goes
// through a temp file because gpsbabel does not stream this conversion.
// Timed tracks become FIT activities with all points; untimed tracks become
// FIT courses.
func EncodeFIT(track *models.Track, name string, times []time.Time) ([]byte, error) {
	if _, err := exec.LookPath("gpsbabel"); err != nil {
		return nil, fmt.Errorf("fit output requires gpsbabel: %w", err)
	}

	gpxData, err := EncodeGPX(track, name, times)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "gpxscaler-fit-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "in.gpx")
	out := filepath.Join(dir, "out.fit")
	if err := os.WriteFile(in, gpxData, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write temp gpx: %w", err)
	}

	var args []string
	if times != nil {
		args = []string{"-i", "gpx", "-f", in, "-o", "garmin_fit,allpoints=1", "-F", out}
	} else {
		args = []string{"-i", "gpx", "-f", in, "-x", "track,trk2rte", "-o", "garmin_fit,course=1", "-F", out}
	}

	cmd := exec.Command("gpsbabel", args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("gpsbabel conversion failed: %v: %s", err, output)
	}

	payload, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("failed to read fit output: %w", err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("gpsbabel produced an empty fit file")
	}
	return payload, nil
}
