package codec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jengzang/gpxscaler-backend-go/internal/models"
)

// Format is the serialization target for a scaled route.
type Format string

const (
	FormatGPX Format = "gpx"
	FormatTCX Format = "tcx"
	FormatFIT Format = "fit"
)

// ErrUnknownFormat marks an unsupported output format tag.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat normalizes a format tag from user input.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatGPX, FormatTCX, FormatFIT:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// ContentType returns the MIME type served for downloads of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatGPX:
		return "application/gpx+xml"
	case FormatTCX:
		return "application/vnd.garmin.tcx+xml"
	default:
		return "application/octet-stream"
	}
}

// Encode renders the track in the given format. times carries per-point
// timestamps and may be nil for plain courses; when present it must be the
// same length as the track's point sequence.
func Encode(f Format, track *models.Track, name string, times []time.Time) ([]byte, error) {
	if times != nil && len(times) != len(track.Points) {
		return nil, fmt.Errorf("timing series has %d entries for %d points", len(times), len(track.Points))
	}
	switch f {
	case FormatGPX:
		return EncodeGPX(track, name, times)
	case FormatTCX:
		return EncodeTCX(track, name, times)
	case FormatFIT:
		return EncodeFIT(track, name, times)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
