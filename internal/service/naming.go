package service

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var stagePattern = regexp.MustCompile(`(?i)stage[-_ ]?(\d+)`)

// StageNumber extracts the stage number from a filename such as
// "stage-3.gpx" or "Tour_Stage 12.gpx". It returns -1 when the name
// carries no stage marker, which sorts unmarked files first.
func StageNumber(name string) int {
	m := stagePattern.FindStringSubmatch(name)
	if m == nil {
		return -1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return -1
	}
	return n
}

// OutputName builds the filename for a scaled route. The base name, when
// given, replaces the original name but keeps its stage marker so a renamed
// batch still sorts by stage. The ascent suffix only appears when the
// elevation scale diverges from the distance scale.
func OutputName(baseName, originalName string, distScale, ascentScale float64, ext string) string {
	stem := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	if baseName != "" {
		if n := StageNumber(stem); n >= 0 {
			stem = fmt.Sprintf("%s_stage-%d", baseName, n)
		} else {
			stem = baseName + "_" + stem
		}
	}

	name := stem + "_scaled_" + scaleTag(distScale)
	if ascentScale != distScale {
		name += "_elev_" + scaleTag(ascentScale)
	}
	return name + ext
}

// scaleTag renders a scale factor in filesystem-safe form, e.g. 0.5 -> "0p5".
func scaleTag(s float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(s, 'f', -1, 64), ".", "p")
}
