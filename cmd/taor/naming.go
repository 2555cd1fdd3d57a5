package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/taor/parameter"
)

// outputPath names video i of a batch
// Seeded runs are suffixed with their seed, unseeded batches with their index
func outputPath(base string, now time.Time, seeded bool, seed uint64, quantity, i int) string {
	if base == "" {
		base = parameter.DefaultOutputDir + strconv.FormatInt(now.Unix(), 10)
	}
	switch {
	case seeded:
		return fmt.Sprintf("%s_seed%d%s", base, seed, parameter.VideoExtension)
	case quantity > 1:
		return fmt.Sprintf("%s_number%d%s", base, i, parameter.VideoExtension)
	default:
		return base + parameter.VideoExtension
	}
}

// soundtrackPath places the WAV next to its video
func soundtrackPath(video string) string {
	return strings.TrimSuffix(video, parameter.VideoExtension) + ".wav"
}
