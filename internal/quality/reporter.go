// Package quality derives human-readable codec and bitrate facts from
// transport-level quality data.
package quality

import (
	"fmt"
	"math"
	"strings"

	"github.com/playground-x/neoradio/internal/core"
)

// Fixed display constants. The transport does not report sample rate or
// channel layout, so no derivation is attempted.
const (
	sampleRateLabel = "48 kHz"
	channelsLabel   = "Stereo (2.0)"
)

// Summarize converts a quality level into display facts. A nil level yields
// the "AAC" / "Variable" defaults.
func Summarize(level *core.QualityLevel) core.QualityInfo {
	info := core.QualityInfo{
		Codec:      "AAC",
		Bitrate:    "Variable",
		SampleRate: sampleRateLabel,
		Channels:   channelsLabel,
	}

	if level == nil {
		return info
	}

	if level.AudioCodec != "" {
		info.Codec = strings.ToUpper(level.AudioCodec)
	}
	if level.Bitrate > 0 {
		kbps := int(math.Round(float64(level.Bitrate) / 1000))
		info.Bitrate = fmt.Sprintf("%d kbps", kbps)
	}

	return info
}

// FromLevels summarizes the level at index from the given list, falling
// back to defaults when the index is out of range.
func FromLevels(levels []core.QualityLevel, index int) core.QualityInfo {
	if index < 0 || index >= len(levels) {
		return Summarize(nil)
	}
	level := levels[index]
	return Summarize(&level)
}
