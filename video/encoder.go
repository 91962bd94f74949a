// Package video stitches rendered frame sequences into MP4 files via
// ffmpeg. The codec settings are non-normative defaults from the
// config package; any encoder accepting an ordered image sequence and
// emitting constant-frame-rate H.264 would do.
package video

import (
	"fmt"
	"path/filepath"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"geofacts/config"
)

// EncodeFrames compiles the PNG sequence in framesDir (named by
// config.FramePattern, starting at index 0) into an H.264 MP4 at the
// given constant frame rate. Requires the ffmpeg binary on PATH.
func EncodeFrames(framesDir, outputPath string, fps int) error {
	if fps <= 0 {
		fps = config.FPS
	}

	pattern := filepath.Join(framesDir, config.FramePattern)

	err := ffmpeg.Input(pattern, ffmpeg.KwArgs{
		"framerate": strconv.Itoa(fps),
	}).
		Output(outputPath, ffmpeg.KwArgs{
			"c:v":     config.VideoCodec,
			"r":       strconv.Itoa(fps),
			"pix_fmt": config.PixelFormat,
			"preset":  config.VideoPreset,
		}).
		OverWriteOutput().
		Run()

	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}
