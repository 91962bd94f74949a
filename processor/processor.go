// Package processor orchestrates one render job end to end: map data,
// camera plan, frame rasterization, ffmpeg encoding and the optional
// uploads.
package processor

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"geofacts/camera"
	"geofacts/common"
	"geofacts/config"
	"geofacts/geomap"
	"geofacts/render"
	"geofacts/script"
	"geofacts/upload"
	"geofacts/video"
)

// VideoProcessor runs render jobs. The uploaders are optional: when S3
// or YouTube is not configured the finished MP4 simply stays in the
// output directory.
type VideoProcessor struct {
	cfg     config.Config
	s3      *common.S3
	youtube *upload.YouTube
}

// New initializes a processor. Missing upload credentials downgrade to
// local-only output with a log line rather than failing startup.
func New(ctx context.Context, cfg config.Config) (*VideoProcessor, error) {
	p := &VideoProcessor{cfg: cfg}

	if cfg.S3Bucket != "" {
		s3, err := common.NewS3(ctx, cfg.S3Region)
		if err != nil {
			log.Printf("S3 uploader not initialized: %v", err)
		} else {
			p.s3 = s3
			log.Printf("S3 uploads enabled (bucket: %s)", cfg.S3Bucket)
		}
	}

	if cfg.YouTubeCredentials != "" {
		yt, err := upload.NewYouTube(cfg.YouTubeCredentials)
		if err != nil {
			log.Printf("YouTube uploader not initialized: %v", err)
		} else {
			p.youtube = yt
			log.Println("YouTube client initialized")
		}
	}

	if p.s3 == nil && p.youtube == nil {
		log.Println("Running in LOCAL-ONLY mode (no uploads)")
	}

	return p, nil
}

// ProcessJob renders one video and returns the output file path.
func (p *VideoProcessor) ProcessJob(ctx context.Context, job script.Job) (string, error) {
	job.ApplyDefaults()
	if err := job.Validate(); err != nil {
		return "", fmt.Errorf("invalid job: %w", err)
	}

	log.Printf("🎬 Processing job %s (%d countries)", job.ID, len(job.Countries))

	world, err := p.loadMap()
	if err != nil {
		return "", err
	}

	timeline, err := p.plan(job, world)
	if err != nil {
		return "", err
	}
	log.Printf("Planned %d frames (%.1f seconds of video)", len(timeline.Frames), float64(len(timeline.Frames))/config.FPS)

	framesDir, err := os.MkdirTemp("", "geofacts_frames_")
	if err != nil {
		return "", fmt.Errorf("failed to create frames dir: %w", err)
	}
	defer os.RemoveAll(framesDir)

	renderer, err := render.New(world, job.Title, config.VideoWidth, config.VideoHeight)
	if err != nil {
		return "", fmt.Errorf("failed to build renderer: %w", err)
	}
	if err := renderer.RenderAll(timeline.Frames, framesDir, p.cfg.RenderWorkers); err != nil {
		return "", fmt.Errorf("frame rendering failed: %w", err)
	}

	if err := os.MkdirAll(p.cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	outputPath := filepath.Join(p.cfg.OutputDir, job.ID+".mp4")

	log.Println("Stitching video with FFmpeg...")
	if err := video.EncodeFrames(framesDir, outputPath, config.FPS); err != nil {
		return "", fmt.Errorf("encoding failed: %w", err)
	}
	log.Printf("✅ Video saved to: %s", outputPath)

	p.uploads(ctx, outputPath, job)
	return outputPath, nil
}

// loadMap downloads (or reuses) the cached world map and applies the
// high-detail overlay when configured. Overlay failures are warnings:
// the coarse base geometry still renders.
func (p *VideoProcessor) loadMap() (*geomap.Map, error) {
	mapPath := filepath.Join(p.cfg.MapDir, config.WorldMapFile)
	if err := geomap.Download(mapPath, p.cfg.MapURL, ""); err != nil {
		return nil, fmt.Errorf("failed to fetch world map: %w", err)
	}
	world, err := geomap.Load(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load world map: %w", err)
	}
	log.Printf("Loaded world map (%d countries)", world.Count())

	if p.cfg.OverlayURL != "" && p.cfg.OverlayCountry != "" {
		overlayPath := filepath.Join(p.cfg.MapDir, config.OverlayMapFile)
		if err := geomap.Download(overlayPath, p.cfg.OverlayURL, p.cfg.OverlayFallbackURL); err != nil {
			log.Printf("Warning: could not fetch %s overlay (%v), using base geometry", p.cfg.OverlayCountry, err)
			return world, nil
		}
		overlay, err := geomap.Load(overlayPath)
		if err != nil {
			log.Printf("Warning: could not parse %s overlay (%v), using base geometry", p.cfg.OverlayCountry, err)
			return world, nil
		}
		if err := world.ReplaceCountry(p.cfg.OverlayCountry, overlay); err != nil {
			log.Printf("Warning: could not merge %s overlay (%v), using base geometry", p.cfg.OverlayCountry, err)
			return world, nil
		}
		log.Printf("Applied high-detail %s overlay", p.cfg.OverlayCountry)
	}
	return world, nil
}

func (p *VideoProcessor) plan(job script.Job, world *geomap.Map) (*camera.Timeline, error) {
	lookup := func(name string) (camera.Viewport, bool) {
		b, ok := world.Bounds(name)
		if !ok {
			return camera.Viewport{}, false
		}
		return camera.Viewport{MinX: b.MinX, MaxX: b.MaxX, MinY: b.MinY, MaxY: b.MaxY}, true
	}

	cfg := camera.Config{
		ZoomFrames:  job.ZoomFrames,
		HoldFrames:  job.HoldFrames,
		IntroFrames: job.IntroFrames,
		FinalFrames: job.FinalFrames,
		Shake:       job.ShakeIntensity(),
	}
	if job.Seed != 0 {
		cfg.Rand = rand.New(rand.NewSource(job.Seed))
	}

	planner, err := camera.NewPlanner(cfg, lookup)
	if err != nil {
		return nil, fmt.Errorf("failed to build camera planner: %w", err)
	}

	timeline := planner.Plan(job.Countries, job.Captions.ToCamera())
	for _, res := range timeline.Resolutions {
		if res.Fallback {
			log.Printf("⚠️  No geometry for %q; camera holds the world view for that segment", res.Name)
		}
	}
	return timeline, nil
}

// uploads pushes the finished video to every configured destination.
// Upload failures are logged, not fatal: the local file is the source
// of truth.
func (p *VideoProcessor) uploads(ctx context.Context, outputPath string, job script.Job) {
	if p.s3 != nil {
		key := p.cfg.S3Prefix + filepath.Base(outputPath)
		if err := p.s3.UploadFile(ctx, p.cfg.S3Bucket, key, outputPath, "video/mp4"); err != nil {
			log.Printf("❌ S3 upload failed: %v", err)
		} else {
			log.Printf("📤 Uploaded to s3://%s/%s", p.cfg.S3Bucket, key)
		}
	}

	if p.youtube != nil {
		meta := upload.Metadata{
			Title:       strings.ReplaceAll(job.Title, "\n", " "),
			Description: fmt.Sprintf("Map fact short covering %s.", strings.Join(job.Countries, ", ")),
			Tags:        append([]string{"shorts", "geography", "maps"}, job.Countries...),
		}
		if _, err := p.youtube.Upload(outputPath, meta); err != nil {
			log.Printf("❌ YouTube upload failed: %v", err)
		}
	}
}
