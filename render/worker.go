package render

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"sync/atomic"

	"geofacts/camera"
	"geofacts/config"
)

// RenderAll rasterizes every frame of the timeline into dir, named by
// config.FramePattern in playback order. Frames are independent, so up
// to workers of them render concurrently; the first failure is
// returned after all workers drain.
func (r *Renderer) RenderAll(frames []camera.Frame, dir string, workers int) error {
	if workers <= 0 {
		workers = config.DefaultRenderWorkers
	}

	var wg sync.WaitGroup
	var done atomic.Int64
	semaphore := make(chan struct{}, workers)
	errCh := make(chan error, len(frames))

	for i, frame := range frames {
		wg.Add(1)

		go func(idx int, f camera.Frame) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			path := filepath.Join(dir, fmt.Sprintf(config.FramePattern, idx))
			if err := r.RenderFrame(f, path); err != nil {
				errCh <- fmt.Errorf("frame %d: %w", idx, err)
				return
			}

			if n := done.Add(1); n%90 == 0 {
				log.Printf("Rendered %d/%d frames (%.0f seconds of video)", n, len(frames), float64(n)/config.FPS)
			}
		}(i, frame)
	}

	wg.Wait()
	close(errCh)

	// One bad frame would leave a hole in the ffmpeg image sequence,
	// so any failure fails the job.
	for err := range errCh {
		return err
	}
	return nil
}
