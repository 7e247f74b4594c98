package raster

import (
	"context"
	"fmt"
	"image"
	"sync"

	"go.uber.org/zap"

	"github.com/park285/pgn2gif/internal/frame"
)

// RenderError reports which frame failed to rasterize.
type RenderError struct {
	Frame int
	Err   error
}

func (e *RenderError) Error() string { return fmt.Sprintf("render frame %d: %v", e.Frame, e.Err) }
func (e *RenderError) Unwrap() error { return e.Err }

// RenderAll rasterizes descriptors across a fixed pool of workers and
// returns frames in input order: out[i] is the render of descs[i] for
// any worker count, since each frame is a pure function of its
// descriptor and workers write disjoint indices. A single failure fails
// the whole batch; with several failures the lowest frame index is
// reported, keeping the error deterministic across runs.
func RenderAll(ctx context.Context, descs []frame.Descriptor, workers int, logger *zap.Logger) ([]*image.RGBA, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(descs) && len(descs) > 0 {
		workers = len(descs)
	}

	out := make([]*image.RGBA, len(descs))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr *RenderError
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				img, err := Render(descs[i])
				if err != nil {
					mu.Lock()
					if firstErr == nil || i < firstErr.Frame {
						firstErr = &RenderError{Frame: i, Err: err}
					}
					mu.Unlock()
					continue
				}
				out[i] = img
			}
		}()
	}

feed:
	for i := range descs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, &RenderError{Frame: -1, Err: err}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	logger.Debug("frames rasterized",
		zap.Int("frames", len(out)),
		zap.Int("workers", workers),
	)
	return out, nil
}
