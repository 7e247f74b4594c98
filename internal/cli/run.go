package cli

import (
	"context"

	"go.uber.org/zap"

	"github.com/park285/pgn2gif/internal/config"
	"github.com/park285/pgn2gif/internal/frame"
	"github.com/park285/pgn2gif/internal/game"
	"github.com/park285/pgn2gif/internal/gifenc"
	"github.com/park285/pgn2gif/internal/obslog"
	"github.com/park285/pgn2gif/internal/raster"
	"github.com/park285/pgn2gif/internal/theme"
)

// run executes the batch pipeline: load -> build -> rasterize -> encode.
// Each stage consumes the fully completed output of the previous one;
// any stage failure aborts the run before the artifact is finalized.
func run(ctx context.Context, opts config.Options) error {
	if err := obslog.InitFromEnv(); err != nil {
		return err
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	th := theme.Default()
	if opts.StylePath != "" {
		var err error
		if th, err = theme.Load(opts.StylePath); err != nil {
			return err
		}
	}

	loader := game.NewLoader(opts.IncludeInitialPosition, logger)
	positions, err := loader.LoadFile(opts.RecordPath)
	if err != nil {
		return err
	}
	logger.Info("game record loaded",
		zap.String("path", opts.RecordPath),
		zap.Int("positions", len(positions)),
	)

	orientation, err := frame.ParseOrientation(opts.Orientation)
	if err != nil {
		return err
	}
	descs := frame.BuildAll(positions, frame.Options{
		Orientation:       orientation,
		Size:              opts.BoardSize,
		Coordinates:       opts.ShowCoordinates,
		HighlightLastMove: opts.HighlightLastMove,
		Theme:             th,
	})

	frames, err := raster.RenderAll(ctx, descs, opts.Workers, logger)
	if err != nil {
		return err
	}

	return gifenc.WriteFile(opts.OutputPath, frames, gifenc.Options{
		LoopCount:         opts.LoopCount,
		FrameDuration:     opts.FrameDuration,
		FrameRate:         opts.FrameRate,
		FrameRateExplicit: opts.FrameRateExplicit,
		PaletteSize:       opts.PaletteSize,
		DeltaFrames:       opts.DeltaFrames,
	}, logger)
}
